package repository

import (
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"gorm.io/gorm"

	"github.com/recetario/recetario/event"
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/utils/validator"
)

// CreateRecipe implements RecipeRepository interface.
func (repo *GormRepository) CreateRecipe(args CreateRecipeArgs) (*model.Recipe, error) {
	if args.OwnerID == uuid.Nil {
		return nil, ErrNilID
	}
	if err := vd.Validate(args.Name, validator.RecipeNameRuleRequired...); err != nil {
		return nil, ArgError("args.Name", "Name must be 1-120 characters")
	}
	if len(args.Visibility) == 0 {
		args.Visibility = model.RecipeVisibilityPublic
	}
	if !args.Visibility.Valid() {
		return nil, ArgError("args.Visibility", "invalid visibility")
	}

	r := &model.Recipe{
		ID:         uuid.Must(uuid.NewV4()),
		OwnerID:    args.OwnerID,
		Name:       args.Name,
		Visibility: args.Visibility,
	}
	if err := repo.db.Create(r).Error; err != nil {
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.RecipeCreated,
		Fields: hub.Fields{
			"recipe_id": r.ID,
			"recipe":    r,
		},
	})
	return r, nil
}

// GetRecipe implements RecipeRepository interface.
func (repo *GormRepository) GetRecipe(id uuid.UUID) (*model.Recipe, error) {
	if id == uuid.Nil {
		return nil, ErrNilID
	}
	r := &model.Recipe{}
	if err := repo.db.Take(r, &model.Recipe{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return r, nil
}

// DeleteRecipe implements RecipeRepository interface.
func (repo *GormRepository) DeleteRecipe(id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrNilID
	}
	var r model.Recipe
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&r, &model.Recipe{ID: id}).Error; err != nil {
			return convertError(err)
		}
		if err := tx.Delete(&model.RecipeInteraction{}, &model.RecipeInteraction{RecipeID: id}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{ID: id}).Error
	})
	if err != nil {
		return err
	}

	repo.hub.Publish(hub.Message{
		Name: event.RecipeDeleted,
		Fields: hub.Fields{
			"recipe_id": id,
			"owner_id":  r.OwnerID,
		},
	})
	return nil
}

// RestrictRecipe implements RecipeRepository interface.
func (repo *GormRepository) RestrictRecipe(id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrNilID
	}
	var (
		r       model.Recipe
		changed bool
	)
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&r, &model.Recipe{ID: id}).Error; err != nil {
			return convertError(err)
		}
		if r.IsRestricted() {
			// 制限済みの場合は何もしない
			return nil
		}
		changed = true
		return tx.Model(&r).Update("visibility", model.RecipeVisibilityRestricted).Error
	})
	if err != nil {
		return err
	}

	if changed {
		repo.hub.Publish(hub.Message{
			Name: event.RecipeRestricted,
			Fields: hub.Fields{
				"recipe_id": id,
				"owner_id":  r.OwnerID,
			},
		})
	}
	return nil
}

// RefreshRecipeCounters implements RecipeRepository interface.
func (repo *GormRepository) RefreshRecipeCounters(id uuid.UUID) (*model.Recipe, error) {
	if id == uuid.Nil {
		return nil, ErrNilID
	}
	r := &model.Recipe{}
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := refreshRecipeCounters(tx, id); err != nil {
			return err
		}
		return convertError(tx.Take(r, &model.Recipe{ID: id}).Error)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// refreshRecipeCounters キャッシュカウンタをインタラクション行の集計で上書きします
func refreshRecipeCounters(tx *gorm.DB, recipeID uuid.UUID) error {
	return tx.Exec(`UPDATE recipes SET `+
		`like_count = (SELECT COUNT(*) FROM recipes_interactions WHERE recipe_id = ? AND kind = 'like'), `+
		`save_count = (SELECT COUNT(*) FROM recipes_interactions WHERE recipe_id = ? AND kind = 'save') `+
		`WHERE id = ?`, recipeID, recipeID, recipeID).Error
}
