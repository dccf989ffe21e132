package repository

import (
	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recetario/recetario/event"
	"github.com/recetario/recetario/model"
)

// AddRecipeInteraction implements InteractionRepository interface.
func (repo *GormRepository) AddRecipeInteraction(userID, recipeID uuid.UUID, kind model.InteractionKind) error {
	if userID == uuid.Nil || recipeID == uuid.Nil {
		return ErrNilID
	}
	if !kind.Valid() {
		return ArgError("kind", "invalid interaction kind")
	}

	var added bool
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if exists, err := dbExists(tx, &model.Recipe{ID: recipeID}); err != nil {
			return err
		} else if !exists {
			return ErrNotFound
		}

		// 主キー重複は無視する。二重いいねはここで排除される
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.RecipeInteraction{UserID: userID, RecipeID: recipeID, Kind: kind})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		added = true
		return refreshRecipeCounters(tx, recipeID)
	})
	if err != nil {
		return err
	}

	if added {
		repo.hub.Publish(hub.Message{
			Name: event.RecipeInteracted,
			Fields: hub.Fields{
				"recipe_id": recipeID,
				"user_id":   userID,
				"kind":      kind,
			},
		})
	}
	return nil
}

// RemoveRecipeInteraction implements InteractionRepository interface.
func (repo *GormRepository) RemoveRecipeInteraction(userID, recipeID uuid.UUID, kind model.InteractionKind) error {
	if userID == uuid.Nil || recipeID == uuid.Nil {
		return ErrNilID
	}
	if !kind.Valid() {
		return ArgError("kind", "invalid interaction kind")
	}

	var removed bool
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.RecipeInteraction{}, &model.RecipeInteraction{UserID: userID, RecipeID: recipeID, Kind: kind})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true
		return refreshRecipeCounters(tx, recipeID)
	})
	if err != nil {
		return err
	}

	if removed {
		repo.hub.Publish(hub.Message{
			Name: event.RecipeUninteracted,
			Fields: hub.Fields{
				"recipe_id": recipeID,
				"user_id":   userID,
				"kind":      kind,
			},
		})
	}
	return nil
}

// GetUserRecipeInteractions implements InteractionRepository interface.
func (repo *GormRepository) GetUserRecipeInteractions(userID, recipeID uuid.UUID) (arr []*model.RecipeInteraction, err error) {
	arr = make([]*model.RecipeInteraction, 0)
	if userID == uuid.Nil || recipeID == uuid.Nil {
		return arr, nil
	}
	err = repo.db.Where(&model.RecipeInteraction{UserID: userID, RecipeID: recipeID}).Find(&arr).Error
	return arr, err
}

// CountRecipeInteractions implements InteractionRepository interface.
func (repo *GormRepository) CountRecipeInteractions(recipeID uuid.UUID, kind model.InteractionKind) (int, error) {
	if recipeID == uuid.Nil {
		return 0, ErrNilID
	}
	var c int64
	err := repo.db.Model(&model.RecipeInteraction{}).
		Where("recipe_id = ? AND kind = ?", recipeID, kind).
		Count(&c).Error
	return int(c), err
}
