package repository

import (
	"context"
	"encoding/hex"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"

	"github.com/recetario/recetario/event"
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/utils"
	"github.com/recetario/recetario/utils/validator"
)

// CreateUser implements UserRepository interface.
func (repo *GormRepository) CreateUser(args CreateUserArgs) (*model.User, error) {
	if err := vd.Validate(args.Name, validator.UserNameRuleRequired...); err != nil {
		return nil, ArgError("args.Name", "Name must be 1-32 characters of a-zA-Z0-9_-")
	}
	if len(args.Role) == 0 {
		args.Role = "member"
	}

	u := &model.User{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        args.Name,
		DisplayName: args.DisplayName,
		Role:        args.Role,
		Status:      model.UserAccountStatusActive,
	}
	if len(args.Password) > 0 {
		if err := vd.Validate(args.Password, validator.PasswordRuleRequired...); err != nil {
			return nil, ArgError("args.Password", "invalid password")
		}
		salt := utils.GenerateSalt()
		u.Salt = hex.EncodeToString(salt)
		u.Password = hex.EncodeToString(utils.HashPassword(args.Password, salt))
	}
	if err := repo.db.Create(u).Error; err != nil {
		if isMySQLDuplicatedRecordErr(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.UserCreated,
		Fields: hub.Fields{
			"user_id": u.ID,
			"user":    u,
		},
	})
	return u, nil
}

// GetUser implements UserRepository interface.
func (repo *GormRepository) GetUser(id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, ErrNilID
	}
	return repo.users.Get(context.Background(), id)
}

func (repo *GormRepository) getUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	u := &model.User{}
	if err := repo.db.Take(u, &model.User{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return u, nil
}

// GetUserByName implements UserRepository interface.
func (repo *GormRepository) GetUserByName(name string) (*model.User, error) {
	if len(name) == 0 {
		return nil, ErrNotFound
	}
	u := &model.User{}
	if err := repo.db.Take(u, &model.User{Name: name}).Error; err != nil {
		return nil, convertError(err)
	}
	return u, nil
}

// UserExists implements UserRepository interface.
func (repo *GormRepository) UserExists(id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	return dbExists(repo.db, &model.User{ID: id})
}
