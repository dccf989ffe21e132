package repository

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/motoki317/sc"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recetario/recetario/migration"
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/service/rbac/role"
	"github.com/recetario/recetario/utils/random"
)

// GormRepository リポジトリ実装
type GormRepository struct {
	db     *gorm.DB
	hub    *hub.Hub
	logger *zap.Logger
	users  *sc.Cache[uuid.UUID, *model.User]
}

// NewGormRepository リポジトリ実装を初期化して生成します
func NewGormRepository(db *gorm.DB, hub *hub.Hub, logger *zap.Logger) (Repository, error) {
	repo := &GormRepository{
		db:     db,
		hub:    hub,
		logger: logger.Named("repository"),
	}
	repo.users = sc.NewMust(repo.getUser, 1*time.Minute, 1*time.Minute)
	return repo, nil
}

// Sync implements Repository interface.
func (repo *GormRepository) Sync() (init bool, err error) {
	if err := migration.Migrate(repo.db); err != nil {
		return false, err
	}

	// 管理者ユーザーの確認
	var c int64
	if err := repo.db.Model(&model.User{}).Where(&model.User{Role: role.Admin}).Limit(1).Count(&c).Error; err != nil {
		return false, err
	}
	if c == 0 {
		password := random.SecureAlphaNumeric(20)
		u, err := repo.CreateUser(CreateUserArgs{
			Name:     "admin",
			Password: password,
			Role:     role.Admin,
		})
		if err != nil {
			return false, err
		}
		// 初期パスワードは初回起動ログにのみ出す。ログイン後に必ず変更すること
		repo.logger.Warn("initial admin user created",
			zap.String("name", u.Name),
			zap.String("password", password))
		return true, nil
	}

	return false, nil
}
