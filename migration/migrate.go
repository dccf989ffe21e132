// Package migration データベースマイグレーション
package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/service/rbac/role"
)

// Migrations 全マイグレーション
//
// 新たなスキーマ変更は必ず新しいマイグレーションとして末尾に追加すること。
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{}
}

// Migrate データベースマイグレーションを実行します
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:      "migrations",
		IDColumnName:   "id",
		IDColumnSize:   190,
		UseTransaction: false,
	}, Migrations())
	m.InitSchema(func(db *gorm.DB) error {
		// 初回のみに呼ばれる。全ての最新のデータベース定義を書く事

		if err := db.AutoMigrate(model.Tables...); err != nil {
			return err
		}

		// 初期ユーザーロール投入
		for _, v := range role.SystemRoleModels() {
			if err := db.Create(v).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return m.Migrate()
}

// DropAll データベースの全テーブルを削除します
func DropAll(db *gorm.DB) error {
	tables := []interface{}{"migrations"}
	tables = append(tables, model.Tables...)
	return db.Migrator().DropTable(tables...)
}

// CreateDatabasesIfNotExists データベースが存在しなければ作成します
func CreateDatabasesIfNotExists(dialector gorm.Dialector, prefix string, names ...string) error {
	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}
	for _, v := range names {
		if err := conn.Exec("CREATE DATABASE IF NOT EXISTS `" + prefix + v + "` CHARACTER SET = utf8mb4").Error; err != nil {
			return err
		}
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
