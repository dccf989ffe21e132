package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// InteractionKind インタラクション種別
type InteractionKind string

const (
	// InteractionKindLike インタラクション種別: いいね
	InteractionKindLike InteractionKind = "like"
	// InteractionKindSave インタラクション種別: 保存
	InteractionKindSave InteractionKind = "save"
)

// Valid 有効な値かどうか
func (v InteractionKind) Valid() bool {
	switch v {
	case InteractionKindLike, InteractionKindSave:
		return true
	default:
		return false
	}
}

// RecipeInteraction レシピインタラクション構造体
//
// (UserID, RecipeID, Kind)を複合主キーとする集合。同一ユーザーの重複いいねは
// この制約で排除され、二重カウントは発生しない。
type RecipeInteraction struct {
	UserID    uuid.UUID       `gorm:"type:char(36);not null;primaryKey"      json:"userId"`
	RecipeID  uuid.UUID       `gorm:"type:char(36);not null;primaryKey;index" json:"recipeId"`
	Kind      InteractionKind `gorm:"type:varchar(10);not null;primaryKey"   json:"kind"`
	CreatedAt time.Time       `gorm:"precision:6"                            json:"createdAt"`

	User   *User   `gorm:"constraint:recipes_interactions_user_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"     json:"-"`
	Recipe *Recipe `gorm:"constraint:recipes_interactions_recipe_id_recipes_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName RecipeInteraction構造体のテーブル名
func (*RecipeInteraction) TableName() string {
	return "recipes_interactions"
}
