package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// RecipeVisibility レシピの公開状態
type RecipeVisibility string

const (
	// RecipeVisibilityPublic 公開状態: 全体公開
	RecipeVisibilityPublic RecipeVisibility = "public"
	// RecipeVisibilityPrivate 公開状態: 非公開
	RecipeVisibilityPrivate RecipeVisibility = "private"
	// RecipeVisibilityRestricted 公開状態: モデレーションによる制限
	RecipeVisibilityRestricted RecipeVisibility = "restricted"
)

// Valid 有効な値かどうか
func (v RecipeVisibility) Valid() bool {
	switch v {
	case RecipeVisibilityPublic, RecipeVisibilityPrivate, RecipeVisibilityRestricted:
		return true
	default:
		return false
	}
}

// Recipe レシピ構造体
//
// LikeCount/SaveCountはrecipes_interactionsから導出されるキャッシュ値。
// 正はインタラクション行のカーディナリティであり、この値ではない。
type Recipe struct {
	ID         uuid.UUID        `gorm:"type:char(36);not null;primaryKey"          json:"id"`
	OwnerID    uuid.UUID        `gorm:"type:char(36);not null;index"               json:"ownerId"`
	Name       string           `gorm:"type:varchar(120);not null"                 json:"name"`
	Visibility RecipeVisibility `gorm:"type:varchar(10);not null;default:'public'" json:"visibility"`
	LikeCount  int              `gorm:"type:int;not null;default:0"                json:"likeCount"`
	SaveCount  int              `gorm:"type:int;not null;default:0"                json:"saveCount"`
	CreatedAt  time.Time        `gorm:"precision:6"                                json:"createdAt"`
	UpdatedAt  time.Time        `gorm:"precision:6;index"                          json:"updatedAt"`

	Owner *User `gorm:"constraint:recipes_owner_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName Recipe構造体のテーブル名
func (*Recipe) TableName() string {
	return "recipes"
}

// IsRestricted モデレーションにより制限されているかどうか
func (r *Recipe) IsRestricted() bool {
	return r.Visibility == RecipeVisibilityRestricted
}
