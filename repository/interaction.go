package repository

import (
	"github.com/gofrs/uuid"

	"github.com/recetario/recetario/model"
)

// InteractionRepository レシピインタラクションリポジトリ
type InteractionRepository interface {
	// AddRecipeInteraction レシピにいいね/保存を付与します
	//
	// 成功した、或いは既に付与されていた場合にnilを返します。重複は
	// (user, recipe, kind)の主キー制約で排除され、二重カウントされません。
	// レシピが存在しない場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	AddRecipeInteraction(userID, recipeID uuid.UUID, kind model.InteractionKind) error
	// RemoveRecipeInteraction レシピのいいね/保存を取り消します
	//
	// 成功した、或いは既に取り消されていた場合にnilを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	RemoveRecipeInteraction(userID, recipeID uuid.UUID, kind model.InteractionKind) error
	// GetUserRecipeInteractions 指定したユーザーの指定したレシピへの
	// インタラクションを取得します
	GetUserRecipeInteractions(userID, recipeID uuid.UUID) ([]*model.RecipeInteraction, error)
	// CountRecipeInteractions 指定したレシピの種別ごとの権威カウントを返します
	CountRecipeInteractions(recipeID uuid.UUID, kind model.InteractionKind) (int, error)
}
