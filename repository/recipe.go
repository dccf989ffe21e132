package repository

import (
	"github.com/gofrs/uuid"

	"github.com/recetario/recetario/model"
)

// CreateRecipeArgs レシピ作成引数
type CreateRecipeArgs struct {
	OwnerID    uuid.UUID
	Name       string
	Visibility model.RecipeVisibility
}

// RecipeRepository レシピリポジトリ
type RecipeRepository interface {
	// CreateRecipe レシピを作成します
	//
	// 成功した場合、レシピとnilを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	CreateRecipe(args CreateRecipeArgs) (*model.Recipe, error)
	// GetRecipe 指定したIDのレシピを取得します
	//
	// 成功した場合、レシピとnilを返します。
	// 存在しない場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	GetRecipe(id uuid.UUID) (*model.Recipe, error)
	// DeleteRecipe 指定したレシピを完全に削除します。取り消しはできません
	//
	// 成功した場合、nilを返します。この操作は単一トランザクションで実行されます。
	// 存在しない場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	DeleteRecipe(id uuid.UUID) error
	// RestrictRecipe 指定したレシピの公開状態を制限に変更します
	//
	// 冪等: 既に制限済みの場合もnilを返します(イベントは発行されません)。
	// 存在しない場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	RestrictRecipe(id uuid.UUID) error
	// RefreshRecipeCounters レシピのキャッシュカウンタをインタラクション行の
	// カーディナリティから再計算します
	//
	// キャッシュ値は一時的に正と乖離しうるため、権威カウントが必要な場面では
	// 必ずこの再計算後の値を参照すること。
	RefreshRecipeCounters(id uuid.UUID) (*model.Recipe, error)
}
