package permission

const (
	// GetRecipe レシピ取得権限
	GetRecipe = Permission("get_recipe")
	// CreateRecipe レシピ作成権限
	CreateRecipe = Permission("create_recipe")
	// EditRecipe 自身のレシピ編集権限
	EditRecipe = Permission("edit_recipe")
	// DeleteMyRecipe 自身のレシピ削除権限
	DeleteMyRecipe = Permission("delete_my_recipe")
	// InteractRecipe レシピへのいいね/保存権限
	InteractRecipe = Permission("interact_recipe")
)
