package role

import (
	"github.com/recetario/recetario/service/rbac/permission"
)

// Member 一般ユーザーロール
const Member = "member"

var memberPerms = []permission.Permission{
	permission.GetRecipe,
	permission.CreateRecipe,
	permission.EditRecipe,
	permission.DeleteMyRecipe,
	permission.InteractRecipe,
	permission.CreateReport,
	permission.GetMyNotifications,
	permission.EditMyNotifications,
}
