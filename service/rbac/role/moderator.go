package role

import (
	"github.com/recetario/recetario/service/rbac/permission"
)

// Moderator モデレーターロール
//
// 不可逆な削除権限(permission.DeleteRecipe)は持たない。削除はadminのみ。
const Moderator = "moderator"

var moderatorPerms = []permission.Permission{
	permission.GetReports,
	permission.ResolveReport,
	permission.RestrictRecipe,
	permission.EmitNotification,
}

func init() {
	moderatorPerms = append(moderatorPerms, memberPerms...)
}
