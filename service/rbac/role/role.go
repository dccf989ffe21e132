package role

import (
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/service/rbac/permission"
)

// Role ロールインターフェース
type Role interface {
	Name() string
	IsGranted(p permission.Permission) bool
	Permissions() permission.Permissions
}

// Roles ロールセット
type Roles map[string]Role

// Add セットにロールを追加します
func (roles Roles) Add(role Role) {
	roles[role.Name()] = role
}

// HasAndIsGranted セットが指定したロールを持ち、そのロールに指定した権限が許可されているかどうか
func (roles Roles) HasAndIsGranted(r string, p permission.Permission) bool {
	set, ok := roles[r]
	if !ok {
		return false
	}
	return set.IsGranted(p)
}

// GetSystemRoles システム定義ロールのRolesを返します
func GetSystemRoles() Roles {
	return Roles{
		Admin: &systemRole{
			name:        Admin,
			permissions: permission.PermissionsFromArray(permission.List),
		},
		Moderator: &systemRole{
			name:        Moderator,
			permissions: permission.PermissionsFromArray(moderatorPerms),
		},
		Member: &systemRole{
			name:        Member,
			permissions: permission.PermissionsFromArray(memberPerms),
		},
	}
}

// SystemRoleModels システム定義ロールのDBモデルを返します
func SystemRoleModels() []*model.UserRole {
	roles := GetSystemRoles()
	result := make([]*model.UserRole, 0, len(roles))
	for _, role := range roles {
		m := model.UserRole{
			Name:   role.Name(),
			System: true,
		}
		// Adminは全権限を暗黙に持つため行を持たない
		if role.Name() != Admin {
			m.Permissions = convertRolePermissions(role.Name(), role.Permissions())
		}
		result = append(result, &m)
	}
	return result
}

func convertRolePermissions(role string, perms permission.Permissions) []model.RolePermission {
	result := make([]model.RolePermission, 0, len(perms))
	for p := range perms {
		result = append(result, model.RolePermission{
			Role:       role,
			Permission: p.Name(),
		})
	}
	return result
}

type systemRole struct {
	name        string
	permissions permission.Permissions
}

func (r *systemRole) Name() string {
	return r.name
}

func (r *systemRole) IsGranted(p permission.Permission) bool {
	return r.permissions.Contains(p)
}

func (r *systemRole) Permissions() permission.Permissions {
	return r.permissions
}
