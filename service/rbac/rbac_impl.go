package rbac

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/service/rbac/permission"
	"github.com/recetario/recetario/service/rbac/role"
)

type rbacImpl struct {
	roles      role.Roles
	rolesMutex sync.RWMutex
	db         *gorm.DB
}

// New RBACを初期化
func New(db *gorm.DB) (RBAC, error) {
	rbac := &rbacImpl{
		roles: role.Roles{},
		db:    db,
	}
	if err := rbac.Reload(); err != nil {
		return nil, fmt.Errorf("failed to init rbac: %w", err)
	}
	return rbac, nil
}

func (r *rbacImpl) IsGranted(role string, perm permission.Permission) bool {
	r.rolesMutex.RLock()
	defer r.rolesMutex.RUnlock()
	return r.isGranted(role, perm)
}

func (r *rbacImpl) isGranted(_role string, p permission.Permission) bool {
	// Adminは全権限を持つ
	if _role == role.Admin {
		return true
	}
	return r.roles.HasAndIsGranted(_role, p)
}

func (r *rbacImpl) GetGrantedPermissions(_role string) []permission.Permission {
	r.rolesMutex.RLock()
	defer r.rolesMutex.RUnlock()
	if _role == role.Admin {
		return permission.List
	}
	ro, ok := r.roles[_role]
	if !ok {
		return nil
	}
	return ro.Permissions().Array()
}

func (r *rbacImpl) Reload() error {
	var dbRoles []*model.UserRole
	if err := r.db.Preload("Permissions").Find(&dbRoles).Error; err != nil {
		return err
	}

	roles := role.Roles{}
	for _, v := range dbRoles {
		perms := permission.Permissions{}
		for _, p := range v.Permissions {
			perms.Add(permission.Permission(p.Permission))
		}
		roles.Add(newLoadedRole(v.Name, perms))
	}

	r.rolesMutex.Lock()
	r.roles = roles
	r.rolesMutex.Unlock()
	return nil
}

type loadedRole struct {
	name        string
	permissions permission.Permissions
}

func newLoadedRole(name string, perms permission.Permissions) *loadedRole {
	return &loadedRole{name: name, permissions: perms}
}

func (r *loadedRole) Name() string {
	return r.name
}

func (r *loadedRole) IsGranted(p permission.Permission) bool {
	return r.permissions.Contains(p)
}

func (r *loadedRole) Permissions() permission.Permissions {
	return r.permissions
}
