package model

// UserRole ユーザーロール構造体
type UserRole struct {
	Name        string           `gorm:"type:varchar(30);not null;primaryKey"`
	System      bool             `gorm:"type:boolean;not null;default:false"`
	Permissions []RolePermission `gorm:"foreignKey:Role"`
}

// TableName UserRole構造体のテーブル名
func (*UserRole) TableName() string {
	return "user_roles"
}

// RolePermission ロール権限構造体
type RolePermission struct {
	Role       string `gorm:"type:varchar(30);not null;primaryKey"`
	Permission string `gorm:"type:varchar(30);not null;primaryKey"`
}

// TableName RolePermission構造体のテーブル名
func (*RolePermission) TableName() string {
	return "user_role_permissions"
}
