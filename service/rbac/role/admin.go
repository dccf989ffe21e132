package role

// Admin 管理者ロール。全ての権限が暗黙に許可される
const Admin = "admin"
