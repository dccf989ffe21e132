package permission

const (
	// GetMyNotifications 自身の通知取得権限
	GetMyNotifications = Permission("get_my_notifications")
	// EditMyNotifications 自身の通知既読化権限
	EditMyNotifications = Permission("edit_my_notifications")
)
