// Package event 内部イベントバスのトピック定義
//
// バスの配信はat-least-onceで、発生元書き込みとの順序保証はない。
// 購読側はイベントをレベルトリガとして扱い、ペイロードの差分ではなく
// 必ず永続ストアの現在値を読み直すこと。
package event

const (
	// UserCreated ユーザーが追加された
	// 	Fields:
	// 		user_id: uuid.UUID
	// 		user: *model.User
	UserCreated = "user.created"

	// RecipeCreated レシピが作成された
	// 	Fields:
	// 		recipe_id: uuid.UUID
	// 		recipe: *model.Recipe
	RecipeCreated = "recipe.created"
	// RecipeDeleted レシピが削除された
	// 	Fields:
	// 		recipe_id: uuid.UUID
	// 		owner_id: uuid.UUID
	RecipeDeleted = "recipe.deleted"
	// RecipeRestricted レシピがモデレーションにより制限された
	// 	Fields:
	// 		recipe_id: uuid.UUID
	// 		owner_id: uuid.UUID
	RecipeRestricted = "recipe.restricted"
	// RecipeInteracted レシピにいいね/保存が付いた
	// 	Fields:
	// 		recipe_id: uuid.UUID
	// 		user_id: uuid.UUID
	// 		kind: model.InteractionKind
	RecipeInteracted = "recipe.interacted"
	// RecipeUninteracted レシピのいいね/保存が取り消された
	// 	Fields:
	// 		recipe_id: uuid.UUID
	// 		user_id: uuid.UUID
	// 		kind: model.InteractionKind
	RecipeUninteracted = "recipe.uninteracted"

	// ReportCreated レシピが通報された
	// 	Fields:
	// 		report_id: uuid.UUID
	// 		report: *model.RecipeReport
	ReportCreated = "report.created"
	// ReportResolved 通報が解決された
	// 	Fields:
	// 		report_id: uuid.UUID
	// 		resolver_id: uuid.UUID
	ReportResolved = "report.resolved"

	// NotificationCreated 通知が作成された
	// 	Fields:
	// 		notification_id: uuid.UUID
	// 		recipient_id: uuid.UUID
	// 		notification: *model.Notification
	NotificationCreated = "notification.created"
	// NotificationRead 通知が既読になった
	// 	Fields:
	// 		notification_id: uuid.UUID
	// 		recipient_id: uuid.UUID
	NotificationRead = "notification.read"
	// NotificationAllRead 受信者の全通知が既読になった
	// 	Fields:
	// 		recipient_id: uuid.UUID
	// 		read_notifications_num: int
	NotificationAllRead = "notification.all_read"
)
