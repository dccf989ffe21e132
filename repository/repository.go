package repository

// Repository データリポジトリ
type Repository interface {
	// Sync リポジトリと実際のデータベースを同期します
	//
	// 初期化が行われた場合、trueを返します。
	Sync() (init bool, err error)
	UserRepository
	RecipeRepository
	ReportRepository
	NotificationRepository
	InteractionRepository
}
