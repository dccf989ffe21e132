package permission

const (
	// CreateReport レシピ通報権限
	CreateReport = Permission("create_report")
	// GetReports 通報一覧取得権限
	GetReports = Permission("get_reports")
	// ResolveReport 通報解決権限
	ResolveReport = Permission("resolve_report")

	// DeleteRecipe 他者のレシピ削除権限 (不可逆・admin限定)
	DeleteRecipe = Permission("delete_recipe")
	// RestrictRecipe 他者のレシピ制限権限
	RestrictRecipe = Permission("restrict_recipe")
	// EmitNotification 他者への通知作成権限
	EmitNotification = Permission("emit_notification")
)
