package consts

const (
	ParamRecipeID       = "recipeID"
	ParamReportID       = "reportID"
	ParamNotificationID = "notificationID"
)
