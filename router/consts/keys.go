package consts

const (
	KeyUserID            = "userID"
	KeyUser              = "user"
	KeyParamRecipe       = "paramRecipe"
	KeyParamReport       = "paramReport"
	KeyParamNotification = "paramNotification"
)
