package model

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tables 全データベーステーブル
var Tables = []interface{}{
	&User{},
	&UserRole{},
	&RolePermission{},
	&Recipe{},
	&RecipeReport{},
	&RecipeInteraction{},
	&Notification{},
}
