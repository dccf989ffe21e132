package validator

import (
	"regexp"

	vd "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gofrs/uuid"
)

// UserNameRule ユーザー名バリデーションルール
var UserNameRule = []vd.Rule{
	vd.Match(regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)).Error("must contain [a-zA-Z0-9_-] only"),
	vd.RuneLength(1, 32),
}

// UserNameRuleRequired ユーザー名バリデーションルール with Required
var UserNameRuleRequired = append([]vd.Rule{
	vd.Required,
}, UserNameRule...)

// RecipeNameRule レシピ名バリデーションルール
var RecipeNameRule = []vd.Rule{
	vd.RuneLength(1, 120),
}

// RecipeNameRuleRequired レシピ名バリデーションルール with Required
var RecipeNameRuleRequired = append([]vd.Rule{
	vd.Required,
}, RecipeNameRule...)

// PasswordRule パスワードバリデーションルール
var PasswordRule = []vd.Rule{
	vd.Match(regexp.MustCompile(`^[\x20-\x7E]*$`)).Error("must contain ASCII characters only"),
	vd.RuneLength(8, 64),
}

// PasswordRuleRequired パスワードバリデーションルール with Required
var PasswordRuleRequired = append([]vd.Rule{
	vd.Required,
}, PasswordRule...)

// ModerationMessageRule モデレーションメッセージバリデーションルール
//
// 通知として送られるメッセージは必須かつ空白のみは不可。
var ModerationMessageRule = []vd.Rule{
	vd.Required,
	vd.RuneLength(1, 1000),
}

// NotNilUUID uuid.Nilを拒否するルール
var NotNilUUID = vd.By(func(value interface{}) error {
	switch v := value.(type) {
	case uuid.UUID:
		if v == uuid.Nil {
			return vd.NewError("validation_is_nil_uuid", "must be a valid uuid")
		}
	case uuid.NullUUID:
		if v.Valid && v.UUID == uuid.Nil {
			return vd.NewError("validation_is_nil_uuid", "must be a valid uuid")
		}
	}
	return nil
})
