package moderation

import (
	"github.com/recetario/recetario/service/rbac/permission"
)

// ActionKind モデレーションアクション種別
//
// 値は通知メタデータのactionKindとしてそのまま永続化されます。
type ActionKind string

const (
	// ActionDelete レシピを完全に削除する (不可逆)
	ActionDelete = ActionKind("delete")
	// ActionMakePrivate レシピを制限状態にして一般公開から外す
	ActionMakePrivate = ActionKind("makePrivate")
	// ActionRequestChanges レシピは変更せず、投稿者へ修正依頼のみを送る
	ActionRequestChanges = ActionKind("requestChanges")
)

// Action モデレーションアクション定義
type Action struct {
	Kind  ActionKind
	Label string
	// Permission このアクションの実行に必要な権限
	Permission permission.Permission
	// RequiresConfirmation 実行前に二重確認を要求するかどうか
	RequiresConfirmation bool
	// MutatesRecipe レシピ自体を変更するかどうか
	MutatesRecipe bool
}

// Actions 全アクションの定義 (UI表示順)
var Actions = []Action{
	{
		Kind:                 ActionDelete,
		Label:                "Eliminar",
		Permission:           permission.DeleteRecipe,
		RequiresConfirmation: true,
		MutatesRecipe:        true,
	},
	{
		Kind:          ActionMakePrivate,
		Label:         "Hacer privada",
		Permission:    permission.RestrictRecipe,
		MutatesRecipe: true,
	},
	{
		Kind:       ActionRequestChanges,
		Label:      "Solicitar cambios",
		Permission: permission.ResolveReport,
	},
}

// GetAction 指定した種別のアクション定義を返します
func GetAction(kind ActionKind) (Action, bool) {
	for _, a := range Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return Action{}, false
}
