package gateway

import (
	"errors"

	"github.com/gofrs/uuid"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/rbac/permission"
)

var (
	// ErrUnauthenticated 未認証のまま特権操作を要求した
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden 実行者のロールに要求権限が付与されていない
	ErrForbidden = errors.New("forbidden")
)

// Gateway 特権コマンドゲートウェイ
//
// 全ての特権操作はこのゲートウェイを経由し、実行者の権限検証を
// サーバー側で必ず行います。検証に失敗した場合、ストアへの書き込みは
// 一切行われません。クライアントのUI状態は検証の根拠にしません。
type Gateway interface {
	// IsGranted 実行者に指定した権限が付与されているかどうか
	IsGranted(actor *model.User, p permission.Permission) bool
	// DeleteRecipe レシピを完全に削除します (要delete_recipe権限)
	DeleteRecipe(actor *model.User, recipeID uuid.UUID) error
	// RestrictRecipe レシピを制限状態にします (要restrict_recipe権限)
	RestrictRecipe(actor *model.User, recipeID uuid.UUID) error
	// ResolveReport 通報を解決します (要resolve_report権限)
	ResolveReport(actor *model.User, reportID uuid.UUID, notes string) error
	// EmitNotification 他ユーザー宛の通知を作成します (要emit_notification権限)
	//
	// ActorIDは実行者で上書きされます。
	EmitNotification(actor *model.User, args repository.CreateNotificationArgs) (*model.Notification, error)
}
