package notification

import (
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/service/moderation"
)

// Title 通知の表示タイトルをメタデータから導出します
//
// モデレーション通知は永続化されたactionKindで分岐し、未知の値は
// 汎用タイトルに落とします。導出はここに集約し、永続化しません。
func Title(n *model.Notification) string {
	switch n.Type {
	case model.NotificationTypeLike:
		return "Nuevo me gusta"
	case model.NotificationTypeSave:
		return "Receta guardada"
	case model.NotificationTypeRating:
		return "Nueva valoración"
	case model.NotificationTypeComment:
		return "Nuevo comentario"
	case model.NotificationTypeModeration:
		switch moderation.ActionKind(n.Metadata.GetString(model.MetadataKeyActionKind)) {
		case moderation.ActionDelete:
			return "Tu receta fue eliminada"
		case moderation.ActionMakePrivate:
			return "Tu receta fue restringida"
		case moderation.ActionRequestChanges:
			return "Se requieren cambios"
		default:
			return "Aviso de moderación"
		}
	default:
		return "Notificación"
	}
}
