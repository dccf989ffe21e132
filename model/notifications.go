package model

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/gofrs/uuid"
)

// NotificationType 通知種別
type NotificationType string

const (
	// NotificationTypeLike 通知種別: いいね
	NotificationTypeLike NotificationType = "like"
	// NotificationTypeSave 通知種別: レシピ保存
	NotificationTypeSave NotificationType = "save"
	// NotificationTypeRating 通知種別: 評価
	NotificationTypeRating NotificationType = "rating"
	// NotificationTypeComment 通知種別: コメント
	NotificationTypeComment NotificationType = "comment"
	// NotificationTypeModeration 通知種別: モデレーション
	NotificationTypeModeration NotificationType = "moderation"
)

// Valid 有効な値かどうか
func (v NotificationType) Valid() bool {
	switch v {
	case NotificationTypeLike, NotificationTypeSave, NotificationTypeRating, NotificationTypeComment, NotificationTypeModeration:
		return true
	default:
		return false
	}
}

// NotificationMetadata 通知メタデータ
//
// 通知種別ごとのクローズドなキー集合を持つ。値の取り出しは型付きアクセサを通し、
// 欠損・型不一致はゼロ値に落とす。例外にはしない。
type NotificationMetadata map[string]interface{}

// メタデータキー
const (
	// MetadataKeyActionKind モデレーション通知: 実行されたアクション種別
	MetadataKeyActionKind = "actionKind"
	// MetadataKeyRecipeName モデレーション通知: 対象レシピ名 (削除後も表示に使う)
	MetadataKeyRecipeName = "recipeName"
	// MetadataKeyReportReason モデレーション通知: 元となった通報理由
	MetadataKeyReportReason = "reportReason"
	// MetadataKeyRating 評価通知: 評価値
	MetadataKeyRating = "rating"
)

// GetString 指定したキーの文字列値を返します。欠損時は空文字列
func (m NotificationMetadata) GetString(key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// Value database/sql/driver.Valuer 実装
func (m NotificationMetadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.MarshalToString(map[string]interface{}(m))
}

// Scan database/sql.Scanner 実装
func (m *NotificationMetadata) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(s), m)
	case []byte:
		return json.Unmarshal(s, m)
	default:
		return errors.New("failed to scan NotificationMetadata")
	}
}

// Notification 通知構造体
//
// Read以外は不変。Readはfalseからtrueへ単調にのみ変わる(既読の取り消しはない)。
type Notification struct {
	ID          uuid.UUID            `gorm:"type:char(36);not null;primaryKey"       json:"id"`
	RecipientID uuid.UUID            `gorm:"type:char(36);not null;index:idx_notifications_recipient_id_created_at,priority:1" json:"recipientId"`
	ActorID     uuid.NullUUID        `gorm:"type:char(36)"                           json:"actorId"`
	Type        NotificationType     `gorm:"type:varchar(20);not null;index"         json:"type"`
	Message     string               `gorm:"type:text;not null"                      json:"message"`
	Read        bool                 `gorm:"type:boolean;not null;default:false"     json:"read"`
	RecipeID    uuid.NullUUID        `gorm:"type:char(36)"                           json:"recipeId"`
	Metadata    NotificationMetadata `gorm:"type:text;not null"                      json:"metadata"`
	CreatedAt   time.Time            `gorm:"precision:6;index:idx_notifications_recipient_id_created_at,priority:2" json:"createdAt"`
}

// TableName Notification構造体のテーブル名
func (*Notification) TableName() string {
	return "notifications"
}
