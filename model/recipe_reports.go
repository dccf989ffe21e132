package model

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/guregu/null"
)

// ReportReason 通報理由
type ReportReason string

const (
	// ReportReasonSpam 通報理由: スパム
	ReportReasonSpam ReportReason = "spam"
	// ReportReasonInappropriate 通報理由: 不適切な内容
	ReportReasonInappropriate ReportReason = "inappropriate"
	// ReportReasonCopyright 通報理由: 著作権侵害
	ReportReasonCopyright ReportReason = "copyright"
	// ReportReasonOther 通報理由: その他
	ReportReasonOther ReportReason = "other"
)

// Valid 有効な値かどうか
func (v ReportReason) Valid() bool {
	switch v {
	case ReportReasonSpam, ReportReasonInappropriate, ReportReasonCopyright, ReportReasonOther:
		return true
	default:
		return false
	}
}

// ReportStatus 通報状態
type ReportStatus string

const (
	// ReportStatusPending 通報状態: 対応待ち
	ReportStatusPending ReportStatus = "pending"
	// ReportStatusResolved 通報状態: 解決済み
	ReportStatusResolved ReportStatus = "resolved"
)

// RecipeReport レシピ通報構造体
//
// Statusはpending→resolvedへ一度だけ遷移する。解決後の行は監査のため削除しない。
type RecipeReport struct {
	ID              uuid.UUID     `gorm:"type:char(36);not null;primaryKey"                    json:"id"`
	RecipeID        uuid.UUID     `gorm:"type:char(36);not null;uniqueIndex:recipe_reporter"   json:"recipeId"`
	ReporterID      uuid.UUID     `gorm:"type:char(36);not null;uniqueIndex:recipe_reporter"   json:"reporterId"`
	Reason          ReportReason  `gorm:"type:varchar(20);not null"                            json:"reason"`
	Description     string        `gorm:"type:text"                                            json:"description"`
	Status          ReportStatus  `gorm:"type:varchar(10);not null;default:'pending';index"    json:"status"`
	ModerationNotes null.String   `gorm:"type:text"                                            json:"moderationNotes"`
	ResolvedBy      uuid.NullUUID `gorm:"type:char(36)"                                        json:"resolvedBy"`
	ResolvedAt      null.Time     `gorm:"precision:6"                                          json:"resolvedAt"`
	CreatedAt       time.Time     `gorm:"precision:6;index"                                    json:"createdAt"`
}

// TableName RecipeReport構造体のテーブル名
func (*RecipeReport) TableName() string {
	return "recipe_reports"
}

// IsResolved 解決済みかどうか
func (r *RecipeReport) IsResolved() bool {
	return r.Status == ReportStatusResolved
}
