package repository

import (
	"github.com/gofrs/uuid"

	"github.com/recetario/recetario/model"
)

// ReportsQuery 通報一覧取得クエリ
type ReportsQuery struct {
	// Status 指定した場合、その状態の通報のみを返します
	Status model.ReportStatus
	// Limit 0の場合は無制限
	Limit int
	// Offset 取得開始位置
	Offset int
}

// ReportRepository レシピ通報リポジトリ
type ReportRepository interface {
	// CreateReport レシピ通報を作成します
	//
	// 成功した場合、通報とnilを返します。
	// 同じ通報者による同じレシピへの通報が既にある場合、ErrAlreadyExistsを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	CreateReport(recipeID, reporterID uuid.UUID, reason model.ReportReason, description string) (*model.RecipeReport, error)
	// GetReport 指定したIDの通報を取得します
	//
	// 成功した場合、通報とnilを返します。
	// 存在しない場合、ErrNotFoundを返します。
	GetReport(id uuid.UUID) (*model.RecipeReport, error)
	// GetReports 通報一覧を作成日時昇順で取得します
	GetReports(q ReportsQuery) ([]*model.RecipeReport, error)
	// ResolveReport 指定した通報をpendingからresolvedへ遷移させます
	//
	// 遷移はexactly-once: pending状態の行に対する条件付きUPDATEで行われ、
	// 既に解決済みの場合はErrAlreadyResolvedを返し、
	// resolvedBy/notesを上書きしません。
	// 存在しない場合、ErrNotFoundを返します。
	ResolveReport(reportID, resolverID uuid.UUID, notes string) error
}
