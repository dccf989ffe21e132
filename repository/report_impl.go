package repository

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/guregu/null"
	"github.com/leandro-lugaresi/hub"
	"gorm.io/gorm"

	"github.com/recetario/recetario/event"
	"github.com/recetario/recetario/model"
)

// CreateReport implements ReportRepository interface.
func (repo *GormRepository) CreateReport(recipeID, reporterID uuid.UUID, reason model.ReportReason, description string) (*model.RecipeReport, error) {
	if recipeID == uuid.Nil || reporterID == uuid.Nil {
		return nil, ErrNilID
	}
	if !reason.Valid() {
		return nil, ArgError("reason", "invalid report reason")
	}

	r := &model.RecipeReport{
		ID:          uuid.Must(uuid.NewV4()),
		RecipeID:    recipeID,
		ReporterID:  reporterID,
		Reason:      reason,
		Description: description,
		Status:      model.ReportStatusPending,
	}
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if exists, err := dbExists(tx, &model.Recipe{ID: recipeID}); err != nil {
			return err
		} else if !exists {
			return ErrNotFound
		}
		return tx.Create(r).Error
	})
	if err != nil {
		if isMySQLDuplicatedRecordErr(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.ReportCreated,
		Fields: hub.Fields{
			"report_id": r.ID,
			"report":    r,
		},
	})
	return r, nil
}

// GetReport implements ReportRepository interface.
func (repo *GormRepository) GetReport(id uuid.UUID) (*model.RecipeReport, error) {
	if id == uuid.Nil {
		return nil, ErrNilID
	}
	r := &model.RecipeReport{}
	if err := repo.db.Take(r, &model.RecipeReport{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return r, nil
}

// GetReports implements ReportRepository interface.
func (repo *GormRepository) GetReports(q ReportsQuery) (arr []*model.RecipeReport, err error) {
	arr = make([]*model.RecipeReport, 0)
	tx := repo.db
	if len(q.Status) > 0 {
		tx = tx.Where("status = ?", q.Status)
	}
	err = tx.Scopes(limitAndOffset(q.Limit, q.Offset)).Order("created_at").Find(&arr).Error
	return arr, err
}

// ResolveReport implements ReportRepository interface.
//
// pending状態の行への条件付きUPDATEによりexactly-onceを保証する。
// 競合した二重解決は片方が必ずErrAlreadyResolvedになる。
func (repo *GormRepository) ResolveReport(reportID, resolverID uuid.UUID, notes string) error {
	if reportID == uuid.Nil || resolverID == uuid.Nil {
		return ErrNilID
	}

	err := repo.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RecipeReport{}).
			Where("id = ? AND status = ?", reportID, model.ReportStatusPending).
			Updates(map[string]interface{}{
				"status":           model.ReportStatusResolved,
				"resolved_by":      resolverID,
				"resolved_at":      null.TimeFrom(time.Now()),
				"moderation_notes": null.StringFrom(notes),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var r model.RecipeReport
			if err := tx.Take(&r, &model.RecipeReport{ID: reportID}).Error; err != nil {
				return convertError(err)
			}
			return ErrAlreadyResolved
		}
		return nil
	})
	if err != nil {
		return err
	}

	repo.hub.Publish(hub.Message{
		Name: event.ReportResolved,
		Fields: hub.Fields{
			"report_id":   reportID,
			"resolver_id": resolverID,
		},
	})
	return nil
}
