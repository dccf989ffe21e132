package router

import (
	"net/http"
	"strconv"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/extension/herror"
	"github.com/recetario/recetario/service/moderation"
)

// PostReportRequest POST /recipes/:recipeID/reports リクエストボディ
type PostReportRequest struct {
	Reason      model.ReportReason `json:"reason"`
	Description string             `json:"description"`
}

func (r PostReportRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Reason, vd.Required, vd.By(func(v interface{}) error {
			if !v.(model.ReportReason).Valid() {
				return vd.NewError("validation_invalid_reason", "unknown report reason")
			}
			return nil
		})),
		vd.Field(&r.Description, vd.RuneLength(0, 1000)),
	)
}

// CreateReport POST /recipes/:recipeID/reports
func (h *Handlers) CreateReport(c echo.Context) error {
	var req PostReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.Repo.CreateReport(getParamRecipe(c).ID, getRequestUserID(c), req.Reason, req.Description)
	if err != nil {
		switch {
		case err == repository.ErrAlreadyExists:
			return herror.Conflict("you have already reported this recipe")
		case repository.IsArgError(err):
			return herror.BadRequest(err)
		default:
			return herror.InternalServerError(err)
		}
	}
	h.L(c).Info("recipe report created",
		zap.Stringer("reportId", report.ID), zap.Stringer("recipeId", report.RecipeID))

	return c.JSON(http.StatusCreated, report)
}

// GetReports GET /reports
func (h *Handlers) GetReports(c echo.Context) error {
	var q repository.ReportsQuery
	if s := c.QueryParam("status"); len(s) > 0 {
		status := model.ReportStatus(s)
		if status != model.ReportStatusPending && status != model.ReportStatusResolved {
			return herror.BadRequest("invalid status")
		}
		q.Status = status
	}
	if s := c.QueryParam("limit"); len(s) > 0 {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return herror.BadRequest("invalid limit")
		}
		q.Limit = v
	}
	if s := c.QueryParam("offset"); len(s) > 0 {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return herror.BadRequest("invalid offset")
		}
		q.Offset = v
	}

	reports, err := h.Repo.GetReports(q)
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, reports)
}

// GetReport GET /reports/:reportID
func (h *Handlers) GetReport(c echo.Context) error {
	return c.JSON(http.StatusOK, getParamReport(c))
}

// ReportActionResponse 実行可能なモデレーションアクション
type ReportActionResponse struct {
	Action               moderation.ActionKind `json:"action"`
	Label                string                `json:"label"`
	RequiresConfirmation bool                  `json:"requiresConfirmation"`
	MutatesRecipe        bool                  `json:"mutatesRecipe"`
}

// GetReportActions GET /reports/actions
//
// サーバー側の権限判定に基づき、リクエストユーザーが実行できる
// アクションのみをUI表示順で返します。
func (h *Handlers) GetReportActions(c echo.Context) error {
	actions := h.Services.ModerationEngine.AvailableActions(getRequestUser(c))
	return c.JSON(http.StatusOK, lo.Map(actions, func(a moderation.Action, _ int) ReportActionResponse {
		return ReportActionResponse{
			Action:               a.Kind,
			Label:                a.Label,
			RequiresConfirmation: a.RequiresConfirmation,
			MutatesRecipe:        a.MutatesRecipe,
		}
	}))
}

// PostReportActionRequest POST /reports/:reportID/action リクエストボディ
type PostReportActionRequest struct {
	Action    moderation.ActionKind `json:"action"`
	Message   string                `json:"message"`
	Confirmed bool                  `json:"confirmed"`
}

func (r PostReportActionRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Action, vd.Required),
		vd.Field(&r.Message, vd.Required, vd.RuneLength(1, 1000)),
	)
}

// ReportActionResultResponse POST /reports/:reportID/action レスポンス
type ReportActionResultResponse struct {
	Report *model.RecipeReport `json:"report"`
	// NotificationSent falseの場合、アクションは成功したが投稿者への通知に失敗している
	NotificationSent bool `json:"notificationSent"`
}

// PostReportAction POST /reports/:reportID/action
func (h *Handlers) PostReportAction(c echo.Context) error {
	var req PostReportActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.Services.ModerationEngine.Execute(
		getRequestUser(c), getParamReport(c).ID, req.Action, req.Message, req.Confirmed)
	if err != nil {
		return serviceError(err)
	}
	h.L(c).Info("moderation action executed",
		zap.Stringer("reportId", result.Report.ID),
		zap.String("action", string(req.Action)),
		zap.Bool("notificationSent", result.NotificationSent))

	return c.JSON(http.StatusOK, &ReportActionResultResponse{
		Report:           result.Report,
		NotificationSent: result.NotificationSent,
	})
}
