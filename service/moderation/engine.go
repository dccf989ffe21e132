package moderation

import (
	"errors"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/gateway"
	"github.com/recetario/recetario/utils/validator"
)

var (
	// ErrUnknownAction 未定義のアクション種別が指定された
	ErrUnknownAction = errors.New("unknown moderation action")
	// ErrConfirmationRequired 不可逆アクションに確認フラグが立っていない
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Result モデレーションアクションの実行結果
type Result struct {
	Report *model.RecipeReport
	// NotificationSent 投稿者への通知が作成できたかどうか
	//
	// falseでもアクション自体は成功しています(部分成功)。
	NotificationSent bool
}

// Engine モデレーションアクションエンジン
//
// 通報に対するアクションを 検証 → レシピ変更 → 投稿者通知 → 通報解決 の
// 順で実行します。通知の失敗はアクションを失敗させません。
type Engine struct {
	repo    repository.Repository
	gateway gateway.Gateway
	logger  *zap.Logger
}

// NewEngine モデレーションアクションエンジンを生成します
func NewEngine(repo repository.Repository, gw gateway.Gateway, logger *zap.Logger) *Engine {
	return &Engine{
		repo:    repo,
		gateway: gw,
		logger:  logger.Named("moderation"),
	}
}

// AvailableActions 実行者が実行可能なアクションの一覧をUI表示順で返します
//
// 権限のないアクション(一般モデレーターに対するEliminar等)は候補から
// 除外され、選択肢として提示されません。
func (e *Engine) AvailableActions(actor *model.User) []Action {
	result := make([]Action, 0, len(Actions))
	for _, a := range Actions {
		if e.gateway.IsGranted(actor, a.Permission) {
			result = append(result, a)
		}
	}
	return result
}

// Execute 指定した通報に対してモデレーションアクションを実行します
//
// 成功した場合、解決済みの通報を含むResultとnilを返します。
// メッセージが空の場合、ArgumentErrorを返します。
// ActionDeleteでconfirmedがfalseの場合、何も変更せずに
// ErrConfirmationRequiredを返します。
// 権限がない場合、gateway.ErrForbiddenを返します。
// 通報が既に解決済みの場合、repository.ErrAlreadyResolvedを返します。
func (e *Engine) Execute(actor *model.User, reportID uuid.UUID, kind ActionKind, message string, confirmed bool) (*Result, error) {
	action, ok := GetAction(kind)
	if !ok {
		return nil, ErrUnknownAction
	}

	// 通知メッセージは全アクションで必須
	if err := vd.Validate(message, validator.ModerationMessageRule...); err != nil {
		return nil, repository.ArgError("message", err.Error())
	}

	if !e.gateway.IsGranted(actor, action.Permission) {
		if actor == nil {
			return nil, gateway.ErrUnauthenticated
		}
		return nil, gateway.ErrForbidden
	}

	report, err := e.repo.GetReport(reportID)
	if err != nil {
		return nil, err
	}
	if report.IsResolved() {
		return nil, repository.ErrAlreadyResolved
	}

	// 削除後はレシピ行が消えるため、通知に載せる情報を先に取得しておく
	recipe, err := e.repo.GetRecipe(report.RecipeID)
	if err != nil {
		return nil, err
	}

	// 不可逆アクションは確認済みフラグがなければここで止める
	if action.RequiresConfirmation && !confirmed {
		return nil, ErrConfirmationRequired
	}

	switch kind {
	case ActionDelete:
		if err := e.gateway.DeleteRecipe(actor, recipe.ID); err != nil {
			return nil, err
		}
	case ActionMakePrivate:
		if err := e.gateway.RestrictRecipe(actor, recipe.ID); err != nil {
			return nil, err
		}
	case ActionRequestChanges:
		// レシピは変更しない
	}

	result := &Result{NotificationSent: true}
	if err := e.notifyOwner(actor, action, recipe, report, message); err != nil {
		// 通知の失敗でアクション全体は失敗させない
		e.logger.Warn("failed to notify recipe owner",
			zap.Stringer("reportId", report.ID),
			zap.Stringer("ownerId", recipe.OwnerID),
			zap.String("action", string(kind)),
			zap.Error(err))
		result.NotificationSent = false
	}

	if err := e.gateway.ResolveReport(actor, report.ID, "["+action.Label+"] "+message); err != nil {
		return nil, err
	}

	resolved, err := e.repo.GetReport(report.ID)
	if err != nil {
		return nil, err
	}
	result.Report = resolved
	return result, nil
}

func (e *Engine) notifyOwner(actor *model.User, action Action, recipe *model.Recipe, report *model.RecipeReport, message string) error {
	args := repository.CreateNotificationArgs{
		RecipientID: recipe.OwnerID,
		Type:        model.NotificationTypeModeration,
		Message:     message,
		Metadata: model.NotificationMetadata{
			model.MetadataKeyActionKind:   string(action.Kind),
			model.MetadataKeyRecipeName:   recipe.Name,
			model.MetadataKeyReportReason: string(report.Reason),
		},
	}
	// 削除済みレシピへの参照は残さない
	if action.Kind != ActionDelete {
		args.RecipeID = uuid.NullUUID{UUID: recipe.ID, Valid: true}
	}
	_, err := e.gateway.EmitNotification(actor, args)
	return err
}
