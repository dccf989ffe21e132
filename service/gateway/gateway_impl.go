package gateway

import (
	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/rbac"
	"github.com/recetario/recetario/service/rbac/permission"
)

type gatewayImpl struct {
	repo   repository.Repository
	rbac   rbac.RBAC
	logger *zap.Logger
}

// NewGateway 特権コマンドゲートウェイを生成します
func NewGateway(repo repository.Repository, r rbac.RBAC, logger *zap.Logger) Gateway {
	return &gatewayImpl{
		repo:   repo,
		rbac:   r,
		logger: logger.Named("gateway"),
	}
}

// IsGranted implements Gateway interface.
func (g *gatewayImpl) IsGranted(actor *model.User, p permission.Permission) bool {
	if actor == nil || !actor.IsActive() {
		return false
	}
	return g.rbac.IsGranted(actor.Role, p)
}

// DeleteRecipe implements Gateway interface.
func (g *gatewayImpl) DeleteRecipe(actor *model.User, recipeID uuid.UUID) error {
	if err := g.ensure(actor, permission.DeleteRecipe); err != nil {
		return err
	}
	if err := g.repo.DeleteRecipe(recipeID); err != nil {
		return err
	}
	g.logger.Info("recipe deleted by moderation",
		zap.Stringer("recipeId", recipeID),
		zap.Stringer("actorId", actor.ID))
	return nil
}

// RestrictRecipe implements Gateway interface.
func (g *gatewayImpl) RestrictRecipe(actor *model.User, recipeID uuid.UUID) error {
	if err := g.ensure(actor, permission.RestrictRecipe); err != nil {
		return err
	}
	if err := g.repo.RestrictRecipe(recipeID); err != nil {
		return err
	}
	g.logger.Info("recipe restricted by moderation",
		zap.Stringer("recipeId", recipeID),
		zap.Stringer("actorId", actor.ID))
	return nil
}

// ResolveReport implements Gateway interface.
func (g *gatewayImpl) ResolveReport(actor *model.User, reportID uuid.UUID, notes string) error {
	if err := g.ensure(actor, permission.ResolveReport); err != nil {
		return err
	}
	return g.repo.ResolveReport(reportID, actor.ID, notes)
}

// EmitNotification implements Gateway interface.
func (g *gatewayImpl) EmitNotification(actor *model.User, args repository.CreateNotificationArgs) (*model.Notification, error) {
	if err := g.ensure(actor, permission.EmitNotification); err != nil {
		return nil, err
	}
	args.ActorID = uuid.NullUUID{UUID: actor.ID, Valid: true}
	return g.repo.CreateNotification(args)
}

// ensure 権限検証。失敗した場合は書き込み前にエラーを返す
func (g *gatewayImpl) ensure(actor *model.User, p permission.Permission) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsActive() || !g.rbac.IsGranted(actor.Role, p) {
		g.logger.Warn("privileged command rejected",
			zap.Stringer("actorId", actor.ID),
			zap.String("role", actor.Role),
			zap.String("permission", p.Name()))
		return ErrForbidden
	}
	return nil
}
