package router

import (
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/extension/herror"
	"github.com/recetario/recetario/utils/validator"
)

// PostRecipeRequest POST /recipes リクエストボディ
type PostRecipeRequest struct {
	Name       string                 `json:"name"`
	Visibility model.RecipeVisibility `json:"visibility"`
}

func (r PostRecipeRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Name, validator.RecipeNameRuleRequired...),
		vd.Field(&r.Visibility, vd.By(func(v interface{}) error {
			vis := v.(model.RecipeVisibility)
			if len(vis) == 0 {
				return nil
			}
			if !vis.Valid() || vis == model.RecipeVisibilityRestricted {
				return vd.NewError("validation_invalid_visibility", "must be public or private")
			}
			return nil
		})),
	)
}

// CreateRecipe POST /recipes
func (h *Handlers) CreateRecipe(c echo.Context) error {
	var req PostRecipeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if len(req.Visibility) == 0 {
		req.Visibility = model.RecipeVisibilityPublic
	}

	recipe, err := h.Repo.CreateRecipe(repository.CreateRecipeArgs{
		OwnerID:    getRequestUserID(c),
		Name:       req.Name,
		Visibility: req.Visibility,
	})
	if err != nil {
		if repository.IsArgError(err) {
			return herror.BadRequest(err)
		}
		return herror.InternalServerError(err)
	}
	h.L(c).Info("recipe created", zap.Stringer("recipeId", recipe.ID))

	return c.JSON(http.StatusCreated, recipe)
}

// GetRecipe GET /recipes/:recipeID
func (h *Handlers) GetRecipe(c echo.Context) error {
	return c.JSON(http.StatusOK, getParamRecipe(c))
}

// GetRecipeInteraction GET /recipes/:recipeID/interaction
func (h *Handlers) GetRecipeInteraction(c echo.Context) error {
	s, err := h.Services.InteractionCoordinator.Open(getRequestUser(c), getParamRecipe(c).ID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// PutRecipeInteractionRequest PUT /recipes/:recipeID/interaction リクエストボディ
type PutRecipeInteractionRequest struct {
	Kind model.InteractionKind `json:"kind"`
}

func (r PutRecipeInteractionRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Kind, vd.Required, vd.By(func(v interface{}) error {
			if !v.(model.InteractionKind).Valid() {
				return vd.NewError("validation_invalid_kind", "must be like or save")
			}
			return nil
		})),
	)
}

// ToggleRecipeInteraction PUT /recipes/:recipeID/interaction
func (h *Handlers) ToggleRecipeInteraction(c echo.Context) error {
	var req PutRecipeInteractionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.Services.InteractionCoordinator.Open(getRequestUser(c), getParamRecipe(c).ID)
	if err != nil {
		return serviceError(err)
	}
	status, err := s.Toggle(req.Kind)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, status)
}
