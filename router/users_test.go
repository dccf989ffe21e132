package router

import (
	"net/http"
	"testing"

	"github.com/recetario/recetario/router/session"
	"github.com/recetario/recetario/service/rbac/permission"
	"github.com/recetario/recetario/utils/random"
)

func TestHandlers_CreateUser(t *testing.T) {
	t.Parallel()
	_, server := setup(t, common)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		name := random.AlphaNumeric(20)
		e := R(t, server)
		obj := e.POST("/api/v1/users").
			WithJSON(map[string]string{"name": name, "password": "testtesttesttest"}).
			Expect().
			Status(http.StatusCreated).
			JSON().
			Object()
		obj.Value("name").String().IsEqual(name)
		obj.Value("role").String().IsEqual("member")
		obj.NotContainsKey("password")
	})

	t.Run("name conflict", func(t *testing.T) {
		t.Parallel()
		repo, _ := setup(t, common)
		user := Member(t, repo)
		e := R(t, server)
		e.POST("/api/v1/users").
			WithJSON(map[string]string{"name": user.Name, "password": "testtesttesttest"}).
			Expect().
			Status(http.StatusConflict)
	})

	t.Run("short password", func(t *testing.T) {
		t.Parallel()
		e := R(t, server)
		e.POST("/api/v1/users").
			WithJSON(map[string]string{"name": random.AlphaNumeric(20), "password": "short"}).
			Expect().
			Status(http.StatusBadRequest)
	})
}

func TestHandlers_GetMe(t *testing.T) {
	t.Parallel()
	repo, server := setup(t, common)
	user := Member(t, repo)

	t.Run("not logged in", func(t *testing.T) {
		t.Parallel()
		e := R(t, server)
		e.GET("/api/v1/users/me").
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		e := R(t, server)
		obj := e.GET("/api/v1/users/me").
			WithCookie(session.CookieName, S(t, common, user.ID)).
			Expect().
			Status(http.StatusOK).
			JSON().
			Object()
		obj.Value("id").String().IsEqual(user.ID.String())
		obj.Value("name").String().IsEqual(user.Name)
		perms := obj.Value("permissions").Array()
		perms.ContainsAny(string(permission.InteractRecipe))
		perms.NotContainsAll(string(permission.DeleteRecipe))
	})
}
