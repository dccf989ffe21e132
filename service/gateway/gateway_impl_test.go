package gateway

import (
	"fmt"
	"os"
	"testing"

	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/recetario/recetario/migration"
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/rbac"
	"github.com/recetario/recetario/service/rbac/permission"
	"github.com/recetario/recetario/service/rbac/role"
	"github.com/recetario/recetario/utils/random"
)

const dbPrefix = "recetario-test-gateway-"

var (
	repo repository.Repository
	gw   Gateway
)

func TestMain(m *testing.M) {
	user := getEnvOrDefault("MARIADB_USERNAME", "root")
	pass := getEnvOrDefault("MARIADB_PASSWORD", "password")
	host := getEnvOrDefault("MARIADB_HOSTNAME", "127.0.0.1")
	port := getEnvOrDefault("MARIADB_PORT", "3306")

	if err := migration.CreateDatabasesIfNotExists(
		mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=true", user, pass, host, port)),
		dbPrefix, "common",
	); err != nil {
		panic(err)
	}

	db, err := gorm.Open(mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/%scommon?charset=utf8mb4&parseTime=true", user, pass, host, port, dbPrefix)))
	if err != nil {
		panic(err)
	}
	if err := migration.DropAll(db); err != nil {
		panic(err)
	}

	r, err := repository.NewGormRepository(db, hub.New(), zap.NewNop())
	if err != nil {
		panic(err)
	}
	if _, err := r.Sync(); err != nil {
		panic(err)
	}
	repo = r

	rb, err := rbac.New(db)
	if err != nil {
		panic(err)
	}
	gw = NewGateway(repo, rb, zap.NewNop())

	os.Exit(m.Run())
}

func getEnvOrDefault(env string, def string) string {
	s := os.Getenv(env)
	if len(s) == 0 {
		return def
	}
	return s
}

func mustMakeUser(t *testing.T, roleName string) *model.User {
	t.Helper()
	u, err := repo.CreateUser(repository.CreateUserArgs{Name: random.AlphaNumeric(20), Role: roleName})
	require.NoError(t, err)
	return u
}

func mustMakeRecipe(t *testing.T, owner *model.User) *model.Recipe {
	t.Helper()
	r, err := repo.CreateRecipe(repository.CreateRecipeArgs{OwnerID: owner.ID, Name: random.AlphaNumeric(20)})
	require.NoError(t, err)
	return r
}

func TestGatewayIsGranted(t *testing.T) {
	t.Parallel()
	member := mustMakeUser(t, role.Member)
	moderator := mustMakeUser(t, role.Moderator)
	admin := mustMakeUser(t, role.Admin)

	assert.False(t, gw.IsGranted(nil, permission.GetRecipe))
	assert.False(t, gw.IsGranted(member, permission.RestrictRecipe))
	assert.True(t, gw.IsGranted(member, permission.CreateReport))
	assert.True(t, gw.IsGranted(moderator, permission.RestrictRecipe))
	// Eliminarはadmin限定
	assert.False(t, gw.IsGranted(moderator, permission.DeleteRecipe))
	assert.True(t, gw.IsGranted(admin, permission.DeleteRecipe))

	deactivated := mustMakeUser(t, role.Admin)
	deactivated.Status = model.UserAccountStatusDeactivated
	assert.False(t, gw.IsGranted(deactivated, permission.GetRecipe))
}

func TestGatewayDeleteRecipe(t *testing.T) {
	t.Parallel()
	member := mustMakeUser(t, role.Member)
	moderator := mustMakeUser(t, role.Moderator)
	admin := mustMakeUser(t, role.Admin)
	recipe := mustMakeRecipe(t, member)

	t.Run("unauthenticated", func(t *testing.T) {
		assert.ErrorIs(t, gw.DeleteRecipe(nil, recipe.ID), ErrUnauthenticated)
	})

	t.Run("forbidden for moderator", func(t *testing.T) {
		assert.ErrorIs(t, gw.DeleteRecipe(moderator, recipe.ID), ErrForbidden)
		// 拒否時はストアに書き込まれない
		_, err := repo.GetRecipe(recipe.ID)
		assert.NoError(t, err)
	})

	t.Run("success for admin", func(t *testing.T) {
		require.NoError(t, gw.DeleteRecipe(admin, recipe.ID))
		_, err := repo.GetRecipe(recipe.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestGatewayRestrictRecipe(t *testing.T) {
	t.Parallel()
	member := mustMakeUser(t, role.Member)
	moderator := mustMakeUser(t, role.Moderator)
	recipe := mustMakeRecipe(t, member)

	assert.ErrorIs(t, gw.RestrictRecipe(member, recipe.ID), ErrForbidden)
	require.NoError(t, gw.RestrictRecipe(moderator, recipe.ID))

	fresh, err := repo.GetRecipe(recipe.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsRestricted())
}

func TestGatewayResolveReport(t *testing.T) {
	t.Parallel()
	member := mustMakeUser(t, role.Member)
	reporter := mustMakeUser(t, role.Member)
	moderator := mustMakeUser(t, role.Moderator)
	recipe := mustMakeRecipe(t, member)

	report, err := repo.CreateReport(recipe.ID, reporter.ID, model.ReportReasonSpam, "spam")
	require.NoError(t, err)

	assert.ErrorIs(t, gw.ResolveReport(member, report.ID, "notas"), ErrForbidden)
	require.NoError(t, gw.ResolveReport(moderator, report.ID, "notas"))

	fresh, err := repo.GetReport(report.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsResolved())
	assert.Equal(t, moderator.ID, fresh.ResolvedBy.UUID)
}

func TestGatewayEmitNotification(t *testing.T) {
	t.Parallel()
	member := mustMakeUser(t, role.Member)
	moderator := mustMakeUser(t, role.Moderator)

	args := repository.CreateNotificationArgs{
		RecipientID: member.ID,
		Type:        model.NotificationTypeModeration,
		Message:     "Revisa tu receta",
	}

	_, err := gw.EmitNotification(member, args)
	assert.ErrorIs(t, err, ErrForbidden)

	n, err := gw.EmitNotification(moderator, args)
	require.NoError(t, err)
	// 実行者がActorIDとして記録される
	assert.Equal(t, moderator.ID, n.ActorID.UUID)
}
