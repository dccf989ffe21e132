package moderation

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/recetario/recetario/migration"
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/gateway"
	"github.com/recetario/recetario/service/rbac"
	"github.com/recetario/recetario/service/rbac/role"
	"github.com/recetario/recetario/utils/random"
)

const dbPrefix = "recetario-test-moderation-"

var (
	repo   repository.Repository
	rb     rbac.RBAC
	engine *Engine
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

	rb, err = rbac.New(db)
	if err != nil {
		panic(err)
	}
	engine = NewEngine(repo, gateway.NewGateway(repo, rb, zap.NewNop()), zap.NewNop())

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

// 通報されたレシピ一式 (投稿者・レシピ・pending通報) を作る
func mustMakeReportedRecipe(t *testing.T) (*model.User, *model.Recipe, *model.RecipeReport) {
	t.Helper()
	owner := mustMakeUser(t, role.Member)
	reporter := mustMakeUser(t, role.Member)
	recipe, err := repo.CreateRecipe(repository.CreateRecipeArgs{OwnerID: owner.ID, Name: random.AlphaNumeric(20)})
	require.NoError(t, err)
	report, err := repo.CreateReport(recipe.ID, reporter.ID, model.ReportReasonInappropriate, "contenido ofensivo")
	require.NoError(t, err)
	return owner, recipe, report
}

func latestNotification(t *testing.T, recipientID uuid.UUID) *model.Notification {
	t.Helper()
	arr, err := repo.GetNotifications(repository.NotificationsQuery{
		RecipientID: recipientID,
		Type:        model.NotificationTypeModeration,
		Limit:       1,
	})
	require.NoError(t, err)
	require.Len(t, arr, 1)
	return arr[0]
}

func TestEngineAvailableActions(t *testing.T) {
	t.Parallel()
	member := mustMakeUser(t, role.Member)
	moderator := mustMakeUser(t, role.Moderator)
	admin := mustMakeUser(t, role.Admin)

	assert.Empty(t, engine.AvailableActions(member))
	assert.Empty(t, engine.AvailableActions(nil))

	kinds := func(actions []Action) []ActionKind {
		res := make([]ActionKind, len(actions))
		for i, a := range actions {
			res[i] = a.Kind
		}
		return res
	}

	// 一般モデレーターにはEliminarが提示されない
	assert.Equal(t, []ActionKind{ActionMakePrivate, ActionRequestChanges}, kinds(engine.AvailableActions(moderator)))
	assert.Equal(t, []ActionKind{ActionDelete, ActionMakePrivate, ActionRequestChanges}, kinds(engine.AvailableActions(admin)))
}

func TestEngineExecuteRequestChanges(t *testing.T) {
	t.Parallel()
	moderator := mustMakeUser(t, role.Moderator)
	owner, recipe, report := mustMakeReportedRecipe(t)

	result, err := engine.Execute(moderator, report.ID, ActionRequestChanges, "Agrega la lista de ingredientes", false)
	require.NoError(t, err)
	assert.True(t, result.NotificationSent)

	// 通報は解決され、注釈にアクションラベルが付く
	assert.Equal(t, model.ReportStatusResolved, result.Report.Status)
	assert.Equal(t, moderator.ID, result.Report.ResolvedBy.UUID)
	assert.Equal(t, "[Solicitar cambios] Agrega la lista de ingredientes", result.Report.ModerationNotes.String)

	// レシピ自体は変更されない
	fresh, err := repo.GetRecipe(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RecipeVisibilityPublic, fresh.Visibility)

	// 投稿者に文脈付きの通知が作成される
	n := latestNotification(t, owner.ID)
	assert.Equal(t, "Agrega la lista de ingredientes", n.Message)
	assert.Equal(t, string(ActionRequestChanges), n.Metadata.GetString(model.MetadataKeyActionKind))
	assert.Equal(t, recipe.Name, n.Metadata.GetString(model.MetadataKeyRecipeName))
	assert.Equal(t, string(model.ReportReasonInappropriate), n.Metadata.GetString(model.MetadataKeyReportReason))
	assert.Equal(t, recipe.ID, n.RecipeID.UUID)
	assert.Equal(t, moderator.ID, n.ActorID.UUID)
}

func TestEngineExecuteMakePrivate(t *testing.T) {
	t.Parallel()
	moderator := mustMakeUser(t, role.Moderator)
	_, recipe, report := mustMakeReportedRecipe(t)

	result, err := engine.Execute(moderator, report.ID, ActionMakePrivate, "Incumple las normas de la comunidad", false)
	require.NoError(t, err)
	assert.True(t, result.NotificationSent)

	fresh, err := repo.GetRecipe(recipe.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsRestricted())
}

func TestEngineExecuteDelete(t *testing.T) {
	t.Parallel()
	admin := mustMakeUser(t, role.Admin)
	moderator := mustMakeUser(t, role.Moderator)

	t.Run("requires confirmation", func(t *testing.T) {
		t.Parallel()
		_, recipe, report := mustMakeReportedRecipe(t)

		_, err := engine.Execute(admin, report.ID, ActionDelete, "Spam evidente", false)
		assert.ErrorIs(t, err, ErrConfirmationRequired)

		// 確認なしでは何も変更されない
		_, err = repo.GetRecipe(recipe.ID)
		assert.NoError(t, err)
		fresh, err := repo.GetReport(report.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ReportStatusPending, fresh.Status)
	})

	t.Run("forbidden for moderator", func(t *testing.T) {
		t.Parallel()
		_, recipe, report := mustMakeReportedRecipe(t)

		_, err := engine.Execute(moderator, report.ID, ActionDelete, "Spam evidente", true)
		assert.ErrorIs(t, err, gateway.ErrForbidden)
		_, err = repo.GetRecipe(recipe.ID)
		assert.NoError(t, err)
	})

	t.Run("confirmed", func(t *testing.T) {
		t.Parallel()
		owner, recipe, report := mustMakeReportedRecipe(t)

		result, err := engine.Execute(admin, report.ID, ActionDelete, "Spam evidente", true)
		require.NoError(t, err)
		assert.True(t, result.NotificationSent)
		assert.Equal(t, model.ReportStatusResolved, result.Report.Status)

		_, err = repo.GetRecipe(recipe.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		// 削除済みレシピへの参照は通知に残らないが、名前は表示用に残る
		n := latestNotification(t, owner.ID)
		assert.False(t, n.RecipeID.Valid)
		assert.Equal(t, recipe.Name, n.Metadata.GetString(model.MetadataKeyRecipeName))
		assert.Equal(t, string(ActionDelete), n.Metadata.GetString(model.MetadataKeyActionKind))
	})
}

func TestEngineExecuteValidation(t *testing.T) {
	t.Parallel()
	moderator := mustMakeUser(t, role.Moderator)
	_, _, report := mustMakeReportedRecipe(t)

	t.Run("unknown action", func(t *testing.T) {
		t.Parallel()
		_, err := engine.Execute(moderator, report.ID, ActionKind("quarantine"), "msg", false)
		assert.ErrorIs(t, err, ErrUnknownAction)
	})

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()
		_, err := engine.Execute(moderator, report.ID, ActionRequestChanges, "", false)
		assert.True(t, repository.IsArgError(err))

		// 不正な入力では何も変更されない
		fresh, err := repo.GetReport(report.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ReportStatusPending, fresh.Status)
	})
}

func TestEngineExecuteAlreadyResolved(t *testing.T) {
	t.Parallel()
	moderator := mustMakeUser(t, role.Moderator)
	_, _, report := mustMakeReportedRecipe(t)

	_, err := engine.Execute(moderator, report.ID, ActionRequestChanges, "primera revisión", false)
	require.NoError(t, err)

	_, err = engine.Execute(moderator, report.ID, ActionMakePrivate, "segunda revisión", false)
	assert.ErrorIs(t, err, repository.ErrAlreadyResolved)
}

// notifyFailRepo 通知作成だけが失敗するリポジトリ
type notifyFailRepo struct {
	repository.Repository
}

func (r *notifyFailRepo) CreateNotification(_ repository.CreateNotificationArgs) (*model.Notification, error) {
	return nil, errors.New("notification store unavailable")
}

func TestEngineExecutePartialSuccess(t *testing.T) {
	t.Parallel()
	moderator := mustMakeUser(t, role.Moderator)
	_, recipe, report := mustMakeReportedRecipe(t)

	failing := &notifyFailRepo{Repository: repo}
	e := NewEngine(failing, gateway.NewGateway(failing, rb, zap.NewNop()), zap.NewNop())

	result, err := e.Execute(moderator, report.ID, ActionMakePrivate, "Incumple las normas", false)
	require.NoError(t, err)

	// 通知は失敗するが、アクションと通報解決は成立する(部分成功)
	assert.False(t, result.NotificationSent)
	assert.Equal(t, model.ReportStatusResolved, result.Report.Status)
	fresh, err := repo.GetRecipe(recipe.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsRestricted())
}
