package interaction

import (
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
	"github.com/recetario/recetario/service/rbac/role"
	"github.com/recetario/recetario/utils/random"
)

const dbPrefix = "recetario-test-interaction-"

var (
	repo        repository.Repository
	coordinator *Coordinator
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
	coordinator = NewCoordinator(repo, zap.NewNop())

	os.Exit(m.Run())
}

func getEnvOrDefault(env string, def string) string {
	s := os.Getenv(env)
	if len(s) == 0 {
		return def
	}
	return s
}

func mustMakeUser(t *testing.T) *model.User {
	t.Helper()
	u, err := repo.CreateUser(repository.CreateUserArgs{Name: random.AlphaNumeric(20), Role: role.Member})
	require.NoError(t, err)
	return u
}

func mustMakeRecipe(t *testing.T, owner *model.User) *model.Recipe {
	t.Helper()
	r, err := repo.CreateRecipe(repository.CreateRecipeArgs{OwnerID: owner.ID, Name: random.AlphaNumeric(20)})
	require.NoError(t, err)
	return r
}

func TestCoordinatorOpen(t *testing.T) {
	t.Parallel()
	user := mustMakeUser(t)
	recipe := mustMakeRecipe(t, user)

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		_, err := coordinator.Open(nil, recipe.ID)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("recipe not found", func(t *testing.T) {
		t.Parallel()
		_, err := coordinator.Open(user, uuid.Must(uuid.NewV4()))
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		s, err := coordinator.Open(user, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, Status{}, s.View())
	})
}

func TestSessionToggle(t *testing.T) {
	t.Parallel()
	owner := mustMakeUser(t)
	user := mustMakeUser(t)
	recipe := mustMakeRecipe(t, owner)

	s, err := coordinator.Open(user, recipe.ID)
	require.NoError(t, err)

	// オン
	status, err := s.Toggle(model.InteractionKindLike)
	require.NoError(t, err)
	assert.Equal(t, Status{LikeCount: 1, Liked: true}, status)

	// 保存は独立にトグルされる
	status, err = s.Toggle(model.InteractionKindSave)
	require.NoError(t, err)
	assert.Equal(t, Status{LikeCount: 1, SaveCount: 1, Liked: true, Saved: true}, status)

	// オフ
	status, err = s.Toggle(model.InteractionKindLike)
	require.NoError(t, err)
	assert.Equal(t, Status{SaveCount: 1, Saved: true}, status)

	// 再度オン
	status, err = s.Toggle(model.InteractionKindLike)
	require.NoError(t, err)
	assert.Equal(t, Status{LikeCount: 1, SaveCount: 1, Liked: true, Saved: true}, status)
}

func TestSessionToggleCountsOtherUsers(t *testing.T) {
	t.Parallel()
	owner := mustMakeUser(t)
	recipe := mustMakeRecipe(t, owner)

	other := mustMakeUser(t)
	require.NoError(t, repo.AddRecipeInteraction(other.ID, recipe.ID, model.InteractionKindLike))

	s, err := coordinator.Open(mustMakeUser(t), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, Status{LikeCount: 1}, s.View())

	status, err := s.Toggle(model.InteractionKindLike)
	require.NoError(t, err)
	assert.Equal(t, Status{LikeCount: 2, Liked: true}, status)

	// 自分のオフで他者の分は消えない
	status, err = s.Toggle(model.InteractionKindLike)
	require.NoError(t, err)
	assert.Equal(t, Status{LikeCount: 1}, status)
}

func TestSessionToggleRollback(t *testing.T) {
	t.Parallel()
	owner := mustMakeUser(t)
	user := mustMakeUser(t)
	recipe := mustMakeRecipe(t, owner)

	s, err := coordinator.Open(user, recipe.ID)
	require.NoError(t, err)

	// 書き込み先が消えた状態でのトグルは失敗し、表示状態が巻き戻る
	require.NoError(t, repo.DeleteRecipe(recipe.ID))

	status, err := s.Toggle(model.InteractionKindLike)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, Status{}, status)
	assert.Equal(t, Status{}, s.View())
}
