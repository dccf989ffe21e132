package notification

import (
	"fmt"
	"os"
	"testing"
	"time"

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

const dbPrefix = "recetario-test-notification-"

var (
	repo    repository.Repository
	testHub *hub.Hub
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

	testHub = hub.New()
	r, err := repository.NewGormRepository(db, testHub, zap.NewNop())
	if err != nil {
		panic(err)
	}
	if _, err := r.Sync(); err != nil {
		panic(err)
	}
	repo = r

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

func mustMakeNotification(t *testing.T, recipientID uuid.UUID, typ model.NotificationType) *model.Notification {
	t.Helper()
	n, err := repo.CreateNotification(repository.CreateNotificationArgs{
		RecipientID: recipientID,
		Type:        typ,
		Message:     "mensaje de prueba",
	})
	require.NoError(t, err)
	return n
}

func TestCenterActivate(t *testing.T) {
	t.Parallel()
	user := mustMakeUser(t)
	mustMakeNotification(t, user.ID, model.NotificationTypeLike)
	mustMakeNotification(t, user.ID, model.NotificationTypeModeration)

	c := NewCenter(user.ID, repo, testHub, zap.NewNop())
	defer c.Deactivate()
	require.NoError(t, c.Activate())

	items := c.Items()
	require.Len(t, items, 2)
	// 作成日時降順で、タイトルが導出されている
	assert.Equal(t, "Aviso de moderación", items[0].Title)
	assert.Equal(t, "Nuevo me gusta", items[1].Title)
	assert.Equal(t, 2, c.Unread())

	// セッション開始時点の未読では新着バッジは立たない
	assert.False(t, c.Badge().HasNew())
}

func TestCenterRefreshOnEvent(t *testing.T) {
	t.Parallel()
	user := mustMakeUser(t)

	c := NewCenter(user.ID, repo, testHub, zap.NewNop())
	defer c.Deactivate()
	require.NoError(t, c.Activate())
	require.Empty(t, c.Items())

	mustMakeNotification(t, user.ID, model.NotificationTypeSave)

	// イベント受信を契機にストアから読み直される
	require.Eventually(t, func() bool {
		return len(c.Items()) == 1 && c.Unread() == 1
	}, time.Second, 10*time.Millisecond)
	assert.True(t, c.Badge().HasNew())

	// 全既読で未読が0になってもバッジはAckNewまで残る
	read, err := c.MarkAllRead()
	require.NoError(t, err)
	assert.Equal(t, 1, read)
	assert.Equal(t, 0, c.Unread())
	assert.True(t, c.Badge().HasNew())

	c.Badge().AckNew()
	assert.False(t, c.Badge().HasNew())
}

func TestCenterIgnoresOtherRecipients(t *testing.T) {
	t.Parallel()
	user := mustMakeUser(t)
	other := mustMakeUser(t)

	c := NewCenter(user.ID, repo, testHub, zap.NewNop())
	defer c.Deactivate()
	require.NoError(t, c.Activate())

	mustMakeNotification(t, other.ID, model.NotificationTypeLike)

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, c.Items())
	assert.False(t, c.Badge().HasNew())
}

func TestCenterMarkRead(t *testing.T) {
	t.Parallel()
	user := mustMakeUser(t)
	n := mustMakeNotification(t, user.ID, model.NotificationTypeLike)
	mustMakeNotification(t, user.ID, model.NotificationTypeComment)

	c := NewCenter(user.ID, repo, testHub, zap.NewNop())
	defer c.Deactivate()
	require.NoError(t, c.Activate())

	require.NoError(t, c.MarkRead(n.ID))
	assert.Equal(t, 1, c.Unread())
	// 冪等
	require.NoError(t, c.MarkRead(n.ID))
	assert.Equal(t, 1, c.Unread())

	// 既読化ではバッジは立たない
	assert.False(t, c.Badge().HasNew())
}

func TestCenterMarkAllRead(t *testing.T) {
	t.Parallel()
	user := mustMakeUser(t)
	mustMakeNotification(t, user.ID, model.NotificationTypeLike)
	mustMakeNotification(t, user.ID, model.NotificationTypeSave)

	c := NewCenter(user.ID, repo, testHub, zap.NewNop())
	defer c.Deactivate()
	require.NoError(t, c.Activate())

	read, err := c.MarkAllRead()
	require.NoError(t, err)
	assert.Equal(t, 2, read)
	assert.Equal(t, 0, c.Unread())

	read, err = c.MarkAllRead()
	require.NoError(t, err)
	assert.Equal(t, 0, read)
}

func TestCenterDeactivate(t *testing.T) {
	t.Parallel()
	user := mustMakeUser(t)

	c := NewCenter(user.ID, repo, testHub, zap.NewNop())
	// 起動していなくても安全
	c.Deactivate()

	require.NoError(t, c.Activate())
	c.Deactivate()
	// 多重呼び出しも安全
	c.Deactivate()

	// 停止後はイベントで更新されない
	mustMakeNotification(t, user.ID, model.NotificationTypeLike)
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, c.Items())
}
