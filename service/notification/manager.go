package notification

import (
	"sync"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/recetario/recetario/repository"
)

// Manager ユーザーごとの通知センターを管理します
//
// センターは最初のアクセス時に起動され、Disposeまで保持されます。
type Manager struct {
	repo   repository.Repository
	hub    *hub.Hub
	logger *zap.Logger

	mu      sync.Mutex
	centers map[uuid.UUID]*Center
}

// NewManager 通知センターマネージャーを生成します
func NewManager(repo repository.Repository, hub *hub.Hub, logger *zap.Logger) *Manager {
	return &Manager{
		repo:    repo,
		hub:     hub,
		logger:  logger,
		centers: map[uuid.UUID]*Center{},
	}
}

// Get 指定したユーザーの通知センターを返します。未起動の場合は起動します
func (m *Manager) Get(userID uuid.UUID) (*Center, error) {
	m.mu.Lock()
	c, ok := m.centers[userID]
	if !ok {
		c = NewCenter(userID, m.repo, m.hub, m.logger)
		m.centers[userID] = c
	}
	m.mu.Unlock()

	if !ok {
		if err := c.Activate(); err != nil {
			m.mu.Lock()
			delete(m.centers, userID)
			m.mu.Unlock()
			c.Deactivate()
			return nil, err
		}
	}
	return c, nil
}

// Release 指定したユーザーの通知センターを停止して破棄します
func (m *Manager) Release(userID uuid.UUID) {
	m.mu.Lock()
	c, ok := m.centers[userID]
	delete(m.centers, userID)
	m.mu.Unlock()
	if ok {
		c.Deactivate()
	}
}

// Dispose 全ての通知センターを停止します
func (m *Manager) Dispose() {
	m.mu.Lock()
	centers := m.centers
	m.centers = map[uuid.UUID]*Center{}
	m.mu.Unlock()
	for _, c := range centers {
		c.Deactivate()
	}
}
