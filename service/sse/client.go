package sse

import (
	"sync"

	"github.com/gofrs/uuid"
)

// connection 1本のSSE接続
type connection struct {
	userID uuid.UUID
	id     uuid.UUID
	send   chan *EventData

	mu     sync.RWMutex
	closed bool
}

func newConnection(userID uuid.UUID) *connection {
	return &connection{
		userID: userID,
		id:     uuid.Must(uuid.NewV4()),
		send:   make(chan *EventData, 100),
	}
}

// push イベントを接続のバッファへ積む
//
// 切断済みの接続、バッファの溢れた接続へのイベントは捨てる。
// クライアントは受信を契機に読み直すので取りこぼしてよい。
func (c *connection) push(data *EventData) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// close 接続を閉じます。以降のpushは何もしない
func (c *connection) close() {
	c.mu.Lock()
	c.closed = true
	close(c.send)
	c.mu.Unlock()
}

// connectionMap ユーザーごとのSSE接続集合
type connectionMap struct {
	mu    sync.RWMutex
	users map[uuid.UUID]map[uuid.UUID]*connection
}

func newConnectionMap() *connectionMap {
	return &connectionMap{users: map[uuid.UUID]map[uuid.UUID]*connection{}}
}

func (m *connectionMap) add(c *connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns, ok := m.users[c.userID]
	if !ok {
		conns = map[uuid.UUID]*connection{}
		m.users[c.userID] = conns
	}
	conns[c.id] = c
}

func (m *connectionMap) remove(c *connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns, ok := m.users[c.userID]
	if !ok {
		return
	}
	delete(conns, c.id)
	if len(conns) == 0 {
		delete(m.users, c.userID)
	}
}

func (m *connectionMap) size(userID uuid.UUID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users[userID])
}

func (m *connectionMap) multicast(userID uuid.UUID, data *EventData) {
	m.mu.RLock()
	targets := make([]*connection, 0, len(m.users[userID]))
	for _, c := range m.users[userID] {
		targets = append(targets, c)
	}
	m.mu.RUnlock()

	for _, c := range targets {
		c.push(data)
	}
}

func (m *connectionMap) broadcast(data *EventData) {
	m.mu.RLock()
	targets := make([]*connection, 0)
	for _, conns := range m.users {
		for _, c := range conns {
			targets = append(targets, c)
		}
	}
	m.mu.RUnlock()

	for _, c := range targets {
		c.push(data)
	}
}
