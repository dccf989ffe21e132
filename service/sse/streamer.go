package sse

import (
	"net/http"
	"time"

	"github.com/gofrs/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ctxKey int

// CtxUserIDKey リクエストコンテキストに接続ユーザーIDを載せるキー
const CtxUserIDKey ctxKey = iota

var sseConnectionsCounter = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "recetario",
	Name:      "sse_connections",
})

// Streamer 通知イベントのSSEストリーマー
type Streamer struct {
	conns *connectionMap
	stop  chan struct{}
}

// NewStreamer SSEストリーマーを作成します
func NewStreamer() *Streamer {
	return &Streamer{
		conns: newConnectionMap(),
		stop:  make(chan struct{}),
	}
}

// Dispose 全接続を切断し、以降の接続受付を停止します
func (s *Streamer) Dispose() {
	close(s.stop)
}

// Broadcast イベントデータを全コネクションに配信します
func (s *Streamer) Broadcast(data *EventData) {
	s.conns.broadcast(data)
}

// Multicast イベントデータを指定ユーザーの全コネクションに配信します
func (s *Streamer) Multicast(userID uuid.UUID, data *EventData) {
	s.conns.multicast(userID, data)
}

// ServeHTTP http.Handlerインターフェイスの実装
func (s *Streamer) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	select {
	case <-s.stop:
		http.Error(rw, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	default:
	}

	rw.Header().Set("Content-Type", "text/event-stream")
	rw.Header().Set("Cache-Control", "no-cache, no-transform")
	rw.Header().Set("Connection", "keep-alive")
	rw.Header().Set("X-Accel-Buffering", "no") // for nginx
	rw.WriteHeader(http.StatusOK)

	conn := newConnection(r.Context().Value(CtxUserIDKey).(uuid.UUID))
	s.conns.add(conn)
	// 停止経路によらず必ず接続表から外してから閉じる
	defer func() {
		s.conns.remove(conn)
		conn.close()
	}()

	sseConnectionsCounter.Inc()
	defer sseConnectionsCounter.Dec()

	// タイムアウト対策で10秒おきにコメント行を送信する
	t := time.NewTicker(10 * time.Second)
	defer t.Stop()

	fl := rw.(http.Flusher)
	fl.Flush()
	for {
		select {
		case <-s.stop: // サーバーが停止
			return

		case <-r.Context().Done(): // クライアントが切断
			return

		case m := <-conn.send: // イベントを送信
			m.write(rw)
			fl.Flush()

		case <-t.C:
			_, _ = rw.Write([]byte(":\n\n"))
			fl.Flush()
		}
	}
}
