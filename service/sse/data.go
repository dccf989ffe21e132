package sse

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// EventType 通知ストリームで配信するイベント種別
type EventType string

const (
	// EventNotificationCreated 新しい通知が作成された
	EventNotificationCreated = EventType("NOTIFICATION_CREATED")
	// EventNotificationRead 通知が既読になった
	EventNotificationRead = EventType("NOTIFICATION_READ")
	// EventNotificationAllRead 全通知が既読になった
	EventNotificationAllRead = EventType("NOTIFICATION_ALL_READ")
)

var json = jsoniter.ConfigFastest

// EventData 通知ストリームのイベント
//
// Payloadは表示のヒントでしかない。クライアントは受信を契機に
// 現在値を読み直すこと。
type EventData struct {
	Type    EventType
	Payload interface{}
}

// write text/event-stream形式で1イベントを書き出す
func (d *EventData) write(rw http.ResponseWriter) {
	_, _ = fmt.Fprintf(rw, "event: %s\ndata: ", d.Type)
	stream := json.BorrowStream(rw)
	stream.WriteVal(d.Payload)
	_ = stream.Flush()
	json.ReturnStream(stream)
	_, _ = rw.Write([]byte("\n\n"))
}
