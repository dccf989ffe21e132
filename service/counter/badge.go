package counter

import "sync"

// Badge セッション単位の未読バッジ
//
// 未読数の観測列から「新着あり」フラグを導出します。フラグが立つのは
// 初期化済みの観測値から未読数が増加したときのみで、セッション開始時の
// 最初の観測では過去の未読が残っていても立ちません。
// フラグを下ろせるのはAckNewだけで、未読数の変化では下りません。
type Badge struct {
	mu          sync.Mutex
	initialized bool
	count       int
	hasNew      bool
}

// Observe 未読数の観測値を反映します
func (b *Badge) Observe(count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized && count > b.count {
		b.hasNew = true
	}
	b.count = count
	b.initialized = true
}

// Count 最後に観測した未読数を返します
func (b *Badge) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// HasNew 新着ありかどうか
func (b *Badge) HasNew() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasNew
}

// AckNew 新着ありフラグをクリアします (通知センターを開いた時等)
func (b *Badge) AckNew() {
	b.mu.Lock()
	b.hasNew = false
	b.mu.Unlock()
}
