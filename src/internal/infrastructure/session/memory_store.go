package session

import (
	"context"
	"sync"
	"time"

	appsession "github.com/Niko-MM/BonusLinkBot/src/internal/application/session"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// In-Memory Session Store
// ===========================

// DefaultTTL 對話狀態的預設閒置過期時間
const DefaultTTL = 30 * time.Minute

// MemoryStore 進程內對話狀態存取實作
//
// 過期語義：
// 1. Get 惰性檢查：閒置超過 TTL 的狀態視同不存在並順手清掉
// 2. RunJanitor 週期掃描：防止無人再訪的狀態佔住記憶體
//
// 對話狀態是可丟棄的草稿（用戶重新走一遍選單即可恢復），
// 因此不落庫，進程重啟即清空。
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*appsession.Session
	ttl      time.Duration

	now func() time.Time // 測試注入
}

// NewMemoryStore 創建對話狀態存取（ttl <= 0 時採用 DefaultTTL）
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[int64]*appsession.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get 取出參與者的對話狀態；不存在或已過期時 ok=false
func (m *MemoryStore) Get(actorID shared.ActorID) (*appsession.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[actorID.Int64()]
	if !ok {
		return nil, false
	}
	if m.expired(s) {
		delete(m.sessions, actorID.Int64())
		return nil, false
	}
	return s, true
}

// Put 寫入（或覆蓋）參與者的對話狀態
func (m *MemoryStore) Put(s *appsession.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ActorID.Int64()] = s
}

// Delete 丟棄參與者的對話狀態
func (m *MemoryStore) Delete(actorID shared.ActorID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, actorID.Int64())
}

// Len 返回當前保存的狀態數量（含尚未被掃掉的過期狀態）
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep 移除全部過期狀態，返回移除數量
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, key)
			removed++
		}
	}
	return removed
}

// RunJanitor 週期掃描過期狀態，直到 ctx 取消
//
// 在獨立 goroutine 中呼叫。
func (m *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// expired 判斷狀態是否閒置超過 TTL（調用方須持鎖）
func (m *MemoryStore) expired(s *appsession.Session) bool {
	return m.now().Sub(s.UpdatedAt) > m.ttl
}
