package session

import (
	"time"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// Conversation Session
// ===========================

// Step 對話步驟
//
// 對話是每個參與者獨立的小狀態機：多步流程（選網點、輸入
// 收銀員資料）在步驟間傳遞草稿，流程完成或過期後回到 Idle。
type Step string

const (
	// StepIdle 無進行中的流程（選單頂層）
	StepIdle Step = "idle"

	// 客戶側：發放流程
	StepSelectingVenue  Step = "selecting_venue"  // 等待客戶選擇網點
	StepSelectingAmount Step = "selecting_amount" // 等待客戶選擇購買金額

	// 客戶側：兌換流程
	StepSelectingSpendVenue Step = "selecting_spend_venue" // 等待客戶選擇兌換網點
	StepSelectingProduct    Step = "selecting_product"     // 等待客戶選擇商品

	// 管理員側：新增收銀員流程
	StepAwaitingStaffID    Step = "awaiting_staff_id"    // 等待輸入收銀員平台 ID
	StepAwaitingStaffName  Step = "awaiting_staff_name"  // 等待輸入姓名
	StepAwaitingStaffVenue Step = "awaiting_staff_venue" // 等待選擇網點

	// 管理員側：移除收銀員流程
	StepAwaitingRemoveID Step = "awaiting_remove_id" // 等待輸入要移除的 ID
)

// Session 單個參與者的對話狀態
//
// 草稿欄位只在對應流程的步驟間有意義，流程結束即整體丟棄。
type Session struct {
	ActorID shared.ActorID
	Step    Step

	// 流程草稿
	VenueID   string // 發放流程：已選網點
	StaffID   string // 新增收銀員流程：已輸入的平台 ID
	StaffName string // 新增收銀員流程：已輸入的姓名

	UpdatedAt time.Time
}

// NewSession 創建處於 Idle 的新對話狀態
func NewSession(actorID shared.ActorID) *Session {
	return &Session{
		ActorID:   actorID,
		Step:      StepIdle,
		UpdatedAt: time.Now(),
	}
}

// Advance 推進到下一個步驟（刷新活動時間）
func (s *Session) Advance(step Step) {
	s.Step = step
	s.UpdatedAt = time.Now()
}

// Reset 放棄進行中的流程，清空草稿回到 Idle
func (s *Session) Reset() {
	s.Step = StepIdle
	s.VenueID = ""
	s.StaffID = ""
	s.StaffName = ""
	s.UpdatedAt = time.Now()
}

// Store 對話狀態存取介面
//
// 按 ActorID 鍵控，每個參與者一份獨立狀態。過期語義由實作
// 提供（閒置超過 TTL 的狀態視同不存在），調用方對過期無感：
// Get 未命中時開新流程即可。
type Store interface {
	// Get 取出參與者的對話狀態；不存在或已過期時 ok=false
	Get(actorID shared.ActorID) (s *Session, ok bool)

	// Put 寫入（或覆蓋）參與者的對話狀態
	Put(s *Session)

	// Delete 丟棄參與者的對話狀態
	Delete(actorID shared.ActorID)
}
