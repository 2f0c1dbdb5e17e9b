package client

import "github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"

// ===========================
// Client Repository Interfaces
// ===========================

// ClientRepository 客戶儲存庫介面
//
// 架構原則：
// - 介面定義在 Domain Layer，由 Infrastructure Layer 實作（依賴反轉）
// - 結算相關操作以「條件原子更新」表達，勝負由儲存層的
//   受影響行數決定，而非先讀後寫（避免 check-then-act 競態）
type ClientRepository interface {
	// SaveIfAbsent 冪等註冊：客戶不存在時寫入，已存在時不動任何欄位
	//
	// 返回：
	// - created: true 表示本次呼叫建立了新客戶
	//
	// 同一 ActorID 併發註冊時，恰好一個呼叫者得到 created=true。
	SaveIfAbsent(ctx shared.TransactionContext, c *Client) (created bool, err error)

	// FindByActorID 按平台標識查找客戶
	//
	// 返回：
	// - 找不到時返回 ErrClientNotFound
	FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) (*Client, error)

	// Credit 原子入帳：餘額累加並遞增購買次數
	//
	// 對應 SQL 語義：
	//   UPDATE clients SET points = points + ?, total_purchases = total_purchases + 1
	//   WHERE actor_id = ?
	//
	// 客戶不存在時返回 ErrClientNotFound。
	Credit(ctx shared.TransactionContext, actorID shared.ActorID, amount PointsAmount) error

	// DebitIfSufficient 條件原子扣帳
	//
	// 對應 SQL 語義：
	//   UPDATE clients SET points = points - ?
	//   WHERE actor_id = ? AND points >= ?
	//
	// 返回：
	// - debited=true: 扣款成功
	// - debited=false: 餘額不足（受影響行數為 0），狀態未變
	//
	// 注意：客戶不存在與餘額不足同樣表現為 debited=false，
	// 呼叫方若需區分應先 FindByActorID。
	DebitIfSufficient(ctx shared.TransactionContext, actorID shared.ActorID, amount PointsAmount) (debited bool, err error)
}

// LedgerRepository 積分帳本儲存庫介面（append-only）
type LedgerRepository interface {
	// Append 追加一筆帳本記錄
	//
	// 必須與觸發它的餘額變動在同一個事務中執行。
	Append(ctx shared.TransactionContext, entry *LedgerEntry) error

	// FindByActorID 按客戶查詢帳本記錄（依記錄時間升冪）
	FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) ([]*LedgerEntry, error)
}
