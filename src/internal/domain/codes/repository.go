package codes

import "github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"

// ===========================
// Code Repository Interface
// ===========================

// CodeRepository 交易碼儲存庫介面
//
// 兩個關鍵操作都是「由儲存層裁決」的原子操作：
// - Reserve: 唯一索引裁決碼是否可用
// - MarkUsedIfUnused: 條件更新裁決誰消費了碼
type CodeRepository interface {
	// Reserve 預留碼（insert-if-not-exists）
	//
	// 碼欄位上有唯一索引；碼已存在（無論是否已用）時返回
	// ErrCodeTaken，調用方視為一次碰撞並重新生成。
	Reserve(ctx shared.TransactionContext, tc *TransactionCode) error

	// FindByCode 按碼查找交易
	//
	// 返回：
	// - 找不到時返回 ErrCodeNotFound
	FindByCode(ctx shared.TransactionContext, code Code) (*TransactionCode, error)

	// MarkUsedIfUnused 條件核銷
	//
	// 對應 SQL 語義：
	//   UPDATE transaction_codes SET used = 1, used_at = ?
	//   WHERE code = ? AND used = 0
	//
	// 返回：
	// - consumed=true: 本次呼叫完成了核銷（競態中的勝者）
	// - consumed=false: 碼已被他人核銷或不存在（受影響行數為 0）
	//
	// 確認與拒絕共用此守衛：拒絕同樣是對碼的一次性消費。
	MarkUsedIfUnused(ctx shared.TransactionContext, code Code) (consumed bool, err error)
}
