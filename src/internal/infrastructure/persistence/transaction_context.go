package persistence

import (
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext GORM 事務上下文實作
//
// 設計原則：
// 1. 實作 shared.TransactionContext 介面（標記介面）
// 2. 封裝 *gorm.DB，避免洩漏到 Domain Layer
// 3. GetDB() 僅供 Infrastructure Layer 內部使用
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取 GORM DB 連接（僅供 Infrastructure Layer 內部使用）
//
// 此方法不在 shared.TransactionContext 介面中，
// Domain Layer 因此無法接觸 GORM，依賴方向保持正確。
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// getDB 從 TransactionContext 解出 GORM DB
//
// ctx 是事務上下文時返回事務 DB；ctx 為 nil（或非 GORM 上下文）
// 時返回傳入的預設連接（auto-commit 模式）。
func getDB(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if gormCtx, ok := ctx.(*gormTransactionContext); ok {
		return gormCtx.GetDB()
	}
	return fallback
}
