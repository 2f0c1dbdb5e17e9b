package persistence

import (
	"strings"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionManager 實作
// ===========================

// gormTransactionManager GORM 事務管理器實作
//
// 行為保證（shared.TransactionManager 契約）：
// 1. fn 返回 error 時回滾
// 2. fn panic 時回滾並重新拋出
// 3. fn 返回 nil 時提交
type gormTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建 GORM 事務管理器
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &gormTransactionManager{db: db}
}

// InTransaction 在單一資料庫事務中執行 fn
//
// GORM 的 Transaction() 已實作回滾 / 提交 / panic 重拋語義，
// 這裡只負責把事務連接包成 TransactionContext 傳給 fn。
func (m *gormTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}

// isUniqueViolation 判斷錯誤是否為唯一約束違反
//
// SQLite: "UNIQUE constraint failed"
// PostgreSQL: "duplicate key value violates unique constraint"
// MySQL: "Duplicate entry"
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, needle := range []string{"UNIQUE constraint", "duplicate key", "Duplicate entry"} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
