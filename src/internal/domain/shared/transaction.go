package shared

// TransactionContext 事務上下文介面
//
// 設計決策：可選事務參與模式（Optional Transaction Participation）
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行（事務傳播）
// - ctx == nil: 使用 auto-commit 模式（適用於單一讀操作）
//
// Repository 方法約束：
// - 修改狀態的操作必須在事務中（ctx non-nil）
// - 查詢操作可選擇是否參與事務（獨立查詢傳 nil）
//
// 核銷（settlement）約束：
// 「標記碼已使用」與「帳本加減分」這組配對操作必須在同一個
// InTransaction 閉包中執行 — 任一守衛失敗時整組回滾，
// 否則會出現碼已消費但未結算（或反之）的不一致狀態。
//
// 架構原則：
// - 標記介面（Marker Interface），不暴露任何方法
// - Infrastructure Layer 負責實作具體的事務封裝（GORM）
// - Domain / Application Layer 只依賴此介面，不依賴具體實作
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// 保證：
// 1. fn 返回 error 時回滾
// 2. fn panic 時回滾並重新拋出
// 3. fn 返回 nil 時提交
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
