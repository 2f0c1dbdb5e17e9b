package persistence

import "time"

// ===========================
// GORM Models
// ===========================

// ClientModel 客戶資料表模型
//
// actor_id 是主鍵：客戶的身份就是平台分配的 ID，系統不另造代理鍵。
// points / total_purchases 只透過原子 UPDATE 變動（見 Repository）。
type ClientModel struct {
	ActorID        int64     `gorm:"column:actor_id;primaryKey"`
	Username       string    `gorm:"column:username"`
	FullName       string    `gorm:"column:full_name"`
	Points         int       `gorm:"column:points;not null;default:0"`
	TotalPurchases int       `gorm:"column:total_purchases;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName 指定資料表名稱
func (ClientModel) TableName() string {
	return "clients"
}

// LedgerEntryModel 積分帳本資料表模型（append-only）
type LedgerEntryModel struct {
	ID         string    `gorm:"column:id;primaryKey"` // UUID
	ActorID    int64     `gorm:"column:actor_id;index;not null"`
	Kind       string    `gorm:"column:kind;not null"` // credit | debit
	Amount     int       `gorm:"column:amount;not null"`
	Code       string    `gorm:"column:code;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;index"`
}

// TableName 指定資料表名稱
func (LedgerEntryModel) TableName() string {
	return "points_ledger"
}

// StaffModel 收銀員名冊資料表模型
type StaffModel struct {
	ActorID   int64     `gorm:"column:actor_id;primaryKey"`
	FullName  string    `gorm:"column:full_name;not null"`
	VenueID   string    `gorm:"column:venue_id;index;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName 指定資料表名稱
func (StaffModel) TableName() string {
	return "staff"
}

// TransactionCodeModel 交易碼資料表模型
//
// code 是主鍵：一次性碼的唯一性由這裡的主鍵約束裁決
// （Reserve 的 insert-if-not-exists 語義依賴它）。
// used 的 0 → 1 翻轉只透過條件 UPDATE 完成。
type TransactionCodeModel struct {
	Code      string     `gorm:"column:code;primaryKey"`
	Kind      string     `gorm:"column:kind;not null"` // earn | spend
	ActorID   int64      `gorm:"column:actor_id;index;not null"`
	Amount    int        `gorm:"column:amount;not null"`
	VenueID   string     `gorm:"column:venue_id"`   // earn only
	ProductID string     `gorm:"column:product_id"` // spend only
	Used      bool       `gorm:"column:used;not null;default:false"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UsedAt    *time.Time `gorm:"column:used_at"`
}

// TableName 指定資料表名稱
func (TransactionCodeModel) TableName() string {
	return "transaction_codes"
}

// AllModels 返回需要遷移的全部模型（供 AutoMigrate 使用）
func AllModels() []any {
	return []any{
		&ClientModel{},
		&LedgerEntryModel{},
		&StaffModel{},
		&TransactionCodeModel{},
	}
}
