package codes

import (
	"time"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// Code Value Object
// ===========================

// Code 長度限制
const (
	MinCodeLength = 4
	MaxCodeLength = 12
)

// Code 一次性碼值對象
//
// 碼是純數字短字串，客戶口頭報給收銀員，收銀員透過按鈕確認。
// 唯一性不由值對象保證，而由儲存層的唯一索引在預留時保證。
type Code struct {
	value string
}

// NewCode 創建碼（Checked Constructor）
//
// 驗證規則：
// 1. 只含十進制數字
// 2. 長度在 [MinCodeLength, MaxCodeLength] 區間
func NewCode(value string) (Code, error) {
	if len(value) < MinCodeLength || len(value) > MaxCodeLength {
		return Code{}, ErrInvalidCode.WithContext("value", value, "length", len(value))
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return Code{}, ErrInvalidCode.WithContext("value", value)
		}
	}
	return Code{value: value}, nil
}

// String 返回碼原文
func (c Code) String() string {
	return c.value
}

// Equals 比較兩個碼是否相等
func (c Code) Equals(other Code) bool {
	return c.value == other.value
}

// IsZero 判斷是否為零值（未初始化）
func (c Code) IsZero() bool {
	return c.value == ""
}

// ===========================
// TransactionCode Aggregate Root
// ===========================

// CodeKind 碼的交易方向
type CodeKind string

const (
	// KindEarn 積分發放碼（購買確認後入帳）
	KindEarn CodeKind = "earn"
	// KindSpend 積分兌換碼（兌換確認後扣帳）
	KindSpend CodeKind = "spend"
)

// IsValid 檢查碼類型是否有效
func (k CodeKind) IsValid() bool {
	return k == KindEarn || k == KindSpend
}

// TransactionCode 交易碼聚合根
//
// 聚合邊界：
// - 碼本身（Code）與交易方向（Kind）
// - 發起的客戶（ActorID）與金額（Amount：earn 為待入帳積分，
//   spend 為商品成本）
// - earn 碼攜帶網點（VenueID），spend 碼攜帶商品（ProductID）
// - 消費狀態（used / usedAt）
//
// 不變量（Invariants）：
// 1. 每個碼恰好被消費一次：used 只能從 false 翻到 true，不可逆
// 2. Amount > 0
// 3. earn 碼必有 VenueID；spend 碼必有 ProductID
//
// 併發注意：
// used 翻轉的勝負由儲存層的條件更新裁決（受影響行數），
// 聚合上的 MarkUsed 只表達規則，供單線程路徑與測試使用。
type TransactionCode struct {
	code    Code
	kind    CodeKind
	actorID shared.ActorID
	amount  int

	venueID   venue.VenueID // earn only
	productID string        // spend only

	used      bool
	createdAt time.Time
	usedAt    *time.Time
}

// NewEarnCode 創建發放碼
func NewEarnCode(code Code, actorID shared.ActorID, points int, venueID venue.VenueID) (*TransactionCode, error) {
	if code.IsZero() {
		return nil, ErrInvalidCode
	}
	if actorID.IsZero() {
		return nil, shared.ErrInvalidActorID
	}
	if points <= 0 {
		return nil, ErrInvalidAmount.WithContext("amount", points)
	}
	if venueID.IsZero() {
		return nil, venue.ErrInvalidVenueID
	}

	return &TransactionCode{
		code:      code,
		kind:      KindEarn,
		actorID:   actorID,
		amount:    points,
		venueID:   venueID,
		createdAt: time.Now(),
	}, nil
}

// NewSpendCode 創建兌換碼
func NewSpendCode(code Code, actorID shared.ActorID, cost int, productID string) (*TransactionCode, error) {
	if code.IsZero() {
		return nil, ErrInvalidCode
	}
	if actorID.IsZero() {
		return nil, shared.ErrInvalidActorID
	}
	if cost <= 0 {
		return nil, ErrInvalidAmount.WithContext("amount", cost)
	}
	if productID == "" {
		return nil, venue.ErrInvalidProduct
	}

	return &TransactionCode{
		code:      code,
		kind:      KindSpend,
		actorID:   actorID,
		amount:    cost,
		productID: productID,
		createdAt: time.Now(),
	}, nil
}

// ReconstructTransactionCode 重建交易碼聚合（用於從資料庫載入）
func ReconstructTransactionCode(
	code Code,
	kind CodeKind,
	actorID shared.ActorID,
	amount int,
	venueID venue.VenueID,
	productID string,
	used bool,
	createdAt time.Time,
	usedAt *time.Time,
) (*TransactionCode, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind.WithContext("kind", string(kind))
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount.WithContext("code", code.String(), "amount", amount)
	}

	return &TransactionCode{
		code:      code,
		kind:      kind,
		actorID:   actorID,
		amount:    amount,
		venueID:   venueID,
		productID: productID,
		used:      used,
		createdAt: createdAt,
		usedAt:    usedAt,
	}, nil
}

// ===========================
// TransactionCode Behavior Methods
// ===========================

// MarkUsed 標記碼已消費
//
// 業務規則：碼已消費時返回 ErrCodeAlreadyUsed，狀態不變。
func (t *TransactionCode) MarkUsed() error {
	if t.used {
		return ErrCodeAlreadyUsed.WithContext("code", t.code.String())
	}
	now := time.Now()
	t.used = true
	t.usedAt = &now
	return nil
}

// ===========================
// TransactionCode Getters
// ===========================

// Code 返回碼值對象
func (t *TransactionCode) Code() Code {
	return t.code
}

// Kind 返回交易方向
func (t *TransactionCode) Kind() CodeKind {
	return t.kind
}

// ActorID 返回發起交易的客戶
func (t *TransactionCode) ActorID() shared.ActorID {
	return t.actorID
}

// Amount 返回金額（earn：待入帳積分；spend：商品成本）
func (t *TransactionCode) Amount() int {
	return t.amount
}

// VenueID 返回網點（僅 earn 碼有值）
func (t *TransactionCode) VenueID() venue.VenueID {
	return t.venueID
}

// ProductID 返回商品代號（僅 spend 碼有值）
func (t *TransactionCode) ProductID() string {
	return t.productID
}

// IsUsed 檢查碼是否已消費
func (t *TransactionCode) IsUsed() bool {
	return t.used
}

// CreatedAt 返回創建時間
func (t *TransactionCode) CreatedAt() time.Time {
	return t.createdAt
}

// UsedAt 返回消費時間（未消費時為 nil）
func (t *TransactionCode) UsedAt() *time.Time {
	return t.usedAt
}
