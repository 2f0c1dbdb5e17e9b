package client

import (
	"time"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// Client Aggregate Root
// ===========================

// Client 客戶聚合根
//
// 聚合邊界：
// - 客戶基本信息（ActorID, Username, FullName）
// - 積分餘額（Balance）
// - 累計購買次數（TotalPurchases）
//
// 不變量（Invariants）：
// 1. ActorID 由聊天平台分配，註冊後不可變更
// 2. 餘額恆 >= 0（由 PointsAmount VO 與儲存層條件扣款共同保證）
// 3. 餘額只能透過已結算的交易變動（累加 / 條件扣款）
// 4. CreatedAt 不可變更
//
// 設計原則：
// - Tell, Don't Ask：通過方法封裝行為，而非暴露狀態
// - 所有欄位為 unexported，外部僅能透過 getter 讀取
//
// 併發注意：
// 聚合上的 Credit / Debit 只描述業務規則；實際結算走儲存層的
// 原子條件更新（見 ClientRepository），聚合不做樂觀鎖。
type Client struct {
	// 識別欄位
	actorID  shared.ActorID
	username string // 平台暱稱（可為空）
	fullName string // 顯示名稱（可為空）

	// 帳戶狀態
	balance        PointsAmount
	totalPurchases int

	// 審計欄位
	createdAt time.Time
	updatedAt time.Time

	// 領域事件（未提交）
	events []shared.DomainEvent
}

// NewClient 創建新客戶（Checked Constructor）
//
// 業務規則：
// 1. ActorID 必須有效（已在 ActorID VO 中驗證）
// 2. username / fullName 允許為空（平台可能不提供）
// 3. 初始餘額為 0，購買次數為 0
//
// 註冊是冪等入口的一部分：重複註冊由 Repository 的
// SaveIfAbsent 吸收，聚合本身不感知。
func NewClient(actorID shared.ActorID, username, fullName string) (*Client, error) {
	if actorID.IsZero() {
		return nil, shared.ErrInvalidActorID
	}

	now := time.Now()
	c := &Client{
		actorID:   actorID,
		username:  username,
		fullName:  fullName,
		balance:   PointsAmount{}, // 零值即 0 分
		createdAt: now,
		updatedAt: now,
	}

	c.events = append(c.events, NewClientRegisteredEvent(actorID, username))
	return c, nil
}

// ReconstructClient 重建客戶聚合（用於從資料庫載入）
//
// 使用場景：
// - Repository 從資料庫載入客戶
// - 不產生領域事件
//
// 防禦性驗證：餘額或購買次數為負視為資料損毀，直接拒絕重建。
func ReconstructClient(
	actorID shared.ActorID,
	username string,
	fullName string,
	balance int,
	totalPurchases int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Client, error) {
	if actorID.IsZero() {
		return nil, shared.ErrInvalidActorID
	}

	amount, err := NewPointsAmount(balance)
	if err != nil {
		return nil, ErrCorruptedBalance.WithContext(
			"actor_id", actorID.String(),
			"balance", balance,
		)
	}
	if totalPurchases < 0 {
		return nil, ErrCorruptedBalance.WithContext(
			"actor_id", actorID.String(),
			"total_purchases", totalPurchases,
		)
	}

	return &Client{
		actorID:        actorID,
		username:       username,
		fullName:       fullName,
		balance:        amount,
		totalPurchases: totalPurchases,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// ===========================
// Client Aggregate Behavior Methods
// ===========================

// Credit 入帳（僅供業務規則表達與測試；結算路徑走儲存層原子更新）
func (c *Client) Credit(amount PointsAmount) {
	c.balance = c.balance.Add(amount)
	c.totalPurchases++
	c.updatedAt = time.Now()
	c.events = append(c.events, NewPointsCreditedEvent(c.actorID, amount))
}

// Debit 扣帳
//
// 業務規則：餘額不足時返回 ErrInsufficientPoints，狀態不變。
func (c *Client) Debit(amount PointsAmount) error {
	next, err := c.balance.Subtract(amount)
	if err != nil {
		return err
	}
	c.balance = next
	c.updatedAt = time.Now()
	c.events = append(c.events, NewPointsDebitedEvent(c.actorID, amount))
	return nil
}

// CanAfford 檢查餘額是否足以支付指定金額（對話層預檢用）
func (c *Client) CanAfford(amount PointsAmount) bool {
	return c.balance.GreaterThanOrEqual(amount)
}

// PullEvents 取出並清空未提交的領域事件
func (c *Client) PullEvents() []shared.DomainEvent {
	events := c.events
	c.events = nil
	return events
}

// ===========================
// Client Aggregate Getters
// ===========================

// ActorID 返回客戶的平台標識
func (c *Client) ActorID() shared.ActorID {
	return c.actorID
}

// Username 返回平台暱稱
func (c *Client) Username() string {
	return c.username
}

// FullName 返回顯示名稱
func (c *Client) FullName() string {
	return c.fullName
}

// Balance 返回當前積分餘額
func (c *Client) Balance() PointsAmount {
	return c.balance
}

// TotalPurchases 返回累計購買次數
func (c *Client) TotalPurchases() int {
	return c.totalPurchases
}

// CreatedAt 返回創建時間
func (c *Client) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt 返回更新時間
func (c *Client) UpdatedAt() time.Time {
	return c.updatedAt
}
