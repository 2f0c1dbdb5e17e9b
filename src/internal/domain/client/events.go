package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// Client 領域事件
// ===========================

// ClientRegisteredEvent 客戶註冊事件
type ClientRegisteredEvent struct {
	eventID    string
	actorID    shared.ActorID
	username   string
	occurredAt time.Time
}

// NewClientRegisteredEvent 創建客戶註冊事件
func NewClientRegisteredEvent(actorID shared.ActorID, username string) *ClientRegisteredEvent {
	return &ClientRegisteredEvent{
		eventID:    uuid.New().String(),
		actorID:    actorID,
		username:   username,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *ClientRegisteredEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *ClientRegisteredEvent) EventType() string {
	return "client.registered"
}

// OccurredAt 實現 DomainEvent 介面
func (e *ClientRegisteredEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *ClientRegisteredEvent) AggregateID() string {
	return e.actorID.String()
}

// ActorID 獲取客戶平台標識
func (e *ClientRegisteredEvent) ActorID() shared.ActorID {
	return e.actorID
}

// Username 獲取平台暱稱
func (e *ClientRegisteredEvent) Username() string {
	return e.username
}

// ===========================
// PointsCredited 領域事件
// ===========================

// PointsCreditedEvent 積分入帳事件
type PointsCreditedEvent struct {
	eventID    string
	actorID    shared.ActorID
	amount     PointsAmount
	occurredAt time.Time
}

// NewPointsCreditedEvent 創建積分入帳事件
func NewPointsCreditedEvent(actorID shared.ActorID, amount PointsAmount) *PointsCreditedEvent {
	return &PointsCreditedEvent{
		eventID:    uuid.New().String(),
		actorID:    actorID,
		amount:     amount,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsCreditedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsCreditedEvent) EventType() string {
	return "client.points_credited"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsCreditedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsCreditedEvent) AggregateID() string {
	return e.actorID.String()
}

// Amount 獲取入帳積分數量
func (e *PointsCreditedEvent) Amount() PointsAmount {
	return e.amount
}

// ===========================
// PointsDebited 領域事件
// ===========================

// PointsDebitedEvent 積分扣帳事件
type PointsDebitedEvent struct {
	eventID    string
	actorID    shared.ActorID
	amount     PointsAmount
	occurredAt time.Time
}

// NewPointsDebitedEvent 創建積分扣帳事件
func NewPointsDebitedEvent(actorID shared.ActorID, amount PointsAmount) *PointsDebitedEvent {
	return &PointsDebitedEvent{
		eventID:    uuid.New().String(),
		actorID:    actorID,
		amount:     amount,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsDebitedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsDebitedEvent) EventType() string {
	return "client.points_debited"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsDebitedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsDebitedEvent) AggregateID() string {
	return e.actorID.String()
}

// Amount 獲取扣帳積分數量
func (e *PointsDebitedEvent) Amount() PointsAmount {
	return e.amount
}
