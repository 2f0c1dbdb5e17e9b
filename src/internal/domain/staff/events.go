package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// Staff 領域事件
// ===========================

// StaffAssignedEvent 收銀員指派事件（新增或重新指派）
type StaffAssignedEvent struct {
	eventID    string
	actorID    shared.ActorID
	venueID    venue.VenueID
	occurredAt time.Time
}

// NewStaffAssignedEvent 創建收銀員指派事件
func NewStaffAssignedEvent(actorID shared.ActorID, venueID venue.VenueID) *StaffAssignedEvent {
	return &StaffAssignedEvent{
		eventID:    uuid.New().String(),
		actorID:    actorID,
		venueID:    venueID,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *StaffAssignedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *StaffAssignedEvent) EventType() string {
	return "staff.assigned"
}

// OccurredAt 實現 DomainEvent 介面
func (e *StaffAssignedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *StaffAssignedEvent) AggregateID() string {
	return e.actorID.String()
}

// VenueID 獲取指派的網點
func (e *StaffAssignedEvent) VenueID() venue.VenueID {
	return e.venueID
}
