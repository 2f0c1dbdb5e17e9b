package staff

import (
	"strings"
	"time"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// Staff Aggregate Root
// ===========================

// Staff 收銀員聚合根
//
// 聚合邊界：
// - 收銀員身份（ActorID, FullName）
// - 網點指派（VenueID）
//
// 不變量（Invariants）：
// 1. ActorID 由聊天平台分配，是收銀員的唯一身份
// 2. 收銀員必須指派到目錄中存在的網點（由管理員用例驗證）
// 3. 重新指派採 last-wins：同一 ActorID 再次新增時覆蓋網點與姓名
//
// 角色解析依賴此聚合：ActorID 在收銀員名冊中 → 收銀員入口。
type Staff struct {
	actorID  shared.ActorID
	fullName string
	venueID  venue.VenueID

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewStaff 創建收銀員（Checked Constructor）
//
// 業務規則：
// 1. 姓名不能為空（管理員名冊需要可讀的身份）
// 2. 必須指派網點
func NewStaff(actorID shared.ActorID, fullName string, venueID venue.VenueID) (*Staff, error) {
	if actorID.IsZero() {
		return nil, shared.ErrInvalidActorID
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, ErrInvalidStaffName
	}
	if venueID.IsZero() {
		return nil, venue.ErrInvalidVenueID
	}

	now := time.Now()
	s := &Staff{
		actorID:   actorID,
		fullName:  fullName,
		venueID:   venueID,
		createdAt: now,
		updatedAt: now,
	}

	s.events = append(s.events, NewStaffAssignedEvent(actorID, venueID))
	return s, nil
}

// ReconstructStaff 重建收銀員聚合（用於從資料庫載入）
func ReconstructStaff(
	actorID shared.ActorID,
	fullName string,
	venueID venue.VenueID,
	createdAt time.Time,
	updatedAt time.Time,
) (*Staff, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, ErrInvalidStaffName.WithContext("actor_id", actorID.String())
	}

	return &Staff{
		actorID:   actorID,
		fullName:  fullName,
		venueID:   venueID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ===========================
// Staff Aggregate Behavior Methods
// ===========================

// Reassign 重新指派網點（last-wins 規則的聚合側表達）
func (s *Staff) Reassign(fullName string, venueID venue.VenueID) error {
	if strings.TrimSpace(fullName) == "" {
		return ErrInvalidStaffName
	}
	if venueID.IsZero() {
		return venue.ErrInvalidVenueID
	}

	s.fullName = fullName
	s.venueID = venueID
	s.updatedAt = time.Now()
	s.events = append(s.events, NewStaffAssignedEvent(s.actorID, venueID))
	return nil
}

// PullEvents 取出並清空未提交的領域事件
func (s *Staff) PullEvents() []shared.DomainEvent {
	events := s.events
	s.events = nil
	return events
}

// ===========================
// Staff Aggregate Getters
// ===========================

// ActorID 返回收銀員平台標識
func (s *Staff) ActorID() shared.ActorID {
	return s.actorID
}

// FullName 返回收銀員姓名
func (s *Staff) FullName() string {
	return s.fullName
}

// VenueID 返回指派的網點
func (s *Staff) VenueID() venue.VenueID {
	return s.venueID
}

// CreatedAt 返回創建時間
func (s *Staff) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt 返回更新時間
func (s *Staff) UpdatedAt() time.Time {
	return s.updatedAt
}
