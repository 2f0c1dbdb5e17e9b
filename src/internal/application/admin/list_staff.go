package admin

import (
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// UC-303: ListStaff Use Case
// ===========================

// StaffEntry 名冊中的一名收銀員（Output DTO）
type StaffEntry struct {
	ActorID   string
	FullName  string
	VenueID   string
	VenueName string // 目錄中已不存在的網點顯示原 ID
}

// ListStaffResult 名冊檢視結果（Output DTO）
type ListStaffResult struct {
	Staff []StaffEntry
}

// ListStaffUseCase 名冊檢視 Use Case 接口
type ListStaffUseCase interface {
	Execute() (*ListStaffResult, error)
}

// ListStaffUseCaseImpl 名冊檢視 Use Case 實作
//
// 單一讀操作，不需要事務。
type ListStaffUseCaseImpl struct {
	staffRepo staff.StaffRepository
	catalog   *venue.Catalog
}

// NewListStaffUseCase 創建 ListStaffUseCase 實例
func NewListStaffUseCase(staffRepo staff.StaffRepository, catalog *venue.Catalog) ListStaffUseCase {
	return &ListStaffUseCaseImpl{staffRepo: staffRepo, catalog: catalog}
}

// Execute 執行名冊檢視 Use Case
func (uc *ListStaffUseCaseImpl) Execute() (*ListStaffResult, error) {
	members, err := uc.staffRepo.ListAll(nil)
	if err != nil {
		return nil, err
	}

	entries := make([]StaffEntry, 0, len(members))
	for _, m := range members {
		venueName := m.VenueID().String()
		if v, err := uc.catalog.FindByID(m.VenueID()); err == nil {
			venueName = v.Name()
		}
		entries = append(entries, StaffEntry{
			ActorID:   m.ActorID().String(),
			FullName:  m.FullName(),
			VenueID:   m.VenueID().String(),
			VenueName: venueName,
		})
	}

	return &ListStaffResult{Staff: entries}, nil
}
