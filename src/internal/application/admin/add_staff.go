package admin

import (
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// UC-301: AddStaff Use Case
// ===========================

// AddStaffCommand 新增收銀員指令（Input DTO)
//
// ActorID 是管理員在對話中輸入的原始字串：收銀員的平台 ID
// 是從收銀員本人處轉述來的，輸入錯誤很常見，解析失敗必須
// 返回可重新提示的錯誤。
type AddStaffCommand struct {
	ActorID   string // 收銀員的平台 ID（原始輸入）
	FullName  string
	VenueName string // 網點按名稱指定（管理員看到的是名稱）
}

// AddStaffResult 新增收銀員結果（Output DTO）
type AddStaffResult struct {
	ActorID   string
	FullName  string
	VenueID   string
	VenueName string
}

// AddStaffUseCase 新增收銀員 Use Case 接口
//
// 業務規則：
// 1. 網點必須在目錄中（按名稱查找）
// 2. 重複新增同一 ActorID 採 last-wins：覆蓋姓名與網點，不報錯
type AddStaffUseCase interface {
	Execute(cmd AddStaffCommand) (*AddStaffResult, error)
}

// AddStaffUseCaseImpl 新增收銀員 Use Case 實作
type AddStaffUseCaseImpl struct {
	staffRepo staff.StaffRepository
	catalog   *venue.Catalog
	txManager shared.TransactionManager
}

// NewAddStaffUseCase 創建 AddStaffUseCase 實例
func NewAddStaffUseCase(
	staffRepo staff.StaffRepository,
	catalog *venue.Catalog,
	txManager shared.TransactionManager,
) AddStaffUseCase {
	return &AddStaffUseCaseImpl{
		staffRepo: staffRepo,
		catalog:   catalog,
		txManager: txManager,
	}
}

// Execute 執行新增收銀員 Use Case
func (uc *AddStaffUseCaseImpl) Execute(cmd AddStaffCommand) (*AddStaffResult, error) {
	actorID, err := shared.ParseActorID(cmd.ActorID)
	if err != nil {
		return nil, err
	}

	v, err := uc.catalog.FindByName(cmd.VenueName)
	if err != nil {
		return nil, err
	}

	member, err := staff.NewStaff(actorID, cmd.FullName, v.ID())
	if err != nil {
		return nil, err
	}

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return uc.staffRepo.Upsert(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	return &AddStaffResult{
		ActorID:   actorID.String(),
		FullName:  member.FullName(),
		VenueID:   v.ID().String(),
		VenueName: v.Name(),
	}, nil
}
