package admin

import (
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
)

// ===========================
// UC-302: RemoveStaff Use Case
// ===========================

// RemoveStaffCommand 移除收銀員指令（Input DTO）
type RemoveStaffCommand struct {
	ActorID string // 收銀員的平台 ID（原始輸入）
}

// RemoveStaffResult 移除收銀員結果（Output DTO）
type RemoveStaffResult struct {
	ActorID string
	Removed bool // false 表示該 ID 本就不在名冊中
}

// RemoveStaffUseCase 移除收銀員 Use Case 接口
//
// 業務規則：移除是冪等的 —— 移除不存在的收銀員不報錯，
// 結果中的 Removed=false 供對話層提示管理員。
type RemoveStaffUseCase interface {
	Execute(cmd RemoveStaffCommand) (*RemoveStaffResult, error)
}

// RemoveStaffUseCaseImpl 移除收銀員 Use Case 實作
type RemoveStaffUseCaseImpl struct {
	staffRepo staff.StaffRepository
	txManager shared.TransactionManager
}

// NewRemoveStaffUseCase 創建 RemoveStaffUseCase 實例
func NewRemoveStaffUseCase(
	staffRepo staff.StaffRepository,
	txManager shared.TransactionManager,
) RemoveStaffUseCase {
	return &RemoveStaffUseCaseImpl{
		staffRepo: staffRepo,
		txManager: txManager,
	}
}

// Execute 執行移除收銀員 Use Case
func (uc *RemoveStaffUseCaseImpl) Execute(cmd RemoveStaffCommand) (*RemoveStaffResult, error) {
	actorID, err := shared.ParseActorID(cmd.ActorID)
	if err != nil {
		return nil, err
	}

	var removed bool
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		removed, err = uc.staffRepo.Remove(ctx, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &RemoveStaffResult{
		ActorID: actorID.String(),
		Removed: removed,
	}, nil
}
