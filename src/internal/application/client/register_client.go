package client

import (
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// UC-001: RegisterClient Use Case
// ===========================

// RegisterClientCommand 註冊客戶指令（Input DTO）
//
// 設計原則：
// - 只包含外部輸入數據，使用原始類型
// - 由 Use Case 轉換為 Value Object
type RegisterClientCommand struct {
	ActorID  int64  // 聊天平台分配的參與者 ID
	Username string // 平台暱稱（可為空）
	FullName string // 顯示名稱（可為空）
}

// RegisterClientResult 註冊客戶結果（Output DTO）
type RegisterClientResult struct {
	ActorID string
	Created bool // true 表示本次呼叫建立了新客戶
	Balance int  // 當前餘額（老客戶回訪時非零）
}

// RegisterClientUseCase 註冊客戶 Use Case 接口
//
// 業務規則：
// 1. 註冊是冪等的：客戶首次互動即註冊，重複互動不報錯、不改資料
// 2. 同一 ActorID 併發首次互動時恰好一次 Created=true
type RegisterClientUseCase interface {
	Execute(cmd RegisterClientCommand) (*RegisterClientResult, error)
}

// RegisterClientUseCaseImpl 註冊客戶 Use Case 實作
type RegisterClientUseCaseImpl struct {
	clientRepo client.ClientRepository
	txManager  shared.TransactionManager
}

// NewRegisterClientUseCase 創建 RegisterClientUseCase 實例
func NewRegisterClientUseCase(
	clientRepo client.ClientRepository,
	txManager shared.TransactionManager,
) RegisterClientUseCase {
	return &RegisterClientUseCaseImpl{
		clientRepo: clientRepo,
		txManager:  txManager,
	}
}

// Execute 執行註冊客戶 Use Case
//
// 業務流程：
// 1. 驗證輸入並轉換為 Value Object
// 2. 在事務中執行：
//    a. SaveIfAbsent（冪等寫入）
//    b. 讀回當前狀態（老客戶需要現有餘額）
// 3. 返回結果
func (uc *RegisterClientUseCaseImpl) Execute(cmd RegisterClientCommand) (*RegisterClientResult, error) {
	actorID, err := shared.NewActorID(cmd.ActorID)
	if err != nil {
		return nil, err
	}

	newClient, err := client.NewClient(actorID, cmd.Username, cmd.FullName)
	if err != nil {
		return nil, err
	}

	var result RegisterClientResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		created, err := uc.clientRepo.SaveIfAbsent(ctx, newClient)
		if err != nil {
			return err
		}

		current, err := uc.clientRepo.FindByActorID(ctx, actorID)
		if err != nil {
			return err
		}

		result = RegisterClientResult{
			ActorID: actorID.String(),
			Created: created,
			Balance: current.Balance().Value(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
