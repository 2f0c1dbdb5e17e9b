package client

import (
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// UC-002: GetBalance Use Case
// ===========================

// GetBalanceQuery 查詢餘額（Input DTO）
type GetBalanceQuery struct {
	ActorID int64
}

// GetBalanceResult 餘額查詢結果（Output DTO）
type GetBalanceResult struct {
	Balance        int
	TotalPurchases int
}

// GetBalanceUseCase 查詢餘額 Use Case 接口
type GetBalanceUseCase interface {
	Execute(query GetBalanceQuery) (*GetBalanceResult, error)
}

// GetBalanceUseCaseImpl 查詢餘額 Use Case 實作
//
// 單一讀操作，不需要事務（Repository 以 nil ctx 走 auto-commit）。
type GetBalanceUseCaseImpl struct {
	clientRepo client.ClientRepository
}

// NewGetBalanceUseCase 創建 GetBalanceUseCase 實例
func NewGetBalanceUseCase(clientRepo client.ClientRepository) GetBalanceUseCase {
	return &GetBalanceUseCaseImpl{clientRepo: clientRepo}
}

// Execute 執行查詢餘額 Use Case
func (uc *GetBalanceUseCaseImpl) Execute(query GetBalanceQuery) (*GetBalanceResult, error) {
	actorID, err := shared.NewActorID(query.ActorID)
	if err != nil {
		return nil, err
	}

	c, err := uc.clientRepo.FindByActorID(nil, actorID)
	if err != nil {
		return nil, err
	}

	return &GetBalanceResult{
		Balance:        c.Balance().Value(),
		TotalPurchases: c.TotalPurchases(),
	}, nil
}
