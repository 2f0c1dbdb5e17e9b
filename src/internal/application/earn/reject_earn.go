package earn

import (
	"context"
	"log/slog"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// UC-103: RejectEarn Use Case
// ===========================

// RejectEarnCommand 拒絕發放指令（Input DTO）
type RejectEarnCommand struct {
	StaffActorID int64
	Code         string
}

// RejectEarnResult 拒絕發放結果（Output DTO）
type RejectEarnResult struct {
	ClientActorID string
}

// RejectEarnUseCase 拒絕發放 Use Case 接口
//
// 業務規則：
// 拒絕與確認共用同一個核銷守衛 —— 拒絕也是對碼的一次性消費。
// 已被確認（或已被拒絕）的碼不能再拒絕：兩個收銀員一人確認
// 一人拒絕時，恰好一個動作生效。
type RejectEarnUseCase interface {
	Execute(cmd RejectEarnCommand) (*RejectEarnResult, error)
}

// RejectEarnUseCaseImpl 拒絕發放 Use Case 實作
type RejectEarnUseCaseImpl struct {
	codeRepo  codes.CodeRepository
	txManager shared.TransactionManager
	notifier  messaging.Notifier
	logger    *slog.Logger
}

// NewRejectEarnUseCase 創建 RejectEarnUseCase 實例
func NewRejectEarnUseCase(
	codeRepo codes.CodeRepository,
	txManager shared.TransactionManager,
	notifier messaging.Notifier,
	logger *slog.Logger,
) RejectEarnUseCase {
	return &RejectEarnUseCaseImpl{
		codeRepo:  codeRepo,
		txManager: txManager,
		notifier:  notifier,
		logger:    logger,
	}
}

// Execute 執行拒絕發放 Use Case
//
// 業務流程（單一事務）：
// 1. 按碼載入交易，驗證方向為 earn
// 2. 條件核銷；受影響行數為 0 → ErrCodeAlreadyUsed
//
// 不觸碰客戶餘額。事務提交後通知客戶。
func (uc *RejectEarnUseCaseImpl) Execute(cmd RejectEarnCommand) (*RejectEarnResult, error) {
	code, err := codes.NewCode(cmd.Code)
	if err != nil {
		return nil, err
	}

	var result RejectEarnResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		tc, err := uc.codeRepo.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if tc.Kind() != codes.KindEarn {
			return codes.ErrInvalidKind.WithContext(
				"code", code.String(),
				"kind", string(tc.Kind()),
			)
		}

		consumed, err := uc.codeRepo.MarkUsedIfUnused(ctx, code)
		if err != nil {
			return err
		}
		if !consumed {
			return codes.ErrCodeAlreadyUsed.WithContext("code", code.String())
		}

		result = RejectEarnResult{ClientActorID: tc.ActorID().String()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyClient(result.ClientActorID)
	return &result, nil
}

func (uc *RejectEarnUseCaseImpl) notifyClient(clientActorID string) {
	recipient, err := shared.ParseActorID(clientActorID)
	if err != nil {
		uc.logger.Error("rejected earn has malformed client actor id",
			"actor_id", clientActorID,
			"error", err,
		)
		return
	}

	err = uc.notifier.Send(context.Background(), messaging.Message{
		Recipient: recipient,
		Text:      "Начисление баллов отклонено кассиром. ❌",
	})
	if err != nil {
		uc.logger.Error("failed to notify client about rejected earn",
			"actor_id", clientActorID,
			"error", err,
		)
	}
}
