package spend

import (
	"context"
	"log/slog"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// UC-203: RejectSpend Use Case
// ===========================

// RejectSpendCommand 拒絕兌換指令（Input DTO）
type RejectSpendCommand struct {
	StaffActorID int64
	Code         string
}

// RejectSpendResult 拒絕兌換結果（Output DTO）
type RejectSpendResult struct {
	ClientActorID string
}

// RejectSpendUseCase 拒絕兌換 Use Case 接口
//
// 與確認共用核銷守衛：已被任何動作消費的碼不能再拒絕。
type RejectSpendUseCase interface {
	Execute(cmd RejectSpendCommand) (*RejectSpendResult, error)
}

// RejectSpendUseCaseImpl 拒絕兌換 Use Case 實作
type RejectSpendUseCaseImpl struct {
	codeRepo  codes.CodeRepository
	txManager shared.TransactionManager
	notifier  messaging.Notifier
	logger    *slog.Logger
}

// NewRejectSpendUseCase 創建 RejectSpendUseCase 實例
func NewRejectSpendUseCase(
	codeRepo codes.CodeRepository,
	txManager shared.TransactionManager,
	notifier messaging.Notifier,
	logger *slog.Logger,
) RejectSpendUseCase {
	return &RejectSpendUseCaseImpl{
		codeRepo:  codeRepo,
		txManager: txManager,
		notifier:  notifier,
		logger:    logger,
	}
}

// Execute 執行拒絕兌換 Use Case
//
// 業務流程（單一事務）：
// 1. 按碼載入交易，驗證方向為 spend
// 2. 條件核銷；受影響行數為 0 → ErrCodeAlreadyUsed
//
// 不觸碰客戶餘額。事務提交後通知客戶。
func (uc *RejectSpendUseCaseImpl) Execute(cmd RejectSpendCommand) (*RejectSpendResult, error) {
	code, err := codes.NewCode(cmd.Code)
	if err != nil {
		return nil, err
	}

	var result RejectSpendResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		tc, err := uc.codeRepo.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if tc.Kind() != codes.KindSpend {
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

		result = RejectSpendResult{ClientActorID: tc.ActorID().String()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyClient(result.ClientActorID)
	return &result, nil
}

func (uc *RejectSpendUseCaseImpl) notifyClient(clientActorID string) {
	recipient, err := shared.ParseActorID(clientActorID)
	if err != nil {
		uc.logger.Error("rejected spend has malformed client actor id",
			"actor_id", clientActorID,
			"error", err,
		)
		return
	}

	err = uc.notifier.Send(context.Background(), messaging.Message{
		Recipient: recipient,
		Text:      "Обмен баллов отклонён кассиром. ❌",
	})
	if err != nil {
		uc.logger.Error("failed to notify client about rejected spend",
			"actor_id", clientActorID,
			"error", err,
		)
	}
}
