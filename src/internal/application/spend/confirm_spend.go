package spend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// UC-202: ConfirmSpend Use Case
// ===========================

// ConfirmSpendCommand 確認兌換指令（Input DTO）
//
// 成本以資料庫中預留的碼為準，按鈕攜帶的數字僅用於顯示。
type ConfirmSpendCommand struct {
	StaffActorID int64
	Code         string
}

// ConfirmSpendResult 確認兌換結果（Output DTO）
type ConfirmSpendResult struct {
	ClientActorID string
	Cost          int
	Balance       int // 扣帳後的餘額
}

// ConfirmSpendUseCase 確認兌換 Use Case 接口
//
// 業務規則：
// 1. 核銷與扣款是同一事務裡的兩道守衛：
//    a. 碼的條件核銷（used 0 → 1）
//    b. 條件扣款（balance >= cost 才扣）
// 2. 扣款守衛失敗時整個事務回滾 —— 碼保持未消費，客戶攢夠
//    積分後同一個碼仍可兌換
// 3. 餘額永不為負：即使發碼後餘額被並發交易掏空，守衛也會擋下
type ConfirmSpendUseCase interface {
	Execute(cmd ConfirmSpendCommand) (*ConfirmSpendResult, error)
}

// ConfirmSpendUseCaseImpl 確認兌換 Use Case 實作
type ConfirmSpendUseCaseImpl struct {
	codeRepo   codes.CodeRepository
	clientRepo client.ClientRepository
	ledgerRepo client.LedgerRepository
	txManager  shared.TransactionManager
	notifier   messaging.Notifier
	logger     *slog.Logger
}

// NewConfirmSpendUseCase 創建 ConfirmSpendUseCase 實例
func NewConfirmSpendUseCase(
	codeRepo codes.CodeRepository,
	clientRepo client.ClientRepository,
	ledgerRepo client.LedgerRepository,
	txManager shared.TransactionManager,
	notifier messaging.Notifier,
	logger *slog.Logger,
) ConfirmSpendUseCase {
	return &ConfirmSpendUseCaseImpl{
		codeRepo:   codeRepo,
		clientRepo: clientRepo,
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute 執行確認兌換 Use Case
//
// 業務流程（單一事務）：
// 1. 按碼載入交易，驗證方向為 spend
// 2. 條件核銷；受影響行數為 0 → ErrCodeAlreadyUsed
// 3. 條件扣款；受影響行數為 0 → ErrInsufficientPoints（整體回滾）
// 4. 追加帳本記錄
// 5. 讀回餘額供通知使用
//
// 事務提交後通知客戶。
func (uc *ConfirmSpendUseCaseImpl) Execute(cmd ConfirmSpendCommand) (*ConfirmSpendResult, error) {
	code, err := codes.NewCode(cmd.Code)
	if err != nil {
		return nil, err
	}

	var result ConfirmSpendResult
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

		cost, err := client.NewPointsAmount(tc.Amount())
		if err != nil {
			return err
		}
		debited, err := uc.clientRepo.DebitIfSufficient(ctx, tc.ActorID(), cost)
		if err != nil {
			return err
		}
		if !debited {
			// 回滾也撤銷上面的核銷：碼留待餘額補足後再用
			return client.ErrInsufficientPoints.WithContext(
				"actor_id", tc.ActorID().String(),
				"cost", tc.Amount(),
			)
		}

		entry, err := client.NewLedgerEntry(tc.ActorID(), client.LedgerDebit, cost, code.String())
		if err != nil {
			return err
		}
		if err := uc.ledgerRepo.Append(ctx, entry); err != nil {
			return err
		}

		debitedClient, err := uc.clientRepo.FindByActorID(ctx, tc.ActorID())
		if err != nil {
			return err
		}

		result = ConfirmSpendResult{
			ClientActorID: tc.ActorID().String(),
			Cost:          tc.Amount(),
			Balance:       debitedClient.Balance().Value(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyClient(result)
	return &result, nil
}

func (uc *ConfirmSpendUseCaseImpl) notifyClient(result ConfirmSpendResult) {
	recipient, err := shared.ParseActorID(result.ClientActorID)
	if err != nil {
		uc.logger.Error("settled spend has malformed client actor id",
			"actor_id", result.ClientActorID,
			"error", err,
		)
		return
	}

	text := fmt.Sprintf(
		"Обмен подтверждён! ✅\n\nСписано %d баллов.\nВаш баланс: %d баллов.\nПриятного аппетита!",
		result.Cost, result.Balance,
	)
	err = uc.notifier.Send(context.Background(), messaging.Message{
		Recipient: recipient,
		Text:      text,
	})
	if err != nil {
		uc.logger.Error("failed to notify client about spend settlement",
			"actor_id", result.ClientActorID,
			"error", err,
		)
	}
}
