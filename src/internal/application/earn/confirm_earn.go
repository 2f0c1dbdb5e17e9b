package earn

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
// UC-102: ConfirmEarn Use Case
// ===========================

// ConfirmEarnCommand 確認發放指令（Input DTO）
//
// 來源是收銀員按下的金額按鈕（已解析的 EarnAccept 回呼）。
// 入帳的積分數由收銀員在確認時選定，必須命中發放選單；
// 碼上預留的數字只是客戶申報的參考值。
type ConfirmEarnCommand struct {
	StaffActorID int64
	Code         string
	Points       int // 收銀員選定的積分數
}

// ConfirmEarnResult 確認發放結果（Output DTO）
type ConfirmEarnResult struct {
	ClientActorID string
	Points        int
	Balance       int // 入帳後的餘額
}

// ConfirmEarnUseCase 確認發放 Use Case 接口
//
// 業務規則：
// 1. 恰好一次：碼的核銷由儲存層條件更新裁決，重複確認
//    （雙擊、兩個收銀員搶同一個碼）只有一次成功
// 2. 收銀員選定的積分數必須命中發放選單
// 3. 核銷與入帳在同一事務：任一失敗整體回滾
// 4. 客戶通知在事務提交後發出，失敗不回滾交易
type ConfirmEarnUseCase interface {
	Execute(cmd ConfirmEarnCommand) (*ConfirmEarnResult, error)
}

// ConfirmEarnUseCaseImpl 確認發放 Use Case 實作
type ConfirmEarnUseCaseImpl struct {
	codeRepo   codes.CodeRepository
	clientRepo client.ClientRepository
	ledgerRepo client.LedgerRepository
	txManager  shared.TransactionManager
	policy     *codes.AccrualPolicy
	notifier   messaging.Notifier
	logger     *slog.Logger
}

// NewConfirmEarnUseCase 創建 ConfirmEarnUseCase 實例
func NewConfirmEarnUseCase(
	codeRepo codes.CodeRepository,
	clientRepo client.ClientRepository,
	ledgerRepo client.LedgerRepository,
	txManager shared.TransactionManager,
	policy *codes.AccrualPolicy,
	notifier messaging.Notifier,
	logger *slog.Logger,
) ConfirmEarnUseCase {
	return &ConfirmEarnUseCaseImpl{
		codeRepo:   codeRepo,
		clientRepo: clientRepo,
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
		policy:     policy,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute 執行確認發放 Use Case
//
// 業務流程（單一事務）：
// 1. 驗證收銀員選定的積分數命中發放選單
// 2. 按碼載入交易，驗證方向為 earn
// 3. 條件核銷（used 0 → 1）；受影響行數為 0 → ErrCodeAlreadyUsed
// 4. 客戶帳戶原子入帳（含購買次數 +1）
// 5. 追加帳本記錄並讀回餘額供通知使用
//
// 事務提交後通知客戶。
func (uc *ConfirmEarnUseCaseImpl) Execute(cmd ConfirmEarnCommand) (*ConfirmEarnResult, error) {
	code, err := codes.NewCode(cmd.Code)
	if err != nil {
		return nil, err
	}

	if !uc.pointsOnMenu(cmd.Points) {
		return nil, codes.ErrInvalidAmount.WithContext(
			"code", code.String(),
			"points", cmd.Points,
		)
	}

	var result ConfirmEarnResult
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

		amount, err := client.NewPointsAmount(cmd.Points)
		if err != nil {
			return err
		}
		if err := uc.clientRepo.Credit(ctx, tc.ActorID(), amount); err != nil {
			return err
		}

		entry, err := client.NewLedgerEntry(tc.ActorID(), client.LedgerCredit, amount, code.String())
		if err != nil {
			return err
		}
		if err := uc.ledgerRepo.Append(ctx, entry); err != nil {
			return err
		}

		credited, err := uc.clientRepo.FindByActorID(ctx, tc.ActorID())
		if err != nil {
			return err
		}

		result = ConfirmEarnResult{
			ClientActorID: tc.ActorID().String(),
			Points:        cmd.Points,
			Balance:       credited.Balance().Value(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyClient(result)
	return &result, nil
}

// pointsOnMenu 檢查積分數是否為發放選單中的合法選項
func (uc *ConfirmEarnUseCaseImpl) pointsOnMenu(points int) bool {
	for _, opt := range uc.policy.Options() {
		if opt.Points == points {
			return true
		}
	}
	return false
}

func (uc *ConfirmEarnUseCaseImpl) notifyClient(result ConfirmEarnResult) {
	recipient, err := shared.ParseActorID(result.ClientActorID)
	if err != nil {
		uc.logger.Error("settled earn has malformed client actor id",
			"actor_id", result.ClientActorID,
			"error", err,
		)
		return
	}

	text := fmt.Sprintf(
		"Покупка подтверждена! ✅\n\nВам начислено +%d баллов.\nВаш баланс: %d баллов.",
		result.Points, result.Balance,
	)
	err = uc.notifier.Send(context.Background(), messaging.Message{
		Recipient: recipient,
		Text:      text,
	})
	if err != nil {
		uc.logger.Error("failed to notify client about credited points",
			"actor_id", result.ClientActorID,
			"error", err,
		)
	}
}
