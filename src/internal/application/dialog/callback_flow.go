package dialog

import (
	"errors"
	"fmt"

	appearn "github.com/Niko-MM/BonusLinkBot/src/internal/application/earn"
	appspend "github.com/Niko-MM/BonusLinkBot/src/internal/application/spend"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/access"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// Settlement Callback Flow
// ===========================

// handleCallback 處理按鈕回呼（交易結算入口）
//
// 安全規則：
// 1. 負載是不可信輸入，解析失敗只記日誌
// 2. 只有收銀員與管理員能結算 —— 客戶拿到負載原文也無法自我確認
func (d *Dispatcher) handleCallback(actorID shared.ActorID, payload string) error {
	cb, err := codes.ParseCallback(payload)
	if err != nil {
		d.logger.Warn("malformed callback payload",
			"actor_id", actorID.String(),
			"payload", payload,
		)
		return d.reply(actorID, "Кнопка устарела или повреждена.")
	}

	res, err := d.resolver.Resolve(nil, actorID)
	if err != nil {
		d.logger.Error("role resolution failed", "actor_id", actorID.String(), "error", err)
		return d.reply(actorID, "Произошла ошибка. Попробуйте позже.")
	}
	if res.Role == access.RoleClient {
		d.logger.Warn("client attempted settlement callback",
			"actor_id", actorID.String(),
			"payload", payload,
		)
		return d.reply(actorID, "Подтверждать операции может только кассир.")
	}

	switch cb := cb.(type) {
	case codes.EarnAccept:
		return d.settleEarnAccept(actorID, cb)
	case codes.EarnReject:
		return d.settleEarnReject(actorID, cb)
	case codes.SpendAccept:
		return d.settleSpendAccept(actorID, cb)
	case codes.SpendReject:
		return d.settleSpendReject(actorID, cb)
	default:
		// sealed interface：走不到這裡
		return nil
	}
}

func (d *Dispatcher) settleEarnAccept(actorID shared.ActorID, cb codes.EarnAccept) error {
	res, err := d.confirmEarn.Execute(appearn.ConfirmEarnCommand{
		StaffActorID: actorID.Int64(),
		Code:         cb.Code.String(),
		Points:       cb.Points,
	})
	if err != nil {
		return d.reply(actorID, d.settlementErrorText(err))
	}
	return d.reply(actorID, fmt.Sprintf(
		"Начисление подтверждено: +%d баллов по коду %s. ✅", res.Points, cb.Code.String()))
}

func (d *Dispatcher) settleEarnReject(actorID shared.ActorID, cb codes.EarnReject) error {
	_, err := d.rejectEarn.Execute(appearn.RejectEarnCommand{
		StaffActorID: actorID.Int64(),
		Code:         cb.Code.String(),
	})
	if err != nil {
		return d.reply(actorID, d.settlementErrorText(err))
	}
	return d.reply(actorID, fmt.Sprintf("Начисление по коду %s отклонено.", cb.Code.String()))
}

func (d *Dispatcher) settleSpendAccept(actorID shared.ActorID, cb codes.SpendAccept) error {
	res, err := d.confirmSpend.Execute(appspend.ConfirmSpendCommand{
		StaffActorID: actorID.Int64(),
		Code:         cb.Code.String(),
	})
	if err != nil {
		return d.reply(actorID, d.settlementErrorText(err))
	}
	return d.reply(actorID, fmt.Sprintf(
		"Обмен подтверждён: списано %d баллов по коду %s. ✅", res.Cost, cb.Code.String()))
}

func (d *Dispatcher) settleSpendReject(actorID shared.ActorID, cb codes.SpendReject) error {
	_, err := d.rejectSpend.Execute(appspend.RejectSpendCommand{
		StaffActorID: actorID.Int64(),
		Code:         cb.Code.String(),
	})
	if err != nil {
		return d.reply(actorID, d.settlementErrorText(err))
	}
	return d.reply(actorID, fmt.Sprintf("Обмен по коду %s отклонён.", cb.Code.String()))
}

// settlementErrorText 把結算錯誤轉成收銀員可見的文案
func (d *Dispatcher) settlementErrorText(err error) string {
	switch {
	case errors.Is(err, codes.ErrCodeAlreadyUsed):
		return "Этот код уже использован."
	case errors.Is(err, codes.ErrCodeNotFound):
		return "Код не найден."
	case errors.Is(err, codes.ErrInvalidAmount):
		return "Недопустимая сумма начисления."
	case errors.Is(err, client.ErrInsufficientPoints):
		return "У клиента недостаточно баллов. Операция не выполнена."
	default:
		d.logger.Error("settlement failed", "error", err)
		return "Не удалось выполнить операцию. Попробуйте ещё раз."
	}
}
