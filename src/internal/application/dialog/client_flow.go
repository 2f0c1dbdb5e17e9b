package dialog

import (
	"errors"
	"fmt"

	appclient "github.com/Niko-MM/BonusLinkBot/src/internal/application/client"
	appearn "github.com/Niko-MM/BonusLinkBot/src/internal/application/earn"
	appspend "github.com/Niko-MM/BonusLinkBot/src/internal/application/spend"
	"github.com/Niko-MM/BonusLinkBot/src/internal/application/session"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
)

// ===========================
// Client Conversation Flow
// ===========================

// handleClientMessage 客戶的文字訊息
//
// 狀態機：
//
//	Idle ──「Начислить баллы」──▶ SelectingVenue ──▶ SelectingAmount ──▶ Idle（碼已發）
//	Idle ──「Потратить баллы」──▶ SelectingSpendVenue ──▶ SelectingProduct ──▶ Idle（碼已發）
//	任意步驟 ──「Отмена」──▶ Idle
func (d *Dispatcher) handleClientMessage(actorID shared.ActorID, u Update) error {
	// 每條訊息都冪等註冊：客戶可能在 /start 之前就發了別的文字
	reg, err := d.registerClient.Execute(appclient.RegisterClientCommand{
		ActorID:  actorID.Int64(),
		Username: u.Username,
		FullName: u.FullName,
	})
	if err != nil {
		d.logger.Error("client registration failed", "actor_id", actorID.String(), "error", err)
		return d.reply(actorID, "Произошла ошибка. Попробуйте позже.")
	}

	s := d.session(actorID)

	// 取消在任意步驟生效
	if u.Text == btnCancel {
		s.Reset()
		d.sessions.Put(s)
		return d.sendClientMenu(actorID, "Действие отменено.")
	}

	switch s.Step {
	case session.StepSelectingVenue:
		return d.clientPickVenue(actorID, s, u.Text)
	case session.StepSelectingAmount:
		return d.clientPickAmount(actorID, s, u.Text)
	case session.StepSelectingSpendVenue:
		return d.clientPickSpendVenue(actorID, s, u.Text)
	case session.StepSelectingProduct:
		return d.clientPickProduct(actorID, s, u.Text)
	}

	// Idle：頂層選單指令
	switch u.Text {
	case "/start":
		greeting := "С возвращением!"
		if reg.Created {
			greeting = "Добро пожаловать в бонусную программу наших кофеен!"
		}
		return d.sendClientMenu(actorID, greeting)

	case btnEarn:
		s.Reset()
		s.Advance(session.StepSelectingVenue)
		d.sessions.Put(s)
		return d.askVenue(actorID)

	case btnSpend:
		s.Reset()
		s.Advance(session.StepSelectingSpendVenue)
		d.sessions.Put(s)
		return d.askSpendVenue(actorID)

	case btnAbout:
		return d.sendClientMenu(actorID,
			"Бонусная программа наших кофеен:\n"+
				"— за покупки начисляются баллы (7 баллов за каждые 100 ₽);\n"+
				"— баллы можно обменять на напитки и десерты;\n"+
				"— код подтверждает кассир на месте.")

	case btnBalance:
		res, err := d.getBalance.Execute(appclient.GetBalanceQuery{ActorID: actorID.Int64()})
		if err != nil {
			d.logger.Error("balance query failed", "actor_id", actorID.String(), "error", err)
			return d.reply(actorID, "Произошла ошибка. Попробуйте позже.")
		}
		return d.sendClientMenu(actorID, fmt.Sprintf(
			"Ваш баланс: %d баллов.\nВсего покупок: %d.", res.Balance, res.TotalPurchases))

	default:
		return d.sendClientMenu(actorID, "Выберите действие:")
	}
}

// sendClientMenu 渲染客戶頂層選單
func (d *Dispatcher) sendClientMenu(actorID shared.ActorID, text string) error {
	return d.replyWithButtons(actorID, text, []messaging.Button{
		{Label: btnEarn, Payload: btnEarn},
		{Label: btnSpend, Payload: btnSpend},
		{Label: btnBalance, Payload: btnBalance},
		{Label: btnAbout, Payload: btnAbout},
	})
}

// askVenue 發放流程第一步：選網點
func (d *Dispatcher) askVenue(actorID shared.ActorID) error {
	buttons := make([]messaging.Button, 0, d.catalog.Len()+1)
	for _, v := range d.catalog.All() {
		buttons = append(buttons, messaging.Button{Label: v.Name(), Payload: v.Name()})
	}
	buttons = append(buttons, messaging.Button{Label: btnCancel, Payload: btnCancel})
	return d.replyWithButtons(actorID, "В какой кофейне вы совершили покупку?", buttons)
}

// clientPickVenue 發放流程：處理網點選擇
func (d *Dispatcher) clientPickVenue(actorID shared.ActorID, s *session.Session, text string) error {
	v, err := d.catalog.FindByName(text)
	if err != nil {
		return d.askVenue(actorID) // 重新提示，不中斷流程
	}

	s.VenueID = v.ID().String()
	s.Advance(session.StepSelectingAmount)
	d.sessions.Put(s)

	return d.askAmount(actorID)
}

// askAmount 發放流程第二步：選購買金額
func (d *Dispatcher) askAmount(actorID shared.ActorID) error {
	opts := d.policy.Options()
	buttons := make([]messaging.Button, 0, len(opts)+1)
	for _, opt := range opts {
		label := accrualLabel(opt.AmountRubles.String(), opt.Points)
		buttons = append(buttons, messaging.Button{Label: label, Payload: label})
	}
	buttons = append(buttons, messaging.Button{Label: btnCancel, Payload: btnCancel})
	return d.replyWithButtons(actorID, "На какую сумму была покупка?", buttons)
}

// accrualLabel 金額選項的按鈕文案（同時是回傳匹配的鍵）
func accrualLabel(rubles string, points int) string {
	return fmt.Sprintf("%s ₽ → +%d баллов", rubles, points)
}

// clientPickAmount 發放流程：處理金額選擇並發碼
func (d *Dispatcher) clientPickAmount(actorID shared.ActorID, s *session.Session, text string) error {
	var points int
	found := false
	for _, opt := range d.policy.Options() {
		if accrualLabel(opt.AmountRubles.String(), opt.Points) == text {
			points = opt.Points
			found = true
			break
		}
	}
	if !found {
		return d.askAmount(actorID)
	}

	res, err := d.requestEarn.Execute(appearn.RequestEarnCodeCommand{
		ActorID: actorID.Int64(),
		VenueID: s.VenueID,
		Points:  points,
	})

	s.Reset()
	d.sessions.Put(s)

	if err != nil {
		d.logger.Error("earn code request failed", "actor_id", actorID.String(), "error", err)
		return d.sendClientMenu(actorID, "Не удалось создать код. Попробуйте ещё раз.")
	}

	// 網點沒有收銀員：碼已預留但無人能核銷，提示客戶稍後再試
	if res.StaffCount == 0 {
		return d.sendClientMenu(actorID,
			"Сейчас в этой кофейне нет кассиров. Попробуйте позже.")
	}

	return d.sendClientMenu(actorID, fmt.Sprintf(
		"Ваш код: %s\n\nНазовите его кассиру кофейни «%s». Кассир подтвердит покупку и выберет сумму начисления.",
		res.Code, res.VenueName))
}

// askSpendVenue 兌換流程第一步：選網點（決定通知哪裡的收銀員）
func (d *Dispatcher) askSpendVenue(actorID shared.ActorID) error {
	buttons := make([]messaging.Button, 0, d.catalog.Len()+1)
	for _, v := range d.catalog.All() {
		buttons = append(buttons, messaging.Button{Label: v.Name(), Payload: v.Name()})
	}
	buttons = append(buttons, messaging.Button{Label: btnCancel, Payload: btnCancel})
	return d.replyWithButtons(actorID, "В какой кофейне хотите забрать заказ?", buttons)
}

// clientPickSpendVenue 兌換流程：處理網點選擇
//
// 名冊檢查就在這一步：沒有收銀員的網點直接中止流程回到
// Idle，不讓客戶白走選商品那一步。Use Case 在發碼前還會再
// 檢查一次（名冊可能在對話中途變空）。
func (d *Dispatcher) clientPickSpendVenue(actorID shared.ActorID, s *session.Session, text string) error {
	v, err := d.catalog.FindByName(text)
	if err != nil {
		return d.askSpendVenue(actorID) // 重新提示，不中斷流程
	}

	roster, err := d.staffRepo.ListByVenue(nil, v.ID())
	if err != nil {
		d.logger.Error("venue roster lookup failed",
			"actor_id", actorID.String(),
			"venue_id", v.ID().String(),
			"error", err,
		)
		s.Reset()
		d.sessions.Put(s)
		return d.sendClientMenu(actorID, "Произошла ошибка. Попробуйте позже.")
	}
	if len(roster) == 0 {
		s.Reset()
		d.sessions.Put(s)
		return d.sendClientMenu(actorID,
			"Сейчас в этой кофейне нет кассиров. Попробуйте позже.")
	}

	s.VenueID = v.ID().String()
	s.Advance(session.StepSelectingProduct)
	d.sessions.Put(s)

	return d.askProduct(actorID)
}

// askProduct 兌換流程：選商品
func (d *Dispatcher) askProduct(actorID shared.ActorID) error {
	products := d.products.All()
	buttons := make([]messaging.Button, 0, len(products)+1)
	for _, p := range products {
		label := fmt.Sprintf("%s — %d баллов", p.Name(), p.Cost())
		buttons = append(buttons, messaging.Button{Label: label, Payload: label})
	}
	buttons = append(buttons, messaging.Button{Label: btnCancel, Payload: btnCancel})
	return d.replyWithButtons(actorID, "Что хотите получить за баллы?", buttons)
}

// clientPickProduct 兌換流程：處理商品選擇並發碼
func (d *Dispatcher) clientPickProduct(actorID shared.ActorID, s *session.Session, text string) error {
	var productID string
	for _, p := range d.products.All() {
		if fmt.Sprintf("%s — %d баллов", p.Name(), p.Cost()) == text {
			productID = p.ID()
			break
		}
	}
	if productID == "" {
		return d.askProduct(actorID)
	}

	res, err := d.requestSpend.Execute(appspend.RequestSpendCodeCommand{
		ActorID:   actorID.Int64(),
		VenueID:   s.VenueID,
		ProductID: productID,
	})

	s.Reset()
	d.sessions.Put(s)

	if err != nil {
		if errors.Is(err, client.ErrInsufficientPoints) {
			return d.sendClientMenu(actorID, "Недостаточно баллов для обмена. Копите дальше! 💪")
		}
		if errors.Is(err, staff.ErrNoActiveStaff) {
			return d.sendClientMenu(actorID,
				"Сейчас в этой кофейне нет кассиров. Попробуйте позже.")
		}
		d.logger.Error("spend code request failed", "actor_id", actorID.String(), "error", err)
		return d.sendClientMenu(actorID, "Не удалось создать код. Попробуйте ещё раз.")
	}

	return d.sendClientMenu(actorID, fmt.Sprintf(
		"Ваш код: %s\n\nНазовите его кассиру, чтобы получить «%s» за %d баллов.",
		res.Code, res.ProductName, res.Cost))
}
