package dialog

import (
	"errors"
	"fmt"
	"strings"

	appadmin "github.com/Niko-MM/BonusLinkBot/src/internal/application/admin"
	"github.com/Niko-MM/BonusLinkBot/src/internal/application/session"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// Admin Conversation Flow
// ===========================

// handleAdminMessage 管理員的文字訊息
//
// 狀態機（新增收銀員是三步流程）：
//
//	Idle ──「Добавить кассира」──▶ AwaitingStaffID ──▶ AwaitingStaffName
//	     ──▶ AwaitingStaffVenue ──▶ Idle（已寫入名冊）
//	Idle ──「Удалить кассира」──▶ AwaitingRemoveID ──▶ Idle
func (d *Dispatcher) handleAdminMessage(actorID shared.ActorID, text string) error {
	s := d.session(actorID)

	if text == btnCancel {
		s.Reset()
		d.sessions.Put(s)
		return d.sendAdminMenu(actorID, "Действие отменено.")
	}

	switch s.Step {
	case session.StepAwaitingStaffID:
		return d.adminEnterStaffID(actorID, s, text)
	case session.StepAwaitingStaffName:
		return d.adminEnterStaffName(actorID, s, text)
	case session.StepAwaitingStaffVenue:
		return d.adminPickStaffVenue(actorID, s, text)
	case session.StepAwaitingRemoveID:
		return d.adminEnterRemoveID(actorID, s, text)
	}

	switch text {
	case "/start":
		return d.sendAdminMenu(actorID, "Панель администратора.")

	case btnAddStaff:
		s.Reset()
		s.Advance(session.StepAwaitingStaffID)
		d.sessions.Put(s)
		return d.reply(actorID, "Введите числовой ID нового кассира (кассир может узнать его, написав боту).")

	case btnRemoveStaff:
		s.Reset()
		s.Advance(session.StepAwaitingRemoveID)
		d.sessions.Put(s)
		return d.reply(actorID, "Введите числовой ID кассира, которого нужно удалить.")

	case btnListStaff:
		return d.adminListStaff(actorID)

	case btnStats:
		return d.sendAdminMenu(actorID, "Статистика пока в разработке.")

	case btnBroadcast:
		return d.sendAdminMenu(actorID, "Рассылка пока в разработке.")

	default:
		return d.sendAdminMenu(actorID, "Выберите действие:")
	}
}

// sendAdminMenu 渲染管理員選單
func (d *Dispatcher) sendAdminMenu(actorID shared.ActorID, text string) error {
	return d.replyWithButtons(actorID, text, []messaging.Button{
		{Label: btnAddStaff, Payload: btnAddStaff},
		{Label: btnRemoveStaff, Payload: btnRemoveStaff},
		{Label: btnListStaff, Payload: btnListStaff},
		{Label: btnStats, Payload: btnStats},
		{Label: btnBroadcast, Payload: btnBroadcast},
	})
}

// adminEnterStaffID 新增流程第一步：收銀員平台 ID
func (d *Dispatcher) adminEnterStaffID(actorID shared.ActorID, s *session.Session, text string) error {
	// 先驗一遍：格式錯誤時原地重新提示，不浪費整個流程
	if _, err := shared.ParseActorID(text); err != nil {
		return d.reply(actorID, "ID должен быть положительным числом. Попробуйте ещё раз.")
	}

	s.StaffID = strings.TrimSpace(text)
	s.Advance(session.StepAwaitingStaffName)
	d.sessions.Put(s)
	return d.reply(actorID, "Введите имя кассира.")
}

// adminEnterStaffName 新增流程第二步：姓名
func (d *Dispatcher) adminEnterStaffName(actorID shared.ActorID, s *session.Session, text string) error {
	if strings.TrimSpace(text) == "" {
		return d.reply(actorID, "Имя не может быть пустым. Попробуйте ещё раз.")
	}

	s.StaffName = strings.TrimSpace(text)
	s.Advance(session.StepAwaitingStaffVenue)
	d.sessions.Put(s)

	buttons := make([]messaging.Button, 0, d.catalog.Len()+1)
	for _, v := range d.catalog.All() {
		buttons = append(buttons, messaging.Button{Label: v.Name(), Payload: v.Name()})
	}
	buttons = append(buttons, messaging.Button{Label: btnCancel, Payload: btnCancel})
	return d.replyWithButtons(actorID, "В какой кофейне будет работать кассир?", buttons)
}

// adminPickStaffVenue 新增流程第三步：網點，寫入名冊
func (d *Dispatcher) adminPickStaffVenue(actorID shared.ActorID, s *session.Session, text string) error {
	res, err := d.addStaff.Execute(appadmin.AddStaffCommand{
		ActorID:   s.StaffID,
		FullName:  s.StaffName,
		VenueName: text,
	})
	if err != nil {
		if errors.Is(err, venue.ErrVenueNotFound) {
			return d.reply(actorID, "Такой кофейни нет в списке. Выберите кнопкой ниже.")
		}
		s.Reset()
		d.sessions.Put(s)
		d.logger.Error("add staff failed", "admin_actor_id", actorID.String(), "error", err)
		return d.sendAdminMenu(actorID, "Не удалось добавить кассира. Попробуйте ещё раз.")
	}

	s.Reset()
	d.sessions.Put(s)
	return d.sendAdminMenu(actorID, fmt.Sprintf(
		"Кассир %s (ID %s) добавлен в кофейню «%s». ✅",
		res.FullName, res.ActorID, res.VenueName))
}

// adminEnterRemoveID 移除流程：按 ID 移除
func (d *Dispatcher) adminEnterRemoveID(actorID shared.ActorID, s *session.Session, text string) error {
	res, err := d.removeStaff.Execute(appadmin.RemoveStaffCommand{ActorID: text})
	if err != nil {
		if errors.Is(err, shared.ErrInvalidActorID) {
			return d.reply(actorID, "ID должен быть положительным числом. Попробуйте ещё раз.")
		}
		s.Reset()
		d.sessions.Put(s)
		d.logger.Error("remove staff failed", "admin_actor_id", actorID.String(), "error", err)
		return d.sendAdminMenu(actorID, "Не удалось удалить кассира. Попробуйте ещё раз.")
	}

	s.Reset()
	d.sessions.Put(s)

	if !res.Removed {
		return d.sendAdminMenu(actorID, fmt.Sprintf("Кассир с ID %s не найден в списке.", res.ActorID))
	}
	return d.sendAdminMenu(actorID, fmt.Sprintf("Кассир с ID %s удалён. ✅", res.ActorID))
}

// adminListStaff 名冊檢視
func (d *Dispatcher) adminListStaff(actorID shared.ActorID) error {
	res, err := d.listStaff.Execute()
	if err != nil {
		d.logger.Error("list staff failed", "admin_actor_id", actorID.String(), "error", err)
		return d.sendAdminMenu(actorID, "Не удалось получить список кассиров.")
	}

	if len(res.Staff) == 0 {
		return d.sendAdminMenu(actorID, "Список кассиров пуст.")
	}

	var b strings.Builder
	b.WriteString("Кассиры:\n")
	for i, entry := range res.Staff {
		fmt.Fprintf(&b, "%d. %s — «%s» (ID %s)\n", i+1, entry.FullName, entry.VenueName, entry.ActorID)
	}
	return d.sendAdminMenu(actorID, b.String())
}
