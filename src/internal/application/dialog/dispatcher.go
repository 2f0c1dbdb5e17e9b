package dialog

import (
	"context"
	"log/slog"

	appadmin "github.com/Niko-MM/BonusLinkBot/src/internal/application/admin"
	appclient "github.com/Niko-MM/BonusLinkBot/src/internal/application/client"
	appearn "github.com/Niko-MM/BonusLinkBot/src/internal/application/earn"
	appspend "github.com/Niko-MM/BonusLinkBot/src/internal/application/spend"
	"github.com/Niko-MM/BonusLinkBot/src/internal/application/session"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/access"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// Dialog Dispatcher
// ===========================

// Update 來自聊天平台的一次入站互動
//
// 兩種互斥形態：
// - 文字訊息（Text 非空）
// - 按鈕回呼（CallbackPayload 非空）
type Update struct {
	ActorID         int64
	Username        string
	FullName        string
	Text            string
	CallbackPayload string
}

// 選單按鈕文案（reply keyboard：按下即以原文回傳）
const (
	btnEarn    = "💰 Начислить баллы"
	btnSpend   = "🎁 Потратить баллы"
	btnBalance = "💳 Мой баланс"
	btnAbout   = "ℹ️ О программе"
	btnCancel  = "❌ Отмена"

	btnAddStaff    = "➕ Добавить кассира"
	btnRemoveStaff = "➖ Удалить кассира"
	btnListStaff   = "📋 Список кассиров"
	btnStats       = "📊 Статистика"
	btnBroadcast   = "📢 Рассылка"
)

// Dispatcher 對話調度器
//
// 每次入站互動的處理順序：
// 1. 解析角色（管理員 → 收銀員 → 客戶）
// 2. 按角色與對話步驟路由到對應的流程處理
// 3. 透過 Notifier 回覆
//
// 調度器只做編排與文案渲染，業務規則全部在 Use Case 與
// Domain Layer。
type Dispatcher struct {
	resolver  *access.Resolver
	sessions  session.Store
	notifier  messaging.Notifier
	staffRepo staff.StaffRepository // 兌換流程在選網點時就要查名冊
	logger    *slog.Logger

	catalog  *venue.Catalog
	products *venue.ProductCatalog
	policy   *codes.AccrualPolicy

	registerClient appclient.RegisterClientUseCase
	getBalance     appclient.GetBalanceUseCase

	requestEarn appearn.RequestEarnCodeUseCase
	confirmEarn appearn.ConfirmEarnUseCase
	rejectEarn  appearn.RejectEarnUseCase

	requestSpend appspend.RequestSpendCodeUseCase
	confirmSpend appspend.ConfirmSpendUseCase
	rejectSpend  appspend.RejectSpendUseCase

	addStaff    appadmin.AddStaffUseCase
	removeStaff appadmin.RemoveStaffUseCase
	listStaff   appadmin.ListStaffUseCase
}

// DispatcherDeps 調度器依賴集合（構造參數過多，集中成一個結構）
type DispatcherDeps struct {
	Resolver  *access.Resolver
	Sessions  session.Store
	Notifier  messaging.Notifier
	StaffRepo staff.StaffRepository
	Logger    *slog.Logger

	Catalog  *venue.Catalog
	Products *venue.ProductCatalog
	Policy   *codes.AccrualPolicy

	RegisterClient appclient.RegisterClientUseCase
	GetBalance     appclient.GetBalanceUseCase

	RequestEarn appearn.RequestEarnCodeUseCase
	ConfirmEarn appearn.ConfirmEarnUseCase
	RejectEarn  appearn.RejectEarnUseCase

	RequestSpend appspend.RequestSpendCodeUseCase
	ConfirmSpend appspend.ConfirmSpendUseCase
	RejectSpend  appspend.RejectSpendUseCase

	AddStaff    appadmin.AddStaffUseCase
	RemoveStaff appadmin.RemoveStaffUseCase
	ListStaff   appadmin.ListStaffUseCase
}

// NewDispatcher 創建對話調度器
func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	return &Dispatcher{
		resolver:       deps.Resolver,
		sessions:       deps.Sessions,
		notifier:       deps.Notifier,
		staffRepo:      deps.StaffRepo,
		logger:         deps.Logger,
		catalog:        deps.Catalog,
		products:       deps.Products,
		policy:         deps.Policy,
		registerClient: deps.RegisterClient,
		getBalance:     deps.GetBalance,
		requestEarn:    deps.RequestEarn,
		confirmEarn:    deps.ConfirmEarn,
		rejectEarn:     deps.RejectEarn,
		requestSpend:   deps.RequestSpend,
		confirmSpend:   deps.ConfirmSpend,
		rejectSpend:    deps.RejectSpend,
		addStaff:       deps.AddStaff,
		removeStaff:    deps.RemoveStaff,
		listStaff:      deps.ListStaff,
	}
}

// HandleUpdate 處理一次入站互動
//
// 錯誤處理約定：用戶可見的問題（格式錯誤、碼已用、餘額不足）
// 轉成回覆文案；基礎設施錯誤記日誌並回覆通用失敗文案。
// 返回的 error 僅表示「連回覆都發不出去」之外的致命問題。
func (d *Dispatcher) HandleUpdate(u Update) error {
	actorID, err := shared.NewActorID(u.ActorID)
	if err != nil {
		d.logger.Warn("update with invalid actor id", "actor_id", u.ActorID)
		return nil // 無處回覆，丟棄
	}

	if u.CallbackPayload != "" {
		return d.handleCallback(actorID, u.CallbackPayload)
	}
	return d.handleMessage(actorID, u)
}

// handleMessage 按角色路由文字訊息
func (d *Dispatcher) handleMessage(actorID shared.ActorID, u Update) error {
	res, err := d.resolver.Resolve(nil, actorID)
	if err != nil {
		d.logger.Error("role resolution failed", "actor_id", actorID.String(), "error", err)
		return d.reply(actorID, "Произошла ошибка. Попробуйте позже.")
	}

	switch res.Role {
	case access.RoleAdmin:
		return d.handleAdminMessage(actorID, u.Text)
	case access.RoleStaff:
		return d.handleStaffMessage(actorID, res)
	default:
		return d.handleClientMessage(actorID, u)
	}
}

// handleStaffMessage 收銀員的文字訊息
//
// 收銀員的工作介面是交易通知上的按鈕，文字訊息只回提示。
func (d *Dispatcher) handleStaffMessage(actorID shared.ActorID, res access.Resolution) error {
	venueName := res.Staff.VenueID().String()
	if v, err := d.catalog.FindByID(res.Staff.VenueID()); err == nil {
		venueName = v.Name()
	}
	return d.reply(actorID,
		"Вы кассир кофейни «"+venueName+"».\n"+
			"Запросы клиентов придут сюда автоматически — подтверждайте или отклоняйте их кнопками под сообщением.")
}

// session 取出參與者的對話狀態，未命中（含過期）時開新狀態
func (d *Dispatcher) session(actorID shared.ActorID) *session.Session {
	if s, ok := d.sessions.Get(actorID); ok {
		return s
	}
	return session.NewSession(actorID)
}

// reply 給參與者發一條純文字回覆
func (d *Dispatcher) reply(actorID shared.ActorID, text string) error {
	return d.notifier.Send(context.Background(), messaging.Message{
		Recipient: actorID,
		Text:      text,
	})
}

// replyWithButtons 給參與者發一條帶按鈕的回覆
func (d *Dispatcher) replyWithButtons(actorID shared.ActorID, text string, buttons []messaging.Button) error {
	return d.notifier.Send(context.Background(), messaging.Message{
		Recipient: actorID,
		Text:      text,
		Buttons:   buttons,
	})
}
