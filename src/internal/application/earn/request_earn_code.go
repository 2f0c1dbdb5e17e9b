package earn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// UC-101: RequestEarnCode Use Case
// ===========================

// RequestEarnCodeCommand 請求發放碼指令（Input DTO）
type RequestEarnCodeCommand struct {
	ActorID int64  // 發起請求的客戶
	VenueID string // 客戶選擇的網點
	Points  int    // 客戶申報金額對應的積分（參考值，入帳以收銀員選定為準）
}

// RequestEarnCodeResult 請求發放碼結果（Output DTO）
type RequestEarnCodeResult struct {
	Code       string
	Points     int // 客戶申報金額對應的積分（參考值）
	VenueName  string
	StaffCount int // 該網點名冊上的收銀員數量
	Notified   int // 實際收到通知的收銀員數量
}

// RequestEarnCodeUseCase 請求發放碼 Use Case 接口
//
// 業務規則：
// 1. 網點必須在目錄中
// 2. 碼預留成功後才通知收銀員（碼先於按鈕存在）；網點沒有
//    收銀員時碼照樣預留（成為孤兒碼，永遠不會被核銷），
//    由對話層提示客戶
// 3. 入帳金額由收銀員在確認時從選單選定，通知附上全部選項
// 4. 通知是盡力而為：單個收銀員送達失敗不影響已預留的碼
type RequestEarnCodeUseCase interface {
	Execute(cmd RequestEarnCodeCommand) (*RequestEarnCodeResult, error)
}

// RequestEarnCodeUseCaseImpl 請求發放碼 Use Case 實作
type RequestEarnCodeUseCaseImpl struct {
	issuer     *codes.Issuer
	clientRepo client.ClientRepository
	staffRepo  staff.StaffRepository
	catalog    *venue.Catalog
	policy     *codes.AccrualPolicy
	notifier   messaging.Notifier
	logger     *slog.Logger
}

// NewRequestEarnCodeUseCase 創建 RequestEarnCodeUseCase 實例
func NewRequestEarnCodeUseCase(
	issuer *codes.Issuer,
	clientRepo client.ClientRepository,
	staffRepo staff.StaffRepository,
	catalog *venue.Catalog,
	policy *codes.AccrualPolicy,
	notifier messaging.Notifier,
	logger *slog.Logger,
) RequestEarnCodeUseCase {
	return &RequestEarnCodeUseCaseImpl{
		issuer:     issuer,
		clientRepo: clientRepo,
		staffRepo:  staffRepo,
		catalog:    catalog,
		policy:     policy,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute 執行請求發放碼 Use Case
//
// 業務流程：
// 1. 驗證輸入（客戶已註冊、網點在目錄中、積分為正）
// 2. 發碼（生成 → 預留，碰撞自動重試）
// 3. 通知該網點的收銀員（附確認 / 拒絕按鈕）
func (uc *RequestEarnCodeUseCaseImpl) Execute(cmd RequestEarnCodeCommand) (*RequestEarnCodeResult, error) {
	actorID, err := shared.NewActorID(cmd.ActorID)
	if err != nil {
		return nil, err
	}

	venueID, err := venue.NewVenueID(cmd.VenueID)
	if err != nil {
		return nil, err
	}
	v, err := uc.catalog.FindByID(venueID)
	if err != nil {
		return nil, err
	}

	if cmd.Points <= 0 {
		return nil, codes.ErrInvalidAmount.WithContext("points", cmd.Points)
	}

	requester, err := uc.clientRepo.FindByActorID(nil, actorID)
	if err != nil {
		return nil, err
	}

	tc, err := uc.issuer.IssueEarn(actorID, cmd.Points, venueID)
	if err != nil {
		return nil, err
	}

	staffCount, notified := uc.notifyStaff(requester, tc, v)

	return &RequestEarnCodeResult{
		Code:       tc.Code().String(),
		Points:     tc.Amount(),
		VenueName:  v.Name(),
		StaffCount: staffCount,
		Notified:   notified,
	}, nil
}

func (uc *RequestEarnCodeUseCaseImpl) notifyStaff(requester *client.Client, tc *codes.TransactionCode, v venue.Venue) (staffCount, notified int) {
	recipients, err := uc.staffRepo.ListByVenue(nil, tc.VenueID())
	if err != nil {
		uc.logger.Error("failed to list venue staff",
			"venue_id", tc.VenueID().String(),
			"error", err,
		)
		return 0, 0
	}
	if len(recipients) == 0 {
		uc.logger.Warn("no staff assigned to venue, earn code issued without notification",
			"venue_id", tc.VenueID().String(),
			"code", tc.Code().String(),
		)
		return 0, 0
	}

	text := fmt.Sprintf(
		"Запрос на начисление баллов\n\nКлиент: %s\nКофейня: %s\nЗаявлено: +%d баллов\nКод: %s\n\nВыберите сумму начисления:",
		displayName(requester), v.Name(), tc.Amount(), tc.Code().String(),
	)

	// 金額由收銀員選定：每個選單選項一顆按鈕，外加拒絕
	opts := uc.policy.Options()
	buttons := make([]messaging.Button, 0, len(opts)+1)
	for _, opt := range opts {
		buttons = append(buttons, messaging.Button{
			Label:   fmt.Sprintf("+%d баллов", opt.Points),
			Payload: codes.EarnAccept{Code: tc.Code(), Points: opt.Points}.Encode(),
		})
	}
	buttons = append(buttons, messaging.Button{
		Label:   "❌ Отклонить",
		Payload: codes.EarnReject{Code: tc.Code()}.Encode(),
	})

	for _, s := range recipients {
		err := uc.notifier.Send(context.Background(), messaging.Message{
			Recipient: s.ActorID(),
			Text:      text,
			Buttons:   buttons,
		})
		if err != nil {
			uc.logger.Error("failed to notify staff",
				"staff_actor_id", s.ActorID().String(),
				"code", tc.Code().String(),
				"error", err,
			)
			continue
		}
		notified++
	}
	return len(recipients), notified
}

// displayName 組合用戶可見的客戶稱呼（姓名優先，依次回退）
func displayName(c *client.Client) string {
	if c.FullName() != "" {
		return c.FullName()
	}
	if c.Username() != "" {
		return "@" + c.Username()
	}
	return "ID " + c.ActorID().String()
}
