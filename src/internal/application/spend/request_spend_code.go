package spend

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
// UC-201: RequestSpendCode Use Case
// ===========================

// RequestSpendCodeCommand 請求兌換碼指令（Input DTO）
type RequestSpendCodeCommand struct {
	ActorID   int64
	VenueID   string // 客戶選擇的兌換網點（決定通知的收銀員集合）
	ProductID string
}

// RequestSpendCodeResult 請求兌換碼結果（Output DTO）
type RequestSpendCodeResult struct {
	Code        string
	ProductName string
	Cost        int
	Notified    int
}

// RequestSpendCodeUseCase 請求兌換碼 Use Case 接口
//
// 業務規則：
// 1. 網點與商品都必須在目錄中
// 2. 網點必須有收銀員：沒人能核銷的兌換碼不該發出
//    （ErrNoActiveStaff，發碼前檢查）
// 3. 發碼前做餘額預檢：明顯不足直接拒絕，少發一個註定失敗的碼。
//    預檢不是守衛 —— 真正的守衛是確認時的條件扣款
// 4. 兌換碼本身不記網點（成本在發碼時定死），網點只決定
//    通知發給誰
type RequestSpendCodeUseCase interface {
	Execute(cmd RequestSpendCodeCommand) (*RequestSpendCodeResult, error)
}

// RequestSpendCodeUseCaseImpl 請求兌換碼 Use Case 實作
type RequestSpendCodeUseCaseImpl struct {
	issuer     *codes.Issuer
	clientRepo client.ClientRepository
	staffRepo  staff.StaffRepository
	catalog    *venue.Catalog
	products   *venue.ProductCatalog
	notifier   messaging.Notifier
	logger     *slog.Logger
}

// NewRequestSpendCodeUseCase 創建 RequestSpendCodeUseCase 實例
func NewRequestSpendCodeUseCase(
	issuer *codes.Issuer,
	clientRepo client.ClientRepository,
	staffRepo staff.StaffRepository,
	catalog *venue.Catalog,
	products *venue.ProductCatalog,
	notifier messaging.Notifier,
	logger *slog.Logger,
) RequestSpendCodeUseCase {
	return &RequestSpendCodeUseCaseImpl{
		issuer:     issuer,
		clientRepo: clientRepo,
		staffRepo:  staffRepo,
		catalog:    catalog,
		products:   products,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute 執行請求兌換碼 Use Case
//
// 業務流程：
// 1. 驗證輸入（客戶已註冊、網點與商品在目錄中）
// 2. 收銀員預檢：網點沒有收銀員 → ErrNoActiveStaff，不發碼
// 3. 餘額預檢（不足 → ErrInsufficientPoints，不發碼）
// 4. 發碼（生成 → 預留，碰撞自動重試）
// 5. 通知該網點的收銀員（附確認 / 拒絕按鈕）
func (uc *RequestSpendCodeUseCaseImpl) Execute(cmd RequestSpendCodeCommand) (*RequestSpendCodeResult, error) {
	actorID, err := shared.NewActorID(cmd.ActorID)
	if err != nil {
		return nil, err
	}

	venueID, err := venue.NewVenueID(cmd.VenueID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.catalog.FindByID(venueID); err != nil {
		return nil, err
	}

	product, err := uc.products.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	recipients, err := uc.staffRepo.ListByVenue(nil, venueID)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, staff.ErrNoActiveStaff.WithContext("venue_id", venueID.String())
	}

	requester, err := uc.clientRepo.FindByActorID(nil, actorID)
	if err != nil {
		return nil, err
	}

	cost, err := client.NewPointsAmount(product.Cost())
	if err != nil {
		return nil, err
	}
	if !requester.CanAfford(cost) {
		return nil, client.ErrInsufficientPoints.WithContext(
			"balance", requester.Balance().Value(),
			"cost", product.Cost(),
		)
	}

	tc, err := uc.issuer.IssueSpend(actorID, product.Cost(), product.ID())
	if err != nil {
		return nil, err
	}

	notified := uc.notifyStaff(requester, tc, product, recipients)

	return &RequestSpendCodeResult{
		Code:        tc.Code().String(),
		ProductName: product.Name(),
		Cost:        product.Cost(),
		Notified:    notified,
	}, nil
}

func (uc *RequestSpendCodeUseCaseImpl) notifyStaff(requester *client.Client, tc *codes.TransactionCode, product venue.Product, recipients []*staff.Staff) int {
	text := fmt.Sprintf(
		"Запрос на обмен баллов\n\nКлиент: %s\nТовар: %s\nСтоимость: %d баллов\nКод: %s",
		displayName(requester), product.Name(), product.Cost(), tc.Code().String(),
	)
	buttons := []messaging.Button{
		{Label: "✅ Подтвердить", Payload: codes.SpendAccept{Code: tc.Code(), Cost: tc.Amount()}.Encode()},
		{Label: "❌ Отклонить", Payload: codes.SpendReject{Code: tc.Code()}.Encode()},
	}

	notified := 0
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
	return notified
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
