package codes

import (
	"errors"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// Issuer Domain Service
// ===========================

// Issuer 發碼領域服務
//
// 封裝「生成 → 預留 → 碰撞重試」迴圈：
// 1. 按累計碰撞次數向 Generator 要候選碼
// 2. 在獨立短事務中 Reserve（唯一索引裁決）
// 3. ErrCodeTaken 視為碰撞，累計後重試；其他錯誤直接上拋
//
// 每次 Reserve 用獨立事務：預留失敗不應回滾任何其他工作，
// 成功的預留也要立刻可見（另一個併發發碼流程必須撞上它）。
type Issuer struct {
	generator *Generator
	repo      CodeRepository
	txManager shared.TransactionManager
}

// NewIssuer 創建發碼服務
func NewIssuer(generator *Generator, repo CodeRepository, txManager shared.TransactionManager) *Issuer {
	return &Issuer{
		generator: generator,
		repo:      repo,
		txManager: txManager,
	}
}

// IssueEarn 發放一個積分發放碼
func (i *Issuer) IssueEarn(actorID shared.ActorID, points int, venueID venue.VenueID) (*TransactionCode, error) {
	return i.issue(func(code Code) (*TransactionCode, error) {
		return NewEarnCode(code, actorID, points, venueID)
	})
}

// IssueSpend 發放一個積分兌換碼
func (i *Issuer) IssueSpend(actorID shared.ActorID, cost int, productID string) (*TransactionCode, error) {
	return i.issue(func(code Code) (*TransactionCode, error) {
		return NewSpendCode(code, actorID, cost, productID)
	})
}

func (i *Issuer) issue(build func(Code) (*TransactionCode, error)) (*TransactionCode, error) {
	for collisions := 0; ; collisions++ {
		code, err := i.generator.Generate(collisions)
		if err != nil {
			return nil, err
		}

		tc, err := build(code)
		if err != nil {
			return nil, err
		}

		err = i.txManager.InTransaction(func(ctx shared.TransactionContext) error {
			return i.repo.Reserve(ctx, tc)
		})
		if err == nil {
			return tc, nil
		}
		if !errors.Is(err, ErrCodeTaken) {
			return nil, err
		}
		// 碰撞：下一輪可能升級長度
	}
}
