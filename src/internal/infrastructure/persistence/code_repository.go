package persistence

import (
	"errors"
	"time"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
	"gorm.io/gorm"
)

// ===========================
// TransactionCode Mapper
// ===========================

// codeToGORM 將交易碼聚合轉換為 GORM 模型
func codeToGORM(tc *codes.TransactionCode) *TransactionCodeModel {
	return &TransactionCodeModel{
		Code:      tc.Code().String(),
		Kind:      string(tc.Kind()),
		ActorID:   tc.ActorID().Int64(),
		Amount:    tc.Amount(),
		VenueID:   tc.VenueID().String(),
		ProductID: tc.ProductID(),
		Used:      tc.IsUsed(),
		CreatedAt: tc.CreatedAt(),
		UsedAt:    tc.UsedAt(),
	}
}

// codeToDomain 將 GORM 模型重建為交易碼聚合
//
// spend 碼的 venue_id 欄位為空字串，對應零值 VenueID。
func codeToDomain(m *TransactionCodeModel) (*codes.TransactionCode, error) {
	code, err := codes.NewCode(m.Code)
	if err != nil {
		return nil, err
	}
	actorID, err := shared.NewActorID(m.ActorID)
	if err != nil {
		return nil, err
	}

	var venueID venue.VenueID
	if m.VenueID != "" {
		venueID, err = venue.NewVenueID(m.VenueID)
		if err != nil {
			return nil, err
		}
	}

	return codes.ReconstructTransactionCode(
		code,
		codes.CodeKind(m.Kind),
		actorID,
		m.Amount,
		venueID,
		m.ProductID,
		m.Used,
		m.CreatedAt,
		m.UsedAt,
	)
}

// ===========================
// GORM CodeRepository 實作
// ===========================

// GORMCodeRepository 交易碼儲存庫 GORM 實作
//
// 一次性語義的兩個支點都在這裡：
// - Reserve 依賴 code 主鍵的唯一約束（insert-if-not-exists）
// - MarkUsedIfUnused 依賴條件 UPDATE 的受影響行數
type GORMCodeRepository struct {
	db *gorm.DB
}

// NewGORMCodeRepository 創建交易碼儲存庫
func NewGORMCodeRepository(db *gorm.DB) codes.CodeRepository {
	return &GORMCodeRepository{db: db}
}

// Reserve 預留碼：碼已存在時返回 ErrCodeTaken
func (r *GORMCodeRepository) Reserve(ctx shared.TransactionContext, tc *codes.TransactionCode) error {
	db := getDB(ctx, r.db)

	err := db.Create(codeToGORM(tc)).Error
	if err != nil {
		if isUniqueViolation(err) {
			return codes.ErrCodeTaken.WithContext("code", tc.Code().String())
		}
		return err
	}
	return nil
}

// FindByCode 按碼查找交易
func (r *GORMCodeRepository) FindByCode(ctx shared.TransactionContext, code codes.Code) (*codes.TransactionCode, error) {
	db := getDB(ctx, r.db)

	var model TransactionCodeModel
	err := db.Where("code = ?", code.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, codes.ErrCodeNotFound.WithContext("code", code.String())
		}
		return nil, err
	}
	return codeToDomain(&model)
}

// MarkUsedIfUnused 條件核銷：勝負由受影響行數裁決
func (r *GORMCodeRepository) MarkUsedIfUnused(ctx shared.TransactionContext, code codes.Code) (bool, error) {
	db := getDB(ctx, r.db)

	now := time.Now()
	result := db.Model(&TransactionCodeModel{}).
		Where("code = ? AND used = ?", code.String(), false).
		Updates(map[string]any{
			"used":    true,
			"used_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
