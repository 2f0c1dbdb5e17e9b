package persistence

import (
	"errors"
	"time"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// Client Mapper
// ===========================

// clientToGORM 將 Client 聚合轉換為 GORM 模型
func clientToGORM(c *client.Client) *ClientModel {
	return &ClientModel{
		ActorID:        c.ActorID().Int64(),
		Username:       c.Username(),
		FullName:       c.FullName(),
		Points:         c.Balance().Value(),
		TotalPurchases: c.TotalPurchases(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

// clientToDomain 將 GORM 模型重建為 Client 聚合
func clientToDomain(m *ClientModel) (*client.Client, error) {
	actorID, err := shared.NewActorID(m.ActorID)
	if err != nil {
		return nil, err
	}
	return client.ReconstructClient(
		actorID,
		m.Username,
		m.FullName,
		m.Points,
		m.TotalPurchases,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ===========================
// GORM ClientRepository 實作
// ===========================

// GORMClientRepository 客戶儲存庫 GORM 實作
//
// 結算路徑全部走原子 UPDATE：
// - Credit 是無條件累加
// - DebitIfSufficient 的 WHERE 子句同時檢查餘額，
//   勝負由受影響行數裁決，不做先讀後寫
type GORMClientRepository struct {
	db *gorm.DB
}

// NewGORMClientRepository 創建客戶儲存庫
func NewGORMClientRepository(db *gorm.DB) client.ClientRepository {
	return &GORMClientRepository{db: db}
}

// SaveIfAbsent 冪等註冊：主鍵衝突時什麼都不做
func (r *GORMClientRepository) SaveIfAbsent(ctx shared.TransactionContext, c *client.Client) (bool, error) {
	db := getDB(ctx, r.db)

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(clientToGORM(c))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByActorID 按平台標識查找客戶
func (r *GORMClientRepository) FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) (*client.Client, error) {
	db := getDB(ctx, r.db)

	var model ClientModel
	err := db.Where("actor_id = ?", actorID.Int64()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrClientNotFound.WithContext("actor_id", actorID.String())
		}
		return nil, err
	}
	return clientToDomain(&model)
}

// Credit 原子入帳：餘額累加並遞增購買次數
func (r *GORMClientRepository) Credit(ctx shared.TransactionContext, actorID shared.ActorID, amount client.PointsAmount) error {
	db := getDB(ctx, r.db)

	result := db.Model(&ClientModel{}).
		Where("actor_id = ?", actorID.Int64()).
		Updates(map[string]any{
			"points":          gorm.Expr("points + ?", amount.Value()),
			"total_purchases": gorm.Expr("total_purchases + 1"),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return client.ErrClientNotFound.WithContext("actor_id", actorID.String())
	}
	return nil
}

// DebitIfSufficient 條件原子扣帳：餘額不足時受影響行數為 0
func (r *GORMClientRepository) DebitIfSufficient(ctx shared.TransactionContext, actorID shared.ActorID, amount client.PointsAmount) (bool, error) {
	db := getDB(ctx, r.db)

	result := db.Model(&ClientModel{}).
		Where("actor_id = ? AND points >= ?", actorID.Int64(), amount.Value()).
		Updates(map[string]any{
			"points":     gorm.Expr("points - ?", amount.Value()),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
