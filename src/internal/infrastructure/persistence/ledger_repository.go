package persistence

import (
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// Ledger Mapper
// ===========================

// ledgerEntryToGORM 將帳本記錄轉換為 GORM 模型
func ledgerEntryToGORM(e *client.LedgerEntry) *LedgerEntryModel {
	return &LedgerEntryModel{
		ID:         e.ID().String(),
		ActorID:    e.ActorID().Int64(),
		Kind:       string(e.Kind()),
		Amount:     e.Amount().Value(),
		Code:       e.Code(),
		RecordedAt: e.RecordedAt(),
	}
}

// ledgerEntryToDomain 將 GORM 模型重建為帳本記錄
func ledgerEntryToDomain(m *LedgerEntryModel) (*client.LedgerEntry, error) {
	id, err := client.LedgerEntryIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	actorID, err := shared.NewActorID(m.ActorID)
	if err != nil {
		return nil, err
	}
	amount, err := client.NewPointsAmount(m.Amount)
	if err != nil {
		return nil, err
	}
	return client.ReconstructLedgerEntry(
		id,
		actorID,
		client.LedgerEntryKind(m.Kind),
		amount,
		m.Code,
		m.RecordedAt,
	)
}

// ===========================
// GORM LedgerRepository 實作
// ===========================

// GORMLedgerRepository 積分帳本儲存庫 GORM 實作（append-only）
type GORMLedgerRepository struct {
	db *gorm.DB
}

// NewGORMLedgerRepository 創建帳本儲存庫
func NewGORMLedgerRepository(db *gorm.DB) client.LedgerRepository {
	return &GORMLedgerRepository{db: db}
}

// Append 追加一筆帳本記錄（必須與餘額變動共用事務）
func (r *GORMLedgerRepository) Append(ctx shared.TransactionContext, entry *client.LedgerEntry) error {
	db := getDB(ctx, r.db)
	return db.Create(ledgerEntryToGORM(entry)).Error
}

// FindByActorID 按客戶查詢帳本記錄（依記錄時間升冪）
func (r *GORMLedgerRepository) FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) ([]*client.LedgerEntry, error) {
	db := getDB(ctx, r.db)

	var models []LedgerEntryModel
	err := db.Where("actor_id = ?", actorID.Int64()).
		Order("recorded_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*client.LedgerEntry, 0, len(models))
	for i := range models {
		entry, err := ledgerEntryToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
