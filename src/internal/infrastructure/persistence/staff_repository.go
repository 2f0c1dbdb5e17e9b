package persistence

import (
	"errors"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// Staff Mapper
// ===========================

// staffToGORM 將 Staff 聚合轉換為 GORM 模型
func staffToGORM(s *staff.Staff) *StaffModel {
	return &StaffModel{
		ActorID:   s.ActorID().Int64(),
		FullName:  s.FullName(),
		VenueID:   s.VenueID().String(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

// staffToDomain 將 GORM 模型重建為 Staff 聚合
func staffToDomain(m *StaffModel) (*staff.Staff, error) {
	actorID, err := shared.NewActorID(m.ActorID)
	if err != nil {
		return nil, err
	}
	venueID, err := venue.NewVenueID(m.VenueID)
	if err != nil {
		return nil, err
	}
	return staff.ReconstructStaff(actorID, m.FullName, venueID, m.CreatedAt, m.UpdatedAt)
}

// ===========================
// GORM StaffRepository 實作
// ===========================

// GORMStaffRepository 收銀員名冊儲存庫 GORM 實作
type GORMStaffRepository struct {
	db *gorm.DB
}

// NewGORMStaffRepository 創建收銀員儲存庫
func NewGORMStaffRepository(db *gorm.DB) staff.StaffRepository {
	return &GORMStaffRepository{db: db}
}

// Upsert 新增或覆蓋收銀員（last-wins）
//
// 主鍵衝突時覆蓋姓名與網點指派，created_at 保留首次寫入的值。
func (r *GORMStaffRepository) Upsert(ctx shared.TransactionContext, s *staff.Staff) error {
	db := getDB(ctx, r.db)

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "venue_id", "updated_at"}),
	}).Create(staffToGORM(s)).Error
}

// FindByActorID 按平台標識查找收銀員
func (r *GORMStaffRepository) FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) (*staff.Staff, error) {
	db := getDB(ctx, r.db)

	var model StaffModel
	err := db.Where("actor_id = ?", actorID.Int64()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staff.ErrStaffNotFound.WithContext("actor_id", actorID.String())
		}
		return nil, err
	}
	return staffToDomain(&model)
}

// ListByVenue 列出指派到某網點的收銀員
func (r *GORMStaffRepository) ListByVenue(ctx shared.TransactionContext, venueID venue.VenueID) ([]*staff.Staff, error) {
	db := getDB(ctx, r.db)

	var models []StaffModel
	err := db.Where("venue_id = ?", venueID.String()).
		Order("actor_id asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return staffModelsToDomain(models)
}

// ListAll 列出全部收銀員
func (r *GORMStaffRepository) ListAll(ctx shared.TransactionContext) ([]*staff.Staff, error) {
	db := getDB(ctx, r.db)

	var models []StaffModel
	err := db.Order("actor_id asc").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return staffModelsToDomain(models)
}

// Remove 從名冊移除收銀員（冪等）
func (r *GORMStaffRepository) Remove(ctx shared.TransactionContext, actorID shared.ActorID) (bool, error) {
	db := getDB(ctx, r.db)

	result := db.Where("actor_id = ?", actorID.Int64()).Delete(&StaffModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// staffModelsToDomain 批次重建收銀員聚合
func staffModelsToDomain(models []StaffModel) ([]*staff.Staff, error) {
	list := make([]*staff.Staff, 0, len(models))
	for i := range models {
		s, err := staffToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}
