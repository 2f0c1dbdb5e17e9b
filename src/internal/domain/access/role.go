package access

import (
	"errors"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/staff"
)

// ===========================
// Role Resolution
// ===========================

// Role 參與者角色
type Role string

const (
	// RoleAdmin 管理員（配置注入的固定 ActorID）
	RoleAdmin Role = "admin"
	// RoleStaff 收銀員（名冊中有記錄）
	RoleStaff Role = "staff"
	// RoleClient 客戶（其餘所有人）
	RoleClient Role = "client"
)

// Resolution 角色解析結果
//
// 角色為 RoleStaff 時攜帶名冊記錄（路由需要網點指派）。
type Resolution struct {
	Role  Role
	Staff *staff.Staff // 僅 RoleStaff 時非 nil
}

// Resolver 角色解析器
//
// 解析順序（優先級遞減）：
// 1. ActorID 等於配置的管理員 ID → RoleAdmin
// 2. ActorID 在收銀員名冊中 → RoleStaff
// 3. 其餘 → RoleClient（客戶不需要預先存在，首次互動即註冊）
//
// 管理員優先於收銀員：同一人同時是兩者時走管理員入口。
type Resolver struct {
	adminID   shared.ActorID
	staffRepo staff.StaffRepository
}

// NewResolver 創建角色解析器
func NewResolver(adminID shared.ActorID, staffRepo staff.StaffRepository) *Resolver {
	return &Resolver{adminID: adminID, staffRepo: staffRepo}
}

// Resolve 解析參與者角色
//
// 名冊查詢失敗（非 NotFound）時返回錯誤，調用方不得
// 猜測角色 —— 把收銀員誤判成客戶會把交易路由到錯誤入口。
func (r *Resolver) Resolve(ctx shared.TransactionContext, actorID shared.ActorID) (Resolution, error) {
	if actorID.Equals(r.adminID) {
		return Resolution{Role: RoleAdmin}, nil
	}

	s, err := r.staffRepo.FindByActorID(ctx, actorID)
	if err == nil {
		return Resolution{Role: RoleStaff, Staff: s}, nil
	}
	if errors.Is(err, staff.ErrStaffNotFound) {
		return Resolution{Role: RoleClient}, nil
	}
	return Resolution{}, err
}
