package staff

import (
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
)

// ===========================
// Staff Repository Interface
// ===========================

// StaffRepository 收銀員名冊儲存庫介面
//
// 名冊由管理員維護，讀路徑（角色解析）遠多於寫路徑。
type StaffRepository interface {
	// Upsert 新增或覆蓋收銀員（last-wins）
	//
	// 同一 ActorID 已存在時覆蓋姓名與網點指派，不報錯。
	Upsert(ctx shared.TransactionContext, s *Staff) error

	// FindByActorID 按平台標識查找收銀員
	//
	// 返回：
	// - 找不到時返回 ErrStaffNotFound（角色解析據此 fallthrough 到客戶角色）
	FindByActorID(ctx shared.TransactionContext, actorID shared.ActorID) (*Staff, error)

	// ListByVenue 列出指派到某網點的收銀員（交易通知的收件人集合）
	ListByVenue(ctx shared.TransactionContext, venueID venue.VenueID) ([]*Staff, error)

	// ListAll 列出全部收銀員（管理員名冊檢視）
	ListAll(ctx shared.TransactionContext) ([]*Staff, error)

	// Remove 從名冊移除收銀員
	//
	// 返回：
	// - removed=false: 該 ActorID 不在名冊中（冪等移除，不報錯）
	Remove(ctx shared.TransactionContext, actorID shared.ActorID) (removed bool, err error)
}
