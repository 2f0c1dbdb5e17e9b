package venue

import "strings"

// ===========================
// Venue Value Objects
// ===========================

// VenueID 網點標識值對象
//
// 網點目錄由配置注入，ID 是配置中宣告的穩定短代號
// （例如 "center", "park"），回呼負載與資料庫都以此引用網點。
type VenueID struct {
	value string
}

// NewVenueID 創建網點 ID（Checked Constructor）
func NewVenueID(value string) (VenueID, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return VenueID{}, ErrInvalidVenueID
	}
	return VenueID{value: v}, nil
}

// String 返回底層代號
func (v VenueID) String() string {
	return v.value
}

// Equals 比較兩個 VenueID 是否相等
func (v VenueID) Equals(other VenueID) bool {
	return v.value == other.value
}

// IsZero 判斷是否為零值（未初始化）
func (v VenueID) IsZero() bool {
	return v.value == ""
}

// Venue 網點（咖啡店）
//
// 網點不是聚合根：它由配置定義、進程啟動時載入、運行期唯讀。
// 資料庫只保存對網點的引用（VenueID），不保存網點本身。
type Venue struct {
	id      VenueID
	name    string
	address string
}

// NewVenue 創建網點
func NewVenue(id VenueID, name, address string) (Venue, error) {
	if id.IsZero() {
		return Venue{}, ErrInvalidVenueID
	}
	if strings.TrimSpace(name) == "" {
		return Venue{}, ErrInvalidVenueName.WithContext("venue_id", id.String())
	}
	return Venue{id: id, name: name, address: address}, nil
}

// ID 返回網點 ID
func (v Venue) ID() VenueID {
	return v.id
}

// Name 返回網點名稱（用戶可見）
func (v Venue) Name() string {
	return v.name
}

// Address 返回網點地址
func (v Venue) Address() string {
	return v.address
}
