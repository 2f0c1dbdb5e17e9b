package venue

// ===========================
// Venue Catalog
// ===========================

// Catalog 網點目錄（唯讀）
//
// 生命週期：啟動時從配置建構一次，之後只讀。
// 因此不需要鎖；所有查找都是純函數。
type Catalog struct {
	venues []Venue
	byID   map[string]int // VenueID -> index into venues
}

// NewCatalog 建構網點目錄（Checked Constructor）
//
// 驗證規則：
// 1. 目錄不能為空（客戶必須能選擇網點）
// 2. VenueID 不能重複
func NewCatalog(venues []Venue) (*Catalog, error) {
	if len(venues) == 0 {
		return nil, ErrEmptyCatalog
	}

	byID := make(map[string]int, len(venues))
	for i, v := range venues {
		key := v.ID().String()
		if _, exists := byID[key]; exists {
			return nil, ErrDuplicateVenue.WithContext("venue_id", key)
		}
		byID[key] = i
	}

	// 防禦性複製：調用方之後改動切片不影響目錄
	copied := make([]Venue, len(venues))
	copy(copied, venues)

	return &Catalog{venues: copied, byID: byID}, nil
}

// FindByID 按 ID 查找網點
func (c *Catalog) FindByID(id VenueID) (Venue, error) {
	idx, ok := c.byID[id.String()]
	if !ok {
		return Venue{}, ErrVenueNotFound.WithContext("venue_id", id.String())
	}
	return c.venues[idx], nil
}

// FindByName 按名稱查找網點（管理員對話中以名稱指定網點）
func (c *Catalog) FindByName(name string) (Venue, error) {
	for _, v := range c.venues {
		if v.Name() == name {
			return v, nil
		}
	}
	return Venue{}, ErrVenueNotFound.WithContext("name", name)
}

// All 返回全部網點（宣告順序，即配置順序）
func (c *Catalog) All() []Venue {
	out := make([]Venue, len(c.venues))
	copy(out, c.venues)
	return out
}

// Len 返回網點數量
func (c *Catalog) Len() int {
	return len(c.venues)
}
