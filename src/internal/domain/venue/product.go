package venue

import "strings"

// ===========================
// Product Catalog
// ===========================

// Product 可兌換的商品
//
// 成本以積分計價（正整數）。商品目錄與網點目錄一樣由配置注入，
// 運行期唯讀。
type Product struct {
	id   string
	name string
	cost int
}

// NewProduct 創建商品（Checked Constructor）
//
// 驗證規則：
// 1. id / name 不能為空
// 2. cost 必須為正數
func NewProduct(id, name string, cost int) (Product, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" {
		return Product{}, ErrInvalidProduct.WithContext("id", id, "name", name)
	}
	if cost <= 0 {
		return Product{}, ErrInvalidProduct.WithContext("id", id, "cost", cost)
	}
	return Product{id: id, name: name, cost: cost}, nil
}

// ID 返回商品代號（回呼負載中引用）
func (p Product) ID() string {
	return p.id
}

// Name 返回商品名稱（用戶可見）
func (p Product) Name() string {
	return p.name
}

// Cost 返回兌換所需積分
func (p Product) Cost() int {
	return p.cost
}

// ProductCatalog 商品目錄（唯讀）
type ProductCatalog struct {
	products []Product
	byID     map[string]int
}

// NewProductCatalog 建構商品目錄
func NewProductCatalog(products []Product) (*ProductCatalog, error) {
	if len(products) == 0 {
		return nil, ErrEmptyProductList
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, exists := byID[p.ID()]; exists {
			return nil, ErrInvalidProduct.WithContext("id", p.ID(), "reason", "duplicate")
		}
		byID[p.ID()] = i
	}

	copied := make([]Product, len(products))
	copy(copied, products)

	return &ProductCatalog{products: copied, byID: byID}, nil
}

// FindByID 按代號查找商品
func (c *ProductCatalog) FindByID(id string) (Product, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound.WithContext("product_id", id)
	}
	return c.products[idx], nil
}

// All 返回全部商品（配置順序）
func (c *ProductCatalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}
