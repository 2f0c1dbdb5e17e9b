package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/venue"
	"github.com/shopspring/decimal"
)

// ===========================
// Configuration
// ===========================

// Config 進程配置
//
// 單一 TOML 檔描述整個部署：管理員、網點與商品目錄、
// 發放政策、資料庫與日誌。配置在啟動時載入並驗證一次，
// 之後唯讀；無效配置是啟動期錯誤，不是運行期錯誤。
type Config struct {
	AdminActorID int64  `toml:"admin_actor_id"`
	ListenAddr   string `toml:"listen_addr"`

	Database DatabaseConfig `toml:"database"`
	Session  SessionConfig  `toml:"session"`
	Logging  LoggingConfig  `toml:"logging"`
	Accrual  AccrualConfig  `toml:"accrual"`

	Venues   []VenueConfig   `toml:"venues"`
	Products []ProductConfig `toml:"products"`
}

// DatabaseConfig 資料庫配置
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// SessionConfig 對話狀態配置
type SessionConfig struct {
	TTLMinutes int `toml:"ttl_minutes"`
}

// LoggingConfig 日誌配置
//
// File 為空時輸出到 stderr；非空時寫檔並按大小輪轉。
type LoggingConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// AccrualConfig 發放政策配置
//
// 金額以十進制字串表示（"7.5" 之類的促銷費率不能走浮點）。
type AccrualConfig struct {
	Rate      string   `toml:"rate"`
	PerRubles string   `toml:"per_rubles"`
	Presets   []string `toml:"presets"`
}

// VenueConfig 網點配置項
type VenueConfig struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	Address string `toml:"address"`
}

// ProductConfig 商品配置項
type ProductConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Cost int    `toml:"cost"`
}

// Default 返回預設配置（三家網點、三種商品、7 分 / 100₽）
func Default() *Config {
	return &Config{
		AdminActorID: 1,
		ListenAddr:   ":8080",
		Database:     DatabaseConfig{Path: "bonuslink.db"},
		Session:      SessionConfig{TTLMinutes: 30},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Accrual: AccrualConfig{
			Rate:      "7",
			PerRubles: "100",
			Presets:   []string{"100", "200", "300"},
		},
		Venues: []VenueConfig{
			{ID: "center", Name: "Кофейня в центре", Address: "ул. Ленина, 1"},
			{ID: "park", Name: "Кофейня у парка", Address: "Парковая ул., 10"},
			{ID: "station", Name: "Кофейня у вокзала", Address: "Вокзальная пл., 2"},
		},
		Products: []ProductConfig{
			{ID: "cookie", Name: "Печенье", Cost: 30},
			{ID: "cappuccino", Name: "Капучино", Cost: 50},
			{ID: "croissant", Name: "Круассан", Cost: 70},
		},
	}
}

// Load 從 TOML 檔載入配置
//
// 檔案不存在或格式錯誤都是啟動期錯誤。載入後立即驗證。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 驗證配置的完整性
//
// 目錄與政策的領域驗證交給各自的 Checked Constructor，
// 這裡只把它們全部跑一遍，確保啟動失敗發生在監聽之前。
func (c *Config) Validate() error {
	if _, err := c.ParseAdminActorID(); err != nil {
		return fmt.Errorf("config: admin_actor_id: %w", err)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen_addr must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("config: database.path must not be empty")
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("config: session.ttl_minutes must be positive")
	}
	if _, err := c.BuildVenueCatalog(); err != nil {
		return fmt.Errorf("config: venues: %w", err)
	}
	if _, err := c.BuildProductCatalog(); err != nil {
		return fmt.Errorf("config: products: %w", err)
	}
	if _, err := c.BuildAccrualPolicy(); err != nil {
		return fmt.Errorf("config: accrual: %w", err)
	}
	return nil
}

// ParseAdminActorID 解析管理員的平台標識
func (c *Config) ParseAdminActorID() (shared.ActorID, error) {
	return shared.NewActorID(c.AdminActorID)
}

// SessionTTL 返回對話狀態的閒置過期時間
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// BuildVenueCatalog 從配置建構網點目錄
func (c *Config) BuildVenueCatalog() (*venue.Catalog, error) {
	venues := make([]venue.Venue, 0, len(c.Venues))
	for _, vc := range c.Venues {
		id, err := venue.NewVenueID(vc.ID)
		if err != nil {
			return nil, err
		}
		v, err := venue.NewVenue(id, vc.Name, vc.Address)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venue.NewCatalog(venues)
}

// BuildProductCatalog 從配置建構商品目錄
func (c *Config) BuildProductCatalog() (*venue.ProductCatalog, error) {
	products := make([]venue.Product, 0, len(c.Products))
	for _, pc := range c.Products {
		p, err := venue.NewProduct(pc.ID, pc.Name, pc.Cost)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return venue.NewProductCatalog(products)
}

// BuildAccrualPolicy 從配置建構發放政策
func (c *Config) BuildAccrualPolicy() (*codes.AccrualPolicy, error) {
	rate, err := decimal.NewFromString(c.Accrual.Rate)
	if err != nil {
		return nil, fmt.Errorf("accrual rate %q: %w", c.Accrual.Rate, err)
	}
	per, err := decimal.NewFromString(c.Accrual.PerRubles)
	if err != nil {
		return nil, fmt.Errorf("accrual per_rubles %q: %w", c.Accrual.PerRubles, err)
	}

	presets := make([]decimal.Decimal, 0, len(c.Accrual.Presets))
	for _, raw := range c.Accrual.Presets {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("accrual preset %q: %w", raw, err)
		}
		presets = append(presets, amount)
	}

	return codes.NewCustomAccrualPolicy(rate, per, presets)
}
