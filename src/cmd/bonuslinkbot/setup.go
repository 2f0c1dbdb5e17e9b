package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Niko-MM/BonusLinkBot/src/internal/infrastructure/config"
	"github.com/Niko-MM/BonusLinkBot/src/internal/infrastructure/persistence"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ===========================
// Bootstrap Helpers
// ===========================

// loadConfig 載入配置：有 --config 時讀檔，否則用內建預設值
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLogger 按配置建構結構化日誌
//
// 指定日誌檔時寫 JSON 並按大小輪轉；未指定時輸出到 stderr。
func buildLogger(cfg config.LoggingConfig) *slog.Logger {
	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// openDatabase 打開 SQLite 資料庫
//
// GORM 自己的 SQL 日誌關閉：查詢層面的可觀測性走 slog，
// 避免兩套日誌格式混在同一個輸出裡。
func openDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return db, nil
}

// migrateDatabase 建表 / 補欄位
func migrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(persistence.AllModels()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
