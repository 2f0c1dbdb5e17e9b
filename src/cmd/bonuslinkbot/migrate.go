package main

import (
	"github.com/spf13/cobra"
)

// ===========================
// Migrate Command
// ===========================

// migrateCmd 只建表不啟動服務（部署腳本用）
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Создать или обновить схему базы данных и выйти",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := buildLogger(cfg.Logging)

		db, err := openDatabase(cfg.Database.Path)
		if err != nil {
			return err
		}
		if err := migrateDatabase(db); err != nil {
			return err
		}

		logger.Info("database migrated", "database", cfg.Database.Path)
		return nil
	},
}
