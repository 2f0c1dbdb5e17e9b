package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ===========================
// CLI Root
// ===========================

var configPath string

// rootCmd 命令行入口
var rootCmd = &cobra.Command{
	Use:   "bonuslinkbot",
	Short: "Бонусная программа кофеен: одноразовые коды, баллы, кассиры",
	Long: "BonusLinkBot — ядро бонусной программы сети кофеен.\n" +
		"Клиенты получают и тратят баллы через одноразовые коды,\n" +
		"кассиры подтверждают операции кнопками, администратор ведёт штат.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 運行 CLI
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"путь к файлу конфигурации TOML (по умолчанию используются встроенные значения)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
