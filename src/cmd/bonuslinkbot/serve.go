package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	appadmin "github.com/Niko-MM/BonusLinkBot/src/internal/application/admin"
	appclient "github.com/Niko-MM/BonusLinkBot/src/internal/application/client"
	"github.com/Niko-MM/BonusLinkBot/src/internal/application/dialog"
	appearn "github.com/Niko-MM/BonusLinkBot/src/internal/application/earn"
	appspend "github.com/Niko-MM/BonusLinkBot/src/internal/application/spend"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/access"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/codes"
	"github.com/Niko-MM/BonusLinkBot/src/internal/infrastructure/gateway"
	"github.com/Niko-MM/BonusLinkBot/src/internal/infrastructure/notification"
	"github.com/Niko-MM/BonusLinkBot/src/internal/infrastructure/persistence"
	infrasession "github.com/Niko-MM/BonusLinkBot/src/internal/infrastructure/session"
	"github.com/spf13/cobra"
)

// ===========================
// Serve Command
// ===========================

// serveCmd 啟動入站閘道並服務對話流程
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить сервис бонусной программы",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// runServe 組裝全部依賴並運行到收到停機信號
func runServe() error {
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

	// 配置注入的唯讀目錄與政策（Validate 已跑過，這裡不會失敗）
	catalog, err := cfg.BuildVenueCatalog()
	if err != nil {
		return err
	}
	products, err := cfg.BuildProductCatalog()
	if err != nil {
		return err
	}
	policy, err := cfg.BuildAccrualPolicy()
	if err != nil {
		return err
	}
	adminID, err := cfg.ParseAdminActorID()
	if err != nil {
		return err
	}

	// 持久層
	txManager := persistence.NewGORMTransactionManager(db)
	clientRepo := persistence.NewGORMClientRepository(db)
	ledgerRepo := persistence.NewGORMLedgerRepository(db)
	staffRepo := persistence.NewGORMStaffRepository(db)
	codeRepo := persistence.NewGORMCodeRepository(db)

	// 領域服務
	issuer := codes.NewIssuer(codes.NewGenerator(), codeRepo, txManager)
	resolver := access.NewResolver(adminID, staffRepo)

	// 出站通知與對話狀態
	notifier := notification.NewLogNotifier(logger)
	sessions := infrasession.NewMemoryStore(cfg.SessionTTL())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go sessions.RunJanitor(ctx, cfg.SessionTTL()/2)

	// Use Cases
	dispatcher := dialog.NewDispatcher(dialog.DispatcherDeps{
		Resolver:  resolver,
		Sessions:  sessions,
		Notifier:  notifier,
		StaffRepo: staffRepo,
		Logger:    logger,

		Catalog:  catalog,
		Products: products,
		Policy:   policy,

		RegisterClient: appclient.NewRegisterClientUseCase(clientRepo, txManager),
		GetBalance:     appclient.NewGetBalanceUseCase(clientRepo),

		RequestEarn: appearn.NewRequestEarnCodeUseCase(issuer, clientRepo, staffRepo, catalog, policy, notifier, logger),
		ConfirmEarn: appearn.NewConfirmEarnUseCase(codeRepo, clientRepo, ledgerRepo, txManager, policy, notifier, logger),
		RejectEarn:  appearn.NewRejectEarnUseCase(codeRepo, txManager, notifier, logger),

		RequestSpend: appspend.NewRequestSpendCodeUseCase(issuer, clientRepo, staffRepo, catalog, products, notifier, logger),
		ConfirmSpend: appspend.NewConfirmSpendUseCase(codeRepo, clientRepo, ledgerRepo, txManager, notifier, logger),
		RejectSpend:  appspend.NewRejectSpendUseCase(codeRepo, txManager, notifier, logger),

		AddStaff:    appadmin.NewAddStaffUseCase(staffRepo, catalog, txManager),
		RemoveStaff: appadmin.NewRemoveStaffUseCase(staffRepo, txManager),
		ListStaff:   appadmin.NewListStaffUseCase(staffRepo, catalog),
	})

	server := gateway.NewServer(cfg.ListenAddr, dispatcher, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("service started",
		"listen_addr", cfg.ListenAddr,
		"database", cfg.Database.Path,
		"venues", catalog.Len(),
		"session_ttl", cfg.SessionTTL().String(),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}

	logger.Info("service stopped")
	return nil
}
