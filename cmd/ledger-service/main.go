package main

import (
	"fmt"
	"os"

	"github.com/hirewire/ledger-service/internal/auth"
	"github.com/hirewire/ledger-service/internal/config"
	"github.com/hirewire/ledger-service/internal/db"
	"github.com/hirewire/ledger-service/internal/excel"
	httphandler "github.com/hirewire/ledger-service/internal/http"
	"github.com/hirewire/ledger-service/internal/http/middleware"
	"github.com/hirewire/ledger-service/internal/logger"
	"github.com/hirewire/ledger-service/internal/pdf"
	"github.com/hirewire/ledger-service/internal/repository"
	"github.com/hirewire/ledger-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if cfg.Ledger.SeedDemo {
		if err := db.SeedDemo(database); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
		log.Info().Msg("demo data seeded")
	}

	ledgerRepo := repository.NewLedgerRepository(database)
	reportRepo := repository.NewReportRepository(database)

	ledgerService := service.NewLedgerService(ledgerRepo)
	reportService := service.NewReportService(reportRepo, excel.NewGenerator(), pdf.NewGenerator())

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(ledgerService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser, ledgerRepo)
	router := httphandler.NewRouter(cfg, log, handler, authMiddleware)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting ledger service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
