package main

import (
	"fmt"
	"os"

	"github.com/nurpe/dockops-activity/internal/config"
	"github.com/nurpe/dockops-activity/internal/excel"
	httphandler "github.com/nurpe/dockops-activity/internal/http"
	"github.com/nurpe/dockops-activity/internal/logger"
	"github.com/nurpe/dockops-activity/internal/pdf"
	"github.com/nurpe/dockops-activity/internal/service"
	"github.com/nurpe/dockops-activity/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	dockStore := store.New()
	if cfg.Dock.SeedDemo {
		dockStore.SeedDemoData()
		log.Info().Msg("seeded demo dock activity")
	}

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	dockService := service.NewDockService(dockStore, excelGenerator, pdfGenerator, cfg)

	handler := httphandler.NewHandler(dockService, log)
	router := httphandler.NewRouter(handler, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting dock activity service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
