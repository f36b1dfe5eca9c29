package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/akhaled-io/ftaledger/internal/config"
	"github.com/akhaled-io/ftaledger/internal/database"
	"github.com/akhaled-io/ftaledger/internal/extraction"
	"github.com/akhaled-io/ftaledger/internal/extraction/gemini"
	ftaHttp "github.com/akhaled-io/ftaledger/internal/http"
	ledgerHandler "github.com/akhaled-io/ftaledger/internal/http/ledger"
	reportHandler "github.com/akhaled-io/ftaledger/internal/http/report"
	sessionHandler "github.com/akhaled-io/ftaledger/internal/http/session"
	tbHandler "github.com/akhaled-io/ftaledger/internal/http/trialbalance"
	"github.com/akhaled-io/ftaledger/internal/importer"
	"github.com/akhaled-io/ftaledger/internal/session"
	sessionStore "github.com/akhaled-io/ftaledger/internal/session/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		sessionService = session.NewService(sessionStore.New(db))
		importService  = importer.NewService()
	)

	// A missing Gemini key degrades the AI endpoints to 503 rather than
	// blocking the rest of the workflow.
	var (
		extractor   extraction.DocumentExtractor
		categorizer extraction.Categorizer
	)
	if ai, err := gemini.New(context.Background(), cfg.Gemini.Model); err != nil {
		slog.Warn("gemini client unavailable", "error", err)
	} else {
		extractor = ai
		categorizer = ai
	}

	var (
		sessionH = sessionHandler.NewHandler(sessionService, extractor)
		ledgerH  = ledgerHandler.NewHandler(sessionService, importService, categorizer)
		tbH      = tbHandler.NewHandler(sessionService)
		reportH  = reportHandler.NewHandler(sessionService)
	)

	router := ftaHttp.New(sessionH, ledgerH, tbH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
