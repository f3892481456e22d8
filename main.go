package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/client"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/config"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/scraper/auction"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/services"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/storage"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("=== Property Valuation pipeline starting ===")
	logger.Info("Config — input: %s | concurrency: %d | rate: %dms | retries: %d",
		cfg.SubmissionsCSVPath, cfg.MaxConcurrency, cfg.RateLimitMs, cfg.MaxRetries)

	reader, err := storage.OpenCSVReader(cfg.SubmissionsCSVPath)
	if err != nil {
		logger.Error("Failed to open submissions: %v", err)
		os.Exit(1)
	}
	rawSubmissions, err := reader.ReadAll()
	_ = reader.Close()
	if err != nil {
		logger.Error("Failed to read submissions: %v", err)
		os.Exit(1)
	}
	logger.Info("Read %d raw submissions", len(rawSubmissions))

	cleaner := services.NewSubmissionCleaner(logger)
	requests := cleaner.Clean(rawSubmissions)
	if len(requests) == 0 {
		logger.Error("All submissions were dropped during normalization. Exiting.")
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.RequestsCSVPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	if err := csvWriter.Write(requests); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Valuation requests saved to %s", cfg.RequestsCSVPath)
	}

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), cfg.MaxRetries)
	if err != nil {
		logger.Warn("PostgreSQL unavailable, continuing without it: %v", err)
		logger.Warn("Start it with: docker compose up -d")
	} else {
		defer pgWriter.Close()
		if err := pgWriter.Write(requests); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Valuation requests stored in PostgreSQL (table: valuation_requests)")
		}
	}

	if cfg.AuctionURL != "" {
		scrapeAuctions(ctx, cfg, logger, pgWriter)
	}

	if cfg.ValuationAPIURL != "" {
		valuer := client.NewValuer(client.Options{
			Endpoint:       cfg.ValuationAPIURL,
			Timeout:        cfg.ValuationAPITimeout,
			MaxConcurrency: cfg.MaxConcurrency,
			RateLimitMs:    cfg.RateLimitMs,
			MaxRetries:     cfg.MaxRetries,
		}, logger)
		valuations, errs := valuer.SubmitAll(ctx, requests)
		logger.Info("Valuation API — %d valued, %d failed", len(valuations), len(errs))
	}

	reportSource := requests
	if pgWriter != nil {
		if stored, err := pgWriter.FetchAll(); err != nil {
			logger.Error("Failed to fetch requests from DB for insights: %v", err)
		} else if len(stored) > 0 {
			reportSource = stored
		}
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(reportSource)
	insightSvc.Print(report)

	fmt.Printf("  Done. Requests CSV → %s\n\n", cfg.RequestsCSVPath)
}

func scrapeAuctions(ctx context.Context, cfg *config.Config, logger *utils.Logger, pgWriter *storage.PostgresWriter) {
	raw, err := auction.New(cfg, logger).Scrape(ctx)
	if err != nil {
		logger.Error("Auction scrape failed: %v", err)
	}
	if len(raw) == 0 {
		logger.Warn("No auction listings were scraped")
		return
	}

	listings := services.NewAuctionCleaner(logger).Clean(raw)
	if pgWriter == nil {
		logAuctions(logger, listings)
		return
	}
	if err := pgWriter.WriteAuctions(listings); err != nil {
		logger.Error("PostgreSQL auction write failed: %v", err)
		return
	}
	logger.Info("Auction listings stored in PostgreSQL (table: auction_listings)")
}

func logAuctions(logger *utils.Logger, listings []*models.AuctionListing) {
	for _, l := range listings {
		logger.Info("[auction] %s — carpet %.0f / super built-up %.0f sq ft, reserve ₹%.0f",
			l.Title, l.CarpetArea, l.SuperBuiltUpArea, l.ReservePrice)
	}
}
