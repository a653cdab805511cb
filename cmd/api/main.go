package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/securedtampa/intake-backend/internal/config"
	"github.com/securedtampa/intake-backend/internal/db"
	"github.com/securedtampa/intake-backend/internal/imagestore"
	"github.com/securedtampa/intake-backend/internal/inventory"
	"github.com/securedtampa/intake-backend/internal/marketplace"
	"github.com/securedtampa/intake-backend/internal/model"
	"github.com/securedtampa/intake-backend/internal/server"
	"github.com/securedtampa/intake-backend/internal/upc"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()
	tokens := marketplace.TokenSource(ctx, cfg.StockXTokenURL, cfg.StockXClientID, cfg.StockXClientSecret, cfg.StockXRefreshToken)
	market := marketplace.NewStockXClient(cfg.StockXBaseURL, cfg.StockXAPIKey, tokens, nil)
	upcClient := upc.NewHTTPClient(cfg.UPCBaseURL, nil)
	committer := inventory.NewHTTPCommitter(cfg.InventoryBaseURL, cfg.InventoryAPIKey, nil)

	var uploader imagestore.Uploader
	if cfg.StorageBucket != "" {
		gcs, err := imagestore.NewGCSUploader(ctx, cfg.StorageBucket)
		if err != nil {
			log.Printf("image storage init error: %v (uploads disabled)", err)
		} else {
			uploader = gcs
		}
	}

	srv := server.New(nil, market, upcClient, committer, uploader, gitSHA, buildTime)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(&model.CatalogEntry{}, &model.ScanSession{}, &model.HistoryEntry{}); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
