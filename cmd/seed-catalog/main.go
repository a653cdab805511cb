package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/securedtampa/intake-backend/internal/config"
	"github.com/securedtampa/intake-backend/internal/db"
	"github.com/securedtampa/intake-backend/internal/model"
)

type seedEntry struct {
	ScanCode    string
	Name        string
	Brand       string
	Colorway    string
	StyleID     string
	Size        string
	RetailPrice int64
	Image       string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed-catalog failed: %v", err)
	}
}

func run() (err error) {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.CatalogEntry{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}

	entries := buildSeedEntries()

	canSeed, err := shouldSeed(ctx, sqlDB)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("catalog entries already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE catalog_entries`); err != nil {
		return fmt.Errorf("truncate catalog_entries: %w", err)
	}

	for _, e := range entries {
		if err := insertEntry(ctx, tx, e); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("seeded %d catalog entries", len(entries))
	return nil
}

func buildSeedEntries() []seedEntry {
	return []seedEntry{
		{ScanCode: "196608856211", Name: "Jordan 1 Retro High OG Chicago Lost and Found", Brand: "Jordan", Colorway: "Varsity Red/Black-Sail-Muslin", StyleID: "DZ5485-612", Size: "10", RetailPrice: 180},
		{ScanCode: "196608856228", Name: "Jordan 1 Retro High OG Chicago Lost and Found", Brand: "Jordan", Colorway: "Varsity Red/Black-Sail-Muslin", StyleID: "DZ5485-612", Size: "10.5", RetailPrice: 180},
		{ScanCode: "195866846815", Name: "Nike Dunk Low Retro White Black Panda", Brand: "Nike", Colorway: "White/Black", StyleID: "DD1391-100", Size: "9", RetailPrice: 110},
		{ScanCode: "195866846822", Name: "Nike Dunk Low Retro White Black Panda", Brand: "Nike", Colorway: "White/Black", StyleID: "DD1391-100", Size: "9.5", RetailPrice: 110},
		{ScanCode: "194954644547", Name: "adidas Yeezy Boost 350 V2 Bone", Brand: "adidas", Colorway: "Bone/Bone/Bone", StyleID: "HQ6316", Size: "10", RetailPrice: 230},
		{ScanCode: "196154447829", Name: "Nike Air Force 1 Low '07 White", Brand: "Nike", Colorway: "White/White", StyleID: "CW2288-111", Size: "11", RetailPrice: 110},
		{ScanCode: "197595244961", Name: "New Balance 550 White Grey", Brand: "New Balance", Colorway: "White/Grey", StyleID: "BB550PB1", Size: "10.5", RetailPrice: 120},
	}
}

func insertEntry(ctx context.Context, tx *sql.Tx, e seedEntry) error {
	imagesJSON := ""
	if e.Image != "" {
		imagesJSON = fmt.Sprintf(`["%s"]`, e.Image)
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_entries (scan_code, name, brand, colorway, style_id, size, retail_price, images_json, usage_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		e.ScanCode, e.Name, e.Brand, e.Colorway, e.StyleID, e.Size, e.RetailPrice, imagesJSON,
	)
	if err != nil {
		return fmt.Errorf("insert entry %q: %w", e.ScanCode, err)
	}
	return nil
}

func shouldSeed(ctx context.Context, db *sql.DB) (bool, error) {
	var cnt int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_entries`).Scan(&cnt); err != nil {
		return false, fmt.Errorf("count catalog_entries: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	force := os.Getenv("FORCE_SEED")
	return strings.EqualFold(force, "true"), nil
}
