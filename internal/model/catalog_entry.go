package model

import (
	"encoding/json"
	"time"
)

// CatalogEntry is a previously resolved barcode cached locally. UsageCount
// feeds the popularity ranking on the storefront side.
type CatalogEntry struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	ScanCode    string    `gorm:"size:32;not null;uniqueIndex"`
	Name        string    `gorm:"size:200;not null"`
	Brand       string    `gorm:"size:120"`
	Colorway    string    `gorm:"size:120"`
	StyleID     string    `gorm:"size:64"`
	Size        string    `gorm:"size:32"`
	RetailPrice int64     `gorm:"not null;default:0"`
	ImagesJSON  string    `gorm:"type:text"`
	ProductID   string    `gorm:"size:64"`
	VariantID   string    `gorm:"size:64"`
	UsageCount  uint      `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (CatalogEntry) TableName() string {
	return "catalog_entries"
}

func (e *CatalogEntry) Images() []string {
	if e.ImagesJSON == "" {
		return nil
	}
	var images []string
	if err := json.Unmarshal([]byte(e.ImagesJSON), &images); err != nil {
		return nil
	}
	return images
}

func (e *CatalogEntry) SetImages(images []string) {
	if len(images) == 0 {
		e.ImagesJSON = ""
		return
	}
	b, err := json.Marshal(images)
	if err != nil {
		return
	}
	e.ImagesJSON = string(b)
}
