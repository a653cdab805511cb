package model

import "time"

const (
	HistoryStatusSuccess = "success"
	HistoryStatusFailed  = "failed"
)

// HistoryEntry is an append-only record of one commit attempt. Never updated
// after creation.
type HistoryEntry struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	RegisterKey string    `gorm:"size:64;not null;index"`
	ScanCode    string    `gorm:"size:32;not null"`
	Name        string    `gorm:"size:200;not null"`
	Size        string    `gorm:"size:32"`
	SalePrice   int64     `gorm:"not null"`
	Status      string    `gorm:"size:16;not null"`
	InventoryID string    `gorm:"size:64"`
	Detail      string    `gorm:"size:512"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (HistoryEntry) TableName() string {
	return "intake_history"
}
