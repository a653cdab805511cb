package model

import (
	"encoding/json"
	"time"
)

// Phase is the intake workflow state.
type Phase string

const (
	PhaseScanning Phase = "scanning"
	PhasePricing  Phase = "pricing"
)

// ScanSession is the persisted unit of in-progress intake work. One row per
// register key; the item list is stored as JSON so the whole session is
// written back in a single statement on every mutation.
type ScanSession struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	RegisterKey   string    `gorm:"size:64;not null;uniqueIndex"`
	Phase         Phase     `gorm:"size:16;not null"`
	BuyerName     string    `gorm:"size:120"`
	PaymentMethod string    `gorm:"size:32"`
	ItemsJSON     string    `gorm:"type:longtext;not null"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`

	Items []ScannedItem `gorm:"-"`
}

func (ScanSession) TableName() string {
	return "scan_sessions"
}

// EncodeItems serializes Items into ItemsJSON before a save.
func (s *ScanSession) EncodeItems() error {
	b, err := json.Marshal(s.Items)
	if err != nil {
		return err
	}
	s.ItemsJSON = string(b)
	return nil
}

// DecodeItems populates Items from ItemsJSON after a load.
func (s *ScanSession) DecodeItems() error {
	if s.ItemsJSON == "" {
		s.Items = nil
		return nil
	}
	return json.Unmarshal([]byte(s.ItemsJSON), &s.Items)
}

// FindItem returns the item with the given local id, or nil.
func (s *ScanSession) FindItem(localID string) *ScannedItem {
	for i := range s.Items {
		if s.Items[i].LocalID == localID {
			return &s.Items[i]
		}
	}
	return nil
}

// FindByCode returns the item with the given scan code, or nil.
func (s *ScanSession) FindByCode(code string) *ScannedItem {
	for i := range s.Items {
		if s.Items[i].ScanCode == code {
			return &s.Items[i]
		}
	}
	return nil
}

// TotalUnits is the number of physical units the session will commit.
func (s *ScanSession) TotalUnits() int {
	n := 0
	for i := range s.Items {
		n += s.Items[i].Quantity
	}
	return n
}
