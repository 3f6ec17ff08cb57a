package models

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordStore persists searched tickers.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// InsertIfAbsent creates a record for ticker unless one already exists.
// The conflicting insert from a concurrent first-time search is resolved by
// the database (ON CONFLICT DO NOTHING), so losing the race is a no-op here.
func (s *RecordStore) InsertIfAbsent(ticker string) error {
	record := SearchRecord{Ticker: ticker}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoNothing: true,
	}).Create(&record)
	if result.Error != nil {
		return fmt.Errorf("failed to insert search record: %w", result.Error)
	}
	return nil
}

// ListAll returns every stored record in insertion order.
func (s *RecordStore) ListAll() ([]SearchRecord, error) {
	var records []SearchRecord
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list search records: %w", err)
	}
	return records, nil
}

// DeleteByTicker removes the record matching ticker. Deleting a ticker that
// was never stored is a no-op, not an error.
func (s *RecordStore) DeleteByTicker(ticker string) error {
	if err := s.db.Where("ticker = ?", ticker).Delete(&SearchRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete search record: %w", err)
	}
	return nil
}
