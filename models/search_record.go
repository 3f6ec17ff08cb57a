package models

// SearchRecord is a previously searched ticker. The unique index on Ticker
// makes insert-if-absent race-safe at the storage layer.
type SearchRecord struct {
	ID     uint   `gorm:"primaryKey"`
	Ticker string `gorm:"uniqueIndex;not null"`
}

func (SearchRecord) TableName() string {
	return "search_records"
}
