package storage

import "time"

// Export is one saved run of cleaned series for a characteristic.
type Export struct {
	ID             string
	Source         string
	Characteristic string
	UnitLabel      string
	ExportedAt     time.Time
	Sites          int
	Points         int
}

// Stats holds aggregate statistics about an export database.
type Stats struct {
	TotalExports       int64
	TotalObservations  int64
	OldestExport       time.Time
	NewestExport       time.Time
	TopCharacteristics []CharacteristicCount
}

// CharacteristicCount pairs a characteristic with its export count.
type CharacteristicCount struct {
	Characteristic string
	Count          int64
}
