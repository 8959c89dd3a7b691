package models

import "github.com/google/uuid"

// VolumeDefinition is a canonical bottle size shared across products.
type VolumeDefinition struct {
	ID          int64         `gorm:"column:id;primaryKey"`
	Milliliters int           `gorm:"column:milliliters;not null"`
	Labels      []VolumeLabel `gorm:"foreignKey:VolumeID;constraint:OnDelete:CASCADE"`
}

// VolumeLabel is the localized display text for a volume ("50 mL", "50 毫升").
type VolumeLabel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VolumeID int64     `gorm:"column:volume_id;not null;uniqueIndex:idx_volume_labels_locale"`
	Locale   string    `gorm:"column:locale;not null;uniqueIndex:idx_volume_labels_locale"`
	Label    string    `gorm:"column:label;not null"`
}
