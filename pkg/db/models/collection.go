package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection groups products into a seasonal or thematic line.
type Collection struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug         string                  `gorm:"column:slug;not null;uniqueIndex"`
	Translations []CollectionTranslation `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// CollectionTranslation holds the localized name for a collection.
type CollectionTranslation struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CollectionID uuid.UUID `gorm:"column:collection_id;type:uuid;not null;uniqueIndex:idx_collection_translations_locale"`
	Locale       string    `gorm:"column:locale;not null;uniqueIndex:idx_collection_translations_locale"`
	Name         string    `gorm:"column:name;not null"`
}
