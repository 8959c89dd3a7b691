package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ateliersillage/sillage-backend/pkg/enums"
)

// Product represents a catalog entry shared across all site locales.
type Product struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug         string                `gorm:"column:slug;not null;uniqueIndex"`
	Category     enums.ProductCategory `gorm:"column:category;type:text;not null"`
	CollectionID *uuid.UUID            `gorm:"column:collection_id;type:uuid"`
	ImagePaths   pq.StringArray        `gorm:"column:image_paths;type:text[];not null;default:'{}'"`
	IsDeleted    bool                  `gorm:"column:is_deleted;not null;default:false"`
	Collection   *Collection           `gorm:"foreignKey:CollectionID"`
	Translations []ProductTranslation  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Volumes      []ProductVolume       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Tags         []Tag                 `gorm:"many2many:product_tags"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductTranslation holds the localized display copy for a product.
type ProductTranslation struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_translations_locale"`
	Locale     string    `gorm:"column:locale;not null;uniqueIndex:idx_product_translations_locale"`
	Name       string    `gorm:"column:name;not null"`
	Concept    string    `gorm:"column:concept;not null;default:''"`
	Sensations string    `gorm:"column:sensations;not null;default:''"`
}

// ProductVolume is a purchasable size of a product in one locale's currency.
type ProductVolume struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID        `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_volumes_locale"`
	VolumeID  int64            `gorm:"column:volume_id;not null;uniqueIndex:idx_product_volumes_locale"`
	Locale    string           `gorm:"column:locale;not null;uniqueIndex:idx_product_volumes_locale"`
	Currency  enums.Currency   `gorm:"column:currency;type:text;not null"`
	Price     decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	Stock     int              `gorm:"column:stock;not null;default:0"`
	Volume    VolumeDefinition `gorm:"foreignKey:VolumeID"`
}
