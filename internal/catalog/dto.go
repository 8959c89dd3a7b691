package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ateliersillage/sillage-backend/pkg/enums"
)

// VolumeOption is one purchasable size of a product in the shopper's locale.
type VolumeOption struct {
	VolumeID int64           `json:"volumeId"`
	Label    string          `json:"label"`
	Price    decimal.Decimal `json:"price"`
	Currency enums.Currency  `json:"currency"`
	Stock    int             `json:"stock"`
}

// ProductSummary is the listing projection for catalog pages.
type ProductSummary struct {
	ID         uuid.UUID             `json:"id"`
	Slug       string                `json:"slug"`
	Name       string                `json:"name"`
	Category   enums.ProductCategory `json:"category"`
	ImagePaths []string              `json:"imagePaths"`
	Volumes    []VolumeOption        `json:"volumes"`
}

// ProductDetail is the full projection for a product page.
type ProductDetail struct {
	ProductSummary
	Concept        string   `json:"concept"`
	Sensations     string   `json:"sensations"`
	CollectionName string   `json:"collectionName,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// CollectionDetail is a collection page: localized name plus its products.
type CollectionDetail struct {
	Slug     string           `json:"slug"`
	Name     string           `json:"name"`
	Products []ProductSummary `json:"products"`
}

// SampleOption populates the free-sample selector.
type SampleOption struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ListInput narrows the product listing from the storefront.
type ListInput struct {
	Locale   string
	Search   string
	Category string
	Limit    int
}
