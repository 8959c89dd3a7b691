package bag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ateliersillage/sillage-backend/internal/catalog"
	"github.com/ateliersillage/sillage-backend/internal/locale"
	"github.com/ateliersillage/sillage-backend/pkg/db/models"
	"github.com/ateliersillage/sillage-backend/pkg/enums"
	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

// ItemDetails is the display-only projection of one bag line joined with
// current catalog data. Never persisted.
type ItemDetails struct {
	ProductID   uuid.UUID             `json:"productId"`
	Slug        string                `json:"slug"`
	Name        string                `json:"name"`
	Category    enums.ProductCategory `json:"category"`
	ImagePath   string                `json:"imagePath,omitempty"`
	VolumeID    int64                 `json:"volumeId"`
	VolumeLabel string                `json:"volumeLabel"`
	Price       decimal.Decimal       `json:"price"`
	Currency    enums.Currency        `json:"currency"`
	Quantity    int                   `json:"quantity"`
}

// Resolver joins raw bag lines against the catalog for display.
type Resolver struct {
	repo catalog.Repository
	logg *logger.Logger
}

// NewResolver builds a bag detail resolver.
func NewResolver(repo catalog.Repository, logg *logger.Logger) (*Resolver, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Resolver{repo: repo, logg: logg}, nil
}

// Resolve produces one ItemDetails per input line whose product and volume can
// still be resolved. Soft-deleted or missing references are dropped silently
// so the stored bag survives a transient catalog change.
func (r *Resolver) Resolve(ctx context.Context, items []LineItem, uiLocale string) ([]ItemDetails, error) {
	if len(items) == 0 {
		return []ItemDetails{}, nil
	}

	tag := locale.Resolve(uiLocale)
	ids := make([]uuid.UUID, 0, len(items))
	seen := map[uuid.UUID]struct{}{}
	for _, line := range items {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	locales := []string{tag}
	if tag != locale.DefaultLocale {
		locales = append(locales, locale.DefaultLocale)
	}
	products, err := r.repo.FindByIDs(ctx, ids, locales)
	if err != nil {
		r.logg.Error(ctx, "resolve bag products", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve bag items")
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	details := make([]ItemDetails, 0, len(items))
	for _, line := range items {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		volume := catalog.ResolveVolume(product, line.VolumeID, tag)
		if volume == nil {
			continue
		}
		text := catalog.ResolveCopy(product, tag)
		detail := ItemDetails{
			ProductID:   product.ID,
			Slug:        product.Slug,
			Name:        text.Name,
			Category:    product.Category,
			VolumeID:    volume.VolumeID,
			VolumeLabel: catalog.ResolveVolumeLabel(volume, tag),
			Price:       volume.Price,
			Currency:    volume.Currency,
			Quantity:    line.Quantity,
		}
		if len(product.ImagePaths) > 0 {
			detail.ImagePath = product.ImagePaths[0]
		}
		details = append(details, detail)
	}
	return details, nil
}
