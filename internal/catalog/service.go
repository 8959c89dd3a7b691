package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ateliersillage/sillage-backend/internal/locale"
	"github.com/ateliersillage/sillage-backend/pkg/db/models"
	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

// Service exposes the localized catalog reads used by the storefront.
type Service interface {
	ListProducts(ctx context.Context, input ListInput) ([]ProductSummary, error)
	GetProductBySlug(ctx context.Context, slug, uiLocale string) (*ProductDetail, error)
	GetCollectionBySlug(ctx context.Context, slug, uiLocale string) (*CollectionDetail, error)
	AvailableSamples(ctx context.Context, uiLocale string) ([]SampleOption, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func lookupLocales(tag string) []string {
	if tag == locale.DefaultLocale {
		return []string{locale.DefaultLocale}
	}
	return []string{tag, locale.DefaultLocale}
}

func (s *service) ListProducts(ctx context.Context, input ListInput) ([]ProductSummary, error) {
	tag := locale.Resolve(input.Locale)
	products, err := s.repo.ListActive(ctx, ListQuery{
		Locales:  lookupLocales(tag),
		Search:   input.Search,
		Category: input.Category,
		Limit:    input.Limit,
	})
	if err != nil {
		s.logg.Error(ctx, "list products", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, summarize(&products[i], tag))
	}
	return summaries, nil
}

func summarize(p *models.Product, tag string) ProductSummary {
	text := ResolveCopy(p, tag)
	summary := ProductSummary{
		ID:         p.ID,
		Slug:       p.Slug,
		Name:       text.Name,
		Category:   p.Category,
		ImagePaths: p.ImagePaths,
	}
	for i := range p.Volumes {
		v := &p.Volumes[i]
		resolved := ResolveVolume(p, v.VolumeID, tag)
		if resolved == nil || resolved.ID != v.ID {
			continue
		}
		summary.Volumes = append(summary.Volumes, VolumeOption{
			VolumeID: resolved.VolumeID,
			Label:    ResolveVolumeLabel(resolved, tag),
			Price:    resolved.Price,
			Currency: resolved.Currency,
			Stock:    resolved.Stock,
		})
	}
	return summary
}

func (s *service) GetProductBySlug(ctx context.Context, slug, uiLocale string) (*ProductDetail, error) {
	tag := locale.Resolve(uiLocale)
	product, err := s.repo.FindBySlug(ctx, slug, lookupLocales(tag))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		s.logg.Error(ctx, "find product by slug", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}

	text := ResolveCopy(product, tag)
	detail := &ProductDetail{
		ProductSummary: ProductSummary{
			ID:         product.ID,
			Slug:       product.Slug,
			Name:       text.Name,
			Category:   product.Category,
			ImagePaths: product.ImagePaths,
		},
		Concept:        text.Concept,
		Sensations:     text.Sensations,
		CollectionName: ResolveCollectionName(product, tag),
	}
	for i := range product.Volumes {
		v := &product.Volumes[i]
		resolved := ResolveVolume(product, v.VolumeID, tag)
		if resolved == nil || resolved.ID != v.ID {
			continue
		}
		detail.Volumes = append(detail.Volumes, VolumeOption{
			VolumeID: resolved.VolumeID,
			Label:    ResolveVolumeLabel(resolved, tag),
			Price:    resolved.Price,
			Currency: resolved.Currency,
			Stock:    resolved.Stock,
		})
	}
	for _, t := range product.Tags {
		detail.Tags = append(detail.Tags, t.Slug)
	}
	return detail, nil
}

func (s *service) GetCollectionBySlug(ctx context.Context, slug, uiLocale string) (*CollectionDetail, error) {
	tag := locale.Resolve(uiLocale)
	locales := lookupLocales(tag)

	collection, err := s.repo.FindCollectionBySlug(ctx, slug, locales)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		s.logg.Error(ctx, "find collection by slug", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find collection")
	}

	products, err := s.repo.ListByCollection(ctx, collection.ID, locales)
	if err != nil {
		s.logg.Error(ctx, "list collection products", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list collection products")
	}

	detail := &CollectionDetail{
		Slug:     collection.Slug,
		Name:     ResolveCollection(collection, tag),
		Products: make([]ProductSummary, 0, len(products)),
	}
	for i := range products {
		detail.Products = append(detail.Products, summarize(&products[i], tag))
	}
	return detail, nil
}

func (s *service) AvailableSamples(ctx context.Context, uiLocale string) ([]SampleOption, error) {
	tag := locale.Resolve(uiLocale)
	products, err := s.repo.ListSamples(ctx, lookupLocales(tag))
	if err != nil {
		s.logg.Error(ctx, "list sample products", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list samples")
	}

	options := make([]SampleOption, 0, len(products))
	for i := range products {
		p := &products[i]
		options = append(options, SampleOption{
			Slug: p.Slug,
			Name: ResolveCopy(p, tag).Name,
		})
	}
	return options, nil
}
