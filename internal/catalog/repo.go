package catalog

import (
	"context"
	"strings"

	"github.com/ateliersillage/sillage-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListQuery narrows a catalog listing.
type ListQuery struct {
	Locales  []string
	Search   string
	Category string
	Limit    int
}

// Repository exposes the catalog reads shared by listing, bag resolution, and checkout.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindBySlug(ctx context.Context, slug string, locales []string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID, locales []string) ([]models.Product, error)
	ListActive(ctx context.Context, q ListQuery) ([]models.Product, error)
	ListSamples(ctx context.Context, locales []string) ([]models.Product, error)
	FindCollectionBySlug(ctx context.Context, slug string, locales []string) (*models.Collection, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID, locales []string) ([]models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) scoped(ctx context.Context, locales []string) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Preload("Translations", "locale IN ?", locales).
		Preload("Volumes", "locale IN ?", locales).
		Preload("Volumes.Volume.Labels", "locale IN ?", locales).
		Preload("Collection.Translations", "locale IN ?", locales).
		Preload("Tags")
}

func (r *repository) FindBySlug(ctx context.Context, slug string, locales []string) (*models.Product, error) {
	var product models.Product
	err := r.scoped(ctx, locales).
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID, locales []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.scoped(ctx, locales).
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListActive(ctx context.Context, q ListQuery) ([]models.Product, error) {
	query := r.scoped(ctx, q.Locales)
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		// Substring match on slug; localized-name search joins the translation rows.
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"slug LIKE ? OR id IN (SELECT product_id FROM product_translations WHERE lower(name) LIKE ?)",
			pattern, pattern,
		)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FindCollectionBySlug(ctx context.Context, slug string, locales []string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).
		Preload("Translations", "locale IN ?", locales).
		Where("slug = ?", slug).
		First(&collection).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *repository) ListByCollection(ctx context.Context, collectionID uuid.UUID, locales []string) ([]models.Product, error) {
	var products []models.Product
	err := r.scoped(ctx, locales).
		Where("collection_id = ?", collectionID).
		Order("slug ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListSamples(ctx context.Context, locales []string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Preload("Translations", "locale IN ?", locales).
		Order("slug ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
