package orders

import (
	"context"
	"fmt"

	"github.com/ateliersillage/sillage-backend/pkg/db/models"
	"github.com/ateliersillage/sillage-backend/pkg/enums"
	"github.com/ateliersillage/sillage-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes order persistence. Status changes go through UpdateStatusIf
// so concurrent actors cannot both win the same transition.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateItems(ctx context.Context, items []models.OrderItem) error
	NextOrderNumber(ctx context.Context) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByEmail(ctx context.Context, email string, limit int, cursor *pagination.Cursor) ([]models.Order, error)
	ListAll(ctx context.Context, status enums.OrderStatus, limit int) ([]models.Order, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error)
	SetStatus(ctx context.Context, id uuid.UUID, to enums.OrderStatus) error
	SetTrackingCode(ctx context.Context, id uuid.UUID, code string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create assigns the primary key before insert so a caller can wire item rows
// to the order id without waiting for the database to hand one back.
func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) NextOrderNumber(ctx context.Context) (string, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('order_number_seq')").Scan(&n).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SO-%d", n), nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByEmail pages a customer's history newest-first. The buffered limit lets
// the caller detect whether another page exists.
func (r *repository) ListByEmail(ctx context.Context, email string, limit int, cursor *pagination.Cursor) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_email = ?", email).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(limit))
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListAll(ctx context.Context, status enums.OrderStatus, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, to enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", to).Error
}

func (r *repository) SetTrackingCode(ctx context.Context, id uuid.UUID, code string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("tracking_code", code).Error
}
