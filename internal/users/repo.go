package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/ateliersillage/sillage-backend/pkg/db"
	"github.com/ateliersillage/sillage-backend/pkg/db/models"
)

// Repository exposes the minimal account persistence the storefront needs.
// Accounts originate at the identity provider, so writes here are upserts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Ensure(ctx context.Context, id uuid.UUID, email string) (*models.User, error)
	SaveDefaultAddress(ctx context.Context, id uuid.UUID, addr DefaultAddress) error
}

// DefaultAddress is the shipping profile remembered for the next checkout.
type DefaultAddress struct {
	RecipientName string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	PostalCode    string
	Country       string
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a users repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Ensure returns the account row for an authenticated shopper, creating it on
// first contact. The token's subject is authoritative for the row id.
func (r *repository) Ensure(ctx context.Context, id uuid.UUID, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{ID: id, Email: email}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Two first requests can race the insert; the loser reads the
		// winner's row.
		if pkgdb.IsUniqueViolation(err, "users_email_key") {
			return r.FindByEmail(ctx, email)
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) SaveDefaultAddress(ctx context.Context, id uuid.UUID, addr DefaultAddress) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"default_recipient_name": addr.RecipientName,
			"default_phone":          addr.Phone,
			"default_address_line1":  addr.AddressLine1,
			"default_address_line2":  addr.AddressLine2,
			"default_city":           addr.City,
			"default_postal_code":    addr.PostalCode,
			"default_country":        addr.Country,
		}).Error
}
