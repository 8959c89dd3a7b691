package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliersillage/sillage-backend/pkg/enums"
)

// User represents a storefront account provisioned by the identity provider.
type User struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email       string         `gorm:"column:email;not null;uniqueIndex"`
	DisplayName string         `gorm:"column:display_name;not null;default:''"`
	Role        enums.UserRole `gorm:"column:role;type:text;not null;default:'CUSTOMER'"`

	DefaultRecipientName string `gorm:"column:default_recipient_name;not null;default:''"`
	DefaultPhone         string `gorm:"column:default_phone;not null;default:''"`
	DefaultAddressLine1  string `gorm:"column:default_address_line1;not null;default:''"`
	DefaultAddressLine2  string `gorm:"column:default_address_line2;not null;default:''"`
	DefaultCity          string `gorm:"column:default_city;not null;default:''"`
	DefaultPostalCode    string `gorm:"column:default_postal_code;not null;default:''"`
	DefaultCountry       string `gorm:"column:default_country;not null;default:''"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
