package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ateliersillage/sillage-backend/pkg/enums"
)

// Order captures a placed order together with its shipping snapshot. Address
// fields are copied at checkout so later profile edits never mutate history.
type Order struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber   string    `gorm:"column:order_number;not null;uniqueIndex"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	CustomerEmail string    `gorm:"column:customer_email;not null"`

	RecipientName string `gorm:"column:recipient_name;not null"`
	Phone         string `gorm:"column:phone;not null;default:''"`
	AddressLine1  string `gorm:"column:address_line1;not null"`
	AddressLine2  string `gorm:"column:address_line2;not null;default:''"`
	City          string `gorm:"column:city;not null"`
	PostalCode    string `gorm:"column:postal_code;not null"`
	Country       string `gorm:"column:country;not null"`

	Locale        string              `gorm:"column:locale;not null"`
	Currency      enums.Currency      `gorm:"column:currency;type:text;not null"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'PROCESSING'"`
	TrackingCode  string              `gorm:"column:tracking_code;not null;default:''"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is a priced line snapshot taken at checkout.
type OrderItem struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID             `gorm:"column:order_id;type:uuid;not null"`
	ProductID    uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	ProductSlug  string                `gorm:"column:product_slug;not null"`
	Name         string                `gorm:"column:name;not null"`
	ImagePath    string                `gorm:"column:image_path;not null;default:''"`
	Category     enums.ProductCategory `gorm:"column:category;type:text;not null;default:''"`
	VolumeLabel  string                `gorm:"column:volume_label;not null;default:''"`
	Quantity     int                   `gorm:"column:quantity;not null"`
	UnitPrice    decimal.Decimal       `gorm:"column:unit_price;type:numeric(12,2);not null"`
	IsFreeSample bool                  `gorm:"column:is_free_sample;not null;default:false"`
}
