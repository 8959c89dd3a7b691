package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ateliersillage/sillage-backend/pkg/db/models"
	"github.com/ateliersillage/sillage-backend/pkg/enums"
)

// ItemView is the read projection of one order line.
type ItemView struct {
	ProductID    uuid.UUID             `json:"productId"`
	ProductSlug  string                `json:"productSlug"`
	Name         string                `json:"name"`
	ImagePath    string                `json:"imagePath,omitempty"`
	Category     enums.ProductCategory `json:"category,omitempty"`
	VolumeLabel  string                `json:"volumeLabel,omitempty"`
	Quantity     int                   `json:"quantity"`
	UnitPrice    decimal.Decimal       `json:"unitPrice"`
	IsFreeSample bool                  `json:"isFreeSample"`
}

// View is the read projection of an order for receipts and history.
type View struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	RecipientName string              `json:"recipientName"`
	Phone         string              `json:"phone,omitempty"`
	AddressLine1  string              `json:"addressLine1"`
	AddressLine2  string              `json:"addressLine2,omitempty"`
	City          string              `json:"city"`
	PostalCode    string              `json:"postalCode"`
	Country       string              `json:"country"`
	Locale        string              `json:"locale"`
	Currency      enums.Currency      `json:"currency"`
	Total         decimal.Decimal     `json:"total"`
	Status        enums.OrderStatus   `json:"status"`
	TrackingCode  string              `json:"trackingCode,omitempty"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time           `json:"createdAt"`
	Items         []ItemView          `json:"items"`
}

// HistoryPage is one page of a customer's order history. NextCursor is empty
// on the final page.
type HistoryPage struct {
	Orders     []View `json:"orders"`
	NextCursor string `json:"nextCursor,omitempty"`
}

func toView(order *models.Order) *View {
	v := &View{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		RecipientName: order.RecipientName,
		Phone:         order.Phone,
		AddressLine1:  order.AddressLine1,
		AddressLine2:  order.AddressLine2,
		City:          order.City,
		PostalCode:    order.PostalCode,
		Country:       order.Country,
		Locale:        order.Locale,
		Currency:      order.Currency,
		Total:         order.Total,
		Status:        order.Status,
		TrackingCode:  order.TrackingCode,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range order.Items {
		v.Items = append(v.Items, ItemView{
			ProductID:    item.ProductID,
			ProductSlug:  item.ProductSlug,
			Name:         item.Name,
			ImagePath:    item.ImagePath,
			Category:     item.Category,
			VolumeLabel:  item.VolumeLabel,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			IsFreeSample: item.IsFreeSample,
		})
	}
	return v
}
