package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ateliersillage/sillage-backend/internal/bag"
	"github.com/ateliersillage/sillage-backend/internal/catalog"
	"github.com/ateliersillage/sillage-backend/internal/locale"
	"github.com/ateliersillage/sillage-backend/internal/orders"
	"github.com/ateliersillage/sillage-backend/internal/users"
	"github.com/ateliersillage/sillage-backend/pkg/db/models"
	"github.com/ateliersillage/sillage-backend/pkg/enums"
	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Input is everything a checkout submission carries. Prices never appear
// here: every line is re-priced from the catalog on the server.
type Input struct {
	UserID         uuid.UUID
	Email          string
	Items          []bag.LineItem
	SelectedSample *string
	Address        Address
	Locale         string
	PaymentMethod  enums.PaymentMethod
	SaveAddress    bool
}

// Result identifies the order created for a successful checkout.
type Result struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
}

// Service turns a shopping bag into a priced, persisted order.
type Service interface {
	CreateOrder(ctx context.Context, input Input) (*Result, error)
}

type service struct {
	tx          txRunner
	catalogRepo catalog.Repository
	ordersRepo  orders.Repository
	usersRepo   users.Repository
	logg        *logger.Logger
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	catalogRepo catalog.Repository,
	ordersRepo orders.Repository,
	usersRepo users.Repository,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:          tx,
		catalogRepo: catalogRepo,
		ordersRepo:  ordersRepo,
		usersRepo:   usersRepo,
		logg:        logg,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input Input) (*Result, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if fieldErr := ValidateAddress(input.Address); fieldErr != nil {
		return nil, fieldErr
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Your shopping bag is empty")
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method").
			WithDetails(map[string]string{"paymentMethod": "is invalid"})
	}

	tag := locale.Resolve(input.Locale)
	currency := locale.CurrencyFor(tag)

	items, total, err := s.priceLines(ctx, input.Items, tag)
	if err != nil {
		return nil, err
	}
	if sample := s.resolveSample(ctx, input.SelectedSample, tag); sample != nil {
		items = append(items, *sample)
	}

	order := &models.Order{
		CustomerEmail: input.Email,
		RecipientName: input.Address.RecipientName,
		Phone:         input.Address.Phone,
		AddressLine1:  input.Address.AddressLine1,
		AddressLine2:  input.Address.AddressLine2,
		City:          input.Address.City,
		PostalCode:    input.Address.PostalCode,
		Country:       input.Address.Country,
		Locale:        tag,
		Currency:      currency,
		Total:         total,
		Status:        enums.OrderStatusProcessing,
		PaymentMethod: input.PaymentMethod,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = enums.PaymentMethodCard
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.ordersRepo.WithTx(tx)
		usersRepo := s.usersRepo.WithTx(tx)

		account, err := usersRepo.Ensure(ctx, input.UserID, input.Email)
		if err != nil {
			return err
		}
		order.UserID = account.ID

		number, err := ordersRepo.NextOrderNumber(ctx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if _, err := ordersRepo.Create(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := ordersRepo.CreateItems(ctx, items); err != nil {
			return err
		}

		if input.SaveAddress {
			return usersRepo.SaveDefaultAddress(ctx, account.ID, users.DefaultAddress{
				RecipientName: input.Address.RecipientName,
				Phone:         input.Address.Phone,
				AddressLine1:  input.Address.AddressLine1,
				AddressLine2:  input.Address.AddressLine2,
				City:          input.Address.City,
				PostalCode:    input.Address.PostalCode,
				Country:       input.Address.Country,
			})
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		s.logg.Error(ctx, "create order", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create order")
	}

	order.Items = items
	return &Result{OrderID: order.ID, OrderNumber: order.OrderNumber}, nil
}

// priceLines re-resolves every bag line against the catalog at the order's
// locale. Lines whose product or offering no longer exists are dropped; an
// order needs at least one purchasable line to proceed.
func (s *service) priceLines(ctx context.Context, lines []bag.LineItem, tag string) ([]models.OrderItem, decimal.Decimal, error) {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	products, err := s.catalogRepo.FindByIDs(ctx, ids, []string{tag, locale.DefaultLocale})
	if err != nil {
		s.logg.Error(ctx, "load products for checkout", err)
		return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create order")
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		offering := catalog.ResolveVolume(product, line.VolumeID, tag)
		if offering == nil {
			continue
		}

		quantity := line.Quantity
		if quantity < 1 {
			quantity = 1
		}
		if quantity > bag.MaxLineQuantity {
			quantity = bag.MaxLineQuantity
		}

		text := catalog.ResolveCopy(product, tag)
		item := models.OrderItem{
			ProductID:   product.ID,
			ProductSlug: product.Slug,
			Name:        text.Name,
			Category:    product.Category,
			VolumeLabel: catalog.ResolveVolumeLabel(offering, tag),
			Quantity:    quantity,
			UnitPrice:   offering.Price,
		}
		if len(product.ImagePaths) > 0 {
			item.ImagePath = product.ImagePaths[0]
		}
		items = append(items, item)
		total = total.Add(offering.Price.Mul(decimal.NewFromInt(int64(quantity))))
	}
	if len(items) == 0 {
		return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "no purchasable items in shopping bag")
	}
	return items, total, nil
}

// resolveSample turns the selected free-sample slug into a zero-priced line.
// A sample that cannot be resolved is omitted, never a checkout failure.
func (s *service) resolveSample(ctx context.Context, slug *string, tag string) *models.OrderItem {
	if slug == nil || strings.TrimSpace(*slug) == "" {
		return nil
	}
	product, err := s.catalogRepo.FindBySlug(ctx, strings.TrimSpace(*slug), []string{tag, locale.DefaultLocale})
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "sample", *slug), "dropping unresolvable free sample")
		return nil
	}
	text := catalog.ResolveCopy(product, tag)
	item := &models.OrderItem{
		ProductID:    product.ID,
		ProductSlug:  product.Slug,
		Name:         text.Name,
		Category:     product.Category,
		Quantity:     1,
		UnitPrice:    decimal.Zero,
		IsFreeSample: true,
	}
	if len(product.ImagePaths) > 0 {
		item.ImagePath = product.ImagePaths[0]
	}
	return item
}
