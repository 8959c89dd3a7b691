package checkout

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ateliersillage/sillage-backend/internal/bag"
	"github.com/ateliersillage/sillage-backend/internal/catalog"
	"github.com/ateliersillage/sillage-backend/internal/orders"
	"github.com/ateliersillage/sillage-backend/internal/users"
	"github.com/ateliersillage/sillage-backend/pkg/db/models"
	"github.com/ateliersillage/sillage-backend/pkg/enums"
	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
	"github.com/ateliersillage/sillage-backend/pkg/pagination"
)

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

type stubCatalogRepo struct {
	products []models.Product
}

func (s *stubCatalogRepo) WithTx(tx *gorm.DB) catalog.Repository { return s }

func (s *stubCatalogRepo) FindBySlug(ctx context.Context, slug string, locales []string) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].Slug == slug && !s.products[i].IsDeleted {
			return &s.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) FindByIDs(ctx context.Context, ids []uuid.UUID, locales []string) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		for i := range s.products {
			if s.products[i].ID == id && !s.products[i].IsDeleted {
				out = append(out, s.products[i])
			}
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) ListActive(ctx context.Context, q catalog.ListQuery) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubCatalogRepo) ListSamples(ctx context.Context, locales []string) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubCatalogRepo) FindCollectionBySlug(ctx context.Context, slug string, locales []string) (*models.Collection, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) ListByCollection(ctx context.Context, collectionID uuid.UUID, locales []string) ([]models.Product, error) {
	return nil, nil
}

type stubOrdersRepo struct {
	created      *models.Order
	createdItems []models.OrderItem
}

func (r *stubOrdersRepo) WithTx(tx *gorm.DB) orders.Repository { return r }

func (r *stubOrdersRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	r.created = order
	return order, nil
}

func (r *stubOrdersRepo) CreateItems(ctx context.Context, items []models.OrderItem) error {
	r.createdItems = items
	return nil
}

func (r *stubOrdersRepo) NextOrderNumber(ctx context.Context) (string, error) {
	return "SO-100042", nil
}

func (r *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrdersRepo) ListByEmail(ctx context.Context, email string, limit int, cursor *pagination.Cursor) ([]models.Order, error) {
	return nil, nil
}

func (r *stubOrdersRepo) ListAll(ctx context.Context, status enums.OrderStatus, limit int) ([]models.Order, error) {
	return nil, nil
}

func (r *stubOrdersRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	return false, nil
}

func (r *stubOrdersRepo) SetStatus(ctx context.Context, id uuid.UUID, to enums.OrderStatus) error {
	return nil
}

func (r *stubOrdersRepo) SetTrackingCode(ctx context.Context, id uuid.UUID, code string) error {
	return nil
}

type stubUsersRepo struct {
	savedAddress *users.DefaultAddress
}

func (r *stubUsersRepo) WithTx(tx *gorm.DB) users.Repository { return r }

func (r *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsersRepo) Ensure(ctx context.Context, id uuid.UUID, email string) (*models.User, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &models.User{ID: id, Email: email}, nil
}

func (r *stubUsersRepo) SaveDefaultAddress(ctx context.Context, id uuid.UUID, addr users.DefaultAddress) error {
	r.savedAddress = &addr
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})
}

func fixtureProduct() models.Product {
	id := uuid.New()
	return models.Product{
		ID:         id,
		Slug:       "fleur-noire",
		Category:   enums.ProductCategoryPerfume,
		ImagePaths: pq.StringArray{"/images/fleur-noire-01.jpg", "/images/fleur-noire-02.jpg"},
		Translations: []models.ProductTranslation{
			{ProductID: id, Locale: "en-US", Name: "Black Flower"},
			{ProductID: id, Locale: "fr-FR", Name: "Fleur Noire"},
		},
		Volumes: []models.ProductVolume{
			{
				ID: uuid.New(), ProductID: id, VolumeID: 50, Locale: "en-US",
				Currency: enums.CurrencyUSD, Price: decimal.NewFromInt(140), Stock: 3,
				Volume: models.VolumeDefinition{
					ID: 50, Milliliters: 50,
					Labels: []models.VolumeLabel{{VolumeID: 50, Locale: "en-US", Label: "50 mL"}},
				},
			},
		},
	}
}

func fixtureSample() models.Product {
	id := uuid.New()
	return models.Product{
		ID:   id,
		Slug: "vetiver-sample",
		Translations: []models.ProductTranslation{
			{ProductID: id, Locale: "en-US", Name: "Vetiver Discovery"},
		},
	}
}

func validAddress() Address {
	return Address{
		RecipientName: "Amélie Durand",
		AddressLine1:  "12 rue des Lilas",
		City:          "Paris",
		PostalCode:    "75011",
		Country:       "FR",
	}
}

func newTestService(t *testing.T, catalogRepo catalog.Repository, ordersRepo orders.Repository) (Service, *stubUsersRepo) {
	t.Helper()
	usersRepo := &stubUsersRepo{}
	svc, err := NewService(stubTx{}, catalogRepo, ordersRepo, usersRepo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, usersRepo
}

func TestCreateOrderEmptyBag(t *testing.T) {
	svc, _ := newTestService(t, &stubCatalogRepo{}, &stubOrdersRepo{})

	_, err := svc.CreateOrder(context.Background(), Input{
		Email:   "amelie@example.com",
		Address: validAddress(),
		Locale:  "fr",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "Your shopping bag is empty" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCreateOrderRequiresAuthentication(t *testing.T) {
	svc, _ := newTestService(t, &stubCatalogRepo{}, &stubOrdersRepo{})

	_, err := svc.CreateOrder(context.Background(), Input{Address: validAddress()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCreateOrderCollectsFieldErrors(t *testing.T) {
	svc, _ := newTestService(t, &stubCatalogRepo{}, &stubOrdersRepo{})

	_, err := svc.CreateOrder(context.Background(), Input{
		Email:   "amelie@example.com",
		Address: Address{Phone: "+33 6 00 00 00 00"},
		Items:   []bag.LineItem{{ProductID: uuid.New(), VolumeID: 50, Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", typed.Details())
	}
	for _, field := range []string{"recipientName", "addressLine1", "city", "postalCode", "country"} {
		if details[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, details)
		}
	}
}

func TestCreateOrderRepricesFromCatalog(t *testing.T) {
	product := fixtureProduct()
	ordersRepo := &stubOrdersRepo{}
	svc, _ := newTestService(t, &stubCatalogRepo{products: []models.Product{product}}, ordersRepo)

	// Quantity above the clamp ceiling arrives from a tampered client.
	result, err := svc.CreateOrder(context.Background(), Input{
		UserID:  uuid.New(),
		Email:   "amelie@example.com",
		Address: validAddress(),
		Locale:  "us",
		Items:   []bag.LineItem{{ProductID: product.ID, VolumeID: 50, Quantity: 99}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if result.OrderNumber != "SO-100042" {
		t.Fatalf("unexpected order number %q", result.OrderNumber)
	}
	if len(ordersRepo.createdItems) != 1 {
		t.Fatalf("expected one item, got %d", len(ordersRepo.createdItems))
	}
	item := ordersRepo.createdItems[0]
	if item.Quantity != bag.MaxLineQuantity {
		t.Fatalf("expected clamped quantity %d, got %d", bag.MaxLineQuantity, item.Quantity)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(140)) {
		t.Fatalf("expected catalog price 140, got %s", item.UnitPrice)
	}
	if item.ImagePath != "/images/fleur-noire-01.jpg" {
		t.Fatalf("expected primary image snapshot, got %q", item.ImagePath)
	}
	if item.Category != enums.ProductCategoryPerfume {
		t.Fatalf("expected category snapshot, got %q", item.Category)
	}
	if !ordersRepo.created.Total.Equal(decimal.NewFromInt(1400)) {
		t.Fatalf("expected total 1400, got %s", ordersRepo.created.Total)
	}
	if ordersRepo.created.Status != enums.OrderStatusProcessing {
		t.Fatalf("expected initial processing status, got %s", ordersRepo.created.Status)
	}
	if ordersRepo.created.Currency != enums.CurrencyUSD {
		t.Fatalf("expected USD for us locale, got %s", ordersRepo.created.Currency)
	}
}

func TestCreateOrderFreeSampleSingularity(t *testing.T) {
	product := fixtureProduct()
	sample := fixtureSample()
	ordersRepo := &stubOrdersRepo{}
	svc, _ := newTestService(t, &stubCatalogRepo{products: []models.Product{product, sample}}, ordersRepo)

	slug := sample.Slug
	_, err := svc.CreateOrder(context.Background(), Input{
		UserID:         uuid.New(),
		Email:          "amelie@example.com",
		Address:        validAddress(),
		Locale:         "us",
		Items:          []bag.LineItem{{ProductID: product.ID, VolumeID: 50, Quantity: 2}},
		SelectedSample: &slug,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	var sampleCount int
	for _, item := range ordersRepo.createdItems {
		if item.IsFreeSample {
			sampleCount++
			if item.Quantity != 1 || !item.UnitPrice.IsZero() {
				t.Fatalf("sample must be qty 1 at zero price, got %+v", item)
			}
		}
	}
	if sampleCount != 1 {
		t.Fatalf("expected exactly one free sample, got %d", sampleCount)
	}
	// The sample never inflates the total.
	if !ordersRepo.created.Total.Equal(decimal.NewFromInt(280)) {
		t.Fatalf("expected total 280, got %s", ordersRepo.created.Total)
	}
}

func TestCreateOrderOmitsUnresolvableSample(t *testing.T) {
	product := fixtureProduct()
	ordersRepo := &stubOrdersRepo{}
	svc, _ := newTestService(t, &stubCatalogRepo{products: []models.Product{product}}, ordersRepo)

	slug := "discontinued-sample"
	_, err := svc.CreateOrder(context.Background(), Input{
		UserID:         uuid.New(),
		Email:          "amelie@example.com",
		Address:        validAddress(),
		Locale:         "us",
		Items:          []bag.LineItem{{ProductID: product.ID, VolumeID: 50, Quantity: 1}},
		SelectedSample: &slug,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	for _, item := range ordersRepo.createdItems {
		if item.IsFreeSample {
			t.Fatalf("unresolvable sample must be omitted, got %+v", item)
		}
	}
}

func TestCreateOrderAllLinesUnresolvable(t *testing.T) {
	svc, _ := newTestService(t, &stubCatalogRepo{}, &stubOrdersRepo{})

	_, err := svc.CreateOrder(context.Background(), Input{
		UserID:  uuid.New(),
		Email:   "amelie@example.com",
		Address: validAddress(),
		Locale:  "us",
		Items:   []bag.LineItem{{ProductID: uuid.New(), VolumeID: 50, Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateOrderSavesDefaultAddress(t *testing.T) {
	product := fixtureProduct()
	svc, usersRepo := newTestService(t, &stubCatalogRepo{products: []models.Product{product}}, &stubOrdersRepo{})

	_, err := svc.CreateOrder(context.Background(), Input{
		UserID:      uuid.New(),
		Email:       "amelie@example.com",
		Address:     validAddress(),
		Locale:      "fr",
		Items:       []bag.LineItem{{ProductID: product.ID, VolumeID: 50, Quantity: 1}},
		SaveAddress: true,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if usersRepo.savedAddress == nil || usersRepo.savedAddress.City != "Paris" {
		t.Fatalf("expected saved default address, got %+v", usersRepo.savedAddress)
	}
}
