package routes

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/ateliersillage/sillage-backend/internal/bag"
	"github.com/ateliersillage/sillage-backend/internal/catalog"
	checkoutsvc "github.com/ateliersillage/sillage-backend/internal/checkout"
	"github.com/ateliersillage/sillage-backend/internal/orders"
	pkgAuth "github.com/ateliersillage/sillage-backend/pkg/auth"
	"github.com/ateliersillage/sillage-backend/pkg/auth/session"
	"github.com/ateliersillage/sillage-backend/pkg/config"
	"github.com/ateliersillage/sillage-backend/pkg/enums"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListProducts(ctx context.Context, input catalog.ListInput) ([]catalog.ProductSummary, error) {
	return []catalog.ProductSummary{}, nil
}

func (stubCatalogService) GetProductBySlug(ctx context.Context, slug, uiLocale string) (*catalog.ProductDetail, error) {
	return &catalog.ProductDetail{}, nil
}

func (stubCatalogService) GetCollectionBySlug(ctx context.Context, slug, uiLocale string) (*catalog.CollectionDetail, error) {
	return &catalog.CollectionDetail{Slug: slug}, nil
}

func (stubCatalogService) AvailableSamples(ctx context.Context, uiLocale string) ([]catalog.SampleOption, error) {
	return []catalog.SampleOption{}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) CreateOrder(ctx context.Context, input checkoutsvc.Input) (*checkoutsvc.Result, error) {
	return &checkoutsvc.Result{OrderID: uuid.New(), OrderNumber: "SO-100001"}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) GetOrder(ctx context.Context, orderID uuid.UUID, requesterEmail string) (*orders.View, error) {
	return &orders.View{ID: orderID}, nil
}

func (stubOrdersService) ListOrders(ctx context.Context, requesterEmail string, limit int, cursor string) (*orders.HistoryPage, error) {
	return &orders.HistoryPage{Orders: []orders.View{}}, nil
}

func (stubOrdersService) ListAllOrders(ctx context.Context, status enums.OrderStatus, limit int) ([]orders.View, error) {
	return []orders.View{}, nil
}

func (stubOrdersService) RequestCancel(ctx context.Context, orderID uuid.UUID, requesterEmail string) error {
	return nil
}

func (stubOrdersService) RequestRefund(ctx context.Context, orderID uuid.UUID, requesterEmail string) error {
	return nil
}

func (stubOrdersService) AcceptCancel(ctx context.Context, orderID uuid.UUID) error { return nil }

func (stubOrdersService) AcceptRefund(ctx context.Context, orderID uuid.UUID) error { return nil }

func (stubOrdersService) AssignTracking(ctx context.Context, orderID uuid.UUID, code string) error {
	return nil
}

func (stubOrdersService) SetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	return nil
}

type memoryBagStore struct {
	blobs map[string]string
}

func (m *memoryBagStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if m.blobs == nil {
		m.blobs = map[string]string{}
	}
	if s, ok := value.(string); ok {
		m.blobs[key] = s
	}
	return nil
}

func (m *memoryBagStore) Get(ctx context.Context, key string) (string, error) {
	if v, ok := m.blobs[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (m *memoryBagStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.blobs, key)
	}
	return nil
}

func (m *memoryBagStore) BagKey(sessionID string) string {
	return "slg:bag:" + sessionID
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
		Checkout: config.CheckoutConfig{IdempotencyTTL: 24 * time.Hour},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	bagStore, err := bag.NewStore(&memoryBagStore{}, logg, time.Hour)
	if err != nil {
		t.Fatalf("bag store: %v", err)
	}

	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		Sessions: stubSessionChecker{},
		Catalog:  stubCatalogService{},
		BagStore: bagStore,
		Checkout: stubCheckoutService{},
		Orders:   stubOrdersService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCatalogIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?locale=fr", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public catalog got %d", resp.Code)
	}
}

func TestBagIssuesSessionHeader(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bag/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for bag fetch got %d", resp.Code)
	}
	if resp.Header().Get("X-Bag-Session") == "" {
		t.Fatal("expected a bag session header to be issued")
	}
}

func TestBagSessionHeaderRoundTrips(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bag/", nil)
	req.Header.Set("X-Bag-Session", "existing-session")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if got := resp.Header().Get("X-Bag-Session"); got != "existing-session" {
		t.Fatalf("expected session to round-trip, got %q", got)
	}
}

func TestBagReplaceAcceptsEmptyItems(t *testing.T) {
	router := newTestRouter(t, testConfig())

	add := httptest.NewRequest(http.MethodPost, "/api/v1/bag/items", bytes.NewBufferString(
		`{"productId":"`+uuid.NewString()+`","volumeId":50,"quantity":2}`))
	add.Header.Set("Content-Type", "application/json")
	add.Header.Set("X-Bag-Session", "sync-session")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 adding item got %d", resp.Code)
	}

	// A bag emptied on another device syncs as an empty list.
	replace := httptest.NewRequest(http.MethodPut, "/api/v1/bag/", bytes.NewBufferString(`{"items":[]}`))
	replace.Header.Set("Content-Type", "application/json")
	replace.Header.Set("X-Bag-Session", "sync-session")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, replace)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 replacing with empty bag got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"items":[]`) {
		t.Fatalf("expected emptied bag in response, got %s", resp.Body.String())
	}
}

func TestOrdersRequireAuthentication(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestOrdersSucceedWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestAdminOrdersRequireAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	target := "/api/admin/v1/orders/" + uuid.NewString() + "/accept-cancel"

	customer := httptest.NewRequest(http.MethodPost, target, nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodPost, target, nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestCheckoutRequiresIdempotencyKey(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	body := bytes.NewBufferString(`{"items":[],"address":{"recipientName":"A","addressLine1":"1","city":"C","postalCode":"P","country":"FR"},"locale":"fr"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d", resp.Code)
	}
}
