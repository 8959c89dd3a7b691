package orders

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ateliersillage/sillage-backend/pkg/enums"
	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
	"github.com/ateliersillage/sillage-backend/pkg/pagination"
)

var trackingCodeRe = regexp.MustCompile(`^[A-Za-z0-9-]{1,50}$`)

// Service defines the order lifecycle operations.
type Service interface {
	GetOrder(ctx context.Context, orderID uuid.UUID, requesterEmail string) (*View, error)
	ListOrders(ctx context.Context, requesterEmail string, limit int, cursor string) (*HistoryPage, error)
	ListAllOrders(ctx context.Context, status enums.OrderStatus, limit int) ([]View, error)
	RequestCancel(ctx context.Context, orderID uuid.UUID, requesterEmail string) error
	RequestRefund(ctx context.Context, orderID uuid.UUID, requesterEmail string) error
	AcceptCancel(ctx context.Context, orderID uuid.UUID) error
	AcceptRefund(ctx context.Context, orderID uuid.UUID) error
	AssignTracking(ctx context.Context, orderID uuid.UUID, code string) error
	SetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds an order lifecycle service with the required dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// loadOwned fetches an order for a customer. Missing orders and orders owned
// by someone else return the same generic error so existence never leaks.
func (s *service) loadOwned(ctx context.Context, orderID uuid.UUID, requesterEmail string) (*View, error) {
	if strings.TrimSpace(requesterEmail) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		s.logg.Error(ctx, "load order", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !strings.EqualFold(order.CustomerEmail, requesterEmail) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return toView(order), nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID, requesterEmail string) (*View, error) {
	return s.loadOwned(ctx, orderID, requesterEmail)
}

func (s *service) ListOrders(ctx context.Context, requesterEmail string, limit int, cursor string) (*HistoryPage, error) {
	if strings.TrimSpace(requesterEmail) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	cur, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit = pagination.NormalizeLimit(limit)
	orders, err := s.repo.ListByEmail(ctx, requesterEmail, limit, cur)
	if err != nil {
		s.logg.Error(ctx, "list orders", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	page := &HistoryPage{Orders: make([]View, 0, len(orders))}
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	for i := range orders {
		page.Orders = append(page.Orders, *toView(&orders[i]))
	}
	return page, nil
}

// ListAllOrders is the back-office view across all customers, optionally
// narrowed to one status.
func (s *service) ListAllOrders(ctx context.Context, status enums.OrderStatus, limit int) ([]View, error) {
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": "invalid"})
	}
	orders, err := s.repo.ListAll(ctx, status, limit)
	if err != nil {
		s.logg.Error(ctx, "list all orders", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	views := make([]View, 0, len(orders))
	for i := range orders {
		views = append(views, *toView(&orders[i]))
	}
	return views, nil
}

func (s *service) RequestCancel(ctx context.Context, orderID uuid.UUID, requesterEmail string) error {
	view, err := s.loadOwned(ctx, orderID, requesterEmail)
	if err != nil {
		return err
	}
	if view.Status != enums.OrderStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be cancelled")
	}
	return s.transition(ctx, orderID, enums.OrderStatusPending, enums.OrderStatusCancelling,
		"only pending orders can be cancelled")
}

func (s *service) RequestRefund(ctx context.Context, orderID uuid.UUID, requesterEmail string) error {
	view, err := s.loadOwned(ctx, orderID, requesterEmail)
	if err != nil {
		return err
	}
	if view.Status != enums.OrderStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can request a refund")
	}
	return s.transition(ctx, orderID, enums.OrderStatusPending, enums.OrderStatusRequested,
		"only pending orders can request a refund")
}

func (s *service) AcceptCancel(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, enums.OrderStatusCancelling, enums.OrderStatusCancelled,
		"only cancelling orders can be marked cancelled")
}

func (s *service) AcceptRefund(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, enums.OrderStatusRequested, enums.OrderStatusRefunded,
		"only refund-requested orders can be marked refunded")
}

// transition performs a guarded, conditional status flip. A lost race (zero
// rows updated) reports the same precondition error as a plain guard failure.
func (s *service) transition(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus, guardMsg string) error {
	updated, err := s.repo.UpdateStatusIf(ctx, orderID, from, to)
	if err != nil {
		s.logg.Error(ctx, "update order status", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update order status")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeStateConflict, guardMsg)
	}
	return nil
}

func (s *service) AssignTracking(ctx context.Context, orderID uuid.UUID, code string) error {
	code = strings.TrimSpace(code)
	if !trackingCodeRe.MatchString(code) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid tracking code").
			WithDetails(map[string]string{"trackingCode": "format"})
	}

	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		s.logg.Error(ctx, "load order for tracking", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update order status")
	}

	if err := s.repo.SetTrackingCode(ctx, orderID, code); err != nil {
		s.logg.Error(ctx, "set tracking code", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update order status")
	}

	// Only a pending order flips to shipped; correcting a code later leaves
	// the current status untouched.
	if _, err := s.repo.UpdateStatusIf(ctx, orderID, enums.OrderStatusPending, enums.OrderStatusShipped); err != nil {
		s.logg.Error(ctx, "flip order to shipped", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update order status")
	}
	return nil
}

func (s *service) SetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": "invalid"})
	}
	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		s.logg.Error(ctx, "load order for status override", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update order status")
	}
	if err := s.repo.SetStatus(ctx, orderID, status); err != nil {
		s.logg.Error(ctx, "override order status", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update order status")
	}
	return nil
}
