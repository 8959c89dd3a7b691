package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ateliersillage/sillage-backend/api/middleware"
	"github.com/ateliersillage/sillage-backend/api/responses"
	"github.com/ateliersillage/sillage-backend/api/validators"
	"github.com/ateliersillage/sillage-backend/internal/bag"
	checkoutsvc "github.com/ateliersillage/sillage-backend/internal/checkout"
	"github.com/ateliersillage/sillage-backend/pkg/enums"
	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

type checkoutRequest struct {
	Items          []bag.LineItem       `json:"items"`
	SelectedSample *string              `json:"selectedSample"`
	Address        checkoutsvc.Address  `json:"address"`
	Locale         string               `json:"locale"`
	PaymentMethod  *enums.PaymentMethod `json:"paymentMethod"`
	SaveAddress    bool                 `json:"saveAddress"`
}

// Checkout submits the shopper's bag as an order. Lines may arrive in the
// body; when absent the server-held bag for the session is used. The stored
// bag is cleared only after the order is committed.
func Checkout(svc checkoutsvc.Service, bagStore *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.BagSessionFromContext(r.Context())
		items := payload.Items
		selectedSample := payload.SelectedSample
		if len(items) == 0 && bagStore != nil && sessionID != "" {
			stored, err := bagStore.Load(r.Context(), sessionID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag"))
				return
			}
			items = stored.Items
			if selectedSample == nil {
				selectedSample = stored.SelectedSample
			}
		}

		userID, _ := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		input := checkoutsvc.Input{
			UserID:         userID,
			Email:          middleware.UserEmailFromContext(r.Context()),
			Items:          items,
			SelectedSample: selectedSample,
			Address:        payload.Address,
			Locale:         payload.Locale,
			SaveAddress:    payload.SaveAddress,
		}
		if payload.PaymentMethod != nil {
			input.PaymentMethod = *payload.PaymentMethod
		}

		result, err := svc.CreateOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if bagStore != nil && sessionID != "" {
			if err := bagStore.Clear(r.Context(), sessionID); err != nil && logg != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "clear bag after checkout")
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
