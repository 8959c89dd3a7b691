package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ateliersillage/sillage-backend/api/middleware"
	"github.com/ateliersillage/sillage-backend/api/responses"
	"github.com/ateliersillage/sillage-backend/api/validators"
	"github.com/ateliersillage/sillage-backend/internal/bag"
	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

type bagResponse struct {
	Items          []bag.LineItem         `json:"items"`
	SelectedSample *string                `json:"selectedSample"`
	TotalItems     int                    `json:"totalItems"`
	Added          *bag.AddedNotification `json:"added,omitempty"`
}

func newBagResponse(b bag.Bag) bagResponse {
	items := b.Items
	if items == nil {
		items = []bag.LineItem{}
	}
	return bagResponse{
		Items:          items,
		SelectedSample: b.SelectedSample,
		TotalItems:     b.TotalItems(),
		Added:          b.Added,
	}
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	VolumeID  int64     `json:"volumeId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

type updateItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	VolumeID  int64     `json:"volumeId" validate:"required"`
	Quantity  int       `json:"quantity"`
}

type selectSampleRequest struct {
	Slug *string `json:"slug"`
}

// An empty items list is a valid replacement: syncing a bag the shopper
// emptied on another device must clear the stored one.
type replaceBagRequest struct {
	Items          []bag.LineItem `json:"items"`
	SelectedSample *string        `json:"selectedSample"`
}

type resolveBagRequest struct {
	Items  []bag.LineItem `json:"items" validate:"required,dive"`
	Locale string         `json:"locale"`
}

// BagFetch returns the stored bag for the caller's bag session.
func BagFetch(store *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := store.Load(r.Context(), middleware.BagSessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag"))
			return
		}
		responses.WriteSuccess(w, newBagResponse(b))
	}
}

// BagAddItem merges a line into the bag and reports the clamp notification.
func BagAddItem(store *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.BagSessionFromContext(r.Context())
		b, err := store.Load(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag"))
			return
		}

		quantity := payload.Quantity
		if quantity == 0 {
			quantity = 1
		}
		b = b.AddItem(payload.ProductID, payload.VolumeID, quantity)

		if err := store.Save(r.Context(), sessionID, b); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save bag"))
			return
		}
		responses.WriteSuccess(w, newBagResponse(b))
	}
}

// BagReplace swaps the whole stored bag for the submitted lines, typically
// to sync a locally-held bag after the shopper signs in on another device.
func BagReplace(store *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload replaceBagRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.SelectedSample != nil && strings.TrimSpace(*payload.SelectedSample) == "" {
			payload.SelectedSample = nil
		}

		b := bag.FromItems(payload.Items, payload.SelectedSample)

		sessionID := middleware.BagSessionFromContext(r.Context())
		if err := store.Save(r.Context(), sessionID, b); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save bag"))
			return
		}
		responses.WriteSuccess(w, newBagResponse(b))
	}
}

// BagUpdateItem replaces a line's quantity; zero or less removes the line.
func BagUpdateItem(store *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.BagSessionFromContext(r.Context())
		b, err := store.Load(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag"))
			return
		}

		b = b.UpdateQuantity(payload.ProductID, payload.VolumeID, payload.Quantity)

		if err := store.Save(r.Context(), sessionID, b); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save bag"))
			return
		}
		responses.WriteSuccess(w, newBagResponse(b))
	}
}

// BagRemoveItem deletes one (product, volume) line.
func BagRemoveItem(store *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}
		volumeID, err := strconv.ParseInt(chi.URLParam(r, "volumeId"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid volume id"))
			return
		}

		sessionID := middleware.BagSessionFromContext(r.Context())
		b, loadErr := store.Load(r.Context(), sessionID)
		if loadErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, loadErr, "load bag"))
			return
		}

		b = b.RemoveItem(productID, volumeID)

		if err := store.Save(r.Context(), sessionID, b); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save bag"))
			return
		}
		responses.WriteSuccess(w, newBagResponse(b))
	}
}

// BagSelectSample replaces the free-sample selection; a null slug clears it.
func BagSelectSample(store *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload selectSampleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Slug != nil && strings.TrimSpace(*payload.Slug) == "" {
			payload.Slug = nil
		}

		sessionID := middleware.BagSessionFromContext(r.Context())
		b, err := store.Load(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag"))
			return
		}

		b = b.SetSelectedSample(payload.Slug)

		if err := store.Save(r.Context(), sessionID, b); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save bag"))
			return
		}
		responses.WriteSuccess(w, newBagResponse(b))
	}
}

// BagClearAdded consumes the pending "added to bag" notification.
func BagClearAdded(store *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.BagSessionFromContext(r.Context())
		b, err := store.Load(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag"))
			return
		}

		b = b.ClearAddedProduct()

		if err := store.Save(r.Context(), sessionID, b); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save bag"))
			return
		}
		responses.WriteSuccess(w, newBagResponse(b))
	}
}

// BagClear empties the stored bag.
func BagClear(store *bag.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.BagSessionFromContext(r.Context())
		if err := store.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear bag"))
			return
		}
		responses.WriteSuccess(w, newBagResponse(bag.Bag{}))
	}
}

// BagResolve joins submitted bag lines against the live catalog so the
// storefront can render names, prices, and availability.
func BagResolve(resolver *bag.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload resolveBagRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		details, err := resolver.Resolve(r.Context(), payload.Items, payload.Locale)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, details)
	}
}

// BagDetails resolves the stored bag for the caller's session.
func BagDetails(store *bag.Store, resolver *bag.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := store.Load(r.Context(), middleware.BagSessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag"))
			return
		}

		details, err := resolver.Resolve(r.Context(), b.Items, r.URL.Query().Get("locale"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"items":          details,
			"selectedSample": b.SelectedSample,
			"totalItems":     b.TotalItems(),
		})
	}
}
