package controllers

import (
	"net/http"

	"github.com/ateliersillage/sillage-backend/api/responses"
	"github.com/ateliersillage/sillage-backend/api/validators"
	"github.com/ateliersillage/sillage-backend/internal/orders"
	"github.com/ateliersillage/sillage-backend/pkg/enums"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

type assignTrackingRequest struct {
	TrackingCode string `json:"trackingCode" validate:"required"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminListOrders returns orders across all customers, optionally filtered
// by status.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := enums.OrderStatus(r.URL.Query().Get("status"))
		views, err := svc.ListAllOrders(r.Context(), status, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// AdminAcceptCancel finalizes a customer's cancellation request.
func AdminAcceptCancel(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AcceptCancel(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": string(enums.OrderStatusCancelled)})
	}
}

// AdminAcceptRefund finalizes a customer's refund request.
func AdminAcceptRefund(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AcceptRefund(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": string(enums.OrderStatusRefunded)})
	}
}

// AdminAssignTracking records a shipment tracking code. A pending order ships
// as a side effect; other states keep their status.
func AdminAssignTracking(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignTrackingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AssignTracking(r.Context(), orderID, payload.TrackingCode); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"trackingCode": payload.TrackingCode})
	}
}

// AdminSetStatus force-sets an order status, bypassing transition guards.
func AdminSetStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetStatus(r.Context(), orderID, enums.OrderStatus(payload.Status)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": payload.Status})
	}
}
