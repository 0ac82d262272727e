package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikshi-16/amazon/internal/cart"
	"github.com/nikshi-16/amazon/internal/order"
	"github.com/nikshi-16/amazon/internal/payment"
	"github.com/rs/zerolog"
)

type OrderHandler struct {
	orders   *order.Service
	carts    *cart.Service
	payments *payment.Service
	logger   zerolog.Logger
}

func NewOrderHandler(orders *order.Service, carts *cart.Service, payments *payment.Service, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		carts:    carts,
		payments: payments,
		logger:   logger,
	}
}

type CaptureRequestDTO struct {
	ProviderOrderID string `json:"provider_order_id"`
}

// CreateOrder turns the user's stored cart into a persisted unpaid order and
// clears the cart.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	c, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	orderID, err := h.orders.CreateOrder(r.Context(), userID, c)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.carts.Clear(r.Context(), userID); err != nil {
		// the order exists; a stale cart is the lesser problem
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to clear cart after checkout")
	}

	respondSuccess(w, http.StatusCreated, "Order placed successfully", map[string]string{"order_id": orderID})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if o.UserID != userID {
		respondError(w, http.StatusForbidden, "order belongs to another user")
		return
	}
	respondSuccess(w, http.StatusOK, "", o)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	orders, err := h.orders.ListUserOrders(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", orders)
}

// CreateProviderOrder is payment phase 1.
func (h *OrderHandler) CreateProviderOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	providerOrderID, err := h.payments.CreateProviderOrder(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "PayPal order created successfully", providerOrderID)
}

// CapturePayment is payment phase 2.
func (h *OrderHandler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	var req CaptureRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProviderOrderID == "" {
		respondError(w, http.StatusBadRequest, "provider_order_id is required")
		return
	}

	if err := h.payments.ApprovePayment(r.Context(), userID, chi.URLParam(r, "id"), req.ProviderOrderID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Your order has been successfully paid by PayPal", nil)
}

// MarkOrderPaid handles methods without a provider round trip.
func (h *OrderHandler) MarkOrderPaid(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	if err := h.payments.MarkOrderPaid(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Order marked as paid", nil)
}
