package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikshi-16/amazon/internal/cart"
	"github.com/nikshi-16/amazon/internal/order"
	"github.com/nikshi-16/amazon/internal/payment"
	"github.com/nikshi-16/amazon/internal/pricing"
	"github.com/nikshi-16/amazon/internal/repository"
)

// Result is the uniform action envelope. Every failure is reported to the
// caller for display; nothing is fatal to the process.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, Result{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Result{Success: false, Message: message})
}

// respondDomainError maps service errors onto HTTP statuses, keeping the
// {success:false, message} envelope.
func respondDomainError(w http.ResponseWriter, err error) {
	var validationErr *order.ValidationError
	switch {
	case errors.Is(err, order.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, order.ErrMissingShippingAddress),
		errors.Is(err, payment.ErrOrderNotPriced),
		errors.Is(err, payment.ErrWrongPaymentMethod),
		errors.Is(err, pricing.ErrInvalidDeliveryIndex):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, payment.ErrOrderAccessDenied):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, payment.ErrOrderAlreadyPaid):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, payment.ErrPaymentVerification):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
