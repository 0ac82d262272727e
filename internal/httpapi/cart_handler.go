package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikshi-16/amazon/internal/cart"
	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddItemRequestDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Image        string          `json:"image,omitempty"`
	Color        string          `json:"color,omitempty"`
	Size         string          `json:"size,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CountInStock int             `json:"count_in_stock"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type SetDeliveryDateRequestDTO struct {
	Index int `json:"index"`
}

type SetPaymentMethodRequestDTO struct {
	Method string `json:"method"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	c, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", c)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "quantity must be between 1 and 99")
		return
	}
	if req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	clientID, err := h.carts.AddItem(r.Context(), userID, domain.OrderItem{
		ProductID:    req.ProductID,
		Name:         req.Name,
		Slug:         req.Slug,
		Image:        req.Image,
		Color:        req.Color,
		Size:         req.Size,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	}, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "item added to cart", map[string]string{"client_id": clientID})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	clientID := chi.URLParam(r, "client_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "quantity must be between 1 and 99")
		return
	}

	if err := h.carts.UpdateItem(r.Context(), userID, clientID, req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "cart updated", nil)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	clientID := chi.URLParam(r, "client_id")
	if err := h.carts.RemoveItem(r.Context(), userID, clientID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "item removed", nil)
}

func (h *CartHandler) SetShippingAddress(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	var req domain.ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.carts.SetShippingAddress(r.Context(), userID, req); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "shipping address set", nil)
}

func (h *CartHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	var req SetPaymentMethodRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Method == "" {
		respondError(w, http.StatusBadRequest, "method is required")
		return
	}

	if err := h.carts.SetPaymentMethod(r.Context(), userID, req.Method); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "payment method set", nil)
}

func (h *CartHandler) SetDeliveryDate(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	var req SetDeliveryDateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.carts.SetDeliveryDate(r.Context(), userID, req.Index); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "delivery date set", nil)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	if err := h.carts.Clear(r.Context(), userID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "cart cleared", nil)
}
