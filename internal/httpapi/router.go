package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the storefront routes. Cart and order routes require the
// authenticated user id; product browsing is public.
func NewRouter(
	carts *CartHandler,
	orders *OrderHandler,
	products *ProductHandler,
	logger zerolog.Logger,
	requestTimeout time.Duration,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(RequestLogger(logger))
	r.Use(AuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.ListProducts)
			r.Get("/{slug}", products.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Delete("/", carts.ClearCart)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{client_id}", carts.UpdateItem)
			r.Delete("/items/{client_id}", carts.RemoveItem)
			r.Put("/shipping-address", carts.SetShippingAddress)
			r.Put("/payment-method", carts.SetPaymentMethod)
			r.Put("/delivery-date", carts.SetDeliveryDate)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.CreateOrder)
			r.Get("/", orders.ListOrders)
			r.Get("/{id}", orders.GetOrder)
			r.Post("/{id}/paypal", orders.CreateProviderOrder)
			r.Post("/{id}/paypal/capture", orders.CapturePayment)
			r.Post("/{id}/mark-paid", orders.MarkOrderPaid)
		})
	})

	return r
}
