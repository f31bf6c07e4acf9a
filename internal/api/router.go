package api

import (
	"net/http"

	"gadme-be/internal/logger"
	"gadme-be/internal/metrics"
	"gadme-be/internal/middleware"
	"gadme-be/internal/transport"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	JWTSecret   []byte
	CORSOrigins []string
	Limiter     *middleware.RateLimiter
}

// NewRouter wires every route. Everything except /health requires an
// access token and is rate limited per user.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.Authenticate(cfg.JWTSecret))
	if cfg.Limiter != nil {
		api.Use(cfg.Limiter.Middleware)
	}

	api.HandleFunc("/metrics", Metrics).Methods(http.MethodGet)

	// Cart
	api.HandleFunc("/cart", h.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart/meta", h.GetCartMeta).Methods(http.MethodGet)
	api.HandleFunc("/cart/count", h.GetCartMeta).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.AddToCart).Methods(http.MethodPost)
	api.HandleFunc("/cart", h.ClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/{lineId}", h.SetQty).Methods(http.MethodPut)
	api.HandleFunc("/cart/{lineId}/increase", h.IncreaseQty).Methods(http.MethodPatch)
	api.HandleFunc("/cart/{lineId}/decrease", h.DecreaseQty).Methods(http.MethodPatch)
	api.HandleFunc("/cart/{lineId}", h.RemoveLine).Methods(http.MethodDelete)

	// Orders
	api.HandleFunc("/orders/cart", h.CheckoutPreview).Methods(http.MethodGet)
	api.HandleFunc("/orders", h.Checkout).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}", h.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}/payment", h.UpdatePayment).Methods(http.MethodPatch)
	api.HandleFunc("/orders/{orderId}/cancel", h.CancelOrder).Methods(http.MethodPost)

	// Address book
	api.HandleFunc("/address", h.ListAddresses).Methods(http.MethodGet)
	api.HandleFunc("/address", h.CreateAddress).Methods(http.MethodPost)
	api.HandleFunc("/address/{addressId}", h.UpdateAddress).Methods(http.MethodPatch)
	api.HandleFunc("/address/{addressId}", h.DeleteAddress).Methods(http.MethodDelete)

	var handler http.Handler = r
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = middleware.Recovery(handler)
	handler = middleware.AccessLog(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}

func Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func Metrics(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, metrics.Default.Snapshot())
}
