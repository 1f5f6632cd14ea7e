package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the checkout endpoints onto a chi router. Scanners
// and displays live on other origins, so CORS is open.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/update-cart", handler.UpdateCart)
	r.Post("/remove-item", handler.RemoveItem)
	r.Get("/cart", handler.GetCart)
	r.Get("/generate-bill", handler.GenerateBill)
	r.Post("/create-order", handler.CreateOrder)
	r.Post("/verify-payment", handler.VerifyPayment)
	r.Get("/ws", handler.ServeWS)

	return r
}
