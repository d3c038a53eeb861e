package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cuplet/cuplet-go/internal/middleware"
	"github.com/cuplet/cuplet-go/internal/service"
)

// NewRouter wires every route. Record routes are served under /records and,
// for older clients, /coupons.
func NewRouter(auth *service.AuthService, coupons *service.CouponService, jwtSecret string) http.Handler {
	authHandler := NewAuthHandler(auth)
	couponHandler := NewCouponHandler(coupons)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/register", authHandler.HandleRegister)
	r.Post("/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))
		r.Get("/auth/me", authHandler.HandleMe)

		records := func(r chi.Router) {
			r.Get("/", couponHandler.HandleListCoupons)
			r.Post("/", couponHandler.HandleCreateCoupon)
			r.Patch("/{id}", couponHandler.HandleUpdateCoupon)
			r.Delete("/{id}", couponHandler.HandleDeleteCoupon)
		}
		r.Route("/records", records)
		r.Route("/coupons", records)
	})

	return r
}
