package server

import (
	"net/http"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/config"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// Handlers bundles every route group the router mounts.
type Handlers struct {
	Health        handler.HealthHandler
	Home          handler.HomeHandler
	Auth          handler.AuthHandler
	Menu          handler.MenuHandler
	MenuAdmin     handler.MenuAdminHandler
	Orders        handler.OrderHandler
	OrdersAdmin   handler.OrderAdminHandler
	Loyalty       handler.LoyaltyHandler
	LoyaltyAdmin  handler.LoyaltyAdminHandler
	Bookings      handler.BookingHandler
	BookingsAdmin handler.BookingAdminHandler
	Facilities    handler.FacilityHandler
	FacilityAdmin handler.FacilityAdminHandler
	SettingsAdmin handler.SettingsAdminHandler
	Members       handler.MemberAdminHandler
	Dashboard     handler.DashboardHandler
	Notifications handler.NotificationHandler
}

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config, logger *slog.Logger, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	// Public surface: store status, menu, facility board, auth.
	h.Health.RegisterRoutes(r)
	h.Home.RegisterRoutes(r)
	h.Auth.RegisterRoutes(r)
	h.Menu.RegisterRoutes(r)
	h.Facilities.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// member-level (member/admin)
		pr.Group(func(mr chi.Router) {
			mr.Use(RequireRole(domain.RoleMember, domain.RoleAdmin))
			h.Auth.RegisterProtectedRoutes(mr)
			h.Orders.RegisterRoutes(mr)
			h.Loyalty.RegisterRoutes(mr)
			h.Bookings.RegisterRoutes(mr)
			h.Notifications.RegisterRoutes(mr)
		})
		// admin-level
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			h.MenuAdmin.RegisterRoutes(ar)
			h.OrdersAdmin.RegisterRoutes(ar)
			h.LoyaltyAdmin.RegisterRoutes(ar)
			h.BookingsAdmin.RegisterRoutes(ar)
			h.FacilityAdmin.RegisterRoutes(ar)
			h.SettingsAdmin.RegisterRoutes(ar)
			h.Members.RegisterRoutes(ar)
			h.Dashboard.RegisterRoutes(ar)
		})
	})

	return r
}
