package api

import (
	"log/slog"
	"net/http"
	"time"

	"restaurant-reservations/internal/api/handler"
	mw "restaurant-reservations/internal/api/middleware"
	"restaurant-reservations/internal/config"
	"restaurant-reservations/internal/domain/customer"
	"restaurant-reservations/internal/domain/reservation"

	_ "restaurant-reservations/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func SetupRouter(customerService customer.CustomerService, reservationService reservation.ReservationService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupCustomerRoutes(router, customerService, reservationService, logger)
	setupReservationRoutes(router, customerService, reservationService, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupCustomerRoutes(router *chi.Mux, customerService customer.CustomerService, reservationService reservation.ReservationService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(customerService, logger)
	rh := handler.NewReservationHandler(reservationService, customerService, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Post("/", h.CreateCustomer)
		r.Get("/", h.ListCustomers)
		r.Get("/top-ten", h.TopCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Patch("/", h.UpdateCustomer)
			r.Get("/reservations", h.ListReservations)
			r.Post("/reservations", rh.CreateReservation)
		})
	})
}

func setupReservationRoutes(router *chi.Mux, customerService customer.CustomerService, reservationService reservation.ReservationService, logger *slog.Logger) {
	rh := handler.NewReservationHandler(reservationService, customerService, logger)

	router.Route("/reservations", func(r chi.Router) {
		r.Route("/{reservationID}", func(r chi.Router) {
			r.Get("/", rh.GetReservation)
			r.Patch("/", rh.UpdateReservation)
		})
	})
}
