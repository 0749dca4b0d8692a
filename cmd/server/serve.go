package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/dedupe"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/events"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/handlers"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/metrics"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/middleware"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/notify"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	log.Info("starting restaurant api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("loading catalog...", "source", cfg.Catalog.Path)
	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	// Initialize repositories
	dishRepo := repository.NewInMemoryDishRepository(cat)
	packageRepo := repository.NewInMemoryPackageRepository(events.DefaultPackages())
	metrics.CatalogDishes.Set(float64(dishRepo.Count()))
	log.Info("catalog loaded successfully", "dishes", dishRepo.Count())

	emailCfg := notify.EmailJSConfig{
		Endpoint:   cfg.Email.Endpoint,
		ServiceID:  cfg.Email.ServiceID,
		TemplateID: cfg.Email.TemplateID,
		PublicKey:  cfg.Email.PublicKey,
		PrivateKey: cfg.Email.PrivateKey,
		Timeout:    cfg.Email.Timeout,
	}
	if !emailCfg.Configured() {
		log.Warn("email delivery is not configured, form submissions will fail")
	}
	sender := notify.NewEmailJSSender(emailCfg)
	defer sender.Close()

	guard := dedupe.NewGuard(cfg.Dedupe.Window, cfg.Dedupe.Capacity)

	// Initialize services
	menuService := service.NewMenuService(dishRepo)
	eventService := service.NewEventService(packageRepo, events.NewCalculator(cfg.Events.PerGuestSurcharge))
	inquiryService := service.NewInquiryService(sender, guard, eventService, service.InquiryRules{
		BookingAdvanceDays: cfg.Booking.AdvanceDays,
		BookingMaxGuests:   cfg.Booking.MaxGuests,
		EventMinGuests:     cfg.Events.MinGuests,
		EventMaxGuests:     cfg.Events.MaxGuests,
	}, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(dishRepo, log)
	menuHandler := handlers.NewMenuHandler(menuService, log)
	eventsHandler := handlers.NewEventsHandler(eventService, log)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService, cfg.Restaurant.Phone, log)
	adminHandler := handlers.NewAdminHandler(dishRepo, guard, log)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, 10*time.Minute)
	defer limiter.Stop()

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "api_key"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Menu endpoints
		r.Get("/menu", menuHandler.ListDishes)
		r.Get("/menu/categories", menuHandler.ListCategories)
		r.Get("/menu/popular", menuHandler.PopularHighlights)
		r.Get("/menu/specials", menuHandler.ChefsSpecials)
		r.Get("/menu/{dishId}", menuHandler.GetDish)

		// Event endpoints
		r.Get("/events/packages", eventsHandler.ListPackages)
		r.Get("/events/quote", eventsHandler.Quote)

		// Forms
		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)
			r.Post("/booking", inquiryHandler.CreateBooking)
			r.Post("/events/inquiry", inquiryHandler.CreateEventInquiry)
			r.Post("/contact", inquiryHandler.CreateContact)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Get("/stats", adminHandler.GetStats)
		})
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
