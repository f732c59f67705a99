package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/create_booking"
	createSlotHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/create_slot"
	getAvailableSlotsHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/list_bookings"
	stationSlotsHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/station_slots"
	updateBookingHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/update_booking"
	updateSlotHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/update_slot"
	updateSlotAvailabilityHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/update_slot_availability"
	validateBookingHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/validate_booking"
	validateQRHandler "github.com/evcsm/EVCS-BookingService/internal/api/handlers/validate_qr"
	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	"github.com/evcsm/EVCS-BookingService/internal/auth"
	"github.com/evcsm/EVCS-BookingService/internal/config"
	"github.com/evcsm/EVCS-BookingService/internal/domain"
	slotsCache "github.com/evcsm/EVCS-BookingService/internal/infra/cache/slots"
	bookingRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/booking"
	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
	bookingsService "github.com/evcsm/EVCS-BookingService/internal/service/bookings"
	"github.com/evcsm/EVCS-BookingService/internal/service/qrcode"
	slotsService "github.com/evcsm/EVCS-BookingService/internal/service/slots"
	createBookingUC "github.com/evcsm/EVCS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/evcsm/EVCS-BookingService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/evcsm/EVCS-BookingService/internal/usecase/update_booking"
	validateQRUC "github.com/evcsm/EVCS-BookingService/internal/usecase/validate_qr"
	"github.com/evcsm/EVCS-BookingService/pkg/dbmetrics"
	"github.com/evcsm/EVCS-BookingService/pkg/logger"
	"github.com/evcsm/EVCS-BookingService/pkg/metrics"
	"github.com/evcsm/EVCS-BookingService/pkg/simpletxmanager"
	"github.com/evcsm/EVCS-BookingService/pkg/txmanager"
)

// TxManager is the transaction surface the use cases need.
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsCache is satisfied by both the Redis cache and the noop fallback.
type SlotsCache interface {
	Get(ctx context.Context, stationID string, start, end time.Time) ([]*domain.Slot, error)
	Set(ctx context.Context, stationID string, start, end time.Time, slots []*domain.Slot) error
	InvalidateStation(ctx context.Context, stationID string) error
}

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting EVCS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Availability cache, optional: an empty redis.addr runs without it
	var cache SlotsCache = slotsCache.Noop{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()

		cache = slotsCache.NewCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info("Slot availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	} else {
		log.Info("Slot availability cache disabled")
	}

	// Repositories and transaction manager, instrumented when metrics are on
	var (
		bookingRepository *bookingRepo.Repository
		stationRepository *stationRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		stationRepository = stationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		stationRepository = stationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	qrService := qrcode.NewService()

	// Services
	bookingSvc := bookingsService.NewService(bookingRepository, stationRepository, cache, log)
	slotSvc := slotsService.NewService(stationRepository, cache, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		stationRepository,
		cache,
		qrService,
		txMgr,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(bookingRepository, stationRepository, cache, txMgr, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(stationRepository, bookingRepository, cache, log)
	validateQRUseCase := validateQRUC.NewUseCase(bookingRepository, qrService, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateQR := validateQRHandler.NewHandler(validateQRUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(createBookingUseCase, log)
	stationSlots := stationSlotsHandler.NewHandler(slotSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	updateSlotAvailability := updateSlotAvailabilityHandler.NewHandler(slotSvc, log)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)
	authMW := middleware.NewAuth(verifier, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Every business route requires a bearer token
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMW.Middleware)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		protected.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	backoffice := middleware.RequireRole(domain.RoleBackoffice)
	backofficeOrOwner := middleware.RequireRole(domain.RoleBackoffice, domain.RoleEVOwner)
	backofficeOrOperator := middleware.RequireRole(domain.RoleBackoffice, domain.RoleStationOperator)
	operatorOnly := middleware.RequireRole(domain.RoleStationOperator)

	// Bookings. Literal paths under /bookings are registered before the
	// {bookingId} routes.
	protected.Handle("/bookings/available-slots",
		http.HandlerFunc(getAvailableSlots.Handle)).Methods(http.MethodGet)
	protected.Handle("/bookings/validateQR",
		operatorOnly(http.HandlerFunc(validateQR.Handle))).Methods(http.MethodPost)
	protected.Handle("/bookings/validate",
		backofficeOrOwner(http.HandlerFunc(validateBooking.Handle))).Methods(http.MethodPost)
	protected.Handle("/bookings",
		backofficeOrOwner(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	protected.Handle("/bookings",
		http.HandlerFunc(listBookings.Handle)).Methods(http.MethodGet)
	protected.Handle("/bookings/{bookingId}",
		http.HandlerFunc(getBooking.Handle)).Methods(http.MethodGet)
	protected.Handle("/bookings/{bookingId}",
		backofficeOrOwner(http.HandlerFunc(updateBooking.Handle))).Methods(http.MethodPut)
	protected.Handle("/bookings/{bookingId}/cancel",
		backofficeOrOwner(http.HandlerFunc(cancelBooking.Handle))).Methods(http.MethodPost)

	// Slot inventory
	protected.Handle("/stations/{stationId}/slots",
		http.HandlerFunc(stationSlots.Handle)).Methods(http.MethodGet)
	protected.Handle("/slots",
		backoffice(http.HandlerFunc(createSlot.Handle))).Methods(http.MethodPost)
	protected.Handle("/slots/{slotId}",
		backoffice(http.HandlerFunc(updateSlot.Handle))).Methods(http.MethodPut)
	protected.Handle("/slots/{slotId}/availability",
		backofficeOrOperator(http.HandlerFunc(updateSlotAvailability.Handle))).Methods(http.MethodPatch)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
