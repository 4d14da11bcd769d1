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

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/fishery-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/fishery-booking/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/fishery-booking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/fishery-booking/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/fishery-booking/internal/api/handlers/get_booking_stats"
	getCurrentBookingHandler "github.com/m04kA/fishery-booking/internal/api/handlers/get_current_booking"
	getLakeHandler "github.com/m04kA/fishery-booking/internal/api/handlers/get_lake"
	getMemberBookingsHandler "github.com/m04kA/fishery-booking/internal/api/handlers/get_member_bookings"
	getOccupancyHandler "github.com/m04kA/fishery-booking/internal/api/handlers/get_occupancy"
	healthHandler "github.com/m04kA/fishery-booking/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/fishery-booking/internal/api/handlers/list_bookings"
	listLakesHandler "github.com/m04kA/fishery-booking/internal/api/handlers/list_lakes"
	sweepStatusesHandler "github.com/m04kA/fishery-booking/internal/api/handlers/sweep_statuses"
	"github.com/m04kA/fishery-booking/internal/api/middleware"
	"github.com/m04kA/fishery-booking/internal/config"
	lakeRegistry "github.com/m04kA/fishery-booking/internal/infra/registry/lake"
	bookingRepo "github.com/m04kA/fishery-booking/internal/infra/storage/booking"
	cooldownRepo "github.com/m04kA/fishery-booking/internal/infra/storage/cooldown"
	"github.com/m04kA/fishery-booking/internal/integrations/events"
	bookingsService "github.com/m04kA/fishery-booking/internal/service/bookings"
	"github.com/m04kA/fishery-booking/internal/service/projector"
	checkAvailabilityUC "github.com/m04kA/fishery-booking/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/fishery-booking/internal/usecase/create_booking"
	"github.com/m04kA/fishery-booking/internal/worker/sweeper"
	"github.com/m04kA/fishery-booking/pkg/dbmetrics"
	"github.com/m04kA/fishery-booking/pkg/locktxmanager"
	"github.com/m04kA/fishery-booking/pkg/logger"
	"github.com/m04kA/fishery-booking/pkg/metrics"
	"github.com/m04kA/fishery-booking/pkg/mq"
	"github.com/m04kA/fishery-booking/pkg/tracing"
	"github.com/m04kA/fishery-booking/pkg/txmanager"
)

// txManager общий интерфейс txmanager (postgres) и locktxmanager (memory)
type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting fishery-booking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil-коллектор допустим: все методы *metrics.Metrics его проверяют
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трейсинг
	shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Metrics.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Инициализируем хранилища (postgres или в памяти)
	var (
		bookingRepository  bookingRepo.Store
		cooldownRepository cooldownRepo.Store
		txMgr              txManager
		dbPinger           healthHandler.Pinger
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		if cfg.Metrics.Enabled {
			log.Info("Database metrics collection started")
		}

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		cooldownRepository = cooldownRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		dbPinger = wrappedDB

	case config.DriverMemory:
		bookingRepository = bookingRepo.NewMemoryStore()
		cooldownRepository = cooldownRepo.NewMemoryStore()
		txMgr = locktxmanager.New()
		log.Warn("Using in-memory storage: bookings are lost on restart")
	}

	// Шина событий
	var publisher interface {
		PublishJSON(ctx context.Context, key string, v any) error
	} = events.NoopPublisher{}

	if cfg.Events.Enabled {
		mqPublisher, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer func() {
			if err := mqPublisher.Close(); err != nil {
				log.Error("Failed to close message broker connection: %v", err)
			}
		}()
		publisher = events.NewPublisher(mqPublisher)
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}

	// Реестр озёр
	lakes, err := lakeRegistry.NewRegistry(cfg.DomainLakes())
	if err != nil {
		log.Fatal("Failed to build lake registry: %v", err)
	}
	aliases := handlers.NewLakeAliases(cfg.LakeAliases())
	log.Info("Lake registry initialized with %d lakes", len(cfg.Lakes))

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		cooldownRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	projectorSvc := projector.NewService(bookingRepository, lakes, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		cooldownRepository,
		lakes,
		txMgr,
		publisher,
		metricsCollector,
		createBookingUC.Settings{
			Cooldown:           cfg.Booking.Cooldown,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			MaxNotesLength:     cfg.Booking.MaxNotesLength,
		},
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(bookingRepository, lakes, log)

	// Фоновая синхронизация кэша статусов
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if cfg.Sweeper.Enabled {
		go sweeper.New(bookingSvc, cfg.Sweeper.Interval, log).Run(workerCtx)
	}

	// Инициализируем handlers
	health := healthHandler.NewHandler(dbPinger, log)
	listLakes := listLakesHandler.NewHandler(lakes, log)
	getLake := getLakeHandler.NewHandler(lakes, aliases, log)
	getAvailability := getAvailabilityHandler.NewHandler(checkAvailabilityUseCase, aliases, log)
	getOccupancy := getOccupancyHandler.NewHandler(projectorSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, aliases, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	adminCancelBooking := cancelBookingHandler.NewAdminHandler(bookingSvc, log)
	getMemberBookings := getMemberBookingsHandler.NewHandler(bookingSvc, log)
	getCurrentBooking := getCurrentBookingHandler.NewHandler(projectorSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	sweepStatuses := sweepStatusesHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}
	r.Use(middleware.Logging(log))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/api/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Failed to parse trusted proxies: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, trustedProxies)
		api.Use(limiter.Middleware())
		log.Info("Rate limiting enabled (%.1f rps, burst %d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Озёра
	api.HandleFunc("/lakes", listLakes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lakes/{lakeId}", getLake.Handle).Methods(http.MethodGet)

	// Свободные места на озере: ?date= или ?from=&to=
	api.HandleFunc("/lakes/{lakeId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Занятость всех озёр на дату
	api.HandleFunc("/availability", getOccupancy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Member-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История и текущее бронирование участника
	protected.HandleFunc("/members/{memberId}/bookings", getMemberBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/members/{memberId}/current-booking", getCurrentBooking.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Права администратора проверяются снаружи (gateway)
	admin := protected.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", adminCancelBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/sweep", sweepStatuses.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркеры и сбор метрик connection pool
	stopWorkers()
	close(stopMetricsCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
