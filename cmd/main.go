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

	checkAvailabilityHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_booking"
	getBookingConflictsHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_booking_conflicts"
	getCalendarHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_calendar"
	getCateringHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_catering"
	getMenuHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_menu"
	getPackagesHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_packages"
	listBookingsHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/list_bookings"
	selectPackageHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/select_package"
	toggleDishHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/toggle_dish"
	transitionBookingHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/transition_booking"
	updateBookingHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/config"
	"github.com/m04kA/SMC-VenueBooking/internal/core/interval"
	bookingRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/booking"
	cateringRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/catering"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/storage/migrations"
	accountServiceClient "github.com/m04kA/SMC-VenueBooking/internal/integrations/accountservice"
	"github.com/m04kA/SMC-VenueBooking/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-VenueBooking/internal/service/bookings"
	cateringService "github.com/m04kA/SMC-VenueBooking/internal/service/catering"
	checkAvailabilityUC "github.com/m04kA/SMC-VenueBooking/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-VenueBooking/internal/usecase/create_booking"
	transitionBookingUC "github.com/m04kA/SMC-VenueBooking/internal/usecase/transition_booking"
	updateBookingUC "github.com/m04kA/SMC-VenueBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/metrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/txmanager"
	"github.com/m04kA/SMC-VenueBooking/pkg/tz"
)

// domainMetrics доменные счетчики (Prometheus или заглушка)
type domainMetrics interface {
	RecordConflicts(venue, operation string, n int)
	RecordTransition(from, to, outcome string)
	RecordDishToggle(outcome string)
}

// eventPublisher издатель событий (Kafka или заглушка)
type eventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-VenueBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		recorder         domainMetrics = metrics.Nop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		recorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка с метриками; без коллектора запросы просто проксируются
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Правила вычисления интервалов
	loc := tz.Fixed(cfg.Booking.ReferenceUTCOffsetHours)
	deriver := interval.NewDeriver(
		loc,
		time.Duration(cfg.Booking.BaseDurationHours)*time.Hour,
		cfg.Booking.MaxAdditionalHours,
	)
	log.Info("Reference timezone %s, base duration %dh, max additional hours %d",
		loc, cfg.Booking.BaseDurationHours, cfg.Booking.MaxAdditionalHours)

	// Инициализируем интеграционных клиентов
	accountClient := accountServiceClient.NewClient(
		cfg.Accounts.URL,
		time.Duration(cfg.Accounts.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (AccountService=%s timeout=%ds)",
		cfg.Accounts.URL, cfg.Accounts.Timeout)

	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(
			cfg.Events.Brokers,
			cfg.Events.Topic,
			time.Duration(cfg.Events.WriteTimeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize event publisher: %v", err)
		}
		publisher = kafkaPublisher
		log.Info("Publishing booking events to topic=%s brokers=%v", cfg.Events.Topic, cfg.Events.Brokers)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, deriver)
	cateringRepository := cateringRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		accountClient,
		publisher,
		txMgr,
		log,
	)
	cateringSvc := cateringService.NewService(
		bookingRepository,
		cateringRepository,
		txMgr,
		recorder,
		cfg.Catering.DefaultMaxDishes,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		cateringRepository,
		publisher,
		recorder,
		txMgr,
		deriver,
		createBookingUC.Policy{
			MinLeadDays:     cfg.Booking.MinLeadDays,
			BlockOnConflict: cfg.Booking.BlockCreationOnConflict,
		},
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		bookingRepository,
		publisher,
		recorder,
		txMgr,
		transitionBookingUC.Policy{BlockApprovalOnConflict: cfg.Booking.BlockApprovalOnConflict},
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		publisher,
		recorder,
		txMgr,
		deriver,
		updateBookingUC.Policy{
			MinLeadDays:          cfg.Booking.MinLeadDays,
			BlockOnConflict:      cfg.Booking.BlockCreationOnConflict,
			BlockApprovedOverlap: cfg.Booking.BlockApprovalOnConflict,
		},
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		recorder,
		deriver,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getMenu := getMenuHandler.NewHandler(cateringSvc, log)
	getPackages := getPackagesHandler.NewHandler(cateringSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(bookingSvc, log)
	getBookingConflicts := getBookingConflictsHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getCatering := getCateringHandler.NewHandler(cateringSvc, log)
	selectPackage := selectPackageHandler.NewHandler(cateringSvc, log)
	toggleDish := toggleDishHandler.NewHandler(cateringSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/catering/menu", getMenu.Handle).Methods(http.MethodGet)
	api.HandleFunc("/catering/packages", getPackages.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/conflicts", getBookingConflicts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", transitionBooking.Handle).Methods(http.MethodPatch)

	// --- Календарь ---
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// --- Кейтеринг ---
	protected.HandleFunc("/bookings/{bookingId}/catering", getCatering.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/catering/package", selectPackage.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/catering/dishes/{dishId}/toggle", toggleDish.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
