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

	cancelBookingHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/get_available_slots"
	getBarberBookingsHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/get_barber_bookings"
	getBookingHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/get_user_bookings"
	listBarbersHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/list_barbers"
	listServicesHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/list_services"
	rescheduleBookingHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/WingorOsnova/BarbershopPP/internal/api/handlers/update_booking_status"
	"github.com/WingorOsnova/BarbershopPP/internal/api/middleware"
	"github.com/WingorOsnova/BarbershopPP/internal/config"
	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	bookingRepo "github.com/WingorOsnova/BarbershopPP/internal/infra/storage/booking"
	catalogRepo "github.com/WingorOsnova/BarbershopPP/internal/infra/storage/catalog"
	"github.com/WingorOsnova/BarbershopPP/internal/ratelimit"
	bookingsService "github.com/WingorOsnova/BarbershopPP/internal/service/bookings"
	catalogService "github.com/WingorOsnova/BarbershopPP/internal/service/catalog"
	createBookingUC "github.com/WingorOsnova/BarbershopPP/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/WingorOsnova/BarbershopPP/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/WingorOsnova/BarbershopPP/internal/usecase/reschedule_booking"
	"github.com/WingorOsnova/BarbershopPP/pkg/dbmetrics"
	"github.com/WingorOsnova/BarbershopPP/pkg/logger"
	"github.com/WingorOsnova/BarbershopPP/pkg/metrics"
	"github.com/WingorOsnova/BarbershopPP/pkg/simpletxmanager"
	"github.com/WingorOsnova/BarbershopPP/pkg/txmanager"
	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

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

	log.Info("Starting BarbershopPP booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Сетка слотов из конфигурации
	grid := domain.SlotGrid{
		DayStart:    types.TimeString(cfg.Booking.WorkDayStart),
		DayEnd:      types.TimeString(cfg.Booking.WorkDayEnd),
		StepMinutes: cfg.Booking.SlotStepMinutes,
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, cfg.Booking.CancelLeadTimeHours, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		txMgr,
		grid,
		cfg.Booking.PhoneCountryCode,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		grid,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		grid,
		cfg.Booking.CancelLeadTimeHours,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBarberBookings := getBarberBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	listBarbers := listBarbersHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)

	// Rate limiter для формы записи
	limiter := ratelimit.New(cfg.RateLimit.Limit, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	rateLimit := middleware.RateLimit(limiter, metricsCollector, log)
	log.Info("Rate limit: %d requests per %d seconds", cfg.RateLimit.Limit, cfg.RateLimit.WindowSeconds)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Витрина: барберы и услуги
	api.HandleFunc("/barbers", listBarbers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Свободные слоты для формы записи
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи: доступно гостям, аутентификация опциональна,
	// частота ограничена по IP
	api.Handle("/book",
		rateLimit(middleware.OptionalAuth(http.HandlerFunc(createBooking.Handle)))).
		Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Личный кабинет клиента ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Сторона барбера ---
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/barbers/{barberId}/bookings", getBarberBookings.Handle).Methods(http.MethodGet)

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
