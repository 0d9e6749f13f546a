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

	cancelBookingHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/get_availability"
	getAvailableTimesHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/get_available_times"
	getBookingHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/get_booking"
	getCancellationReasonsHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/get_cancellation_reasons"
	getClientBookingsHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/get_client_bookings"
	getDayOccupancyHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/get_day_occupancy"
	getNextAvailableTimeHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/get_next_available_time"
	getPointBookingsHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/get_point_bookings"
	rescheduleBookingHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers/update_schedule"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/middleware"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/config"
	bookingRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/booking"
	cancelReasonRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/cancelreason"
	postRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/post"
	scheduleRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/schedule"
	servicePointRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/servicepoint"
	aggregatorClient "github.com/dmarkin/TirePoint-SchedulingService/internal/integrations/metricsaggregator"
	availabilityService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
	bookingsService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/bookings"
	postsService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/posts"
	scheduleService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/schedule"
	createBookingUC "github.com/dmarkin/TirePoint-SchedulingService/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/dmarkin/TirePoint-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/dbmetrics"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/logger"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/metrics"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/simpletxmanager"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/txmanager"
)

// realTime провайдер текущего времени для сервисов
type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

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

	log.Info("Starting TirePoint-SchedulingService...")
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

	// Клиент агрегатора метрик сервисных точек
	aggregator := aggregatorClient.NewClient(
		cfg.MetricsAggregator.URL,
		time.Duration(cfg.MetricsAggregator.Timeout)*time.Second,
		log,
	)
	log.Info("Metrics aggregator client initialized (url=%s timeout=%ds)",
		cfg.MetricsAggregator.URL, cfg.MetricsAggregator.Timeout)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		servicePointRepository *servicePointRepo.Repository
		postRepository         *postRepo.Repository
		cancelReasonRepository *cancelReasonRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		servicePointRepository = servicePointRepo.NewRepository(wrappedDB)
		postRepository = postRepo.NewRepository(wrappedDB)
		cancelReasonRepository = cancelReasonRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		servicePointRepository = servicePointRepo.NewRepository(db)
		postRepository = postRepo.NewRepository(db)
		cancelReasonRepository = cancelReasonRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, servicePointRepository, log)
	postsSvc := postsService.NewService(postRepository, servicePointRepository, log)
	availabilitySvc := availabilityService.NewCalculator(scheduleSvc, postsSvc, bookingRepository, log)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		cancelReasonRepository,
		aggregator,
		realTime{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		postsSvc,
		aggregator,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		aggregator,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(availabilitySvc, log)
	getNextAvailableTime := getNextAvailableTimeHandler.NewHandler(availabilitySvc, log)
	getDayOccupancy := getDayOccupancyHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingsSvc, log)
	getPointBookings := getPointBookingsHandler.NewHandler(bookingsSvc, log)
	getCancellationReasons := getCancellationReasonsHandler.NewHandler(bookingsSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность конкретного момента времени
	api.HandleFunc("/service-points/{pointId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Сетка слотов на дату
	api.HandleFunc("/service-points/{pointId}/available-times",
		getAvailableTimes.Handle).Methods(http.MethodGet)

	// Ближайший доступный слот
	api.HandleFunc("/service-points/{pointId}/next-available-time",
		getNextAvailableTime.Handle).Methods(http.MethodGet)

	// Недельное расписание точки
	api.HandleFunc("/service-points/{pointId}/schedule",
		updateSchedule.HandleGetWeek).Methods(http.MethodGet)

	// Справочник причин отмены
	api.HandleFunc("/cancellation-reasons",
		getCancellationReasons.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (идентификация через X-Client-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Управление сервисной точкой (для партнеров) ---
	protected.HandleFunc("/service-points/{pointId}/bookings", getPointBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/service-points/{pointId}/occupancy", getDayOccupancy.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/service-points/{pointId}/schedule/templates",
		updateSchedule.HandleSetTemplate).Methods(http.MethodPut)
	protected.HandleFunc("/service-points/{pointId}/schedule/exceptions",
		updateSchedule.HandleSetException).Methods(http.MethodPut)
	protected.HandleFunc("/service-points/{pointId}/schedule/exceptions",
		updateSchedule.HandleDeleteException).Methods(http.MethodDelete)

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
