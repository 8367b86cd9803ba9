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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/turnosapp/booking-service/internal/api/handlers/cancel_booking"
	cancelGroupHandler "github.com/turnosapp/booking-service/internal/api/handlers/cancel_group"
	createBookingHandler "github.com/turnosapp/booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/turnosapp/booking-service/internal/api/handlers/get_available_slots"
	getBarberBookingsHandler "github.com/turnosapp/booking-service/internal/api/handlers/get_barber_bookings"
	getBarberEarningsHandler "github.com/turnosapp/booking-service/internal/api/handlers/get_barber_earnings"
	getBookingHandler "github.com/turnosapp/booking-service/internal/api/handlers/get_booking"
	manageBlocksHandler "github.com/turnosapp/booking-service/internal/api/handlers/manage_blocks"
	manageExceptionalDaysHandler "github.com/turnosapp/booking-service/internal/api/handlers/manage_exceptional_days"
	paymentWebhookHandler "github.com/turnosapp/booking-service/internal/api/handlers/payment_webhook"
	"github.com/turnosapp/booking-service/internal/api/middleware"
	"github.com/turnosapp/booking-service/internal/config"
	bookingRepo "github.com/turnosapp/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
	mercadopagoClient "github.com/turnosapp/booking-service/internal/integrations/mercadopago"
	notifyClient "github.com/turnosapp/booking-service/internal/integrations/notify"
	bookingsService "github.com/turnosapp/booking-service/internal/service/bookings"
	payoutsService "github.com/turnosapp/booking-service/internal/service/payouts"
	scheduleService "github.com/turnosapp/booking-service/internal/service/schedule"
	createBookingUC "github.com/turnosapp/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/turnosapp/booking-service/internal/usecase/get_available_slots"
	processPaymentEventUC "github.com/turnosapp/booking-service/internal/usecase/process_payment_event"
	"github.com/turnosapp/booking-service/internal/worker"
	"github.com/turnosapp/booking-service/pkg/dbmetrics"
	"github.com/turnosapp/booking-service/pkg/logger"
	"github.com/turnosapp/booking-service/pkg/metrics"
	"github.com/turnosapp/booking-service/pkg/simpletxmanager"
	"github.com/turnosapp/booking-service/pkg/txmanager"
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

	log.Info("Starting turnos booking-service...")

	// Инициализируем метрики. Регистрируем их всегда: бизнес-счетчики
	// дешевые, а cfg.Metrics.Enabled управляет только HTTP middleware,
	// оберткой БД и публикацией /metrics
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
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

	// Применяем миграции
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)

	// Инициализируем интеграционных клиентов
	mpClient := mercadopagoClient.NewClient(
		cfg.MercadoPago.BaseURL,
		cfg.MercadoPago.AccessToken,
		cfg.MercadoPago.WebhookSecret,
		time.Duration(cfg.MercadoPago.Timeout)*time.Second,
		log,
	)
	notifier := notifyClient.NewClient(
		cfg.Notify.URL,
		time.Duration(cfg.Notify.Timeout)*time.Second,
		cfg.Notify.Enabled,
		log,
	)
	log.Info("Integration clients initialized (MercadoPago=%s timeout=%ds, Notify enabled=%t)",
		cfg.MercadoPago.BaseURL, cfg.MercadoPago.Timeout, cfg.Notify.Enabled)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	holdWindow := time.Duration(cfg.Booking.HoldWindowMinutes) * time.Minute

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		txMgr,
		bookingsService.RealTimeProvider{},
		holdWindow,
		log,
	)
	payoutSvc := payoutsService.NewService(bookingRepository, scheduleRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleSvc,
		scheduleRepository,
		bookingRepository,
		cfg.Booking.SlotGridMinutes,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		scheduleSvc,
		scheduleRepository,
		bookingRepository,
		mpClient,
		notifier,
		txMgr,
		cfg.Booking.SlotGridMinutes,
		holdWindow,
		log,
	)
	processPaymentEventUseCase := processPaymentEventUC.NewUseCase(
		mpClient,
		bookingSvc,
		notifier,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(processPaymentEventUseCase, metricsCollector, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, metricsCollector, log)
	cancelGroup := cancelGroupHandler.NewHandler(bookingSvc, metricsCollector, log)
	getBarberBookings := getBarberBookingsHandler.NewHandler(bookingSvc, log)
	manageExceptionalDays := manageExceptionalDaysHandler.NewHandler(scheduleSvc, log)
	manageBlocks := manageBlocksHandler.NewHandler(bookingSvc, log)
	getBarberEarnings := getBarberEarningsHandler.NewHandler(payoutSvc, log)

	// Запускаем фоновый процесс истечения неоплаченных броней
	expirer := worker.NewExpirer(
		bookingSvc,
		time.Duration(cfg.Booking.SweepIntervalSeconds)*time.Second,
		metricsCollector,
		log,
	)
	expirer.Start(context.Background())
	defer expirer.Stop()

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиентский поток записи, без аутентификации)
	// ============================================================

	// Доступные слоты барбера на дату
	api.HandleFunc("/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Webhook платежного шлюза (защищен подписью, не заголовком)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-groups/{groupId}", cancelGroup.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/barbers/{barberId}/bookings", getBarberBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием барбера ---
	protected.HandleFunc("/barbers/{barberId}/exceptional-days",
		manageExceptionalDays.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/exceptional-days/{id}",
		manageExceptionalDays.HandleDelete).Methods(http.MethodDelete)
	protected.HandleFunc("/barbers/{barberId}/blocks", manageBlocks.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/barbers/{barberId}/blocks", manageBlocks.HandleDelete).Methods(http.MethodDelete)

	// --- Выручка ---
	protected.HandleFunc("/barbers/{barberId}/earnings", getBarberEarnings.Handle).Methods(http.MethodGet)

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
