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

	acceptAppointmentHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/accept_appointment"
	completeAppointmentHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/complete_appointment"
	getAppointmentHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/get_appointments"
	getAvailabilityHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/get_availability"
	markPaidHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/mark_paid"
	rejectAppointmentHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/reject_appointment"
	repeatAppointmentHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/repeat_appointment"
	submitBookingHandler "github.com/avelir/salon-appointment-service/internal/api/handlers/submit_booking"
	"github.com/avelir/salon-appointment-service/internal/api/middleware"
	"github.com/avelir/salon-appointment-service/internal/config"
	"github.com/avelir/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/appointment"
	catalogRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/avelir/salon-appointment-service/internal/infra/storage/schedule"
	inventoryServiceClient "github.com/avelir/salon-appointment-service/internal/integrations/inventoryservice"
	paymentGatewayClient "github.com/avelir/salon-appointment-service/internal/integrations/paymentgateway"
	"github.com/avelir/salon-appointment-service/internal/invoice"
	appointmentsService "github.com/avelir/salon-appointment-service/internal/service/appointments"
	"github.com/avelir/salon-appointment-service/internal/session"
	acceptAppointmentUC "github.com/avelir/salon-appointment-service/internal/usecase/accept_appointment"
	completeAppointmentUC "github.com/avelir/salon-appointment-service/internal/usecase/complete_appointment"
	repeatAppointmentUC "github.com/avelir/salon-appointment-service/internal/usecase/repeat_appointment"
	resolveAvailabilityUC "github.com/avelir/salon-appointment-service/internal/usecase/resolve_availability"
	submitBookingUC "github.com/avelir/salon-appointment-service/internal/usecase/submit_booking"
	"github.com/avelir/salon-appointment-service/pkg/dbmetrics"
	"github.com/avelir/salon-appointment-service/pkg/logger"
	"github.com/avelir/salon-appointment-service/pkg/metrics"
	"github.com/avelir/salon-appointment-service/pkg/simpletxmanager"
	"github.com/avelir/salon-appointment-service/pkg/txmanager"
	"github.com/avelir/salon-appointment-service/pkg/types"
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

	log.Info("Starting salon-appointment-service...")
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

	// Инициализируем интеграционных клиентов
	paymentClient := paymentGatewayClient.NewClient(
		cfg.PaymentGateway.URL,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	inventoryClient := inventoryServiceClient.NewClient(
		cfg.InventoryService.URL,
		time.Duration(cfg.InventoryService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentGateway=%s timeout=%ds, InventoryService=%s timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout, cfg.InventoryService.URL, cfg.InventoryService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		catalogRepository     *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Генератор номеров счетов
	invoiceGenerator := invoice.NewGenerator()

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		paymentClient,
		log,
	)

	// Инициализируем use cases
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		log,
	)

	submitBookingUseCase := submitBookingUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		txMgr,
		invoiceGenerator,
		log,
	)

	acceptAppointmentUseCase := acceptAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		paymentClient,
		txMgr,
		log,
	)

	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		inventoryClient,
		log,
	)

	repeatAppointmentUseCase := repeatAppointmentUC.NewUseCase(
		appointmentRepository,
		submitBookingUseCase,
		invoiceGenerator,
		log,
	)

	// Параметры мастера оформления записи
	sessionConfig := session.Config{
		MaxBookingDays: cfg.Booking.MaxBookingDays,
		WorkingHours: domain.TimeWindow{
			Start: types.TimeString(cfg.Booking.OpenTime),
			End:   types.TimeString(cfg.Booking.CloseTime),
		},
		CleanupBufferPercent: cfg.Booking.CleanupBufferPercent,
	}
	newSession := func() *session.Session {
		return session.New(sessionConfig, resolveAvailabilityUseCase, invoiceGenerator, &session.RealTimeProvider{})
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(resolveAvailabilityUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(newSession, catalogRepository, submitBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	acceptAppointment := acceptAppointmentHandler.NewHandler(acceptAppointmentUseCase, log)
	rejectAppointment := rejectAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(completeAppointmentUseCase, log)
	repeatAppointment := repeatAppointmentHandler.NewHandler(repeatAppointmentUseCase, log)
	markPaid := markPaidHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Подбор доступных мастеров
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Оформление новой записи клиентом
	api.HandleFunc("/appointments", submitBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Список записей с фильтрацией
	protected.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Подтверждение записи администратором
	protected.HandleFunc("/appointments/{appointmentId}/accept", acceptAppointment.Handle).Methods(http.MethodPatch)

	// Отклонение записи с указанием причины
	protected.HandleFunc("/appointments/{appointmentId}/reject", rejectAppointment.Handle).Methods(http.MethodPatch)

	// Завершение записи со списанием товаров
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// Отметка об оплате
	protected.HandleFunc("/appointments/{appointmentId}/paid", markPaid.Handle).Methods(http.MethodPatch)

	// Повтор терминальной записи на новые дату и время
	protected.HandleFunc("/appointments/{appointmentId}/repeat", repeatAppointment.Handle).Methods(http.MethodPost)

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
