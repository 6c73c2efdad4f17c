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

	analyticsHandler "github.com/bontle/BB-BookingService/internal/api/handlers/analytics"
	assignConsultantHandler "github.com/bontle/BB-BookingService/internal/api/handlers/assign_consultant"
	catalogHandler "github.com/bontle/BB-BookingService/internal/api/handlers/catalog"
	conversationHandler "github.com/bontle/BB-BookingService/internal/api/handlers/conversation"
	createBookingHandler "github.com/bontle/BB-BookingService/internal/api/handlers/create_booking"
	exportBookingsHandler "github.com/bontle/BB-BookingService/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/bontle/BB-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/bontle/BB-BookingService/internal/api/handlers/get_booking"
	getCustomerHistoryHandler "github.com/bontle/BB-BookingService/internal/api/handlers/get_customer_history"
	getTodayQueueHandler "github.com/bontle/BB-BookingService/internal/api/handlers/get_today_queue"
	logIncidentHandler "github.com/bontle/BB-BookingService/internal/api/handlers/log_incident"
	purgeHistoryHandler "github.com/bontle/BB-BookingService/internal/api/handlers/purge_history"
	rescheduleBookingHandler "github.com/bontle/BB-BookingService/internal/api/handlers/reschedule_booking"
	submitFeedbackHandler "github.com/bontle/BB-BookingService/internal/api/handlers/submit_feedback"
	updateBookingStatusHandler "github.com/bontle/BB-BookingService/internal/api/handlers/update_booking_status"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	"github.com/bontle/BB-BookingService/internal/config"
	analyticsRepo "github.com/bontle/BB-BookingService/internal/infra/storage/analytics"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
	chatstateRepo "github.com/bontle/BB-BookingService/internal/infra/storage/chatstate"
	customerRepo "github.com/bontle/BB-BookingService/internal/infra/storage/customer"
	eventlogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/eventlog"
	feedbackRepo "github.com/bontle/BB-BookingService/internal/infra/storage/feedback"
	incidentRepo "github.com/bontle/BB-BookingService/internal/infra/storage/incident"
	analyticsService "github.com/bontle/BB-BookingService/internal/service/analytics"
	bookingsService "github.com/bontle/BB-BookingService/internal/service/bookings"
	catalogService "github.com/bontle/BB-BookingService/internal/service/catalog"
	conversationService "github.com/bontle/BB-BookingService/internal/service/conversation"
	createBookingUC "github.com/bontle/BB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/bontle/BB-BookingService/internal/usecase/get_available_slots"
	purgeHistoryUC "github.com/bontle/BB-BookingService/internal/usecase/purge_history"
	rescheduleBookingUC "github.com/bontle/BB-BookingService/internal/usecase/reschedule_booking"
	updateBookingStatusUC "github.com/bontle/BB-BookingService/internal/usecase/update_booking_status"
	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/logger"
	"github.com/bontle/BB-BookingService/pkg/metrics"
	"github.com/bontle/BB-BookingService/pkg/simpletxmanager"
	"github.com/bontle/BB-BookingService/pkg/txmanager"
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

	log.Info("Starting BB-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		catalogRepository   *catalogRepo.Repository
		customerRepository  *customerRepo.Repository
		eventRepository     *eventlogRepo.Repository
		feedbackRepository  *feedbackRepo.Repository
		incidentRepository  *incidentRepo.Repository
		chatstateRepository *chatstateRepo.Repository
		analyticsRepository *analyticsRepo.Repository
		txMgr               TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		eventRepository = eventlogRepo.NewRepository(wrappedDB)
		feedbackRepository = feedbackRepo.NewRepository(wrappedDB)
		incidentRepository = incidentRepo.NewRepository(wrappedDB)
		chatstateRepository = chatstateRepo.NewRepository(wrappedDB)
		analyticsRepository = analyticsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		eventRepository = eventlogRepo.NewRepository(db)
		feedbackRepository = feedbackRepo.NewRepository(db)
		incidentRepository = incidentRepo.NewRepository(db)
		chatstateRepository = chatstateRepo.NewRepository(db)
		analyticsRepository = analyticsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		customerRepository,
		eventRepository,
		feedbackRepository,
		incidentRepository,
		txMgr,
		bookingsService.RealClock{},
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	analyticsSvc := analyticsService.NewService(analyticsRepository, bookingRepository, log)
	conversationSvc := conversationService.NewService(
		chatstateRepository,
		time.Duration(cfg.Conversation.TTLMinutes)*time.Minute,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		customerRepository,
		eventRepository,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		customerRepository,
		eventRepository,
		txMgr,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		eventRepository,
		txMgr,
		log,
	)
	purgeHistoryUseCase := purgeHistoryUC.NewUseCase(
		bookingRepository,
		eventRepository,
		feedbackRepository,
		incidentRepository,
		txMgr,
		cfg.Retention.MinPurgeAgeDays,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	purgeHistory := purgeHistoryHandler.NewHandler(purgeHistoryUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getTodayQueue := getTodayQueueHandler.NewHandler(bookingSvc, log)
	getCustomerHistory := getCustomerHistoryHandler.NewHandler(bookingSvc, log)
	assignConsultant := assignConsultantHandler.NewHandler(bookingSvc, log)
	logIncident := logIncidentHandler.NewHandler(bookingSvc, log)
	submitFeedback := submitFeedbackHandler.NewHandler(bookingSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	analytics := analyticsHandler.NewHandler(analyticsSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(analyticsSvc, log)
	conversation := conversationHandler.NewHandler(conversationSvc, log)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (каналы клиентов: чат-бот и консоль)
	// ============================================================

	// Каталог
	api.HandleFunc("/stores", catalog.HandleListStores).Methods(http.MethodGet)
	api.HandleFunc("/stores/{storeID}/services", catalog.HandleListServices).Methods(http.MethodGet)
	api.HandleFunc("/stores/{storeID}/categories", catalog.HandleListCategories).Methods(http.MethodGet)
	api.HandleFunc("/stores/{storeID}/consultants", catalog.HandleListConsultants).Methods(http.MethodGet)

	// Доступные слоты
	api.HandleFunc("/stores/{storeID}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Перенос бронирования клиентом
	api.HandleFunc("/bookings/{bookingID}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// Отзыв клиента по завершённому бронированию
	api.HandleFunc("/bookings/{bookingID}/feedback", submitFeedback.Handle).Methods(http.MethodPost)

	// История бронирований клиента по chat id
	api.HandleFunc("/customers/{chatID}/bookings", getCustomerHistory.Handle).Methods(http.MethodGet)

	// Состояние многошагового диалога чат-бота
	api.HandleFunc("/conversations/{chatID}", conversation.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/conversations/{chatID}", conversation.HandleSave).Methods(http.MethodPut)
	api.HandleFunc("/conversations/{chatID}", conversation.HandleClear).Methods(http.MethodDelete)

	// ============================================================
	// STAFF ROUTES (требуют JWT сотрудника)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(auth.RequireStaff)

	// --- Бронирования ---
	staff.HandleFunc("/bookings/code/{code}", getBooking.HandleByCode).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingID}", getBooking.HandleByID).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingID}/events", getBooking.HandleEvents).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingID}/status", updateBookingStatus.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{bookingID}/consultant", assignConsultant.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{bookingID}/incidents", logIncident.Handle).Methods(http.MethodPost)

	// --- Очередь и отчёты магазина ---
	staff.HandleFunc("/stores/{storeID}/queue", getTodayQueue.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/stores/{storeID}/analytics/daily", analytics.HandleDailySummary).Methods(http.MethodGet)
	staff.HandleFunc("/stores/{storeID}/analytics/peak-hours", analytics.HandlePeakHours).Methods(http.MethodGet)
	staff.HandleFunc("/stores/{storeID}/analytics/service-mix", analytics.HandleServiceMix).Methods(http.MethodGet)
	staff.HandleFunc("/stores/{storeID}/analytics/consultants", analytics.HandleConsultantPerformance).Methods(http.MethodGet)
	staff.HandleFunc("/stores/{storeID}/analytics/incident-rate", analytics.HandleIncidentRate).Methods(http.MethodGet)
	staff.HandleFunc("/stores/{storeID}/export", exportBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	staff.HandleFunc("/admin/purge", purgeHistory.Handle).Methods(http.MethodPost)

	// Фоновая уборка истёкших состояний диалогов
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Conversation.SweepIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if _, err := conversationSvc.SweepExpired(sweepCtx); err != nil {
					log.Error("Conversation sweep failed: %v", err)
				}
			}
		}
	}()

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

	stopSweeper()
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
