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

	approveVacationHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/approve_vacation"
	cancelVacationHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/cancel_vacation"
	createVacationHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/create_vacation"
	getSettingsHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/get_settings"
	getTeamCalendarHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/get_team_calendar"
	getUserBalanceHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/get_user_balance"
	getUserSettingsHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/get_user_settings"
	getUserVacationsHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/get_user_vacations"
	getVacationHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/get_vacation"
	rejectVacationHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/reject_vacation"
	updateSettingsHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/update_settings"
	updateUserSettingsHandler "github.com/m04kA/SMC-VacationService/internal/api/handlers/update_user_settings"
	"github.com/m04kA/SMC-VacationService/internal/api/middleware"
	"github.com/m04kA/SMC-VacationService/internal/config"
	balanceRepo "github.com/m04kA/SMC-VacationService/internal/infra/storage/balance"
	settingsRepo "github.com/m04kA/SMC-VacationService/internal/infra/storage/settings"
	vacationRepo "github.com/m04kA/SMC-VacationService/internal/infra/storage/vacation"
	"github.com/m04kA/SMC-VacationService/internal/integrations/mailservice"
	settingsService "github.com/m04kA/SMC-VacationService/internal/service/settings"
	vacationsService "github.com/m04kA/SMC-VacationService/internal/service/vacations"
	createVacationUC "github.com/m04kA/SMC-VacationService/internal/usecase/create_vacation"
	getTeamCalendarUC "github.com/m04kA/SMC-VacationService/internal/usecase/get_team_calendar"
	"github.com/m04kA/SMC-VacationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VacationService/pkg/logger"
	"github.com/m04kA/SMC-VacationService/pkg/metrics"
	"github.com/m04kA/SMC-VacationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-VacationService/pkg/txmanager"
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

	log.Info("Starting SMC-VacationService...")
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

	// Инициализируем клиент почтового сервиса (если включен).
	// Интерфейсные переменные остаются nil при выключенной интеграции,
	// уведомления тогда просто не отправляются.
	var (
		vacationsMail vacationsService.MailServiceClient
		createMail    createVacationUC.MailServiceClient
	)
	if cfg.MailService.Enabled {
		mailClient := mailservice.NewClient(
			cfg.MailService.URL,
			time.Duration(cfg.MailService.Timeout)*time.Second,
			log,
		)
		vacationsMail = mailClient
		createMail = mailClient
		log.Info("MailService client initialized (url=%s, timeout=%ds)",
			cfg.MailService.URL, cfg.MailService.Timeout)
	} else {
		log.Info("MailService integration disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		vacationRepository *vacationRepo.Repository
		settingsRepository *settingsRepo.Repository
		balanceRepository  *balanceRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		vacationRepository = vacationRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		balanceRepository = balanceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		vacationRepository = vacationRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		balanceRepository = balanceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	vacationSvc := vacationsService.NewService(
		vacationRepository,
		balanceRepository,
		settingsRepository,
		vacationsMail,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		log,
	)

	// Инициализируем use cases
	createVacationUseCase := createVacationUC.NewUseCase(
		vacationRepository,
		settingsRepository,
		balanceRepository,
		createMail,
		txMgr,
		log,
	)
	getTeamCalendarUseCase := getTeamCalendarUC.NewUseCase(
		vacationRepository,
		settingsRepository,
		log,
	)

	// Инициализируем handlers
	createVacation := createVacationHandler.NewHandler(createVacationUseCase, log)
	getVacation := getVacationHandler.NewHandler(vacationSvc, log)
	cancelVacation := cancelVacationHandler.NewHandler(vacationSvc, log)
	approveVacation := approveVacationHandler.NewHandler(vacationSvc, log)
	rejectVacation := rejectVacationHandler.NewHandler(vacationSvc, log)
	getUserVacations := getUserVacationsHandler.NewHandler(vacationSvc, log)
	getUserBalance := getUserBalanceHandler.NewHandler(vacationSvc, log)
	getTeamCalendar := getTeamCalendarHandler.NewHandler(getTeamCalendarUseCase, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getUserSettings := getUserSettingsHandler.NewHandler(settingsSvc, log)
	updateUserSettings := updateUserSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Отпуска ---
	// Создание заявки на отпуск
	protected.HandleFunc("/vacations", createVacation.Handle).Methods(http.MethodPost)

	// Получение отпуска по ID
	protected.HandleFunc("/vacations/{vacationId}", getVacation.Handle).Methods(http.MethodGet)

	// Отмена отпуска
	protected.HandleFunc("/vacations/{vacationId}", cancelVacation.Handle).Methods(http.MethodDelete)

	// Отпуска пользователя
	protected.HandleFunc("/users/{userId}/vacations", getUserVacations.Handle).Methods(http.MethodGet)

	// Баланс отпускных дней пользователя
	protected.HandleFunc("/users/{userId}/balance", getUserBalance.Handle).Methods(http.MethodGet)

	// Календарь команды
	protected.HandleFunc("/calendar", getTeamCalendar.Handle).Methods(http.MethodGet)

	// Глобальные настройки (чтение доступно всем аутентифицированным)
	protected.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminOnly)

	// Утверждение и отклонение заявок
	admin.HandleFunc("/vacations/{vacationId}/approve", approveVacation.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/vacations/{vacationId}/reject", rejectVacation.Handle).Methods(http.MethodPatch)

	// Управление глобальными настройками
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Управление персональными настройками
	admin.HandleFunc("/users/{userId}/settings", getUserSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}/settings", updateUserSettings.Handle).Methods(http.MethodPut)

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
