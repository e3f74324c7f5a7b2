package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/handlers"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/planner"
	"github.com/taskdeck/taskdeck/internal/settings"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/weather"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("data_dir", cfg.DataDir),
	)

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		zapLogger.Fatal("failed_to_open_data_dir", zap.Error(err))
	}

	settingsManager, err := settings.NewManager(cfg.DataDir)
	if err != nil {
		zapLogger.Fatal("failed_to_load_settings", zap.Error(err))
	}
	userSettings := settingsManager.Get()

	plan, err := planner.New(store, userSettings.CalendarWeeksToShow, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_load_active_set", zap.Error(err))
	}
	zapLogger.Info("loaded_active_set", zap.Int("items", len(plan.Items())))

	weatherClient := weather.NewClient(cfg.WeatherFetchTimeout)
	weatherService := weather.Start(
		weather.ServiceConfig{
			RefreshInterval: cfg.WeatherRefreshInterval,
			MaxRetries:      cfg.WeatherMaxRetries,
			InitialBackoff:  cfg.WeatherInitialBackoff,
		},
		weatherClient,
		weather.Coordinates(userSettings.Coordinates),
		func() {
			// A UI consumer would repaint here; the API just notes the publish.
			zapLogger.Debug("forecast_refreshed")
		},
		zapLogger,
	)
	defer weatherService.Close()

	healthChecker := handlers.NewHealthChecker(cfg.DataDir)
	itemHandler := handlers.NewItemHandler(plan, zapLogger)
	planHandler := handlers.NewPlanHandler(plan)
	archiveHandler := handlers.NewArchiveHandler(store)
	weatherHandler := handlers.NewWeatherHandler(weatherService)
	settingsHandler := handlers.NewSettingsHandler(settingsManager, plan, weatherService, zapLogger)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthChecker.Healthz).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/plan", planHandler.GetPlan).Methods("GET")
	api.HandleFunc("/archive", archiveHandler.ListArchive).Methods("GET")
	api.HandleFunc("/weather", weatherHandler.GetWeather).Methods("GET")
	api.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET")
	api.HandleFunc("/settings", settingsHandler.PatchSettings).Methods("PATCH")
	itemHandler.RegisterRoutes(api.PathPrefix("/items").Subrouter())

	// Inner middleware first; the chain below wraps outward.
	r.Use(middleware.ContentType)
	r.Use(middleware.RequestSize)
	r.Use(middleware.Logging(zapLogger))

	rateLimit, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("invalid_rate_limit", zap.String("rate", cfg.RateLimit), zap.Error(err))
	}

	var handler http.Handler = r
	handler = rateLimit(handler)
	handler = middleware.CORS(cfg.FrontendURL)(handler)
	handler = middleware.SecurityHeaders(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server_failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLogger.Info("shutting_down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("shutdown_failed", zap.Error(err))
	}
}
