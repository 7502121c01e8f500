package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Asad-28/weather-app/internal/config"
	db "github.com/Asad-28/weather-app/internal/db"
	httpapi "github.com/Asad-28/weather-app/internal/httpapi"
	"github.com/Asad-28/weather-app/internal/logging"
	"github.com/Asad-28/weather-app/internal/migrate"
	weather "github.com/Asad-28/weather-app/internal/modules/weather"
	"github.com/Asad-28/weather-app/internal/modules/weather/service"
	weatherviews "github.com/Asad-28/weather-app/internal/modules/weather/views"
	"github.com/Asad-28/weather-app/internal/mqtt"
	"github.com/Asad-28/weather-app/internal/openweather"
	"github.com/Asad-28/weather-app/internal/tracing"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"staticDir", cfg.StaticDir,
		"logFile", cfg.LogFile,
		"owmBaseURL", cfg.OWMBaseURL,
		"sqlitePath", cfg.SQLitePath,
		"sqliteMaxOpenConns", cfg.SQLiteMaxOpenConns,
		"sqliteMaxIdleConns", cfg.SQLiteMaxIdleConns,
		"sqliteConnMaxLifetime", cfg.SQLiteConnMaxLifetime,
		"mqttBroker", cfg.MQTTBroker,
		"mqttPort", cfg.MQTTPort,
		"mqttTopicPrefix", cfg.MQTTTopicPrefix,
		"otlpEndpoint", cfg.OTLPEndpoint,
	)

	shutdownTracing, err := tracing.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("tracing shutdown", "error", err)
		}
	}()

	dbConn, err := db.Open(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	if err := migrate.Run(ctx, dbConn); err != nil {
		return err
	}

	var ok int
	err = dbConn.QueryRowContext(ctx, `SELECT 1`).Scan(&ok)
	if err != nil {
		return err
	}
	if ok != 1 {
		return errors.New("database connection failed")
	}
	slog.Info("database connection successful")

	outcomes, outcomeFile, err := logging.OpenOutcomeLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := outcomeFile.Close(); err != nil {
			slog.Error("outcome log close", "error", err)
		}
	}()

	if err := weatherviews.LoadTemplates(); err != nil {
		return err
	}

	fetcher := openweather.NewClient(cfg.OWMAPIKey, cfg.OWMBaseURL, nil)

	// Interfaces stay nil when MQTT is off so healthz reports "disabled".
	var (
		publisher *mqtt.Publisher
		reporter  httpapi.ConnectionReporter
		readings  service.Publisher
	)
	if cfg.MQTTBroker != "" {
		publisher = mqtt.NewPublisher(cfg, slog.Default())
		reporter = publisher
		readings = publisher

		// Short timeout so startup does not block when the broker is down.
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		err = publisher.Connect(connectCtx)
		connectCancel()
		if err != nil {
			slog.Warn("mqtt connection failed (continuing without mqtt)", "error", err)
		}
		// Deferred so early returns disconnect too; on a normal stop it runs
		// after the server has drained, so in-flight lookups can still publish.
		defer func() {
			slog.Info("mqtt disconnecting")
			publisher.Disconnect()
		}()
	} else {
		slog.Info("mqtt disabled")
	}

	router := httpapi.NewRouter(dbConn, cfg.StaticDir, reporter, slog.Default())
	weather.RegisterFeature(router, dbConn, fetcher, readings, outcomes)

	srv := httpapi.NewServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
