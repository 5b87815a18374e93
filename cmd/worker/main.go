package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turnoya/booking-api/internal/config"
	"github.com/turnoya/booking-api/internal/email"
	"github.com/turnoya/booking-api/internal/repository/postgres"
	notificationService "github.com/turnoya/booking-api/internal/service/notification"
	reminderService "github.com/turnoya/booking-api/internal/service/reminder"
	"github.com/turnoya/booking-api/pkg/logger"
	redisBroker "github.com/turnoya/booking-api/pkg/messaging/redis"
)

// Config is read from the environment with the WORKER_ prefix.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"booking"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"bookings@example.com"`

	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:3000"`
	Interval    time.Duration `envconfig:"INTERVAL" default:"15m"`
	MetricsPort int           `envconfig:"METRICS_PORT" default:"9090"`
}

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reminder_runs_total",
		Help: "Reminder dispatch runs by outcome",
	}, []string{"outcome"})
	remindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_sent_total",
		Help: "Reminder emails sent",
	})
	remindersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_failed_total",
		Help: "Reminder emails that failed to send",
	})
)

func main() {
	log := logger.NewLogger(nil)

	var cfg Config
	if err := envconfig.Process("WORKER", &cfg); err != nil {
		log.Fatal(err, "failed to load worker config")
	}

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.RedisURL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     5,
		MinIdleConns: 1,
	}, &log.ZL)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	businessRepo := postgres.NewBusinessRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	emailSvc := email.NewSMTPService(config.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	notifier := notificationService.NewService(emailSvc, broker, log, cfg.BaseURL)
	reminderSvc := reminderService.NewService(appointmentRepo, businessRepo, serviceRepo, notifier, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: metricsHandler(db),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "metrics server error")
		}
	}()

	go run(ctx, reminderSvc, cfg.Interval, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "metrics server shutdown")
	}
	log.Info("worker stopped")
}

// run dispatches once on startup and then on every tick. Reminder claims are
// idempotent in the store, so an extra run after a restart is harmless.
func run(ctx context.Context, svc *reminderService.Service, interval time.Duration, log *logger.Logger) {
	dispatch(ctx, svc, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dispatch(ctx, svc, log)
		}
	}
}

func dispatch(ctx context.Context, svc *reminderService.Service, log *logger.Logger) {
	result, err := svc.DispatchReminders(ctx)
	if err != nil {
		runsTotal.WithLabelValues("error").Inc()
		log.Error(err, "reminder dispatch failed")
		return
	}
	runsTotal.WithLabelValues("ok").Inc()
	remindersSent.Add(float64(result.Sent))
	remindersFailed.Add(float64(result.Failed))
}

func metricsHandler(pinger interface {
	PingContext(ctx context.Context) error
}) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
