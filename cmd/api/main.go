package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turnoya/booking-api/internal/config"
	"github.com/turnoya/booking-api/internal/email"
	"github.com/turnoya/booking-api/internal/handler"
	appointmentHandler "github.com/turnoya/booking-api/internal/handler/appointment"
	bookingHandler "github.com/turnoya/booking-api/internal/handler/booking"
	businessHandler "github.com/turnoya/booking-api/internal/handler/business"
	jobsHandler "github.com/turnoya/booking-api/internal/handler/jobs"
	"github.com/turnoya/booking-api/internal/middleware"
	"github.com/turnoya/booking-api/internal/repository/postgres"
	"github.com/turnoya/booking-api/internal/router"
	appointmentService "github.com/turnoya/booking-api/internal/service/appointment"
	availabilityService "github.com/turnoya/booking-api/internal/service/availability"
	bookingService "github.com/turnoya/booking-api/internal/service/booking"
	businessService "github.com/turnoya/booking-api/internal/service/business"
	notificationService "github.com/turnoya/booking-api/internal/service/notification"
	reminderService "github.com/turnoya/booking-api/internal/service/reminder"
	"github.com/turnoya/booking-api/pkg/logger"
	redisBroker "github.com/turnoya/booking-api/pkg/messaging/redis"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load config")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, &log.ZL)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	businessRepo := postgres.NewBusinessRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	hoursRepo := postgres.NewHoursRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	emailSvc := email.NewSMTPService(cfg.SMTP)
	notifier := notificationService.NewService(emailSvc, broker, log, cfg.App.BaseURL)

	availabilitySvc := availabilityService.NewService(businessRepo, serviceRepo, hoursRepo, appointmentRepo)
	bookingSvc := bookingService.NewService(businessRepo, serviceRepo, appointmentRepo, notifier)
	appointmentSvc := appointmentService.NewService(appointmentRepo, businessRepo, serviceRepo, notifier)
	businessSvc := businessService.NewService(businessRepo, serviceRepo, hoursRepo, appointmentRepo)
	reminderSvc := reminderService.NewService(appointmentRepo, businessRepo, serviceRepo, notifier, log)

	auth := middleware.NewAuthMiddleware(cfg.Auth.Secret)

	r := router.NewRouter(
		auth,
		bookingHandler.NewHandler(availabilitySvc, bookingSvc, appointmentSvc),
		appointmentHandler.NewHandler(appointmentSvc, businessSvc),
		businessHandler.NewHandler(businessSvc),
		jobsHandler.NewHandler(reminderSvc, cfg.App.CronSecret),
		handler.NewHealthHandler(db),
		router.Config{
			RateLimitRPS:   20,
			RateLimitBurst: 40,
			CORS:           middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
	log.Info("server stopped")
}
