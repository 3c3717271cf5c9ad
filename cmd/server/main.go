package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scot00671234/wishwello/internal/cache"
	"github.com/scot00671234/wishwello/internal/config"
	"github.com/scot00671234/wishwello/internal/logger"
	"github.com/scot00671234/wishwello/internal/notify"
	"github.com/scot00671234/wishwello/internal/repository"
	"github.com/scot00671234/wishwello/internal/scheduler"
	"github.com/scot00671234/wishwello/internal/service"
	"github.com/scot00671234/wishwello/internal/transport/rest"
	"github.com/scot00671234/wishwello/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Info("starting wishwello api")

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Info("Connected to MongoDB")

	db := mongoClient.Database("wishwello")

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURI,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to ping Redis: %v", err)
	}
	log.Info("Connected to Redis")

	// Initialize repositories
	managerRepo := repository.NewManagerRepo(db)
	teamRepo := repository.NewTeamRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	pulseRepo := repository.NewPulseScoreRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)

	if err := pulseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize caches
	analyticsCache := cache.NewAnalyticsCache(rdb)
	alertCache := cache.NewAlertCache(rdb)

	// Initialize WebSocket hub
	wsHub := ws.NewHub(log)

	// Initialize services
	authSvc := service.NewAuthService(managerRepo, cfg.JWTSecret)
	teamSvc := service.NewTeamService(teamRepo, employeeRepo, questionRepo, scheduleRepo, analyticsCache, log)
	feedbackSvc := service.NewFeedbackService(teamRepo, questionRepo, responseRepo, analyticsCache, log)
	analyticsSvc := service.NewAnalyticsService(teamRepo, questionRepo, responseRepo, employeeRepo, analyticsCache, log)
	dashboardSvc := service.NewDashboardService(teamRepo, pulseRepo, responseRepo, employeeRepo, questionRepo, log)
	pulseSvc := service.NewPulseService(teamRepo, responseRepo, employeeRepo, pulseRepo, alertCache, log)

	mailer := notify.NewSMTPMailer(cfg, log)
	checkinSvc := service.NewCheckinService(scheduleRepo, teamRepo, employeeRepo, mailer, log)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	feedbackSvc.SetBroadcaster(wsHub)

	// Alerts go to the manager's inbox and to any open dashboards
	pulseSvc.AddAlertSink(notify.NewEmailAlertSink(teamRepo, managerRepo, mailer, log))
	pulseSvc.AddAlertSink(wsHub)

	// Start periodic jobs
	jobs := scheduler.NewScheduler(checkinSvc, pulseSvc, cfg.CronSpecCheckin, cfg.CronSpecPulse, log)
	if err := jobs.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	wsHandler := ws.NewHandler(wsHub, authSvc, teamSvc, log)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		TeamService:      teamSvc,
		FeedbackService:  feedbackSvc,
		AnalyticsService: analyticsSvc,
		DashboardService: dashboardSvc,
		WSHandler:        wsHandler,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	jobs.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
