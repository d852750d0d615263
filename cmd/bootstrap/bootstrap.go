package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hospital-scheduling/config"
	deliveryhttp "hospital-scheduling/internal/delivery/http"
	"hospital-scheduling/internal/delivery/http/handler"
	"hospital-scheduling/internal/delivery/http/middleware"
	"hospital-scheduling/internal/delivery/ws"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/infrastructure/cache"
	"hospital-scheduling/internal/infrastructure/database"
	"hospital-scheduling/internal/repository"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/jwt"
	"hospital-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds the wired application and its long-lived resources.
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Notifier    *service.EventNotifier
	Server      *http.Server
}

func NewApp() (*App, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewPostgresDB(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return nil, err
	}

	specs, err := buildGridSpecs(cfg.Schedule)
	if err != nil {
		return nil, err
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository()
	resourceRepo := repository.NewResourceRepository()
	patientRepo := repository.NewPatientRepository()
	remarkRepo := repository.NewRemarkRepository()

	// Services
	hub := ws.NewHub(log)
	notifier := service.NewEventNotifier(redisClient, hub, log)
	matcher := service.NewPatientMatcher(db, log, patientRepo)

	// Usecases
	statsUsecase := usecase.NewStatsUsecase(db, log, specs, bookingRepo, resourceRepo, redisClient)
	bookingUsecase := usecase.NewBookingUsecase(db, log, specs, bookingRepo, resourceRepo, patientRepo, matcher, notifier)
	gridUsecase := usecase.NewGridUsecase(db, log, specs, bookingRepo, resourceRepo, remarkRepo, statsUsecase)
	remarkUsecase := usecase.NewRemarkUsecase(db, log, remarkRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo)
	resourceUsecase := usecase.NewResourceUsecase(db, log, specs, resourceRepo)

	// Cached day stats go stale the moment a booking on that day changes.
	notifier.SetOnEvent(func(event service.BookingEvent) {
		statsUsecase.InvalidateDay(context.Background(), event.ScheduleKind, event.Date)
	})

	// Delivery
	validate := validator.NewValidator()
	jwtService := jwt.NewJWTService(cfg.JWT)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		BookingHandler:  handler.NewBookingHandler(bookingUsecase, log, validate),
		GridHandler:     handler.NewGridHandler(gridUsecase, log),
		RemarkHandler:   handler.NewRemarkHandler(remarkUsecase, log, validate),
		PatientHandler:  handler.NewPatientHandler(patientUsecase, log),
		ResourceHandler: handler.NewResourceHandler(resourceUsecase, log, validate),
		WSHandler:       ws.NewHandler(hub, log),
		AuthMiddleware:  middleware.NewAuthMiddleware(jwtService),
		CORSMiddleware:  middleware.NewCORSMiddleware(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		Notifier:    notifier,
		Server:      server,
	}, nil
}

// Run starts the event notifier and serves HTTP until the server closes.
func (a *App) Run(ctx context.Context) error {
	a.Notifier.Run(ctx)
	a.Log.Infof("Server listening on %s", a.Server.Addr)
	return a.Server.ListenAndServe()
}

// Shutdown stops the HTTP server and releases long-lived resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Server.Shutdown(ctx)
	a.Notifier.Stop()
	a.RedisClient.Close()
	if sqlDB, dbErr := a.DB.DB(); dbErr == nil {
		sqlDB.Close()
	}
	return err
}

func buildGridSpecs(cfg config.ScheduleConfig) (map[entity.ScheduleKind]entity.GridSpec, error) {
	rf, err := entity.NewGridSpec(entity.ScheduleKindRF, cfg.RF.OpenTime, cfg.RF.CloseTime, cfg.RF.SlotMinutes, cfg.RF.BufferSlots, entity.ResourceKindRoom)
	if err != nil {
		return nil, fmt.Errorf("invalid rf grid config: %w", err)
	}
	therapy, err := entity.NewGridSpec(entity.ScheduleKindTherapy, cfg.Therapy.OpenTime, cfg.Therapy.CloseTime, cfg.Therapy.SlotMinutes, cfg.Therapy.BufferSlots, entity.ResourceKindTherapist)
	if err != nil {
		return nil, fmt.Errorf("invalid therapy grid config: %w", err)
	}
	return map[entity.ScheduleKind]entity.GridSpec{
		entity.ScheduleKindRF:      rf,
		entity.ScheduleKindTherapy: therapy,
	}, nil
}
