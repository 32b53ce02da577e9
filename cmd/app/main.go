package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/config"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/api"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/cache"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/gateway"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/logger"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/repository"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/services"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/worker"
)

const (
	automationJobName = "automation"
	schedulerJobName  = "scheduler"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	dbPool, redisClient, err := setupDependencies(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to setup dependencies", zap.Error(err))
	}
	defer dbPool.Close()
	defer redisClient.Close()

	jobs, server := buildApplication(ctx, cfg, dbPool, redisClient, &wg, log)

	for _, manager := range jobs {
		if err := manager.Start(ctx); err != nil {
			log.Error("failed to start job", zap.String("job", manager.Name()), zap.Error(err))
		}
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("unexpected error while starting server", zap.Error(err))
		}
	}()

	waitForShutdown(server, cancel, &wg, log)
	log.Info("server gracefully stopped")
}

func setupDependencies(ctx context.Context, cfg config.Config, log *zap.Logger) (*pgxpool.Pool, *redis.Client, error) {
	dbPool, err := repository.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to establish database connection: %w", err)
	}
	log.Info("database connection established")

	if err := repository.RunMigrations(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("migrations applied")

	redisClient, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		dbPool.Close()
		return nil, nil, fmt.Errorf("failed to establish redis connection: %w", err)
	}
	log.Info("redis connection established")

	return dbPool, redisClient, nil
}

func buildApplication(
	appCtx context.Context,
	cfg config.Config,
	dbPool *pgxpool.Pool,
	redisClient *redis.Client,
	wg *sync.WaitGroup,
	log *zap.Logger,
) (map[string]*worker.JobManager, *http.Server) {
	clientRepo := repository.NewClientRepository(dbPool)
	configRepo := repository.NewAutomationConfigRepository(dbPool)
	scheduleRepo := repository.NewScheduleRepository(dbPool)
	noteRepo := repository.NewNoteRepository(dbPool)

	feed := cache.NewNotificationCache(redisClient)
	gw := gateway.NewClient(gateway.Config{
		SendURL:   cfg.GatewaySendURL,
		ImageURL:  cfg.GatewayImageURL,
		StatusURL: cfg.GatewayStatusURL,
		APIKey:    cfg.GatewayAPIKey,
	}, log)

	automationService := services.NewAutomationService(clientRepo, configRepo, gw, feed, log)
	scheduleService := services.NewScheduleService(scheduleRepo, gw, feed, log)
	clientService := services.NewClientService(clientRepo)
	noteService := services.NewNoteService(noteRepo)

	jobs := map[string]*worker.JobManager{
		automationJobName: worker.NewJobManager(automationJobName, cfg.AutomationInterval, func(ctx context.Context) {
			automationService.RunTick(ctx)
		}, wg, log),
		schedulerJobName: worker.NewJobManager(schedulerJobName, cfg.ScheduleInterval, func(ctx context.Context) {
			scheduleService.RunTick(ctx)
		}, wg, log),
	}

	handler := api.NewHandler(clientService, noteService, scheduleService, automationService, feed, gw, jobs, appCtx)
	router := api.NewRouter(handler)
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	log.Info("application components built")
	return jobs, server
}

func waitForShutdown(server *http.Server, cancelApp context.CancelFunc, wg *sync.WaitGroup, log *zap.Logger) {
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	<-shutdownChan
	log.Info("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("unexpected error while shutting down server", zap.Error(err))
	}

	cancelApp()
	wg.Wait()
}
