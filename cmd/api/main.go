// Command api runs the hotel booking HTTP service.
//
// @title                       Hotel Booking API
// @version                     1.0
// @description                 Room catalog, bookings and accounts for a single hotel.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sirpyerre/hotel-booking/internal/api"
	"github.com/Sirpyerre/hotel-booking/internal/core/service"
	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/config"
	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/db/mongo"
	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/db/postgres"
	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/db/redis"
	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/http/handlers"
	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/queue"
	"github.com/Sirpyerre/hotel-booking/pkg/logger"

	_ "github.com/Sirpyerre/hotel-booking/docs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// a missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "hotel-booking",
	})

	// --- Storage ---
	if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	eventRepo := mongo.NewEventRepository(mongoDB)
	if err := eventRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not create audit indexes")
	}
	idem := redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	// --- Audit pipeline ---
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewEventService(eventRepo, log), log)
	dispatcher.Start(workerCtx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	roomService := service.NewRoomService(roomRepo, log)
	bookingService := service.NewBookingService(bookingRepo, dispatcher, eventRepo, idem, log)

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Users:    userService,
		Rooms:    roomService,
		Bookings: bookingService,
		Probes: []handlers.Dependency{
			handlers.PostgresDependency(db),
			handlers.MongoDependency(mongoDB),
			handlers.RedisDependency(rdb),
		},
		Log:            log,
		CORSOrigin:     cfg.CORSOrigin,
		RequestTimeout: cfg.RequestTimeout,
		AuthRateLimit:  cfg.AuthRateLimit,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// in-flight requests are done; flush the audit queues before closing stores
	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("stopped")
}
