package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/config"
	dbpkg "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/db"
	infraRepo "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/infra/repository"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/middleware"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/routes"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/tasks"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/timezone"
	ucschedule "github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/usecase/schedule"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()

	loc, err := timezone.Location(cfg.BusinessTimezone)
	if err != nil {
		log.Fatal().Err(err).Msg("business timezone misconfigured")
	}

	db := dbpkg.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect redis")
	}

	// Monthly schedule extension runs alongside the API server.
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	materializeUC := ucschedule.NewMaterializeSchedule(scheduleRepo, loc)
	claimer := tasks.NewRedisClaimer(redisClient, cfg.TaskClaimTTL)
	monthly := tasks.NewMonthlyMaterializer(
		scheduleRepo,
		materializeUC,
		claimer,
		tasks.NewGormRunStore(db),
		loc,
		cfg.MaterializeMonthsAhead,
		log.Logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go monthly.Start(ctx)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, loc, monthly)

	log.Info().Str("addr", cfg.Addr()).Str("timezone", cfg.BusinessTimezone).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
