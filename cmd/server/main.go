package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weight-tracker/internal/config"
	"github.com/iliyamo/weight-tracker/internal/handler"
	"github.com/iliyamo/weight-tracker/internal/middleware"
	"github.com/iliyamo/weight-tracker/internal/queue"
	"github.com/iliyamo/weight-tracker/internal/repository"
	"github.com/iliyamo/weight-tracker/internal/router"
	"github.com/iliyamo/weight-tracker/internal/sheet"
)

func main() {
	// A local .env is a convenience for development; in production the
	// environment comes from the process manager.
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := sheet.New(context.Background(), cfg.CredentialsFile, cfg.SpreadsheetID, cfg.StoreTimeout)
	if err != nil {
		log.Fatalf("sheet store: %v", err)
	}
	cache := repository.NewCache(store, cfg.UsersCacheTTL, cfg.WeightsCacheTTL)
	users := repository.NewUserRepo(store, cache, cfg.BcryptCost)
	weights := repository.NewWeightRepo(store, cache)

	rdb := config.NewRedisClient() // may be nil; limiter and tokens degrade
	tokens := repository.NewRedisTokenRepo(rdb)
	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), limiter, cfg.JWTSecret)
	router.RegisterWeights(e, handler.NewWeightHandler(weights, users), handler.NewProfileHandler(users), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(users, weights), cfg.JWTSecret)

	// Activity events are consumed in-process and appended to
	// logs/activity.log; the loop reconnects on broker failure.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
