package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/lukaswerth/business-number-service/internal/config"
	"github.com/lukaswerth/business-number-service/internal/database"
	"github.com/lukaswerth/business-number-service/internal/handler"
	"github.com/lukaswerth/business-number-service/internal/middleware"
	"github.com/lukaswerth/business-number-service/internal/queue"
	"github.com/lukaswerth/business-number-service/internal/repository"
	"github.com/lukaswerth/business-number-service/internal/router"
	"github.com/lukaswerth/business-number-service/internal/sequence"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Schema bootstrap runs before any traffic is served.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	customers := repository.NewCustomerRepo(db)
	orders := repository.NewOrderRepo(db)
	counters := repository.NewSequenceRepo(db)
	gen := sequence.NewGenerator(counters)

	authHandler := handler.NewAuthHandler(cfg, users, sessions)
	pageHandler := handler.NewPageHandler(cfg, sessions, "public")
	genHandler := handler.NewGenerateHandler(gen, customers, orders)
	lookupHandler := handler.NewLookupHandler(customers, orders)

	sess := middleware.Session(cfg.SessionSecret, sessions)

	// Redis is optional; with no client the lookup cache disables itself.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; lookup cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Static("/static", "public")

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, pageHandler, sess)
	router.RegisterGenerate(e, genHandler, lookupHandler, sess, config.LoadCacheConfig(), rdb)

	// The issued-number consumer keeps its own reconnect loop; a missing
	// broker only costs the event log.
	go func() {
		if err := queue.StartIssuedConsumer(); err != nil {
			log.Printf("issued consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
