package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/config"
	"github.com/smartfc/football-center/internal/database"
	"github.com/smartfc/football-center/internal/handler"
	"github.com/smartfc/football-center/internal/middleware"
	"github.com/smartfc/football-center/internal/queue"
	"github.com/smartfc/football-center/internal/repository"
	"github.com/smartfc/football-center/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	bundleRepo := repository.NewBundleRepo(db)
	membershipRepo := repository.NewMembershipRepo(db)
	discountRepo := repository.NewDiscountRepo(db)
	teamRepo := repository.NewTeamRepo(db)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	sessionH := handler.NewSessionHandler(sessionRepo, bookingRepo, userRepo)
	bookingH := handler.NewBookingHandler(sessionRepo, bookingRepo)
	bundleH := handler.NewBundleHandler(bundleRepo)
	membershipH := handler.NewMembershipHandler(membershipRepo)
	discountH := handler.NewDiscountHandler(discountRepo)
	teamH := handler.NewTeamHandler(teamRepo, userRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterSessions(e, sessionH, cfg.JWTSecret, cache)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret)
	router.RegisterBundles(e, bundleH, cfg.JWTSecret)
	router.RegisterMemberships(e, membershipH, cfg.JWTSecret)
	router.RegisterDiscounts(e, discountH, cfg.JWTSecret)
	router.RegisterTeams(e, teamH, cfg.JWTSecret)

	// Booking events land in logs/booking.log via the broker consumer.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
