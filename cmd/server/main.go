package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/movietix/backend/internal/booking"
	"github.com/movietix/backend/internal/broadcast"
	"github.com/movietix/backend/internal/config"
	"github.com/movietix/backend/internal/database"
	"github.com/movietix/backend/internal/handler"
	"github.com/movietix/backend/internal/queue"
	"github.com/movietix/backend/internal/repository"
	"github.com/movietix/backend/internal/router"
	"github.com/movietix/backend/internal/ticket"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly

	cfg := config.Load()

	db, err := database.Open(database.Config{
		User:        cfg.DBUser,
		Pass:        cfg.DBPass,
		Host:        cfg.DBHost,
		Port:        cfg.DBPort,
		Name:        cfg.DBName,
		MaxConns:    cfg.DBMaxConns,
		ConnTTL:     time.Duration(cfg.DBConnTTLMin) * time.Minute,
		PingTimeout: time.Duration(cfg.DBPingSec) * time.Second,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil when Redis is absent; cache and rate
	// limit middleware degrade to pass-through in that case

	// Repositories.
	users := repository.NewUserRepo(db)
	cinemas := repository.NewCinemaRepo(db)
	screens := repository.NewScreenRepo(db)
	movies := repository.NewMovieRepo(db)
	showSeats := repository.NewShowSeatRepo(db)
	shows := repository.NewShowRepo(db, showSeats)
	bookings := repository.NewBookingRepo(db)

	// The hub snapshots straight from the seat repository so every
	// broadcast reflects committed state.
	hub := broadcast.NewHub(func(ctx context.Context, showID string) (interface{}, error) {
		return showSeats.ListByShow(ctx, showID)
	})

	svc := booking.NewService(screens, shows, showSeats, bookings, hub)
	tickets := ticket.NewGenerator(cfg.PublicDir)

	// Background consumer mirrors paid bookings into logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	authH := handler.NewAuthHandler(cfg, users)
	cinemaH := handler.NewCinemaHandler(cinemas, screens)
	movieH := handler.NewMovieHandler(movies, cfg.PublicDir)
	showH := handler.NewShowAdminHandler(movies, svc)
	browseH := handler.NewBrowseHandler(movies, cinemas, screens, shows, svc)
	bookingH := handler.NewBookingHandler(svc, bookings, users, tickets)
	liveH := handler.NewLiveHandler(hub, svc)

	router.RegisterRoutes(e, cfg.PublicDir)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, browseH, liveH, config.LoadCacheConfig(), rdb)
	router.RegisterAdmin(e, cfg.JWTSecret, cinemaH, movieH, showH)
	router.RegisterCustomer(e, cfg.JWTSecret, bookingH, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
