package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/viaggiapp/travel-booking/internal/config"
	"github.com/viaggiapp/travel-booking/internal/database"
	"github.com/viaggiapp/travel-booking/internal/handler"
	"github.com/viaggiapp/travel-booking/internal/queue"
	"github.com/viaggiapp/travel-booking/internal/repository"
	"github.com/viaggiapp/travel-booking/internal/router"
	"github.com/viaggiapp/travel-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}

	packageRepo := repository.NewPackageRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)

	bookingSvc := service.NewBookingService(bookingRepo, queue.NewPublisher())

	// Background consumer records booking events; it reconnects on its
	// own and never takes the API down.
	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Logger(), echomw.Recover())
	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, userRepo),
		Catalog:      handler.NewCatalogHandler(packageRepo),
		Booking:      handler.NewBookingHandler(bookingSvc, bookingRepo),
		AdminBooking: handler.NewAdminBookingHandler(bookingSvc, bookingRepo),
		AdminPackage: handler.NewAdminPackageHandler(packageRepo),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
