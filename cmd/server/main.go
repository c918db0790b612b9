package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/config"
	"github.com/iliyamo/venue-ticketing/internal/database"
	"github.com/iliyamo/venue-ticketing/internal/handler"
	"github.com/iliyamo/venue-ticketing/internal/intent"
	"github.com/iliyamo/venue-ticketing/internal/mailer"
	"github.com/iliyamo/venue-ticketing/internal/queue"
	"github.com/iliyamo/venue-ticketing/internal/repository"
	"github.com/iliyamo/venue-ticketing/internal/router"
	"github.com/iliyamo/venue-ticketing/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	shows := repository.NewShowRepo(db)
	payments := repository.NewPaymentRepo(db)
	analytics := repository.NewAnalyticsRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Background email pipeline: broker consumer feeding the SMTP mailer.
	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	})
	go func() {
		if err := queue.StartTicketEmailConsumer(mail); err != nil {
			log.Printf("ticket-email-consumer stopped: %v", err)
		}
	}()

	notifier := service.AsyncNotifier{}
	quotes := intent.NewQuoteHandler(shows, notifier, intent.DefaultTicketTypeTable(), cfg.PaymentLink)
	resolver := intent.NewResolver(quotes)

	e := echo.New()
	e.Use(router.CORS())

	router.RegisterRoutes(e)
	router.RegisterAgent(e, handler.NewWebhookHandler(resolver, shows))
	router.RegisterBooking(e, handler.NewBookingHandler(shows, payments, notifier), rdb)
	router.RegisterAnalytics(e, handler.NewAnalyticsHandler(analytics, shows), rdb)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterShowAdmin(e, handler.NewShowAdminHandler(shows), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
