package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/config"
	"github.com/iliyamo/campus-events/internal/database"
	"github.com/iliyamo/campus-events/internal/handler"
	"github.com/iliyamo/campus-events/internal/middleware"
	"github.com/iliyamo/campus-events/internal/queue"
	"github.com/iliyamo/campus-events/internal/repository"
	"github.com/iliyamo/campus-events/internal/router"
	"github.com/iliyamo/campus-events/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting disabled, email verification degraded")
	}

	uploads, err := storage.NewStore(cfg.UploadDir, cfg.UploadMaxBytes, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	verifications := repository.NewVerificationRepo(rdb)
	clubRequests := repository.NewClubRequestRepo(db)
	eventRequests := repository.NewEventRequestRepo(db)
	clubs := repository.NewClubRepo(db)
	events := repository.NewEventRepo(db)
	posters := repository.NewPosterRepo(db)
	tickets := repository.NewTicketRepo(db)
	posts := repository.NewPostRepo(db)
	subscriptions := repository.NewSubscriptionRepo(db)
	ratings := repository.NewRatingRepo(db)
	comments := repository.NewCommentRepo(db)
	personal := repository.NewPersonalEventRepo(db)
	notifications := repository.NewNotificationRepo(db)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens, verifications)
	profileH := handler.NewProfileHandler(users, notifications)
	clubRequestH := handler.NewClubRequestHandler(clubRequests, uploads)
	eventRequestH := handler.NewEventRequestHandler(eventRequests)
	clubH := handler.NewClubHandler(clubs, subscriptions, ratings, uploads)
	eventH := handler.NewEventHandler(events, comments)
	posterH := handler.NewPosterHandler(posters, tickets, uploads)
	ticketH := handler.NewTicketHandler(tickets, posters, uploads)
	postH := handler.NewPostHandler(posts, uploads)
	calendarH := handler.NewCalendarHandler(tickets, personal)

	// Background workers: the notification consumer persists broker events
	// as user notifications, the sweeper removes orphaned uploads.
	go func() {
		if err := queue.StartNotificationConsumer(notifications); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()
	go uploads.RunSweeper(context.Background(), db)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, cfg.UploadDir)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, clubH, eventH, posterH, postH)
	router.RegisterStudent(e, cfg.JWTSecret, profileH, clubRequestH, eventRequestH, clubH, eventH, postH, ticketH, calendarH)
	router.RegisterHeadAdmin(e, cfg.JWTSecret, clubH, eventRequestH, posterH, postH, ticketH)
	router.RegisterSuperAdmin(e, cfg.JWTSecret, clubRequestH, eventRequestH, clubH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
