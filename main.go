package main

import (
	"booking_manager/config"
	"booking_manager/database"
	"booking_manager/gateway"
	"booking_manager/handler"
	"booking_manager/helper"
	"booking_manager/router"
	"booking_manager/security"
	"booking_manager/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	clock := helper.NewSystemClock()
	store := database.NewBookingStore(db)
	webhookLog := database.NewWebhookLog(db)
	sheet := utils.NewSheetClient(cfg.SheetEndpoint, cfg.SheetToken)
	mailer := utils.NewMailer(cfg)

	registry := helper.NewInviteRegistry(sheet.FetchInviteCodes, clock, helper.DefaultInviteCacheTTL)
	refs := helper.NewReferenceGenerator(cfg.EventPrefix, clock)
	manager := helper.NewBookingManager(store, registry, refs, clock)
	dispatcher := helper.NewDispatcher(store, mailer, sheet)

	gw := gateway.NewClient(gateway.Config{
		AppID:     cfg.CashfreeAppID,
		SecretKey: cfg.CashfreeSecret,
		BaseURL:   cfg.CashfreeBaseURL,
		ReturnURL: cfg.AppURL + "/" + cfg.EventSlug() + "/payment/return",
		NotifyURL: cfg.AppURL + "/cashfree/webhook",
	})
	reconciler := helper.NewReconciler(store, webhookLog, gw, dispatcher, clock)

	reclaim := helper.StartReclaimScheduler(manager)
	defer reclaim.Stop()
	resync, err := helper.StartSheetResyncScheduler(store, sheet)
	if err != nil {
		log.Fatalf("sheet resync scheduler: %v", err)
	}
	defer func() { _ = resync.Shutdown() }()
	defer dispatcher.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout: 30 * time.Second,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AppURL,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	h := handler.New(cfg, manager, reconciler, gw)
	limiter := security.NewRateLimiter(redisClient, 30, time.Minute)
	router.SetupRoutes(app, h, limiter)

	log.Fatal(app.Listen(":" + cfg.Port))
}
