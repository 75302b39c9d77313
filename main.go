package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"garage-club-system/handlers"
	"garage-club-system/middleware"
	"garage-club-system/models"
	"garage-club-system/services"
	"garage-club-system/utils"
	"garage-club-system/workers"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB — image uploads only
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	prometheus := fiberprometheus.New("garage-club-system")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Session-Token, X-Service-Token, X-Device-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Car{},
		&models.Challenge{},
		&models.ChallengeParticipation{},
		&models.GarageSubmission{},
		&models.Reaction{},
		&models.Garage{},
		&models.GarageEntry{},
		&models.Invite{},
		&models.Unlock{},
		&models.UnlockableItem{},
		&models.UserProgress{},
		&models.ClubMember{},
		&models.MarketValuation{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	carService := services.NewCarService(db)
	challengeService := services.NewChallengeService(db)
	progressionService := services.NewProgressionService(db)
	unlockService := services.NewUnlockService(db)
	submissionService := services.NewSubmissionService(db, progressionService, unlockService)
	reactionService := services.NewReactionService(db, unlockService)
	inviteService := services.NewInviteService(db, unlockService)
	garageService := services.NewGarageService(db)
	memberService := services.NewMemberService(db)

	authServiceURL := os.Getenv("AUTH_SERVICE_URL")
	if authServiceURL == "" {
		log.Fatal("AUTH_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("GARAGE_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("GARAGE_SERVICE_TOKEN environment variable not set")
	}
	authClient := services.NewAuthServiceClient(authServiceURL, serviceToken)

	syncServiceURL := os.Getenv("SYNC_SERVICE_URL")
	if syncServiceURL == "" {
		log.Fatal("SYNC_SERVICE_URL environment variable not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	memberSyncWorker := workers.NewMemberSyncWorker(db, syncServiceURL, "/api/v1/public/profiles", serviceToken)
	memberSyncWorker.Start(ctx)

	valuationSyncClient := workers.NewValuationSyncClient(db)
	go workers.PollValuations(ctx, valuationSyncClient, 10*time.Minute)

	challengeService.StartActivationScheduler()

	// ✅ Setup routes — enforced Gateway auth on everything
	handlers.SetupCatalogRoutes(app, carService)
	handlers.SetupChallengeRoutes(app, challengeService)
	handlers.SetupCommunityRoutes(app,
		garageService,
		submissionService,
		reactionService,
		inviteService,
		unlockService,
		progressionService,
		memberService,
		authClient,
	)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Member Sync Worker running")
	log.Println("✅ Valuation polling running (every 10m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
