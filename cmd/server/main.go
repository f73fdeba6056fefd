package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"pressmind/internal/config"
	"pressmind/internal/database"
	"pressmind/internal/generation"
	"pressmind/internal/handlers"
	"pressmind/internal/jobs"
	"pressmind/internal/logging"
	"pressmind/internal/middleware"
	"pressmind/internal/services"
	"pressmind/pkg/auth"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting PressMind Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s)", cfg.Port)

	// MongoDB is the primary store and is required
	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(context.Background())
	log.Println("✅ MongoDB connected successfully")

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongoDB.Initialize(initCtx); err != nil {
		cancelInit()
		log.Fatalf("❌ Failed to initialize database indexes: %v", err)
	}

	// Redis is optional; without it session writes are last-write-wins
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (session locking disabled)", err)
			redisService = nil
		} else {
			defer redisService.Close()
			log.Println("✅ Redis connected successfully")
		}
	} else {
		log.Println("⚠️ REDIS_URL not set - per-session locking disabled (last write wins)")
	}

	// JWT auth; nil means the middleware enforces its dev-only bypass policy
	var jwtAuth *auth.JWTAuth
	if cfg.JWTSecret != "" {
		jwtAuth, err = auth.NewJWTAuth(cfg.JWTSecret, 0)
		if err != nil {
			log.Fatalf("❌ Failed to initialize JWT auth: %v", err)
		}
		log.Println("✅ JWT authentication enabled")
	}

	// Text-generation gateway; a mock backend keeps the flow usable without
	// provider credentials
	var llm generation.LLMClient
	if cfg.LLMAPIKey != "" {
		llm, err = generation.NewOpenAILLM(generation.LLMSettings{
			Model:   cfg.LLMModel,
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
		})
		if err != nil {
			log.Fatalf("❌ Failed to initialize LLM client: %v", err)
		}
		log.Printf("✅ LLM provider configured (model: %s)", cfg.LLMModel)
	} else {
		llm = &generation.MockLLM{}
		log.Println("⚠️ LLM_API_KEY not set - using mock generation backend")
	}
	gateway := generation.NewGateway(llm, cfg.LLMModel, cfg.LLMTemperature, cfg.LLMRatePerMin)

	// Services
	metrics := services.InitMetrics()
	sessionStore := services.NewCreationSessionStore(mongoDB, cfg.SessionTTL, cfg.SessionMaxAge)
	categoryService := services.NewCategoryService(mongoDB, cfg.CategoryCacheTTL)
	tagService := services.NewTagService(mongoDB, cfg.TagCacheTTL)
	postService := services.NewPostService(mongoDB)
	leadService := services.NewLeadService(mongoDB)
	orchestrator := services.NewCreationOrchestrator(
		sessionStore, categoryService, tagService, postService, gateway, redisService, metrics,
	)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := categoryService.Seed(seedCtx); err != nil {
		log.Printf("⚠️ Failed to seed default categories: %v", err)
	}
	cancelSeed()
	cancelInit()

	// Background jobs
	jobScheduler := jobs.NewJobScheduler()
	jobScheduler.Register("session-expiry", jobs.NewSessionExpiryChecker(sessionStore, time.Hour))
	if err := jobScheduler.Start(); err != nil {
		log.Printf("⚠️ Failed to start job scheduler: %v", err)
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "PressMind v1.0",
		ReadTimeout:  5 * time.Minute,  // generation-triggering messages block on the LLM
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  5 * time.Minute,
		BodyLimit:    5 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("pressmind")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	rateLimitConfig := middleware.LoadRateLimitConfig()
	log.Printf("🛡️  [RATE-LIMIT] Loaded config: Global=%d/min, Auth=%d/min, Generation=%d/min",
		rateLimitConfig.GlobalAPIMax,
		rateLimitConfig.AuthenticatedMax,
		rateLimitConfig.GenerationMax,
	)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173,http://localhost:3000"
		log.Println("⚠️  ALLOWED_ORIGINS not set, using development defaults")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: allowedOrigins != "*",
	}))

	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))

	// Handlers
	healthHandler := handlers.NewHealthHandler(mongoDB, redisService)
	assistantHandler := handlers.NewAssistantHandler(orchestrator)
	seoHandler := handlers.NewSEOHandler()
	postHandler := handlers.NewPostHandler(postService)
	taxonomyHandler := handlers.NewTaxonomyHandler(categoryService, tagService)
	leadHandler := handlers.NewLeadHandler(leadService, metrics)

	// Routes
	app.Get("/health", healthHandler.Handle)

	api := app.Group("/api", middleware.AuthMiddleware(jwtAuth), middleware.AuthenticatedRateLimiter(rateLimitConfig))

	assistant := api.Group("/assistant")
	assistant.Post("/sessions", assistantHandler.StartSession)
	assistant.Get("/sessions", assistantHandler.ListSessions)
	assistant.Get("/sessions/:id", assistantHandler.GetSession)
	assistant.Post("/sessions/:id/messages", middleware.GenerationRateLimiter(rateLimitConfig), assistantHandler.SendMessage)
	assistant.Post("/sessions/:id/cancel", assistantHandler.Cancel)
	assistant.Post("/sessions/:id/save-draft", assistantHandler.SaveDraft)

	api.Post("/seo/analyze", seoHandler.Analyze)
	api.Post("/seo/suggest-tags", seoHandler.SuggestTags)
	api.Post("/seo/readability", seoHandler.Readability)

	api.Get("/posts", postHandler.List)
	api.Get("/posts/:id", postHandler.Get)

	api.Get("/categories", taxonomyHandler.ListCategories)
	api.Get("/categories/:id", taxonomyHandler.GetCategory)
	api.Post("/categories", middleware.RequireRole("admin"), taxonomyHandler.CreateCategory)
	api.Get("/tags", taxonomyHandler.ListTags)

	leads := api.Group("/leads")
	leads.Post("/", leadHandler.Create)
	leads.Get("/", leadHandler.List)
	leads.Patch("/:id/status", leadHandler.UpdateStatus)
	leads.Post("/:id/messages", leadHandler.AddMessage)
	leads.Get("/:id/messages", leadHandler.ListMessages)

	log.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)
	log.Printf("📡 Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("📊 Metrics: http://localhost:%s/metrics", cfg.Port)
	log.Println("🕐 Background jobs: session expiry check (hourly)")

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		jobScheduler.Stop()

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
