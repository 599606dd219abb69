package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/reelcraft/api/internal/config"
	"github.com/reelcraft/api/internal/handler"
	"github.com/reelcraft/api/internal/logging"
	"github.com/reelcraft/api/internal/media"
	"github.com/reelcraft/api/internal/middleware"
	"github.com/reelcraft/api/internal/render"
	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/internal/worker"
	ws "github.com/reelcraft/api/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(cfg.Server.Env == "development")

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis not available")
	}

	// Initialize Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize validator
	validate := validator.New()

	// Initialize WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize media layer
	runtime := media.NewRuntime(cfg.Media.FFmpegPath, cfg.Media.FFprobePath)
	fonts, err := render.NewFontRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fonts")
	}

	// Initialize services
	projectService := service.NewProjectService(redisClient, hub)
	assetService := service.NewAssetService(cfg.Media.UploadDir, runtime.Prober())
	generateService := service.NewGenerateService(redisClient, asynqClient, time.Duration(cfg.Generate.TimeoutMin)*time.Minute)
	exportService := service.NewExportService(projectService)
	subtitleService := service.NewSubtitleService(projectService)
	previewService := service.NewPreviewService(projectService, runtime, fonts, cfg.Canvas.Width, cfg.Canvas.Height)
	playbackService := service.NewPlaybackService(projectService, hub, runtime, fonts, cfg.Canvas.Width, cfg.Canvas.Height)

	// Initialize handlers
	projectHandler := handler.NewProjectHandler(projectService, validate)
	assetHandler := handler.NewAssetHandler(assetService)
	generateHandler := handler.NewGenerateHandler(generateService, projectService, validate)
	exportHandler := handler.NewExportHandler(exportService, validate)
	subtitleHandler := handler.NewSubtitleHandler(subtitleService)
	previewHandler := handler.NewPreviewHandler(previewService)
	playbackHandler := handler.NewPlaybackHandler(playbackService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, cfg.JWT.Expiration)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    200 * 1024 * 1024, // 200MB, uploads carry raw video
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api", authMiddleware.Authenticate())

	// Project routes
	projects := api.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:projectId", projectHandler.Get)
	projects.Delete("/:projectId", projectHandler.Delete)
	projects.Post("/:projectId/dispatch", rateLimiter.DispatchLimit(cfg.RateLimit.DispatchPerMin), projectHandler.Dispatch)
	projects.Post("/:projectId/undo", projectHandler.Undo)
	projects.Post("/:projectId/redo", projectHandler.Redo)
	projects.Post("/:projectId/subtitles/import", subtitleHandler.Import)
	projects.Get("/:projectId/preview", previewHandler.Frame)

	// Playback routes
	playbackRoutes := projects.Group("/:projectId/playback")
	playbackRoutes.Post("/play", playbackHandler.Play)
	playbackRoutes.Post("/pause", playbackHandler.Pause)
	playbackRoutes.Post("/toggle", playbackHandler.Toggle)
	playbackRoutes.Post("/seek", playbackHandler.Seek)
	playbackRoutes.Post("/forward", playbackHandler.Forward)
	playbackRoutes.Post("/rewind", playbackHandler.Rewind)
	playbackRoutes.Post("/stop", playbackHandler.Stop)

	// Asset routes
	assets := api.Group("/assets", rateLimiter.UploadLimit(cfg.RateLimit.UploadPerHour))
	assets.Post("/upload", assetHandler.Upload)

	// Generation routes
	generate := api.Group("/generate")
	generate.Post("/video", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), generateHandler.Video)
	generate.Post("/image", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), generateHandler.Image)
	generate.Post("/subtitles", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), generateHandler.Subtitles)
	generate.Get("/status/:jobId", generateHandler.Status)
	generate.Get("/result/:jobId", generateHandler.Result)
	generate.Post("/cancel/:jobId", generateHandler.Cancel)

	// Export routes
	export := api.Group("/export", rateLimiter.ExportLimit(cfg.RateLimit.ExportPerHour))
	export.Post("/", exportHandler.Export)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/jobs/:jobId", websocket.New(func(c *websocket.Conn) {
		hub.HandleConnection(c, c.Params("jobId"))
	}))

	app.Get("/ws/projects/:projectId", websocket.New(func(c *websocket.Conn) {
		hub.HandleConnection(c, c.Params("projectId"))
	}))

	// Start Asynq worker server
	go startWorkerServer(cfg, generateService, projectService, subtitleService, hub)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func startWorkerServer(cfg *config.Config, generateService *service.GenerateService, projectService *service.ProjectService, subtitleService *service.SubtitleService, hub *ws.Hub) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Generate.Concurrency,
			Queues: map[string]int{
				"generate": 10,
			},
		},
	)

	generateWorker := worker.NewGenerateWorker(generateService, projectService, subtitleService, hub)

	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypeGenerate, generateWorker.ProcessTask)

	if err := srv.Run(mux); err != nil {
		log.Error().Err(err).Msg("asynq worker error")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "SERVICE_ERROR",
			"message": message,
		},
	})
}
