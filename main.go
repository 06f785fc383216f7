package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gbinu42/hudra-media/config"
	"github.com/gbinu42/hudra-media/handlers"
	"github.com/gbinu42/hudra-media/services"
	"github.com/gbinu42/hudra-media/utils"
)

func main() {
	// Temp storage for request-scoped media files
	tempFiles, err := services.NewTempFiles(config.TempDir)
	if err != nil {
		log.Fatalf("Failed to create temp directory: %v", err)
	}

	// Start cleanup scheduler
	cleanupCron := utils.StartCleanupScheduler(tempFiles.Root())
	defer cleanupCron.Stop()

	// Media services share one bounded process runner
	runner := services.NewRunner(config.MaxConcurrentProcesses)
	prober := services.NewProber(runner)

	handler := handlers.New(
		services.NewTranscoder(runner, tempFiles, prober),
		services.NewTrimmer(runner, tempFiles, prober),
		services.NewDownloader(runner, tempFiles, prober),
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:       "Hudra Media",
		ServerHeader:  "hudra-media",
		CaseSensitive: true,
		StrictRouting: false,
		// Disable body limit for large audio uploads
		BodyLimit: 0,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Accept",
	}))

	// Media routes, gated to non-production deployments
	media := app.Group("/api/media", handlers.RequireNonProduction)
	media.Post("/compress", handler.HandleCompress)
	media.Post("/trim", handler.HandleTrim)
	media.Post("/download", handler.HandleDownload)

	// Health check
	app.Get("/health", handlers.HandleHealth)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down: %v\n", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%d", config.Port)
	log.Printf("Starting server on http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
