package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexusmatch/config"
	"nexusmatch/handlers"
	"nexusmatch/middleware"
	"nexusmatch/seed"
	"nexusmatch/services"
	"nexusmatch/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatal("invalid configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, closeBlobs, err := openBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open blob store:", err)
	}
	defer closeBlobs()

	generator, err := newGenerator(cfg)
	if err != nil {
		log.Fatal("failed to build seed generator:", err)
	}

	store := services.New(blobs, generator,
		services.WithKeyPrefix(cfg.KeyPrefix),
		services.WithStrictWrites(cfg.StrictWrites),
	)
	store.Load(ctx)

	sched, err := store.StartFlushScheduler(cfg.FlushInterval)
	if err != nil {
		log.Fatal("failed to start flush scheduler:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "nexusmatch",
		DisableStartupMessage: true,
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Origins(),
		AllowMethods: "GET,POST,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-App-Token, Cache-Control",
		MaxAge:       86400, // 24 hours
	}))
	app.Use(middleware.DeviceTokenMiddleware(cfg.AppToken))

	handlers.SetupRoutes(app, store)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ Storage backend: %s", cfg.Backend)
	log.Printf("✅ CORS configured for origins: %s", cfg.Origins())

	<-ctx.Done()
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Flush(flushCtx); err != nil {
		log.Printf("[FLUSH] ❌ Final flush failed: %v", err)
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.BackendMemory:
		log.Println("⚠️  Memory backend: nothing survives a restart")
		return storage.NewMemory(), noop, nil

	case config.BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = storage.DefaultSQLitePath()
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("✅ SQLite store at %s", path)
		return db, func() { _ = db.Close() }, nil

	case config.BackendPostgres:
		pg, err := storage.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, noop, nil

	case config.BackendR2:
		r2, err := storage.OpenR2(ctx, cfg.R2)
		if err != nil {
			return nil, nil, err
		}
		return r2, noop, nil

	case config.BackendDynamoDB:
		d, err := storage.OpenDynamo(ctx, cfg.AWSRegion, cfg.DynamoTable)
		if err != nil {
			return nil, nil, err
		}
		return d, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func newGenerator(cfg *config.Config) (seed.Generator, error) {
	catalog := seed.DefaultCatalog()
	if cfg.SeedCatalog != "" {
		c, err := seed.LoadCatalog(cfg.SeedCatalog)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	var gen seed.Generator = seed.NewRandom(catalog)
	if cfg.SeedURL != "" {
		gen = seed.NewRemote(cfg.SeedURL, cfg.SeedServiceToken, gen)
	}
	return gen, nil
}
