// Package main is the entry point for the fraud screening service.
// It initializes the Postgres store, the Redis flag cache and the metrics
// server, then starts the HTTP listener.
package main

import (
	"context"
	"log"
	"time"

	"fraudwatch/internal/config"
	"fraudwatch/internal/metrics"
	"fraudwatch/internal/repositories"
	"fraudwatch/internal/repositories/cache"
	"fraudwatch/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	db, err := repositories.InitDB(repositories.DefaultDBConfig())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	flags := cache.NewFlagService(redisClient)
	defer func() {
		if err := flags.Close(); err != nil {
			log.Printf("Failed to close Redis connection: %v", err)
		}
	}()

	// A down cache is tolerated at startup; rules degrade to always-query.
	if err := flags.HealthCheck(context.Background()); err != nil {
		log.Printf("Redis unavailable, flag cache degraded: %v", err)
	}

	collector := metrics.NewPrometheusCollector()
	collector.StartServer(":" + config.GetEnv("METRICS_PORT", "9090"))

	app := fiber.New()

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/transactions", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("INGEST_RATE_LIMIT", 100),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, db, flags, collector)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "8000")))
}
