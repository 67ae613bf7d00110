package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CacheChecker reports flag cache liveness.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	db    *gorm.DB
	cache CacheChecker
}

func NewHealthHandler(db *gorm.DB, cache CacheChecker) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok", "database": "up", "cache": "up"}
	code := fiber.StatusOK

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		status["status"] = "degraded"
		status["database"] = "down"
		code = fiber.StatusServiceUnavailable
	}

	// A down cache degrades to always-query, so it does not fail the check.
	if h.cache.HealthCheck(c.UserContext()) != nil {
		status["cache"] = "down"
	}

	return c.Status(code).JSON(status)
}
