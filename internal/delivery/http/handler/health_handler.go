package handler

import (
	"skillswap/internal/database"
	"skillswap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"

	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
		}
	} else {
		dbStatus = "not configured"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"status":   status,
		"database": dbStatus,
	})
}
