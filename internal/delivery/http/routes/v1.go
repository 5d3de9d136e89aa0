package routes

import (
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	v1 "skillswap/internal/delivery/http/routes/v1"
	"skillswap/internal/usecase"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, cache usecase.MatchCache, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, cache, hub, logger)
}
