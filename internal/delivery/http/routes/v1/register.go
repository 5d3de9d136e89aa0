package v1

import (
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.MatchCache, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	ledgerRepo := repository.NewPostgresLedgerRepository(db)
	connRepo := repository.NewPostgresConnectionRepository(db)
	vouchRepo := repository.NewPostgresVouchRepository(db)
	messageRepo := repository.NewPostgresMessageRepository(db)

	var notifier usecase.Notifier
	if hub != nil {
		notifier = ws.NewNotifier(hub)
	}

	matchUC := usecase.NewMatchUsecase(userRepo, cache, cfg.Redis.TTL)
	ledgerUC := usecase.NewLedgerUsecase(ledgerRepo, skillRepo, cache)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	connUC := usecase.NewConnectionUsecase(connRepo, userRepo, notifier)
	vouchUC := usecase.NewVouchUsecase(vouchRepo, connRepo, userRepo)
	messageUC := usecase.NewMessageUsecase(messageRepo, connRepo, userRepo, notifier)
	userUC := usecase.NewUserUsecase(userRepo)

	protected := r.Group("", authMw.Middleware())

	handler.NewMatchHandler(matchUC).RegisterRoutes(protected.Group("/matches"))
	handler.NewConnectionHandler(connUC).RegisterRoutes(protected.Group("/connections"))
	handler.NewUserHandler(userUC, vouchUC).RegisterRoutes(protected.Group("/users"))
	handler.NewSkillHandler(skillUC).RegisterRoutes(protected.Group("/skills"))
	handler.NewMessageHandler(messageUC).RegisterRoutes(protected.Group("/messages"))
	handler.NewLedgerHandler(ledgerUC).RegisterRoutes(protected)

	if hub != nil {
		wsHandler := ws.NewHandler(hub, logger)
		protected.Get("/events/ws", wsHandler.HandleEventsWS)
	}
}
