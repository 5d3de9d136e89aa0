package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	uc usecase.ConnectionUsecase
}

type connectionRequestBody struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	Message    string    `json:"message"`
}

func NewConnectionHandler(uc usecase.ConnectionUsecase) *ConnectionHandler {
	return &ConnectionHandler{uc: uc}
}

func (h *ConnectionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/request", h.Request)
	r.Get("/", h.List)
	r.Get("/status/:target_user_id", h.Status)
	r.Put("/:id/accept", h.Accept)
	r.Put("/:id/reject", h.Reject)
	r.Delete("/:id/cancel", h.Cancel)
}

func (h *ConnectionHandler) Request(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req connectionRequestBody
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Request(c.Context(), userID, req.ReceiverID, req.Message)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewConnectionResponse(created))
}

func (h *ConnectionHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	groups, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionListResponse(groups))
}

func (h *ConnectionHandler) Status(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	targetID, err := uuid.Parse(c.Params("target_user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	status, err := h.uc.Status(c.Context(), userID, targetID)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionStatusResponse(status))
}

func (h *ConnectionHandler) Accept(c fiber.Ctx) error {
	return h.respond(c, usecase.DecisionAccept)
}

func (h *ConnectionHandler) Reject(c fiber.Ctx) error {
	return h.respond(c, usecase.DecisionReject)
}

func (h *ConnectionHandler) respond(c fiber.Ctx, d usecase.Decision) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid connection id", nil, err)
	}

	updated, err := h.uc.Respond(c.Context(), userID, id, d)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionResponse(updated))
}

func (h *ConnectionHandler) Cancel(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid connection id", nil, err)
	}

	if err := h.uc.Cancel(c.Context(), userID, id); err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapConnectionUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSelfConnection):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot connect with yourself", nil, err)
	case errors.Is(err, usecase.ErrConnectionExists):
		return middleware.NewAppError(fiber.StatusBadRequest, "Connection already exists", nil, err)
	case errors.Is(err, usecase.ErrConnectionNotPending):
		return middleware.NewAppError(fiber.StatusBadRequest, "Connection already processed", nil, err)
	case errors.Is(err, usecase.ErrConnectionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Connection not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
