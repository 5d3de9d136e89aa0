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

type LedgerHandler struct {
	uc usecase.LedgerUsecase
}

type addLedgerEntryRequest struct {
	SkillID     uuid.UUID `json:"skill_id"`
	Direction   string    `json:"direction"`
	Proficiency int       `json:"proficiency"`
	Note        string    `json:"note"`
}

type updateLedgerEntryRequest struct {
	Proficiency int    `json:"proficiency"`
	Note        string `json:"note"`
}

func NewLedgerHandler(uc usecase.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

func (h *LedgerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *LedgerHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entries, err := h.uc.ListEntries(c.Context(), userID)
	if err != nil {
		return mapLedgerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewLedgerEntryResponses(entries))
}

func (h *LedgerHandler) Add(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addLedgerEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddEntry(c.Context(), userID, usecase.AddLedgerEntryInput{
		SkillID:     req.SkillID,
		Direction:   req.Direction,
		Proficiency: req.Proficiency,
		Note:        req.Note,
	})
	if err != nil {
		return mapLedgerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewLedgerEntryResponse(created))
}

func (h *LedgerHandler) Update(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid entry id", nil, err)
	}

	var req updateLedgerEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateEntry(c.Context(), userID, id, usecase.UpdateLedgerEntryInput{
		Proficiency: req.Proficiency,
		Note:        req.Note,
	})
	if err != nil {
		return mapLedgerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewLedgerEntryResponse(updated))
}

func (h *LedgerHandler) Delete(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid entry id", nil, err)
	}

	if err := h.uc.DeleteEntry(c.Context(), userID, id); err != nil {
		return mapLedgerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapLedgerUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidProficiency):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid proficiency", nil, err)
	case errors.Is(err, usecase.ErrLedgerEntryDuplicate):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already on your ledger", nil, err)
	case errors.Is(err, usecase.ErrLedgerEntryNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Ledger entry not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
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
