package handler

import (
	"context"
	"net/http/httptest"
	"testing"

	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/matching"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubMatchUsecase struct {
	gotFilter repository.UserSearchFilter
}

func (s *stubMatchUsecase) ComputeMatches(_ context.Context, _ uuid.UUID, _ matching.Filter) ([]usecase.MatchCandidate, error) {
	return nil, nil
}

func (s *stubMatchUsecase) GetMatchDetails(_ context.Context, _, _ uuid.UUID) (usecase.MatchDetails, error) {
	return usecase.MatchDetails{}, nil
}

func (s *stubMatchUsecase) SearchUsers(_ context.Context, _ uuid.UUID, f repository.UserSearchFilter) ([]repository.UserProfile, error) {
	s.gotFilter = f
	return nil, nil
}

func TestSearch_ReadsNamedQueryParams(t *testing.T) {
	stub := &stubMatchUsecase{}

	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		c.Locals(middleware.CtxUserIDKey, uuid.New())
		return c.Next()
	})
	NewMatchHandler(stub).RegisterRoutes(app.Group("/matches"))

	req := httptest.NewRequest("GET", "/matches/search?query=ana&category=Music&location=Lisbon&skill_type=offered", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	want := repository.UserSearchFilter{
		Query:     "ana",
		Category:  "Music",
		Location:  "Lisbon",
		SkillType: "offered",
	}
	if stub.gotFilter != want {
		t.Fatalf("unexpected filter: %+v", stub.gotFilter)
	}
}
