package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type memLedgerRepo struct {
	entries map[uuid.UUID]skill.LedgerEntry
}

func newMemLedgerRepo() *memLedgerRepo {
	return &memLedgerRepo{entries: make(map[uuid.UUID]skill.LedgerEntry)}
}

func (r *memLedgerRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.LedgerEntry, error) {
	out := make([]skill.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) FindByID(_ context.Context, id uuid.UUID) (skill.LedgerEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return skill.LedgerEntry{}, repository.ErrLedgerEntryNotFound
	}
	return e, nil
}

func (r *memLedgerRepo) Create(_ context.Context, e skill.LedgerEntry) (skill.LedgerEntry, error) {
	for _, existing := range r.entries {
		if existing.UserID == e.UserID && existing.SkillID == e.SkillID && existing.Direction == e.Direction {
			return skill.LedgerEntry{}, repository.ErrLedgerEntryDuplicate
		}
	}
	r.entries[e.ID] = e
	return e, nil
}

func (r *memLedgerRepo) Update(_ context.Context, e skill.LedgerEntry) (skill.LedgerEntry, error) {
	current, ok := r.entries[e.ID]
	if !ok || current.UserID != e.UserID {
		return skill.LedgerEntry{}, repository.ErrLedgerEntryNotFound
	}
	current.Proficiency = e.Proficiency
	current.Note = e.Note
	r.entries[e.ID] = current
	return current, nil
}

func (r *memLedgerRepo) Delete(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	e, ok := r.entries[id]
	if !ok {
		return repository.ErrLedgerEntryNotFound
	}
	if e.UserID != userID {
		return repository.ErrLedgerEntryForbidden
	}
	delete(r.entries, id)
	return nil
}

type stubSkillRepo struct{}

func (stubSkillRepo) ListSkills(_ context.Context, _ string) ([]skill.Skill, error) {
	return nil, nil
}

func (stubSkillRepo) UpsertByName(_ context.Context, name, category string) (skill.Skill, error) {
	return skill.Skill{ID: uuid.New(), Name: name, Category: category}, nil
}

func (stubSkillRepo) ExistsByID(_ context.Context, _ uuid.UUID) (bool, error) {
	return true, nil
}

type spyCache struct {
	deletedPatterns []string
}

func (c *spyCache) GetJSON(_ context.Context, _ string, _ any) (bool, error) { return false, nil }

func (c *spyCache) SetJSON(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }

func (c *spyCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deletedPatterns = append(c.deletedPatterns, pattern)
	return nil
}

func TestLedger_MutationsInvalidateOwnerMatchCache(t *testing.T) {
	ctx := context.Background()
	repo := newMemLedgerRepo()
	cache := &spyCache{}
	uc := NewLedgerUsecase(repo, stubSkillRepo{}, cache)

	userID := uuid.New()
	created, err := uc.AddEntry(ctx, userID, AddLedgerEntryInput{
		SkillID:     uuid.New(),
		Direction:   "offered",
		Proficiency: 3,
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(cache.deletedPatterns) != 1 {
		t.Fatalf("expected 1 invalidation after add, got %v", cache.deletedPatterns)
	}
	if cache.deletedPatterns[0] != matchCachePattern(userID) {
		t.Fatalf("unexpected pattern: %s", cache.deletedPatterns[0])
	}

	if _, err := uc.UpdateEntry(ctx, userID, created.ID, UpdateLedgerEntryInput{Proficiency: 5, Note: "weekly"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(cache.deletedPatterns) != 2 {
		t.Fatalf("expected invalidation after update, got %v", cache.deletedPatterns)
	}

	if err := uc.DeleteEntry(ctx, userID, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(cache.deletedPatterns) != 3 {
		t.Fatalf("expected invalidation after delete, got %v", cache.deletedPatterns)
	}
}

func TestLedger_FailedUpdateLeavesCacheAlone(t *testing.T) {
	ctx := context.Background()
	repo := newMemLedgerRepo()
	cache := &spyCache{}
	uc := NewLedgerUsecase(repo, stubSkillRepo{}, cache)

	owner := uuid.New()
	created, err := uc.AddEntry(ctx, owner, AddLedgerEntryInput{SkillID: uuid.New(), Direction: "wanted"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	invalidations := len(cache.deletedPatterns)

	if _, err := uc.UpdateEntry(ctx, uuid.New(), created.ID, UpdateLedgerEntryInput{Note: "x"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.UpdateEntry(ctx, owner, uuid.New(), UpdateLedgerEntryInput{Note: "x"}); !errors.Is(err, ErrLedgerEntryNotFound) {
		t.Fatalf("expected ErrLedgerEntryNotFound, got %v", err)
	}
	if len(cache.deletedPatterns) != invalidations {
		t.Fatalf("failed updates must not invalidate, got %v", cache.deletedPatterns)
	}
}

func TestLedger_ProficiencyOnlyForOfferedEntries(t *testing.T) {
	ctx := context.Background()
	uc := NewLedgerUsecase(newMemLedgerRepo(), stubSkillRepo{}, nil)

	userID := uuid.New()
	if _, err := uc.AddEntry(ctx, userID, AddLedgerEntryInput{SkillID: uuid.New(), Direction: "wanted", Proficiency: 3}); !errors.Is(err, ErrInvalidProficiency) {
		t.Fatalf("expected ErrInvalidProficiency, got %v", err)
	}
	if _, err := uc.AddEntry(ctx, userID, AddLedgerEntryInput{SkillID: uuid.New(), Direction: "offered", Proficiency: 6}); !errors.Is(err, ErrInvalidProficiency) {
		t.Fatalf("expected ErrInvalidProficiency for out-of-range, got %v", err)
	}
}
