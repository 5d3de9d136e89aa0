package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound        = errors.New("skill not found")
	ErrLedgerEntryNotFound  = errors.New("ledger entry not found")
	ErrLedgerEntryDuplicate = errors.New("skill already on the ledger in that direction")
	ErrInvalidProficiency   = errors.New("invalid proficiency")
)

type AddLedgerEntryInput struct {
	SkillID     uuid.UUID
	Direction   string
	Proficiency int
	Note        string
}

type UpdateLedgerEntryInput struct {
	Proficiency int
	Note        string
}

type LedgerUsecase interface {
	ListEntries(ctx context.Context, userID uuid.UUID) ([]skill.LedgerEntry, error)
	AddEntry(ctx context.Context, userID uuid.UUID, in AddLedgerEntryInput) (skill.LedgerEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, in UpdateLedgerEntryInput) (skill.LedgerEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
}

type Ledger struct {
	entries repository.LedgerRepository
	skills  repository.SkillRepository
	cache   MatchCache
}

func NewLedgerUsecase(entries repository.LedgerRepository, skills repository.SkillRepository, cache MatchCache) *Ledger {
	return &Ledger{entries: entries, skills: skills, cache: cache}
}

func (u *Ledger) ListEntries(ctx context.Context, userID uuid.UUID) ([]skill.LedgerEntry, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.entries.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Ledger) AddEntry(ctx context.Context, userID uuid.UUID, in AddLedgerEntryInput) (skill.LedgerEntry, error) {
	if userID == uuid.Nil {
		return skill.LedgerEntry{}, ErrUnauthorized
	}
	if in.SkillID == uuid.Nil {
		return skill.LedgerEntry{}, ErrInvalidInput
	}
	direction, ok := skill.ParseDirection(strings.ToLower(strings.TrimSpace(in.Direction)))
	if !ok {
		return skill.LedgerEntry{}, ErrInvalidInput
	}
	if err := validateProficiency(direction, in.Proficiency); err != nil {
		return skill.LedgerEntry{}, err
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return skill.LedgerEntry{}, ErrInternal
	}
	if !exists {
		return skill.LedgerEntry{}, ErrSkillNotFound
	}

	created, err := u.entries.Create(ctx, skill.LedgerEntry{
		ID:          uuid.New(),
		UserID:      userID,
		SkillID:     in.SkillID,
		Direction:   direction,
		Proficiency: in.Proficiency,
		Note:        strings.TrimSpace(in.Note),
	})
	if err != nil {
		if errors.Is(err, repository.ErrLedgerEntryDuplicate) {
			return skill.LedgerEntry{}, ErrLedgerEntryDuplicate
		}
		return skill.LedgerEntry{}, ErrInternal
	}

	u.invalidateMatches(ctx, userID)
	return created, nil
}

func (u *Ledger) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, in UpdateLedgerEntryInput) (skill.LedgerEntry, error) {
	if userID == uuid.Nil {
		return skill.LedgerEntry{}, ErrUnauthorized
	}
	if entryID == uuid.Nil {
		return skill.LedgerEntry{}, ErrInvalidInput
	}

	current, err := u.entries.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrLedgerEntryNotFound) {
			return skill.LedgerEntry{}, ErrLedgerEntryNotFound
		}
		return skill.LedgerEntry{}, ErrInternal
	}
	if current.UserID != userID {
		return skill.LedgerEntry{}, ErrForbidden
	}
	if err := validateProficiency(current.Direction, in.Proficiency); err != nil {
		return skill.LedgerEntry{}, err
	}

	updated, err := u.entries.Update(ctx, skill.LedgerEntry{
		ID:          entryID,
		UserID:      userID,
		Proficiency: in.Proficiency,
		Note:        strings.TrimSpace(in.Note),
	})
	if err != nil {
		if errors.Is(err, repository.ErrLedgerEntryNotFound) {
			return skill.LedgerEntry{}, ErrLedgerEntryNotFound
		}
		return skill.LedgerEntry{}, ErrInternal
	}

	// Cached candidate payloads carry proficiency and note, so an edit has
	// to drop them just like add and delete do.
	u.invalidateMatches(ctx, userID)
	return updated, nil
}

func (u *Ledger) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if entryID == uuid.Nil {
		return ErrInvalidInput
	}

	if err := u.entries.Delete(ctx, entryID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrLedgerEntryNotFound):
			return ErrLedgerEntryNotFound
		case errors.Is(err, repository.ErrLedgerEntryForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}

	u.invalidateMatches(ctx, userID)
	return nil
}

// invalidateMatches drops the owner's cached match lists. Other users' cached
// lists age out via TTL; matches are advisory so that staleness is fine.
func (u *Ledger) invalidateMatches(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, matchCachePattern(userID))
}

func validateProficiency(d skill.Direction, v int) error {
	if v == 0 {
		return nil
	}
	if d != skill.DirectionOffered {
		return ErrInvalidProficiency
	}
	if v < 1 || v > 5 {
		return ErrInvalidProficiency
	}
	return nil
}
