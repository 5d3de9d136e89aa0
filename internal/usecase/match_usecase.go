package usecase

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/domain/matching"
	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type MatchCandidate struct {
	Profile    repository.UserProfile
	MatchType  matching.Type
	MatchScore int
}

type MatchDetails struct {
	Profile        repository.UserProfile
	MatchType      matching.Type
	TheyCanTeachMe []skill.LedgerEntry
	ICanTeachThem  []skill.LedgerEntry
}

type MatchUsecase interface {
	ComputeMatches(ctx context.Context, userID uuid.UUID, f matching.Filter) ([]MatchCandidate, error)
	GetMatchDetails(ctx context.Context, userID, targetID uuid.UUID) (MatchDetails, error)
	SearchUsers(ctx context.Context, userID uuid.UUID, f repository.UserSearchFilter) ([]repository.UserProfile, error)
}

type Match struct {
	users    repository.UserRepository
	cache    MatchCache
	cacheTTL time.Duration
}

func NewMatchUsecase(users repository.UserRepository, cache MatchCache, cacheTTL time.Duration) *Match {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Match{users: users, cache: cache, cacheTTL: cacheTTL}
}

func (u *Match) ComputeMatches(ctx context.Context, userID uuid.UUID, f matching.Filter) ([]MatchCandidate, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	me, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternal
	}

	key := matchCacheKey(userID, f)
	if u.cache != nil {
		var cached []MatchCandidate
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	candidates, err := u.users.ListCandidateProfiles(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	byID := make(map[uuid.UUID]repository.UserProfile, len(candidates))
	ledgers := make([]matching.CandidateLedger, 0, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
		ledgers = append(ledgers, matching.CandidateLedger{UserID: c.ID, Ledger: ledgerOf(c.Skills)})
	}

	ranked := matching.Rank(ledgerOf(me.Skills), ledgers, f)

	out := make([]MatchCandidate, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, MatchCandidate{
			Profile:    byID[c.UserID],
			MatchType:  c.Type,
			MatchScore: c.Score,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, u.cacheTTL)
	}
	return out, nil
}

func (u *Match) GetMatchDetails(ctx context.Context, userID, targetID uuid.UUID) (MatchDetails, error) {
	if userID == uuid.Nil {
		return MatchDetails{}, ErrUnauthorized
	}
	if targetID == uuid.Nil {
		return MatchDetails{}, ErrUserNotFound
	}

	me, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return MatchDetails{}, ErrUserNotFound
		}
		return MatchDetails{}, ErrInternal
	}

	target, err := u.users.GetProfile(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return MatchDetails{}, ErrUserNotFound
		}
		return MatchDetails{}, ErrInternal
	}

	mine := ledgerOf(me.Skills)
	theirs := ledgerOf(target.Skills)

	return MatchDetails{
		Profile:        target,
		MatchType:      matching.Classify(mine, theirs),
		TheyCanTeachMe: teachableEntries(target.Skills, mine),
		ICanTeachThem:  teachableEntries(me.Skills, theirs),
	}, nil
}

func (u *Match) SearchUsers(ctx context.Context, userID uuid.UUID, f repository.UserSearchFilter) ([]repository.UserProfile, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if f.SkillType != "" {
		if _, ok := skill.ParseDirection(f.SkillType); !ok {
			return nil, ErrInvalidInput
		}
	}

	out, err := u.users.Search(ctx, userID, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func ledgerOf(entries []skill.LedgerEntry) matching.Ledger {
	offered := make([]uuid.UUID, 0, len(entries))
	wanted := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		switch e.Direction {
		case skill.DirectionOffered:
			offered = append(offered, e.SkillID)
		case skill.DirectionWanted:
			wanted = append(wanted, e.SkillID)
		}
	}
	return matching.NewLedger(offered, wanted)
}

// teachableEntries returns the OFFERED entries of the teacher side whose
// skill the learner side wants, in the teacher's ledger order.
func teachableEntries(teacher []skill.LedgerEntry, learner matching.Ledger) []skill.LedgerEntry {
	out := make([]skill.LedgerEntry, 0)
	for _, e := range teacher {
		if e.Direction != skill.DirectionOffered {
			continue
		}
		if learner.Wants(e.SkillID) {
			out = append(out, e)
		}
	}
	return out
}
