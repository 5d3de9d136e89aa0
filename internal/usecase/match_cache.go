package usecase

import (
	"context"
	"time"

	"skillswap/internal/domain/matching"

	"github.com/google/uuid"
)

// MatchCache is the slice of the cache the match usecase needs. A nil cache
// disables caching entirely; matches are advisory, so serving a slightly
// stale list within the TTL is acceptable.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

func matchCacheKey(userID uuid.UUID, f matching.Filter) string {
	label := string(f)
	if label == "" {
		label = "all"
	}
	return "matches:" + userID.String() + ":" + label
}

func matchCachePattern(userID uuid.UUID) string {
	return "matches:" + userID.String() + ":*"
}
