package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// UserSearchLimit caps search results; callers needing more must narrow
// their filters.
const UserSearchLimit = 50

// UserProfile is the read model exposed at the API boundary. It never
// carries credential fields: password_hash is not selected here.
type UserProfile struct {
	ID        uuid.UUID
	Handle    string
	FirstName string
	LastName  string
	Location  string
	Bio       string
	CreatedAt time.Time
	Skills    []skill.LedgerEntry
}

type UserRepository interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	GetProfile(ctx context.Context, id uuid.UUID) (UserProfile, error)
	Search(ctx context.Context, excludeID uuid.UUID, f UserSearchFilter) ([]UserProfile, error)
	// ListCandidateProfiles loads every other user with their ledger for a
	// match scan. Reads are not transactionally isolated; a slightly stale
	// snapshot is acceptable because matches are advisory.
	ListCandidateProfiles(ctx context.Context, excludeID uuid.UUID) ([]UserProfile, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (UserProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, handle, first_name, last_name, location, bio, created_at FROM users WHERE id = $1`,
		id,
	)

	var p UserProfile
	if err := row.Scan(&p.ID, &p.Handle, &p.FirstName, &p.LastName, &p.Location, &p.Bio, &p.CreatedAt); err != nil {
		if isNoRows(err) {
			return UserProfile{}, ErrUserNotFound
		}
		return UserProfile{}, err
	}

	entries, err := r.ledgersFor(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return UserProfile{}, err
	}
	p.Skills = entries[p.ID]
	if p.Skills == nil {
		p.Skills = []skill.LedgerEntry{}
	}
	return p, nil
}

func (r *PostgresUserRepository) Search(ctx context.Context, excludeID uuid.UUID, f UserSearchFilter) ([]UserProfile, error) {
	conds, args := buildUserSearchQuery(f)

	query := `SELECT u.id, u.handle, u.first_name, u.last_name, u.location, u.bio, u.created_at
FROM users u
WHERE ` + strings.Join(conds, " AND ") + `
ORDER BY u.created_at ASC
LIMIT ` + strconv.Itoa(UserSearchLimit)

	all := append([]any{excludeID}, args...)
	profiles, err := r.queryProfiles(ctx, query, all...)
	if err != nil {
		return nil, err
	}
	return r.attachLedgers(ctx, profiles)
}

func (r *PostgresUserRepository) ListCandidateProfiles(ctx context.Context, excludeID uuid.UUID) ([]UserProfile, error) {
	profiles, err := r.queryProfiles(ctx,
		`SELECT u.id, u.handle, u.first_name, u.last_name, u.location, u.bio, u.created_at
FROM users u
WHERE u.id <> $1
ORDER BY u.created_at ASC`,
		excludeID,
	)
	if err != nil {
		return nil, err
	}
	return r.attachLedgers(ctx, profiles)
}

func (r *PostgresUserRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]UserProfile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserProfile, 0)
	for rows.Next() {
		var p UserProfile
		if err := rows.Scan(&p.ID, &p.Handle, &p.FirstName, &p.LastName, &p.Location, &p.Bio, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Skills = []skill.LedgerEntry{}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) attachLedgers(ctx context.Context, profiles []UserProfile) ([]UserProfile, error) {
	if len(profiles) == 0 {
		return profiles, nil
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	entries, err := r.ledgersFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		if es, ok := entries[profiles[i].ID]; ok {
			profiles[i].Skills = es
		}
	}
	return profiles, nil
}

func (r *PostgresUserRepository) ledgersFor(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]skill.LedgerEntry, error) {
	rows, err := r.db.Query(ctx,
		ledgerSelect+` WHERE us.user_id = ANY($1) ORDER BY us.direction ASC, s.name ASC`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]skill.LedgerEntry, len(userIDs))
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		out[e.UserID] = append(out[e.UserID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
