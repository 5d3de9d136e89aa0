package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrLedgerEntryNotFound  = errors.New("ledger entry not found")
	ErrLedgerEntryDuplicate = errors.New("ledger entry already exists")
	ErrLedgerEntryForbidden = errors.New("forbidden")
)

// LedgerRepository persists skill ledger entries. The unique constraint on
// (user_id, skill_id, direction) lives in the database so concurrent
// duplicate writers lose at commit time, not at an earlier read.
type LedgerRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.LedgerEntry, error)
	FindByID(ctx context.Context, id uuid.UUID) (skill.LedgerEntry, error)
	Create(ctx context.Context, e skill.LedgerEntry) (skill.LedgerEntry, error)
	Update(ctx context.Context, e skill.LedgerEntry) (skill.LedgerEntry, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresLedgerRepository struct {
	db database.DB
}

func NewPostgresLedgerRepository(db database.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

const ledgerSelect = `
SELECT us.id, us.user_id, us.skill_id, s.name, s.category, us.direction, COALESCE(us.proficiency, 0), us.note, us.created_at
FROM user_skills us
JOIN skills s ON s.id = us.skill_id`

func (r *PostgresLedgerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.LedgerEntry, error) {
	rows, err := r.db.Query(ctx,
		ledgerSelect+` WHERE us.user_id = $1 ORDER BY us.direction ASC, s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.LedgerEntry, 0)
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (skill.LedgerEntry, error) {
	row := r.db.QueryRow(ctx, ledgerSelect+` WHERE us.id = $1`, id)
	e, err := scanLedgerEntry(row)
	if err != nil {
		if isNoRows(err) {
			return skill.LedgerEntry{}, ErrLedgerEntryNotFound
		}
		return skill.LedgerEntry{}, err
	}
	return e, nil
}

func (r *PostgresLedgerRepository) Create(ctx context.Context, e skill.LedgerEntry) (skill.LedgerEntry, error) {
	var prof any
	if e.Direction == skill.DirectionOffered && e.Proficiency > 0 {
		prof = e.Proficiency
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, direction, proficiency, note)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.SkillID, string(e.Direction), prof, e.Note,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return skill.LedgerEntry{}, ErrLedgerEntryDuplicate
		}
		return skill.LedgerEntry{}, err
	}

	return r.FindByID(ctx, e.ID)
}

func (r *PostgresLedgerRepository) Update(ctx context.Context, e skill.LedgerEntry) (skill.LedgerEntry, error) {
	var prof any
	if e.Proficiency > 0 {
		prof = e.Proficiency
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE user_skills SET proficiency = $1, note = $2 WHERE id = $3 AND user_id = $4`,
		prof, e.Note, e.ID, e.UserID,
	)
	if err != nil {
		return skill.LedgerEntry{}, err
	}
	if affected == 0 {
		return skill.LedgerEntry{}, ErrLedgerEntryNotFound
	}

	return r.FindByID(ctx, e.ID)
}

func (r *PostgresLedgerRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM user_skills WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if isNoRows(err) {
			return ErrLedgerEntryNotFound
		}
		return err
	}
	if owner != userID {
		return ErrLedgerEntryForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1`, id)
	return err
}

func scanLedgerEntry(row database.Row) (skill.LedgerEntry, error) {
	var e skill.LedgerEntry
	var direction string
	if err := row.Scan(&e.ID, &e.UserID, &e.SkillID, &e.SkillName, &e.Category, &direction, &e.Proficiency, &e.Note, &e.CreatedAt); err != nil {
		return skill.LedgerEntry{}, err
	}
	e.Direction = skill.Direction(direction)
	return e, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
