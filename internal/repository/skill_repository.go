package repository

import (
	"context"
	"strings"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	// UpsertByName returns the existing skill when the name is already
	// taken, creating it otherwise.
	UpsertByName(ctx context.Context, name, category string) (skill.Skill, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	query := `SELECT id, name, category, created_at FROM skills`
	args := []any{}
	if strings.TrimSpace(category) != "" {
		query += ` WHERE category = $1`
		args = append(args, strings.TrimSpace(category))
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) UpsertByName(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
		name, category,
	)
	if err != nil {
		return skill.Skill{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, created_at FROM skills WHERE name = $1 LIMIT 1`,
		name,
	)
	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
