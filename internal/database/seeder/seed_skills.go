package seeder

import (
	"context"
	"fmt"

	"skillswap/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "Guitar", Category: "music"},
		{Name: "Piano", Category: "music"},
		{Name: "Singing", Category: "music"},
		{Name: "Spanish", Category: "language"},
		{Name: "French", Category: "language"},
		{Name: "Japanese", Category: "language"},
		{Name: "Cooking", Category: "lifestyle"},
		{Name: "Baking", Category: "lifestyle"},
		{Name: "Yoga", Category: "fitness"},
		{Name: "Chess", Category: "games"},
		{Name: "Photography", Category: "creative"},
		{Name: "Drawing", Category: "creative"},
		{Name: "Programming", Category: "tech"},
		{Name: "Woodworking", Category: "crafts"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
