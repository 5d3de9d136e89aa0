package seeder

import (
	"context"
	"fmt"

	"skillswap/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// DemoUsersSeeder creates a handful of users with complementary ledgers so
// a fresh environment produces matches out of the box. Safe to re-run.
type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

type demoLedgerEntry struct {
	Skill       string
	Direction   string
	Proficiency int
}

type demoUser struct {
	Email     string
	Handle    string
	FirstName string
	LastName  string
	Location  string
	Ledger    []demoLedgerEntry
}

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "handle", "password_hash"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "user_skills", "id", "user_id", "skill_id", "direction"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []demoUser{
		{
			Email: "ana@demo.local", Handle: "demo_ana", FirstName: "Ana", LastName: "Silva", Location: "Lisbon",
			Ledger: []demoLedgerEntry{
				{Skill: "Guitar", Direction: "offered", Proficiency: 4},
				{Skill: "Spanish", Direction: "wanted"},
			},
		},
		{
			Email: "ben@demo.local", Handle: "demo_ben", FirstName: "Ben", LastName: "Okoro", Location: "Lagos",
			Ledger: []demoLedgerEntry{
				{Skill: "Spanish", Direction: "offered", Proficiency: 5},
				{Skill: "Guitar", Direction: "wanted"},
			},
		},
		{
			Email: "chiara@demo.local", Handle: "demo_chiara", FirstName: "Chiara", LastName: "Rossi", Location: "Milan",
			Ledger: []demoLedgerEntry{
				{Skill: "Cooking", Direction: "offered", Proficiency: 3},
				{Skill: "Photography", Direction: "wanted"},
			},
		},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, u := range users {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, email, handle, password_hash, first_name, last_name, location)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
			 ON CONFLICT (email) DO NOTHING`,
			u.Email, u.Handle, string(hash), u.FirstName, u.LastName, u.Location,
		)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.Handle, err)
		}

		for _, e := range u.Ledger {
			var proficiency any
			if e.Proficiency > 0 {
				proficiency = e.Proficiency
			}
			_, err := tx.Exec(
				ctx,
				`INSERT INTO user_skills (id, user_id, skill_id, direction, proficiency)
				 SELECT gen_random_uuid(), u.id, s.id, $1, $2
				 FROM users u, skills s
				 WHERE u.email = $3 AND s.name = $4
				 ON CONFLICT (user_id, skill_id, direction) DO NOTHING`,
				e.Direction, proficiency, u.Email, e.Skill,
			)
			if err != nil {
				return fmt.Errorf("ledger %s/%s: %w", u.Handle, e.Skill, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
