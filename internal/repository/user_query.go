package repository

import (
	"fmt"
	"strings"
)

// UserSearchFilter is the explicit optional-filter shape for user search.
// Empty fields are simply not applied.
type UserSearchFilter struct {
	Query     string
	Category  string
	Location  string
	SkillType string // "offered" or "wanted"
}

func (f UserSearchFilter) normalized() UserSearchFilter {
	return UserSearchFilter{
		Query:     strings.TrimSpace(f.Query),
		Category:  strings.TrimSpace(f.Category),
		Location:  strings.TrimSpace(f.Location),
		SkillType: strings.ToLower(strings.TrimSpace(f.SkillType)),
	}
}

// buildUserSearchQuery turns a filter into a WHERE condition list and the
// matching positional args. It is a pure function so the predicate logic is
// testable without a live store. The caller is always excluded; arg $1 is
// reserved for the excluded user id.
func buildUserSearchQuery(f UserSearchFilter) (conds []string, args []any) {
	f = f.normalized()

	conds = append(conds, "u.id <> $1")
	next := 2

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		conds = append(conds, fmt.Sprintf(
			"(u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.handle ILIKE $%d)",
			next, next, next,
		))
		args = append(args, pattern)
		next++
	}

	if f.Location != "" {
		conds = append(conds, fmt.Sprintf("u.location ILIKE $%d", next))
		args = append(args, "%"+f.Location+"%")
		next++
	}

	if f.Category != "" || f.SkillType != "" {
		sub := []string{"us.user_id = u.id"}
		if f.Category != "" {
			sub = append(sub, fmt.Sprintf("s.category = $%d", next))
			args = append(args, f.Category)
			next++
		}
		if f.SkillType != "" {
			sub = append(sub, fmt.Sprintf("us.direction = $%d", next))
			args = append(args, f.SkillType)
			next++
		}
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM user_skills us JOIN skills s ON s.id = us.skill_id WHERE %s)",
			strings.Join(sub, " AND "),
		))
	}

	return conds, args
}
