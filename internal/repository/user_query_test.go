package repository

import (
	"strings"
	"testing"
)

func TestBuildUserSearchQuery_EmptyFilterOnlyExcludesCaller(t *testing.T) {
	conds, args := buildUserSearchQuery(UserSearchFilter{})
	if len(conds) != 1 || conds[0] != "u.id <> $1" {
		t.Fatalf("unexpected conds: %v", conds)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildUserSearchQuery_QueryMatchesNameAndHandle(t *testing.T) {
	conds, args := buildUserSearchQuery(UserSearchFilter{Query: "  ana "})
	if len(conds) != 2 {
		t.Fatalf("expected 2 conds, got %v", conds)
	}
	if !strings.Contains(conds[1], "first_name ILIKE $2") ||
		!strings.Contains(conds[1], "last_name ILIKE $2") ||
		!strings.Contains(conds[1], "handle ILIKE $2") {
		t.Fatalf("query condition missing fields: %s", conds[1])
	}
	if len(args) != 1 || args[0] != "%ana%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildUserSearchQuery_AllFiltersNumberPlaceholdersSequentially(t *testing.T) {
	conds, args := buildUserSearchQuery(UserSearchFilter{
		Query:     "jo",
		Category:  "Music",
		Location:  "Lisbon",
		SkillType: "OFFERED",
	})

	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
	joined := strings.Join(conds, " AND ")
	for _, ph := range []string{"$1", "$2", "$3", "$4", "$5"} {
		if !strings.Contains(joined, ph) {
			t.Fatalf("missing placeholder %s in %s", ph, joined)
		}
	}
	if args[0] != "%jo%" || args[1] != "%Lisbon%" || args[2] != "Music" || args[3] != "offered" {
		t.Fatalf("unexpected args order: %v", args)
	}
}

func TestBuildUserSearchQuery_SkillTypeLowered(t *testing.T) {
	conds, args := buildUserSearchQuery(UserSearchFilter{SkillType: "WANTED"})
	if len(conds) != 2 {
		t.Fatalf("expected 2 conds, got %v", conds)
	}
	if !strings.Contains(conds[1], "us.direction = $2") {
		t.Fatalf("direction predicate missing: %s", conds[1])
	}
	if len(args) != 1 || args[0] != "wanted" {
		t.Fatalf("unexpected args: %v", args)
	}
}
