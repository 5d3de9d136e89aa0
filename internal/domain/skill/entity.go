package skill

import (
	"time"

	"github.com/google/uuid"
)

// Direction says which side of a swap a ledger entry sits on.
type Direction string

const (
	DirectionOffered Direction = "offered"
	DirectionWanted  Direction = "wanted"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionOffered:
		return DirectionOffered, true
	case DirectionWanted:
		return DirectionWanted, true
	default:
		return "", false
	}
}

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

// LedgerEntry is one user's declared relationship to one skill in one
// direction. Proficiency is meaningful only for offered entries.
type LedgerEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SkillID     uuid.UUID
	SkillName   string
	Category    string
	Direction   Direction
	Proficiency int
	Note        string
	CreatedAt   time.Time
}
