package matching

import (
	"sort"

	"github.com/google/uuid"
)

type Type string

const (
	TypePerfectSwap Type = "PERFECT_SWAP"
	TypeTeacher     Type = "TEACHER"
	TypeLearner     Type = "LEARNER"
	TypeNone        Type = "NO_MATCH"
)

// Score is the fixed rank weight of a match category.
func (t Type) Score() int {
	switch t {
	case TypePerfectSwap:
		return 100
	case TypeTeacher:
		return 70
	case TypeLearner:
		return 60
	default:
		return 0
	}
}

type Filter string

const (
	FilterAll      Filter = ""
	FilterPerfect  Filter = "perfect"
	FilterTeachers Filter = "teachers"
	FilterLearners Filter = "learners"
)

func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterAll, FilterPerfect, FilterTeachers, FilterLearners:
		return Filter(s), true
	default:
		return "", false
	}
}

// Ledger is one user's offered/wanted skill sets. Slice order is the order
// entries were supplied in, so downstream output stays deterministic.
type Ledger struct {
	offered []uuid.UUID
	wanted  []uuid.UUID

	offeredSet map[uuid.UUID]struct{}
	wantedSet  map[uuid.UUID]struct{}
}

func NewLedger(offered, wanted []uuid.UUID) Ledger {
	l := Ledger{
		offeredSet: make(map[uuid.UUID]struct{}, len(offered)),
		wantedSet:  make(map[uuid.UUID]struct{}, len(wanted)),
	}
	for _, id := range offered {
		if id == uuid.Nil {
			continue
		}
		if _, ok := l.offeredSet[id]; ok {
			continue
		}
		l.offeredSet[id] = struct{}{}
		l.offered = append(l.offered, id)
	}
	for _, id := range wanted {
		if id == uuid.Nil {
			continue
		}
		if _, ok := l.wantedSet[id]; ok {
			continue
		}
		l.wantedSet[id] = struct{}{}
		l.wanted = append(l.wanted, id)
	}
	return l
}

func (l Ledger) Offers(id uuid.UUID) bool {
	_, ok := l.offeredSet[id]
	return ok
}

func (l Ledger) Wants(id uuid.UUID) bool {
	_, ok := l.wantedSet[id]
	return ok
}

// TeachableTo returns the skills l offers that other wants, in l's offered
// order.
func (l Ledger) TeachableTo(other Ledger) []uuid.UUID {
	out := make([]uuid.UUID, 0)
	for _, id := range l.offered {
		if other.Wants(id) {
			out = append(out, id)
		}
	}
	return out
}

func (l Ledger) canTeach(other Ledger) bool {
	for _, id := range l.offered {
		if other.Wants(id) {
			return true
		}
	}
	return false
}

// Classify gives the pairwise category from mine's point of view:
// PERFECT_SWAP when teaching works both ways, TEACHER when only they can
// teach me, LEARNER when only I can teach them.
func Classify(mine, theirs Ledger) Type {
	theyTeach := theirs.canTeach(mine)
	iTeach := mine.canTeach(theirs)

	switch {
	case theyTeach && iTeach:
		return TypePerfectSwap
	case theyTeach:
		return TypeTeacher
	case iTeach:
		return TypeLearner
	default:
		return TypeNone
	}
}

type Candidate struct {
	UserID uuid.UUID
	Type   Type
	Score  int
}

// CandidateLedger pairs a candidate user with their ledger for ranking.
type CandidateLedger struct {
	UserID uuid.UUID
	Ledger Ledger
}

// Rank computes the match list for one user against the candidate
// population. Categories are evaluated in priority order (perfect swaps,
// then teachers, then learners); a candidate is reported once, under the
// first category that selected it. A narrowing filter evaluates only its
// own category, so no cross-category dedup happens then. The result is
// stably sorted by descending score, preserving per-category scan order.
func Rank(mine Ledger, candidates []CandidateLedger, f Filter) []Candidate {
	acc := newRankedSet()

	if f == FilterAll || f == FilterPerfect {
		for _, c := range candidates {
			if c.Ledger.canTeach(mine) && mine.canTeach(c.Ledger) {
				acc.Add(c.UserID, TypePerfectSwap)
			}
		}
	}
	if f == FilterAll || f == FilterTeachers {
		for _, c := range candidates {
			if c.Ledger.canTeach(mine) {
				acc.Add(c.UserID, TypeTeacher)
			}
		}
	}
	if f == FilterAll || f == FilterLearners {
		for _, c := range candidates {
			if mine.canTeach(c.Ledger) {
				acc.Add(c.UserID, TypeLearner)
			}
		}
	}

	return acc.Ranked()
}

// rankedSet is an insertion-ordered set keyed by candidate id. The first
// category to claim a candidate wins; later additions are no-ops.
type rankedSet struct {
	seen  map[uuid.UUID]struct{}
	items []Candidate
}

func newRankedSet() *rankedSet {
	return &rankedSet{seen: make(map[uuid.UUID]struct{})}
}

func (s *rankedSet) Add(id uuid.UUID, t Type) bool {
	if id == uuid.Nil {
		return false
	}
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.items = append(s.items, Candidate{UserID: id, Type: t, Score: t.Score()})
	return true
}

// Ranked returns the accumulated candidates sorted by descending score.
// The sort is stable so ties keep their insertion order.
func (s *rankedSet) Ranked() []Candidate {
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
