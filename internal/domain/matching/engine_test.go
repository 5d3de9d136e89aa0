package matching

import (
	"testing"

	"github.com/google/uuid"
)

func TestClassify_PerfectSwap(t *testing.T) {
	guitar := uuid.New()
	spanish := uuid.New()

	a := NewLedger([]uuid.UUID{guitar}, []uuid.UUID{spanish})
	b := NewLedger([]uuid.UUID{spanish}, []uuid.UUID{guitar})

	if got := Classify(a, b); got != TypePerfectSwap {
		t.Fatalf("expected PERFECT_SWAP, got %s", got)
	}
	if got := Classify(b, a); got != TypePerfectSwap {
		t.Fatalf("expected PERFECT_SWAP from the other side, got %s", got)
	}
}

func TestClassify_TeacherLearnerSwapSides(t *testing.T) {
	spanish := uuid.New()

	a := NewLedger(nil, []uuid.UUID{spanish})
	c := NewLedger([]uuid.UUID{spanish}, nil)

	if got := Classify(a, c); got != TypeTeacher {
		t.Fatalf("expected TEACHER, got %s", got)
	}
	if got := Classify(c, a); got != TypeLearner {
		t.Fatalf("expected LEARNER when sides swap, got %s", got)
	}
}

func TestClassify_NoMatch(t *testing.T) {
	a := NewLedger([]uuid.UUID{uuid.New()}, []uuid.UUID{uuid.New()})
	b := NewLedger([]uuid.UUID{uuid.New()}, []uuid.UUID{uuid.New()})

	if got := Classify(a, b); got != TypeNone {
		t.Fatalf("expected NO_MATCH, got %s", got)
	}
}

func TestRank_PerfectSwapScores100(t *testing.T) {
	guitar := uuid.New()
	spanish := uuid.New()
	bID := uuid.New()

	a := NewLedger([]uuid.UUID{guitar}, []uuid.UUID{spanish})
	candidates := []CandidateLedger{
		{UserID: bID, Ledger: NewLedger([]uuid.UUID{spanish}, []uuid.UUID{guitar})},
	}

	out := Rank(a, candidates, FilterAll)
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(out))
	}
	if out[0].UserID != bID || out[0].Type != TypePerfectSwap || out[0].Score != 100 {
		t.Fatalf("unexpected candidate: %+v", out[0])
	}
}

func TestRank_TeacherOnlyScores70(t *testing.T) {
	guitar := uuid.New()
	spanish := uuid.New()
	cID := uuid.New()

	a := NewLedger([]uuid.UUID{guitar}, []uuid.UUID{spanish})
	candidates := []CandidateLedger{
		{UserID: cID, Ledger: NewLedger([]uuid.UUID{spanish}, nil)},
	}

	out := Rank(a, candidates, FilterAll)
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(out))
	}
	if out[0].Type != TypeTeacher || out[0].Score != 70 {
		t.Fatalf("unexpected candidate: %+v", out[0])
	}
}

func TestRank_DedupFirstCategoryWins(t *testing.T) {
	guitar := uuid.New()
	spanish := uuid.New()

	a := NewLedger([]uuid.UUID{guitar}, []uuid.UUID{spanish})

	// Qualifies for all three categories; must appear once as PERFECT_SWAP.
	both := uuid.New()
	teacherOnly := uuid.New()
	learnerOnly := uuid.New()
	candidates := []CandidateLedger{
		{UserID: both, Ledger: NewLedger([]uuid.UUID{spanish}, []uuid.UUID{guitar})},
		{UserID: teacherOnly, Ledger: NewLedger([]uuid.UUID{spanish}, nil)},
		{UserID: learnerOnly, Ledger: NewLedger(nil, []uuid.UUID{guitar})},
	}

	out := Rank(a, candidates, FilterAll)
	if len(out) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(out))
	}

	seen := map[uuid.UUID]int{}
	for _, c := range out {
		seen[c.UserID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("candidate %s appears %d times", id, n)
		}
	}

	if out[0].UserID != both || out[0].Type != TypePerfectSwap {
		t.Fatalf("expected perfect swap first, got %+v", out[0])
	}
	if out[1].UserID != teacherOnly || out[1].Type != TypeTeacher {
		t.Fatalf("expected teacher second, got %+v", out[1])
	}
	if out[2].UserID != learnerOnly || out[2].Type != TypeLearner {
		t.Fatalf("expected learner last, got %+v", out[2])
	}
}

func TestRank_SingleCategoryFilterSkipsDedup(t *testing.T) {
	guitar := uuid.New()
	spanish := uuid.New()

	a := NewLedger([]uuid.UUID{guitar}, []uuid.UUID{spanish})
	both := uuid.New()
	candidates := []CandidateLedger{
		{UserID: both, Ledger: NewLedger([]uuid.UUID{spanish}, []uuid.UUID{guitar})},
	}

	// With the teachers filter a perfect-swap candidate is reported as
	// TEACHER because the perfect category was never computed.
	out := Rank(a, candidates, FilterTeachers)
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(out))
	}
	if out[0].Type != TypeTeacher || out[0].Score != 70 {
		t.Fatalf("unexpected candidate: %+v", out[0])
	}
}

func TestRank_SortedNonIncreasingAndStable(t *testing.T) {
	guitar := uuid.New()
	spanish := uuid.New()
	a := NewLedger([]uuid.UUID{guitar}, []uuid.UUID{spanish})

	t1 := uuid.New()
	t2 := uuid.New()
	l1 := uuid.New()
	p1 := uuid.New()
	candidates := []CandidateLedger{
		{UserID: t1, Ledger: NewLedger([]uuid.UUID{spanish}, nil)},
		{UserID: t2, Ledger: NewLedger([]uuid.UUID{spanish}, nil)},
		{UserID: l1, Ledger: NewLedger(nil, []uuid.UUID{guitar})},
		{UserID: p1, Ledger: NewLedger([]uuid.UUID{spanish}, []uuid.UUID{guitar})},
	}

	out := Rank(a, candidates, FilterAll)
	if len(out) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Score > out[i-1].Score {
			t.Fatalf("scores not non-increasing at %d: %+v", i, out)
		}
	}
	if out[0].UserID != p1 {
		t.Fatalf("expected perfect swap first, got %+v", out[0])
	}
	// Equal-score teachers keep scan order.
	if out[1].UserID != t1 || out[2].UserID != t2 {
		t.Fatalf("tie order not stable: %+v", out)
	}
}

func TestNewLedger_DropsDuplicatesAndNil(t *testing.T) {
	id := uuid.New()
	l := NewLedger([]uuid.UUID{id, id, uuid.Nil}, nil)
	if len(l.offered) != 1 {
		t.Fatalf("expected 1 offered entry, got %d", len(l.offered))
	}
	if !l.Offers(id) {
		t.Fatalf("expected ledger to offer %s", id)
	}
}

func TestTeachableTo_PreservesOfferedOrder(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()
	s3 := uuid.New()

	teacher := NewLedger([]uuid.UUID{s1, s2, s3}, nil)
	learner := NewLedger(nil, []uuid.UUID{s3, s1})

	got := teacher.TeachableTo(learner)
	if len(got) != 2 || got[0] != s1 || got[1] != s3 {
		t.Fatalf("unexpected teachable list: %v", got)
	}
}
