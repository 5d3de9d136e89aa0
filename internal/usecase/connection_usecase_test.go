package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/domain/connection"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type memConnRepo struct {
	records map[uuid.UUID]connection.Connection
}

func newMemConnRepo() *memConnRepo {
	return &memConnRepo{records: map[uuid.UUID]connection.Connection{}}
}

func (m *memConnRepo) Create(_ context.Context, c connection.Connection) (connection.Connection, error) {
	for _, r := range m.records {
		if (r.SenderID == c.SenderID && r.ReceiverID == c.ReceiverID) ||
			(r.SenderID == c.ReceiverID && r.ReceiverID == c.SenderID) {
			return connection.Connection{}, repository.ErrConnectionExists
		}
	}
	c.Status = connection.StatusPending
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.records[c.ID] = c
	return c, nil
}

func (m *memConnRepo) FindByID(_ context.Context, id uuid.UUID) (connection.Connection, error) {
	c, ok := m.records[id]
	if !ok {
		return connection.Connection{}, repository.ErrConnectionNotFound
	}
	return c, nil
}

func (m *memConnRepo) FindByPair(_ context.Context, a, b uuid.UUID) (connection.Connection, error) {
	for _, r := range m.records {
		if (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a) {
			return r, nil
		}
	}
	return connection.Connection{}, repository.ErrConnectionNotFound
}

func (m *memConnRepo) UpdateStatusIfPending(_ context.Context, id uuid.UUID, status connection.Status) (connection.Connection, error) {
	c, ok := m.records[id]
	if !ok || c.Status != connection.StatusPending {
		return connection.Connection{}, repository.ErrConnectionNotPending
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	m.records[id] = c
	return c, nil
}

func (m *memConnRepo) DeleteIfPending(_ context.Context, id uuid.UUID) error {
	c, ok := m.records[id]
	if !ok || c.Status != connection.StatusPending {
		return repository.ErrConnectionNotPending
	}
	delete(m.records, id)
	return nil
}

func (m *memConnRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]connection.Connection, error) {
	out := make([]connection.Connection, 0)
	for _, r := range m.records {
		if r.SenderID == userID || r.ReceiverID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memConnRepo) ExistsAccepted(_ context.Context, a, b uuid.UUID) (bool, error) {
	for _, r := range m.records {
		if r.Status != connection.StatusAccepted {
			continue
		}
		if (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a) {
			return true, nil
		}
	}
	return false, nil
}

type stubUserRepo struct {
	existing map[uuid.UUID]bool
}

func (s stubUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return s.existing[id], nil
}

func (s stubUserRepo) GetProfile(_ context.Context, id uuid.UUID) (repository.UserProfile, error) {
	if !s.existing[id] {
		return repository.UserProfile{}, repository.ErrUserNotFound
	}
	return repository.UserProfile{ID: id}, nil
}

func (s stubUserRepo) Search(context.Context, uuid.UUID, repository.UserSearchFilter) ([]repository.UserProfile, error) {
	return nil, nil
}

func (s stubUserRepo) ListCandidateProfiles(context.Context, uuid.UUID) ([]repository.UserProfile, error) {
	return nil, nil
}

func newConnUsecase(users map[uuid.UUID]bool) (*Connection, *memConnRepo) {
	repo := newMemConnRepo()
	return NewConnectionUsecase(repo, stubUserRepo{existing: users}, nil), repo
}

func TestConnection_RequestAndRespondLifecycle(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true, b: true})
	ctx := context.Background()

	created, err := uc.Request(ctx, a, b, "let's swap")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if created.Status != connection.StatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}

	// Accept by someone who is not the receiver is forbidden.
	if _, err := uc.Respond(ctx, a, created.ID, DecisionAccept); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for sender accept, got %v", err)
	}

	updated, err := uc.Respond(ctx, b, created.ID, DecisionAccept)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if updated.Status != connection.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}

	// A second accept finds the record already processed.
	if _, err := uc.Respond(ctx, b, created.ID, DecisionAccept); !errors.Is(err, ErrConnectionNotPending) {
		t.Fatalf("expected ErrConnectionNotPending, got %v", err)
	}

	ok, err := uc.IsConnected(ctx, a, b)
	if err != nil || !ok {
		t.Fatalf("expected connected, got ok=%v err=%v", ok, err)
	}
}

func TestConnection_RequestValidation(t *testing.T) {
	a := uuid.New()
	missing := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true})
	ctx := context.Background()

	if _, err := uc.Request(ctx, a, a, ""); !errors.Is(err, ErrSelfConnection) {
		t.Fatalf("expected ErrSelfConnection, got %v", err)
	}
	if _, err := uc.Request(ctx, a, missing, ""); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestConnection_PairUniquenessBothDirections(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true, b: true})
	ctx := context.Background()

	if _, err := uc.Request(ctx, a, b, ""); err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := uc.Request(ctx, a, b, ""); !errors.Is(err, ErrConnectionExists) {
		t.Fatalf("expected ErrConnectionExists same direction, got %v", err)
	}
	if _, err := uc.Request(ctx, b, a, ""); !errors.Is(err, ErrConnectionExists) {
		t.Fatalf("expected ErrConnectionExists reversed direction, got %v", err)
	}
}

func TestConnection_CancelFreesThePair(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true, b: true})
	ctx := context.Background()

	created, err := uc.Request(ctx, a, b, "")
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	// Only the sender may cancel.
	if err := uc.Cancel(ctx, b, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.Cancel(ctx, a, created.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancellation removes the record, so a fresh request succeeds.
	if _, err := uc.Request(ctx, a, b, ""); err != nil {
		t.Fatalf("request after cancel: %v", err)
	}
}

func TestConnection_RejectedRecordKeepsBlocking(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true, b: true})
	ctx := context.Background()

	created, err := uc.Request(ctx, a, b, "")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := uc.Respond(ctx, b, created.ID, DecisionReject); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// Rejected records are never cleaned up, so the pair stays occupied.
	if _, err := uc.Request(ctx, a, b, ""); !errors.Is(err, ErrConnectionExists) {
		t.Fatalf("expected ErrConnectionExists after reject, got %v", err)
	}
}

func TestConnection_CancelRequiresPending(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true, b: true})
	ctx := context.Background()

	created, err := uc.Request(ctx, a, b, "")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := uc.Respond(ctx, b, created.ID, DecisionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// An accepted connection is an active relationship; the sender cannot
	// silently delete it through cancel.
	if err := uc.Cancel(ctx, a, created.ID); !errors.Is(err, ErrConnectionNotPending) {
		t.Fatalf("expected ErrConnectionNotPending, got %v", err)
	}
	if ok, _ := uc.IsConnected(ctx, a, b); !ok {
		t.Fatalf("accepted connection must survive a cancel attempt")
	}
}

func TestConnection_StatusViewerRelative(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true, b: true})
	ctx := context.Background()

	st, err := uc.Status(ctx, a, b)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Status != connection.StatusNone || st.Connection != nil {
		t.Fatalf("expected NONE with nil connection, got %+v", st)
	}

	if _, err := uc.Request(ctx, a, b, ""); err != nil {
		t.Fatalf("request: %v", err)
	}

	st, err = uc.Status(ctx, a, b)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Status != connection.StatusPending || !st.IsSender {
		t.Fatalf("expected pending sender view, got %+v", st)
	}

	st, err = uc.Status(ctx, b, a)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Status != connection.StatusPending || st.IsSender {
		t.Fatalf("expected pending receiver view, got %+v", st)
	}
}

func TestConnection_ListGroups(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	d := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true, b: true, c: true, d: true})
	ctx := context.Background()

	sent, err := uc.Request(ctx, a, b, "")
	if err != nil {
		t.Fatalf("request a->b: %v", err)
	}
	_ = sent

	received, err := uc.Request(ctx, c, a, "")
	if err != nil {
		t.Fatalf("request c->a: %v", err)
	}
	_ = received

	accepted, err := uc.Request(ctx, d, a, "")
	if err != nil {
		t.Fatalf("request d->a: %v", err)
	}
	if _, err := uc.Respond(ctx, a, accepted.ID, DecisionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}

	groups, err := uc.List(ctx, a)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(groups.Sent) != 1 || groups.Sent[0].ReceiverID != b {
		t.Fatalf("unexpected sent group: %+v", groups.Sent)
	}
	if len(groups.Received) != 1 || groups.Received[0].SenderID != c {
		t.Fatalf("unexpected received group: %+v", groups.Received)
	}
	if len(groups.Accepted) != 1 || groups.Accepted[0].SenderID != d {
		t.Fatalf("unexpected accepted group: %+v", groups.Accepted)
	}
	if len(groups.All) != 3 {
		t.Fatalf("expected 3 total, got %d", len(groups.All))
	}
}

func TestConnection_RespondMissingAndInvalidDecision(t *testing.T) {
	a := uuid.New()
	uc, _ := newConnUsecase(map[uuid.UUID]bool{a: true})
	ctx := context.Background()

	if _, err := uc.Respond(ctx, a, uuid.New(), DecisionAccept); !errors.Is(err, ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound, got %v", err)
	}
	if _, err := uc.Respond(ctx, a, uuid.New(), Decision("maybe")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
