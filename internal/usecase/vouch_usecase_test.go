package usecase

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/domain/connection"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type memVouchRepo struct {
	records map[uuid.UUID]repository.Vouch
}

func newMemVouchRepo() *memVouchRepo {
	return &memVouchRepo{records: map[uuid.UUID]repository.Vouch{}}
}

func (m *memVouchRepo) Create(_ context.Context, v repository.Vouch) (repository.Vouch, error) {
	for _, r := range m.records {
		if r.VoucherID == v.VoucherID && r.VouchedID == v.VouchedID {
			return repository.Vouch{}, repository.ErrVouchDuplicate
		}
	}
	m.records[v.ID] = v
	return v, nil
}

func (m *memVouchRepo) ListForUser(_ context.Context, vouchedID uuid.UUID) ([]repository.Vouch, error) {
	out := make([]repository.Vouch, 0)
	for _, r := range m.records {
		if r.VouchedID == vouchedID {
			out = append(out, r)
		}
	}
	return out, nil
}

func acceptedPair(t *testing.T, conns *memConnRepo, a, b uuid.UUID) {
	t.Helper()
	c := connection.Connection{ID: uuid.New(), SenderID: a, ReceiverID: b}
	if _, err := conns.Create(context.Background(), c); err != nil {
		t.Fatalf("seed connection: %v", err)
	}
	if _, err := conns.UpdateStatusIfPending(context.Background(), c.ID, connection.StatusAccepted); err != nil {
		t.Fatalf("seed accept: %v", err)
	}
}

func TestVouch_RequiresAcceptedConnection(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	conns := newMemConnRepo()
	uc := NewVouchUsecase(newMemVouchRepo(), conns, stubUserRepo{existing: map[uuid.UUID]bool{a: true, b: true}})
	ctx := context.Background()

	if _, err := uc.Vouch(ctx, a, b, "great teacher"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}

	acceptedPair(t, conns, a, b)

	created, err := uc.Vouch(ctx, a, b, "great teacher")
	if err != nil {
		t.Fatalf("vouch: %v", err)
	}
	if created.VoucherID != a || created.VouchedID != b {
		t.Fatalf("unexpected vouch: %+v", created)
	}
}

func TestVouch_OnePerDirection(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	conns := newMemConnRepo()
	uc := NewVouchUsecase(newMemVouchRepo(), conns, stubUserRepo{existing: map[uuid.UUID]bool{a: true, b: true}})
	ctx := context.Background()

	acceptedPair(t, conns, a, b)

	if _, err := uc.Vouch(ctx, a, b, ""); err != nil {
		t.Fatalf("first vouch: %v", err)
	}
	if _, err := uc.Vouch(ctx, a, b, ""); !errors.Is(err, ErrVouchDuplicate) {
		t.Fatalf("expected ErrVouchDuplicate, got %v", err)
	}

	// The reverse direction is independent.
	if _, err := uc.Vouch(ctx, b, a, ""); err != nil {
		t.Fatalf("reverse vouch: %v", err)
	}
}

func TestVouch_SelfAndMissingTarget(t *testing.T) {
	a := uuid.New()
	uc := NewVouchUsecase(newMemVouchRepo(), newMemConnRepo(), stubUserRepo{existing: map[uuid.UUID]bool{a: true}})
	ctx := context.Background()

	if _, err := uc.Vouch(ctx, a, a, ""); !errors.Is(err, ErrSelfVouch) {
		t.Fatalf("expected ErrSelfVouch, got %v", err)
	}
	if _, err := uc.Vouch(ctx, a, uuid.New(), ""); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMessaging_GatedByConnection(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	conns := newMemConnRepo()
	msgs := &memMessageRepo{}
	uc := NewMessageUsecase(msgs, conns, stubUserRepo{existing: map[uuid.UUID]bool{a: true, b: true}}, nil)
	ctx := context.Background()

	if _, err := uc.Send(ctx, a, b, "hi"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}

	acceptedPair(t, conns, a, b)

	if _, err := uc.Send(ctx, a, b, "  "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	sent, err := uc.Send(ctx, a, b, "hi")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent.Content != "hi" {
		t.Fatalf("unexpected message: %+v", sent)
	}

	conv, err := uc.Conversation(ctx, b, a)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(conv) != 1 || conv[0].ID != sent.ID {
		t.Fatalf("unexpected conversation: %+v", conv)
	}
}

type memMessageRepo struct {
	records []repository.Message
}

func (m *memMessageRepo) Create(_ context.Context, msg repository.Message) (repository.Message, error) {
	m.records = append(m.records, msg)
	return msg, nil
}

func (m *memMessageRepo) Conversation(_ context.Context, a, b uuid.UUID) ([]repository.Message, error) {
	out := make([]repository.Message, 0)
	for _, r := range m.records {
		if (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a) {
			out = append(out, r)
		}
	}
	return out, nil
}
