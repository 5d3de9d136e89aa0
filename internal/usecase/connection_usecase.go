package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/connection"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrConnectionNotFound   = errors.New("connection not found")
	ErrSelfConnection       = errors.New("cannot send a connection request to yourself")
	ErrConnectionExists     = errors.New("connection already exists")
	ErrConnectionNotPending = errors.New("connection already processed")
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func (d Decision) status() (connection.Status, bool) {
	switch d {
	case DecisionAccept:
		return connection.StatusAccepted, true
	case DecisionReject:
		return connection.StatusRejected, true
	default:
		return "", false
	}
}

// ConnectionStatus is the viewer-relative answer to "where do I stand with
// this user". Connection is nil when Status is NONE.
type ConnectionStatus struct {
	Status     connection.Status
	IsSender   bool
	Connection *connection.Connection
}

type ConnectionGroups struct {
	Sent     []connection.Connection
	Received []connection.Connection
	Accepted []connection.Connection
	All      []connection.Connection
}

// Notifier pushes events to a user's live sessions. Implementations must be
// fire-and-forget; delivery failures never affect the operation.
type Notifier interface {
	NotifyUser(userID uuid.UUID, eventType string, payload any)
}

type ConnectionUsecase interface {
	Request(ctx context.Context, senderID, receiverID uuid.UUID, message string) (connection.Connection, error)
	Respond(ctx context.Context, actingUserID, connectionID uuid.UUID, d Decision) (connection.Connection, error)
	Cancel(ctx context.Context, actingUserID, connectionID uuid.UUID) error
	Status(ctx context.Context, viewerID, targetID uuid.UUID) (ConnectionStatus, error)
	IsConnected(ctx context.Context, a, b uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) (ConnectionGroups, error)
}

type Connection struct {
	conns    repository.ConnectionRepository
	users    repository.UserRepository
	notifier Notifier
}

func NewConnectionUsecase(conns repository.ConnectionRepository, users repository.UserRepository, notifier Notifier) *Connection {
	return &Connection{conns: conns, users: users, notifier: notifier}
}

func (u *Connection) Request(ctx context.Context, senderID, receiverID uuid.UUID, message string) (connection.Connection, error) {
	if senderID == uuid.Nil {
		return connection.Connection{}, ErrUnauthorized
	}
	if receiverID == uuid.Nil {
		return connection.Connection{}, ErrInvalidInput
	}
	if senderID == receiverID {
		return connection.Connection{}, ErrSelfConnection
	}

	exists, err := u.users.ExistsByID(ctx, receiverID)
	if err != nil {
		return connection.Connection{}, ErrInternal
	}
	if !exists {
		return connection.Connection{}, ErrUserNotFound
	}

	// Any prior record for the pair blocks a new request, whatever its
	// status; a REJECTED record is never cleaned up automatically.
	_, err = u.conns.FindByPair(ctx, senderID, receiverID)
	if err == nil {
		return connection.Connection{}, ErrConnectionExists
	}
	if !errors.Is(err, repository.ErrConnectionNotFound) {
		return connection.Connection{}, ErrInternal
	}

	created, err := u.conns.Create(ctx, connection.Connection{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    strings.TrimSpace(message),
	})
	if err != nil {
		// The unique pair index is authoritative under concurrency.
		if errors.Is(err, repository.ErrConnectionExists) {
			return connection.Connection{}, ErrConnectionExists
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return connection.Connection{}, ErrUserNotFound
		}
		return connection.Connection{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifyUser(receiverID, "connection_requested", created)
	}
	return created, nil
}

func (u *Connection) Respond(ctx context.Context, actingUserID, connectionID uuid.UUID, d Decision) (connection.Connection, error) {
	if actingUserID == uuid.Nil {
		return connection.Connection{}, ErrUnauthorized
	}
	status, ok := d.status()
	if !ok {
		return connection.Connection{}, ErrInvalidInput
	}

	c, err := u.conns.FindByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return connection.Connection{}, ErrConnectionNotFound
		}
		return connection.Connection{}, ErrInternal
	}
	if c.ReceiverID != actingUserID {
		return connection.Connection{}, ErrForbidden
	}
	if c.Status != connection.StatusPending {
		return connection.Connection{}, ErrConnectionNotPending
	}

	updated, err := u.conns.UpdateStatusIfPending(ctx, connectionID, status)
	if err != nil {
		// The conditional update decides; a concurrent respond that won
		// the race shows up here as not-pending.
		if errors.Is(err, repository.ErrConnectionNotPending) {
			return connection.Connection{}, ErrConnectionNotPending
		}
		return connection.Connection{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifyUser(updated.SenderID, "connection_"+string(updated.Status), updated)
	}
	return updated, nil
}

func (u *Connection) Cancel(ctx context.Context, actingUserID, connectionID uuid.UUID) error {
	if actingUserID == uuid.Nil {
		return ErrUnauthorized
	}

	c, err := u.conns.FindByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return ErrConnectionNotFound
		}
		return ErrInternal
	}
	if c.SenderID != actingUserID {
		return ErrForbidden
	}
	// Cancelling is only meaningful while the request is open; an accepted
	// connection must not be silently deletable by the sender.
	if c.Status != connection.StatusPending {
		return ErrConnectionNotPending
	}

	if err := u.conns.DeleteIfPending(ctx, connectionID); err != nil {
		if errors.Is(err, repository.ErrConnectionNotPending) {
			return ErrConnectionNotPending
		}
		return ErrInternal
	}
	return nil
}

func (u *Connection) Status(ctx context.Context, viewerID, targetID uuid.UUID) (ConnectionStatus, error) {
	if viewerID == uuid.Nil {
		return ConnectionStatus{}, ErrUnauthorized
	}

	c, err := u.conns.FindByPair(ctx, viewerID, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return ConnectionStatus{Status: connection.StatusNone}, nil
		}
		return ConnectionStatus{}, ErrInternal
	}

	return ConnectionStatus{
		Status:     c.Status,
		IsSender:   c.SenderID == viewerID,
		Connection: &c,
	}, nil
}

func (u *Connection) IsConnected(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if a == uuid.Nil || b == uuid.Nil || a == b {
		return false, nil
	}
	ok, err := u.conns.ExistsAccepted(ctx, a, b)
	if err != nil {
		return false, ErrInternal
	}
	return ok, nil
}

func (u *Connection) List(ctx context.Context, userID uuid.UUID) (ConnectionGroups, error) {
	if userID == uuid.Nil {
		return ConnectionGroups{}, ErrUnauthorized
	}

	all, err := u.conns.ListByUser(ctx, userID)
	if err != nil {
		return ConnectionGroups{}, ErrInternal
	}

	groups := ConnectionGroups{
		Sent:     make([]connection.Connection, 0),
		Received: make([]connection.Connection, 0),
		Accepted: make([]connection.Connection, 0),
		All:      all,
	}
	for _, c := range all {
		switch {
		case c.Status == connection.StatusAccepted:
			groups.Accepted = append(groups.Accepted, c)
		case c.Status == connection.StatusPending && c.SenderID == userID:
			groups.Sent = append(groups.Sent, c)
		case c.Status == connection.StatusPending && c.ReceiverID == userID:
			groups.Received = append(groups.Received, c)
		}
	}
	return groups, nil
}
