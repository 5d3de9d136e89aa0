package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("message content is empty")

type MessageUsecase interface {
	Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (repository.Message, error)
	Conversation(ctx context.Context, viewerID, otherID uuid.UUID) ([]repository.Message, error)
}

type Messaging struct {
	messages repository.MessageRepository
	conns    repository.ConnectionRepository
	users    repository.UserRepository
	notifier Notifier
}

func NewMessageUsecase(messages repository.MessageRepository, conns repository.ConnectionRepository, users repository.UserRepository, notifier Notifier) *Messaging {
	return &Messaging{messages: messages, conns: conns, users: users, notifier: notifier}
}

func (u *Messaging) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (repository.Message, error) {
	if senderID == uuid.Nil {
		return repository.Message{}, ErrUnauthorized
	}
	if receiverID == uuid.Nil || senderID == receiverID {
		return repository.Message{}, ErrInvalidInput
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return repository.Message{}, ErrEmptyMessage
	}

	exists, err := u.users.ExistsByID(ctx, receiverID)
	if err != nil {
		return repository.Message{}, ErrInternal
	}
	if !exists {
		return repository.Message{}, ErrUserNotFound
	}

	connected, err := u.conns.ExistsAccepted(ctx, senderID, receiverID)
	if err != nil {
		return repository.Message{}, ErrInternal
	}
	if !connected {
		return repository.Message{}, ErrNotConnected
	}

	created, err := u.messages.Create(ctx, repository.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	})
	if err != nil {
		return repository.Message{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifyUser(receiverID, "message_received", created)
	}
	return created, nil
}

func (u *Messaging) Conversation(ctx context.Context, viewerID, otherID uuid.UUID) ([]repository.Message, error) {
	if viewerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if otherID == uuid.Nil || viewerID == otherID {
		return nil, ErrInvalidInput
	}

	connected, err := u.conns.ExistsAccepted(ctx, viewerID, otherID)
	if err != nil {
		return nil, ErrInternal
	}
	if !connected {
		return nil, ErrNotConnected
	}

	out, err := u.messages.Conversation(ctx, viewerID, otherID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
