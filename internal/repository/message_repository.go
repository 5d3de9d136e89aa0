package repository

import (
	"context"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

const conversationLimit = 100

type Message struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	CreatedAt  time.Time
}

type MessageRepository interface {
	Create(ctx context.Context, m Message) (Message, error)
	// Conversation returns the two-party history ascending by time, capped.
	Conversation(ctx context.Context, a, b uuid.UUID) ([]Message, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m Message) (Message, error) {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (id, sender_id, receiver_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.SenderID, m.ReceiverID, m.Content, now,
	)
	if err != nil {
		return Message{}, err
	}
	m.CreatedAt = now
	return m, nil
}

func (r *PostgresMessageRepository) Conversation(ctx context.Context, a, b uuid.UUID) ([]Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, receiver_id, content, created_at
		 FROM (
			SELECT id, sender_id, receiver_id, content, created_at
			FROM messages
			WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
			ORDER BY created_at DESC
			LIMIT $3
		 ) latest
		 ORDER BY created_at ASC`,
		a, b, conversationLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
