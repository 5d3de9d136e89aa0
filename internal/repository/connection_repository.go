package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/database"
	"skillswap/internal/domain/connection"

	"github.com/google/uuid"
)

var (
	ErrConnectionNotFound   = errors.New("connection not found")
	ErrConnectionExists     = errors.New("connection already exists")
	ErrConnectionNotPending = errors.New("connection not pending")
)

// ConnectionRepository persists relationship requests. Pair uniqueness is a
// database unique index over the unordered pair, and every state transition
// is an atomic conditional write so concurrent callers cannot both succeed.
type ConnectionRepository interface {
	Create(ctx context.Context, c connection.Connection) (connection.Connection, error)
	FindByID(ctx context.Context, id uuid.UUID) (connection.Connection, error)
	FindByPair(ctx context.Context, a, b uuid.UUID) (connection.Connection, error)
	// UpdateStatusIfPending flips PENDING to status in one statement;
	// ErrConnectionNotPending means another caller got there first.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status connection.Status) (connection.Connection, error)
	// DeleteIfPending removes a PENDING record entirely, returning the
	// pair to the no-record state.
	DeleteIfPending(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]connection.Connection, error)
	ExistsAccepted(ctx context.Context, a, b uuid.UUID) (bool, error)
}

type PostgresConnectionRepository struct {
	db database.DB
}

func NewPostgresConnectionRepository(db database.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

const connectionSelect = `SELECT id, sender_id, receiver_id, status, message, created_at, updated_at FROM connections`

func (r *PostgresConnectionRepository) Create(ctx context.Context, c connection.Connection) (connection.Connection, error) {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO connections (id, sender_id, receiver_id, status, message, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		c.ID, c.SenderID, c.ReceiverID, string(connection.StatusPending), c.Message, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return connection.Connection{}, ErrConnectionExists
		}
		// Either party can disappear between the caller's existence check
		// and this insert.
		if isForeignKeyViolation(err) {
			return connection.Connection{}, ErrUserNotFound
		}
		return connection.Connection{}, err
	}
	return r.FindByID(ctx, c.ID)
}

func (r *PostgresConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (connection.Connection, error) {
	row := r.db.QueryRow(ctx, connectionSelect+` WHERE id = $1`, id)
	return scanConnection(row)
}

func (r *PostgresConnectionRepository) FindByPair(ctx context.Context, a, b uuid.UUID) (connection.Connection, error) {
	row := r.db.QueryRow(ctx,
		connectionSelect+` WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)`,
		a, b,
	)
	return scanConnection(row)
}

func (r *PostgresConnectionRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status connection.Status) (connection.Connection, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE connections SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		string(status), time.Now().UTC(), id, string(connection.StatusPending),
	)
	if err != nil {
		return connection.Connection{}, err
	}
	if affected == 0 {
		return connection.Connection{}, ErrConnectionNotPending
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresConnectionRepository) DeleteIfPending(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM connections WHERE id = $1 AND status = $2`,
		id, string(connection.StatusPending),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConnectionNotPending
	}
	return nil
}

func (r *PostgresConnectionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]connection.Connection, error) {
	rows, err := r.db.Query(ctx,
		connectionSelect+` WHERE sender_id = $1 OR receiver_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]connection.Connection, 0)
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresConnectionRepository) ExistsAccepted(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM connections
			WHERE ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
			AND status = $3
		)`,
		a, b, string(connection.StatusAccepted),
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanConnection(row database.Row) (connection.Connection, error) {
	var c connection.Connection
	var status string
	if err := row.Scan(&c.ID, &c.SenderID, &c.ReceiverID, &status, &c.Message, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isNoRows(err) {
			return connection.Connection{}, ErrConnectionNotFound
		}
		return connection.Connection{}, err
	}
	c.Status = connection.Status(status)
	return c, nil
}
