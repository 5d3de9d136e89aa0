package connection

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	// StatusNone is never stored; it is the answer when no record exists
	// for a pair.
	StatusNone     Status = "none"
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Connection is a directed relationship request. Once accepted it acts as a
// bidirectional trust gate for messaging and vouching.
type Connection struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Status     Status
	Message    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Involves reports whether userID is either party of the connection.
func (c Connection) Involves(userID uuid.UUID) bool {
	return c.SenderID == userID || c.ReceiverID == userID
}

// Other returns the counterpart of userID, assuming Involves(userID).
func (c Connection) Other(userID uuid.UUID) uuid.UUID {
	if c.SenderID == userID {
		return c.ReceiverID
	}
	return c.SenderID
}
