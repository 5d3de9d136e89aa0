package dto

import (
	"time"

	"skillswap/internal/domain/connection"
	"skillswap/internal/usecase"

	"github.com/google/uuid"
)

type ConnectionResponse struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ConnectionStatusResponse struct {
	Status     string              `json:"status"`
	IsSender   bool                `json:"is_sender"`
	Connection *ConnectionResponse `json:"connection,omitempty"`
}

type ConnectionListResponse struct {
	Sent     []ConnectionResponse `json:"sent"`
	Received []ConnectionResponse `json:"received"`
	Accepted []ConnectionResponse `json:"accepted"`
}

func NewConnectionResponse(c connection.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:         c.ID,
		SenderID:   c.SenderID,
		ReceiverID: c.ReceiverID,
		Status:     string(c.Status),
		Message:    c.Message,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func NewConnectionResponses(conns []connection.Connection) []ConnectionResponse {
	out := make([]ConnectionResponse, 0, len(conns))
	for _, c := range conns {
		out = append(out, NewConnectionResponse(c))
	}
	return out
}

func NewConnectionStatusResponse(s usecase.ConnectionStatus) ConnectionStatusResponse {
	res := ConnectionStatusResponse{
		Status:   string(s.Status),
		IsSender: s.IsSender,
	}
	if s.Connection != nil {
		c := NewConnectionResponse(*s.Connection)
		res.Connection = &c
	}
	return res
}

func NewConnectionListResponse(g usecase.ConnectionGroups) ConnectionListResponse {
	return ConnectionListResponse{
		Sent:     NewConnectionResponses(g.Sent),
		Received: NewConnectionResponses(g.Received),
		Accepted: NewConnectionResponses(g.Accepted),
	}
}
