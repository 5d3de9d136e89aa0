package dto

import (
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	ID        uuid.UUID             `json:"id"`
	Handle    string                `json:"handle"`
	FirstName string                `json:"first_name"`
	LastName  string                `json:"last_name"`
	Location  string                `json:"location,omitempty"`
	Bio       string                `json:"bio,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	Skills    []LedgerEntryResponse `json:"skills"`
}

func NewUserProfileResponse(p repository.UserProfile) UserProfileResponse {
	return UserProfileResponse{
		ID:        p.ID,
		Handle:    p.Handle,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Location:  p.Location,
		Bio:       p.Bio,
		CreatedAt: p.CreatedAt,
		Skills:    NewLedgerEntryResponses(p.Skills),
	}
}

func NewUserProfileResponses(profiles []repository.UserProfile) []UserProfileResponse {
	out := make([]UserProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewUserProfileResponse(p))
	}
	return out
}
