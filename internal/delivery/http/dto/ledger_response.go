package dto

import (
	"time"

	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

type LedgerEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	Category    string    `json:"category,omitempty"`
	Direction   string    `json:"direction"`
	Proficiency int       `json:"proficiency,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewLedgerEntryResponse(e skill.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          e.ID,
		SkillID:     e.SkillID,
		SkillName:   e.SkillName,
		Category:    e.Category,
		Direction:   string(e.Direction),
		Proficiency: e.Proficiency,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
	}
}

func NewLedgerEntryResponses(entries []skill.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewLedgerEntryResponse(e))
	}
	return out
}
