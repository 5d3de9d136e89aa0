package dto

import (
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type VouchResponse struct {
	ID            uuid.UUID `json:"id"`
	VoucherID     uuid.UUID `json:"voucher_id"`
	VoucherHandle string    `json:"voucher_handle,omitempty"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewVouchResponse(v repository.Vouch) VouchResponse {
	return VouchResponse{
		ID:            v.ID,
		VoucherID:     v.VoucherID,
		VoucherHandle: v.VoucherHandle,
		Comment:       v.Comment,
		CreatedAt:     v.CreatedAt,
	}
}

func NewVouchResponses(vouches []repository.Vouch) []VouchResponse {
	out := make([]VouchResponse, 0, len(vouches))
	for _, v := range vouches {
		out = append(out, NewVouchResponse(v))
	}
	return out
}
