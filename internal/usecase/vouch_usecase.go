package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrVouchDuplicate = errors.New("already vouched for this user")
	ErrNotConnected   = errors.New("users are not connected")
	ErrSelfVouch      = errors.New("cannot vouch for yourself")
)

type VouchUsecase interface {
	Vouch(ctx context.Context, voucherID, vouchedID uuid.UUID, comment string) (repository.Vouch, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.Vouch, error)
}

type Vouching struct {
	vouches repository.VouchRepository
	conns   repository.ConnectionRepository
	users   repository.UserRepository
}

func NewVouchUsecase(vouches repository.VouchRepository, conns repository.ConnectionRepository, users repository.UserRepository) *Vouching {
	return &Vouching{vouches: vouches, conns: conns, users: users}
}

func (u *Vouching) Vouch(ctx context.Context, voucherID, vouchedID uuid.UUID, comment string) (repository.Vouch, error) {
	if voucherID == uuid.Nil {
		return repository.Vouch{}, ErrUnauthorized
	}
	if vouchedID == uuid.Nil {
		return repository.Vouch{}, ErrInvalidInput
	}
	if voucherID == vouchedID {
		return repository.Vouch{}, ErrSelfVouch
	}

	exists, err := u.users.ExistsByID(ctx, vouchedID)
	if err != nil {
		return repository.Vouch{}, ErrInternal
	}
	if !exists {
		return repository.Vouch{}, ErrUserNotFound
	}

	// An ACCEPTED connection is required at creation time only; the vouch
	// is not re-validated if the connection later goes away.
	connected, err := u.conns.ExistsAccepted(ctx, voucherID, vouchedID)
	if err != nil {
		return repository.Vouch{}, ErrInternal
	}
	if !connected {
		return repository.Vouch{}, ErrNotConnected
	}

	created, err := u.vouches.Create(ctx, repository.Vouch{
		ID:        uuid.New(),
		VoucherID: voucherID,
		VouchedID: vouchedID,
		Comment:   strings.TrimSpace(comment),
	})
	if err != nil {
		if errors.Is(err, repository.ErrVouchDuplicate) {
			return repository.Vouch{}, ErrVouchDuplicate
		}
		return repository.Vouch{}, ErrInternal
	}
	return created, nil
}

func (u *Vouching) ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.Vouch, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	out, err := u.vouches.ListForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
