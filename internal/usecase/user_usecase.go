package usecase

import (
	"context"
	"errors"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (repository.UserProfile, error)
}

type User struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *User {
	return &User{users: users}
}

func (u *User) GetProfile(ctx context.Context, id uuid.UUID) (repository.UserProfile, error) {
	if id == uuid.Nil {
		return repository.UserProfile{}, ErrInvalidInput
	}
	p, err := u.users.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.UserProfile{}, ErrUserNotFound
		}
		return repository.UserProfile{}, ErrInternal
	}
	return p, nil
}
