package usecase

import (
	"context"
	"strings"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	// AddSkill is idempotent by name: creating an existing skill returns
	// the existing record.
	AddSkill(ctx context.Context, name, category string) (skill.Skill, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	out, err := u.repo.ListSkills(ctx, category)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skill) AddSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := u.repo.UpsertByName(ctx, name, category)
	if err != nil {
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}
