package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	repo "github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
)

// GetUser returns the user with id. Ids that were never issued, including
// malformed ones, are reported as ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id string) (UserDTO, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return UserDTO{}, err
	}
	return toDTO(u), nil
}

func (s *UserService) load(ctx context.Context, id string) (*entity.User, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// canonicalID rewrites any form uuid.Parse accepts (braces, urn prefix, no
// hyphens, upper case) into the lower-case hyphenated form ids are stored in.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
