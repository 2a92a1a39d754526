package application

import (
	"context"
	"errors"
	"fmt"

	repo "github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
)

// DeleteUser removes a user permanently.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	id, ok := canonicalID(id)
	if !ok {
		return ErrUserNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.WithField("user_id", id).Info("user deleted")
	return nil
}
