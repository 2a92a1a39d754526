package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	repo "github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

// ChangeEmail moves a user to a new address, keeping addresses unique.
func (s *UserService) ChangeEmail(ctx context.Context, id, newEmail string) (UserDTO, error) {
	email, err := valueobject.NewEmail(newEmail)
	if err != nil {
		return UserDTO{}, err
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return UserDTO{}, err
	}
	if u.Email().Equals(email) {
		return toDTO(u), nil
	}

	if other, err := s.repo.FindByEmail(ctx, email); err == nil && other.ID() != u.ID() {
		return UserDTO{}, ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, fmt.Errorf("lookup user by email: %w", err)
	}

	if err := u.ChangeEmail(email, s.now()); err != nil {
		return UserDTO{}, err
	}
	if err := s.update(ctx, u); err != nil {
		return UserDTO{}, err
	}
	s.logger.WithField("user_id", u.ID()).Info("user email changed")
	return toDTO(u), nil
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, id string, in ChangePasswordInput) (UserDTO, error) {
	password, err := valueobject.NewPassword(in.NewPassword)
	if err != nil {
		return UserDTO{}, err
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return UserDTO{}, err
	}
	if !u.Password().Verify(s.hasher, in.CurrentPassword) {
		return UserDTO{}, valueobject.NewValidationError("current_password", valueobject.RuleMismatch)
	}

	hashed, err := password.Hash(s.hasher)
	if err != nil {
		return UserDTO{}, fmt.Errorf("hash password: %w", err)
	}
	if err := u.ChangePassword(hashed, s.now()); err != nil {
		return UserDTO{}, err
	}
	if err := s.update(ctx, u); err != nil {
		return UserDTO{}, err
	}
	s.logger.WithField("user_id", u.ID()).Info("user password changed")
	return toDTO(u), nil
}

// SetActive enables or disables an account. Setting the current state is a no-op.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) (UserDTO, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return UserDTO{}, err
	}
	if u.IsActive() == active {
		return toDTO(u), nil
	}

	if active {
		u.Activate(s.now())
	} else {
		u.Deactivate(s.now())
	}
	if err := s.update(ctx, u); err != nil {
		return UserDTO{}, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": u.ID(), "active": active}).Info("user activation changed")
	return toDTO(u), nil
}

func (s *UserService) update(ctx context.Context, u *entity.User) error {
	err := s.repo.Update(ctx, u)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repo.ErrDuplicateEmail):
		return ErrDuplicateEmail
	default:
		return fmt.Errorf("update user %s: %w", u.ID(), err)
	}
}
