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

// CreateUser validates input, rejects already registered addresses, hashes the
// password, and persists the new user.
//
// The lookup by email avoids hashing for obvious duplicates; the store's unique
// constraint decides concurrent races, and both paths yield ErrDuplicateEmail.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (UserDTO, error) {
	email, err := valueobject.NewEmail(in.Email)
	if err != nil {
		return UserDTO{}, err
	}
	password, err := valueobject.NewPassword(in.Password)
	if err != nil {
		return UserDTO{}, err
	}
	log := s.logger.WithField("email", email.String())

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		log.Warn("create user rejected: email already registered")
		return UserDTO{}, ErrDuplicateEmail
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, fmt.Errorf("lookup user by email: %w", err)
	}

	hashed, err := password.Hash(s.hasher)
	if err != nil {
		return UserDTO{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := entity.RegisterUser(s.ids.NewID(), email, hashed, s.now())
	if err != nil {
		return UserDTO{}, err
	}

	if err := s.repo.Insert(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			log.Warn("create user lost insert race: email already registered")
			return UserDTO{}, ErrDuplicateEmail
		}
		return UserDTO{}, fmt.Errorf("insert user: %w", err)
	}
	log.WithField("user_id", u.ID()).Info("user created")

	s.publishRegistered(ctx, u)
	return toDTO(u), nil
}

// publishRegistered is best effort: the user is already committed, so a broker
// outage must not turn a successful registration into an error.
func (s *UserService) publishRegistered(ctx context.Context, u *entity.User) {
	if s.events == nil {
		return
	}
	evt := UserRegistered{UserID: u.ID(), Email: u.Email().String(), OccurredAt: u.CreatedAt()}
	if err := s.events.PublishUserRegistered(ctx, evt); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"user_id": u.ID()}).Warn("publish user registered failed")
	}
}
