package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

// ListUsers pages through users in creation order. A zero limit means the
// default page size and limits above MaxPageLimit are capped.
func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) (UserPage, error) {
	if in.Limit < 0 {
		return UserPage{}, valueobject.NewValidationError("limit", valueobject.RuleNonNegative)
	}
	if in.Offset < 0 {
		return UserPage{}, valueobject.NewValidationError("offset", valueobject.RuleNonNegative)
	}
	limit := in.Limit
	switch {
	case limit == 0:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}

	users, err := s.repo.ListPaginated(ctx, limit, in.Offset)
	if err != nil {
		return UserPage{}, fmt.Errorf("list users: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return UserPage{}, fmt.Errorf("count users: %w", err)
	}

	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toDTO(u))
	}
	s.logger.WithFields(logrus.Fields{"limit": limit, "offset": in.Offset, "count": len(out), "total": total}).Debug("users listed")
	return UserPage{Users: out, Total: total, Limit: limit, Offset: in.Offset}, nil
}
