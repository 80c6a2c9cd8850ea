package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
)

type accessUserRepository interface {
	RoleOf(ctx context.Context, id string) (models.UserRole, error)
}

// AccessService answers role questions for authenticated users. All
// checks read the stored assignment so a role change takes effect on
// the next request, not the next login.
type AccessService struct {
	users  accessUserRepository
	logger *zap.Logger
}

// NewAccessService constructs an AccessService instance.
func NewAccessService(users accessUserRepository, logger *zap.Logger) *AccessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessService{users: users, logger: logger}
}

// CurrentRole returns the effective role label for a user. Users with
// no assignment resolve to docente.
func (s *AccessService) CurrentRole(ctx context.Context, userID string) (models.UserRole, error) {
	role, err := s.users.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoleUnassigned, appErrors.Clone(appErrors.ErrUnauthenticated, "")
		}
		return models.RoleUnassigned, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve role")
	}

	switch role {
	case models.RoleSuperadmin:
		return models.RoleSuperadmin, nil
	case models.RoleCoordinador:
		return models.RoleCoordinador, nil
	default:
		return models.RoleDocente, nil
	}
}

// IsSuperadmin reports whether the user holds the superadmin role.
func (s *AccessService) IsSuperadmin(ctx context.Context, userID string) (bool, error) {
	role, err := s.users.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrUnauthenticated, "")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve role")
	}
	return role == models.RoleSuperadmin, nil
}

// IsCoordinador reports whether the user holds the coordinador role.
// Superadmin does not imply coordinador; delete policy checks both
// explicitly.
func (s *AccessService) IsCoordinador(ctx context.Context, userID string) (bool, error) {
	role, err := s.users.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrUnauthenticated, "")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve role")
	}
	return role == models.RoleCoordinador, nil
}

// IsDocente reports whether the user's effective role is docente.
// Unassigned users count as docente, matching CurrentRole.
func (s *AccessService) IsDocente(ctx context.Context, userID string) (bool, error) {
	role, err := s.users.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrUnauthenticated, "")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve role")
	}
	return role != models.RoleSuperadmin && role != models.RoleCoordinador, nil
}

// CanDeleteResources reports whether the user's role permits resource
// deletion at all. Ownership is checked separately against the row.
func (s *AccessService) CanDeleteResources(ctx context.Context, userID string) (bool, error) {
	role, err := s.users.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrUnauthenticated, "")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve role")
	}
	return role == models.RoleSuperadmin || role == models.RoleCoordinador, nil
}
