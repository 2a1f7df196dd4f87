package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/apperrors"
	"github.com/defectdesk/defectdesk-engine/pkg/auth"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
	"github.com/defectdesk/defectdesk-engine/pkg/repositories"
)

// UserService is the read-side surface for users. Provisioning happens
// out of band; this service only lists accounts for assignment pickers.
type UserService interface {
	// ListActive returns all active users.
	ListActive(ctx context.Context) ([]*models.User, error)
	// ListEngineers returns active users holding the engineer role.
	ListEngineers(ctx context.Context) ([]*models.User, error)
}

// userService implements UserService.
type userService struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repositories.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		users:  users,
		logger: logger,
	}
}

// ListActive returns all active users.
func (s *userService) ListActive(ctx context.Context) ([]*models.User, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpListEngineers) {
		return nil, apperrors.ErrForbidden
	}

	return s.users.ListActive(ctx)
}

// ListEngineers returns active engineers for the assignee picker.
func (s *userService) ListEngineers(ctx context.Context) ([]*models.User, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpListEngineers) {
		return nil, apperrors.ErrForbidden
	}

	return s.users.ListByRole(ctx, models.RoleEngineer)
}

// Ensure userService implements UserService at compile time.
var _ UserService = (*userService)(nil)
