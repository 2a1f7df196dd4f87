package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/apperrors"
	"github.com/defectdesk/defectdesk-engine/pkg/auth"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
	"github.com/defectdesk/defectdesk-engine/pkg/repositories"
)

// ProjectService is the read-side surface for projects.
type ProjectService interface {
	// ListActive returns active projects with aggregate defect counts,
	// newest first.
	ListActive(ctx context.Context) ([]*models.ProjectWithCounts, error)
	// Stats returns global cross-project defect counters.
	Stats(ctx context.Context) (*models.DefectStats, error)
}

// projectService implements ProjectService.
type projectService struct {
	projects repositories.ProjectRepository
	logger   *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(projects repositories.ProjectRepository, logger *zap.Logger) ProjectService {
	return &projectService{
		projects: projects,
		logger:   logger,
	}
}

// ListActive returns active projects with defect counts.
func (s *projectService) ListActive(ctx context.Context) ([]*models.ProjectWithCounts, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpListProjects) {
		return nil, apperrors.ErrForbidden
	}

	return s.projects.ListActive(ctx)
}

// Stats returns global defect counters.
func (s *projectService) Stats(ctx context.Context) (*models.DefectStats, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpListProjects) {
		return nil, apperrors.ErrForbidden
	}

	return s.projects.Stats(ctx)
}

// Ensure projectService implements ProjectService at compile time.
var _ ProjectService = (*projectService)(nil)
