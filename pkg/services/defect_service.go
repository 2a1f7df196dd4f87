package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/apperrors"
	"github.com/defectdesk/defectdesk-engine/pkg/auth"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
	"github.com/defectdesk/defectdesk-engine/pkg/repositories"
)

// CreateDefectRequest carries the payload for registering a new defect.
type CreateDefectRequest struct {
	Title                 string
	Description           string
	ProjectID             uuid.UUID
	Priority              models.Priority
	AssigneeID            *uuid.UUID
	PlannedCompletionDate *time.Time
}

// DefectService is the command and query surface for defects. Every
// operation resolves the actor from the request context and consults the
// permission table before touching the store.
type DefectService interface {
	// Create registers a new defect authored by the actor. Manager only.
	// The defect always starts in StatusNew.
	Create(ctx context.Context, req CreateDefectRequest) (*models.Defect, error)
	// ChangeStatus applies a lifecycle transition. Any enumerated status
	// may follow any other; values outside the enumeration fail with
	// ErrInvalidStatus.
	ChangeStatus(ctx context.Context, defectID uuid.UUID, status models.Status) (*models.Defect, error)
	// List returns defects matching the filter, newest first.
	List(ctx context.Context, filter models.DefectFilter) ([]*models.DefectWithNames, error)
	// AddComment appends a comment authored by the actor. Fails with
	// ErrNotFound if the defect does not exist.
	AddComment(ctx context.Context, defectID uuid.UUID, text string) (*models.Comment, error)
	// ListComments returns the defect's comments in chronological order.
	ListComments(ctx context.Context, defectID uuid.UUID) ([]*models.CommentWithAuthor, error)
}

// defectService implements DefectService.
type defectService struct {
	defects  repositories.DefectRepository
	comments repositories.CommentRepository
	logger   *zap.Logger
}

// NewDefectService creates a new defect service.
func NewDefectService(defects repositories.DefectRepository, comments repositories.CommentRepository, logger *zap.Logger) DefectService {
	return &defectService{
		defects:  defects,
		comments: comments,
		logger:   logger,
	}
}

// Create registers a new defect.
func (s *defectService) Create(ctx context.Context, req CreateDefectRequest) (*models.Defect, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpCreateDefect) {
		return nil, apperrors.ErrForbidden
	}

	if req.Title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}
	if req.Description == "" {
		return nil, apperrors.NewValidationError("description", "description is required")
	}
	if req.ProjectID == uuid.Nil {
		return nil, apperrors.NewValidationError("project_id", "project_id is required")
	}
	if req.Priority == "" {
		return nil, apperrors.NewValidationError("priority", "priority is required")
	}
	if !req.Priority.Valid() {
		return nil, apperrors.ErrInvalidPriority
	}

	defect := &models.Defect{
		Title:                 req.Title,
		Description:           req.Description,
		ProjectID:             req.ProjectID,
		Status:                models.StatusNew,
		Priority:              req.Priority,
		AuthorID:              actor.UserID,
		AssigneeID:            req.AssigneeID,
		PlannedCompletionDate: req.PlannedCompletionDate,
	}

	if err := s.defects.Create(ctx, defect); err != nil {
		return nil, err
	}

	s.logger.Info("Defect created",
		zap.String("defect_id", defect.ID.String()),
		zap.String("project_id", defect.ProjectID.String()),
		zap.String("author_id", actor.UserID.String()),
		zap.String("priority", string(defect.Priority)))

	return defect, nil
}

// ChangeStatus applies a lifecycle transition.
func (s *defectService) ChangeStatus(ctx context.Context, defectID uuid.UUID, status models.Status) (*models.Defect, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpChangeStatus) {
		return nil, apperrors.ErrForbidden
	}

	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	defect, err := s.defects.UpdateStatus(ctx, defectID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Defect status changed",
		zap.String("defect_id", defectID.String()),
		zap.String("status", string(status)),
		zap.String("actor_id", actor.UserID.String()))

	return defect, nil
}

// List returns defects matching the filter.
func (s *defectService) List(ctx context.Context, filter models.DefectFilter) ([]*models.DefectWithNames, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpListDefects) {
		return nil, apperrors.ErrForbidden
	}

	return s.defects.List(ctx, filter)
}

// AddComment appends a comment to a defect.
func (s *defectService) AddComment(ctx context.Context, defectID uuid.UUID, text string) (*models.Comment, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpAddComment) {
		return nil, apperrors.ErrForbidden
	}

	if text == "" {
		return nil, apperrors.NewValidationError("comment_text", "comment text is required")
	}

	// Resolve the defect first so a missing defect is a NotFound, not a
	// bare reference failure.
	if _, err := s.defects.Get(ctx, defectID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		DefectID: defectID,
		AuthorID: actor.UserID,
		Text:     text,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments returns the defect's comments, oldest first.
func (s *defectService) ListComments(ctx context.Context, defectID uuid.UUID) ([]*models.CommentWithAuthor, error) {
	actor, err := auth.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.OpListDefects) {
		return nil, apperrors.ErrForbidden
	}

	return s.comments.ListByDefect(ctx, defectID)
}

// Ensure defectService implements DefectService at compile time.
var _ DefectService = (*defectService)(nil)
