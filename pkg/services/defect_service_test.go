package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/apperrors"
	"github.com/defectdesk/defectdesk-engine/pkg/auth"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

func actorCtx(role models.Role) (context.Context, auth.Actor) {
	actor := auth.Actor{UserID: uuid.New(), Role: role, Username: "tester"}
	return auth.WithActor(context.Background(), actor), actor
}

func validCreateRequest() CreateDefectRequest {
	return CreateDefectRequest{
		Title:       "Crack in wall",
		Description: "Vertical crack on the third floor, section B",
		ProjectID:   uuid.New(),
		Priority:    models.PriorityHigh,
	}
}

func TestCreate_ForbiddenForNonManagers(t *testing.T) {
	for _, role := range []models.Role{models.RoleEngineer, models.RoleObserver} {
		t.Run(string(role), func(t *testing.T) {
			repo := &mockDefectRepository{}
			svc := NewDefectService(repo, &mockCommentRepository{}, zap.NewNop())

			ctx, _ := actorCtx(role)
			_, err := svc.Create(ctx, validCreateRequest())

			require.ErrorIs(t, err, apperrors.ErrForbidden)
			assert.Nil(t, repo.created, "repository must not be touched on a denied create")
		})
	}
}

func TestCreate_Unauthenticated(t *testing.T) {
	svc := NewDefectService(&mockDefectRepository{}, &mockCommentRepository{}, zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestCreate_ManagerGetsNewDefectWithAuthor(t *testing.T) {
	repo := &mockDefectRepository{}
	svc := NewDefectService(repo, &mockCommentRepository{}, zap.NewNop())

	ctx, actor := actorCtx(models.RoleManager)
	req := validCreateRequest()

	defect, err := svc.Create(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, models.StatusNew, defect.Status)
	assert.Equal(t, actor.UserID, defect.AuthorID)
	assert.Equal(t, req.Title, defect.Title)
	assert.Equal(t, req.ProjectID, defect.ProjectID)
	assert.Equal(t, models.PriorityHigh, defect.Priority)
	assert.NotEqual(t, uuid.Nil, defect.ID)
	assert.False(t, defect.CreatedAt.IsZero())
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateDefectRequest)
	}{
		{"missing title", func(r *CreateDefectRequest) { r.Title = "" }},
		{"missing description", func(r *CreateDefectRequest) { r.Description = "" }},
		{"missing project", func(r *CreateDefectRequest) { r.ProjectID = uuid.Nil }},
		{"missing priority", func(r *CreateDefectRequest) { r.Priority = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDefectService(&mockDefectRepository{}, &mockCommentRepository{}, zap.NewNop())
			ctx, _ := actorCtx(models.RoleManager)

			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.Create(ctx, req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err), "expected a validation error, got %v", err)
		})
	}
}

func TestCreate_InvalidPriority(t *testing.T) {
	svc := NewDefectService(&mockDefectRepository{}, &mockCommentRepository{}, zap.NewNop())
	ctx, _ := actorCtx(models.RoleManager)

	req := validCreateRequest()
	req.Priority = "Urgent"

	_, err := svc.Create(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrInvalidPriority)
}

func TestCreate_UnresolvedReference(t *testing.T) {
	repo := &mockDefectRepository{createErr: apperrors.ErrInvalidReference}
	svc := NewDefectService(repo, &mockCommentRepository{}, zap.NewNop())
	ctx, _ := actorCtx(models.RoleManager)

	_, err := svc.Create(ctx, validCreateRequest())
	require.ErrorIs(t, err, apperrors.ErrInvalidReference)
}

func TestChangeStatus_AllStatusesAllowedFromAnyState(t *testing.T) {
	statuses := []models.Status{
		models.StatusNew,
		models.StatusInProgress,
		models.StatusOnReview,
		models.StatusClosed,
		models.StatusCancelled,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			repo := &mockDefectRepository{}
			svc := NewDefectService(repo, &mockCommentRepository{}, zap.NewNop())
			ctx, _ := actorCtx(models.RoleEngineer)

			defectID := uuid.New()
			defect, err := svc.ChangeStatus(ctx, defectID, status)
			require.NoError(t, err)

			assert.Equal(t, status, defect.Status)
			assert.Equal(t, defectID, repo.lastStatusID)
			assert.False(t, defect.UpdatedAt.IsZero())
		})
	}
}

func TestChangeStatus_AnyRoleAllowed(t *testing.T) {
	for _, role := range []models.Role{models.RoleManager, models.RoleEngineer, models.RoleObserver} {
		t.Run(string(role), func(t *testing.T) {
			svc := NewDefectService(&mockDefectRepository{}, &mockCommentRepository{}, zap.NewNop())
			ctx, _ := actorCtx(role)

			_, err := svc.ChangeStatus(ctx, uuid.New(), models.StatusInProgress)
			require.NoError(t, err)
		})
	}
}

func TestChangeStatus_OutsideEnumeration(t *testing.T) {
	repo := &mockDefectRepository{}
	svc := NewDefectService(repo, &mockCommentRepository{}, zap.NewNop())
	ctx, _ := actorCtx(models.RoleEngineer)

	_, err := svc.ChangeStatus(ctx, uuid.New(), "NotAStatus")
	require.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Equal(t, uuid.Nil, repo.lastStatusID, "repository must not be touched for an invalid status")
}

func TestChangeStatus_NotFound(t *testing.T) {
	repo := &mockDefectRepository{updateErr: apperrors.ErrNotFound}
	svc := NewDefectService(repo, &mockCommentRepository{}, zap.NewNop())
	ctx, _ := actorCtx(models.RoleEngineer)

	_, err := svc.ChangeStatus(ctx, uuid.New(), models.StatusClosed)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestList_PassesFilterThrough(t *testing.T) {
	repo := &mockDefectRepository{}
	svc := NewDefectService(repo, &mockCommentRepository{}, zap.NewNop())
	ctx, _ := actorCtx(models.RoleObserver)

	projectID := uuid.New()
	status := models.StatusNew
	filter := models.DefectFilter{ProjectID: &projectID, Status: &status}

	_, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, filter, repo.lastFilter)
}

func TestAddComment_SetsAuthor(t *testing.T) {
	defectID := uuid.New()
	defects := &mockDefectRepository{getDefect: &models.Defect{ID: defectID}}
	comments := &mockCommentRepository{}
	svc := NewDefectService(defects, comments, zap.NewNop())

	ctx, actor := actorCtx(models.RoleEngineer)

	comment, err := svc.AddComment(ctx, defectID, "Fixed, please review")
	require.NoError(t, err)

	assert.Equal(t, actor.UserID, comment.AuthorID)
	assert.Equal(t, defectID, comment.DefectID)
	assert.Equal(t, "Fixed, please review", comment.Text)
}

func TestAddComment_DefectNotFound(t *testing.T) {
	defects := &mockDefectRepository{getErr: apperrors.ErrNotFound}
	comments := &mockCommentRepository{}
	svc := NewDefectService(defects, comments, zap.NewNop())

	ctx, _ := actorCtx(models.RoleEngineer)

	_, err := svc.AddComment(ctx, uuid.New(), "hello")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, comments.created, "comment must not be created for a missing defect")
}

func TestAddComment_EmptyText(t *testing.T) {
	svc := NewDefectService(&mockDefectRepository{}, &mockCommentRepository{}, zap.NewNop())
	ctx, _ := actorCtx(models.RoleEngineer)

	_, err := svc.AddComment(ctx, uuid.New(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestListComments_ReturnsRepositoryData(t *testing.T) {
	comments := &mockCommentRepository{
		listResult: []*models.CommentWithAuthor{
			{AuthorName: "Petr Petrov"},
		},
	}
	svc := NewDefectService(&mockDefectRepository{}, comments, zap.NewNop())
	ctx, _ := actorCtx(models.RoleObserver)

	got, err := svc.ListComments(ctx, uuid.New())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Petr Petrov", got[0].AuthorName)
}
