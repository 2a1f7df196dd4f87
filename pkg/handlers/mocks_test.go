package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/defectdesk/defectdesk-engine/pkg/models"
	"github.com/defectdesk/defectdesk-engine/pkg/services"
)

// mockDefectService is a hand-rolled mock for services.DefectService.
type mockDefectService struct {
	defect    *models.Defect
	createErr error
	lastReq   services.CreateDefectRequest

	changeErr    error
	lastStatusID uuid.UUID
	lastStatus   models.Status

	list       []*models.DefectWithNames
	listErr    error
	lastFilter models.DefectFilter

	comment    *models.Comment
	commentErr error
	lastText   string

	comments    []*models.CommentWithAuthor
	commentsErr error
}

func (m *mockDefectService) Create(ctx context.Context, req services.CreateDefectRequest) (*models.Defect, error) {
	m.lastReq = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.defect, nil
}

func (m *mockDefectService) ChangeStatus(ctx context.Context, defectID uuid.UUID, status models.Status) (*models.Defect, error) {
	m.lastStatusID = defectID
	m.lastStatus = status
	if m.changeErr != nil {
		return nil, m.changeErr
	}
	return m.defect, nil
}

func (m *mockDefectService) List(ctx context.Context, filter models.DefectFilter) ([]*models.DefectWithNames, error) {
	m.lastFilter = filter
	return m.list, m.listErr
}

func (m *mockDefectService) AddComment(ctx context.Context, defectID uuid.UUID, text string) (*models.Comment, error) {
	m.lastText = text
	if m.commentErr != nil {
		return nil, m.commentErr
	}
	return m.comment, nil
}

func (m *mockDefectService) ListComments(ctx context.Context, defectID uuid.UUID) ([]*models.CommentWithAuthor, error) {
	return m.comments, m.commentsErr
}

// mockProjectService is a hand-rolled mock for services.ProjectService.
type mockProjectService struct {
	projects []*models.ProjectWithCounts
	listErr  error

	stats    *models.DefectStats
	statsErr error
}

func (m *mockProjectService) ListActive(ctx context.Context) ([]*models.ProjectWithCounts, error) {
	return m.projects, m.listErr
}

func (m *mockProjectService) Stats(ctx context.Context) (*models.DefectStats, error) {
	return m.stats, m.statsErr
}

// mockUserService is a hand-rolled mock for services.UserService.
type mockUserService struct {
	users   []*models.User
	listErr error
}

func (m *mockUserService) ListActive(ctx context.Context) ([]*models.User, error) {
	return m.users, m.listErr
}

func (m *mockUserService) ListEngineers(ctx context.Context) ([]*models.User, error) {
	return m.users, m.listErr
}
