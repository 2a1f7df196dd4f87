package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

// mockDefectRepository is a hand-rolled mock for DefectRepository.
type mockDefectRepository struct {
	createErr error
	created   *models.Defect

	getDefect *models.Defect
	getErr    error

	listResult []*models.DefectWithNames
	listErr    error
	lastFilter models.DefectFilter

	updateErr    error
	lastStatusID uuid.UUID
	lastStatus   models.Status
}

func (m *mockDefectRepository) Create(ctx context.Context, defect *models.Defect) error {
	if m.createErr != nil {
		return m.createErr
	}
	defect.ID = uuid.New()
	now := time.Now()
	defect.CreatedAt = now
	defect.UpdatedAt = now
	m.created = defect
	return nil
}

func (m *mockDefectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Defect, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getDefect, nil
}

func (m *mockDefectRepository) List(ctx context.Context, filter models.DefectFilter) ([]*models.DefectWithNames, error) {
	m.lastFilter = filter
	return m.listResult, m.listErr
}

func (m *mockDefectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Defect, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastStatusID = id
	m.lastStatus = status
	return &models.Defect{
		ID:        id,
		Status:    status,
		UpdatedAt: time.Now(),
	}, nil
}

// mockCommentRepository is a hand-rolled mock for CommentRepository.
type mockCommentRepository struct {
	createErr error
	created   *models.Comment

	listResult []*models.CommentWithAuthor
	listErr    error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	m.created = comment
	return nil
}

func (m *mockCommentRepository) ListByDefect(ctx context.Context, defectID uuid.UUID) ([]*models.CommentWithAuthor, error) {
	return m.listResult, m.listErr
}

// mockProjectRepository is a hand-rolled mock for ProjectRepository.
type mockProjectRepository struct {
	listResult []*models.ProjectWithCounts
	listErr    error

	stats    *models.DefectStats
	statsErr error
}

func (m *mockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return nil
}

func (m *mockProjectRepository) ListActive(ctx context.Context) ([]*models.ProjectWithCounts, error) {
	return m.listResult, m.listErr
}

func (m *mockProjectRepository) Stats(ctx context.Context) (*models.DefectStats, error) {
	return m.stats, m.statsErr
}

// mockUserRepository is a hand-rolled mock for UserRepository.
type mockUserRepository struct {
	users    []*models.User
	listErr  error
	lastRole models.Role
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	return nil
}

func (m *mockUserRepository) ListActive(ctx context.Context) ([]*models.User, error) {
	return m.users, m.listErr
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	m.lastRole = role
	return m.users, m.listErr
}
