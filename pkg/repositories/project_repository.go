package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/defectdesk/defectdesk-engine/pkg/database"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	// ListActive returns active projects annotated with aggregate defect
	// counts, newest first.
	ListActive(ctx context.Context) ([]*models.ProjectWithCounts, error)
	// Stats returns global cross-project defect counters.
	Stats(ctx context.Context) (*models.DefectStats, error)
}

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts a new project.
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = time.Now()

	query := `
		INSERT INTO projects (id, name, address, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Address,
		project.Description,
		project.IsActive,
		project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// ListActive returns active projects with per-project defect counts,
// computed by grouped aggregation over a LEFT JOIN so projects without
// defects still appear with zero counts.
func (r *projectRepository) ListActive(ctx context.Context) ([]*models.ProjectWithCounts, error) {
	query := `
		SELECT p.id, p.name, p.address, p.description, p.is_active, p.created_at,
		       COUNT(d.id),
		       COUNT(CASE WHEN d.status = 'New' THEN 1 END),
		       COUNT(CASE WHEN d.status = 'InProgress' THEN 1 END),
		       COUNT(CASE WHEN d.status IN ('Closed', 'Cancelled') THEN 1 END)
		FROM projects p
		LEFT JOIN defects d ON p.id = d.project_id
		WHERE p.is_active = true
		GROUP BY p.id
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.ProjectWithCounts
	for rows.Next() {
		var p models.ProjectWithCounts
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Address,
			&p.Description,
			&p.IsActive,
			&p.CreatedAt,
			&p.TotalDefects,
			&p.NewDefects,
			&p.InProgressDefects,
			&p.ClosedDefects,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	return projects, nil
}

// Stats returns global defect counts by status and for the two highest
// priority levels.
func (r *projectRepository) Stats(ctx context.Context) (*models.DefectStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = 'New' THEN 1 END),
		       COUNT(CASE WHEN status = 'InProgress' THEN 1 END),
		       COUNT(CASE WHEN status = 'OnReview' THEN 1 END),
		       COUNT(CASE WHEN status = 'Closed' THEN 1 END),
		       COUNT(CASE WHEN status = 'Cancelled' THEN 1 END),
		       COUNT(CASE WHEN priority = 'Critical' THEN 1 END),
		       COUNT(CASE WHEN priority = 'High' THEN 1 END)
		FROM defects`

	var stats models.DefectStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalDefects,
		&stats.NewDefects,
		&stats.InProgressDefects,
		&stats.OnReviewDefects,
		&stats.ClosedDefects,
		&stats.CancelledDefects,
		&stats.CriticalDefects,
		&stats.HighDefects,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get defect stats: %w", err)
	}

	return &stats, nil
}
