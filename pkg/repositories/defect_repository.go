package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/defectdesk/defectdesk-engine/pkg/apperrors"
	"github.com/defectdesk/defectdesk-engine/pkg/database"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

// pgForeignKeyViolation is the PostgreSQL error code for a failed
// foreign key constraint.
const pgForeignKeyViolation = "23503"

// DefectRepository defines the interface for defect data access.
type DefectRepository interface {
	Create(ctx context.Context, defect *models.Defect) error
	Get(ctx context.Context, id uuid.UUID) (*models.Defect, error)
	List(ctx context.Context, filter models.DefectFilter) ([]*models.DefectWithNames, error)
	// UpdateStatus sets the defect's status and refreshes its updated
	// timestamp, returning the updated row. Returns ErrNotFound if the
	// defect does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Defect, error)
}

// defectRepository implements DefectRepository using PostgreSQL.
type defectRepository struct {
	db *database.DB
}

// NewDefectRepository creates a new defect repository.
func NewDefectRepository(db *database.DB) DefectRepository {
	return &defectRepository{db: db}
}

const defectColumns = `id, title, description, project_id, status, priority,
	author_id, assignee_id, planned_completion_date, created_at, updated_at`

// Create inserts a new defect. Project, author and assignee references
// must resolve to existing rows; a foreign key violation surfaces as
// ErrInvalidReference.
func (r *defectRepository) Create(ctx context.Context, defect *models.Defect) error {
	if defect.ID == uuid.Nil {
		defect.ID = uuid.New()
	}

	now := time.Now()
	defect.CreatedAt = now
	defect.UpdatedAt = now
	if defect.Status == "" {
		defect.Status = models.StatusNew
	}

	query := `
		INSERT INTO defects (id, title, description, project_id, status, priority,
			author_id, assignee_id, planned_completion_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		defect.ID,
		defect.Title,
		defect.Description,
		defect.ProjectID,
		defect.Status,
		defect.Priority,
		defect.AuthorID,
		defect.AssigneeID,
		defect.PlannedCompletionDate,
		defect.CreatedAt,
		defect.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrInvalidReference
		}
		return fmt.Errorf("failed to create defect: %w", err)
	}

	return nil
}

// Get retrieves a defect by ID.
func (r *defectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Defect, error) {
	query := `SELECT ` + defectColumns + ` FROM defects WHERE id = $1`

	var defect models.Defect
	err := r.db.QueryRow(ctx, query, id).Scan(
		&defect.ID,
		&defect.Title,
		&defect.Description,
		&defect.ProjectID,
		&defect.Status,
		&defect.Priority,
		&defect.AuthorID,
		&defect.AssigneeID,
		&defect.PlannedCompletionDate,
		&defect.CreatedAt,
		&defect.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get defect: %w", err)
	}

	return &defect, nil
}

// List returns defects joined with project and user display names,
// newest first. Filters are optional and conjunctive.
func (r *defectRepository) List(ctx context.Context, filter models.DefectFilter) ([]*models.DefectWithNames, error) {
	query := `
		SELECT d.id, d.title, d.description, d.project_id, d.status, d.priority,
		       d.author_id, d.assignee_id, d.planned_completion_date,
		       d.created_at, d.updated_at,
		       COALESCE(p.name, ''),
		       COALESCE(u1.first_name || ' ' || u1.last_name, ''),
		       COALESCE(u2.first_name || ' ' || u2.last_name, '')
		FROM defects d
		LEFT JOIN projects p ON d.project_id = p.id
		LEFT JOIN users u1 ON d.author_id = u1.id
		LEFT JOIN users u2 ON d.assignee_id = u2.id
		WHERE 1=1`

	var args []any
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		query += fmt.Sprintf(" AND d.project_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND d.status = $%d", len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		query += fmt.Sprintf(" AND d.priority = $%d", len(args))
	}

	query += " ORDER BY d.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list defects: %w", err)
	}
	defer rows.Close()

	var defects []*models.DefectWithNames
	for rows.Next() {
		var d models.DefectWithNames
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.Description,
			&d.ProjectID,
			&d.Status,
			&d.Priority,
			&d.AuthorID,
			&d.AssigneeID,
			&d.PlannedCompletionDate,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.ProjectName,
			&d.AuthorName,
			&d.AssigneeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan defect: %w", err)
		}
		defects = append(defects, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read defects: %w", err)
	}

	return defects, nil
}

// UpdateStatus sets the defect's status and refreshes updated_at.
func (r *defectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Defect, error) {
	query := `
		UPDATE defects
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + defectColumns

	var defect models.Defect
	err := r.db.QueryRow(ctx, query, status, time.Now(), id).Scan(
		&defect.ID,
		&defect.Title,
		&defect.Description,
		&defect.ProjectID,
		&defect.Status,
		&defect.Priority,
		&defect.AuthorID,
		&defect.AssigneeID,
		&defect.PlannedCompletionDate,
		&defect.CreatedAt,
		&defect.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update defect status: %w", err)
	}

	return &defect, nil
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign key
// constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
