package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/defectdesk/defectdesk-engine/pkg/apperrors"
	"github.com/defectdesk/defectdesk-engine/pkg/database"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

// CommentRepository defines the interface for defect comment data access.
// Comments are append-only: there is no update or delete.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// ListByDefect returns the defect's comments in ascending creation
	// order (chronological reading order).
	ListByDefect(ctx context.Context, defectID uuid.UUID) ([]*models.CommentWithAuthor, error)
}

// commentRepository implements CommentRepository using PostgreSQL.
type commentRepository struct {
	db *database.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *database.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment. The defect and author references must
// resolve; a foreign key violation surfaces as ErrInvalidReference.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()

	query := `
		INSERT INTO defect_comments (id, defect_id, author_id, comment_text, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.DefectID,
		comment.AuthorID,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrInvalidReference
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByDefect returns comments for a defect joined with author names.
func (r *commentRepository) ListByDefect(ctx context.Context, defectID uuid.UUID) ([]*models.CommentWithAuthor, error) {
	query := `
		SELECT dc.id, dc.defect_id, dc.author_id, dc.comment_text, dc.created_at,
		       COALESCE(u.first_name || ' ' || u.last_name, '')
		FROM defect_comments dc
		LEFT JOIN users u ON dc.author_id = u.id
		WHERE dc.defect_id = $1
		ORDER BY dc.created_at ASC`

	rows, err := r.db.Query(ctx, query, defectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.CommentWithAuthor
	for rows.Next() {
		var c models.CommentWithAuthor
		if err := rows.Scan(
			&c.ID,
			&c.DefectID,
			&c.AuthorID,
			&c.Text,
			&c.CreatedAt,
			&c.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}
