package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/defectdesk/defectdesk-engine/pkg/database"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

// UserRepository defines the interface for user data access. Users are
// provisioned out of band; this service only reads them.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// ListActive returns all active users ordered by name.
	ListActive(ctx context.Context) ([]*models.User, error)
	// ListByRole returns active users with the given role ordered by name.
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// userRepository implements UserRepository using PostgreSQL.
type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. Exposed for provisioning scripts and tests.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (id, username, first_name, last_name, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// ListActive returns all active users.
func (r *userRepository) ListActive(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, username, first_name, last_name, role, is_active, created_at
		FROM users
		WHERE is_active = true
		ORDER BY first_name, last_name`

	return r.queryUsers(ctx, query)
}

// ListByRole returns active users with the given role.
func (r *userRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	query := `
		SELECT id, username, first_name, last_name, role, is_active, created_at
		FROM users
		WHERE role = $1 AND is_active = true
		ORDER BY first_name, last_name`

	return r.queryUsers(ctx, query, role)
}

func (r *userRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.FirstName,
			&u.LastName,
			&u.Role,
			&u.IsActive,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}
