package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a construction site that owns a set of defects.
// Stored in the projects table.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectWithCounts is a project annotated with aggregate defect counts,
// as returned by the project list endpoint.
type ProjectWithCounts struct {
	Project
	TotalDefects      int `json:"total_defects"`
	NewDefects        int `json:"new_defects"`
	InProgressDefects int `json:"in_progress_defects"`
	ClosedDefects     int `json:"closed_defects"` // Closed + Cancelled
}

// DefectStats holds the global cross-project defect counters shown on
// the dashboard.
type DefectStats struct {
	TotalDefects      int `json:"total_defects"`
	NewDefects        int `json:"new_defects"`
	InProgressDefects int `json:"in_progress_defects"`
	OnReviewDefects   int `json:"on_review_defects"`
	ClosedDefects     int `json:"closed_defects"`
	CancelledDefects  int `json:"cancelled_defects"`
	CriticalDefects   int `json:"critical_defects"`
	HighDefects       int `json:"high_defects"`
}
