package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the defect lifecycle state. Every defect starts in StatusNew.
// Transitions are deliberately unconstrained: any enumerated status may
// follow any other. The only invalid input is a value outside the
// enumeration.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "InProgress"
	StatusOnReview   Status = "OnReview"
	StatusClosed     Status = "Closed"
	StatusCancelled  Status = "Cancelled"
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusOnReview, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// Priority is the defect severity level.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Defect represents a reported construction issue. The author and owning
// project are fixed at creation; the assignee may be reassigned and the
// status moves freely within the enumeration.
// Stored in the defects table.
type Defect struct {
	ID                    uuid.UUID  `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	ProjectID             uuid.UUID  `json:"project_id"`
	Status                Status     `json:"status"`
	Priority              Priority   `json:"priority"`
	AuthorID              uuid.UUID  `json:"author_id"`
	AssigneeID            *uuid.UUID `json:"assignee_id,omitempty"`
	PlannedCompletionDate *time.Time `json:"planned_completion_date,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// DefectWithNames is a defect joined with the display names of its
// project, author and assignee, as returned by the defect list endpoint.
type DefectWithNames struct {
	Defect
	ProjectName  string `json:"project_name"`
	AuthorName   string `json:"author_name"`
	AssigneeName string `json:"assignee_name,omitempty"`
}

// DefectFilter holds the optional, conjunctive filters for listing
// defects. A nil field means "don't filter on this".
type DefectFilter struct {
	ProjectID *uuid.UUID
	Status    *Status
	Priority  *Priority
}
