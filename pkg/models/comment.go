package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only remark on a defect. Comments are never
// edited or deleted.
// Stored in the defect_comments table.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	DefectID  uuid.UUID `json:"defect_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Text      string    `json:"comment_text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment joined with the author's display name,
// as returned by the comment list endpoint.
type CommentWithAuthor struct {
	Comment
	AuthorName string `json:"author_name"`
}
