// Package models holds the gorm models of the content store the ranking
// engine reads from.
package models

import "github.com/google/uuid"

// ModerationStatus is the review state of a video or series
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// ensureID returns id, or a new UUID when id is empty.
func ensureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// All lists every model, in migration order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Series{},
		&Video{},
		&Follow{},
		&VideoLike{},
		&ProfileVisit{},
		&Transaction{},
	}
}
