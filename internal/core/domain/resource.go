package domain

import (
	"errors"
	"time"
)

var ErrResourceNotFound = errors.New("resource not found")
var ErrForbidden = errors.New("access forbidden")

// Resource is the shared record the API manages. CreatedBy is stamped from
// the caller identity at creation and never changes afterwards; CreatedAt is
// likewise immutable while UpdatedAt is bumped on every mutation.
type Resource struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
}
