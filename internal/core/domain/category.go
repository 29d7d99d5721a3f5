package domain

import "time"

// Category is a taxonomy node. Slug is derived deterministically from the
// name and unique across categories; a category cannot be deleted while
// products still reference it.
type Category struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Slug      string    `json:"slug" bson:"slug"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
