// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// Category identifies a navigable product section on the public site and a
// filter value in the admin dashboard. Slugs are unique and URL-safe.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryUpdate carries a partial category update. Nil fields are left
// unchanged.
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}
