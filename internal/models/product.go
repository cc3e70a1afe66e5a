package models

import "time"

// Product is a catalog item belonging to exactly one category. Images,
// videos, and available variants are ordered lists stored as JSON arrays.
type Product struct {
	ID                int64     `json:"id"`
	CategoryID        int64     `json:"category_id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	Images            []string  `json:"images"`
	Videos            []string  `json:"videos"`
	SKU               *string   `json:"sku"`
	Featured          bool      `json:"featured"`
	AvailableVariants []string  `json:"available_variants"`
	CreatedAt         time.Time `json:"created_at"`

	// Category is populated by store methods that join the category row.
	Category *Category `json:"category,omitempty"`
}

// ProductUpdate carries a partial product update. Only non-nil fields are
// applied, matching the admin UI which sends just the fields it changed
// (e.g. a featured toggle sends {"featured": true} alone).
type ProductUpdate struct {
	CategoryID        *int64    `json:"category_id,omitempty"`
	Name              *string   `json:"name,omitempty"`
	Slug              *string   `json:"slug,omitempty"`
	Description       *string   `json:"description,omitempty"`
	Images            *[]string `json:"images,omitempty"`
	Videos            *[]string `json:"videos,omitempty"`
	SKU               *string   `json:"sku,omitempty"`
	Featured          *bool     `json:"featured,omitempty"`
	AvailableVariants *[]string `json:"available_variants,omitempty"`
}

// Empty reports whether the update contains no fields to apply.
func (u *ProductUpdate) Empty() bool {
	return u.CategoryID == nil && u.Name == nil && u.Slug == nil &&
		u.Description == nil && u.Images == nil && u.Videos == nil &&
		u.SKU == nil && u.Featured == nil && u.AvailableVariants == nil
}

// BulkOperation names a batch action applied to a set of product IDs.
type BulkOperation string

const (
	BulkFeature   BulkOperation = "feature"
	BulkUnfeature BulkOperation = "unfeature"
	BulkDelete    BulkOperation = "delete"
)

// Valid reports whether the operation is one of the supported batch actions.
func (op BulkOperation) Valid() bool {
	switch op {
	case BulkFeature, BulkUnfeature, BulkDelete:
		return true
	}
	return false
}
