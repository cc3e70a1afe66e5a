package models

import "time"

// Media represents an uploaded file stored in S3-compatible object storage.
// Product forms reference media by URL, so deleting a media row does not
// touch product rows.
type Media struct {
	ID          int64     `json:"id"`
	S3Key       string    `json:"s3_key"`
	ThumbS3Key  *string   `json:"thumb_s3_key"` // Nullable; images only
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsImage returns true for raster or vector image uploads.
func (m *Media) IsImage() bool {
	switch m.ContentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml":
		return true
	}
	return false
}
