package store

import (
	"database/sql"
	"fmt"

	"aquapoint/internal/models"
)

// MediaStore manages uploaded media records in the database.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore returns a new MediaStore.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, s3_key, thumb_s3_key, filename, content_type, size_bytes, created_at`

func scanMedia(scanner interface{ Scan(...any) error }) (*models.Media, error) {
	var m models.Media
	err := scanner.Scan(
		&m.ID, &m.S3Key, &m.ThumbS3Key, &m.Filename,
		&m.ContentType, &m.SizeBytes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new media record and returns it.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	row := s.db.QueryRow(`
		INSERT INTO media (s3_key, thumb_s3_key, filename, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+mediaColumns,
		m.S3Key, m.ThumbS3Key, m.Filename, m.ContentType, m.SizeBytes,
	)
	out, err := scanMedia(row)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return out, nil
}

// List returns media records, newest first.
func (s *MediaStore) List(limit, offset int) ([]models.Media, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+` FROM media
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// FindByID retrieves a media record by ID. Returns nil if not found.
func (s *MediaStore) FindByID(id int64) (*models.Media, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// Delete removes a media record by ID. Returns false if no row matched.
func (s *MediaStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete media: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete media rows: %w", err)
	}
	return n > 0, nil
}
