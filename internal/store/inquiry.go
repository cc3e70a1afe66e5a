package store

import (
	"database/sql"
	"fmt"

	"aquapoint/internal/models"
)

// InquiryStore manages contact form submissions.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore returns a new InquiryStore.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

// Create stores a new inquiry and returns it.
func (s *InquiryStore) Create(inq *models.Inquiry) (*models.Inquiry, error) {
	var out models.Inquiry
	err := s.db.QueryRow(`
		INSERT INTO inquiries (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, message, created_at`,
		inq.Name, inq.Email, inq.Message,
	).Scan(&out.ID, &out.Name, &out.Email, &out.Message, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return &out, nil
}

// List returns inquiries, newest first.
func (s *InquiryStore) List(limit, offset int) ([]models.Inquiry, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, message, created_at
		FROM inquiries ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var items []models.Inquiry
	for rows.Next() {
		var inq models.Inquiry
		if err := rows.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Message, &inq.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		items = append(items, inq)
	}
	return items, rows.Err()
}
