package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for catalog and inquiry fields.
const (
	maxNameLen        = 300
	maxSlugLen        = 300
	maxDescriptionLen = 10_000
	maxSKULen         = 100
	maxInquiryName    = 200
	maxInquiryEmail   = 320
	maxInquiryMessage = 5_000
)

// validateCategory checks category form inputs and returns the first error found.
func validateCategory(name, slug string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	return ""
}

// validateProduct checks product form inputs and returns the first error found.
func validateProduct(name, slug, description string, categoryID int64) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if categoryID <= 0 {
		return "Category is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 10,000 characters)."
	}
	return ""
}

// validateInquiry checks contact form inputs and returns the first error found.
func validateInquiry(name, email, message string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxInquiryName {
		return "Name is too long (max 200 characters)."
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if !strings.Contains(email, "@") || utf8.RuneCountInString(email) > maxInquiryEmail {
		return "Email address is not valid."
	}
	if strings.TrimSpace(message) == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxInquiryMessage {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}
