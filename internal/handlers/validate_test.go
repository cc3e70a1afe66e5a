package handlers

import (
	"strings"
	"testing"
)

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name    string
		catName string
		slug    string
		wantErr bool
	}{
		{"valid", "Irrigation Systems", "irrigation-systems", false},
		{"empty name", "", "slug", true},
		{"whitespace name", "   ", "slug", true},
		{"name too long", strings.Repeat("x", 301), "slug", true},
		{"slug too long", "Name", strings.Repeat("x", 301), true},
		{"empty slug ok", "Name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateCategory(tt.catName, tt.slug)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateCategory(%q, %q) = %q, wantErr=%v", tt.catName, tt.slug, msg, tt.wantErr)
			}
		})
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name       string
		prodName   string
		slug       string
		desc       string
		categoryID int64
		wantErr    bool
	}{
		{"valid", "Drip Kit", "drip-kit", "A full drip irrigation kit.", 1, false},
		{"empty name", "", "drip-kit", "", 1, true},
		{"missing category", "Drip Kit", "drip-kit", "", 0, true},
		{"negative category", "Drip Kit", "drip-kit", "", -3, true},
		{"description too long", "Drip Kit", "drip-kit", strings.Repeat("x", 10_001), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateProduct(tt.prodName, tt.slug, tt.desc, tt.categoryID)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateProduct = %q, wantErr=%v", msg, tt.wantErr)
			}
		})
	}
}

func TestValidateInquiry(t *testing.T) {
	tests := []struct {
		name    string
		inqName string
		email   string
		message string
		wantErr bool
	}{
		{"valid", "Asha", "asha@example.com", "Do you ship level controllers?", false},
		{"empty name", "", "asha@example.com", "Hi", true},
		{"empty email", "Asha", "", "Hi", true},
		{"email without at", "Asha", "not-an-email", "Hi", true},
		{"empty message", "Asha", "asha@example.com", "   ", true},
		{"message too long", "Asha", "asha@example.com", strings.Repeat("x", 5_001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateInquiry(tt.inqName, tt.email, tt.message)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateInquiry = %q, wantErr=%v", msg, tt.wantErr)
			}
		})
	}
}
