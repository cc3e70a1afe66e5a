package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// seedCategory and seedProduct mirror the placeholder catalog served before
// real data is entered through the dashboard.
type seedCategory struct {
	name, slug, description string
}

type seedProduct struct {
	categorySlug, name, slug, description string
	images                                []string
	featured                              bool
}

var seedCategories = []seedCategory{
	{"Irrigation Systems", "irrigation-systems", "State-of-the-art irrigation solutions for modern agriculture."},
	{"Water Distribution", "water-distribution", "Reliable and efficient water distribution pipes and fittings."},
	{"Solar Solutions", "solar-solutions", "High-quality PV Junction Boxes and other solar components."},
	{"Water Level Controllers", "water-level-controller", "Intelligent controllers and sensors that prevent dry runs, overflow, and wastage."},
}

var seedProducts = []seedProduct{
	{"irrigation-systems", "Drip Irrigation Kit", "drip-irrigation-kit",
		"A complete kit for efficient drip irrigation in a 1-acre farm. Saves water and increases yield.",
		[]string{"https://placehold.co/600x400/22c55e/ffffff?text=Drip+Kit", "https://placehold.co/600x400/16a34a/ffffff?text=Pipes"}, true},
	{"irrigation-systems", "Sprinkler System", "sprinkler-system",
		"Automated sprinkler system for large fields and lawns. Even water distribution guaranteed.",
		[]string{"https://placehold.co/600x400/22c55e/ffffff?text=Sprinkler"}, false},
	{"water-distribution", "HDPE Pipes", "hdpe-pipes",
		"High-Density Polyethylene pipes, durable and resistant to chemicals. Available in various sizes.",
		[]string{"https://placehold.co/600x400/3b82f6/ffffff?text=HDPE+Pipes"}, false},
	{"water-distribution", "PVC Fittings", "pvc-fittings",
		"A wide range of PVC fittings including elbows, tees, and couplers.",
		[]string{"https://placehold.co/600x400/3b82f6/ffffff?text=Fittings"}, false},
	{"solar-solutions", "PV Junction Box", "pv-junction-box",
		"IP68 rated Photovoltaic Junction Box for solar panels. Ensures safety and performance.",
		[]string{"https://placehold.co/600x400/f59e0b/ffffff?text=Junction+Box"}, true},
}

// Seed populates the database with initial development data: a default
// admin user and the placeholder catalog. It is a no-op when users or
// categories already exist.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed bcrypt: %w", err)
		}

		// TOTP is not enabled — the admin may enroll from the dashboard.
		_, err = db.Exec(`
			INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
			VALUES ($1, $2, $3, $4, $5)
		`, adminEmail, string(hash), "Admin", "admin", false)
		if err != nil {
			return fmt.Errorf("seed insert admin: %w", err)
		}

		slog.Info("database seeded with default admin user", "email", adminEmail)
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("catalog already seeded, skipping")
		return nil
	}

	categoryIDs := make(map[string]int64, len(seedCategories))
	for _, c := range seedCategories {
		var id int64
		err := db.QueryRow(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3) RETURNING id
		`, c.name, c.slug, c.description).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.slug, err)
		}
		categoryIDs[c.slug] = id
	}

	for _, p := range seedProducts {
		images, err := json.Marshal(p.images)
		if err != nil {
			return fmt.Errorf("seed marshal images: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO products (category_id, name, slug, description, images, featured)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, categoryIDs[p.categorySlug], p.name, p.slug, p.description, images, p.featured)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.slug, err)
		}
	}

	slog.Info("database seeded with placeholder catalog",
		"categories", len(seedCategories),
		"products", len(seedProducts),
	)
	return nil
}
