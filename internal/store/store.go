// Package store provides database access methods for all catalog entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// stringList maps a JSONB array column to a []string. Scanning a SQL NULL
// or an empty array yields an empty (non-nil) slice so API responses never
// serialize these fields as null.
type stringList []string

// Scan implements sql.Scanner.
func (l *stringList) Scan(src any) error {
	if src == nil {
		*l = []string{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("stringList scan: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("stringList scan: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// Value implements driver.Valuer.
func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("stringList value: %w", err)
	}
	return string(data), nil
}
