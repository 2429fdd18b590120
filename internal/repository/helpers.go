package repository

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parseTimestamps parses RFC3339 created/updated columns.
func parseTimestamps(createdAt, updatedAt string) (time.Time, time.Time, error) {
	c, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing created_at: %w", err)
	}
	u, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return c, u, nil
}

// parseDay parses a stored calendar day as UTC midnight.
func parseDay(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

// formatDay stores the calendar date of t, whatever its location.
func formatDay(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
