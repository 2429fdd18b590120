package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID          string
	Name        string
	Color       Color
	Allocations []Allocation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required before a project is stored.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if _, err := ParseColor(string(p.Color)); err != nil {
		return err
	}
	return nil
}

// DisplayID returns the ID truncated to 8 characters.
func (p *Project) DisplayID() string {
	return shortID(p.ID)
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
