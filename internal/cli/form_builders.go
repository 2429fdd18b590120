package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/huh"
)

// dateInput returns a huh.Input for a required date field with YYYY-MM-DD validation.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2024-01-31").
		Value(value).
		Validate(validateDate)
}

// roleInput returns a huh.Input for an allocation role.
func roleInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Role").
		Placeholder("Engineer").
		Value(value)
}

// validateDate accepts YYYY-MM-DD only.
func validateDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateEndAfter returns a validator rejecting end dates before *start.
func validateEndAfter(start *string) func(string) error {
	return func(s string) error {
		if err := validateDate(s); err != nil {
			return err
		}
		from, err := time.Parse(domain.DateLayout, strings.TrimSpace(*start))
		if err != nil {
			return nil
		}
		to, _ := time.Parse(domain.DateLayout, strings.TrimSpace(s))
		if to.Before(from) {
			return fmt.Errorf("end must not be before start")
		}
		return nil
	}
}

// validateRequired rejects blank input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
