package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// match resolves input against ids and names: exact ID, then
// case-insensitive name, then unique ID prefix.
func match(kind, input string, ids, names []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	for i, name := range names {
		if strings.EqualFold(name, input) {
			return ids[i], nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(projects))
	names := make([]string, len(projects))
	for i, p := range projects {
		ids[i], names[i] = p.ID, p.Name
	}
	return match("project", input, ids, names)
}

func resolveResourceID(ctx context.Context, app *App, input string) (string, error) {
	resources, err := app.Resources.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(resources))
	names := make([]string, len(resources))
	for i, r := range resources {
		ids[i], names[i] = r.ID, r.Name
	}
	return match("resource", input, ids, names)
}

// parseDayFlag parses a YYYY-MM-DD flag value in the configured location.
func parseDayFlag(app *App, name, value string) (time.Time, error) {
	d, err := domain.ParseDay(value, app.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD)", name, value)
	}
	return d, nil
}
