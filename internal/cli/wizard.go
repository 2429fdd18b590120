package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/creation"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ganttHuhTheme returns a huh theme using the formatter palette.
func ganttHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// creationFields are the values bound to the creation dialog.
type creationFields struct {
	ProjectID string
	Role      string
	Confirmed bool
}

// wizardCreateAllocation builds the guided creation dialog for d. The
// Create button refuses to submit while the draft is disabled.
func wizardCreateAllocation(d *creation.Draft, f *creationFields) *huh.Form {
	f.ProjectID = d.ProjectID
	f.Role = d.Role
	f.Confirmed = true

	options := []huh.Option[string]{huh.NewOption("(choose a project)", "")}
	for _, p := range d.Projects {
		options = append(options, huh.NewOption(p.Name, p.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Description(formatter.DateRange(d.Start, d.End)).
				Options(options...).
				Value(&f.ProjectID),
			roleInput(&f.Role),
			huh.NewConfirm().
				Title("Create allocation?").
				Affirmative("Create").
				Negative("Cancel").
				Value(&f.Confirmed).
				Validate(func(ok bool) error {
					if !ok {
						return nil
					}
					d.SelectProject(f.ProjectID)
					d.SetRole(strings.TrimSpace(f.Role))
					if d.Disabled() {
						return creation.ErrValidation
					}
					return nil
				}),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)
}

// editFields are the values bound to the edit form.
type editFields struct {
	Role  string
	Start string
	End   string
}

// wizardEditAllocation builds the edit form for a, prefilled with its
// current values.
func wizardEditAllocation(a domain.Allocation, f *editFields) *huh.Form {
	f.Role = a.Role
	f.Start = a.Start.Format(domain.DateLayout)
	f.End = a.End.Format(domain.DateLayout)

	return huh.NewForm(
		huh.NewGroup(
			roleInput(&f.Role).Validate(validateRequired("role")),
			dateInput("Start", &f.Start),
			dateInput("End", &f.End).Validate(validateEndAfter(&f.Start)),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)
}

// deletePrompt is the confirmation question for deleting a.
func deletePrompt(a domain.Allocation, projectName string) string {
	return fmt.Sprintf("Delete allocation %s (%s, %s)?",
		a.DisplayID(), projectName, formatter.DateRange(a.Start, a.End))
}
