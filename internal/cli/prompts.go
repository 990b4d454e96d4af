package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgaitan/wotrack/internal/cli/formatter"
	"github.com/rgaitan/wotrack/internal/domain"
)

// wotrackHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func wotrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
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

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// promptConfirmConflict asks whether to start alongside the employees already
// working the finding.
func promptConfirmConflict(others []domain.ActiveSession, confirmed *bool) *huh.Form {
	desc := "Already working:"
	for _, s := range others {
		desc += fmt.Sprintf("\n  %s (%s)", s.EmployeeID, s.TaskCode)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Other mechanics are active on this finding. Start anyway?").
				Description(desc).
				Affirmative("Start").
				Negative("Cancel").
				Value(confirmed),
		),
	).WithTheme(wotrackHuhTheme()).WithShowHelp(false)
}

// promptSelectCandidate asks which active session to stop.
func promptSelectCandidate(candidates []domain.ActiveSession, result *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(candidates))
	for _, s := range candidates {
		label := fmt.Sprintf("%s — %s", s.EmployeeID, s.TaskCode)
		options = append(options, huh.NewOption(label, s.EmployeeID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Who is stopping?").
				Options(options...).
				Value(result),
		),
	).WithTheme(wotrackHuhTheme()).WithShowHelp(false)
}

// promptFinalStatus asks for the finding status once the last worker stops,
// and for an evidence file when the finding is being closed.
func promptFinalStatus(status *string, evidencePath *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Finding status after this stop?").
				Options(
					huh.NewOption("In Progress", string(domain.FindingInProgress)),
					huh.NewOption("On Hold", string(domain.FindingOnHold)),
					huh.NewOption("Closed", string(domain.FindingClosed)),
				).
				Value(status),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Evidence file (photo of the completed work)").
				Placeholder("/path/to/evidence.jpg").
				Value(evidencePath),
		).WithHideFunc(func() bool {
			return *status != string(domain.FindingClosed)
		}),
	).WithTheme(wotrackHuhTheme()).WithShowHelp(false)
}

// promptEmployee collects the employee ID and task code for a start.
func promptEmployee(employeeID, taskCode *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Employee ID").
				Placeholder("EMP-001").
				Value(employeeID),
			huh.NewInput().
				Title("Task code").
				Placeholder("MNT").
				Value(taskCode),
		),
	).WithTheme(wotrackHuhTheme()).WithShowHelp(false)
}
