package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/obreport/internal/cli/formatter"
	"github.com/alexanderramin/obreport/internal/domain"
)

// otherWorker is the select value that reveals the free-text name field.
const otherWorker = "\x00other"

// PreshipmentEntry holds the raw form values of one override.
type PreshipmentEntry struct {
	Worker   string
	Custom   string
	Quantity string
	EWH      string
	More     bool
}

// Override validates the entry and converts it.
func (e PreshipmentEntry) Override() (domain.PreshipmentOverride, error) {
	worker := e.Worker
	if worker == "" || worker == otherWorker {
		worker = e.Custom
	}
	worker = strings.TrimSpace(worker)

	qty, err := strconv.Atoi(strings.TrimSpace(e.Quantity))
	if err != nil {
		return domain.PreshipmentOverride{}, fmt.Errorf("quantity %q: %w", e.Quantity, domain.ErrOverrideQuantity)
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(e.EWH), 64)
	if err != nil {
		return domain.PreshipmentOverride{}, fmt.Errorf("ewh %q: %w", e.EWH, domain.ErrOverrideNegativeEWH)
	}

	o := domain.PreshipmentOverride{Worker: worker, Quantity: qty, EWH: hours}
	if err := o.Validate(); err != nil {
		return domain.PreshipmentOverride{}, err
	}
	return o, nil
}

// obreportHuhTheme returns a huh theme matching the formatter palette.
func obreportHuhTheme() *huh.Theme {
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

// preshipmentKeyMap lets esc abort the form as well as ctrl+c.
func preshipmentKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

func validateNonNegativeHours(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return errors.New("enter hours, e.g. 2.5")
	}
	return nil
}

// newPreshipmentForm builds the form for one override. With saved
// employees the worker is picked from a list; "Other" reveals a name input.
func newPreshipmentForm(employees []string, e *PreshipmentEntry) *huh.Form {
	var groups []*huh.Group

	if len(employees) > 0 {
		options := make([]huh.Option[string], 0, len(employees)+1)
		for _, name := range employees {
			options = append(options, huh.NewOption(name, name))
		}
		options = append(options, huh.NewOption("Other…", otherWorker))
		groups = append(groups,
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Worker").
					Options(options...).
					Value(&e.Worker),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Worker name").
					Value(&e.Custom).
					Validate(validateRequired),
			).WithHideFunc(func() bool { return e.Worker != otherWorker }),
		)
	} else {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Worker name").
				Value(&e.Custom).
				Validate(validateRequired),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Preshipment quantity").
			Placeholder("50").
			Value(&e.Quantity).
			Validate(validatePositiveInt),
		huh.NewInput().
			Title("Preshipment EWH").
			Description("Effective work hours spent on preshipment").
			Placeholder("4").
			Value(&e.EWH).
			Validate(validateNonNegativeHours),
		huh.NewConfirm().
			Title("Add another worker?").
			Affirmative("Yes").
			Negative("No").
			Value(&e.More),
	))

	return huh.NewForm(groups...).
		WithTheme(obreportHuhTheme()).
		WithKeyMap(preshipmentKeyMap()).
		WithShowHelp(true)
}

func runPreshipmentForm(out io.Writer) func([]string, *PreshipmentEntry) error {
	return func(employees []string, e *PreshipmentEntry) error {
		return newPreshipmentForm(employees, e).
			WithProgramOptions(tea.WithOutput(out)).
			Run()
	}
}

// collectPreshipment prompts for overrides until the user declines another.
func (a *App) collectPreshipment(cmd *cobra.Command) ([]domain.PreshipmentOverride, error) {
	var names []string
	if a.Employees != nil {
		employees, err := a.Employees.List(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("loading employees: %w", err)
		}
		for _, e := range employees {
			names = append(names, e.Name)
		}
	}

	prompt := a.PromptPreshipment
	if prompt == nil {
		prompt = runPreshipmentForm(cmd.ErrOrStderr())
	}

	var overrides []domain.PreshipmentOverride
	for {
		var entry PreshipmentEntry
		if err := prompt(names, &entry); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, fmt.Errorf("preshipment entry cancelled")
			}
			return nil, err
		}
		o, err := entry.Override()
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim(fmt.Sprintf("  + %s: %d units, %s h", o.Worker, o.Quantity, formatter.Hours(o.EWH))))
		if !entry.More {
			return overrides, nil
		}
	}
}
