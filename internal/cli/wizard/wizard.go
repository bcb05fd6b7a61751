package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/modu-ai/create-electron-app/pkg/models"
)

// runForm runs a single huh form. Replaced in tests.
var runForm = func(ctx context.Context, f *huh.Form) error {
	return f.RunWithContext(ctx)
}

// Run asks every question whose condition holds and stores the answers in
// place. A section header is written to out whenever a new step starts.
// Each question runs as its own independent huh.Form to avoid the huh v0.8.x
// YOffset scroll bug that occurs when multiple groups share a single viewport.
func Run(ctx context.Context, questions []Question, answers *models.Answers, out io.Writer) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	if out == nil {
		out = io.Discard
	}

	theme := newWizardTheme()
	styles := NewStyles()
	steps := stepTitles(questions)
	current := ""

	for i := range questions {
		q := &questions[i]

		// Pre-check condition: skip questions whose condition is not met.
		if q.Condition != nil && !q.Condition(answers) {
			continue
		}

		if q.Step != "" && q.Step != current {
			current = q.Step
			_, _ = fmt.Fprintln(out, renderStepHeader(styles, slices.Index(steps, current)+1, len(steps)+1, current))
		}

		g, commit := buildQuestionGroup(q, answers)
		form := huh.NewForm(g).
			WithTheme(theme).
			WithAccessible(false)

		if err := runForm(ctx, form); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return ErrCancelled
			}
			return fmt.Errorf("wizard error: %w", err)
		}
		commit()
	}

	return nil
}

// Confirm asks a yes/no question defaulting to yes.
func Confirm(ctx context.Context, title string) (bool, error) {
	proceed := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&proceed),
	)).WithTheme(newWizardTheme()).WithAccessible(false)

	if err := runForm(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("wizard error: %w", err)
	}
	return proceed, nil
}

// RenderStep renders the header of the confirmation step, which follows
// the question steps.
func RenderStep(questions []Question, title string) string {
	steps := stepTitles(questions)
	return renderStepHeader(NewStyles(), len(steps)+1, len(steps)+1, title)
}

func renderStepHeader(styles *Styles, n, total int, title string) string {
	return lipgloss.NewStyle().Margin(1, 0, 0, 0).Render(
		styles.Step.Render(fmt.Sprintf("Step %d/%d", n, total)) + " " + styles.Title.Render(title),
	)
}

func stepTitles(questions []Question) []string {
	var steps []string
	for _, q := range questions {
		if q.Step != "" && !slices.Contains(steps, q.Step) {
			steps = append(steps, q.Step)
		}
	}
	return steps
}

// buildQuestionGroup creates a huh.Group for a single question together
// with the function that stores its value once the form completes.
func buildQuestionGroup(q *Question, answers *models.Answers) (*huh.Group, func()) {
	var fields []huh.Field
	if q.Note != "" {
		fields = append(fields, huh.NewNote().Description(q.Note))
	}

	var commit func()
	switch q.Type {
	case QuestionTypeSelect:
		var f *huh.Select[string]
		f, commit = buildSelectField(q, answers)
		fields = append(fields, f)
	case QuestionTypeMultiSelect:
		var f *huh.MultiSelect[string]
		f, commit = buildMultiSelectField(q, answers)
		fields = append(fields, f)
	default:
		var f *huh.Input
		f, commit = buildInputField(q, answers)
		fields = append(fields, f)
	}

	return huh.NewGroup(fields...), commit
}

// buildInputField creates a huh.Input field for an input-type question.
func buildInputField(q *Question, answers *models.Answers) (*huh.Input, func()) {
	def := questionDefault(q, answers)
	value := def

	inp := huh.NewInput().
		Title(q.Title).
		Value(&value)
	if q.Description != "" {
		inp = inp.Description(q.Description)
	}
	if def != "" {
		inp = inp.Placeholder(def)
	}
	inp = inp.Validate(func(val string) error {
		_, err := resolveInput(q, val, def)
		return err
	})

	return inp, func() {
		if v, err := resolveInput(q, value, def); err == nil {
			saveAnswer(q.ID, v, answers)
		}
	}
}

// resolveInput trims the value, falls back to the default and validates it.
func resolveInput(q *Question, val, def string) (string, error) {
	v := strings.TrimSpace(val)
	if v == "" {
		v = def
	}
	if v == "" {
		if q.Required {
			return "", ErrRequired
		}
		return "", nil
	}
	if q.Validate != nil {
		if err := q.Validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

// buildSelectField creates a huh.Select field for a select-type question.
//
// Options are built eagerly with no Height() call: huh v0.8.x OptionsFunc
// and explicit heights make the viewport scroll the selected item to the
// top on every update, hiding the options above the cursor.
func buildSelectField(q *Question, answers *models.Answers) (*huh.Select[string], func()) {
	selected := questionDefault(q, answers)
	if selected == "" && len(q.Options) > 0 {
		selected = q.Options[0].Value
	}

	sel := huh.NewSelect[string]().
		Title(q.Title).
		Options(huhOptions(q.Options, nil)...).
		Value(&selected)
	if q.Description != "" {
		sel = sel.Description(q.Description)
	}

	return sel, func() {
		saveAnswer(q.ID, selected, answers)
	}
}

// buildMultiSelectField creates a huh.MultiSelect field. Values already
// present in the answers start selected; otherwise the options' own
// Selected flags apply.
func buildMultiSelectField(q *Question, answers *models.Answers) (*huh.MultiSelect[string], func()) {
	preset := currentSelection(q.ID, answers)
	var selected []string
	for _, opt := range q.Options {
		if isPreselected(opt, preset) {
			selected = append(selected, opt.Value)
		}
	}

	ms := huh.NewMultiSelect[string]().
		Title(q.Title).
		Options(huhOptions(q.Options, func(o Option) bool { return isPreselected(o, preset) })...).
		Value(&selected)
	if q.Description != "" {
		ms = ms.Description(q.Description)
	}
	minSelected := q.MinSelected
	ms = ms.Validate(func(vals []string) error {
		if len(vals) < minSelected {
			return ErrTooFewSelected
		}
		return nil
	})

	return ms, func() {
		saveSelection(q.ID, selected, answers)
	}
}

func isPreselected(opt Option, preset []string) bool {
	if preset != nil {
		return slices.Contains(preset, opt.Value)
	}
	return opt.Selected
}

func huhOptions(options []Option, selected func(Option) bool) []huh.Option[string] {
	opts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
		if selected != nil && selected(opt) {
			opts[i] = opts[i].Selected(true)
		}
	}
	return opts
}

func questionDefault(q *Question, answers *models.Answers) string {
	if q.DefaultFunc != nil {
		if v := q.DefaultFunc(answers); v != "" {
			return v
		}
	}
	return q.Default
}

// currentSelection returns the caller-provided values of a multi-select
// answer, or nil when the caller left it unset.
func currentSelection(id string, answers *models.Answers) []string {
	switch id {
	case "features":
		return answers.Features
	case "scripts":
		return answers.Scripts
	}
	return nil
}

// saveAnswer stores a single-valued answer.
func saveAnswer(id, value string, answers *models.Answers) {
	switch id {
	case "app_name":
		answers.AppName = value
	case "title":
		answers.Title = value
	case "description":
		answers.Description = value
	case "author":
		answers.Author = value
	case "license":
		answers.License = value
	case "package_manager":
		answers.PackageManager = models.PackageManager(value)
	}
}

// saveSelection stores a multi-valued answer. The slice is never nil so an
// empty selection is kept distinct from an unanswered question.
func saveSelection(id string, values []string, answers *models.Answers) {
	out := append([]string{}, values...)
	switch id {
	case "features":
		answers.Features = out
	case "scripts":
		answers.Scripts = out
	}
}

// newWizardTheme creates a huh.Theme with the wizard branding.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#2F6670", Dark: ColorPrimary}
	secondary := lipgloss.AdaptiveColor{Light: "#0E7490", Dark: ColorSecondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(primary).Bold(true).MarginBottom(1)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(primary)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(primary)
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(green).SetString("◆ ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(text)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(muted).SetString("◇ ")
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
