// Package wizard provides the interactive huh-based wizard that collects
// the answers for a new Electron project.
package wizard

import (
	"errors"

	"github.com/modu-ai/create-electron-app/pkg/models"
)

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeInput is a text input question.
	QuestionTypeInput QuestionType = iota
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect
	// QuestionTypeMultiSelect is a multiple-choice selection question.
	QuestionTypeMultiSelect
)

// Question defines a single wizard question.
type Question struct {
	ID          string       // Answer field the value is stored in
	Type        QuestionType // Input, Select or MultiSelect
	Step        string       // Section header shown when the section starts
	Title       string
	Description string
	Note        string   // Informational text rendered above the field
	Options     []Option // Options for select questions
	Default     string   // Default value for input and select questions
	Required    bool
	MinSelected int // Minimum selections for multi-select questions

	// DefaultFunc, when set, overrides Default using the answers so far.
	DefaultFunc func(*models.Answers) string
	// Validate runs on input values after trimming and defaulting.
	Validate func(string) error
	// Condition reports whether the question should be asked.
	Condition func(*models.Answers) bool
}

// Option represents a selectable option.
type Option struct {
	Label    string // Display label
	Value    string // Actual value stored
	Desc     string // Optional description
	Selected bool   // Initially selected in multi-select questions
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrRequired is returned by input validation for an empty required answer.
	ErrRequired = errors.New("this field is required")
	// ErrTooFewSelected is returned when a multi-select has fewer choices than required.
	ErrTooFewSelected = errors.New("select at least one option")
)
