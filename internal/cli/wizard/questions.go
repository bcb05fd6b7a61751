package wizard

import (
	"errors"
	"slices"
	"strings"

	"github.com/modu-ai/create-electron-app/internal/config"
	"github.com/modu-ai/create-electron-app/internal/feature"
	"github.com/modu-ai/create-electron-app/pkg/models"
)

// Section headers, in the order the wizard walks through them.
const (
	StepMetadata       = "Project Metadata"
	StepFeatures       = "Feature Selection"
	StepPackageManager = "Package Manager"
	StepScripts        = "Dev Script Options"
)

// DefaultQuestions returns the questions for a new project, built from the
// feature registry. Questions whose answer is already set by the caller
// keep that value as their default; the app name is skipped entirely when
// it was given on the command line.
func DefaultQuestions(reg *feature.Registry) []Question {
	if reg == nil {
		reg = feature.NewDefaultRegistry()
	}

	return []Question{
		{
			ID:          "app_name",
			Type:        QuestionTypeInput,
			Step:        StepMetadata,
			Title:       "App name",
			Description: "Alphanumeric, dashes, underscores, no spaces.",
			Required:    true,
			Validate:    validateAppName,
			Condition: func(a *models.Answers) bool {
				return a.AppName == ""
			},
		},
		{
			ID:       "title",
			Type:     QuestionTypeInput,
			Step:     StepMetadata,
			Title:    "Window title",
			Required: true,
			DefaultFunc: func(a *models.Answers) string {
				if a.Title != "" {
					return a.Title
				}
				return config.TitleFromAppName(a.AppName)
			},
		},
		{
			ID:       "description",
			Type:     QuestionTypeInput,
			Step:     StepMetadata,
			Title:    "App description",
			Default:  config.DefaultDescription,
			Required: true,
			DefaultFunc: func(a *models.Answers) string {
				return a.Description
			},
		},
		{
			ID:    "author",
			Type:  QuestionTypeInput,
			Step:  StepMetadata,
			Title: "Author",
			DefaultFunc: func(a *models.Answers) string {
				return a.Author
			},
		},
		{
			ID:       "license",
			Type:     QuestionTypeInput,
			Step:     StepMetadata,
			Title:    "License",
			Default:  config.DefaultLicense,
			Required: true,
			DefaultFunc: func(a *models.Answers) string {
				return a.License
			},
		},
		{
			ID:          "features",
			Type:        QuestionTypeMultiSelect,
			Step:        StepFeatures,
			Title:       "Select optional features",
			Description: "Space to toggle, enter to continue.",
			Note:        mandatoryNote(reg),
			Options:     featureOptions(reg),
		},
		{
			ID:      "package_manager",
			Type:    QuestionTypeSelect,
			Step:    StepPackageManager,
			Title:   "Choose your package manager",
			Options: packageManagerOptions(),
			Default: string(config.DefaultPackageManager),
			DefaultFunc: func(a *models.Answers) string {
				return string(a.PackageManager)
			},
		},
		{
			ID:          "scripts",
			Type:        QuestionTypeMultiSelect,
			Step:        StepScripts,
			Title:       "Select dev scripts to include",
			Description: "Space to toggle, enter to confirm.",
			Options:     scriptOptions(reg),
			MinSelected: 1,
		},
	}
}

// QuestionByID finds a question by its ID.
func QuestionByID(questions []Question, id string) *Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}

var errAppName = errors.New("alphanumeric, dashes, underscores only, no spaces allowed")

func validateAppName(v string) error {
	probe := models.Answers{AppName: v}
	if err := probe.Validate(); err != nil {
		return errAppName
	}
	return nil
}

func mandatoryNote(reg *feature.Registry) string {
	ids := reg.Mandatory()
	if len(ids) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Mandatory features:")
	for _, id := range ids {
		def, _ := reg.Feature(id)
		b.WriteString("\n- ")
		b.WriteString(def.Title)
	}
	return b.String()
}

func featureOptions(reg *feature.Registry) []Option {
	optional := reg.Optional()
	opts := make([]Option, 0, len(optional))
	for _, def := range optional {
		opts = append(opts, Option{Label: def.Title, Value: def.ID, Desc: def.Description})
	}
	return opts
}

func packageManagerOptions() []Option {
	pms := models.ValidPackageManagers()
	opts := make([]Option, 0, len(pms))
	for _, pm := range pms {
		opts = append(opts, Option{Label: string(pm), Value: string(pm)})
	}
	return opts
}

func scriptOptions(reg *feature.Registry) []Option {
	scripts := reg.Scripts()
	opts := make([]Option, 0, len(scripts))
	for _, s := range scripts {
		opts = append(opts, Option{
			Label:    s.Title,
			Value:    s.ID,
			Selected: slices.Contains(config.DefaultScripts, s.ID),
		})
	}
	return opts
}
