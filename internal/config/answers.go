package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/create-electron-app/pkg/models"
)

// MaxAnswersFileSize bounds the answers file read into memory.
const MaxAnswersFileSize = 64 << 10

// LoadAnswers reads an answers file such as:
//
//	app_name: my-app
//	title: My App
//	package_manager: pnpm
//	features: [darkmode, sqlite]
//	scripts: [dev, build, dist]
//
// Unknown keys are rejected. The result is normalized but not validated.
func LoadAnswers(path string) (*models.Answers, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAnswersNotFound, path)
		}
		return nil, fmt.Errorf("open answers file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxAnswersFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	if len(data) > MaxAnswersFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, path, MaxAnswersFileSize)
	}

	return ParseAnswers(data)
}

// ParseAnswers decodes answers YAML. An empty document yields empty answers.
func ParseAnswers(data []byte) (*models.Answers, error) {
	var answers models.Answers
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&answers); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	}
	Normalize(&answers)
	return &answers, nil
}

// Normalize trims and NFC-normalizes free text, lowercases the package
// manager and drops empty feature and script entries.
func Normalize(a *models.Answers) {
	a.AppName = strings.TrimSpace(a.AppName)
	a.Title = normalizeText(a.Title)
	a.Description = normalizeText(a.Description)
	a.Author = normalizeText(a.Author)
	a.License = strings.TrimSpace(a.License)
	a.PackageManager = models.PackageManager(strings.ToLower(strings.TrimSpace(string(a.PackageManager))))
	a.Features = compact(a.Features)
	a.Scripts = compact(a.Scripts)
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// compact trims every entry and removes empty ones. Nil stays nil.
func compact(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// SplitList parses a comma-separated flag value such as "darkmode, sqlite".
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	return compact(strings.Split(value, ","))
}
