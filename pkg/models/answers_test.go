package models

import (
	"errors"
	"testing"
)

func TestAnswersValidate(t *testing.T) {
	tests := []struct {
		name    string
		answers Answers
		wantErr error
	}{
		{
			name:    "valid minimal",
			answers: Answers{AppName: "dev-app"},
		},
		{
			name:    "valid with underscores and pnpm",
			answers: Answers{AppName: "my_app_2", PackageManager: PackageManagerPNPM},
		},
		{
			name:    "empty name",
			answers: Answers{AppName: ""},
			wantErr: ErrInvalidAppName,
		},
		{
			name:    "name with space",
			answers: Answers{AppName: "my app"},
			wantErr: ErrInvalidAppName,
		},
		{
			name:    "name with slash",
			answers: Answers{AppName: "../escape"},
			wantErr: ErrInvalidAppName,
		},
		{
			name:    "unknown package manager",
			answers: Answers{AppName: "app", PackageManager: "bun"},
			wantErr: ErrInvalidPackageManager,
		},
		{
			name:    "duplicate script",
			answers: Answers{AppName: "app", Scripts: []string{"dev", "build", "dev"}},
			wantErr: ErrDuplicateScript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.answers.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidAnswers) {
				t.Errorf("Validate() error should match ErrInvalidAnswers")
			}
		})
	}
}

func TestAnswersAddFeature(t *testing.T) {
	a := &Answers{Features: []string{"sqlite"}}

	if !a.AddFeature("preload") {
		t.Error("AddFeature(preload) = false, want true")
	}
	if a.AddFeature("preload") {
		t.Error("second AddFeature(preload) = true, want false")
	}
	if len(a.Features) != 2 {
		t.Errorf("Features = %v, want 2 entries", a.Features)
	}
	if !a.HasFeature("sqlite") || !a.HasFeature("preload") {
		t.Errorf("Features = %v, want sqlite and preload", a.Features)
	}
}

func TestPackageManagerOrDefault(t *testing.T) {
	a := &Answers{}
	if got := a.PackageManagerOrDefault(); got != PackageManagerNPM {
		t.Errorf("PackageManagerOrDefault() = %q, want npm", got)
	}
	a.PackageManager = PackageManagerYarn
	if got := a.PackageManagerOrDefault(); got != PackageManagerYarn {
		t.Errorf("PackageManagerOrDefault() = %q, want yarn", got)
	}
}

func TestPackageManagerIsValid(t *testing.T) {
	for _, pm := range ValidPackageManagers() {
		if !pm.IsValid() {
			t.Errorf("%q.IsValid() = false", pm)
		}
	}
	if PackageManager("bun").IsValid() {
		t.Error(`"bun".IsValid() = true, want false`)
	}
}
