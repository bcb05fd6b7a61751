package feature

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/modu-ai/create-electron-app/pkg/models"
)

func TestResolve(t *testing.T) {
	reg := NewRegistry(DefaultFeatures(), DefaultScripts(false), DefaultEdges())

	tests := []struct {
		name            string
		features        []string
		scripts         []string
		wantFeatures    []string
		wantAutoPreload bool
		wantNotices     int
	}{
		{
			name:         "empty selection gets mandatory only",
			features:     nil,
			wantFeatures: []string{Security},
		},
		{
			name:            "darkmode implies preload",
			features:        []string{Darkmode},
			wantFeatures:    []string{Security, Darkmode, Preload},
			wantAutoPreload: true,
			wantNotices:     1,
		},
		{
			name:            "frameless implies preload",
			features:        []string{Frameless},
			wantFeatures:    []string{Security, Frameless, Preload},
			wantAutoPreload: true,
			wantNotices:     1,
		},
		{
			name:            "darkmode and frameless add preload once",
			features:        []string{Darkmode, Frameless},
			wantFeatures:    []string{Security, Darkmode, Frameless, Preload},
			wantAutoPreload: true,
			wantNotices:     1,
		},
		{
			name:         "explicit preload is not automatic",
			features:     []string{Preload, Darkmode},
			wantFeatures: []string{Security, Preload, Darkmode},
		},
		{
			name:         "lint script implies eslint",
			scripts:      []string{ScriptLint},
			wantFeatures: []string{Security, ESLint},
			wantNotices:  1,
		},
		{
			name:         "format script implies prettier",
			scripts:      []string{ScriptFormat, ScriptDev},
			wantFeatures: []string{Security, Prettier},
			wantNotices:  1,
		},
		{
			name:         "lint with eslint already selected",
			features:     []string{ESLint},
			scripts:      []string{ScriptLint},
			wantFeatures: []string{Security, ESLint},
		},
		{
			name:         "duplicates collapse keeping first occurrence",
			features:     []string{SQLite, Git, SQLite},
			wantFeatures: []string{Security, SQLite, Git},
		},
		{
			name:         "mandatory keeps its position when selected",
			features:     []string{SQLite, Security},
			wantFeatures: []string{SQLite, Security},
		},
		{
			name:         "unregistered features pass through",
			features:     []string{"tailwind"},
			wantFeatures: []string{Security, "tailwind"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := &models.Answers{Features: tt.features, Scripts: tt.scripts}

			res := Resolve(answers, reg)

			if diff := cmp.Diff(tt.wantFeatures, answers.Features); diff != "" {
				t.Errorf("Features mismatch (-want +got):\n%s", diff)
			}
			if answers.AutoPreload != tt.wantAutoPreload {
				t.Errorf("AutoPreload = %v, want %v", answers.AutoPreload, tt.wantAutoPreload)
			}
			if got := len(res.Notices()); got != tt.wantNotices {
				t.Errorf("Notices() = %v, want %d entries", res.Notices(), tt.wantNotices)
			}
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	reg := NewRegistry(DefaultFeatures(), DefaultScripts(false), DefaultEdges())
	answers := &models.Answers{
		Features: []string{Darkmode, Frameless},
		Scripts:  []string{ScriptLint, ScriptFormat},
	}

	first := Resolve(answers, reg)
	if !first.Changed() {
		t.Fatal("first Resolve() should change the selection")
	}
	snapshot := append([]string(nil), answers.Features...)

	second := Resolve(answers, reg)
	if second.Changed() {
		t.Errorf("second Resolve() added %v, want nothing", second.Added)
	}
	if diff := cmp.Diff(snapshot, answers.Features); diff != "" {
		t.Errorf("Features changed on second run (-first +second):\n%s", diff)
	}
	if !answers.AutoPreload {
		t.Error("AutoPreload should stay set after second run")
	}

	count := 0
	for _, f := range answers.Features {
		if f == ESLint {
			count++
		}
	}
	if count != 1 {
		t.Errorf("eslint appears %d times, want 1", count)
	}
}

func TestResolve_OrderIndependent(t *testing.T) {
	reg := NewRegistry(DefaultFeatures(), DefaultScripts(false), DefaultEdges())

	a := &models.Answers{Features: []string{Darkmode, SQLite}, Scripts: []string{ScriptLint}}
	b := &models.Answers{Features: []string{SQLite, Darkmode}, Scripts: []string{ScriptLint}}
	Resolve(a, reg)
	Resolve(b, reg)

	asSet := func(ids []string) map[string]bool {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		return m
	}
	if diff := cmp.Diff(asSet(a.Features), asSet(b.Features)); diff != "" {
		t.Errorf("resolved sets differ (-a +b):\n%s", diff)
	}
}

func TestResolve_ChainedEdges(t *testing.T) {
	// An edge whose target triggers another edge must be followed.
	edges := []Edge{
		{Kind: FeatureEdge, From: Preload, To: "ipc"},
		{Kind: FeatureEdge, From: Darkmode, To: Preload},
	}
	reg := NewRegistry(nil, nil, edges)
	answers := &models.Answers{Features: []string{Darkmode}}

	Resolve(answers, reg)

	want := []string{Darkmode, Preload, "ipc"}
	if diff := cmp.Diff(want, answers.Features); diff != "" {
		t.Errorf("Features mismatch (-want +got):\n%s", diff)
	}
}
