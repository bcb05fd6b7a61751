package feature

import (
	"slices"

	"github.com/modu-ai/create-electron-app/pkg/models"
)

// Addition records a feature appended during resolution.
type Addition struct {
	Feature string
	Trigger string // Feature or script that implied it; empty for mandatory features.
	Notice  string
}

// Resolution summarizes what Resolve changed.
type Resolution struct {
	Added []Addition
}

// Changed reports whether resolution appended any feature.
func (r Resolution) Changed() bool {
	return len(r.Added) > 0
}

// Notices returns the user-facing messages of every addition that has one.
func (r Resolution) Notices() []string {
	var out []string
	for _, a := range r.Added {
		if a.Notice != "" {
			out = append(out, a.Notice)
		}
	}
	return out
}

// @MX:ANCHOR: [AUTO] Resolve closes the feature selection; overlays, manifest fragments and patches all read the result.
// @MX:REASON: [AUTO] fan_in=3, called from composer, wizard summary and tests
// Resolve expands answers.Features in place into its closed set: duplicates
// are collapsed keeping the first occurrence, missing mandatory features are
// prepended, then registry edges are applied until nothing changes.
// AutoPreload is set when preload was implied by another feature.
func Resolve(answers *models.Answers, reg *Registry) Resolution {
	var res Resolution

	answers.Features = dedupe(answers.Features)

	var missing []string
	for _, id := range reg.Mandatory() {
		if !answers.HasFeature(id) {
			missing = append(missing, id)
			res.Added = append(res.Added, Addition{Feature: id})
		}
	}
	if len(missing) > 0 {
		answers.Features = append(missing, answers.Features...)
	}

	edges := reg.Edges()
	for changed := true; changed; {
		changed = false
		for _, e := range edges {
			if !triggered(answers, e) || answers.HasFeature(e.To) {
				continue
			}
			answers.AddFeature(e.To)
			if e.Kind == FeatureEdge && e.To == Preload {
				answers.AutoPreload = true
			}
			res.Added = append(res.Added, Addition{Feature: e.To, Trigger: e.From, Notice: e.Notice})
			changed = true
		}
	}

	return res
}

func triggered(answers *models.Answers, e Edge) bool {
	switch e.Kind {
	case ScriptEdge:
		return answers.HasScript(e.From)
	default:
		return answers.HasFeature(e.From)
	}
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
