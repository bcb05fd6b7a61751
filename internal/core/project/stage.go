package project

// Stage is a state of the composer pipeline.
type Stage int

// Pipeline states in transition order. Aborted is reachable from any
// non-terminal state.
const (
	StageValidating Stage = iota
	StageManifestBuilt
	StageBaseCopied
	StageFeatureOverlaysApplied
	StageContentPatched
	StageTokensRendered
	StageDependenciesInstalled
	StageVCSInitialized
	StageDone
	StageAborted
)

var stageNames = map[Stage]string{
	StageValidating:             "validate target",
	StageManifestBuilt:          "build manifest",
	StageBaseCopied:             "copy base template",
	StageFeatureOverlaysApplied: "apply feature overlays",
	StageContentPatched:         "patch content",
	StageTokensRendered:         "render tokens",
	StageDependenciesInstalled:  "install dependencies",
	StageVCSInitialized:         "initialize git repository",
	StageDone:                   "done",
	StageAborted:                "aborted",
}

// String returns the human-readable stage name used in error messages.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown stage"
}

// Terminal reports whether no transition leaves the stage.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageAborted
}

// Reporter receives composer state transitions.
type Reporter interface {
	// StageChanged is called each time the pipeline reaches a new state.
	StageChanged(stage Stage)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(stage Stage)

// StageChanged calls f(stage).
func (f ReporterFunc) StageChanged(stage Stage) {
	f(stage)
}

type nopReporter struct{}

func (nopReporter) StageChanged(Stage) {}
