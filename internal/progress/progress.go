// Package progress turns workflow state and elapsed time into what the
// user sees while a document is read or a check runs.
package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackzampolin/draftcheck/internal/view"
	"github.com/jackzampolin/draftcheck/internal/workflow"
)

// Mode is the kind of screen a state maps to.
type Mode string

const (
	ModeEditing  Mode = "editing"
	ModeReading  Mode = "reading"
	ModeChecking Mode = "checking"
	ModeResult   Mode = "result"
)

// ReadingPhases are shown in order while a document is read. The last one
// stays until reading ends.
var ReadingPhases = []string{
	"Opening document…",
	"Reading your document…",
	"Extracting text content…",
	"Preserving page structure…",
	"Almost done…",
}

// CheckingPhases label a running check; the workflow status is shown
// beneath them.
var CheckingPhases = []string{
	"Running Integrity Check",
}

// Options sets the animation cadences.
type Options struct {
	PhaseInterval time.Duration
	DotsInterval  time.Duration
}

// DefaultOptions returns the standard cadences.
func DefaultOptions() Options {
	return Options{
		PhaseInterval: 1200 * time.Millisecond,
		DotsInterval:  450 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PhaseInterval <= 0 {
		o.PhaseInterval = d.PhaseInterval
	}
	if o.DotsInterval <= 0 {
		o.DotsInterval = d.DotsInterval
	}
	return o
}

// View is a projection of one moment of a long-running stage.
type View struct {
	Mode Mode
	// Label is the current phase text.
	Label string
	// Dots cycles "", ".", "..", "..." to show liveness.
	Dots string
	// Phase is the index into Phases.
	Phase  int
	Phases int
	// Percent is the upload percentage; nil when not uploading.
	Percent *int
	// Detail is the file being read or the current check status.
	Detail string
}

// Project maps state and the time spent in the current stage to a View.
// It is a pure function.
func Project(st workflow.State, elapsed time.Duration, opts Options) View {
	opts = opts.withDefaults()
	if elapsed < 0 {
		elapsed = 0
	}

	var v View
	var phases []string
	switch st.Stage {
	case workflow.StageReading:
		v.Mode = ModeReading
		phases = ReadingPhases
		v.Detail = readingDetail(st)
		if st.UploadProgress != nil {
			pct := *st.UploadProgress
			v.Percent = &pct
		}
	case workflow.StageChecking:
		v.Mode = ModeChecking
		phases = CheckingPhases
		v.Detail = st.Status
	case workflow.StageResult:
		v.Mode = ModeResult
		return v
	default:
		v.Mode = ModeEditing
		return v
	}

	v.Phases = len(phases)
	v.Phase = min(int(elapsed/opts.PhaseInterval), len(phases)-1)
	v.Label = phases[v.Phase]
	v.Dots = strings.Repeat(".", int(elapsed/opts.DotsInterval)%4)
	return v
}

// readingDetail names the file being read, with its page count when known.
func readingDetail(st workflow.State) string {
	switch {
	case st.ReadingFile == "" || st.ReadingPages <= 0:
		return st.ReadingFile
	case st.ReadingPages == 1:
		return st.ReadingFile + " · 1 page"
	default:
		return fmt.Sprintf("%s · %d pages", st.ReadingFile, st.ReadingPages)
	}
}

// Active reports whether the view animates.
func (v View) Active() bool {
	return v.Mode == ModeReading || v.Mode == ModeChecking
}

// Steps renders the phase indicator, one mark per phase.
func (v View) Steps() string {
	var b strings.Builder
	for i := range v.Phases {
		if i <= v.Phase {
			b.WriteString("━")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

// Line renders the view as a single terminal line.
func (v View) Line() string {
	if !v.Active() {
		return ""
	}
	// Pad the dots so the line width stays stable.
	line := fmt.Sprintf("%s%-3s", v.Label, v.Dots)
	if v.Phases > 1 {
		line += " " + v.Steps()
	}
	if v.Percent != nil {
		line += fmt.Sprintf(" %s %3d%%", view.Bar(float64(*v.Percent), view.BarWidth), *v.Percent)
	}
	if v.Detail != "" {
		line += "  " + v.Detail
	}
	return line
}
