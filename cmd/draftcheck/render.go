package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/config"
	"github.com/jackzampolin/draftcheck/internal/home"
	"github.com/jackzampolin/draftcheck/internal/ingest"
	"github.com/jackzampolin/draftcheck/internal/progress"
)

const clearLine = "\r\033[K"

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// lineRenderer redraws a single status line on w. Inactive views clear it.
// Without a terminal only phase changes are printed, one per line.
func lineRenderer(w io.Writer, tty bool) progress.RenderFunc {
	var last string
	return func(v progress.View) {
		if tty {
			if v.Active() {
				fmt.Fprint(w, clearLine+v.Line())
			} else if last != "" {
				fmt.Fprint(w, clearLine)
			}
			last = v.Line()
			return
		}
		if !v.Active() {
			last = ""
			return
		}
		key := v.Label + " " + v.Detail
		if key != last {
			fmt.Fprintln(w, strings.TrimSpace(key))
			last = key
		}
	}
}

func progressOptions(cfg *config.Config) progress.Options {
	return progress.Options{
		PhaseInterval: cfg.PhaseInterval(),
		DotsInterval:  cfg.DotsInterval(),
	}
}

// resolveLanguage turns "en", "hi" or "auto" into a feedback language.
// auto looks at the text being checked.
func resolveLanguage(setting, text string) (api.Language, error) {
	if strings.EqualFold(strings.TrimSpace(setting), "auto") {
		return ingest.DetectLanguage(text), nil
	}
	return api.ParseLanguage(setting)
}

// saveResult keeps a copy of an analyzed draft under the home directory.
func saveResult(h *home.Dir, d api.Draft) (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return h.WriteResult(d.ID, data)
}

// loadResult reads a report written by saveResult.
func loadResult(h *home.Dir, id int) (api.Draft, error) {
	data, err := h.ReadResult(id)
	if err != nil {
		return api.Draft{}, err
	}
	var d api.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return api.Draft{}, fmt.Errorf("saved report for draft %d is corrupt: %w", id, err)
	}
	return d, nil
}
