// Package home manages the ~/.draftcheck directory: config, .env secrets and
// the reports saved after each integrity check.
package home

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
)

const (
	DefaultDirName = ".draftcheck"
	ResultsDirName = "results"
	ConfigFileName = "config.yaml"
	// EnvFileName holds secrets loaded before config, e.g. the API token.
	EnvFileName = ".env"
)

// ErrNoResult is returned when no report was saved for a draft.
var ErrNoResult = errors.New("no saved report")

var resultName = regexp.MustCompile(`^draft_(\d+)\.json$`)

// Dir is a draftcheck home directory.
type Dir struct {
	root string
}

// New returns the home rooted at path, or ~/.draftcheck when path is empty.
// Nothing is created on disk.
func New(path string) (*Dir, error) {
	if path != "" {
		return &Dir{root: path}, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return &Dir{root: filepath.Join(userHome, DefaultDirName)}, nil
}

func (d *Dir) Path() string        { return d.root }
func (d *Dir) ResultsPath() string { return filepath.Join(d.root, ResultsDirName) }
func (d *Dir) ConfigPath() string  { return filepath.Join(d.root, ConfigFileName) }
func (d *Dir) EnvPath() string     { return filepath.Join(d.root, EnvFileName) }

// ResultPath is where the report for draftID lives.
func (d *Dir) ResultPath(draftID int) string {
	return filepath.Join(d.ResultsPath(), fmt.Sprintf("draft_%06d.json", draftID))
}

// EnsureExists creates the results directory and its parents.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.ResultsPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	return nil
}

// ConfigExists reports whether a config file is present.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// WriteResult stores a report for draftID, replacing any earlier one. The
// file is written to a temp name first so readers never see a partial report.
func (d *Dir) WriteResult(draftID int, data []byte) (string, error) {
	if err := d.EnsureExists(); err != nil {
		return "", err
	}
	path := d.ResultPath(draftID)
	tmp, err := os.CreateTemp(d.ResultsPath(), ".draft-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

// ReadResult loads the report saved for draftID. It wraps ErrNoResult when
// none exists.
func (d *Dir) ReadResult(draftID int) ([]byte, error) {
	data, err := os.ReadFile(d.ResultPath(draftID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("draft %d: %w", draftID, ErrNoResult)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report for draft %d: %w", draftID, err)
	}
	return data, nil
}

// ResultIDs lists the drafts with a saved report, newest id first. A missing
// results directory yields an empty list.
func (d *Dir) ResultIDs() ([]int, error) {
	entries, err := os.ReadDir(d.ResultsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	var ids []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := resultName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	slices.Reverse(ids)
	return ids, nil
}
