package home

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNewDefaultsToUserHome(t *testing.T) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no user home directory")
	}
	d, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if want := filepath.Join(userHome, DefaultDirName); d.Path() != want {
		t.Errorf("Path() = %s, want %s", d.Path(), want)
	}
}

func TestLayout(t *testing.T) {
	d, _ := New("/srv/dc")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"root", d.Path(), "/srv/dc"},
		{"results", d.ResultsPath(), "/srv/dc/results"},
		{"result file is zero padded", d.ResultPath(42), "/srv/dc/results/draft_000042.json"},
		{"config", d.ConfigPath(), "/srv/dc/config.yaml"},
		{"env", d.EnvPath(), "/srv/dc/.env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestConfigExists(t *testing.T) {
	d, _ := New(t.TempDir())
	if d.ConfigExists() {
		t.Fatal("fresh home should have no config")
	}
	if err := os.WriteFile(d.ConfigPath(), []byte("language: hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !d.ConfigExists() {
		t.Error("config written but not reported")
	}
}

func TestWriteAndReadResult(t *testing.T) {
	d, _ := New(filepath.Join(t.TempDir(), "nested", "home"))

	path, err := d.WriteResult(9, []byte(`{"id":9}`))
	if err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	if path != d.ResultPath(9) {
		t.Errorf("path = %s, want %s", path, d.ResultPath(9))
	}

	if _, err := d.WriteResult(9, []byte(`{"id":9,"risk_level":"Low"}`)); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}
	got, err := d.ReadResult(9)
	if err != nil {
		t.Fatalf("ReadResult() error = %v", err)
	}
	if string(got) != `{"id":9,"risk_level":"Low"}` {
		t.Errorf("ReadResult() = %s", got)
	}

	entries, _ := os.ReadDir(d.ResultsPath())
	if len(entries) != 1 {
		t.Errorf("expected only the report file, found %d entries", len(entries))
	}
}

func TestReadResultMissing(t *testing.T) {
	d, _ := New(t.TempDir())
	if _, err := d.ReadResult(3); !errors.Is(err, ErrNoResult) {
		t.Errorf("error = %v, want ErrNoResult", err)
	}
}

func TestResultIDs(t *testing.T) {
	d, _ := New(t.TempDir())

	ids, err := d.ResultIDs()
	if err != nil || len(ids) != 0 {
		t.Fatalf("ResultIDs() on empty home = %v, %v", ids, err)
	}

	for _, id := range []int{4, 120, 17} {
		if _, err := d.WriteResult(id, []byte("{}")); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(d.ResultsPath(), "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(d.ResultsPath(), "draft_000001.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	ids, err = d.ResultIDs()
	if err != nil {
		t.Fatalf("ResultIDs() error = %v", err)
	}
	if want := []int{120, 17, 4}; !slices.Equal(ids, want) {
		t.Errorf("ResultIDs() = %v, want %v", ids, want)
	}
}
