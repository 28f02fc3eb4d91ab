package ingest

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dcapi "github.com/jackzampolin/draftcheck/internal/api"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"essay.pdf", TypePDF},
		{"ESSAY.PDF", TypePDF},
		{"deck.pptx", TypePPTX},
		{"old.ppt", TypePPT},
		{"notes.txt", TypeTXT},
		{"report.docx", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.name); got != tt.expected {
				t.Errorf("TypeOf(%q) = %q, want %q", tt.name, got, tt.expected)
			}
			if Accepted(tt.name) != (tt.expected != "") {
				t.Errorf("Accepted(%q) disagrees with TypeOf", tt.name)
			}
		})
	}
}

func TestInspect_TextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "essay.txt")
	content := "Page 1: Intro\nPage 2: Body"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	doc, err := Inspect(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Name != "essay.txt" {
		t.Errorf("expected name essay.txt, got %s", doc.Name)
	}
	if doc.Size != int64(len(content)) {
		t.Errorf("expected size %d, got %d", len(content), doc.Size)
	}
	if doc.Type != TypeTXT {
		t.Errorf("expected type txt, got %s", doc.Type)
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", doc.Warnings)
	}

	f := doc.File()
	if f.ContentType != "text/plain" {
		t.Errorf("expected text/plain content type, got %s", f.ContentType)
	}
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != content {
		t.Errorf("expected file content %q, got %q", content, got)
	}
}

func TestInspect_MismatchedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(path, []byte("just some plain words"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	doc, err := Inspect(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Type != TypePDF {
		t.Errorf("expected type pdf, got %s", doc.Type)
	}
	found := false
	for _, w := range doc.Warnings {
		if strings.Contains(w, "does not look like a PDF") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected mismatch warning, got %v", doc.Warnings)
	}
	if doc.Pages != 0 {
		t.Errorf("expected unknown page count, got %d", doc.Pages)
	}
}

func TestInspect_Missing(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "nope.pdf"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInspect_Directory(t *testing.T) {
	if _, err := Inspect(t.TempDir(), nil); err == nil {
		t.Error("expected error for directory")
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/tmp/history-essay.pdf", "history essay"},
		{"Lab_Report-2.pptx", "Lab Report"},
		{"notes.txt", "notes"},
		{".txt", "Untitled Assignment"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DeriveTitle(tt.input); got != tt.expected {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want dcapi.Language
	}{
		{"empty", "  ", dcapi.LanguageEnglish},
		{"english", "The industrial revolution changed how cities grew and how people worked.", dcapi.LanguageEnglish},
		{"hindi", "औद्योगिक क्रांति ने शहरों के विकास और लोगों के काम करने के तरीके को बदल दिया।", dcapi.LanguageHindi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentFileCarriesPageCount(t *testing.T) {
	doc := &Document{Path: "/nonexistent/essay.pdf", Name: "essay.pdf", Size: 10, Type: TypePDF, MIME: "application/pdf", Pages: 7}
	f := doc.File()
	if f.Pages != 7 {
		t.Errorf("expected 7 pages, got %d", f.Pages)
	}
	if f.ContentType != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", f.ContentType)
	}
}
