// Package workflow drives one draft from editing through document reading
// and integrity checking to a result.
//
// A Session owns the single State for its lifetime. Every transition is
// serialized behind the session lock; collaborator calls run with the lock
// released and the stage itself gates re-entry, so at most one upload and
// one check are ever in flight.
package workflow

import (
	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/segment"
)

// Stage is the workflow's externally observable phase.
type Stage string

const (
	StageEditing  Stage = "editing"
	StageReading  Stage = "reading"
	StageChecking Stage = "checking"
	StageResult   Stage = "result"
)

// ExtractionMeta describes the last successfully extracted upload.
type ExtractionMeta struct {
	Filename  string `json:"filename" yaml:"filename"`
	FileType  string `json:"file_type" yaml:"file_type"`
	PageCount int    `json:"page_count" yaml:"page_count"`
	// Scanned means OCR was not performed and the document is likely image-only.
	// It is advisory and never blocks a check.
	Scanned bool   `json:"scanned" yaml:"scanned"`
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// PagesNoun returns "pages" for PDFs and "slides" otherwise.
func (m ExtractionMeta) PagesNoun() string {
	if m.FileType == "pdf" {
		return "pages"
	}
	return "slides"
}

// State is the session's single source of truth.
type State struct {
	Stage      Stage             `json:"stage" yaml:"stage"`
	Segments   []segment.Segment `json:"segments" yaml:"segments"`
	Reflection string            `json:"reflection,omitempty" yaml:"reflection,omitempty"`
	Language   api.Language      `json:"language" yaml:"language"`
	Extraction *ExtractionMeta   `json:"extraction,omitempty" yaml:"extraction,omitempty"`
	// UploadProgress is set only while a file is being uploaded.
	UploadProgress *int `json:"upload_progress,omitempty" yaml:"upload_progress,omitempty"`
	// Error is the user-facing message of the last failed action.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Result is set only in StageResult.
	Result *api.Draft `json:"result,omitempty" yaml:"result,omitempty"`

	// Status is the human-readable sub-step of a running check.
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
	// ReadingFile names the file being read while in StageReading.
	ReadingFile string `json:"reading_file,omitempty" yaml:"reading_file,omitempty"`
	// ReadingPages is the local page count of that file, 0 when unknown.
	ReadingPages int `json:"reading_pages,omitempty" yaml:"reading_pages,omitempty"`
}

func initialState(lang api.Language) State {
	return State{
		Stage:    StageEditing,
		Segments: segment.Empty(),
		Language: lang,
	}
}

// Content returns the canonical text that a check would submit.
func (s State) Content() string {
	return segment.ToText(s.Segments)
}

// clone returns a copy that shares nothing mutable with s.
func (s State) clone() State {
	out := s
	out.Segments = segment.Clone(s.Segments)
	if s.Extraction != nil {
		meta := *s.Extraction
		out.Extraction = &meta
	}
	if s.UploadProgress != nil {
		pct := *s.UploadProgress
		out.UploadProgress = &pct
	}
	if s.Result != nil {
		d := *s.Result
		out.Result = &d
	}
	return out
}
