package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Language is the feedback language sent verbatim to the analysis service.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case LanguageEnglish, LanguageHindi:
		return l, nil
	default:
		return "", fmt.Errorf("unsupported language %q (want en or hi)", s)
	}
}

// RiskLevel is the coarse classification returned by the analysis service.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// NoMissingCitations is the value the analysis service uses when it found
// nothing to cite.
const NoMissingCitations = "No missing citations detected"

// Timestamp decodes the server's datetimes, which may omit a timezone.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func (t Timestamp) MarshalYAML() (any, error) {
	if t.IsZero() {
		return "", nil
	}
	return t.Format(time.RFC3339), nil
}

// Assignment is a container that drafts are filed under.
type Assignment struct {
	ID        int       `json:"id" yaml:"id"`
	UserID    int       `json:"user_id" yaml:"user_id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
}

// DraftCreate is the request body for creating a draft.
type DraftCreate struct {
	AssignmentID   int      `json:"assignment_id"`
	Content        string   `json:"content"`
	ReflectionText *string  `json:"reflection_text,omitempty"`
	Language       Language `json:"language,omitempty"`
}

// Draft is a persisted submission. Analysis fields stay nil until an
// integrity check has run.
type Draft struct {
	ID               int        `json:"id" yaml:"id"`
	AssignmentID     int        `json:"assignment_id" yaml:"assignment_id"`
	Content          string     `json:"content" yaml:"content"`
	SimilarityScore  *float64   `json:"similarity_score" yaml:"similarity_score"`
	AIProbability    *float64   `json:"ai_probability" yaml:"ai_probability"`
	RiskLevel        *RiskLevel `json:"risk_level" yaml:"risk_level"`
	LearningScore    *float64   `json:"learning_score" yaml:"learning_score"`
	ReflectionText   *string    `json:"reflection_text" yaml:"reflection_text"`
	Feedback         *string    `json:"feedback" yaml:"feedback"`
	ImprovementTips  *string    `json:"improvement_tips" yaml:"improvement_tips"`
	MissingCitations *string    `json:"missing_citations" yaml:"missing_citations"`
	Language         string     `json:"language" yaml:"language"`
	CreatedAt        Timestamp  `json:"created_at" yaml:"created_at"`
}

// Analyzed reports whether the draft carries integrity check results.
func (d Draft) Analyzed() bool {
	return d.SimilarityScore != nil || d.AIProbability != nil || d.LearningScore != nil
}

// UploadResult is the extraction outcome returned for an uploaded file.
type UploadResult struct {
	ID            int       `json:"id"`
	DraftID       int       `json:"draft_id"`
	Filename      string    `json:"filename"`
	FileType      string    `json:"file_type"`
	ExtractedText string    `json:"extracted_text"`
	PageCount     int       `json:"page_count"`
	Scanned       bool      `json:"scanned"`
	Warning       string    `json:"warning"`
	CreatedAt     Timestamp `json:"created_at"`
}
