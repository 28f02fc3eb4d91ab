package ingest

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"

	dcapi "github.com/jackzampolin/draftcheck/internal/api"
)

// DetectLanguage picks the feedback language that matches text: Hindi for
// Devanagari or detected Hindi, English otherwise.
func DetectLanguage(text string) dcapi.Language {
	if strings.TrimSpace(text) == "" {
		return dcapi.LanguageEnglish
	}
	info := whatlanggo.Detect(text)
	if info.Script == unicode.Devanagari || info.Lang.Iso6391() == "hi" {
		return dcapi.LanguageHindi
	}
	return dcapi.LanguageEnglish
}
