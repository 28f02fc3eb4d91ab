package view

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/segment"
	"github.com/jackzampolin/draftcheck/internal/workflow"
)

const scannedNotice = "This appears to be a scanned document. OCR is not enabled. You can type or paste your text manually below."

var languageNames = map[api.Language]string{
	api.LanguageEnglish: "English",
	api.LanguageHindi:   "Hindi",
}

// Editor renders the Editing stage: the last error, the extraction banner,
// the numbered segments, the reflection and the feedback language.
type Editor workflow.State

// RenderText implements api.TextRenderer.
func (e Editor) RenderText(w io.Writer) error {
	var b strings.Builder
	st := workflow.State(e)

	if st.Error != "" {
		bad.Fprintln(&b, "✗ "+st.Error)
		b.WriteString("\n")
	}
	if st.Extraction != nil {
		b.WriteString(ExtractionBanner(*st.Extraction))
		b.WriteString("\n")
	}

	title := "Your Submission"
	if st.Extraction != nil {
		title = "Extracted Text (editable)"
	}
	heading.Fprint(&b, title)
	faint.Fprintf(&b, "  %d chars\n", utf8.RuneCountInString(st.Content()))

	if segment.IsSingleBlock(st.Segments) {
		body := st.Segments[0].Body
		if body == "" {
			faint.Fprintln(&b, "  (empty)")
			if st.Extraction == nil {
				faint.Fprintln(&b, "  Or upload a file to auto-fill this editor.")
			}
		} else {
			fmt.Fprintf(&b, "[1]\n%s\n", indent(body, "  "))
		}
	} else {
		for i, seg := range st.Segments {
			label := seg.Label
			if seg.Placeholder() {
				label = warn.Sprint(label)
			}
			fmt.Fprintf(&b, "[%d] %s\n", i+1, label)
			if seg.Body != "" {
				b.WriteString(indent(seg.Body, "  "))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	heading.Fprint(&b, "Reflection")
	faint.Fprintln(&b, " (optional)")
	if st.Reflection == "" {
		faint.Fprintln(&b, "  What's your main argument? Which sources did you use? What are you unsure about?")
	} else {
		b.WriteString(indent(st.Reflection, "  "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	name, ok := languageNames[st.Language]
	if !ok {
		name = string(st.Language)
	}
	fmt.Fprintf(&b, "Feedback Language: %s\n", name)

	_, err := io.WriteString(w, b.String())
	return err
}

// ExtractionBanner summarizes the last extracted upload.
func ExtractionBanner(m workflow.ExtractionMeta) string {
	var b strings.Builder
	if m.Scanned {
		warn.Fprintf(&b, "⚠ %s\n", m.Filename)
	} else {
		good.Fprintf(&b, "✓ %s\n", m.Filename)
	}
	faint.Fprintf(&b, "  %s · %d %s detected\n", strings.ToUpper(m.FileType), m.PageCount, m.PagesNoun())
	switch {
	case m.Scanned:
		warn.Fprintln(&b, "  "+scannedNotice)
	default:
		if m.Warning != "" {
			warn.Fprintln(&b, "  "+m.Warning)
		}
		good.Fprintln(&b, "  Text extracted successfully. Review and edit below before checking.")
	}
	return b.String()
}
