// Package segment converts between flat document text and the ordered
// page/slide segments shown in the structured editor.
package segment

import (
	"fmt"
	"regexp"
	"strings"
)

// markerPattern matches "Page N" or "Slide N" at the start of a line,
// with an optional colon and any whitespace that follows it.
var markerPattern = regexp.MustCompile(`(?m)^((?:Page|Slide)\s+\d+):?\s*`)

// Joiner separates segment blocks in the canonical text.
const Joiner = "\n\n"

// Segment is one structural unit of a document: a page, a slide, or the
// whole document when no structure was detected.
type Segment struct {
	Label string `json:"label" yaml:"label"`
	Body  string `json:"body" yaml:"body"`
}

// Placeholder reports whether the body is a marker the extractor writes for
// pages or slides it could not read.
func (s Segment) Placeholder() bool {
	return strings.HasPrefix(s.Body, "[No") || strings.HasPrefix(s.Body, "[⚠")
}

// Empty returns the initial segment list: one unlabeled, empty segment.
func Empty() []Segment {
	return []Segment{{}}
}

// Parse splits text on Page/Slide markers. Markers are kept in source order
// and never renumbered. Text without markers becomes a single unlabeled
// segment holding the input unchanged.
func Parse(text string) []Segment {
	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Body: text}}
	}

	segments := make([]Segment, 0, len(matches))
	for i, m := range matches {
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segments = append(segments, Segment{
			Label: text[m[2]:m[3]],
			Body:  strings.TrimSpace(text[start:end]),
		})
	}
	return segments
}

// ToText reassembles segments into the canonical submission text.
func ToText(segments []Segment) string {
	blocks := make([]string, len(segments))
	for i, s := range segments {
		if s.Label != "" {
			blocks[i] = s.Label + ":\n" + s.Body
		} else {
			blocks[i] = s.Body
		}
	}
	return strings.Join(blocks, Joiner)
}

// Update returns a copy of segments with the body at index i replaced.
// Labels, order and length are never changed.
func Update(segments []Segment, i int, body string) ([]Segment, error) {
	if i < 0 || i >= len(segments) {
		return nil, fmt.Errorf("segment index %d out of range [0,%d)", i, len(segments))
	}
	next := make([]Segment, len(segments))
	copy(next, segments)
	next[i].Body = body
	return next, nil
}

// IsSingleBlock reports whether the list is the unstructured case: one
// segment without a label.
func IsSingleBlock(segments []Segment) bool {
	return len(segments) == 1 && segments[0].Label == ""
}

// Clone returns an independent copy of segments.
func Clone(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)
	return out
}
