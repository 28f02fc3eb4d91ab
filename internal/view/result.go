package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jackzampolin/draftcheck/internal/api"
)

var (
	heading = color.New(color.Bold)
	faint   = color.New(color.Faint)
	warn    = color.New(color.FgYellow)
	bad     = color.New(color.FgRed, color.Bold)
	good    = color.New(color.FgGreen)
)

var riskColors = map[api.RiskLevel]*color.Color{
	api.RiskLow:    color.New(color.FgGreen, color.Bold),
	api.RiskMedium: color.New(color.FgYellow, color.Bold),
	api.RiskHigh:   color.New(color.FgRed, color.Bold),
}

// RiskBadge renders a risk level. A missing level displays as Low.
func RiskBadge(r *api.RiskLevel) string {
	level := api.RiskLow
	if r != nil && *r != "" {
		level = *r
	}
	c, ok := riskColors[level]
	if !ok {
		return fmt.Sprintf("[ %s Risk ]", level)
	}
	return c.Sprintf("[ %s Risk ]", level)
}

// Result is an analyzed draft rendered as the integrity report.
type Result api.Draft

// RenderText implements api.TextRenderer.
func (r Result) RenderText(w io.Writer) error {
	var b strings.Builder

	heading.Fprintln(&b, "Integrity Results")
	meta := fmt.Sprintf("Draft #%d", r.ID)
	if !r.CreatedAt.IsZero() {
		meta += " · " + r.CreatedAt.Format("2006-01-02")
	}
	faint.Fprintln(&b, meta)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Learning Score %3d%%   %s\n", Percent(r.LearningScore), RiskBadge(r.RiskLevel))
	b.WriteString("\n")

	for _, row := range []struct {
		label string
		value *float64
	}{
		{"Similarity", r.SimilarityScore},
		{"AI Probability", r.AIProbability},
		{"Learning Score", r.LearningScore},
	} {
		v := 0.0
		if row.value != nil {
			v = *row.value
		}
		fmt.Fprintf(&b, "  %-15s %s %3d%%\n", row.label, Bar(v, BarWidth), Percent(row.value))
	}

	section(&b, "AI Feedback", r.Feedback)
	section(&b, "How to Improve", r.ImprovementTips)
	if r.MissingCitations != nil && *r.MissingCitations != api.NoMissingCitations {
		section(&b, "Citation Suggestions", r.MissingCitations)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title string, body *string) {
	if body == nil || strings.TrimSpace(*body) == "" {
		return
	}
	b.WriteString("\n")
	heading.Fprintln(b, title)
	b.WriteString(indent(strings.TrimSpace(*body), "  "))
	b.WriteString("\n")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
