// Package view renders workflow state and drafts for the terminal.
package view

import (
	"math"
	"strings"
)

// BarWidth is the default width of a percentage bar in cells.
const BarWidth = 20

// Bar draws pct (0-100) as a fixed-width bar.
func Bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = math.Max(0, math.Min(100, pct))
	filled := int(math.Round(pct / 100 * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Percent rounds an optional score for display. A nil score shows as 0.
func Percent(v *float64) int {
	if v == nil {
		return 0
	}
	return int(math.Round(*v))
}
