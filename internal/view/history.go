package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/jackzampolin/draftcheck/internal/api"
)

// History is a list of drafts rendered as a table, newest first.
type History []api.Draft

// RenderText implements api.TextRenderer.
func (h History) RenderText(w io.Writer) error {
	if len(h) == 0 {
		_, err := fmt.Fprintln(w, "No drafts yet.")
		return err
	}
	table := newTable(w, []string{"ID", "Assignment", "Created", "Risk", "Similarity", "AI", "Learning"})
	table.AppendBulk(lo.Map(h, func(d api.Draft, _ int) []string {
		if !d.Analyzed() {
			return []string{strconv.Itoa(d.ID), strconv.Itoa(d.AssignmentID), date(d.CreatedAt), "-", "-", "-", "-"}
		}
		return []string{
			strconv.Itoa(d.ID),
			strconv.Itoa(d.AssignmentID),
			date(d.CreatedAt),
			string(lo.FromPtrOr(d.RiskLevel, api.RiskLow)),
			fmt.Sprintf("%d%%", Percent(d.SimilarityScore)),
			fmt.Sprintf("%d%%", Percent(d.AIProbability)),
			fmt.Sprintf("%d%%", Percent(d.LearningScore)),
		}
	}))
	table.Render()
	return nil
}

// Assignments is a list of assignments rendered as a table.
type Assignments []api.Assignment

// RenderText implements api.TextRenderer.
func (a Assignments) RenderText(w io.Writer) error {
	if len(a) == 0 {
		_, err := fmt.Fprintln(w, "No assignments yet.")
		return err
	}
	table := newTable(w, []string{"ID", "Title", "Created"})
	table.AppendBulk(lo.Map(a, func(as api.Assignment, _ int) []string {
		return []string{strconv.Itoa(as.ID), as.Title, date(as.CreatedAt)}
	}))
	table.Render()
	return nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}

func date(t api.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
