package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/segment"
)

// segmentsOutput is the structured form of a segment preview.
type segmentsOutput struct {
	Segments []segment.Segment `json:"segments" yaml:"segments"`
	Text     string            `json:"text" yaml:"text"`
}

// RenderText implements api.TextRenderer.
func (s segmentsOutput) RenderText(w io.Writer) error {
	if segment.IsSingleBlock(s.Segments) {
		_, err := fmt.Fprintf(w, "No Page/Slide markers found; the text is one section (%d chars).\n", len([]rune(s.Text)))
		return err
	}
	for i, seg := range s.Segments {
		if _, err := fmt.Fprintf(w, "[%d] %-10s %5d chars\n", i+1, seg.Label, len([]rune(seg.Body))); err != nil {
			return err
		}
	}
	return nil
}

var segmentsCmd = &cobra.Command{
	Use:   "segments <path>",
	Short: "Preview how extracted text splits into Page/Slide sections",
	Long: `Split a text file on "Page N" / "Slide N" markers the same way extracted
documents are split, without contacting the server. Use "-" for stdin.

With -o yaml or -o json the sections and the reassembled text are printed.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		segs := segment.Parse(text)
		return api.Output(segmentsOutput{Segments: segs, Text: segment.ToText(segs)})
	},
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
}
