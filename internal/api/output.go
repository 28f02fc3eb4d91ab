package api

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Format selects how command results are written.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// TextRenderer is implemented by values with a human-readable form. Values
// without one are written as YAML in text mode.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

var current atomic.Value // Format

func init() { current.Store(FormatText) }

// ParseFormat accepts text, yaml or json in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, yaml or json)", s)
	}
}

// SetFormat sets the process-wide format used by Output.
func SetFormat(f Format) { current.Store(f) }

// CurrentFormat returns the format set by SetFormat.
func CurrentFormat() Format { return current.Load().(Format) }

// IsStructuredOutput reports whether results go out as YAML or JSON.
// Commands print progress and banners only when it is false.
func IsStructuredOutput() bool { return CurrentFormat() != FormatText }

// Output writes data to stdout in the current format.
func Output(data any) error {
	return OutputTo(os.Stdout, CurrentFormat(), data)
}

// OutputTo writes data to w in format f.
func OutputTo(w io.Writer, f Format, data any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		if r, ok := data.(TextRenderer); ok {
			return r.RenderText(w)
		}
		return OutputTo(w, FormatYAML, data)
	}
	return fmt.Errorf("unknown output format %q", f)
}
