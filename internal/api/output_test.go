package api

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Name string `json:"name" yaml:"name"`
}

func (g greeting) RenderText(w io.Writer) error {
	_, err := io.WriteString(w, "hello "+g.Name+"\n")
	return err
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "text", want: FormatText},
		{in: "", want: FormatText},
		{in: " JSON ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputTo(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, OutputTo(&buf, FormatText, greeting{Name: "ana"}))
	assert.Equal(t, "hello ana\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputTo(&buf, FormatText, map[string]int{"id": 3}))
	assert.Equal(t, "id: 3\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputTo(&buf, FormatJSON, greeting{Name: "ana"}))
	assert.JSONEq(t, `{"name":"ana"}`, buf.String())

	assert.Error(t, OutputTo(&buf, Format("csv"), nil))
}

func TestSetFormat(t *testing.T) {
	t.Cleanup(func() { SetFormat(FormatText) })

	assert.False(t, IsStructuredOutput())
	SetFormat(FormatYAML)
	assert.Equal(t, FormatYAML, CurrentFormat())
	assert.True(t, IsStructuredOutput())
}
