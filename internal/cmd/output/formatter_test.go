package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stageRow struct {
	Stage    string `json:"stage"`
	Imported int    `json:"imported_rows"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "YAML", want: FormatYAML},
		{in: "wide", want: FormatWide},
		{in: "", want: ""},
		{in: "csv", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Explicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("Yaml"))
}

func TestFormatters(t *testing.T) {
	rows := []stageRow{{Stage: "orbits", Imported: 3}, {Stage: "schema", Imported: 0}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON).Format(&buf, rows))
		assert.Contains(t, buf.String(), `"imported_rows": 3`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatYAML).Format(&buf, rows))
		assert.Contains(t, buf.String(), "stage: orbits")
	})

	t.Run("table from struct slice", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, rows))
		out := buf.String()
		assert.Contains(t, strings.ToUpper(out), "IMPORTED ROWS")
		assert.Contains(t, out, "orbits")
	})

	t.Run("table from single struct", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, &rows[0]))
		assert.Contains(t, strings.ToUpper(buf.String()), "PROPERTY")
	})

	t.Run("table from data", func(t *testing.T) {
		var buf bytes.Buffer
		data := Data{
			Headers:         []string{"Table", "Rows"},
			Rows:            [][]string{{"Orbits", "3"}},
			ColumnAlignment: []Align{AlignLeft, AlignRight},
		}
		require.NoError(t, NewFormatter(FormatWide).Format(&buf, data))
		assert.Contains(t, buf.String(), "Orbits")
	})
}
