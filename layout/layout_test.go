package layout

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(elements []Element) []string {
	out := make([]string, len(elements))
	for i, el := range elements {
		out[i] = el.ID
	}
	return out
}

func TestSortedIsStable(t *testing.T) {
	cfg := &Config{Elements: []Element{
		{ID: "A", Order: 3},
		{ID: "B", Order: 1},
		{ID: "C", Order: 1},
		{ID: "D", Order: 2},
	}}
	assert.Equal(t, []string{"B", "C", "D", "A"}, ids(cfg.Sorted()))
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(cfg.Elements), "receiver must not be reordered")
}

func TestSortedDefaultsOrderToZero(t *testing.T) {
	cfg := &Config{Elements: []Element{
		{ID: "late", Order: 1},
		{ID: "implicit"},
		{ID: "early", Order: -1},
	}}
	assert.Equal(t, []string{"early", "implicit", "late"}, ids(cfg.Sorted()))
}

func TestKnown(t *testing.T) {
	assert.True(t, KindWorkExperience.Known())
	assert.False(t, Kind("chart").Known())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		err  error
	}{
		{"ok", &Config{Elements: []Element{{ID: "a", Kind: "chart"}}}, nil},
		{"empty id", &Config{Elements: []Element{{}}}, ErrEmptyID},
		{"duplicate", &Config{Elements: []Element{{ID: "a"}, {ID: "a"}}}, ErrDuplicateID},
		{"negative", &Config{Elements: []Element{{ID: "a", MarginTop: -1}}}, ErrNegativeMargin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMoveRenumbers(t *testing.T) {
	cfg := &Config{Elements: []Element{
		{ID: "header", Order: 0},
		{ID: "basic", Order: 1},
		{ID: "profile", Order: 2},
		{ID: "work", Order: 3},
	}}
	moved, err := cfg.Move("work", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"header", "work", "basic", "profile"}, ids(moved.Sorted()))
	for i, el := range moved.Elements {
		assert.Equal(t, i, el.Order)
	}
	assert.Equal(t, 3, cfg.Elements[3].Order, "original config untouched")
}

func TestMoveClampsTarget(t *testing.T) {
	cfg := &Config{Elements: []Element{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	moved, err := cfg.Move("a", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(moved.Sorted()))

	moved, err = cfg.Move("c", -4)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(moved.Sorted()))
}

func TestMoveUpDown(t *testing.T) {
	cfg := &Config{Elements: []Element{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	up, err := cfg.MoveUp("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(up.Sorted()))

	down, err := cfg.MoveDown("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(down.Sorted()))

	first, err := cfg.MoveUp("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(first.Sorted()))

	_, err = cfg.MoveDown("zzz")
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestToggleWrapAndMargins(t *testing.T) {
	cfg := &Config{Elements: []Element{{ID: "a", Settings: map[string]any{"title": "x"}}}}

	toggled, err := cfg.ToggleWrap("a")
	require.NoError(t, err)
	assert.True(t, toggled.Elements[0].Wrap)
	assert.False(t, cfg.Elements[0].Wrap)

	set, err := toggled.SetWrap("a", false)
	require.NoError(t, err)
	assert.False(t, set.Elements[0].Wrap)

	margins, err := cfg.SetMargins("a", 12, -3)
	require.NoError(t, err)
	assert.Equal(t, 12.0, margins.Elements[0].MarginTop)
	assert.Equal(t, 0.0, margins.Elements[0].MarginBottom)

	margins.Elements[0].Settings["title"] = "changed"
	assert.Equal(t, "x", cfg.Elements[0].Settings["title"], "settings are deep-copied")

	_, err = cfg.ToggleWrap("missing")
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestEnsureIDs(t *testing.T) {
	cfg := &Config{Elements: []Element{{ID: "keep"}, {Kind: KindText}}}
	out := cfg.EnsureIDs()
	assert.Equal(t, "keep", out.Elements[0].ID)
	assert.NotEmpty(t, out.Elements[1].ID)
	assert.Empty(t, cfg.Elements[1].ID)
	assert.NoError(t, out.Validate())
}

const jsonLayout = `{
  "elements": [
    {"id": "header", "type": "text", "source": "basics.name", "order": 0, "marginBottom": 10,
     "settings": {"fontSize": 24, "fontWeight": "bold"}},
    {"id": "edu", "type": "table", "source": "education", "order": 1, "wrap": true,
     "settings": {"columns": [{"header": "School", "field": "institution"}]}}
  ]
}`

const yamlLayout = `elements:
  - id: header
    type: text
    source: basics.name
    marginBottom: 10
    settings:
      fontSize: 24
      fontWeight: bold
  - id: edu
    type: table
    source: education
    order: 1
    wrap: true
    settings:
      columns:
        - header: School
          field: institution
`

const tomlLayout = `[[elements]]
id = "header"
type = "text"
source = "basics.name"
marginBottom = 10.0
[elements.settings]
fontSize = 24
fontWeight = "bold"

[[elements]]
id = "edu"
type = "table"
source = "education"
order = 1
wrap = true
[[elements.settings.columns]]
header = "School"
field = "institution"
`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatJSON, jsonLayout},
		{FormatYAML, yamlLayout},
		{FormatTOML, tomlLayout},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input), tt.format)
			require.NoError(t, err)
			require.Len(t, cfg.Elements, 2)

			header := cfg.Elements[0]
			assert.Equal(t, KindText, header.Kind)
			assert.Equal(t, "basics.name", header.Source)
			assert.Equal(t, 10.0, header.MarginBottom)
			assert.Equal(t, "bold", header.Settings["fontWeight"])

			edu := cfg.Elements[1]
			assert.Equal(t, KindTable, edu.Kind)
			assert.Equal(t, 1, edu.Order)
			assert.True(t, edu.Wrap)
			assert.NotNil(t, edu.Settings["columns"])
		})
	}
}

func TestParseErrorsAreReturned(t *testing.T) {
	_, err := Parse([]byte(`{"elements": [`), FormatJSON)
	assert.Error(t, err)
	_, err = Parse([]byte(`x`), Format("ini"))
	assert.Error(t, err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Parse([]byte(jsonLayout), FormatJSON)
	require.NoError(t, err)

	for _, name := range []string{"layout.json", "layout.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, cfg))
		back, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, ids(cfg.Elements), ids(back.Elements))
		assert.Equal(t, cfg.Elements[1].Wrap, back.Elements[1].Wrap)
	}

	assert.Error(t, WriteFile(filepath.Join(dir, "layout.folio"), cfg))
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Config{Elements: []Element{{ID: "a", Kind: KindList}}}, FormatJSON))
	assert.JSONEq(t, `{"elements":[{"id":"a","type":"list","source":""}]}`, buf.String())
}

func TestLoadFileUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}
