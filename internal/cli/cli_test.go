package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/folio/compose"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/render"
)

const testLayout = `elements:
  - id: name
    type: text
    source: basics.name
  - id: skills
    type: list
    source: skills
    order: 1
  - id: missing
    type: text
    source: basics.nickname
    order: 2
`

const testData = `{
  "basics": {"name": "Jane Doe"},
  "skills": [{"name": "Go", "value": "Expert"}]
}`

// setupWorkdir creates a temp dir with a layout and a data file and
// changes into it.
func setupWorkdir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout.yaml"), []byte(testLayout), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.json"), []byte(testData), 0o644))
	t.Chdir(dir)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	logger.Info("visible", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "key=value")
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("rendered resume.pdf", "pages", 2)

	out := buf.String()
	assert.Contains(t, out, "rendered resume.pdf")
	assert.Contains(t, out, "pages=2")
	assert.Contains(t, out, "duration=")
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, log.Default(), loggerFromContext(ctx))

	cfg := configFromContext(ctx)
	assert.Equal(t, ":8080", cfg.Serve.Addr)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestPlanJobs(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		output string
		debug  string
		want   []renderJob
	}{
		{
			name:   "single input keeps paths",
			inputs: []string{"resume.json"},
			output: "out/cv.pdf",
			debug:  "out/cv.json",
			want:   []renderJob{{data: "resume.json", output: "out/cv.pdf", debug: "out/cv.json"}},
		},
		{
			name:   "several inputs into a directory",
			inputs: []string{"a.json", "data/b.yaml"},
			output: "out",
			want: []renderJob{
				{data: "a.json", output: filepath.Join("out", "a.pdf")},
				{data: "data/b.yaml", output: filepath.Join("out", "b.pdf")},
			},
		},
		{
			name:   "pdf output names its directory",
			inputs: []string{"a.json", "b.json"},
			output: "out/resume.pdf",
			debug:  "dbg/layout.json",
			want: []renderJob{
				{data: "a.json", output: filepath.Join("out", "a.pdf"), debug: filepath.Join("dbg", "a.json")},
				{data: "b.json", output: filepath.Join("out", "b.pdf"), debug: filepath.Join("dbg", "b.json")},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planJobs(tt.inputs, tt.output, tt.debug))
		})
	}
}

func TestOutline(t *testing.T) {
	entries := []compose.Entry{
		{ElementID: "name", Kind: layout.KindText, Node: &render.Text{Content: "Jane Doe"}, Wrap: true},
		{ElementID: "ghost", Kind: layout.KindText},
		{ElementID: "custom", Kind: "badge", Node: &render.Text{Content: "x"}, MarginTop: 4},
	}
	out := outline(entries)

	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "wrap")
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "margin 4/0")
	assert.Contains(t, out, "badge")
}

func TestRootCommandMetadata(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "folio", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"render", "compose", "layout", "serve"} {
		assert.Contains(t, names, want)
	}
}

func TestComposeJSON(t *testing.T) {
	setupWorkdir(t)

	out, err := runCLI(t, "compose", "-l", "layout.yaml", "-f", "json", "resume.json")
	require.NoError(t, err)

	var entries []struct {
		ID   string          `json:"id"`
		Node json.RawMessage `json:"node"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "name", entries[0].ID)
	assert.Contains(t, string(entries[0].Node), "Jane Doe")
	assert.Equal(t, "null", string(entries[2].Node))
}

func TestComposeSkipEmptyOutline(t *testing.T) {
	setupWorkdir(t)

	out, err := runCLI(t, "compose", "-l", "layout.yaml", "--skip-empty", "resume.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.NotContains(t, out, "missing")
}

func TestComposeUnknownFormat(t *testing.T) {
	setupWorkdir(t)

	_, err := runCLI(t, "compose", "-l", "layout.yaml", "-f", "xml", "resume.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestComposeRequiresLayout(t *testing.T) {
	setupWorkdir(t)

	_, err := runCLI(t, "compose", "resume.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no layout given")
}

func TestRenderWritesPDF(t *testing.T) {
	setupWorkdir(t)

	_, err := runCLI(t, "render", "-l", "layout.yaml", "-o", "out/resume.pdf", "--debug", "out/resume.json", "resume.json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("out", "resume.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.FileExists(t, filepath.Join("out", "resume.json"))
}

func TestLayoutShow(t *testing.T) {
	setupWorkdir(t)

	out, err := runCLI(t, "layout", "show", "-l", "layout.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "basics.name")
	assert.Contains(t, strings.ToLower(out), "3 elements")
}

func TestLayoutMove(t *testing.T) {
	setupWorkdir(t)

	_, err := runCLI(t, "layout", "move", "missing", "0", "-l", "layout.yaml")
	require.NoError(t, err)

	cfg, err := layout.LoadFile("layout.yaml")
	require.NoError(t, err)
	var ids []string
	for _, el := range cfg.Sorted() {
		ids = append(ids, el.ID)
	}
	assert.Equal(t, []string{"missing", "name", "skills"}, ids)
}

func TestLayoutSet(t *testing.T) {
	setupWorkdir(t)

	_, err := runCLI(t, "layout", "set", "skills", "--toggle-wrap", "--margin-top", "6", "-l", "layout.yaml")
	require.NoError(t, err)

	cfg, err := layout.LoadFile("layout.yaml")
	require.NoError(t, err)
	el, ok := cfg.Find("skills")
	require.True(t, ok)
	assert.True(t, el.Wrap)
	assert.Equal(t, 6.0, el.MarginTop)
	assert.Equal(t, 0.0, el.MarginBottom)
}

func TestLayoutSetNothing(t *testing.T) {
	setupWorkdir(t)

	_, err := runCLI(t, "layout", "set", "skills", "-l", "layout.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestLayoutEditUnknownElement(t *testing.T) {
	setupWorkdir(t)

	_, err := runCLI(t, "layout", "up", "nope", "-l", "layout.yaml")
	require.ErrorIs(t, err, layout.ErrElementNotFound)
}

func TestLayoutEditRejectsDSL(t *testing.T) {
	setupWorkdir(t)
	require.NoError(t, os.WriteFile("resume.folio", []byte("layout A v1 {\n  elements {\n    text name \"basics.name\"\n  }\n}\n"), 0o644))

	_, err := runCLI(t, "layout", "down", "name", "-l", "resume.folio")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "read-only"))
}

func TestLayoutExport(t *testing.T) {
	setupWorkdir(t)

	out, err := runCLI(t, "layout", "export", "-f", "json", "-l", "layout.yaml")
	require.NoError(t, err)

	var cfg layout.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Len(t, cfg.Elements, 3)
}
