package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/folio/internal/pipeline"
)

const body = `{
  "layout": {"elements": [
    {"id": "name", "type": "text", "source": "basics.name"},
    {"id": "ghost", "type": "text", "source": "basics.missing", "order": 1},
    {"id": "skills", "type": "list", "source": "skills", "order": 2}
  ]},
  "record": {
    "basics": {"name": "홍길동"},
    "skills": [{"name": "Go", "level": "Expert"}]
  }
}`

func newTestServer(t *testing.T) (*httptest.Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.New(&logs)
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv, &logs
}

func post(t *testing.T, srv *httptest.Server, path, payload string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv, logs := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, logs.String(), "/healthz")
}

func TestKinds(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/kinds")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Kinds []string `json:"kinds"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Kinds, "work-experience")
	assert.Len(t, out.Kinds, 6)
}

func TestCompose(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := post(t, srv, "/compose", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Entries []struct {
			ID   string          `json:"id"`
			Type string          `json:"type"`
			Node json.RawMessage `json:"node"`
		} `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Entries, 3)
	assert.Equal(t, "name", out.Entries[0].ID)
	assert.Equal(t, "null", string(out.Entries[1].Node), "absent data renders nothing")
	assert.Contains(t, string(out.Entries[0].Node), "홍길동")
}

func TestComposeSkipEmpty(t *testing.T) {
	srv, _ := newTestServer(t)
	payload := strings.Replace(body, `"record"`, `"skipEmpty": true, "record"`, 1)
	resp := post(t, srv, "/compose", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Entries []json.RawMessage `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Entries, 2)
}

func TestComposeDSL(t *testing.T) {
	srv, _ := newTestServer(t)
	payload := `{"dsl": "layout Mini v1 {\n  elements {\n    text name \"basics.name\"\n  }\n}\n", "record": {"basics": {"name": "Kim"}}}`
	resp := post(t, srv, "/compose", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Kim")
}

func TestRender(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := post(t, srv, "/render", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "1", resp.Header.Get("X-Folio-Pages"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"layout":`},
		{"missing layout", `{"record": {}}`},
		{"both layout and dsl", `{"layout": {"elements": []}, "dsl": "layout A v1 {}"}`},
		{"duplicate ids", `{"layout": {"elements": [{"id":"a","type":"text"},{"id":"a","type":"text"}]}}`},
		{"dsl syntax error", `{"dsl": "layout Broken {"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/compose", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var out map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.NotEmpty(t, out["error"])
		})
	}
}
