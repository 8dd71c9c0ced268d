package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, baseURL string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("RORISTEER_HOME", home)
	t.Setenv("RORISTEER_API_KEY", "")

	dir := filepath.Join(home, ".roristeer")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	cfg := map[string]any{
		"active_profile": "test",
		"profiles": map[string]any{
			"test": map[string]string{"api_key": "k", "base_url": baseURL, "model_id": "gemma-2-9b-it"},
		},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600))
}

func runSearch(t *testing.T, query string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"search", query})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSearchCommandPrintsMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/explanation/search", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		_, _ = w.Write([]byte(`{"results":[{"description":"cats","layer":"9-res","index":62610}]}`))
	}))
	defer srv.Close()
	writeProfile(t, srv.URL)

	out := runSearch(t, "cats")
	assert.Contains(t, out, "9-res/62610")
	assert.Contains(t, out, "cats")
}

func TestSearchCommandNoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()
	writeProfile(t, srv.URL)

	assert.Equal(t, "no matches\n", runSearch(t, "zebras"))
}
