package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh command tree with args, isolated from the
// user's configuration and cache.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TESTCTL_CACHE_PATH", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// checkServer serves /ok (healthy) and /broken (503) and counts requests.
type checkServer struct {
	*httptest.Server
	mu   sync.Mutex
	hits map[string]int
}

func newCheckServer(t *testing.T) *checkServer {
	t.Helper()
	s := &checkServer{hits: map[string]int{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		s.hit("/ok")
		fmt.Fprint(w, `{"status":"healthy"}`)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		s.hit("/broken")
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *checkServer) hit(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits[path]++
}

func (s *checkServer) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// writeTestConfig writes a config with a passing "smoke" category and a
// failing "flaky" category against srv, and returns its path.
func writeTestConfig(t *testing.T, srv *checkServer) string {
	t.Helper()
	content := fmt.Sprintf(`execution:
  timeout: 5s
checks:
  - id: ok
    category: smoke
    independent: true
    description: backend answers healthy
    http:
      url: %[1]s/ok
      contains: healthy
  - id: after
    category: smoke
    http:
      url: %[1]s/ok
  - id: broken
    category: flaky
    independent: true
    http:
      url: %[1]s/broken
`, srv.URL)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
