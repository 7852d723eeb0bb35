package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/fmtree/internal/config"
	"github.com/andyballingall/fmtree/internal/formatter"
	"github.com/andyballingall/fmtree/internal/fsh"
	"github.com/andyballingall/fmtree/internal/repo"
	"github.com/andyballingall/fmtree/internal/source"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Format(ctx context.Context, roots []string, opts OutputOptions) error {
	args := m.Called(ctx, roots, opts)
	return args.Error(0)
}

func (m *MockManager) FormatChanged(ctx context.Context, rev repo.Revision, roots []string,
	opts OutputOptions,
) error {
	args := m.Called(ctx, rev, roots, opts)
	return args.Error(0)
}

func (m *MockManager) Watch(ctx context.Context, roots []string, opts OutputOptions,
	readyChan chan<- struct{},
) error {
	args := m.Called(ctx, roots, opts, readyChan)
	return args.Error(0)
}

// MockGitter is a test mock for the repo.Gitter interface.
type MockGitter struct {
	ChangedFilesFunc func(rev repo.Revision, dirs []string) ([]string, error)
}

func (m *MockGitter) ChangedFiles(_ context.Context, rev repo.Revision, dirs []string) ([]string, error) {
	if m.ChangedFilesFunc != nil {
		return m.ChangedFilesFunc(rev, dirs)
	}
	return nil, nil
}

type mockEnvProvider struct {
	values map[string]string
}

func (m *mockEnvProvider) Get(key string) string {
	return m.values[key]
}

// Ensure the interface is satisfied.
var _ fsh.EnvProvider = (*mockEnvProvider)(nil)

// trimRunner is a formatter.Runner which strips trailing whitespace from every line.
type trimRunner struct {
	fail bool
}

func (r *trimRunner) Name() string {
	return "trim"
}

func (r *trimRunner) Run(_ context.Context, path string, stdout io.Writer) error {
	if r.fail {
		return &formatter.FailedError{Command: "trim", Path: path, Stderr: "boom"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	_, err = io.WriteString(stdout, strings.Join(lines, "\n"))
	return err
}

// safeBuffer is a thread-safe wrapper around bytes.Buffer for use in concurrent tests.
type safeBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *safeBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// waitFor polls the buffer until it contains want or timeout is reached.
func (s *safeBuffer) waitFor(want string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.String(), want) {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

// writeTree creates the given files (relative path to content) under a new temp dir
// and returns the dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

// newTestManager creates a CLIManager using trimRunner. The configured roots are
// include, src and test under dir.
func newTestManager(t *testing.T, dir string, g repo.Gitter, checkOnly bool, w io.Writer) *CLIManager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()
	cfg.Roots = []string{
		filepath.Join(dir, "include"),
		filepath.Join(dir, "src"),
		filepath.Join(dir, "test"),
	}
	f := formatter.New(&trimRunner{}, logger,
		formatter.WithTempDir(t.TempDir()),
		formatter.WithCheckOnly(checkOnly),
	)
	return NewCLIManager(logger, cfg, source.NewClassifier(cfg.Extensions...), f, g, checkOnly, w)
}
