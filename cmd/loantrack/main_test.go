package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// loantrackBin is the path to the built binary.
	loantrackBin string
	// buildErr captures any build error.
	buildErr error
)

// TestMain builds the loantrack binary once before running tests.
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "loantrack-test-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	loantrackBin = filepath.Join(tmpDir, "loantrack")

	cmd := exec.Command("go", "build", "-o", loantrackBin, ".")
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = fmt.Errorf("%w: %s", err, output)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// testEnv is an isolated config and data directory for one test.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
	env       []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("builds the binary")
	}
	require.NoError(t, buildErr, "failed to build loantrack")

	dir := t.TempDir()
	return &testEnv{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
	}
}

type cmdResult struct {
	stdout   string
	stderr   string
	exitCode int
}

func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	cmd := exec.Command(loantrackBin, append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)...)
	cmd.Env = append(os.Environ(), e.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := cmdResult{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("failed to run loantrack: %v", err)
		}
		res.exitCode = exitErr.ExitCode()
	}
	res.stdout = stdout.String()
	res.stderr = stderr.String()
	return res
}

func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	require.Zero(e.t, res.exitCode, "loantrack %v\nstdout: %s\nstderr: %s", args, res.stdout, res.stderr)
	return res
}

// readJSONL returns the records stored in a collection's file.
func readJSONL(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, scanner.Err())
	return out
}

func TestExitCodes(t *testing.T) {
	env := newTestEnv(t)

	res := env.mustRun("init", "--seed")
	assert.Contains(t, res.stdout, "initialized successfully")

	res = env.run("view", "widgets")
	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.stderr, "loantrack: unknown collection")
	assert.Empty(t, res.stdout)

	res = env.run("get", "loans", "LN-0000")
	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.stderr, "record not found")

	res = env.run("view")
	assert.Equal(t, 1, res.exitCode)

	// A file where the data directory should be cannot be attached.
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, nil, 0o644))
	res = env.run("--data-dir", blocked, "view", "loans")
	assert.Equal(t, 2, res.exitCode)
}

func TestWritesReachJSONL(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init", "--seed")

	env.mustRun("review", "SUB-2024-003", "approved", "--by", "Amit")

	subs := readJSONL(t, filepath.Join(env.dataDir, "submissions.jsonl"))
	require.Len(t, subs, 5)
	var found bool
	for _, s := range subs {
		if s["id"] == "SUB-2024-003" {
			found = true
			assert.Equal(t, "approved", s["status"])
			assert.Equal(t, "Amit", s["reviewedBy"])
		}
	}
	assert.True(t, found)

	loans := readJSONL(t, filepath.Join(env.dataDir, "loans.jsonl"))
	for _, l := range loans {
		if l["id"] == "LN-2024-001236" {
			assert.Equal(t, float64(30000), l["utilized"])
			assert.Equal(t, float64(30000), l["pending"])
		}
	}

	// A fresh process rebuilds its cache from the files.
	res := env.mustRun("--json", "view", "submissions", "--where", "status=approved")
	assert.Contains(t, res.stdout, "SUB-2024-003")
}

func TestRoleFromEnvironment(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init", "--seed")

	env.env = []string{"LOANTRACK_ROLE=beneficiary"}
	res := env.run("view", "users")
	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.stderr, "may not access")

	res = env.mustRun("view", "loans")
	assert.True(t, strings.HasPrefix(res.stdout, "Loan ID\t"), res.stdout)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("version")
	assert.Contains(t, res.stdout, "loantrack v")
	_, err := os.Stat(env.configDir)
	assert.True(t, os.IsNotExist(err), "version must not create the config dir")
}

func TestLogLevel(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("init", "--seed")
	assert.Empty(t, res.stderr)

	path := filepath.Join(t.TempDir(), "beneficiaries.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,District\nMeena Iyer,Chennai\n"), 0o644))

	res = env.mustRun("import", "beneficiaries", path)
	assert.Empty(t, res.stderr, "info logs are hidden without --verbose")
	assert.Contains(t, res.stdout, "beneficiaries.csv")

	res = env.mustRun("--verbose", "import", "beneficiaries", path)
	assert.Contains(t, res.stderr, `"msg":"import finished"`)
}
