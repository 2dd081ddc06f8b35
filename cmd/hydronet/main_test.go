package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const badNetworkYAML = `name: broken
resistances: [0, 2]
initial_discharge: [3, 1]
weight:
  - [1, -1]
iterations: 10
`

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return code, stdout.String()
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestRun_Usage(t *testing.T) {
	code, _ := runCLI(t)
	assert.Equal(t, 2, code)

	code, _ = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)

	code, out := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "dev\n", out)
}

func TestReference_JSON(t *testing.T) {
	code, out := runCLI(t, "reference", "-format", "json")
	require.Equal(t, 0, code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc["resistances"], 23)
	assert.Len(t, doc["weight"], 12)
}

func TestReference_SaveThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	code, _ := runCLI(t, "reference", "-o", path)
	require.Equal(t, 0, code)

	code, out := runCLI(t, "validate", "-f", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "reference: valid (23 pipes, 12 loops)")
}

func TestValidate_Invalid(t *testing.T) {
	path := writeFile(t, "broken.yaml", badNetworkYAML)

	code, out := runCLI(t, "validate", "-f", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid: all resistance values must be positive")

	code, _ = runCLI(t, "validate")
	assert.Equal(t, 1, code)
}

func TestSolve_Reference(t *testing.T) {
	code, out := runCLI(t, "solve")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "Pipe")
	assert.Contains(t, out, "Status: Success")
	assert.Contains(t, out, "Iterations: 85 (converged")
}

func TestSolve_ExportAndPlot(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "convergence.png")

	code, out := runCLI(t, "solve", "-export", dir, "-plot", png)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Exported: ")
	assert.Contains(t, out, "Plot: "+png)

	matches, err := filepath.Glob(filepath.Join(dir, "hardy-cross-results-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	raw, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))
}

func TestSolve_InvalidGate(t *testing.T) {
	path := writeFile(t, "broken.yaml", badNetworkYAML)

	code, out := runCLI(t, "solve", "-f", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid: all resistance values must be positive")
	assert.NotContains(t, out, "Status:")

	code, out = runCLI(t, "solve", "-f", path, "-force")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Status: Success")
}

func TestSolve_NegativeIterationsRejected(t *testing.T) {
	code, out := runCLI(t, "solve", "-iterations", "-5")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid: number of iterations must be positive")
	assert.NotContains(t, out, "Status:")
}

func TestSolve_IterationOverride(t *testing.T) {
	code, out := runCLI(t, "solve", "-iterations", "3")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Iterations: 3 (not converged")
}
