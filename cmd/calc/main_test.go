package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCalc(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LEVCALC_EXPORT_DIR", filepath.Join(dir, "exports"))

	var stdout, stderr bytes.Buffer
	args = append([]string{"-config", filepath.Join(dir, "missing.json")}, args...)
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunPrintsTopRows(t *testing.T) {
	// Budget 500 and SL 50% keep capital*leverage <= 1000; all values are exact.
	code, out, _ := runCalc(t, "-capital", "1.000,00", "-risk", "50", "-tp", "25", "-sl", "50", "-top", "3")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Capital $1,000.00")
	assert.Contains(t, out, "Top 3 of")
	assert.Contains(t, out, "x100")
	assert.Contains(t, out, "$250.00")
}

func TestRunReportsEveryViolation(t *testing.T) {
	code, _, errOut := runCalc(t, "-capital", "0.5", "-tp", "5", "-sl", "200")

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, errOut, "Invalid input:")
	assert.Contains(t, errOut, "capital_available")
	assert.Contains(t, errOut, "sl_pct")
}

func TestRunNoOptimalCombination(t *testing.T) {
	code, out, _ := runCalc(t, "-capital", "10", "-risk", "1", "-tp", "5", "-sl", "100", "-export", "csv")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "No optimal combination found.")
	assert.Contains(t, out, "Nothing to export.")
}

func TestRunExport(t *testing.T) {
	code, out, _ := runCalc(t, "-capital", "20", "-risk", "5", "-tp", "3", "-sl", "1", "-export", "json")
	require.Equal(t, exitOK, code)

	exportDir := os.Getenv("LEVCALC_EXPORT_DIR")
	matches, err := filepath.Glob(filepath.Join(exportDir, "sweep_20_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Contains(t, out, "Exported to")
}

func TestRunRejectsUnknownExportFormat(t *testing.T) {
	code, _, errOut := runCalc(t, "-export", "xml")

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, errOut, "unsupported format")
}
