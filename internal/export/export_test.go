package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rovshanmuradov/leverage-calc/internal/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExporter() *ResultExporter {
	exporter := NewResultExporter(zap.NewNop())
	exporter.now = func() time.Time {
		return time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	}
	return exporter
}

func generateTestResult(t *testing.T) *sweep.Result {
	t.Helper()
	res, err := sweep.Evaluate(sweep.Input{CapitalAvailable: 50, RiskPct: 2, TPPct: 6, SLPct: 1.5})
	require.NoError(t, err)
	require.False(t, res.Empty())
	return res
}

func TestResultExportCSV(t *testing.T) {
	exporter := newTestExporter()
	res := generateTestResult(t)

	outputPath, err := exporter.Export(res, ExportOptions{
		Format:    FormatCSV,
		OutputDir: filepath.Join(t.TempDir(), "nested"),
		Limit:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, "sweep_50_20240309_143000.csv", filepath.Base(outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, CSVHeaders(), records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "5", records[5][0])
}

func TestResultExportJSON(t *testing.T) {
	exporter := newTestExporter()
	res := generateTestResult(t)

	outputPath, err := exporter.Export(res, ExportOptions{
		Format:    FormatJSON,
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var decoded struct {
		Input         sweep.Input   `json:"input"`
		MaxRiskAmount float64       `json:"max_risk_amount"`
		Summary       ExportSummary `json:"summary"`
		Rows          []sweep.Row   `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(content, &decoded))

	assert.Equal(t, res.Input, decoded.Input)
	assert.Len(t, decoded.Rows, len(res.Rows))
	assert.Equal(t, len(res.Rows), decoded.Summary.Qualifying)
	assert.Equal(t, res.Evaluated, decoded.Summary.Evaluated)
	assert.Equal(t, res.Rows[0].Profit, decoded.Summary.BestProfit)
}

func TestResultExportEmpty(t *testing.T) {
	exporter := newTestExporter()

	_, err := exporter.Export(&sweep.Result{}, ExportOptions{Format: FormatCSV, OutputDir: t.TempDir()})
	assert.True(t, errors.Is(err, ErrNothingToExport))

	_, err = exporter.Export(nil, ExportOptions{Format: FormatCSV, OutputDir: t.TempDir()})
	assert.True(t, errors.Is(err, ErrNothingToExport))
}

func TestResultExportUnsupportedFormat(t *testing.T) {
	exporter := newTestExporter()

	_, err := exporter.Export(generateTestResult(t), ExportOptions{Format: "xml", OutputDir: t.TempDir()})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
