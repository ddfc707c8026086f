package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rovshanmuradov/leverage-calc/internal/sweep"
	"go.uber.org/zap"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ErrNothingToExport is returned for a result with no rows.
var ErrNothingToExport = errors.New("no rows to export")

// ParseFormat maps a user supplied name to an ExportFormat.
func ParseFormat(name string) (ExportFormat, error) {
	switch ExportFormat(name) {
	case FormatCSV, FormatJSON:
		return ExportFormat(name), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format    ExportFormat
	OutputDir string
	Limit     int // Rows to write; 0 writes every row
}

// ResultExporter writes sweep results to disk
type ResultExporter struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewResultExporter creates a new result exporter
func NewResultExporter(logger *zap.Logger) *ResultExporter {
	return &ResultExporter{
		logger: logger.Named("export"),
		now:    time.Now,
	}
}

// CSVHeaders lists the CSV columns in order.
func CSVHeaders() []string {
	return []string{"rank", "capital_invested", "leverage", "notional", "profit", "loss", "risk_used"}
}

// Export writes res according to options and returns the file path.
func (re *ResultExporter) Export(res *sweep.Result, options ExportOptions) (string, error) {
	if res == nil || res.Empty() {
		return "", ErrNothingToExport
	}

	rows := res.Top(options.Limit)

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(options.OutputDir, re.generateFilename(res, options))

	var err error
	switch options.Format {
	case FormatCSV:
		err = re.exportToCSV(rows, outputPath)
	case FormatJSON:
		err = re.exportToJSON(res, rows, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		return "", err
	}

	re.logger.Info("Results exported",
		zap.String("file", outputPath),
		zap.Int("count", len(rows)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

// generateFilename creates a filename based on the input and export time
func (re *ResultExporter) generateFilename(res *sweep.Result, options ExportOptions) string {
	timestamp := re.now().Format("20060102_150405")
	capital := strconv.FormatFloat(res.Input.CapitalAvailable, 'f', -1, 64)
	return fmt.Sprintf("sweep_%s_%s.%s", capital, timestamp, options.Format)
}

func (re *ResultExporter) exportToCSV(rows []sweep.Row, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(rowToCSV(i+1, row)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return file.Close()
}

func rowToCSV(rank int, row sweep.Row) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		strconv.Itoa(rank),
		strconv.Itoa(row.CapitalInvested),
		strconv.Itoa(row.Leverage),
		f(row.Notional),
		f(row.Profit),
		f(row.Loss),
		f(row.RiskUsed),
	}
}

// ExportSummary contains summary statistics for an exported result
type ExportSummary struct {
	Evaluated     int     `json:"evaluated"`
	Qualifying    int     `json:"qualifying"`
	Exported      int     `json:"exported"`
	MaxRiskAmount float64 `json:"max_risk_amount"`
	BestProfit    float64 `json:"best_profit"`
	BestNotional  float64 `json:"best_notional"`
}

func (re *ResultExporter) exportToJSON(res *sweep.Result, rows []sweep.Row, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := struct {
		ExportTime    time.Time     `json:"export_time"`
		Input         sweep.Input   `json:"input"`
		MaxRiskAmount float64       `json:"max_risk_amount"`
		Summary       ExportSummary `json:"summary"`
		Rows          []sweep.Row   `json:"rows"`
	}{
		ExportTime:    re.now(),
		Input:         res.Input,
		MaxRiskAmount: res.MaxRiskAmount,
		Summary:       summarize(res, rows),
		Rows:          rows,
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return file.Close()
}

func summarize(res *sweep.Result, rows []sweep.Row) ExportSummary {
	summary := ExportSummary{
		Evaluated:     res.Evaluated,
		Qualifying:    len(res.Rows),
		Exported:      len(rows),
		MaxRiskAmount: res.MaxRiskAmount,
	}
	if best, ok := res.Best(); ok {
		summary.BestProfit = best.Profit
		summary.BestNotional = best.Notional
	}
	return summary
}
