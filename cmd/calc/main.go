// Command calc runs one leverage/capital sweep and prints the best rows.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/leverage-calc/internal/calculator"
	"github.com/rovshanmuradov/leverage-calc/internal/config"
	"github.com/rovshanmuradov/leverage-calc/internal/export"
	"github.com/rovshanmuradov/leverage-calc/internal/format"
	"github.com/rovshanmuradov/leverage-calc/internal/logger"
	"github.com/rovshanmuradov/leverage-calc/internal/metrics"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/component"
	"github.com/rovshanmuradov/leverage-calc/internal/validate"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

type options struct {
	configPath string
	capital    string
	risk       string
	tp         string
	sl         string
	top        int
	exportFmt  string
	debug      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "configs/config.json", "Path to config file")
	fs.StringVar(&opts.capital, "capital", "", "Capital available (defaults to config)")
	fs.StringVar(&opts.risk, "risk", "", "Risk per trade in percent (defaults to config)")
	fs.StringVar(&opts.tp, "tp", "", "Take profit in percent (defaults to config)")
	fs.StringVar(&opts.sl, "sl", "", "Stop loss in percent (defaults to config)")
	fs.IntVar(&opts.top, "top", 0, "Rows to print (defaults to config top_n)")
	fs.StringVar(&opts.exportFmt, "export", "", "Also export every qualifying row: csv or json")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitInvalid
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitFailure
	}

	appLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging || opts.debug)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to init logger: %v\n", err)
		return exitFailure
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	var exportFormat export.ExportFormat
	if opts.exportFmt != "" {
		if exportFormat, err = export.ParseFormat(opts.exportFmt); err != nil {
			fmt.Fprintln(stderr, err)
			return exitInvalid
		}
	}

	formatter, err := format.New(cfg.Locale)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	topN := cfg.TopN
	if opts.top > 0 {
		topN = opts.top
	}

	service := calculator.NewService(&calculator.ServiceConfig{
		Logger:  appLogger,
		Metrics: metrics.NewCollector(nil),
		TopN:    topN,
	})

	raw := validate.RawInput{
		Capital: orDefault(opts.capital, cfg.Defaults.Capital),
		Risk:    orDefault(opts.risk, cfg.Defaults.RiskPct),
		TP:      orDefault(opts.tp, cfg.Defaults.TPPct),
		SL:      orDefault(opts.sl, cfg.Defaults.SLPct),
	}

	outcome, err := service.Calculate(raw)
	if err != nil {
		printErrors(stderr, err)
		return exitInvalid
	}

	fmt.Fprintln(stdout, renderOutcome(formatter, outcome))

	if exportFormat != "" {
		path, err := export.NewResultExporter(appLogger).Export(outcome.Result, export.ExportOptions{
			Format:    exportFormat,
			OutputDir: cfg.ExportDir,
		})
		switch {
		case errors.Is(err, export.ErrNothingToExport):
			fmt.Fprintln(stdout, "Nothing to export.")
		case err != nil:
			appLogger.Error("Export failed", zap.Error(err))
			return exitFailure
		default:
			fmt.Fprintf(stdout, "Exported to %s\n", path)
		}
	}

	return exitOK
}

func orDefault(value string, fallback float64) string {
	if value != "" {
		return value
	}
	return strconv.FormatFloat(fallback, 'f', -1, 64)
}

// printErrors lists every input violation, one per line.
func printErrors(w io.Writer, err error) {
	violations := validate.Violations(err)
	if len(validate.FieldErrors(err)) == 0 {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, "Invalid input:")
	for _, v := range violations {
		fmt.Fprintf(w, "  - %v\n", v)
	}
}

func renderOutcome(f *format.Formatter, outcome *calculator.Outcome) string {
	in := outcome.Input
	res := outcome.Result

	var b strings.Builder
	fmt.Fprintf(&b, "Capital %s, risk %s, TP %s, SL %s\n",
		f.Money(in.CapitalAvailable),
		f.Percent(in.RiskPct/100),
		f.Percent(in.TPPct/100),
		f.Percent(in.SLPct/100))
	fmt.Fprintf(&b, "Max risk amount %s, %s combinations checked\n\n",
		f.Money(res.MaxRiskAmount), f.Integer(res.Evaluated))

	if outcome.Empty() {
		b.WriteString("No optimal combination found.")
		return b.String()
	}

	table := component.NewTable().
		SetSelectable(false).
		AddColumn("#", 5, lipgloss.Right).
		AddColumn("Capital", 14, lipgloss.Right).
		AddColumn("Leverage", 10, lipgloss.Right).
		AddColumn("Position", 16, lipgloss.Right).
		AddColumn("Profit", 14, lipgloss.Right).
		AddColumn("Loss", 14, lipgloss.Right).
		AddColumn("Risk used", 11, lipgloss.Right)

	rows := make([][]string, 0, len(outcome.Top))
	for i, row := range outcome.Top {
		rows = append(rows, []string{
			f.Integer(i + 1),
			f.Money(float64(row.CapitalInvested)),
			f.Leverage(row.Leverage),
			f.Money(row.Notional),
			f.Money(row.Profit),
			f.Money(row.Loss),
			f.Percent(row.RiskUsed),
		})
	}
	table.SetRows(rows)

	fmt.Fprintf(&b, "Top %d of %s qualifying combinations\n", len(outcome.Top), f.Integer(len(res.Rows)))
	b.WriteString(table.View())
	return b.String()
}
