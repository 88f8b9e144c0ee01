package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"AIOverview_Analysis/internal/app"
	"AIOverview_Analysis/internal/export"
	"AIOverview_Analysis/internal/extractor"
	"AIOverview_Analysis/internal/logger"
	"AIOverview_Analysis/internal/models"
	"AIOverview_Analysis/internal/overviewAnalysis"
	"AIOverview_Analysis/internal/recordSource"

	"github.com/spf13/cobra"
)

// Output file names written by analyze
const (
	KeywordsFile    = "keywords_analysis.csv"
	CompetitorsFile = "comprehensive_competitor_analysis.csv"
	SummaryFile     = "analysis_summary.txt"
)

type analyzeOptions struct {
	input  string
	brand  string
	domain string
	outDir string
}

func newAnalyzeCmd(d *deps) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze saved SERP results for a target brand",
		Long: `Analyze reads a saved result file (a JSON array, a provider response envelope,
a single result, or a column-oriented table export), extracts each AI Overview,
and writes three reports into the output directory:

  ` + KeywordsFile + `                   per-keyword citation and mention data
  ` + CompetitorsFile + `   per-brand engagement across all keywords
  ` + SummaryFile + `                    plain text overview

Example:
  aio-report analyze --brand HubSpot --domain hubspot.com
  aio-report analyze -i results.json --brand Acme --domain acme.com --out-dir ./reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), d, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "api-result.json", "saved result file")
	cmd.Flags().StringVar(&opts.brand, "brand", "", "target brand name")
	cmd.Flags().StringVar(&opts.domain, "domain", "", "target brand domain")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", ".", "directory for the report files")

	return cmd
}

func runAnalyze(ctx context.Context, d *deps, opts *analyzeOptions) error {
	records, err := recordSource.LoadFile(opts.input)
	if err != nil {
		return err
	}

	cfg := d.loadConfig()
	log, logErr := app.NewLogger(cfg)
	defer log.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogEvent(ctx, logger.NewInternalLogEvent())
	if logErr != nil {
		log.LogError(ctx, logger.OpServerStart, "", "Falling back to console logger", logErr, models.LogSeverityMedium, nil)
	}

	analysis := overviewAnalysis.NewService(extractor.NewExtractor(), nil, log, cfg.DefaultLocationCode, cfg.DefaultLanguageCode)
	result, err := analysis.Analyze(ctx, records, models.Target{BrandName: opts.brand, BrandDomain: opts.domain})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summary, err := export.Summary(result)
	if err != nil {
		return err
	}

	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{KeywordsFile, func(w io.Writer) error { return export.WriteKeywordsCSV(w, result) }},
		{CompetitorsFile, func(w io.Writer) error { return export.WriteCompetitorsCSV(w, result) }},
		{SummaryFile, func(w io.Writer) error {
			_, err := io.WriteString(w, summary)
			return err
		}},
	}
	for _, out := range writers {
		if err := writeFile(filepath.Join(opts.outDir, out.name), out.write); err != nil {
			return err
		}
	}

	fmt.Fprint(d.stdout, summary)
	if result.MalformedRecords > 0 {
		fmt.Fprintf(d.stderr, "warning: %d malformed records were counted as keywords without an AI Overview\n", result.MalformedRecords)
	}
	fmt.Fprintf(d.stderr, "Reports written to %s\n", opts.outDir)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
