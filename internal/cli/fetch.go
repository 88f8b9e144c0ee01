package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"AIOverview_Analysis/internal/logger"
	"AIOverview_Analysis/internal/overviewAnalysis"
	"AIOverview_Analysis/internal/recordSource"

	"github.com/spf13/cobra"
)

type fetchOptions struct {
	keywords     []string
	keywordsFile string
	location     string
	language     string
	out          string
	timeout      time.Duration
}

func newFetchCmd(d *deps) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch live SERP results for a keyword list",
		Long: `Fetch requests every keyword from the SERP provider with AI Overviews enabled
and saves the raw results as a JSON array that "analyze" reads back.

Keywords come from repeated -k flags and/or a file with one keyword per line
(commas also separate). Duplicates are dropped keeping the first occurrence.

Example:
  aio-report fetch -k "best crm" -k "crm for startups" --out api-result.json
  aio-report fetch --keywords-file keywords.txt --location 2826 --language en`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), d, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.keywords, "keyword", "k", nil, "keyword to fetch (repeatable)")
	cmd.Flags().StringVar(&opts.keywordsFile, "keywords-file", "", "file with one keyword per line")
	cmd.Flags().StringVar(&opts.location, "location", "", "provider location code (default from DEFAULT_LOCATION_CODE)")
	cmd.Flags().StringVar(&opts.language, "language", "", "provider language code (default from DEFAULT_LANGUAGE_CODE)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "api-result.json", "output file for the raw results")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Minute, "total timeout for the fetch")

	return cmd
}

func runFetch(ctx context.Context, d *deps, opts *fetchOptions) error {
	text := strings.Join(opts.keywords, "\n")
	if opts.keywordsFile != "" {
		data, err := os.ReadFile(opts.keywordsFile)
		if err != nil {
			return fmt.Errorf("failed to read keywords file: %w", err)
		}
		text += "\n" + string(data)
	}

	keywords := overviewAnalysis.ParseKeywords(text)
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords given: use -k or --keywords-file")
	}

	cfg := d.loadConfig()
	components, err := d.build(cfg)
	if err != nil {
		return err
	}
	defer components.Close()

	location := firstSet(opts.location, cfg.DefaultLocationCode)
	language := firstSet(opts.language, cfg.DefaultLanguageCode)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(logger.WithLogEvent(ctx, logger.NewInternalLogEvent()), opts.timeout)
	defer cancel()

	fmt.Fprintf(d.stderr, "Fetching %d keywords (location %s, language %s)\n", len(keywords), location, language)

	start := time.Now()
	records, err := components.Fetcher.FetchAll(ctx, keywords, location, language, func(completed, total int) {
		fmt.Fprintf(d.stderr, "  fetched %d/%d\n", completed, total)
	})
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	missing := 0
	for _, record := range records {
		if len(record.Payload) == 0 {
			missing++
		}
	}

	if err := recordSource.SaveFile(opts.out, records); err != nil {
		return err
	}

	fmt.Fprintf(d.stdout, "Saved %d results to %s in %s", len(records), opts.out, time.Since(start).Round(time.Millisecond))
	if missing > 0 {
		fmt.Fprintf(d.stdout, " (%d keywords failed and were saved without results)", missing)
	}
	fmt.Fprintln(d.stdout)
	return nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
