package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/mfarrukh14/pubmed-scraper/internal/pipeline"
	"github.com/mfarrukh14/pubmed-scraper/internal/store"
	"github.com/mfarrukh14/pubmed-scraper/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchTimeout time.Duration
	rps          float64
	burst        int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract multiple article URLs from a file",
	Long: `Batch reads URLs from a file (one per line) and extracts them with a
bounded worker pool and per-domain rate limiting. Fetching and parsing
run in parallel; rows are appended to the workbook one at a time, in
input order.

Example:
  pubscrape batch urls.txt
  pubscrape batch urls.txt --concurrency 8 --excel t2dm.xlsx
  pubscrape batch urls.txt --rps 0.5 --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&rps, "rps", 1.0, "max requests per second per domain")
	batchCmd.Flags().IntVar(&burst, "burst", 3, "rate limiter burst size per domain")

	// Shared with extract
	batchCmd.Flags().StringVar(&excelPath, "excel", "articles.xlsx", "Excel workbook to append to")
	batchCmd.Flags().DurationVar(&timeout, "fetch-timeout", 15*time.Second, "request timeout for individual fetches")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Mozilla/5.0 (ArticleExtractor/1.0)", "HTTP User-Agent")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency
	cfg.RateLimiting.RequestsPerSecond = rps
	cfg.RateLimiting.BurstSize = burst

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Workbook:     %s\n", cfg.Output.Excel)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency, rps, burst)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	// Single writer: workbook appends stay sequential, in input order.
	excel := store.NewExcelStore(cfg.Output.Excel)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Err)
			continue
		}
		if err := excel.Append(result.Extraction.Row); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: append: %v\n", result.URL, err)
			continue
		}
		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s\n", result.URL)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d URLs\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Workbook:  %s\n", cfg.Output.Excel)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
