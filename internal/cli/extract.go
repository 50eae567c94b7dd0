package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
	"github.com/mfarrukh14/pubmed-scraper/internal/pipeline"
	"github.com/mfarrukh14/pubmed-scraper/internal/store"
	"github.com/spf13/cobra"
)

var (
	excelPath   string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noRobots    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	dryRun      bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract one article page and append a row to the workbook",
	Long: `Extract fetches a single article page and mines it for:
- Title, journal, DOI/PMID, year and authors from structured page hints
- Study design, region, sample size, mean age, genotyping method
- rsIDs with candidate genes, inline annotations and allele frequencies
- Odds-ratio/p-value statements with inferred effect direction

The resulting 18-column row is appended to the chosen Excel workbook.

Example:
  pubscrape extract https://pubmed.ncbi.nlm.nih.gov/12345678/
  pubscrape extract https://example.com/article --excel t2dm.xlsx
  pubscrape extract https://example.com/article --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Output flags
	extractCmd.Flags().StringVar(&excelPath, "excel", "articles.xlsx", "Excel workbook to append to")
	extractCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the extracted row without writing the workbook")

	// HTTP flags
	extractCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout for the article fetch")
	extractCmd.Flags().StringVar(&userAgent, "ua", "Mozilla/5.0 (ArticleExtractor/1.0)", "HTTP User-Agent")
	extractCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	extractCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt check")
	extractCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	extractCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	extractCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.ExtractURL(ctx, url)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Title: %s\n", result.Meta.Title)
		fmt.Fprintf(os.Stderr, "✓ Found %d rsIDs in %d gene groups\n", len(result.Variants), len(result.Groups))
		fmt.Fprintf(os.Stderr, "✓ Found %d association statements\n", len(result.Assocs))
		fmt.Fprintln(os.Stderr)
	}

	if dryRun {
		printRow(result.Row)
		return nil
	}

	excel := store.NewExcelStore(cfg.Output.Excel)
	if err := excel.Append(result.Row); err != nil {
		return fmt.Errorf("append row: %w", err)
	}

	fmt.Printf("✓ Appended row to %s\n", cfg.Output.Excel)
	return nil
}

// buildConfig applies the shared CLI flags on top of the defaults.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Robots.Enabled = !noRobots
	cfg.Output.Verbose = verbose
	cfg.Output.Excel = excelPath
	return cfg
}

// printRow writes the row to stdout in column order.
func printRow(row model.Row) {
	for _, name := range model.Columns {
		fmt.Printf("%-26s %s\n", name+":", row[name])
	}
}
