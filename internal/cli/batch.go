package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/magnusgp/fermatter/internal/ingest"
	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/render"
	"github.com/magnusgp/fermatter/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple documents from a manifest in parallel",
	Long: `Batch analyzes multiple documents concurrently:
- Read document paths from a manifest file (one per line, # for comments)
- Analyze documents in parallel with configurable worker count
- Write an individual JSON and Markdown report per document

Example:
  fermatter batch docs.txt
  fermatter batch docs.txt --concurrency 8 --output-dir ./reports
  fermatter batch docs.txt --mode journalist`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./fermatter-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&mode, "mode", "scientific", "review mode (scientific, journalist, grandma)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Batch input: %s (%d workers)\n", manifest, concurrency)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	cfg := model.DefaultConfig()
	cfg.Output.IncludeFooter = !noFooter

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(analyzer, ingest.LoadDocument, model.Mode(mode), concurrency)
	results, err := processor.ProcessFile(ctx, manifest)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := render.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Result, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Result, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d observations)\n", result.Path, len(result.Result.Observations))
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d ok, %d failed, reports in %s\n", successCount, failureCount, outputDir)
	return nil
}

// sanitizeFilename turns a document path into a safe report filename
func sanitizeFilename(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	base = replacer.Replace(base)
	if base == "" {
		base = "report"
	}
	return base
}
