package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/magnusgp/fermatter/internal/analysis"
	"github.com/magnusgp/fermatter/internal/ingest"
	"github.com/magnusgp/fermatter/internal/llm"
	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/render"
)

var (
	outJSON      string
	outMD        string
	mode         string
	goal         string
	snapshotsDir string
	sourceIDs    []string
	noFooter     bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single document and report writing observations",
	Long: `Analyze reads a document (plain text, Markdown, or HTML) and reports:
- Claims made without supporting evidence
- Vague or hedged language
- Reasoning gaps and structural problems
- Paragraphs rewritten repeatedly across earlier drafts

Example:
  fermatter analyze essay.txt
  fermatter analyze essay.md --mode journalist --json report.json --md report.md
  fermatter analyze essay.txt --snapshots ./drafts --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Analysis flags
	analyzeCmd.Flags().StringVar(&mode, "mode", "scientific", "review mode (scientific, journalist, grandma)")
	analyzeCmd.Flags().StringVar(&goal, "goal", "", "what the author wants feedback on")
	analyzeCmd.Flags().StringVar(&snapshotsDir, "snapshots", "", "directory of earlier drafts, one file each")
	analyzeCmd.Flags().StringSliceVar(&sourceIDs, "sources", nil, "library source ids to consider (e.g. S1,S3)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable model-backed enrichment")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	text, err := ingest.LoadDocument(path)
	if err != nil {
		return err
	}

	req := model.AnalyzeRequest{
		Text: text,
		Mode: model.Mode(mode),
		Goal: goal,
		Sources: model.SourcesInput{
			LibraryIDs: sourceIDs,
		},
	}

	if snapshotsDir != "" {
		snapshots, err := ingest.LoadSnapshots(snapshotsDir)
		if err != nil {
			return err
		}
		req.Snapshots = snapshots
		if verbose {
			fmt.Fprintf(os.Stderr, "Loaded %d snapshots from %s\n", len(snapshots), snapshotsDir)
		}
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	resp := analyzer.Analyze(ctx, req)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d paragraphs\n", resp.Meta.ParagraphCount)
		fmt.Fprintf(os.Stderr, "✓ Found %d observations\n", len(resp.Observations))
		if resp.Meta.UsedLLM {
			fmt.Fprintf(os.Stderr, "✓ Enriched with %s\n", cfg.LLM.Provider)
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := render.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(resp, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(resp, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
	}
	if outJSON == "" && outMD == "" {
		fmt.Print(renderer.Markdown(resp))
	} else {
		renderer.RenderSummary(resp)
	}

	return nil
}

// buildAnalyzer assembles the analyzer, wiring in enrichment when the
// LLM flags ask for it.
func buildAnalyzer(cfg *model.Config) (*analysis.Analyzer, error) {
	var opts []analysis.Option

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}

		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("create llm provider: %w", err)
		}
		if provider != nil {
			enricher := llm.NewEnricher(provider)
			opts = append(opts, analysis.WithEnricher(enricher, time.Duration(cfg.LLM.Timeout)*time.Second))
		}
	}

	return analysis.NewAnalyzer(cfg.Analysis, opts...), nil
}
