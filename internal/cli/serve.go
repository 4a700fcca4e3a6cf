package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the writing-analysis HTTP API",
	Long: `Serve exposes the analysis engine over HTTP:
  POST /analyze   analyze a document
  GET  /sources   list the built-in source library
  GET  /health    liveness check

Example:
  fermatter serve
  fermatter serve --addr :9000
  fermatter serve --llm --llm-provider ollama`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8787)")

	// LLM flags
	serveCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable model-backed enrichment")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(*cfg, analyzer)
	return srv.Run(ctx)
}
