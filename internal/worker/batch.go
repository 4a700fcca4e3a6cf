package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
)

// Reviewer runs one analysis call. Satisfied by analysis.Analyzer.
type Reviewer interface {
	Analyze(ctx context.Context, req model.AnalyzeRequest) *model.AnalyzeResponse
}

// Loader reads a document from a path into plain text.
type Loader func(path string) (string, error)

// DocumentJob analyzes a single document file
type DocumentJob struct {
	Path     string
	Mode     model.Mode
	Reviewer Reviewer
	Load     Loader
}

// Execute executes the analysis job
func (j *DocumentJob) Execute(ctx context.Context) Result {
	text, err := j.Load(j.Path)
	if err != nil {
		return &DocumentResult{Path: j.Path, Error: fmt.Errorf("load document: %w", err)}
	}

	result := j.Reviewer.Analyze(ctx, model.AnalyzeRequest{
		Text: text,
		Mode: j.Mode,
	})
	return &DocumentResult{Path: j.Path, Result: result}
}

// DocumentResult represents the result of one document analysis
type DocumentResult struct {
	Path   string
	Result *model.AnalyzeResponse
	Error  error
}

// GetError returns the error from the analysis result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple documents concurrently
type BatchProcessor struct {
	reviewer    Reviewer
	load        Loader
	mode        model.Mode
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(reviewer Reviewer, load Loader, mode model.Mode, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		reviewer:    reviewer,
		load:        load,
		mode:        mode,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the given document paths concurrently.
// Cancelling ctx stops the workers; already-queued documents are
// dropped rather than analyzed.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit concurrently with collection. Wait drains results as
	// workers produce them, so a manifest larger than the channel
	// buffers cannot wedge the queue.
	go func() {
		defer pool.Finish()
		for _, path := range paths {
			pool.Submit(&DocumentJob{
				Path:     path,
				Mode:     b.mode,
				Reviewer: b.reviewer,
				Load:     b.load,
			})
		}
	}()

	results := pool.Wait()

	docResults := make([]*DocumentResult, len(results))
	for i, result := range results {
		docResults[i] = result.(*DocumentResult)
	}

	return docResults
}

// ProcessFile reads document paths from a manifest file (one per line)
// and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, manifestPath string) ([]*DocumentResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line),
// skipping blanks, comments and duplicates
func ReadPathsFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
