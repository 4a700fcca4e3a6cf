package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/magnusgp/fermatter/internal/model"
)

// fakeReviewer returns a canned response and records the texts it saw.
type fakeReviewer struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeReviewer) Analyze(ctx context.Context, req model.AnalyzeRequest) *model.AnalyzeResponse {
	f.mu.Lock()
	f.texts = append(f.texts, req.Text)
	f.mu.Unlock()
	return &model.AnalyzeResponse{
		Meta: model.Meta{ParagraphCount: 1},
	}
}

func memoryLoader(docs map[string]string) Loader {
	return func(path string) (string, error) {
		text, ok := docs[path]
		if !ok {
			return "", errors.New("no such document")
		}
		return text, nil
	}
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	docs := map[string]string{
		"a.txt": "First essay.",
		"b.txt": "Second essay.",
		"c.txt": "Third essay.",
	}
	reviewer := &fakeReviewer{}
	bp := NewBatchProcessor(reviewer, memoryLoader(docs), model.ModeScientific, 2)

	results := bp.ProcessPaths(context.Background(), []string{"a.txt", "b.txt", "c.txt"})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: unexpected error: %v", r.Path, r.Error)
		}
		if r.Result == nil {
			t.Errorf("%s: missing analysis result", r.Path)
		}
	}
}

func TestBatchProcessor_LoadFailure(t *testing.T) {
	docs := map[string]string{"a.txt": "Fine."}
	bp := NewBatchProcessor(&fakeReviewer{}, memoryLoader(docs), model.ModeScientific, 1)

	results := bp.ProcessPaths(context.Background(), []string{"a.txt", "missing.txt"})

	var failed *DocumentResult
	for _, r := range results {
		if r.Path == "missing.txt" {
			failed = r
		}
	}
	if failed == nil {
		t.Fatal("expected a result for missing.txt")
	}
	if failed.Error == nil {
		t.Error("expected load error for missing.txt")
	}
	if !strings.Contains(failed.Error.Error(), "load document") {
		t.Errorf("unexpected error message: %v", failed.Error)
	}
}

func TestBatchProcessor_ManifestLargerThanWorkerBuffers(t *testing.T) {
	// A manifest several times larger than the pool's channel buffers.
	// Submission must overlap with collection or this wedges.
	docs := make(map[string]string, 50)
	paths := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		path := fmt.Sprintf("doc-%02d.txt", i)
		docs[path] = "An essay."
		paths = append(paths, path)
	}

	bp := NewBatchProcessor(&fakeReviewer{}, memoryLoader(docs), model.ModeScientific, 2)

	done := make(chan []*DocumentResult, 1)
	go func() { done <- bp.ProcessPaths(context.Background(), paths) }()

	select {
	case results := <-done:
		if len(results) != 50 {
			t.Errorf("expected 50 results, got %d", len(results))
		}
		for _, r := range results {
			if r.Error != nil {
				t.Errorf("%s: unexpected error: %v", r.Path, r.Error)
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("ProcessPaths did not finish with 50 paths and 2 workers")
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	docs := map[string]string{"a.txt": "Text."}
	paths := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		paths = append(paths, "a.txt")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bp := NewBatchProcessor(&fakeReviewer{}, memoryLoader(docs), model.ModeScientific, 2)

	done := make(chan struct{})
	go func() {
		bp.ProcessPaths(ctx, paths)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ProcessPaths did not return under a cancelled context")
	}
}

func TestBatchProcessor_EmptyPaths(t *testing.T) {
	bp := NewBatchProcessor(&fakeReviewer{}, memoryLoader(nil), model.ModeScientific, 2)
	results := bp.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "docs.txt")
	content := `# essays to review
a.txt

b.txt
a.txt
# trailing comment
c.txt
`
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(manifest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a.txt", "b.txt", "c.txt"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path %d: expected %q, got %q", i, p, paths[i])
		}
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	if _, err := ReadPathsFromFile("/nonexistent/manifest.txt"); err == nil {
		t.Error("expected error for missing manifest")
	}
}
