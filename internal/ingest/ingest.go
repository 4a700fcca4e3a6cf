package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/magnusgp/fermatter/internal/model"
)

// LoadDocument reads a document from disk into plain text. HTML files are
// reduced to their visible text; everything else is read as-is.
func LoadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ExtractText(string(data))
	default:
		return string(data), nil
	}
}

// ExtractText extracts visible text from HTML, skipping scripts/styles.
// Block elements close a paragraph so downstream segmentation sees the
// same boundaries a reader would.
func ExtractText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip script, style, noscript tags
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			buf.WriteString("\n\n")
		}
	}

	walk(doc)

	return collapseBlankRuns(buf.String()), nil
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "section", "article", "li", "blockquote", "pre",
		"h1", "h2", "h3", "h4", "h5", "h6", "br", "tr":
		return true
	}
	return false
}

// collapseBlankRuns trims trailing spaces per line and collapses runs of
// blank lines into a single paragraph break.
func collapseBlankRuns(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// LoadSnapshots reads earlier drafts from a directory, one snapshot per
// file. Timestamps come from the filename stem when it parses as a date,
// otherwise from the file's modification time. Files are ordered by name
// so repeated runs see the same sequence.
func LoadSnapshots(dir string) ([]model.Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md", ".html", ".htm":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var snapshots []model.Snapshot
	for _, name := range names {
		path := filepath.Join(dir, name)
		text, err := LoadDocument(path)
		if err != nil {
			return nil, err
		}

		ts := timestampFromName(name)
		if ts == "" {
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat snapshot: %w", err)
			}
			ts = info.ModTime().UTC().Format(time.RFC3339)
		}

		snapshots = append(snapshots, model.Snapshot{TS: ts, Text: text})
	}

	return snapshots, nil
}

// timestampFromName parses a timestamp out of a snapshot filename stem,
// e.g. "2026-01-15T10-30-00.txt" or "2026-01-15.md".
func timestampFromName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	// Colons are not filesystem-safe, so accept dashes in the time part.
	candidate := stem
	if len(stem) > 10 && stem[10] == 'T' {
		candidate = stem[:10] + "T" + strings.ReplaceAll(stem[11:], "-", ":")
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, candidate); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}
