package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	backupout "pomo/internal/modules/backup/port/out"
	"pomo/internal/platform/markdown"
	"pomo/internal/platform/slug"
)

// FileReportWriter renders day reports as markdown with YAML
// frontmatter under <data>/reports/.
type FileReportWriter struct {
	basePath string
}

func NewFileReportWriter(dataPath string) backupout.ReportWriter {
	return &FileReportWriter{basePath: filepath.Join(dataPath, "reports")}
}

func (w *FileReportWriter) Write(ctx context.Context, date string, meta map[string]any, body string) (string, error) {
	if err := os.MkdirAll(w.basePath, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	content, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.basePath, slug.Make(date+" day report")+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
