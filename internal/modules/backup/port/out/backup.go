package out

import "context"

// ReportWriter renders a finished day report to durable storage and
// returns where it landed.
type ReportWriter interface {
	Write(ctx context.Context, date string, meta map[string]any, body string) (string, error)
}
