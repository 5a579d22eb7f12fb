// Package report downloads the manager CSV reports and saves each one under
// its generated filename.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/frahmantamala/expense-dashboard/internal"
)

// Downloader fetches raw report bytes from a report endpoint path.
type Downloader interface {
	DownloadReport(ctx context.Context, path string) ([]byte, error)
}

type Generator struct {
	client Downloader
	dir    string
	logger *slog.Logger
}

func NewGenerator(client Downloader, dir string, logger *slog.Logger) *Generator {
	if dir == "" {
		dir = "."
	}
	return &Generator{client: client, dir: dir, logger: logger}
}

// All downloads the full expense report.
func (g *Generator) All(ctx context.Context) (string, error) {
	return g.fetch(ctx, "/api/reports/expenses/csv", "all_expenses_report.csv")
}

// Pending downloads the pending-only report.
func (g *Generator) Pending(ctx context.Context) (string, error) {
	return g.fetch(ctx, "/api/reports/expenses/pending/csv", "pending_expenses_report.csv")
}

// ByEmployee downloads one employee's report. The id must be present; the
// check happens before any request is issued.
func (g *Generator) ByEmployee(ctx context.Context, employeeID string) (string, error) {
	if employeeID == "" {
		return "", internal.NewValidationError("Please enter an employee ID", internal.ErrCodeMissingParameter)
	}
	path := fmt.Sprintf("/api/reports/expenses/employee/%s/csv", url.PathEscape(employeeID))
	return g.fetch(ctx, path, fmt.Sprintf("employee_%s_report.csv", employeeID))
}

// ByCategory downloads a category report.
func (g *Generator) ByCategory(ctx context.Context, category string) (string, error) {
	if category == "" {
		return "", internal.NewValidationError("Please enter a category", internal.ErrCodeMissingParameter)
	}
	path := fmt.Sprintf("/api/reports/expenses/category/%s/csv", url.PathEscape(category))
	return g.fetch(ctx, path, fmt.Sprintf("category_%s_report.csv", category))
}

// DateRange downloads a report bounded by start and end dates; both are
// required.
func (g *Generator) DateRange(ctx context.Context, startDate, endDate string) (string, error) {
	if startDate == "" || endDate == "" {
		return "", internal.NewValidationError("Please select both start and end dates", internal.ErrCodeMissingParameter)
	}
	path := fmt.Sprintf("/api/reports/expenses/daterange/csv?startDate=%s&endDate=%s",
		url.QueryEscape(startDate), url.QueryEscape(endDate))
	return g.fetch(ctx, path, fmt.Sprintf("expenses_%s_to_%s_report.csv", startDate, endDate))
}

// fetch downloads one report and writes it to the output directory, returning
// the saved file path.
func (g *Generator) fetch(ctx context.Context, path, filename string) (string, error) {
	data, err := g.client.DownloadReport(ctx, path)
	if err != nil {
		g.logger.Error("report download failed", "path", path, "error", err)
		return "", err
	}

	dest := filepath.Join(g.dir, filename)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		g.logger.Error("failed to save report", "file", dest, "error", err)
		return "", internal.NewTransportError(fmt.Errorf("failed to save report: %w", err))
	}

	g.logger.Info("report saved", "file", dest, "bytes", len(data),
		"username", internal.UsernameFromContext(ctx))
	return dest, nil
}
