package report_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/internal/report"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

type stubDownloader struct {
	paths []string
	data  []byte
	err   error
}

func (s *stubDownloader) DownloadReport(ctx context.Context, path string) ([]byte, error) {
	s.paths = append(s.paths, path)
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

var _ = Describe("Generator", func() {
	var (
		dl  *stubDownloader
		dir string
		gen *report.Generator
		ctx context.Context
	)

	BeforeEach(func() {
		dl = &stubDownloader{data: []byte("id,amount\n1,12.50\n")}
		dir = GinkgoT().TempDir()
		gen = report.NewGenerator(dl, dir, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
		ctx = context.Background()
	})

	Describe("All", func() {
		It("saves the full report under its fixed filename", func() {
			path, err := gen.All(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(filepath.Join(dir, "all_expenses_report.csv")))
			Expect(dl.paths).To(Equal([]string{"/api/reports/expenses/csv"}))

			saved, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(Equal(dl.data))
		})
	})

	Describe("Pending", func() {
		It("hits the pending endpoint", func() {
			path, err := gen.Pending(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Base(path)).To(Equal("pending_expenses_report.csv"))
			Expect(dl.paths).To(Equal([]string{"/api/reports/expenses/pending/csv"}))
		})
	})

	Describe("ByEmployee", func() {
		It("requires an id before any request is issued", func() {
			_, err := gen.ByEmployee(ctx, "")

			Expect(dl.paths).To(BeEmpty())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Message).To(Equal("Please enter an employee ID"))
		})

		It("embeds the id in both the endpoint and the filename", func() {
			path, err := gen.ByEmployee(ctx, "5")

			Expect(err).NotTo(HaveOccurred())
			Expect(dl.paths).To(Equal([]string{"/api/reports/expenses/employee/5/csv"}))
			Expect(filepath.Base(path)).To(Equal("employee_5_report.csv"))
		})
	})

	Describe("ByCategory", func() {
		It("requires a category before any request is issued", func() {
			_, err := gen.ByCategory(ctx, "")

			Expect(dl.paths).To(BeEmpty())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Message).To(Equal("Please enter a category"))
		})

		It("escapes the category in the endpoint path", func() {
			_, err := gen.ByCategory(ctx, "travel & lodging")

			Expect(err).NotTo(HaveOccurred())
			Expect(dl.paths[0]).To(Equal("/api/reports/expenses/category/travel%20&%20lodging/csv"))
		})
	})

	Describe("DateRange", func() {
		It("requires both bounds", func() {
			_, err := gen.DateRange(ctx, "2024-01-01", "")

			Expect(dl.paths).To(BeEmpty())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Message).To(Equal("Please select both start and end dates"))
		})

		It("passes both bounds as query parameters", func() {
			path, err := gen.DateRange(ctx, "2024-01-01", "2024-01-31")

			Expect(err).NotTo(HaveOccurred())
			Expect(dl.paths[0]).To(Equal("/api/reports/expenses/daterange/csv?startDate=2024-01-01&endDate=2024-01-31"))
			Expect(filepath.Base(path)).To(Equal("expenses_2024-01-01_to_2024-01-31_report.csv"))
		})
	})

	Describe("failures", func() {
		It("propagates download errors without writing anything", func() {
			dl.err = internal.NewTransportError(errors.New("refused"))

			_, err := gen.All(ctx)

			Expect(err).To(HaveOccurred())
			entries, readErr := os.ReadDir(dir)
			Expect(readErr).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})
})
