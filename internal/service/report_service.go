package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hirewire/ledger-service/internal/model"
	"github.com/hirewire/ledger-service/internal/repository"
)

const (
	// defaultBestClientsLimit matches the admin endpoint's documented default.
	defaultBestClientsLimit = 2

	// defaultExportClientLimit bounds the top-clients table in exported reports.
	defaultExportClientLimit = 10
)

// ExcelGenerator renders an earnings report as an XLSX workbook.
type ExcelGenerator interface {
	Generate(report *model.EarningsReport) ([]byte, error)
}

// PDFGenerator renders an earnings report as a PDF document.
type PDFGenerator interface {
	Generate(report *model.EarningsReport) ([]byte, error)
}

// ExportInput describes the reporting period and table sizing for an export.
type ExportInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	ClientLimit int
}

// ExportResult carries a rendered report file and its download name.
type ExportResult struct {
	FileName string
	Content  []byte
}

type ReportService struct {
	repo  *repository.ReportRepository
	excel ExcelGenerator
	pdf   PDFGenerator
}

func NewReportService(repo *repository.ReportRepository, excel ExcelGenerator, pdf PDFGenerator) *ReportService {
	return &ReportService{repo: repo, excel: excel, pdf: pdf}
}

// BestProfession returns the profession that earned the most from jobs paid
// within [start, end], both bounds inclusive. Ties break alphabetically.
func (s *ReportService) BestProfession(ctx context.Context, start, end time.Time) (*model.ProfessionEarnings, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	rows, err := s.repo.EarningsByProfession(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("earnings by profession: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	top := rows[0]
	return &top, nil
}

// BestClients returns the clients who paid the most within [start, end], both
// bounds inclusive, highest spender first. A non-positive limit falls back to
// the default of two.
func (s *ReportService) BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientSpend, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBestClientsLimit
	}

	clients, err := s.repo.SpendingByClient(ctx, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("spending by client: %w", err)
	}
	return clients, nil
}

// ExportEarnings renders the earnings report for the period as an XLSX workbook.
func (s *ReportService) ExportEarnings(ctx context.Context, input ExportInput) (*ExportResult, error) {
	report, err := s.buildReport(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, fmt.Errorf("render xlsx report: %w", err)
	}

	return &ExportResult{
		FileName: buildFileName(report, "xlsx"),
		Content:  content,
	}, nil
}

// ExportEarningsPDF renders the earnings report for the period as a PDF document.
func (s *ReportService) ExportEarningsPDF(ctx context.Context, input ExportInput) (*ExportResult, error) {
	report, err := s.buildReport(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(report)
	if err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}

	return &ExportResult{
		FileName: buildFileName(report, "pdf"),
		Content:  content,
	}, nil
}

// buildReport aggregates the period's figures. Export periods are date
// granular: the window runs from the start of the first day to the last
// instant of the final day.
func (s *ReportService) buildReport(ctx context.Context, input ExportInput) (*model.EarningsReport, error) {
	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return nil, fmt.Errorf("%w: period start and end are required", ErrInvalidInput)
	}

	periodStart := dateOnly(input.PeriodStart)
	periodEnd := dateOnly(input.PeriodEnd)
	if periodStart.After(periodEnd) {
		return nil, fmt.Errorf("%w: period start is after period end", ErrInvalidInput)
	}
	windowEnd := periodEnd.AddDate(0, 0, 1).Add(-time.Nanosecond)

	limit := input.ClientLimit
	if limit <= 0 {
		limit = defaultExportClientLimit
	}

	professions, err := s.repo.EarningsByProfession(ctx, periodStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("earnings by profession: %w", err)
	}
	clients, err := s.repo.SpendingByClient(ctx, periodStart, windowEnd, limit)
	if err != nil {
		return nil, fmt.Errorf("spending by client: %w", err)
	}
	totalPaid, err := s.repo.SumPaidInWindow(ctx, periodStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("sum paid in window: %w", err)
	}

	return &model.EarningsReport{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Professions: professions,
		Clients:     clients,
		TotalPaid:   totalPaid,
	}, nil
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start is after end", ErrInvalidInput)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func buildFileName(report *model.EarningsReport, ext string) string {
	return fmt.Sprintf("earnings-%s-%s.%s",
		report.PeriodStart.Format("20060102"),
		report.PeriodEnd.Format("20060102"),
		ext,
	)
}
