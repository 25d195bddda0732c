package service

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/export"
)

// Export formats accepted by the conflict export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportedFile is a rendered report ready to stream.
type ExportedFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders conflict reports as CSV or PDF.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the default exporters.
func NewExportService(csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger}
}

// RenderConflicts renders report in format.
func (s *ExportService) RenderConflicts(report *models.ConflictReport, format string) (*ExportedFile, error) {
	if report == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no conflict report available")
	}
	table := ConflictTable(report)
	stamp := report.GeneratedAt.UTC().Format("20060102-150405")
	switch strings.ToLower(format) {
	case "", ExportFormatCSV:
		content, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportedFile{Filename: "conflicts-" + stamp + ".csv", ContentType: "text/csv", Content: content}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportedFile{Filename: "conflicts-" + stamp + ".pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// ConflictTable flattens a report into export rows, one per conflict.
func ConflictTable(report *models.ConflictReport) export.Table {
	table := export.Table{
		Title:   "Scheduling conflicts " + report.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"),
		Columns: []string{"Kind", "Severity", "Resource", "Date", "Booking A", "Booking B", "Suggestions"},
	}
	for _, c := range report.Conflicts {
		bookingB := ""
		if c.BookingB != nil {
			bookingB = bookingLabel(*c.BookingB)
		}
		table.Rows = append(table.Rows, []string{
			string(c.Kind),
			string(c.Severity),
			c.Resource.String(),
			c.Date.Format("2006-01-02"),
			bookingLabel(c.BookingA),
			bookingB,
			strings.Join(c.Suggestions, "; "),
		})
	}
	return table
}

func bookingLabel(ref models.BookingRef) string {
	return "#" + strconv.FormatInt(ref.ID, 10) + " " + ref.Start.String() + "-" + ref.End.String()
}
