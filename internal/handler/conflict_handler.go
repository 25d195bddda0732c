package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/dto"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/middleware"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/service"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/response"
)

type conflictReporter interface {
	Report(ctx context.Context, preferCached bool) (*models.ConflictReport, bool, error)
}

type conflictExporter interface {
	RenderConflicts(report *models.ConflictReport, format string) (*service.ExportedFile, error)
}

// ConflictHandler serves conflict sweeps and their exports.
type ConflictHandler struct {
	reporter  conflictReporter
	exporter  conflictExporter
	validator *validator.Validate
}

// NewConflictHandler constructs a conflict handler.
func NewConflictHandler(reporter conflictReporter, exporter conflictExporter) *ConflictHandler {
	return &ConflictHandler{reporter: reporter, exporter: exporter, validator: validator.New()}
}

// List godoc
// @Summary Detect scheduling conflicts
// @Description Runs a sweep over upcoming blocking bookings, or returns the latest cached sweep when cached=true.
// @Tags Conflicts
// @Produce json
// @Param cached query bool false "Serve the latest cached sweep when available"
// @Param severity query string false "Only return conflicts of this severity" Enums(low, medium, high)
// @Success 200 {object} response.Envelope
// @Router /conflicts [get]
func (h *ConflictHandler) List(c *gin.Context) {
	var query dto.ConflictReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	if err := h.validator.Struct(query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	report, cached, err := h.reporter.Report(c.Request.Context(), query.Cached)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, buildConflictResponse(report, cached, models.ConflictSeverity(query.Severity)), middleware.Meta(c))
}

// Export godoc
// @Summary Export detected conflicts
// @Tags Conflicts
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Param cached query bool false "Export the latest cached sweep when available"
// @Success 200 {file} file
// @Router /conflicts/export [get]
func (h *ConflictHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", service.ExportFormatCSV))
	preferCached := c.Query("cached") == "true"
	report, _, err := h.reporter.Report(c.Request.Context(), preferCached)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.RenderConflicts(report, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func buildConflictResponse(report *models.ConflictReport, cached bool, severity models.ConflictSeverity) dto.ConflictReportResponse {
	counts := report.CountBySeverity()
	bySeverity := map[string]int{
		string(models.SeverityLow):    counts[models.SeverityLow],
		string(models.SeverityMedium): counts[models.SeverityMedium],
		string(models.SeverityHigh):   counts[models.SeverityHigh],
	}
	conflicts := make([]models.ConflictRecord, 0, len(report.Conflicts))
	for _, record := range report.Conflicts {
		if severity != "" && record.Severity != severity {
			continue
		}
		conflicts = append(conflicts, record)
	}
	return dto.ConflictReportResponse{
		GeneratedAt: report.GeneratedAt,
		Scanned:     report.Scanned,
		Total:       len(report.Conflicts),
		BySeverity:  bySeverity,
		Conflicts:   conflicts,
		Cached:      cached,
	}
}
