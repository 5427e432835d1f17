package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
	"github.com/noah-isme/tutoring-api/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type classSearcher interface {
	Search(ctx context.Context, query dto.SearchClassesQuery) ([]models.ClassListing, error)
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders class search results as CSV or PDF.
type ExportService struct {
	classes   classSearcher
	renderCSV func(export.Table) ([]byte, error)
	renderPDF func(export.Table, string) ([]byte, error)
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(classes classSearcher, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		classes:   classes,
		renderCSV: export.RenderCSV,
		renderPDF: export.RenderPDF,
		logger:    logger,
		now:       time.Now,
	}
}

// Export runs the class search and renders the matches in the requested format.
func (s *ExportService) Export(ctx context.Context, query dto.ExportClassesQuery) (*ExportResult, error) {
	format := strings.ToLower(strings.TrimSpace(query.Format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	listings, err := s.classes.Search(ctx, query.SearchClassesQuery)
	if err != nil {
		return nil, err
	}
	table := classTable(listings)

	stamp := s.now().UTC().Format("20060102-150405")
	result := &ExportResult{Filename: fmt.Sprintf("classes-%s.%s", stamp, format)}
	switch format {
	case ExportFormatPDF:
		result.ContentType = "application/pdf"
		result.Body, err = s.renderPDF(table, exportTitle(query.SearchClassesQuery))
	default:
		result.ContentType = "text/csv"
		result.Body, err = s.renderCSV(table)
	}
	if err != nil {
		s.logger.Error("render class export", zap.String("format", format), zap.Int("rows", len(listings)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return result, nil
}

func classTable(listings []models.ClassListing) export.Table {
	table := export.Table{
		Columns: []string{"class_id", "subject", "cost", "tutor", "whatsapp"},
		Rows:    make([][]string, 0, len(listings)),
	}
	for _, item := range listings {
		table.Rows = append(table.Rows, []string{
			item.ID,
			item.Subject,
			strconv.FormatFloat(item.Cost, 'f', 2, 64),
			item.Name,
			item.Whatsapp,
		})
	}
	return table
}

func exportTitle(query dto.SearchClassesQuery) string {
	return fmt.Sprintf("%s classes, week day %s at %s", strings.TrimSpace(query.Subject), strings.TrimSpace(query.WeekDay), strings.TrimSpace(query.Time))
}
