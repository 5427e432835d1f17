package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
	"github.com/noah-isme/tutoring-api/pkg/export"
)

type classSearcherStub struct {
	listings []models.ClassListing
	err      error
	query    dto.SearchClassesQuery
}

func (s *classSearcherStub) Search(ctx context.Context, query dto.SearchClassesQuery) ([]models.ClassListing, error) {
	s.query = query
	return s.listings, s.err
}

func newExportServiceForTest(searcher classSearcher) *ExportService {
	svc := NewExportService(searcher, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC) }
	return svc
}

func exportQuery(format string) dto.ExportClassesQuery {
	return dto.ExportClassesQuery{
		SearchClassesQuery: dto.SearchClassesQuery{WeekDay: "1", Subject: "Math", Time: "08:30"},
		Format:             format,
	}
}

func TestExportServiceCSV(t *testing.T) {
	searcher := &classSearcherStub{listings: []models.ClassListing{
		{ID: "class-1", Subject: "Math", Cost: 80, TutorID: "tutor-1", Name: "Ana", Whatsapp: "5511999"},
	}}
	svc := newExportServiceForTest(searcher)

	result, err := svc.Export(context.Background(), exportQuery(""))
	require.NoError(t, err)
	assert.Equal(t, "classes-20240304-103000.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "class_id,subject,cost,tutor,whatsapp\nclass-1,Math,80.00,Ana,5511999\n", string(result.Body))
	assert.Equal(t, "Math", searcher.query.Subject)
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportServiceForTest(&classSearcherStub{listings: []models.ClassListing{}})

	result, err := svc.Export(context.Background(), exportQuery("PDF"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(result.Body, []byte("%PDF-")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	searcher := &classSearcherStub{}
	svc := newExportServiceForTest(searcher)

	_, err := svc.Export(context.Background(), exportQuery("xlsx"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Empty(t, searcher.query.Subject)
}

func TestExportServicePropagatesSearchErrors(t *testing.T) {
	svc := newExportServiceForTest(&classSearcherStub{err: appErrors.ErrMissingFilters})

	_, err := svc.Export(context.Background(), exportQuery("csv"))
	assert.ErrorIs(t, err, appErrors.ErrMissingFilters)
}

func TestExportServiceRenderFailure(t *testing.T) {
	svc := newExportServiceForTest(&classSearcherStub{listings: []models.ClassListing{}})
	svc.renderCSV = func(export.Table) ([]byte, error) { return nil, errors.New("disk full") }

	_, err := svc.Export(context.Background(), exportQuery("csv"))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}
