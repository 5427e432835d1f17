package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/service"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
	"github.com/noah-isme/tutoring-api/pkg/response"
)

type classService interface {
	Search(ctx context.Context, query dto.SearchClassesQuery) ([]models.ClassListing, error)
	Register(ctx context.Context, req dto.RegisterClassRequest) (*models.ClassOffering, error)
	Schedule(ctx context.Context, id string) (*dto.ClassScheduleResponse, error)
}

type classExporter interface {
	Export(ctx context.Context, query dto.ExportClassesQuery) (*service.ExportResult, error)
}

// ClassHandler exposes class search and registration endpoints.
type ClassHandler struct {
	service  classService
	exporter classExporter
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc classService, exporter classExporter) *ClassHandler {
	return &ClassHandler{service: svc, exporter: exporter}
}

// Search godoc
// @Summary Search classes by availability
// @Tags Classes
// @Produce json
// @Param week_day query int true "Day of week, 0 = Sunday"
// @Param subject query string true "Subject"
// @Param time query string true "Time of day (HH:MM)"
// @Success 200 {array} models.ClassListing
// @Failure 400 {object} response.ErrorBody
// @Router /classes [get]
func (h *ClassHandler) Search(c *gin.Context) {
	var query dto.SearchClassesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.ErrInvalidFilters)
		return
	}
	listings, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, listings)
}

// Register godoc
// @Summary Register a tutor with one class and its weekly schedule
// @Tags Classes
// @Accept json
// @Param payload body dto.RegisterClassRequest true "Class payload"
// @Success 201
// @Failure 400 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Router /classes [post]
func (h *ClassHandler) Register(c *gin.Context) {
	var req dto.RegisterClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrInvalidClassPayload)
		return
	}
	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c)
}

// Schedule godoc
// @Summary Get a class with its weekly availability
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} dto.ClassScheduleResponse
// @Failure 404 {object} response.ErrorBody
// @Router /classes/{id}/schedule [get]
func (h *ClassHandler) Schedule(c *gin.Context) {
	schedule, err := h.service.Schedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// Export godoc
// @Summary Export matching classes
// @Tags Classes
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Param week_day query int true "Day of week, 0 = Sunday"
// @Param subject query string true "Subject"
// @Param time query string true "Time of day (HH:MM)"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /classes/export [get]
func (h *ClassHandler) Export(c *gin.Context) {
	var query dto.ExportClassesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.ErrInvalidFilters)
		return
	}
	result, err := h.exporter.Export(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
