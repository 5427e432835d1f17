package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
)

// ErrorCodeHeader carries the machine readable error code alongside the legacy body.
const ErrorCodeHeader = "X-Error-Code"

// ErrorBody is the error contract shared with the legacy clients.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes data as the response body without an envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 and an empty body.
func Created(c *gin.Context) {
	c.Status(http.StatusCreated)
	c.Writer.WriteHeaderNow()
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.Header(ErrorCodeHeader, appErr.Code)
	c.AbortWithStatusJSON(appErr.Status, ErrorBody{Error: appErr.Message})
}

// Attachment streams a rendered file download.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
