// file: internal/server/error_handler.go
// version: 1.1.0
// guid: 8f0b2d4e-6a9c-41f5-87b3-1d3f5a7c9e40

package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse provides a consistent error response format
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Status int    `json:"status"`
}

// SuccessResponse provides a consistent success response format
type SuccessResponse struct {
	Data  any `json:"data,omitempty"`
	Count int `json:"count,omitempty"`
}

// RespondWithError sends a standardized error response and logs the error
func RespondWithError(c *gin.Context, statusCode int, message string, code string) {
	logErrorWithContext(c, statusCode, message)

	c.JSON(statusCode, ErrorResponse{
		Error:  message,
		Code:   code,
		Status: statusCode,
	})
}

// RespondWithBadRequest sends a 400 Bad Request error response
func RespondWithBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message, "BAD_REQUEST")
}

// RespondWithValidationError sends a 400 error for validation failures
func RespondWithValidationError(c *gin.Context, field string, reason string) {
	message := "validation error: " + field
	if reason != "" {
		message = message + " (" + reason + ")"
	}
	RespondWithError(c, http.StatusBadRequest, message, "VALIDATION_ERROR")
}

// RespondWithNotFound sends a 404 Not Found error response
func RespondWithNotFound(c *gin.Context, resourceType string, id string) {
	message := resourceType + " not found"
	if id != "" {
		message = message + ": " + id
	}
	RespondWithError(c, http.StatusNotFound, message, "NOT_FOUND")
}

// RespondWithInternalError sends a 500 Internal Server Error response
func RespondWithInternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// RespondWithBadGateway sends a 502 error for failed upstream calls
func RespondWithBadGateway(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadGateway, message, "UPSTREAM_ERROR")
}

// RespondWithSuccess sends a successful response with data
func RespondWithSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, SuccessResponse{
		Data: data,
	})
}

// RespondWithList sends a successful list response
func RespondWithList(c *gin.Context, items any, count int) {
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": count,
	})
}

// RespondWithCreated sends a 201 Created response
func RespondWithCreated(c *gin.Context, data any) {
	RespondWithSuccess(c, http.StatusCreated, data)
}

// RespondWithOK sends a 200 OK response
func RespondWithOK(c *gin.Context, data any) {
	RespondWithSuccess(c, http.StatusOK, data)
}

// RespondWithNoContent sends a 204 No Content response
func RespondWithNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// logErrorWithContext logs an error with request context for debugging
func logErrorWithContext(c *gin.Context, statusCode int, message string) {
	method := c.Request.Method
	path := c.Request.URL.Path
	clientIP := c.ClientIP()

	logLevel := "WARNING"
	if statusCode >= 500 {
		logLevel = "ERROR"
	}

	log.Printf("[%s] %s %s %d - %s (from %s)", logLevel, method, path, statusCode, message, clientIP)
}

// HandleBindError handles JSON binding errors with a consistent response
func HandleBindError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "required") || strings.Contains(errMsg, "binding") {
		RespondWithValidationError(c, "request body", errMsg)
	} else {
		RespondWithBadRequest(c, "invalid request: "+errMsg)
	}
	return true
}

// ParseQueryInt parses an integer query parameter with a default value
func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.DefaultQuery(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
