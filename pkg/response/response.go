// Package response writes the standard {success, message, ...} API body.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func write(c *gin.Context, status int, success bool, message string, extra gin.H) {
	body := gin.H{
		"success": success,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK sends a 200 success response.
func OK(c *gin.Context, message string) {
	write(c, http.StatusOK, true, message, nil)
}

// OKWith sends a 200 success response with extra payload fields.
func OKWith(c *gin.Context, message string, extra gin.H) {
	write(c, http.StatusOK, true, message, extra)
}

// Created sends a 201 success response.
func Created(c *gin.Context, message string) {
	write(c, http.StatusCreated, true, message, nil)
}

// Taken reports a negative availability answer. Not an error: the request was
// well-formed and answered, so the status stays 200.
func Taken(c *gin.Context, message string) {
	write(c, http.StatusOK, false, message, nil)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	write(c, http.StatusBadRequest, false, message, nil)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	write(c, http.StatusUnauthorized, false, message, nil)
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	write(c, http.StatusForbidden, false, message, nil)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	write(c, http.StatusNotFound, false, message, nil)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, message string) {
	write(c, http.StatusInternalServerError, false, message, nil)
}
