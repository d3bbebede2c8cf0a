package controllers

import (
	"net/http"

	"Roomio/pkg/apperror"
	"Roomio/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError writes err as {"error": msg} with the status its code maps to.
func respondError(c *gin.Context, err error) {
	status, msg := classify(c, err)
	c.JSON(status, gin.H{"error": msg})
}

// respondFailure is respondError for endpoints whose success body carries a
// "success" flag.
func respondFailure(c *gin.Context, err error) {
	status, msg := classify(c, err)
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func classify(c *gin.Context, err error) (int, string) {
	status := apperror.HTTPStatus(apperror.CodeOf(err))
	if status >= http.StatusInternalServerError {
		logger.Error("Handler failed", "path", c.FullPath(), "error", err)
	}
	return status, apperror.PublicMessage(err)
}

func invalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}
