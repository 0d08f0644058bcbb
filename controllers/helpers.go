package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"publication-metrics-api/services"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return 0, false
	}
	return uint(id64), true
}

// respondError maps service errors onto HTTP statuses. Infrastructure
// failures are logged with detail server-side and reported generically.
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "record not found"})
	case errors.Is(err, services.ErrJournalInUse):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "journal is still referenced by publications"})
	case errors.Is(err, services.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "startYear must not be greater than endYear"})
	case errors.Is(err, services.ErrExtraction):
		log.Printf("extraction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to parse publication text"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}
