package controllers

import (
	"net/http"
	"strings"

	"publication-metrics-api/services"

	"github.com/gin-gonic/gin"
)

type ExtractionController struct {
	extraction *services.ExtractionService
}

func NewExtractionController(extraction *services.ExtractionService) *ExtractionController {
	return &ExtractionController{extraction: extraction}
}

// POST /parse_publication
// Body: { "text": "<pasted citation>" }
func (ctl *ExtractionController) ParsePublication(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "text is required"})
		return
	}

	extracted, err := ctl.extraction.Parse(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authors":            extracted.Authors,
		"title":              extracted.Title,
		"year":               extracted.Year,
		"doi":                extracted.DOI,
		"matched_journal_id": extracted.MatchedJournalID,
	})
}
