package controllers

import (
	"net/http"

	"publication-metrics-api/models"
	"publication-metrics-api/services"
	"publication-metrics-api/utils"

	"github.com/gin-gonic/gin"
)

type JournalController struct {
	catalog *services.CatalogService
}

func NewJournalController(catalog *services.CatalogService) *JournalController {
	return &JournalController{catalog: catalog}
}

type journalRequest struct {
	Name         string   `json:"name"`
	ISSN         *string  `json:"issn"`
	ImpactFactor *float64 `json:"impact_factor"`
	Quartile     *string  `json:"quartile"`
	Type         string   `json:"type"`
	ImageURL     *string  `json:"image_url"`
}

func (r *journalRequest) toModel() *models.Journal {
	return &models.Journal{
		Name:         utils.SanitizeInput(r.Name),
		ISSN:         r.ISSN,
		ImpactFactor: r.ImpactFactor,
		Quartile:     r.Quartile,
		Type:         utils.SanitizeInput(r.Type),
		ImageURL:     r.ImageURL,
	}
}

// GET /journals
func (ctl *JournalController) List(c *gin.Context) {
	journals, err := ctl.catalog.ListJournals()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": journals})
}

// GET /journals/:id
func (ctl *JournalController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	journal, err := ctl.catalog.GetJournal(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": journal})
}

// POST /journals
func (ctl *JournalController) Create(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	journal := req.toModel()
	if err := ctl.catalog.CreateJournal(journal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": journal})
}

// PUT /journals/:id
func (ctl *JournalController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	journal := req.toModel()
	if err := ctl.catalog.UpdateJournal(id, journal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": journal})
}

// DELETE /journals/:id
func (ctl *JournalController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctl.catalog.DeleteJournal(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
