package controllers

import (
	"net/http"

	"publication-metrics-api/models"
	"publication-metrics-api/services"
	"publication-metrics-api/utils"

	"github.com/gin-gonic/gin"
)

type PublicationController struct {
	catalog *services.CatalogService
}

func NewPublicationController(catalog *services.CatalogService) *PublicationController {
	return &PublicationController{catalog: catalog}
}

// Year and JournalID are pointers so that an absent field can be told apart
// from a legitimate zero; a non-numeric journal_id fails the bind.
type publicationRequest struct {
	Authors   string  `json:"authors"`
	Title     string  `json:"title"`
	Year      *int    `json:"year"`
	DOI       *string `json:"doi"`
	JournalID *uint   `json:"journal_id"`
}

func (r *publicationRequest) toModel(c *gin.Context) (*models.Publication, bool) {
	if r.Year == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "year: is required"})
		return nil, false
	}
	if r.JournalID == nil || *r.JournalID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "journal_id: must be a positive integer"})
		return nil, false
	}
	return &models.Publication{
		Authors:   utils.SanitizeInput(r.Authors),
		Title:     utils.SanitizeInput(r.Title),
		Year:      *r.Year,
		DOI:       r.DOI,
		JournalID: *r.JournalID,
	}, true
}

// GET /publications/:id
func (ctl *PublicationController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	publication, err := ctl.catalog.GetPublication(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": publication})
}

// POST /publications
func (ctl *PublicationController) Create(c *gin.Context) {
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	publication, ok := req.toModel(c)
	if !ok {
		return
	}
	if err := ctl.catalog.CreatePublication(publication); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": publication})
}

// PUT /publications/:id
func (ctl *PublicationController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	publication, reqOK := req.toModel(c)
	if !reqOK {
		return
	}
	if err := ctl.catalog.UpdatePublication(id, publication); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": publication})
}

// DELETE /publications/:id
func (ctl *PublicationController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctl.catalog.DeletePublication(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /publications_list
func (ctl *PublicationController) ListWithJournal(c *gin.Context) {
	rows, err := ctl.catalog.ListPublicationsWithJournal()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}
