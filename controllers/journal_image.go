package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /journals/:id/image
// Multipart field "file". Stores the cover image under the upload directory
// with a generated filename and records its public URL on the journal.
func (ctl *JournalController) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := ctl.catalog.GetJournal(id); err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no file uploaded"})
		return
	}

	maxSize := int64(5 * 1024 * 1024) // 5MB
	if file.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file size exceeds 5MB limit"})
		return
	}

	allowedTypes := map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".gif":  true,
		".webp": true,
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedTypes[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file type not allowed"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	journalDir := filepath.Join(uploadPath, "journals")
	if err := os.MkdirAll(journalDir, os.ModePerm); err != nil {
		respondError(c, err)
		return
	}

	storedName := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(journalDir, storedName)); err != nil {
		respondError(c, err)
		return
	}

	imageURL := "/uploads/journals/" + storedName
	if err := ctl.catalog.SetJournalImage(id, imageURL); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "image_url": imageURL})
}
