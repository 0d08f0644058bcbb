package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"publication-metrics-api/models"
	"publication-metrics-api/routes"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:routes_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Journal{}, &models.Publication{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	router := gin.New()
	routes.SetupRoutes(router, db)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createJournal(t *testing.T, router *gin.Engine, name, journalType string, impactFactor float64) uint {
	t.Helper()
	w := doJSON(t, router, "POST", "/journals", gin.H{
		"name": name, "type": journalType, "impact_factor": impactFactor,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create journal %q: status %d body %s", name, w.Code, w.Body.String())
	}
	var resp struct {
		Data models.Journal `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp.Data.ID
}

func createPublication(t *testing.T, router *gin.Engine, title string, year int, journalID uint) {
	t.Helper()
	w := doJSON(t, router, "POST", "/publications", gin.H{
		"authors": "Doe, J.", "title": title, "year": year, "journal_id": journalID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create publication %q: status %d body %s", title, w.Code, w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestJournalLifecycle(t *testing.T) {
	router, _ := setupTestRouter(t)

	id := createJournal(t, router, "Nature", "WOS", 17.9)

	w := doJSON(t, router, "GET", fmt.Sprintf("/journals/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get journal: status %d", w.Code)
	}

	w = doJSON(t, router, "PUT", fmt.Sprintf("/journals/%d", id), gin.H{
		"name": "Nature Communications", "type": "WOS",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update journal: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/journals", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list journals: status %d", w.Code)
	}
	var list struct {
		Data []models.Journal `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].Name != "Nature Communications" {
		t.Fatalf("unexpected list: %+v", list.Data)
	}

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/journals/%d", id), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete journal: status %d", w.Code)
	}

	w = doJSON(t, router, "GET", fmt.Sprintf("/journals/%d", id), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/journals/%d", id), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestCreateJournalInvalidType(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/journals", gin.H{"name": "IEEE Transactions", "type": "IEEE"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/journals", gin.H{"type": "WOS"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}
}

func TestDeleteJournalInUseConflict(t *testing.T) {
	router, _ := setupTestRouter(t)

	id := createJournal(t, router, "Science", "WOS", 0)
	createPublication(t, router, "Paper", 2021, id)

	w := doJSON(t, router, "DELETE", fmt.Sprintf("/journals/%d", id), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for journal in use, got %d", w.Code)
	}
}

func TestPublicationValidation(t *testing.T) {
	router, _ := setupTestRouter(t)

	// journal_id must parse to a number.
	w := doJSON(t, router, "POST", "/publications", gin.H{
		"authors": "Doe, J.", "title": "Paper", "year": 2021, "journal_id": "not-a-number",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric journal_id, got %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/publications", gin.H{
		"authors": "Doe, J.", "title": "Paper", "journal_id": 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing year, got %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/publications", gin.H{
		"authors": "Doe, J.", "title": "Paper", "year": 2021, "journal_id": 12345,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown journal, got %d", w.Code)
	}
}

func TestPublicationsListJoined(t *testing.T) {
	router, _ := setupTestRouter(t)

	wosID := createJournal(t, router, "Nature", "WOS", 17.9)
	scopusID := createJournal(t, router, "Heliyon", "SCOPUS", 4.0)
	createPublication(t, router, "Older", 2019, wosID)
	createPublication(t, router, "Newest", 2023, scopusID)

	w := doJSON(t, router, "GET", "/publications_list", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list publications: status %d", w.Code)
	}
	var resp struct {
		Data []models.PublicationWithJournal `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.Data))
	}
	if resp.Data[0].Title != "Newest" || resp.Data[0].JournalName == nil || *resp.Data[0].JournalName != "Heliyon" {
		t.Fatalf("unexpected first row: %+v", resp.Data[0])
	}
	if resp.Data[1].JournalType == nil || *resp.Data[1].JournalType != "WOS" {
		t.Fatalf("unexpected second row: %+v", resp.Data[1])
	}
}

func TestKPIEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	wosID := createJournal(t, router, "Nature", "WOS", 2.5)
	scopusID := createJournal(t, router, "Heliyon", "SCOPUS", 4.0)
	createPublication(t, router, "First", 2020, wosID)
	createPublication(t, router, "Second", 2020, wosID)
	createPublication(t, router, "Third", 2021, scopusID)

	w := doJSON(t, router, "GET", "/kpis?startYear=2020&endYear=2021", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("kpis: status %d body %s", w.Code, w.Body.String())
	}

	var report struct {
		YearlyBreakdown []struct {
			Year        int   `json:"year"`
			WOSCount    int64 `json:"wos_count"`
			ScopusCount int64 `json:"scopus_count"`
		} `json:"yearlyBreakdown"`
		RangeTotals struct {
			TotalPapers       int64   `json:"totalPapers"`
			TotalImpactFactor float64 `json:"totalImpactFactor"`
			TotalCiteScore    float64 `json:"totalCiteScore"`
		} `json:"rangeTotals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if len(report.YearlyBreakdown) != 2 {
		t.Fatalf("expected 2 breakdown rows, got %+v", report.YearlyBreakdown)
	}
	if report.YearlyBreakdown[0].Year != 2021 || report.YearlyBreakdown[0].ScopusCount != 1 || report.YearlyBreakdown[0].WOSCount != 0 {
		t.Fatalf("unexpected first row: %+v", report.YearlyBreakdown[0])
	}
	if report.YearlyBreakdown[1].Year != 2020 || report.YearlyBreakdown[1].WOSCount != 2 {
		t.Fatalf("unexpected second row: %+v", report.YearlyBreakdown[1])
	}
	if report.RangeTotals.TotalPapers != 3 {
		t.Fatalf("expected totalPapers 3, got %d", report.RangeTotals.TotalPapers)
	}
	if report.RangeTotals.TotalImpactFactor != 5.0 || report.RangeTotals.TotalCiteScore != 4.0 {
		t.Fatalf("unexpected totals: %+v", report.RangeTotals)
	}

	// Inverted range is rejected regardless of data.
	w = doJSON(t, router, "GET", "/kpis?startYear=2022&endYear=2020", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	// Missing bounds default to an effectively unbounded range.
	w = doJSON(t, router, "GET", "/kpis", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("kpis without range: status %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.RangeTotals.TotalPapers != 3 {
		t.Fatalf("expected all papers in default range, got %d", report.RangeTotals.TotalPapers)
	}
}

func TestJournalImageUpload(t *testing.T) {
	router, _ := setupTestRouter(t)
	t.Setenv("UPLOAD_PATH", t.TempDir())

	id := createJournal(t, router, "Nature", "WOS", 0)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "cover.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("\x89PNG\r\n\x1a\n"))
	mw.Close()

	req := httptest.NewRequest("POST", fmt.Sprintf("/journals/%d/image", id), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload image: status %d body %s", w.Code, w.Body.String())
	}

	var resp struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if !strings.HasPrefix(resp.ImageURL, "/uploads/journals/") || !strings.HasSuffix(resp.ImageURL, ".png") {
		t.Fatalf("unexpected image url: %q", resp.ImageURL)
	}

	got := doJSON(t, router, "GET", fmt.Sprintf("/journals/%d", id), nil)
	var journal struct {
		Data models.Journal `json:"data"`
	}
	if err := json.Unmarshal(got.Body.Bytes(), &journal); err != nil {
		t.Fatalf("decode journal: %v", err)
	}
	if journal.Data.ImageURL == nil || *journal.Data.ImageURL != resp.ImageURL {
		t.Fatalf("image url not stored on journal: %v", journal.Data.ImageURL)
	}
}

func TestParsePublicationEmptyText(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/parse_publication", gin.H{"text": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", w.Code)
	}
}
