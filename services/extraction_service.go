package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultChatBaseURL = "https://api.openai.com/v1"

// ExtractionService turns pasted citation text into structured publication
// metadata by delegating the parsing to a chat-completions model and matching
// the extracted journal name against the catalog.
type ExtractionService struct {
	catalog *CatalogService
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewExtractionService(catalog *CatalogService) *ExtractionService {
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultChatBaseURL
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &ExtractionService{
		catalog: catalog,
		client:  &http.Client{Timeout: 60 * time.Second},
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ExtractedPublication is the strictly-typed result of a parse call.
// MatchedJournalID is nil when the extracted journal name resolves to no
// catalog entry.
type ExtractedPublication struct {
	Authors          string `json:"authors"`
	Title            string `json:"title"`
	Year             int    `json:"year"`
	DOI              string `json:"doi"`
	JournalName      string `json:"journal_name"`
	MatchedJournalID *uint  `json:"matched_journal_id"`
}

// Parse extracts publication metadata from free citation text. The journal
// catalog doubles as the allow-list sent to the model; matching back is a
// case-insensitive exact comparison, never fuzzy.
func (s *ExtractionService) Parse(ctx context.Context, text string) (*ExtractedPublication, error) {
	journals, err := s.catalog.ListJournals()
	if err != nil {
		return nil, fmt.Errorf("%w: load journal allow-list: %v", ErrExtraction, err)
	}

	names := make([]string, 0, len(journals))
	for _, j := range journals {
		names = append(names, j.Name)
	}

	content, err := s.complete(ctx, buildExtractionPrompt(text, names))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Authors     string `json:"authors"`
		Title       string `json:"title"`
		Year        int    `json:"year"`
		DOI         string `json:"doi"`
		JournalName string `json:"journal_name"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode model output: %v", ErrExtraction, err)
	}

	result := &ExtractedPublication{
		Authors:     strings.TrimSpace(parsed.Authors),
		Title:       strings.TrimSpace(parsed.Title),
		Year:        parsed.Year,
		DOI:         strings.TrimSpace(parsed.DOI),
		JournalName: strings.TrimSpace(parsed.JournalName),
	}
	if result.JournalName != "" {
		for _, j := range journals {
			if strings.EqualFold(j.Name, result.JournalName) {
				id := j.ID
				result.MatchedJournalID = &id
				break
			}
		}
	}
	return result, nil
}

func (s *ExtractionService) complete(ctx context.Context, prompt string) (string, error) {
	payload, _ := json.Marshal(map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a bibliographic metadata extractor. Reply with a single JSON object and nothing else."},
			{"role": "user", "content": prompt},
		},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrExtraction, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: chat completion request: %v", ErrExtraction, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: chat completion error %d: %s", ErrExtraction, resp.StatusCode, string(body))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode chat response: %v", ErrExtraction, err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: model returned no content", ErrExtraction)
	}
	return parsed.Choices[0].Message.Content, nil
}

func buildExtractionPrompt(text string, journalNames []string) string {
	var b strings.Builder
	b.WriteString("Extract the publication metadata from the citation below. ")
	b.WriteString(`Return a JSON object with exactly these keys: "authors" (string), "title" (string), "year" (integer), "doi" (string, empty if absent), "journal_name" (string). `)
	b.WriteString("journal_name must be copied verbatim from the known journals list if the citation's journal appears there; otherwise set it to an empty string.\n\n")
	b.WriteString("Known journals:\n")
	for _, name := range journalNames {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("\nCitation:\n")
	b.WriteString(text)
	return b.String()
}

// stripCodeFence tolerates models that wrap the JSON object in a markdown
// code block despite being told not to.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
