package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/Mawaqit/models"
)

const DefaultGeminiModel = "gemini-2.0-flash"

var ErrVerseSuggestionDisabled = errors.New("verse suggestion is not configured")

const verseSuggestionInstruction = `You are an assistant specializing in providing guidance from the Quran.
Suggest a relevant verse from the Quran that offers guidance or comfort for the user's challenge,
and give a brief explanation of how the verse relates to it. The explanation MUST be understandable
to an average person with no knowledge of Islam.`

// ContentGenerator is the part of *genai.Models the service calls.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type VerseSuggestionService struct {
	generator ContentGenerator
	model     string
}

// NewVerseSuggestionService accepts a nil generator; Suggest then reports
// ErrVerseSuggestionDisabled.
func NewVerseSuggestionService(generator ContentGenerator, model string) *VerseSuggestionService {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &VerseSuggestionService{generator: generator, model: model}
}

func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client, nil
}

func verseSuggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedVerse": {
				Type:        genai.TypeString,
				Description: "A relevant verse from the Quran that offers guidance or comfort for the user.",
			},
			"verseExplanation": {
				Type:        genai.TypeString,
				Description: "A brief explanation of how the verse relates to the user's challenge.",
			},
		},
		Required: []string{"suggestedVerse", "verseExplanation"},
	}
}

func (s *VerseSuggestionService) Suggest(ctx context.Context, challenge string) (models.VerseSuggestion, error) {
	challenge = strings.TrimSpace(challenge)
	if challenge == "" {
		return models.VerseSuggestion{}, models.NewValidationError("challenge", "must not be empty")
	}
	if s.generator == nil {
		return models.VerseSuggestion{}, ErrVerseSuggestionDisabled
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(verseSuggestionInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    verseSuggestionSchema(),
	}
	contents := []*genai.Content{
		genai.NewContentFromText("A user is facing the following challenge: "+challenge, genai.RoleUser),
	}

	resp, err := s.generator.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		log.Error("verse suggestion request failed", "model", s.model, "err", err)
		return models.VerseSuggestion{}, fmt.Errorf("verse suggestion failed: %w", err)
	}

	var out struct {
		SuggestedVerse   string `json:"suggestedVerse"`
		VerseExplanation string `json:"verseExplanation"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &out); err != nil {
		return models.VerseSuggestion{}, fmt.Errorf("verse suggestion returned malformed output: %w", err)
	}
	if out.SuggestedVerse == "" {
		return models.VerseSuggestion{}, errors.New("verse suggestion returned no verse")
	}

	return models.VerseSuggestion{
		Suggested_Verse:   out.SuggestedVerse,
		Verse_Explanation: out.VerseExplanation,
	}, nil
}
