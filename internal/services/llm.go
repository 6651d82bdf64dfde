package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"truefeedback/internal/config"
	"truefeedback/internal/utils"
)

// FallbackSuggestions is served when the LLM is unreachable and nothing is
// cached. Three ||-joined conversation starters.
const FallbackSuggestions = "What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||What's a simple thing that makes you happy?"

const suggestionsCacheKey = "suggestions:last"

const systemPrompt = "You are a creative assistant that generates engaging conversation starters for anonymous social platforms. Create questions that are thought-provoking, fun, and suitable for all audiences."

const userPrompt = "Create a list of three open-ended and engaging questions formatted as a single string. Each question should be separated by '||'. These questions are for an anonymous social messaging platform and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on universal themes that encourage friendly interaction. For example, your output should be structured like this: 'What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||What's a simple thing that makes you happy?'. Ensure the questions are intriguing, foster curiosity, and contribute to a positive and welcoming conversational environment."

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService calls an OpenAI-compatible chat-completions endpoint to generate
// suggested questions.
type LLMService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
	cache   *utils.GlobalCache
}

func NewLLMService(cfg config.LLMConfig) *LLMService {
	return &LLMService{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		model:   cfg.Model,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   utils.GetCache(),
	}
}

// SuggestQuestions never fails: upstream trouble falls back to the last
// successful payload, then to the hardcoded triple.
func (s *LLMService) SuggestQuestions(ctx context.Context) string {
	suggestions, err := s.fetch(ctx)
	if err == nil && suggestions != "" {
		s.cache.Set(suggestionsCacheKey, suggestions, time.Hour)
		return suggestions
	}
	if err != nil {
		log.Printf("LLM suggestion call failed: %v", err)
	}
	if cached := s.cache.Get(suggestionsCacheKey); cached != nil {
		return cached.(string)
	}
	return FallbackSuggestions
}

func (s *LLMService) fetch(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("LLM_TOKEN not configured")
	}

	payload := ChatRequest{
		Model: s.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   500,
		Temperature: 0.9,
		TopP:        0.9,
		Stream:      false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions returned status %d", resp.StatusCode)
	}

	var chat ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", err
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return chat.Choices[0].Message.Content, nil
}
