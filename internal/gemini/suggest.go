package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// MaxDescriptionLength bounds the description text embedded in a prompt.
const MaxDescriptionLength = 200

const maxReasoningLength = 300

// ErrNoMatch is returned when the model answers with a category outside the
// offered list.
var ErrNoMatch = errors.New("suggested category not in available categories")

// Suggestion is the model's pick among a profile's categories.
type Suggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// SuggestCategory asks Gemini which of categories fits a transaction
// description. txType is income or expense and only steers the prompt.
func (c *Client) SuggestCategory(ctx context.Context, description, txType string, categories []string) (*Suggestion, error) {
	if c == nil || c.generator == nil {
		return nil, ErrNotConfigured
	}
	description = SanitizeForPrompt(description, MaxDescriptionLength)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories available")
	}
	if txType != models.TransactionTypeIncome {
		txType = models.TransactionTypeExpense
	}

	offered := make([]string, 0, len(categories))
	for _, name := range categories {
		if name = SanitizeForPrompt(name, models.MaxCategoryNameLength); name != "" {
			offered = append(offered, name)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: buildPrompt(description, txType, offered)}},
	}}

	resp, err := c.generator.GenerateContent(ctx, ModelName, contents, suggestionConfig(offered))
	if err != nil {
		logger.Log.Error().Err(err).Msg("Gemini category suggestion failed")
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("no response from Gemini")
	}

	raw := extractJSON(resp.Text())
	if raw == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	matched := ""
	for _, name := range categories {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(s.Category)) {
			matched = name
			break
		}
	}
	if matched == "" {
		logger.Log.Warn().
			Str("suggested_category", logger.SanitizeText(s.Category)).
			Int("category_count", len(categories)).
			Msg("Gemini suggested an unknown category")
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s.Category)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return nil, fmt.Errorf("confidence out of range: %f", s.Confidence)
	}

	s.Category = matched
	s.Reasoning = SanitizeForPrompt(s.Reasoning, maxReasoningLength)

	logger.Log.Debug().
		Str("category", s.Category).
		Float64("confidence", s.Confidence).
		Msg("Gemini category suggestion")
	return &s, nil
}

func suggestionConfig(categories []string) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 400,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: "You classify personal finance transactions. Respond with a single JSON object only."}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category":   {Type: genai.TypeString, Enum: categories},
				"confidence": {Type: genai.TypeNumber, Description: "Between 0 and 1"},
				"reasoning":  {Type: genai.TypeString, Description: "One short sentence"},
			},
			Required: []string{"category", "confidence", "reasoning"},
		},
	}
}

func buildPrompt(description, txType string, categories []string) string {
	return fmt.Sprintf(`Pick the category for this %s transaction: "%s"

Categories:
- %s

Use only a category from the list. Give confidence 0.8-1.0 when the match is obvious and 0.5-0.7 when it is a guess.

Return JSON: {"category": "name from the list", "confidence": 0.0-1.0, "reasoning": "short explanation"}`,
		txType, description, strings.Join(categories, "\n- "))
}

// extractJSON returns the outermost {...} span of text, or "" if none.
// The model sometimes wraps JSON in prose or code fences.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// SanitizeForPrompt makes user text safe to embed in a quoted prompt line and
// cuts it to at most maxLength bytes.
func SanitizeForPrompt(input string, maxLength int) string {
	input = strings.NewReplacer(`"`, "'", "`", "'", "\x00", "").Replace(input)
	input = strings.Join(strings.Fields(input), " ")
	if len(input) > maxLength {
		input = strings.TrimSpace(strings.ToValidUTF8(input[:maxLength], ""))
	}
	return input
}
