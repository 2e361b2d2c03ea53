package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"equity-radar/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Classifier labels each headline independently, one result per input in
// the same order.
type Classifier interface {
	Classify(ctx context.Context, headlines []string) ([]domain.HeadlineSentiment, error)
}

// LexiconClassifier is the zero-dependency fallback used when no LLM key is
// configured or the LLM call fails. Keyword counting, nothing fancy.
type LexiconClassifier struct{}

func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{}
}

func (c *LexiconClassifier) Classify(_ context.Context, headlines []string) ([]domain.HeadlineSentiment, error) {
	out := make([]domain.HeadlineSentiment, len(headlines))
	for i, title := range headlines {
		label, score := heuristicLabel(title)
		out[i] = domain.HeadlineSentiment{Title: title, Label: label, Score: score}
	}
	return out, nil
}

func heuristicLabel(title string) (string, float64) {
	text := strings.ToLower(strings.TrimSpace(title))
	if text == "" {
		return LabelNeutral, 0.25
	}

	positive := []string{"beat", "beats", "surge", "rally", "upgrade", "growth", "record", "profit", "gain", "buy", "strong", "raises", "outperform"}
	negative := []string{"miss", "misses", "fall", "drop", "downgrade", "lawsuit", "recall", "loss", "cuts", "weak", "plunge", "layoff", "probe", "sell"}

	posCount := countMatches(text, positive)
	negCount := countMatches(text, negative)
	if posCount == negCount {
		return LabelNeutral, 0.5
	}

	confidence := clamp(0.5+(0.1*float64(absInt(posCount-negCount))), 0.5, 0.9)
	if posCount > negCount {
		return LabelPositive, confidence
	}
	return LabelNegative, confidence
}

func countMatches(text string, tokens []string) int {
	count := 0
	for _, token := range tokens {
		if strings.Contains(text, token) {
			count++
		}
	}
	return count
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "positive", "bullish", "bull":
		return LabelPositive
	case "negative", "bearish", "bear":
		return LabelNegative
	default:
		return LabelNeutral
	}
}

type openAIChatClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// OpenAIClassifier scores a whole headline batch in one chat completion and
// falls back to the lexicon per call site when it errors.
type OpenAIClassifier struct {
	client openAIChatClient
	model  string
}

func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClassifier{
		client: &openAIClient{client: client},
		model:  model,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, headlines []string) ([]domain.HeadlineSentiment, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("classifier not configured")
	}
	if len(headlines) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for i, title := range headlines {
		sb.WriteString(fmt.Sprintf("id=%d\n", i))
		sb.WriteString(fmt.Sprintf("headline=%s\n\n", strings.TrimSpace(title)))
	}

	systemPrompt := "You classify financial news headlines. Return ONLY a JSON array. Each object requires: id (int), label (positive|neutral|negative), score (0..1 confidence). No markdown."
	userPrompt := "Headlines:\n" + sb.String()

	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty classifier completion")
	}

	raw := trimCodeFence(completion.Choices[0].Message.Content)
	var parsed []struct {
		ID    int     `json:"id"`
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse classifier json: %w", err)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].ID < parsed[j].ID })

	out := make([]domain.HeadlineSentiment, len(headlines))
	for i, title := range headlines {
		// Headlines the model skipped stay neutral.
		out[i] = domain.HeadlineSentiment{Title: title, Label: LabelNeutral, Score: 0.5}
	}
	for _, row := range parsed {
		if row.ID < 0 || row.ID >= len(headlines) {
			continue
		}
		out[row.ID] = domain.HeadlineSentiment{
			Title: headlines[row.ID],
			Label: normalizeLabel(row.Label),
			Score: clamp(row.Score, 0, 1),
		}
	}
	return out, nil
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
