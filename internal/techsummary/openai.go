package techsummary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hcalazans/autovoz/internal/models"
)

var (
	openAIProviderInstance *OpenAIProvider
	openAIProviderOnce     sync.Once
)

// OpenAIProvider generates a technical summary for models that have no
// curated entry. Enabled explicitly via configuration; any failure along
// the way degrades to N/A, the analysis run never depends on it.
type OpenAIProvider struct {
	client *openai.Client
}

func GetOpenAIProvider() *OpenAIProvider {
	openAIProviderOnce.Do(func() {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			slog.Error("[OpenAIProvider] Missing OPENAI_API_KEY in environment variables")
			panic("[OpenAIProvider] Missing OPENAI_API_KEY in environment variables")
		}
		openAIProviderInstance = &OpenAIProvider{
			client: openai.NewClient(option.WithAPIKey(apiKey)),
		}
		slog.Info("[OpenAIProvider] OpenAI client initialized")
	})
	return openAIProviderInstance
}

type prosConsPayload struct {
	Vantagens    string `json:"vantagens"`
	Desvantagens string `json:"desvantagens"`
}

func (p *OpenAIProvider) LookupProsCons(ctx context.Context, model string) models.TechnicalSummary {
	prompt := fmt.Sprintf(
		`Liste, em uma frase cada, as principais vantagens e desvantagens do automóvel %q vendido no Brasil. Responda somente com JSON no formato {"vantagens": "...", "desvantagens": "..."}.`,
		model)

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model: openai.F(openai.ChatModelGPT4oMini),
	})
	if err != nil {
		slog.Warn("[OpenAIProvider] Completion failed, degrading to N/A",
			slog.String("model", model),
			slog.String("error", err.Error()))
		return models.UnknownTechnicalSummary()
	}

	if len(completion.Choices) == 0 {
		return models.UnknownTechnicalSummary()
	}

	var payload prosConsPayload
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
		slog.Warn("[OpenAIProvider] Unparseable completion, degrading to N/A",
			slog.String("model", model),
			slog.String("error", err.Error()))
		return models.UnknownTechnicalSummary()
	}

	if payload.Vantagens == "" {
		payload.Vantagens = "N/A"
	}
	if payload.Desvantagens == "" {
		payload.Desvantagens = "N/A"
	}

	return models.TechnicalSummary{
		Advantages:    payload.Vantagens,
		Disadvantages: payload.Desvantagens,
	}
}
