// pkg/ai/openai_client.go

package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	log "github.com/sirupsen/logrus"
)

type openAI struct {
	client      openai.Client
	model       string
	timeout     time.Duration
	temperature float64
}

type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	timeout     time.Duration
	temperature float64
	maxRetries  int
	httpClient  *http.Client
}

func WithTimeout(d time.Duration) OpenAIOption {
	return func(c *openAIConfig) { c.timeout = d }
}

func WithTemperature(t float64) OpenAIOption {
	return func(c *openAIConfig) { c.temperature = t }
}

func WithMaxRetries(n int) OpenAIOption {
	return func(c *openAIConfig) { c.maxRetries = n }
}

func WithHTTPClient(hc *http.Client) OpenAIOption {
	return func(c *openAIConfig) { c.httpClient = hc }
}

// NewOpenAI talks to any OpenAI-compatible chat completions endpoint.
// endpoint is the service root, with or without the trailing /v1.
func NewOpenAI(endpoint, key, model string, opts ...OpenAIOption) Client {
	cfg := openAIConfig{timeout: 60 * time.Second, temperature: 0.2, maxRetries: 1}
	for _, o := range opts {
		o(&cfg)
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithBaseURL(baseURL(endpoint)),
		option.WithMaxRetries(cfg.maxRetries),
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}
	return &openAI{
		client:      openai.NewClient(reqOpts...),
		model:       model,
		timeout:     cfg.timeout,
		temperature: cfg.temperature,
	}
}

func baseURL(endpoint string) string {
	u := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if !strings.HasSuffix(u, "/v1") {
		u += "/v1"
	}
	return u + "/"
}

func (c *openAI) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	if model == "" {
		model = c.model
	}
	if len(messages) == 0 {
		return "", &CompletionError{Model: model, Reason: "no messages"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    toParams(messages),
		Temperature: param.NewOpt[float64](c.temperature),
	})
	if err != nil {
		log.WithError(err).WithField("model", model).Warn("completion request failed")
		return "", &CompletionError{Model: model, Reason: err.Error(), Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &CompletionError{Model: model, Reason: "no choices"}
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", &CompletionError{Model: model, Reason: "empty completion"}
	}

	log.WithFields(log.Fields{
		"model":      model,
		"elapsed_ms": time.Since(started).Milliseconds(),
		"chars":      len(content),
	}).Debug("completion ok")
	return content, nil
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
