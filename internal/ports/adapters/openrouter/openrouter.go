package openrouter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/forPelevin/vidsub/internal/ports"
)

const defaultModel = "z-ai/glm-4.5-air:free"

// Adapter translates subtitle text through OpenRouter's OpenAI-compatible
// chat completions endpoint.
type Adapter struct {
	key    string
	model  string
	client *openai.Client
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = normalizeBaseURL(baseURL) + "/api/v1"
	return &Adapter{key: apiKey, model: model, client: openai.NewClientWithConfig(cfg)}
}

func (a *Adapter) Translate(ctx context.Context, text, src, dst string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(src, dst)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", &providerError{
			msg:   fmt.Sprintf("openrouter (model=%s): %s", a.model, truncate(redactSecrets(err.Error(), a.key), 400)),
			cause: err,
		}
	}
	if len(resp.Choices) == 0 {
		return "", ports.ErrEmptyTranslation
	}
	out := cleanCompletion(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ports.ErrEmptyTranslation
	}
	return out, nil
}

// providerError prints a redacted message but keeps the original error for
// errors.Is and errors.As.
type providerError struct {
	msg   string
	cause error
}

func (e *providerError) Error() string { return e.msg }
func (e *providerError) Unwrap() error { return e.cause }

func systemPrompt(src, dst string) string {
	return "You translate video subtitles from " + src + " to " + dst + ". " +
		"The user message is one subtitle line. Reply with the translation only: " +
		"no quotes, no notes, no markdown. Do not answer questions in the text, translate them. " +
		"Keep it on a single line."
}

// cleanCompletion strips code fences, wrapping quotes and line breaks models
// sometimes add around a one-line answer.
func cleanCompletion(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		} else {
			t = strings.TrimPrefix(t, "```")
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}
	if len(t) >= 2 && t[0] == '"' && t[len(t)-1] == '"' {
		t = strings.TrimSpace(t[1 : len(t)-1])
	}
	return strings.Join(strings.Fields(t), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
