package openaiwhisper

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/forPelevin/vidsub/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/vidsub/internal/types"
)

// Adapter transcribes through the hosted Whisper API. The audio upload limit
// is 25 MB, roughly 13 minutes of the 16 kHz mono WAV the pipeline extracts.
type Adapter struct {
	client *openai.Client
}

func New(apiKey, baseURL string) *Adapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Adapter{client: openai.NewClientWithConfig(cfg)}
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, lang, model, _ string) (types.Transcript, error) {
	resp, err := a.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    apiModel(model),
		FilePath: wavPath,
		Language: lang,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return types.Transcript{}, fmt.Errorf("openai transcription: %w", err)
	}

	tr := types.Transcript{
		Language: resp.Language,
		Segments: make([]types.Segment, 0, len(resp.Segments)),
	}
	for _, s := range resp.Segments {
		tr.Segments = append(tr.Segments, types.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return tr, nil
}

// apiModel maps local size selectors onto the single hosted model; any other
// value is passed through as an API model name.
func apiModel(model string) string {
	if model == "" || whispercpp.KnownSize(model) {
		return openai.Whisper1
	}
	return model
}
