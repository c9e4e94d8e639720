package googletranslate

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/forPelevin/vidsub/internal/domain/langs"
	"github.com/forPelevin/vidsub/internal/ports"
)

type client interface {
	Translate(ctx context.Context, inputs []string, target language.Tag, opts *translate.Options) ([]translate.Translation, error)
	Close() error
}

// Adapter calls the Cloud Translation basic (v2) API. Without an API key the
// client falls back to Application Default Credentials.
type Adapter struct {
	c client
}

func New(ctx context.Context, apiKey string) (*Adapter, error) {
	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	c, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google translate client: %w", err)
	}
	return &Adapter{c: c}, nil
}

func (a *Adapter) Close() error { return a.c.Close() }

func (a *Adapter) Translate(ctx context.Context, text, src, dst string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	srcTag, err := langs.Parse(src)
	if err != nil {
		return "", err
	}
	dstTag, err := langs.Parse(dst)
	if err != nil {
		return "", err
	}

	res, err := a.c.Translate(ctx, []string{text}, dstTag, &translate.Options{
		Source: srcTag,
		Format: translate.Text,
	})
	if err != nil {
		return "", fmt.Errorf("google translate: %w", err)
	}
	if len(res) == 0 || strings.TrimSpace(res[0].Text) == "" {
		return "", ports.ErrEmptyTranslation
	}
	return res[0].Text, nil
}
