package ports

import (
	"context"
	"errors"

	"github.com/forPelevin/vidsub/internal/types"
)

// ErrEmptyTranslation reports a provider response that carried no usable text.
// It is the only translation failure a run recovers from.
var ErrEmptyTranslation = errors.New("translation provider returned an empty response")

type Downloader interface {
	Download(ctx context.Context, url, dir string) (string, error)
}

type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error
	TranscodeMP4(ctx context.Context, inVideo, outMP4 string) error
	BurnSubtitles(ctx context.Context, inMP4, srtPath, outMP4 string) error
}

type ASR interface {
	Transcribe(ctx context.Context, wavPath, lang, model, cacheDir string) (types.Transcript, error)
}

type Translator interface {
	Translate(ctx context.Context, text, src, dst string) (string, error)
}

type Progress interface {
	Start(desc string, total int)
	Advance()
	Done()
}
