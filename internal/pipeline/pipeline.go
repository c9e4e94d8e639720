package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/forPelevin/vidsub/internal/domain/langs"
	"github.com/forPelevin/vidsub/internal/ports"
	"github.com/forPelevin/vidsub/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/vidsub/internal/ports/adapters/googletranslate"
	"github.com/forPelevin/vidsub/internal/ports/adapters/openaiwhisper"
	"github.com/forPelevin/vidsub/internal/ports/adapters/openrouter"
	"github.com/forPelevin/vidsub/internal/ports/adapters/passthrough"
	"github.com/forPelevin/vidsub/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/vidsub/internal/ports/adapters/ytdlp"
	"github.com/forPelevin/vidsub/internal/usecase"
)

// ErrSourceRequired is returned by Validate and Run when the source is ambiguous.
var ErrSourceRequired = usecase.ErrSourceRequired

const (
	TranscriberWhisperCPP = "whispercpp"
	TranscriberOpenAI     = "openai"

	TranslatorGoogle     = "google"
	TranslatorOpenRouter = "openrouter"
	TranslatorNone       = "none"
)

type Config struct {
	URL       string
	VideoPath string

	WhisperModel  string
	SrtOutputPath string
	SrcLang       string
	TargetLang    string
	DownloadDir   string

	// CacheDir is the base directory for per-run artifacts (audio, whisper output).
	// If empty, defaults to ".cache".
	CacheDir string

	Transcriber string
	Translator  string

	FFmpegPath       string
	YtDlpPath        string
	WhisperBin       string
	WhisperModelsDir string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	GoogleTranslateAPIKey string

	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string

	Logf     func(format string, args ...any)
	Progress ports.Progress
}

func (c Config) Validate() error {
	if (c.URL == "") == (c.VideoPath == "") {
		return ErrSourceRequired
	}
	if c.SrtOutputPath == "" {
		return errors.New("srt output path is empty")
	}
	if !strings.EqualFold(filepath.Ext(c.SrtOutputPath), ".srt") {
		return fmt.Errorf("srt output path %q must end in .srt", c.SrtOutputPath)
	}
	if c.DownloadDir == "" && c.URL != "" {
		return errors.New("download dir is empty")
	}
	if _, err := langs.Parse(c.SrcLang); err != nil {
		return fmt.Errorf("src lang: %w", err)
	}
	if _, err := langs.Parse(c.TargetLang); err != nil {
		return fmt.Errorf("target lang: %w", err)
	}

	switch c.transcriber() {
	case TranscriberWhisperCPP:
		if !whispercpp.KnownSize(c.WhisperModel) {
			return fmt.Errorf("unknown whisper model %q (want one of %s)",
				c.WhisperModel, strings.Join(whispercpp.Sizes, ", "))
		}
	case TranscriberOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai transcriber")
		}
	default:
		return fmt.Errorf("unknown transcriber %q", c.Transcriber)
	}

	switch c.translator() {
	case TranslatorGoogle, TranslatorNone:
	case TranslatorOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return errors.New("OPENROUTER_API_KEY is required for the openrouter translator")
		}
		return openrouter.ValidateBaseURL(c.OpenRouterBaseURL, c.OpenRouterAllowedHosts)
	default:
		return fmt.Errorf("unknown translator %q", c.Translator)
	}
	return nil
}

func (c Config) transcriber() string {
	if c.Transcriber == "" {
		return TranscriberWhisperCPP
	}
	return strings.ToLower(c.Transcriber)
}

func (c Config) translator() string {
	if c.Translator == "" {
		return TranslatorGoogle
	}
	return strings.ToLower(c.Translator)
}

// Run validates cfg, prepares the output directories and runs the whole
// acquire, transcribe, translate and render chain.
func Run(ctx context.Context, cfg Config) (usecase.Result, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if err := cfg.Validate(); err != nil {
		return usecase.Result{}, err
	}

	speechLang, err := langs.SpeechCode(cfg.SrcLang)
	if err != nil {
		return usecase.Result{}, err
	}

	logf("preparing workspace")
	for _, dir := range []string{filepath.Dir(cfg.SrtOutputPath), cfg.DownloadDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return usecase.Result{}, err
		}
	}

	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", runID(cfg.URL+cfg.VideoPath))
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return usecase.Result{}, err
	}
	logf("cache: %s", cacheDir)

	// adapters
	asr, err := newASR(cfg)
	if err != nil {
		return usecase.Result{}, err
	}
	tr, closeTr, err := newTranslator(ctx, cfg)
	if err != nil {
		return usecase.Result{}, err
	}
	defer closeTr()

	uc := usecase.New(usecase.Deps{
		Downloader: ytdlp.New(cfg.YtDlpPath),
		Video:      ffmpeg.New(cfg.FFmpegPath),
		ASR:        asr,
		Translator: tr,
	})

	return uc.Run(ctx, usecase.Input{
		URL:           cfg.URL,
		VideoPath:     cfg.VideoPath,
		WhisperModel:  cfg.WhisperModel,
		SpeechLang:    speechLang,
		SrcLang:       cfg.SrcLang,
		TargetLang:    cfg.TargetLang,
		SrtOutputPath: cfg.SrtOutputPath,
		DownloadDir:   cfg.DownloadDir,
		CacheDir:      cacheDir,
		Logf:          logf,
		Progress:      cfg.Progress,
	})
}

func newASR(cfg Config) (ports.ASR, error) {
	switch cfg.transcriber() {
	case TranscriberWhisperCPP:
		return whispercpp.New(cfg.WhisperBin, cfg.WhisperModelsDir), nil
	case TranscriberOpenAI:
		return openaiwhisper.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), nil
	}
	return nil, fmt.Errorf("unknown transcriber %q", cfg.Transcriber)
}

func newTranslator(ctx context.Context, cfg Config) (ports.Translator, func(), error) {
	nop := func() {}
	switch cfg.translator() {
	case TranslatorGoogle:
		g, err := googletranslate.New(ctx, cfg.GoogleTranslateAPIKey)
		if err != nil {
			return nil, nop, err
		}
		return g, func() { _ = g.Close() }, nil
	case TranslatorOpenRouter:
		return openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.OpenRouterBaseURL), nop, nil
	case TranslatorNone:
		return passthrough.New(), nop, nil
	}
	return nil, nop, fmt.Errorf("unknown translator %q", cfg.Translator)
}

// runID names the cache directory after the source so repeated runs on the
// same input reuse it.
func runID(source string) string {
	name := source
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = normalizePathSegment(strings.TrimSuffix(name, filepath.Ext(name)))
	if name == "" {
		name = "input"
	}
	if r := []rune(name); len(r) > 40 {
		name = strings.Trim(string(r[:40]), "-")
	}
	return name + "-" + hash(source)
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.Downloader = (*ytdlp.Adapter)(nil)
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.ASR = (*openaiwhisper.Adapter)(nil)
var _ ports.Translator = (*googletranslate.Adapter)(nil)
var _ ports.Translator = (*openrouter.Adapter)(nil)
var _ ports.Translator = passthrough.Adapter{}
