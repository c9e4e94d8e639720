package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/forPelevin/vidsub/internal/config"
	"github.com/forPelevin/vidsub/internal/pipeline"
	"github.com/forPelevin/vidsub/internal/ports/adapters/openrouter"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	file, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := file.Apply(cmd.Flags()); err != nil {
		return err
	}

	cfg := buildConfig(cmd, file)
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, pipeline.ErrSourceRequired) {
			fmt.Fprintln(cmd.OutOrStdout(), err)
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errw := cmd.ErrOrStderr()
	cfg.Logf = newLogf(errw)
	if p := newProgress(errw); p != nil {
		cfg.Progress = p
	}

	res, err := pipeline.Run(ctx, cfg)
	if s := renderSummary(res); s != "" {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("interrupted: %w", err)
	}
	return err
}

func buildConfig(cmd *cobra.Command, file config.File) pipeline.Config {
	str := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	allowed := openrouter.SplitHosts(os.Getenv("OPENROUTER_ALLOWED_HOSTS"))
	if len(allowed) == 0 {
		allowed = file.OpenRouter.AllowedHosts
	}

	return pipeline.Config{
		URL:           str("url"),
		VideoPath:     str("video_path"),
		WhisperModel:  str("whisper_model"),
		SrtOutputPath: str("srt_output_path"),
		SrcLang:       str("src_lang"),
		TargetLang:    str("target_lang"),
		DownloadDir:   str("download_dir"),
		Transcriber:   str("transcriber"),
		Translator:    str("translator"),

		FFmpegPath:       getenvDefault("FFMPEG_PATH", orDefault(file.Tools.FFmpeg, "ffmpeg")),
		YtDlpPath:        getenvDefault("YTDLP_PATH", orDefault(file.Tools.YtDlp, "yt-dlp")),
		WhisperBin:       getenvDefault("WHISPER_BIN", orDefault(file.Tools.WhisperBin, "whisper-cli")),
		WhisperModelsDir: getenvDefault("WHISPER_MODELS_DIR", orDefault(file.Tools.WhisperModelsDir, ".cache/models")),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		GoogleTranslateAPIKey: os.Getenv("GOOGLE_TRANSLATE_API_KEY"),

		OpenRouterAPIKey:       os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:        getenvDefault("OPENROUTER_MODEL", file.OpenRouter.Model),
		OpenRouterBaseURL:      getenvDefault("OPENROUTER_BASE_URL", orDefault(file.OpenRouter.BaseURL, "https://openrouter.ai")),
		OpenRouterAllowedHosts: allowed,
	}
}

func newLogf(w io.Writer) func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
