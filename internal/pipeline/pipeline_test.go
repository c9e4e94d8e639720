package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	tmp := t.TempDir()
	video := filepath.Join(tmp, "talk.mp4")
	if err := os.WriteFile(video, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return Config{
		VideoPath:     video,
		WhisperModel:  "base",
		SrtOutputPath: filepath.Join(tmp, "SrtFiles", "Translated.srt"),
		SrcLang:       "en",
		TargetLang:    "zh-cn",
		DownloadDir:   filepath.Join(tmp, "DownloadedVideos"),
		Translator:    TranslatorNone,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "ok url", mutate: func(c *Config) { c.VideoPath = ""; c.URL = "https://example.com/v" }},
		{name: "neither source", mutate: func(c *Config) { c.VideoPath = "" }, wantErr: "either --url or --video_path"},
		{name: "both sources", mutate: func(c *Config) { c.URL = "https://example.com/v" }, wantErr: "either --url or --video_path"},
		{name: "missing video is left to ffmpeg", mutate: func(c *Config) { c.VideoPath = "does/not/exist.mp4" }},
		{name: "directory video is left to ffmpeg", mutate: func(c *Config) { c.VideoPath = filepath.Dir(c.VideoPath) }},
		{name: "srt ext", mutate: func(c *Config) { c.SrtOutputPath = "out.txt" }, wantErr: "must end in .srt"},
		{name: "srt empty", mutate: func(c *Config) { c.SrtOutputPath = "" }, wantErr: "srt output path is empty"},
		{name: "bad src lang", mutate: func(c *Config) { c.SrcLang = "not a lang" }, wantErr: "src lang:"},
		{name: "bad target lang", mutate: func(c *Config) { c.TargetLang = "" }, wantErr: "target lang:"},
		{name: "unknown model", mutate: func(c *Config) { c.WhisperModel = "gigantic" }, wantErr: `unknown whisper model "gigantic"`},
		{name: "openai any model", mutate: func(c *Config) {
			c.Transcriber = TranscriberOpenAI
			c.OpenAIAPIKey = "k"
			c.WhisperModel = "whisper-1"
		}},
		{name: "openai needs key", mutate: func(c *Config) { c.Transcriber = TranscriberOpenAI }, wantErr: "OPENAI_API_KEY is required"},
		{name: "unknown transcriber", mutate: func(c *Config) { c.Transcriber = "vosk" }, wantErr: `unknown transcriber "vosk"`},
		{name: "unknown translator", mutate: func(c *Config) { c.Translator = "deepl" }, wantErr: `unknown translator "deepl"`},
		{name: "openrouter needs key", mutate: func(c *Config) { c.Translator = TranslatorOpenRouter }, wantErr: "OPENROUTER_API_KEY is required"},
		{name: "openrouter bad base url", mutate: func(c *Config) {
			c.Translator = TranslatorOpenRouter
			c.OpenRouterAPIKey = "k"
			c.OpenRouterBaseURL = "http://openrouter.ai"
		}, wantErr: "https is required"},
		{name: "openrouter default base url", mutate: func(c *Config) {
			c.Translator = TranslatorOpenRouter
			c.OpenRouterAPIKey = "k"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRun_SourceConflictCreatesNothing(t *testing.T) {
	cfg := validConfig(t)
	cfg.URL = "https://example.com/v"
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")

	_, err := Run(context.Background(), cfg)
	if !errors.Is(err, ErrSourceRequired) {
		t.Fatalf("expected ErrSourceRequired, got %v", err)
	}
	for _, dir := range []string{filepath.Dir(cfg.SrtOutputPath), cfg.DownloadDir, cfg.CacheDir} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("%s must not be created, stat err=%v", dir, err)
		}
	}
}

func TestRunID(t *testing.T) {
	a := runID("/tmp/My Cool.Video.mp4")
	if !strings.HasPrefix(a, "my-cool-video-") {
		t.Fatalf("unexpected run id: %s", a)
	}
	if len(a) != len("my-cool-video-")+12 {
		t.Fatalf("unexpected run id suffix length: %s", a)
	}
	if a != runID("/tmp/My Cool.Video.mp4") {
		t.Fatalf("run id must be stable")
	}
	if a == runID("/other/My Cool.Video.mp4") {
		t.Fatalf("run id must differ per source")
	}
	if got := runID("https://example.com/watch?v=abc"); !strings.HasPrefix(got, "watch-v-abc-") {
		t.Fatalf("unexpected url run id: %s", got)
	}
	if got := runID("___"); !strings.HasPrefix(got, "input-") {
		t.Fatalf("unexpected fallback run id: %s", got)
	}
}

func TestNormalizePathSegment(t *testing.T) {
	tests := map[string]string{
		"  My Cool.Video  ": "my-cool-video",
		"___":               "",
		"abc123":            "abc123",
		"Name (v2)!":        "name-v2",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := normalizePathSegment(in); got != want {
				t.Fatalf("normalizePathSegment(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
