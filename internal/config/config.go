// Package config loads the optional YAML file that supplies defaults for the
// command-line flags and tool locations.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
)

type File struct {
	URL           string `yaml:"url"`
	VideoPath     string `yaml:"video_path"`
	WhisperModel  string `yaml:"whisper_model"`
	SrtOutputPath string `yaml:"srt_output_path"`
	SrcLang       string `yaml:"src_lang"`
	TargetLang    string `yaml:"target_lang"`
	Transcriber   string `yaml:"transcriber"`
	Translator    string `yaml:"translator"`
	DownloadDir   string `yaml:"download_dir"`

	Tools      Tools      `yaml:"tools"`
	OpenRouter OpenRouter `yaml:"openrouter"`
}

type Tools struct {
	FFmpeg           string `yaml:"ffmpeg"`
	YtDlp            string `yaml:"yt_dlp"`
	WhisperBin       string `yaml:"whisper_bin"`
	WhisperModelsDir string `yaml:"whisper_models_dir"`
}

// OpenRouter holds non-secret settings; the API key stays in the environment.
type OpenRouter struct {
	Model        string   `yaml:"model"`
	BaseURL      string   `yaml:"base_url"`
	AllowedHosts []string `yaml:"allowed_hosts"`
}

// Load reads path. An empty path yields a zero File. Unknown keys are errors.
func Load(path string) (File, error) {
	var f File
	if strings.TrimSpace(path) == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Apply copies file values into flags the user did not set explicitly. The
// url and video_path keys are one choice: a source given on the command line
// drops both of them from the file.
func (f File) Apply(fs *pflag.FlagSet) error {
	sourceOnCLI := fs.Changed("url") || fs.Changed("video_path")
	values := map[string]string{
		"url":             f.URL,
		"video_path":      f.VideoPath,
		"whisper_model":   f.WhisperModel,
		"srt_output_path": f.SrtOutputPath,
		"src_lang":        f.SrcLang,
		"target_lang":     f.TargetLang,
		"transcriber":     f.Transcriber,
		"translator":      f.Translator,
		"download_dir":    f.DownloadDir,
	}
	for name, v := range values {
		if v == "" || fs.Lookup(name) == nil || fs.Changed(name) {
			continue
		}
		if sourceOnCLI && (name == "url" || name == "video_path") {
			continue
		}
		if err := fs.Set(name, v); err != nil {
			return fmt.Errorf("config %s: %w", name, err)
		}
	}
	return nil
}
