package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forPelevin/vidsub/internal/types"
)

// Sizes lists the ggml model names whisper.cpp publishes; larger is slower
// and more accurate.
var Sizes = []string{
	"tiny", "tiny.en",
	"base", "base.en",
	"small", "small.en",
	"medium", "medium.en",
	"large-v1", "large-v2", "large-v3", "large-v3-turbo",
}

func KnownSize(size string) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type Adapter struct {
	bin       string
	modelsDir string
}

func New(binPath, modelsDir string) *Adapter {
	if binPath == "" {
		binPath = "whisper-cli"
	}
	return &Adapter{bin: binPath, modelsDir: modelsDir}
}

// ModelPath resolves a size selector to its ggml file inside the models dir.
func (a *Adapter) ModelPath(size string) string {
	return filepath.Join(a.modelsDir, "ggml-"+size+".bin")
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, lang, model, cacheDir string) (types.Transcript, error) {
	modelPath := a.ModelPath(model)
	if _, err := os.Stat(modelPath); err != nil {
		return types.Transcript{}, fmt.Errorf("whisper model %q: %w", model, err)
	}

	outPrefix := filepath.Join(cacheDir, "whisper")
	args := []string{
		"-m", modelPath,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
	}
	if lang != "" {
		args = append(args, "-l", lang)
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, err
	}
	return decodeOutput(jb)
}

type output struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// decodeOutput reads whisper.cpp's -oj document; offsets are milliseconds.
func decodeOutput(b []byte) (types.Transcript, error) {
	var out output
	if err := json.Unmarshal(b, &out); err != nil {
		return types.Transcript{}, fmt.Errorf("decode whisper.cpp json: %w", err)
	}
	tr := types.Transcript{
		Language: out.Result.Language,
		Segments: make([]types.Segment, 0, len(out.Transcription)),
	}
	for _, s := range out.Transcription {
		tr.Segments = append(tr.Segments, types.Segment{
			Start: float64(s.Offsets.From) / 1000,
			End:   float64(s.Offsets.To) / 1000,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return tr, nil
}
