package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type Adapter struct {
	ffmpeg string
}

func New(ffmpegPath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{ffmpeg: ffmpegPath}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error {
	return a.run(ctx, "ffmpeg extract audio",
		"-y",
		"-i", inVideo,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
}

// TranscodeMP4 re-encodes both streams so the result can take a copied audio
// stream during burn-in.
func (a *Adapter) TranscodeMP4(ctx context.Context, inVideo, outMP4 string) error {
	return a.run(ctx, "ffmpeg transcode",
		"-y",
		"-i", inVideo,
		"-c:v", "libx264",
		"-c:a", "aac",
		outMP4,
	)
}

func (a *Adapter) BurnSubtitles(ctx context.Context, inMP4, srtPath, outMP4 string) error {
	return a.run(ctx, "ffmpeg burn subtitles", burnArgs(inMP4, srtPath, outMP4)...)
}

func burnArgs(inMP4, srtPath, outMP4 string) []string {
	return []string{
		"-y",
		"-i", inMP4,
		"-vf", "subtitles=" + escapeFilterPath(srtPath),
		"-c:v", "libx264",
		"-c:a", "copy",
		outMP4,
	}
}

func (a *Adapter) run(ctx context.Context, what string, args ...string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w\n%s", what, err, string(b))
	}
	return nil
}

// escapeFilterPath quotes a path for use as a filtergraph option value.
func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	p = strings.ReplaceAll(p, "'", "\\'")
	p = strings.ReplaceAll(p, ",", "\\,")
	return p
}
