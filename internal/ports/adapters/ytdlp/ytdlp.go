package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// Format picks the best video and audio streams, falling back to the best
// single file that carries both.
const Format = "bestvideo+bestaudio/best"

const outputTemplate = "%(title)s.%(ext)s"

type Adapter struct {
	bin string
}

// New uses the yt-dlp found on PATH when binPath is empty.
func New(binPath string) *Adapter {
	return &Adapter{bin: binPath}
}

func (a *Adapter) Download(ctx context.Context, url, dir string) (string, error) {
	cmd := ytdlp.New().
		Format(Format).
		MergeOutputFormat("mp4").
		Output(filepath.Join(dir, outputTemplate)).
		NoPlaylist().
		NoSimulate().
		Print("after_move:filepath")
	if a.bin != "" {
		cmd = cmd.SetExecutable(a.bin)
	}

	res, err := cmd.Run(ctx, url)
	if err != nil {
		detail := ""
		if res != nil {
			detail = res.Stderr
		}
		return "", fmt.Errorf("yt-dlp download: %w\n%s", err, detail)
	}
	return finalPath(res.Stdout)
}

// finalPath returns the last non-empty line yt-dlp printed for the
// after_move:filepath template, which is the merged file on disk.
func finalPath(stdout string) (string, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if p := strings.TrimSpace(lines[i]); p != "" {
			return p, nil
		}
	}
	return "", errors.New("yt-dlp download: no output file reported")
}
