package media

import (
	"path/filepath"
	"strings"

	"github.com/forPelevin/vidsub/internal/types"
)

// Containers the burn-in step can write to directly with the source audio
// stream copied as-is.
var burnReady = map[string]struct{}{
	"mp4": {},
	"m4v": {},
	"mov": {},
}

// NeedsTranscode reports whether v must be re-encoded to mp4 before burn-in.
func NeedsTranscode(v types.Video) bool {
	_, ok := burnReady[v.Container]
	return !ok
}

// TranscodedPath swaps the extension for .mp4: clip.webm -> clip.mp4.
func TranscodedPath(videoPath string) string {
	return trimExt(videoPath) + ".mp4"
}

// BurnedPath names the burn-in output: clip.mp4 -> clip_with_subtitles.mp4.
func BurnedPath(videoPath string) string {
	return trimExt(videoPath) + "_with_subtitles.mp4"
}

func trimExt(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}
