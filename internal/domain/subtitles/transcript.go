package subtitles

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/forPelevin/vidsub/internal/types"
)

// EntryFromSegment converts the i-th (0-based) segment of a transcript. Entries
// are numbered from 1 and times truncate to whole seconds, so every timestamp
// renders with a ",000" fraction.
func EntryFromSegment(i int, s types.Segment) Entry {
	return Entry{
		Index: i + 1,
		Start: wholeSeconds(s.Start),
		End:   wholeSeconds(s.End),
		Text:  strings.TrimSpace(s.Text),
	}
}

func wholeSeconds(sec float64) time.Duration {
	if sec < 0 {
		return 0
	}
	return time.Duration(int64(sec)) * time.Second
}

// TranslatedPath appends "_<lang>" before the extension: a.srt -> a_zh-cn.srt.
func TranslatedPath(srcPath, lang string) string {
	ext := filepath.Ext(srcPath)
	base := strings.TrimSuffix(srcPath, ext)
	if ext == "" {
		ext = ".srt"
	}
	return base + "_" + lang + ext
}
