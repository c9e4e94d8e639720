package types

import (
	"path/filepath"
	"strings"
)

type Transcript struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}

// Segment times are seconds from the start of the audio.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Video struct {
	Path      string
	Container string
}

// NewVideo infers the container from the file extension (lower-case, no dot).
func NewVideo(path string) Video {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return Video{Path: path, Container: ext}
}

type Stage int

const (
	StageIdle Stage = iota
	StageAcquired
	StageTranscribed
	StageTranslated
	StageRendered
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAcquired:
		return "acquired"
	case StageTranscribed:
		return "transcribed"
	case StageTranslated:
		return "translated"
	case StageRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// Artifacts lists every file a run produced or consumed, in pipeline order.
type Artifacts struct {
	SourceVideo    string
	AudioWAV       string
	SourceSubs     string
	TranslatedSubs string
	TranscodedMP4  string
	OutputVideo    string
}
