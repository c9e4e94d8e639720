package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/forPelevin/vidsub/internal/domain/media"
	"github.com/forPelevin/vidsub/internal/domain/subtitles"
	"github.com/forPelevin/vidsub/internal/ports"
	"github.com/forPelevin/vidsub/internal/types"
)

// ErrSourceRequired means the caller gave both a URL and a local path, or neither.
var ErrSourceRequired = errors.New("either --url or --video_path should be specified, not both")

type Deps struct {
	Downloader ports.Downloader
	Video      ports.VideoTool
	ASR        ports.ASR
	Translator ports.Translator
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	URL       string
	VideoPath string

	WhisperModel string
	// SpeechLang is the hint handed to the ASR; SrcLang and TargetLang go to
	// the translator as given.
	SpeechLang string
	SrcLang    string
	TargetLang string

	SrtOutputPath string
	DownloadDir   string
	CacheDir      string

	Logf     func(format string, args ...any)
	Progress ports.Progress
}

type Result struct {
	Stage     types.Stage
	Artifacts types.Artifacts
	Entries   int
	// Fallbacks counts entries that kept their source text because the
	// provider returned nothing.
	Fallbacks int
}

// Run walks Idle -> Acquired -> Transcribed -> Translated -> Rendered. On
// failure the returned Result still describes the stages that completed.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	in = withDefaults(in)
	var res Result

	videoPath, err := u.acquire(ctx, in)
	if err != nil {
		return res, err
	}
	res.Artifacts.SourceVideo = videoPath
	res.Stage = types.StageAcquired

	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, videoPath, wav); err != nil {
		return res, err
	}
	res.Artifacts.AudioWAV = wav

	srtPath, n, err := u.transcribe(ctx, in, wav)
	if err != nil {
		return res, err
	}
	res.Artifacts.SourceSubs = srtPath
	res.Entries = n
	res.Stage = types.StageTranscribed
	in.Logf("SRT file created at %s", srtPath)

	translated, fallbacks, err := u.translateFile(ctx, in, srtPath)
	if err != nil {
		return res, err
	}
	res.Artifacts.TranslatedSubs = translated
	res.Fallbacks = fallbacks
	res.Stage = types.StageTranslated
	in.Logf("Translated SRT file created at %s", translated)

	mp4, out, err := u.render(ctx, in, videoPath, translated)
	if mp4 != videoPath {
		res.Artifacts.TranscodedMP4 = mp4
	}
	if err != nil {
		return res, err
	}
	res.Artifacts.OutputVideo = out
	res.Stage = types.StageRendered
	in.Logf("Video with embedded subtitles created at %s", out)
	return res, nil
}

func (u Usecase) acquire(ctx context.Context, in Input) (string, error) {
	switch {
	case in.URL != "" && in.VideoPath == "":
		in.Logf("downloading %s", in.URL)
		p, err := u.d.Downloader.Download(ctx, in.URL, in.DownloadDir)
		if err != nil {
			return "", err
		}
		in.Logf("Video downloaded at %s", p)
		return p, nil
	case in.VideoPath != "" && in.URL == "":
		return in.VideoPath, nil
	default:
		return "", ErrSourceRequired
	}
}

func (u Usecase) transcribe(ctx context.Context, in Input, wav string) (string, int, error) {
	in.Logf("transcribing with whisper model %q (language %s)", in.WhisperModel, in.SpeechLang)
	tr, err := u.d.ASR.Transcribe(ctx, wav, in.SpeechLang, in.WhisperModel, in.CacheDir)
	if err != nil {
		return "", 0, err
	}

	in.Progress.Start("Transcribing", len(tr.Segments))
	track := make(subtitles.Track, 0, len(tr.Segments))
	for i, seg := range tr.Segments {
		track = append(track, subtitles.EntryFromSegment(i, seg))
		in.Progress.Advance()
	}
	in.Progress.Done()

	if err := track.Validate(); err != nil {
		return "", 0, fmt.Errorf("transcript: %w", err)
	}
	if err := subtitles.WriteFile(in.SrtOutputPath, track); err != nil {
		return "", 0, fmt.Errorf("write srt: %w", err)
	}
	return in.SrtOutputPath, len(track), nil
}

// render transcodes to mp4 when the container needs it, then burns srtPath in.
// It returns the mp4 that was burned and the output path.
func (u Usecase) render(ctx context.Context, in Input, videoPath, srtPath string) (string, string, error) {
	mp4 := videoPath
	if media.NeedsTranscode(types.NewVideo(videoPath)) {
		mp4 = media.TranscodedPath(videoPath)
		in.Logf("converting %s to %s", videoPath, mp4)
		if err := u.d.Video.TranscodeMP4(ctx, videoPath, mp4); err != nil {
			return videoPath, "", err
		}
	}

	out := media.BurnedPath(mp4)
	in.Logf("burning subtitles into %s", out)
	if err := u.d.Video.BurnSubtitles(ctx, mp4, srtPath, out); err != nil {
		return mp4, "", err
	}
	return mp4, out, nil
}

func withDefaults(in Input) Input {
	if in.Logf == nil {
		in.Logf = func(string, ...any) {}
	}
	if in.Progress == nil {
		in.Progress = nopProgress{}
	}
	if in.CacheDir == "" {
		in.CacheDir = "."
	}
	return in
}

type nopProgress struct{}

func (nopProgress) Start(string, int) {}
func (nopProgress) Advance()          {}
func (nopProgress) Done()             {}
