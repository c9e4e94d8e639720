package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forPelevin/vidsub/internal/domain/subtitles"
	"github.com/forPelevin/vidsub/internal/ports"
)

// translateFile reads srcPath, translates every entry and writes the result
// next to it with the target language appended to the name. The source file
// is left untouched.
func (u Usecase) translateFile(ctx context.Context, in Input, srcPath string) (string, int, error) {
	src, err := subtitles.ReadFile(srcPath)
	if err != nil {
		return "", 0, err
	}
	out, fallbacks, err := u.translateTrack(ctx, in, src)
	if err != nil {
		return "", 0, err
	}
	dstPath := subtitles.TranslatedPath(srcPath, in.TargetLang)
	if err := subtitles.WriteFile(dstPath, out); err != nil {
		return "", 0, fmt.Errorf("write translated srt: %w", err)
	}
	return dstPath, fallbacks, nil
}

// translateTrack returns a new track with the same numbering and timings.
// Multi-line text is joined with spaces and sent as one request. An empty
// provider response keeps the joined source text; any other error aborts.
func (u Usecase) translateTrack(ctx context.Context, in Input, src subtitles.Track) (subtitles.Track, int, error) {
	out := make(subtitles.Track, 0, len(src))
	fallbacks := 0

	in.Progress.Start("Translating", len(src))
	defer in.Progress.Done()
	for _, e := range src {
		text := strings.Join(strings.Split(e.Text, "\n"), " ")
		translated, err := u.d.Translator.Translate(ctx, text, in.SrcLang, in.TargetLang)
		switch {
		case errors.Is(err, ports.ErrEmptyTranslation):
			in.Logf("failed to translate subtitle %d, keeping original text: %s", e.Index, text)
			translated = text
			fallbacks++
		case err != nil:
			return nil, 0, fmt.Errorf("translate subtitle %d: %w", e.Index, err)
		default:
			translated = dropBlankLines(translated)
			in.Logf("translated subtitle %d: %s", e.Index, translated)
		}
		out = append(out, subtitles.Entry{
			Index: e.Index,
			Start: e.Start,
			End:   e.End,
			Text:  translated,
		})
		in.Progress.Advance()
	}
	return out, fallbacks, nil
}

// dropBlankLines keeps provider output from splitting an SRT block in two.
func dropBlankLines(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
