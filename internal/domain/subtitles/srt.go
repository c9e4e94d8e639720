package subtitles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	// Text may span several lines joined by "\n".
	Text string
}

type Track []Entry

// Render serializes the track as SRT: every block is followed by a blank line.
func Render(t Track) string {
	var b strings.Builder
	for _, e := range t {
		b.WriteString(strconv.Itoa(e.Index))
		b.WriteString("\n")
		b.WriteString(FormatTimestamp(e.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(e.End))
		b.WriteString("\n")
		b.WriteString(e.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Parse reads SRT blocks separated by blank lines. Sequence numbers and
// timings are taken as written; call Validate to check ordering.
func Parse(s string) (Track, error) {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var (
		out   Track
		block []string
		line  int
	)
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		e, err := parseBlock(block)
		if err != nil {
			return fmt.Errorf("srt block ending at line %d: %w", line, err)
		}
		out = append(out, e)
		block = block[:0]
		return nil
	}
	for _, l := range strings.Split(s, "\n") {
		line++
		if strings.TrimSpace(l) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, strings.TrimRight(l, " \t"))
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseBlock(lines []string) (Entry, error) {
	if len(lines) < 2 {
		return Entry{}, fmt.Errorf("expected sequence and timing lines, got %d line(s)", len(lines))
	}
	idx, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid sequence number %q", lines[0])
	}
	parts := strings.Split(lines[1], "-->")
	if len(parts) != 2 {
		return Entry{}, fmt.Errorf("invalid timing line %q", lines[1])
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Entry{}, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Index: idx,
		Start: start,
		End:   end,
		Text:  strings.Join(lines[2:], "\n"),
	}, nil
}

// Validate checks that entries are numbered 1..n and sorted by start time.
func (t Track) Validate() error {
	for i, e := range t {
		if e.Index != i+1 {
			return fmt.Errorf("entry %d: sequence number %d, want %d", i, e.Index, i+1)
		}
		if e.End < e.Start {
			return fmt.Errorf("entry %d: end %s before start %s", e.Index, FormatTimestamp(e.End), FormatTimestamp(e.Start))
		}
		if i > 0 && e.Start < t[i-1].Start {
			return fmt.Errorf("entry %d: starts before entry %d", e.Index, t[i-1].Index)
		}
	}
	return nil
}

// FormatTimestamp renders d as HH:MM:SS,mmm. Negative durations clamp to zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	ms := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty timestamp")
	}
	// Some writers use a period before the milliseconds.
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes > 59 || seconds > 59 || millis > 999 || hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

func ReadFile(path string) (Track, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	t, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

func WriteFile(path string, t Track) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(Render(t)), 0o644)
}
