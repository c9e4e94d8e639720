package cli

import (
	"strconv"

	"github.com/forPelevin/vidsub/internal/types"
	"github.com/forPelevin/vidsub/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderSummary lists the artifacts a run produced. Nothing is printed for a
// run that never acquired a video.
func renderSummary(res usecase.Result) string {
	if res.Stage == types.StageIdle {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Artifact", "Value"})

	a := res.Artifacts
	rows := []struct{ k, v string }{
		{"stage", res.Stage.String()},
		{"source video", a.SourceVideo},
		{"subtitles", a.SourceSubs},
		{"entries", strconv.Itoa(res.Entries)},
		{"translated subtitles", a.TranslatedSubs},
		{"untranslated entries", strconv.Itoa(res.Fallbacks)},
		{"transcoded mp4", a.TranscodedMP4},
		{"output video", a.OutputVideo},
	}
	for _, r := range rows {
		if r.v == "" {
			continue
		}
		tw.AppendRow(table.Row{r.k, r.v})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})
	return tw.Render()
}
