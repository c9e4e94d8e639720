package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	defaultWhisperModel  = "base"
	defaultSrtOutputPath = "SrtFiles/Translated.srt"
	defaultSrcLang       = "en"
	defaultTargetLang    = "zh-cn"
	defaultDownloadDir   = "DownloadedVideos"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vidsub",
		Short:        "Transcribe, translate and burn subtitles into a video",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}
	root.SilenceErrors = true

	f := root.Flags()
	f.String("url", "", "URL of the video to download")
	f.String("video_path", "", "Path to a local video file")
	f.String("whisper_model", defaultWhisperModel, "Whisper model size (tiny, base, small, medium, large)")
	f.String("srt_output_path", defaultSrtOutputPath, "Where to write the transcribed SRT file")
	f.String("src_lang", defaultSrcLang, "Language spoken in the video")
	f.String("target_lang", defaultTargetLang, "Language to translate subtitles into")
	f.String("config", "", "Optional YAML config file")
	f.String("transcriber", "whispercpp", "Speech recognition backend (whispercpp, openai)")
	f.String("translator", "google", "Translation backend (google, openrouter, none)")
	f.String("download_dir", defaultDownloadDir, "Directory for downloaded videos")
	_ = f.MarkHidden("download_dir")

	return root
}
