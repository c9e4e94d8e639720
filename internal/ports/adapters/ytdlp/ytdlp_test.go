package ytdlp

import "testing"

func TestFinalPath(t *testing.T) {
	tests := []struct {
		name    string
		stdout  string
		want    string
		wantErr bool
	}{
		{name: "single", stdout: "DownloadedVideos/Talk.mp4\n", want: "DownloadedVideos/Talk.mp4"},
		{name: "trailing blanks", stdout: "DownloadedVideos/a.webm\n\n  \n", want: "DownloadedVideos/a.webm"},
		{name: "last wins", stdout: "x.f137.mp4\nx.mp4\n", want: "x.mp4"},
		{name: "empty", stdout: " \n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finalPath(tt.stdout)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("finalPath = %q, want %q", got, tt.want)
			}
		})
	}
}
