package video

import (
	"context"
	"image"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    []string
	}{
		{"h264_videotoolbox", 75, []string{"-b:v", "7500k"}},
		{"h264_nvenc", 23, []string{"-cq", "23"}},
		{"libx264", 18, []string{"-crf", "18", "-preset", "medium"}},
		{"", 23, []string{"-crf", "23", "-preset", "medium"}},
	}
	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			if got := QualityArgs(tt.encoder, tt.quality); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("QualityArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildArgs(t *testing.T) {
	args := BuildArgs(Params{Path: "out.mp4", Width: 500, Height: 400, FPS: 30, Quality: 23})
	line := strings.Join(args, " ")

	for _, want := range []string{"-f rawvideo", "-pixel_format rgba", "-video_size 500x400", "-framerate 30", "-i -", "-c:v libx264"} {
		if !strings.Contains(line, want) {
			t.Errorf("args %q missing %q", line, want)
		}
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("last arg = %q, want output path", args[len(args)-1])
	}
}

func TestStartRejectsBadSize(t *testing.T) {
	var enc FFmpegEncoder
	if _, err := enc.Start(context.Background(), Params{Width: 0, Height: 10, FPS: 30}); err == nil {
		t.Fatal("Start() with zero width should fail")
	}
}

func TestStreamEncodes(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	path := filepath.Join(t.TempDir(), "clip.mp4")
	var enc FFmpegEncoder
	w, err := enc.Start(context.Background(), Params{Path: path, Width: 16, Height: 16, FPS: 10, Quality: 30})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := w.WriteFrame(image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}
	if err := w.WriteFrame(image.NewRGBA(image.Rect(0, 0, 8, 8))); err == nil {
		t.Error("WriteFrame() with wrong size should fail")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if n := w.(*Stream).Frames(); n != 5 {
		t.Errorf("Frames() = %d, want 5", n)
	}
}
