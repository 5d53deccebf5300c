package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.CanvasSize = 0
	cfg.FPS = 0
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"canvas size", "fps", "log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %v, want it to mention %q", err, want)
		}
	}
}

func TestValidateCanvasSizeLimit(t *testing.T) {
	cfg := Default()
	cfg.CanvasSize = MaxCanvasSize + 1
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "canvas size") {
		t.Fatalf("Validate() = %v, want canvas size error", err)
	}
	cfg.CanvasSize = MaxCanvasSize
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transformtoy.yaml")
	data := "canvas_size: 300\nloop: true\nanimation_duration: 500ms\nexample: Basics\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.CanvasSize != 300 || !cfg.Loop || cfg.Example != "Basics" {
		t.Fatalf("LoadFile() = %+v", cfg)
	}
	if cfg.AnimationDuration != 500*time.Millisecond {
		t.Fatalf("AnimationDuration = %v, want 500ms", cfg.AnimationDuration)
	}
	// untouched keys keep their defaults
	if cfg.SliderStep != 0.02 || cfg.Catalog != DefaultCatalog {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	cfg := Default()
	if err := LoadFile(&cfg, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("canvas_size: [1, 2"), 0644)
	if err := LoadFile(&cfg, path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TRANSFORMTOY_CANVAS_SIZE", "640")
	t.Setenv("TRANSFORMTOY_REVERSE", "true")
	t.Setenv("TRANSFORMTOY_CATALOG", "https://example.com/list.json")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.CanvasSize != 640 || !cfg.Reverse || cfg.Catalog != "https://example.com/list.json" {
		t.Fatalf("ApplyEnv() = %+v", cfg)
	}
	if cfg.FPS != 60 {
		t.Fatalf("unset variables must keep defaults, FPS = %d", cfg.FPS)
	}
}

func TestApplyEnvError(t *testing.T) {
	t.Setenv("TRANSFORMTOY_FPS", "fast")
	cfg := Default()
	err := ApplyEnv(&cfg)
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("ApplyEnv() = %v, want parse env error", err)
	}
}

func TestParseQuery(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want ViewState
	}{
		{name: "empty", in: "", want: DefaultViewState()},
		{
			name: "all",
			in:   "?demo=Rotate%20about%20a%20point&showFinal=false&hideInterface=true&canvasSize=300",
			want: ViewState{Demo: "Rotate about a point", ShowFinal: false, HideInterface: true, CanvasSize: 300},
		},
		{name: "showFinal other value", in: "showFinal=yes", want: ViewState{CanvasSize: 500}},
		{name: "canvas size with suffix", in: "canvasSize=320px", want: ViewState{ShowFinal: true, CanvasSize: 320}},
		{name: "canvas size invalid", in: "canvasSize=big", want: DefaultViewState()},
		{name: "canvas size zero", in: "canvasSize=0", want: DefaultViewState()},
		{name: "canvas size too large", in: "canvasSize=100000", want: DefaultViewState()},
		{name: "canvas size at limit", in: "canvasSize=4096", want: ViewState{ShowFinal: true, CanvasSize: MaxCanvasSize}},
		{name: "file", in: "file=more.json", want: ViewState{ShowFinal: true, CanvasSize: 500, File: "more.json"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseQuery(tc.in)
			if err != nil {
				t.Fatalf("ParseQuery(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseQuery(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestViewStateEncodeRoundTrip(t *testing.T) {
	vs := ViewState{Demo: "Scale & rotate", ShowFinal: false, HideInterface: true, CanvasSize: 800, File: "x.json"}
	got, err := ParseQuery(vs.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if got != vs {
		t.Fatalf("round trip = %+v, want %+v", got, vs)
	}

	if enc := DefaultViewState().Encode(); enc != "" {
		t.Fatalf("default Encode() = %q, want empty", enc)
	}
}

func TestViewStateApply(t *testing.T) {
	cfg := Default()
	vs, _ := ParseQuery("demo=Basics&canvasSize=250&hideInterface=true")
	vs.Apply(&cfg)
	if cfg.Example != "Basics" || cfg.CanvasSize != 250 || !cfg.HideInterface || cfg.Catalog != DefaultCatalog {
		t.Fatalf("Apply() = %+v", cfg)
	}
	if back := ViewStateOf(cfg); back.Demo != "Basics" || back.CanvasSize != 250 {
		t.Fatalf("ViewStateOf() = %+v", back)
	}
}
