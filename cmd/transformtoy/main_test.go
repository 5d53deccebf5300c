package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ivlev/transformtoy/internal/catalog"
	"github.com/ivlev/transformtoy/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	lipgloss.SetColorProfile(termenv.Ascii)
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	ok := writeFile(t, "ok.txt", "translate(10, 20)\n\nrotate(45)\nsave()\nrestore()\n")
	out, err := run(t, "validate", ok)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "✓ 4 valid commands") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "reverse playback is disabled") {
		t.Errorf("output = %q, want the reverse note", out)
	}

	bad := writeFile(t, "bad.txt", "translate(1, 2)\nscale(1)\n")
	_, err = run(t, "validate", bad)
	if err == nil || err.Error() != "Line 2: scale requires 2 parameters (x, y), got 1" {
		t.Errorf("validate error = %v", err)
	}
}

func TestLinkCommand(t *testing.T) {
	out, err := run(t, "link", "--demo", "Rotate Then Translate", "--show-final=false", "--size", "300")
	if err != nil {
		t.Fatalf("link error = %v", err)
	}
	want := "index.html?canvasSize=300&demo=Rotate+Then+Translate&showFinal=false"
	if strings.TrimSpace(out) != want {
		t.Errorf("link = %q, want %q", strings.TrimSpace(out), want)
	}

	qr := filepath.Join(t.TempDir(), "link.png")
	if _, err := run(t, "link", "--qr", qr); err != nil {
		t.Fatalf("link --qr error = %v", err)
	}
	if _, err := os.Stat(qr); err != nil {
		t.Errorf("qr code not written: %v", err)
	}
}

func TestBuildLink(t *testing.T) {
	vs := config.DefaultViewState()
	if got := BuildLink("index.html", vs); got != "index.html" {
		t.Errorf("BuildLink(defaults) = %q", got)
	}
	vs.HideInterface = true
	if got := BuildLink("page?x=1", vs); got != "page?x=1&hideInterface=true" {
		t.Errorf("BuildLink() = %q", got)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	prog := writeFile(t, "prog.txt", "translate(20, 0)\nfillRect(0, 0, 10, 10)\n")
	png := filepath.Join(dir, "frame.png")

	out, err := run(t, "render", "--file", prog, "--size", "100", "-o", png, "--regions", "color:blue")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if _, err := os.Stat(png); err != nil {
		t.Fatalf("png not written: %v", err)
	}
	for _, want := range []string{"context.translate(20.0,0.0);", "context.fillRect(0,0,10,10);", "region(s) matching color:blue", "Centroid"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListCommand(t *testing.T) {
	list := writeFile(t, "examples.json", `[{"title": "Spin", "transformations": [["rotate", 30]]}, {"title": "Yours"}]`)
	out, err := run(t, "--catalog", list, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "Spin") || !strings.Contains(out, "free text") {
		t.Errorf("output = %q", out)
	}
}

func TestListWrite(t *testing.T) {
	list := writeFile(t, "examples.json", `[{"title": "Spin", "transformations": [["rotate", 30], 7]}, {"title": "Yours"}]`)
	dst := filepath.Join(t.TempDir(), "converted", "examples.yaml")
	out, err := run(t, "--catalog", list, "list", "--write", dst)
	if err != nil {
		t.Fatalf("list --write error = %v", err)
	}
	if !strings.Contains(out, "Wrote 2 examples") {
		t.Errorf("output = %q", out)
	}

	cat, err := catalog.Load(context.Background(), dst)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", dst, err)
	}
	if len(cat) != 2 || len(cat[0].Transformations) != 1 || !cat[1].Custom() {
		t.Errorf("converted catalogue = %+v", cat)
	}
}

func TestExportPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	prog := writeFile(t, "prog.txt", "rotate(90)\n")
	out, err := run(t, "export", "--file", prog, "--format", "png", "-o", dir, "--fps", "4", "--workers", "2", "--no-panel")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("no frames written: %v", err)
	}
	if !strings.Contains(out, "Exported") {
		t.Errorf("output = %q", out)
	}
}
