package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestKeyValuesAligns(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	out := KeyValues("  ", KV("Title", "Spin"), KV("Commands", "3"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("KeyValues() = %q", out)
	}
	if lines[0] != "  Title:    Spin" || lines[1] != "  Commands: 3" {
		t.Errorf("KeyValues() = %q", lines)
	}
}

func TestProgressBar(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	testCases := []struct {
		value, max float64
		want       string
	}{
		{0, 4, "░░░░░░░░  0.00 / 4"},
		{2, 4, "████░░░░  2.00 / 4"},
		{9, 4, "████████  9.00 / 4"},
		{0, 0, "░░░░░░░░  0.00 / 0"},
	}
	for _, tc := range testCases {
		if got := ProgressBar(tc.value, tc.max, 8); got != tc.want {
			t.Errorf("ProgressBar(%v, %v) = %q, want %q", tc.value, tc.max, got, tc.want)
		}
	}
}

func TestMessages(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	if got := SuccessMsg("%d valid", 3); got != "✓ 3 valid" {
		t.Errorf("SuccessMsg() = %q", got)
	}
	if got := ErrorMsg("Line %d: bad", 2); got != "✗ Line 2: bad" {
		t.Errorf("ErrorMsg() = %q", got)
	}
}
