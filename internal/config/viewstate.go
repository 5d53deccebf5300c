package config

import (
	"net/url"
	"strconv"
	"strings"
)

// ViewState is the part of the configuration that can be shared as URL
// query parameters.
type ViewState struct {
	Demo          string
	ShowFinal     bool
	HideInterface bool
	CanvasSize    int
	// File is the catalogue source; empty means the default.
	File string
}

// DefaultViewState is the state of a link with no parameters.
func DefaultViewState() ViewState {
	return ViewState{ShowFinal: true, CanvasSize: DefaultCanvasSize}
}

// ParseQuery reads a query string such as "demo=Basics&showFinal=false".
// A leading '?' is allowed. Unknown parameters are ignored and invalid
// values fall back to their defaults; a canvasSize above MaxCanvasSize is
// invalid.
func ParseQuery(raw string) (ViewState, error) {
	vs := DefaultViewState()
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return vs, err
	}

	vs.Demo = values.Get("demo")
	if values.Has("showFinal") {
		vs.ShowFinal = values.Get("showFinal") == "true"
	}
	vs.HideInterface = values.Get("hideInterface") == "true"
	if n := leadingInt(values.Get("canvasSize")); n > 0 && n <= MaxCanvasSize {
		vs.CanvasSize = n
	}
	vs.File = values.Get("file")
	return vs, nil
}

// Encode writes only the parameters that differ from the defaults.
func (v ViewState) Encode() string {
	values := url.Values{}
	if v.Demo != "" {
		values.Set("demo", v.Demo)
	}
	if !v.ShowFinal {
		values.Set("showFinal", "false")
	}
	if v.HideInterface {
		values.Set("hideInterface", "true")
	}
	if v.CanvasSize > 0 && v.CanvasSize != DefaultCanvasSize {
		values.Set("canvasSize", strconv.Itoa(v.CanvasSize))
	}
	if v.File != "" && v.File != DefaultCatalog {
		values.Set("file", v.File)
	}
	return values.Encode()
}

// Apply copies the view state into cfg.
func (v ViewState) Apply(cfg *Config) {
	if v.Demo != "" {
		cfg.Example = v.Demo
	}
	cfg.ShowFinal = v.ShowFinal
	cfg.HideInterface = v.HideInterface
	if v.CanvasSize > 0 {
		cfg.CanvasSize = v.CanvasSize
	}
	if v.File != "" {
		cfg.Catalog = v.File
	}
}

// ViewStateOf extracts the shareable part of cfg.
func ViewStateOf(cfg Config) ViewState {
	return ViewState{
		Demo:          cfg.Example,
		ShowFinal:     cfg.ShowFinal,
		HideInterface: cfg.HideInterface,
		CanvasSize:    cfg.CanvasSize,
		File:          cfg.Catalog,
	}
}

// leadingInt parses the leading decimal digits of s, so "300px" is 300.
// It returns 0 when there are none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
