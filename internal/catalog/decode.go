package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/transformtoy/internal/command"
)

// ErrNotArray reports a command entry that is not a [name, args...] array.
var ErrNotArray = errors.New("command is not an array")

// Format selects the document syntax of a catalogue.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatOf guesses the format from a file name or URL path.
func FormatOf(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Decode reads a catalogue document. A malformed document is an error.
// Malformed commands inside an otherwise valid document are skipped and
// reported as warnings so the rest of the example still renders.
func Decode(r io.Reader, format Format) (Catalog, []error, error) {
	var raw []rawExample
	switch format {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return nil, nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("decode json: %w", err)
		}
	}

	var warnings []error
	cat := make(Catalog, 0, len(raw))
	for _, re := range raw {
		e := Example{Title: re.Title}
		if re.Transformations != nil {
			e.Transformations = make(command.List, 0, len(*re.Transformations))
			for i, v := range *re.Transformations {
				cmd, err := decodeCommand(v)
				if err != nil {
					err = fmt.Errorf("example %q command %d: %w", re.Title, i+1, err)
					slog.Warn("Skipping malformed command", "example", re.Title, "index", i+1, "err", err)
					warnings = append(warnings, err)
					continue
				}
				e.Transformations = append(e.Transformations, cmd)
			}
		}
		cat = append(cat, e)
	}
	return cat, warnings, nil
}

func decodeCommand(v any) (command.Command, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, v)
	}
	return command.FromArray(arr)
}
