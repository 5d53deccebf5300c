// Package catalog loads the list of named example programs the visualizer
// offers. The list is a JSON (or YAML) array of
// {title, transformations} objects where each transformation is a command in
// array form, e.g. ["translate", 10, 20].
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/transformtoy/internal/command"
)

// Example is one entry of the catalogue.
type Example struct {
	Title string
	// Transformations is nil for a "build your own" example whose program is
	// typed in as free text.
	Transformations command.List
}

// Custom reports whether the example has no predefined program.
func (e Example) Custom() bool { return e.Transformations == nil }

// Catalog is an ordered list of examples.
type Catalog []Example

var fold = cases.Fold()

// Find returns the example whose title matches title ignoring case.
func (c Catalog) Find(title string) (Example, bool) {
	want := fold.String(strings.TrimSpace(title))
	for _, e := range c {
		if fold.String(e.Title) == want {
			return e, true
		}
	}
	return Example{}, false
}

// Titles returns the example titles in catalogue order.
func (c Catalog) Titles() []string {
	titles := make([]string, len(c))
	for i, e := range c {
		titles[i] = e.Title
	}
	return titles
}

// rawExample is the wire form shared by JSON and YAML.
type rawExample struct {
	Title           string  `json:"title" yaml:"title"`
	Transformations *[]any `json:"transformations,omitempty" yaml:"transformations,omitempty,flow"`
}

func (c Catalog) raw() []rawExample {
	out := make([]rawExample, len(c))
	for i, e := range c {
		out[i].Title = e.Title
		if e.Custom() {
			continue
		}
		arrays := make([]any, len(e.Transformations))
		for j, cmd := range e.Transformations {
			arrays[j] = command.ToArray(cmd)
		}
		out[i].Transformations = &arrays
	}
	return out
}

// Write stores the catalogue at path, as JSON when the extension is .json
// and as YAML otherwise.
func (c Catalog) Write(path string) error {
	var (
		data []byte
		err  error
	)
	if FormatOf(path) == JSON {
		data, err = json.MarshalIndent(c.raw(), "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(c.raw())
	}
	if err != nil {
		return fmt.Errorf("encode catalogue: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
