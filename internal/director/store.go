package director

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/transformtoy/internal/system"
)

// WriteTimeline saves timeline as YAML, creating the parent directory.
func WriteTimeline(timeline *Timeline, path string) error {
	data, err := yaml.Marshal(timeline)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ReadTimeline loads and checks a timeline written by WriteTimeline or by
// hand. A missing duration is taken from the last keyframe.
func ReadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var timeline Timeline
	if err := yaml.Unmarshal(data, &timeline); err != nil {
		return nil, fmt.Errorf("parse timeline %s: %w", path, err)
	}
	if err := timeline.Validate(); err != nil {
		return nil, fmt.Errorf("timeline %s: %w", path, err)
	}
	if timeline.Duration <= 0 {
		timeline.Duration = timeline.Keyframes[len(timeline.Keyframes)-1].Time
	}
	return &timeline, nil
}

// GenerateTimelinePath creates a timestamped timeline filename inside dir
func GenerateTimelinePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("timeline_%s.yaml", timestamp))
}

// FindLatestTimeline finds the most recent timeline file in dir
func FindLatestTimeline(dir string) (string, error) {
	path, err := system.FindLatest(dir, ".yaml", ".yml")
	if err != nil {
		return "", fmt.Errorf("find timeline: %w", err)
	}
	return path, nil
}
