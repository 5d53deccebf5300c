package director

import "fmt"

// Timeline describes how progress moves over time when an example is
// exported as an animation.
type Timeline struct {
	Version   string     `yaml:"version"`
	Example   string     `yaml:"example"`
	Reverse   bool       `yaml:"reverse,omitempty"`
	Duration  float64    `yaml:"duration"` // Total duration in seconds
	Keyframes []Keyframe `yaml:"keyframes"`
}

// Keyframe pins the progress value at a specific time
type Keyframe struct {
	Time     float64 `yaml:"time"`            // Time offset in seconds
	Progress float64 `yaml:"progress"`        // Progress in [0, N]
	Label    string  `yaml:"label,omitempty"` // Command reached at this keyframe
}

// Steps returns the largest progress value the timeline reaches.
func (t *Timeline) Steps() float64 {
	max := 0.0
	for _, kf := range t.Keyframes {
		if kf.Progress > max {
			max = kf.Progress
		}
	}
	return max
}

// Validate checks that keyframes exist and that time never runs backwards.
func (t *Timeline) Validate() error {
	if len(t.Keyframes) == 0 {
		return fmt.Errorf("no keyframes")
	}
	if t.Duration < 0 {
		return fmt.Errorf("negative duration %v", t.Duration)
	}
	prev := 0.0
	for i, kf := range t.Keyframes {
		if kf.Time < prev {
			return fmt.Errorf("keyframe %d at %vs comes before %vs", i, kf.Time, prev)
		}
		if kf.Progress < 0 {
			return fmt.Errorf("keyframe %d has negative progress %v", i, kf.Progress)
		}
		prev = kf.Time
	}
	return nil
}
