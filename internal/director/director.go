package director

import (
	"fmt"
)

// Director generates step timelines: each command is revealed in turn,
// the animation holds on it, then transitions to the next one.
type Director struct {
	MinDwell   float64 // Minimum hold time per step (seconds)
	MaxDwell   float64 // Maximum hold time per step (seconds)
	Transition float64 // Time spent moving between two steps (seconds)
	Intro      float64 // Hold on the untransformed state before the first step
	Outro      float64 // Hold on the final state
}

// NewDirector creates a new Director with default settings
func NewDirector() *Director {
	return &Director{
		MinDwell:   0.5,
		MaxDwell:   3.0,
		Transition: 0.3,
		Intro:      1.0,
		Outro:      1.0,
	}
}

// GenerateTimeline creates a timeline for a program whose commands are
// described by labels, in the order they are applied. In reverse mode the
// labels are announced from the last command to the first.
func (d *Director) GenerateTimeline(example string, labels []string, totalDuration float64, reverse bool) (*Timeline, error) {
	n := len(labels)
	if n == 0 {
		return nil, fmt.Errorf("no commands to animate")
	}

	dwell := d.calculateDwellTime(totalDuration, n)
	keyframes := d.generateKeyframes(labels, dwell, reverse)

	return &Timeline{
		Version:   "1.0",
		Example:   example,
		Reverse:   reverse,
		Duration:  keyframes[len(keyframes)-1].Time,
		Keyframes: keyframes,
	}, nil
}

// calculateDwellTime determines how long to hold each step
func (d *Director) calculateDwellTime(totalDuration float64, steps int) float64 {
	available := totalDuration - d.Intro - d.Outro - float64(steps)*d.Transition
	if available <= 0 {
		available = totalDuration
	}

	dwell := available / float64(steps)

	if dwell < d.MinDwell {
		dwell = d.MinDwell
	}
	if dwell > d.MaxDwell {
		dwell = d.MaxDwell
	}

	return dwell
}

func (d *Director) generateKeyframes(labels []string, dwell float64, reverse bool) []Keyframe {
	n := len(labels)
	keyframes := []Keyframe{{Time: 0, Progress: 0, Label: "start"}}

	t := d.Intro
	for step := 1; step <= n; step++ {
		hold := dwell
		if step == 1 {
			hold = 0
		}
		t += hold
		// Holding means two keyframes with the same progress.
		keyframes = append(keyframes, Keyframe{Time: t, Progress: float64(step - 1)})

		label := labels[step-1]
		if reverse {
			label = labels[n-step]
		}
		t += d.Transition
		keyframes = append(keyframes, Keyframe{Time: t, Progress: float64(step), Label: label})
	}

	t += dwell + d.Outro
	keyframes = append(keyframes, Keyframe{Time: t, Progress: float64(n), Label: "end"})

	return keyframes
}
