package interpolator

import (
	"github.com/ivlev/transformtoy/internal/director"
)

// InterpolateKeyframes calculates the progress at a given time by easing
// between the surrounding timeline keyframes.
func InterpolateKeyframes(keyframes []director.Keyframe, currentTime float64) float64 {
	if len(keyframes) == 0 {
		return 0
	}

	// Before the first keyframe, hold on it
	if currentTime <= keyframes[0].Time {
		return keyframes[0].Progress
	}

	// After the last keyframe, hold on it
	last := keyframes[len(keyframes)-1]
	if currentTime >= last.Time {
		return last.Progress
	}

	// Find surrounding keyframes
	var prevKf, nextKf director.Keyframe
	for i := 0; i < len(keyframes)-1; i++ {
		if currentTime >= keyframes[i].Time && currentTime < keyframes[i+1].Time {
			prevKf = keyframes[i]
			nextKf = keyframes[i+1]
			break
		}
	}

	timeDelta := nextKf.Time - prevKf.Time
	if timeDelta == 0 {
		return nextKf.Progress
	}
	t := EaseInOutCubic((currentTime - prevKf.Time) / timeDelta)

	return Lerp(prevKf.Progress, nextKf.Progress, t)
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseInOutCubic maps t in [0, 1] onto a smooth in-out curve. It returns
// exactly 0 and 1 at the ends.
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
