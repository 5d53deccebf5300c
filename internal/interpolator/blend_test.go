package interpolator

import (
	"math"
	"testing"

	"github.com/ivlev/transformtoy/internal/canvas"
	"github.com/ivlev/transformtoy/internal/command"
)

var sample = command.List{
	command.Translate{DX: 50, DY: 20},
	command.Rotate{Degrees: 30},
	command.Scale{SX: 2, SY: 0.5},
}

func TestBlendAtBoundaries(t *testing.T) {
	for i := range sample {
		st := BlendAt(sample, float64(i), Forward)
		if got := st.Steps[i].Amt; got != 0 {
			t.Errorf("progress %d: command %d amt = %v, want exactly 0", i, i, got)
		}
		for _, p := range []float64{float64(i + 1), float64(i) + 1.5, 3} {
			st := BlendAt(sample, p, Forward)
			if got := st.Steps[i].Amt; got != 1 {
				t.Errorf("progress %v: command %d amt = %v, want 1", p, i, got)
			}
		}
	}
}

func TestBlendAtFraction(t *testing.T) {
	st := BlendAt(sample, 1.25, Forward)
	want := []float64{1, 0.25, 0}
	for i, a := range st.Amounts() {
		if math.Abs(a-want[i]) > 1e-12 {
			t.Fatalf("Amounts() = %v, want %v", st.Amounts(), want)
		}
	}
	if v := st.Steps[1].Value.(command.Rotate); math.Abs(v.Degrees-7.5) > 1e-12 {
		t.Errorf("rotate value = %v, want 7.5", v.Degrees)
	}
}

func TestBlendAtClampsProgress(t *testing.T) {
	if st := BlendAt(sample, -3, Forward); st.Progress != 0 {
		t.Errorf("Progress = %v, want 0", st.Progress)
	}
	if st := BlendAt(sample, 42, Forward); st.Progress != 3 {
		t.Errorf("Progress = %v, want 3", st.Progress)
	}
	if st := BlendAt(nil, 1, Forward); len(st.Steps) != 0 || st.Progress != 0 {
		t.Errorf("empty list step = %+v", st)
	}
}

func TestBlendAtMonotonic(t *testing.T) {
	// Forward amounts never decrease as progress grows. Reverse reads
	// progress from the end, so its amounts never increase.
	for _, dir := range []Direction{Forward, Reverse} {
		prev := BlendAt(sample, 0, dir).Amounts()
		for k := 1; k <= 300; k++ {
			cur := BlendAt(sample, float64(k)/100, dir).Amounts()
			for i := range cur {
				if float64(dir)*(cur[i]-prev[i]) < 0 {
					t.Fatalf("%v: amt of command %d moved the wrong way at progress %.2f", dir, i, float64(k)/100)
				}
			}
			prev = cur
		}
	}
}

func TestBlendAtReverseMirrors(t *testing.T) {
	rev := BlendAt(sample, 1, Reverse).Amounts()
	fwd := BlendAt(sample, 2, Forward).Amounts()
	n := len(sample)
	for i := range rev {
		if rev[i] != fwd[n-1-i] {
			t.Fatalf("reverse amounts %v are not the mirror of forward %v", rev, fwd)
		}
	}
	if rev[0] != 0 || rev[2] != 1 {
		t.Fatalf("reverse amounts = %v, want [0 1 1]", rev)
	}

	// Order of application is unchanged.
	st := BlendAt(sample, 1, Reverse)
	for i, b := range st.Steps {
		if b.Index != i || b.Command != sample[i] {
			t.Fatalf("step %d = %+v, want list order", i, b)
		}
	}
}

func TestBlendAtReverseDisabledWithStackOps(t *testing.T) {
	list := command.List{command.Save{}, command.Translate{DX: 10}, command.Restore{}}
	st := BlendAt(list, 1, Reverse)
	if !st.ReverseDisabled {
		t.Fatal("ReverseDisabled = false, want true")
	}
	if st.Direction != Forward {
		t.Fatalf("Direction = %v, want forward", st.Direction)
	}
	if got := st.Amounts(); got[0] != 1 || got[1] != 0 {
		t.Fatalf("Amounts() = %v, want forward semantics", got)
	}
	if BlendAt(sample, 1, Reverse).ReverseDisabled {
		t.Fatal("ReverseDisabled set for a list without stack ops")
	}
}

func TestSaveRestoreAccumulate(t *testing.T) {
	list := command.List{
		command.Save{},
		command.Translate{DX: 10},
		command.Restore{},
		command.Translate{DX: 5},
	}
	got := Accumulate(BlendAt(list, 4, Forward))
	if want := canvas.Translation(5, 0); !got.Approx(want, 1e-12) {
		t.Fatalf("Accumulate() = %+v, want %+v", got, want)
	}

	// Before the restore runs, the first translate is still in effect.
	got = Accumulate(BlendAt(list, 2, Forward))
	if want := canvas.Translation(10, 0); !got.Approx(want, 1e-12) {
		t.Fatalf("Accumulate() at 2 = %+v, want %+v", got, want)
	}
}

func TestRestoreOnEmptyStackIgnored(t *testing.T) {
	list := command.List{command.Translate{DX: 3}, command.Restore{}}
	got := Accumulate(BlendAt(list, 2, Forward))
	if !got.Approx(canvas.Translation(3, 0), 1e-12) {
		t.Fatalf("Accumulate() = %+v", got)
	}
}

func TestPartialRotateAndScale(t *testing.T) {
	list := command.List{command.Rotate{Degrees: 90}, command.Scale{SX: 2, SY: 1}}
	st := BlendAt(list, 0.5, Forward)

	r := st.Steps[0]
	if r.Amt != 0.5 || r.Value.(command.Rotate).Degrees != 45 {
		t.Fatalf("rotate step = %+v, want amt 0.5 and 45 degrees", r)
	}
	if r.Emphasis <= 0 || r.Emphasis >= 1 || r.Current {
		t.Fatalf("rotate emphasis = %v current=%v, want partial", r.Emphasis, r.Current)
	}

	s := st.Steps[1]
	if s.Amt != 0 || s.Value != (command.Scale{SX: 1, SY: 1}) {
		t.Fatalf("scale step = %+v, want identity scale", s)
	}
	if s.Emphasis != 0 || s.Current {
		t.Fatalf("scale emphasis = %v, want inactive", s.Emphasis)
	}

	want := canvas.Rotation(math.Pi / 4)
	if got := Accumulate(st); !got.Approx(want, 1e-12) {
		t.Fatalf("Accumulate() = %+v, want %+v", got, want)
	}
}

func TestEmphasis(t *testing.T) {
	testCases := []struct {
		name      string
		effective float64
		position  int
		want      float64
		current   bool
	}{
		{name: "on completion point", effective: 1, position: 0, want: 1, current: true},
		{name: "within epsilon", effective: 2.0005, position: 1, want: 1, current: true},
		{name: "half way", effective: 1.5, position: 1, want: 0.5},
		{name: "past", effective: 1.75, position: 0, want: 0.25},
		{name: "far", effective: 0, position: 2, want: 0},
		{name: "exactly one away", effective: 2, position: 2, want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, current := Emphasis(tc.effective, tc.position)
			if math.Abs(got-tc.want) > 1e-9 || current != tc.current {
				t.Fatalf("Emphasis(%v, %d) = %v, %v, want %v, %v", tc.effective, tc.position, got, current, tc.want, tc.current)
			}
		})
	}
}

func TestBlendValue(t *testing.T) {
	testCases := []struct {
		name string
		in   command.Command
		amt  float64
		want command.Command
	}{
		{name: "translate", in: command.Translate{DX: 10, DY: -4}, amt: 0.5, want: command.Translate{DX: 5, DY: -2}},
		{name: "scale from one", in: command.Scale{SX: 3, SY: 0}, amt: 0.5, want: command.Scale{SX: 2, SY: 0.5}},
		{name: "transform from identity", in: command.Transform{A: 3, B: 2, C: 2, D: 3, E: 8, F: -8}, amt: 0.5,
			want: command.Transform{A: 2, B: 1, C: 1, D: 2, E: 4, F: -4}},
		{name: "fill unchanged", in: command.FillRect{W: 4, H: 4}, amt: 0.1, want: command.FillRect{W: 4, H: 4}},
		{name: "zero amt translate", in: command.Translate{DX: 10}, amt: 0, want: command.Translate{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BlendValue(tc.in, tc.amt); got != tc.want {
				t.Fatalf("BlendValue(%v, %v) = %#v, want %#v", tc.in, tc.amt, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if Normalize(-5) != Reverse || Normalize(0) != Forward || Normalize(1) != Forward {
		t.Fatal("Normalize mapping is wrong")
	}
}
