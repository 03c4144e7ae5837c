package detect_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/keyboard"
)

//	+---+---+   +---+
//	| a | b |   | c |
//	+---+---+   +---+
//	0   10  20  30  40
func rowLayout() *keyboard.Layout {
	return keyboard.NewLayout([]keyboard.Key{
		{X: 0, Y: 0, Width: 10, Height: 10, Code: 'a'},
		{X: 10, Y: 0, Width: 10, Height: 10, Code: 'b'},
		{X: 30, Y: 0, Width: 10, Height: 10, Code: 'c'},
	}, keyboard.LayoutOptions{GridWidth: 4, GridHeight: 1})
}

func proximity(correction bool, threshold float64) *detect.ProximityDetector {
	return detect.NewProximityDetector(detect.Config{
		ProximityCorrection: correction,
		ProximityThreshold:  threshold,
	}, zerolog.Nop())
}

func TestCandidateBuffer(t *testing.T) {

	t.Run("keeps the smallest distances sorted", func(t *testing.T) {
		buf := detect.NewCandidateBuffer(3)
		for i, d := range []int{5, 3, 8, 1} {
			buf.Insert(detect.Candidate{Key: keyboard.KeyIndex(i), Distance: d})
		}
		var distances []int
		for _, c := range buf.Candidates() {
			distances = append(distances, c.Distance)
		}
		if diff := cmp.Diff([]int{1, 3, 5}, distances); diff != "" {
			t.Errorf("unexpected distances (-want +got):\n%s", diff)
		}
		if !buf.KeyAt(3).IsNone() {
			t.Error("slot beyond length is not NoKey")
		}
	})

	t.Run("insert positions", func(t *testing.T) {
		buf := detect.NewCandidateBuffer(2)
		if pos := buf.Insert(detect.Candidate{Key: 0, Distance: 4}); pos != 0 {
			t.Errorf("first insert at %d", pos)
		}
		if pos := buf.Insert(detect.Candidate{Key: 1, Distance: 9}); pos != 1 {
			t.Errorf("farther insert at %d", pos)
		}
		if pos := buf.Insert(detect.Candidate{Key: 2, Distance: 16}); pos != 2 {
			t.Errorf("dropped insert reported %d, expected capacity", pos)
		}
		if pos := buf.Insert(detect.Candidate{Key: 3, Distance: 1}); pos != 0 {
			t.Errorf("closest insert at %d", pos)
		}
		if buf.Len() != 2 || buf.KeyAt(0) != keyboard.SomeKey(3) || buf.KeyAt(1) != keyboard.SomeKey(0) {
			t.Errorf("unexpected contents %v", buf.Candidates())
		}
	})

	t.Run("inside wins ties", func(t *testing.T) {
		buf := detect.NewCandidateBuffer(3)
		buf.Insert(detect.Candidate{Key: 0, Distance: 0, Inside: false})
		buf.Insert(detect.Candidate{Key: 1, Distance: 0, Inside: true})
		buf.Insert(detect.Candidate{Key: 2, Distance: 0, Inside: false})
		expected := []keyboard.MaybeKey{keyboard.SomeKey(1), keyboard.SomeKey(0), keyboard.SomeKey(2)}
		for pos, k := range expected {
			if buf.KeyAt(pos) != k {
				t.Errorf("rank %d is %s, expected %s", pos, buf.KeyAt(pos), k)
			}
		}
	})

	t.Run("copies are independent", func(t *testing.T) {
		a := detect.NewCandidateBuffer(2)
		a.Insert(detect.Candidate{Key: 0, Distance: 1})
		b := a
		b.Insert(detect.Candidate{Key: 1, Distance: 0})
		if a.Len() != 1 || a.KeyAt(0) != keyboard.SomeKey(0) {
			t.Error("insert into copy changed original")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		buf := detect.NewCandidateBuffer(2)
		buf.Insert(detect.Candidate{Key: 0, Distance: 1})
		buf.Reset()
		if buf.Len() != 0 || buf.Capacity() != 2 {
			t.Error("reset buffer not empty or lost capacity")
		}
	})

	t.Run("zero capacity panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("no panic on zero capacity")
			}
		}()
		detect.NewCandidateBuffer(0)
	})
}

func TestProximityDetector(t *testing.T) {
	l := rowLayout()

	t.Run("inside a single key", func(t *testing.T) {
		r := proximity(true, 3).Resolve(l, 35, 5, true)
		if r.Key != keyboard.SomeKey(2) {
			t.Errorf("resolved %s, expected 2", r.Key)
		}
		if diff := cmp.Diff([]keyboard.Code{'c'}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}
		if r.Candidates.KeyAt(0) != keyboard.SomeKey(2) {
			t.Error("resolved key not ranked first")
		}
	})

	t.Run("near but not inside", func(t *testing.T) {
		r := proximity(true, 3).Resolve(l, 22, 5, true)
		if !r.Key.IsNone() {
			t.Errorf("resolved %s for a point outside all keys", r.Key)
		}
		if diff := cmp.Diff([]keyboard.Code{'b'}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}
		if r.Candidates.KeyAt(0) != keyboard.SomeKey(1) {
			t.Error("near key not ranked first")
		}
	})

	t.Run("correction disabled", func(t *testing.T) {
		r := proximity(false, 3).Resolve(l, 22, 5, true)
		if !r.Key.IsNone() {
			t.Errorf("resolved %s", r.Key)
		}
		if diff := cmp.Diff([]keyboard.Code{keyboard.NoCode}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}
		r = proximity(false, 3).Resolve(l, 5, 5, true)
		if r.Key != keyboard.SomeKey(0) {
			t.Errorf("resolved %s inside a, expected 0", r.Key)
		}
	})

	t.Run("shared edge goes to the key it is inside of", func(t *testing.T) {
		r := proximity(true, 3).Resolve(l, 10, 5, true)
		if r.Key != keyboard.SomeKey(1) {
			t.Errorf("resolved %s, expected 1", r.Key)
		}
		if diff := cmp.Diff([]keyboard.Code{'b', 'a'}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}
	})

	t.Run("off layout", func(t *testing.T) {
		for _, p := range [][2]int{{-5, 5}, {5, -5}, {1000, 1000}, {-1 << 20, 3}} {
			r := proximity(true, 0).Resolve(l, p[0], p[1], true)
			if !r.Key.IsNone() {
				t.Errorf("resolved %s for %v", r.Key, p)
			}
			if diff := cmp.Diff([]keyboard.Code{keyboard.NoCode}, r.Nearby); diff != "" {
				t.Errorf("unexpected nearby codes for %v (-want +got):\n%s", p, diff)
			}
		}
	})

	t.Run("nearby codes not requested", func(t *testing.T) {
		r := proximity(true, 3).Resolve(l, 35, 5, false)
		if r.Nearby != nil {
			t.Errorf("got nearby codes %v", r.Nearby)
		}
	})

	t.Run("default threshold ranks all close keys", func(t *testing.T) {
		r := proximity(true, 0).Resolve(l, 25, 5, true)
		if diff := cmp.Diff([]keyboard.Code{'b', 'c'}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		d := proximity(true, 0)
		for _, p := range [][2]int{{3, 3}, {10, 0}, {22, 9}, {39, 9}} {
			a := d.Resolve(l, p[0], p[1], true)
			b := d.Resolve(l, p[0], p[1], true)
			if a.Key != b.Key || !cmp.Equal(a.Nearby, b.Nearby) {
				t.Errorf("results for %v differ: %v / %v", p, a, b)
			}
		}
	})

	t.Run("correction offset and clamping", func(t *testing.T) {
		d := detect.NewProximityDetector(detect.Config{CorrectionX: -10}, zerolog.Nop())
		if r := d.Resolve(l, 45, 5, false); r.Key != keyboard.SomeKey(2) {
			t.Errorf("corrected point resolved %s, expected 2", r.Key)
		}
		d = detect.NewProximityDetector(detect.Config{ClampToLayout: true}, zerolog.Nop())
		if r := d.Resolve(l, 100, -20, false); r.Key != keyboard.SomeKey(2) {
			t.Errorf("clamped point resolved %s, expected 2", r.Key)
		}
	})

	t.Run("non-printable keys only in the first slot", func(t *testing.T) {
		l := keyboard.NewLayout([]keyboard.Key{
			{X: 0, Y: 0, Width: 10, Height: 10, Code: keyboard.CodeShift},
			{X: 20, Y: 0, Width: 10, Height: 10, Code: 'x'},
		}, keyboard.LayoutOptions{})
		d := proximity(true, 9)

		r := d.Resolve(l, 12, 5, true)
		if diff := cmp.Diff([]keyboard.Code{keyboard.CodeShift, 'x'}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}
		r = d.Resolve(l, 17, 5, true)
		if diff := cmp.Diff([]keyboard.Code{'x'}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}
	})

	t.Run("edge key owns the space beyond the edge", func(t *testing.T) {
		l := keyboard.NewLayout([]keyboard.Key{
			{X: 0, Y: 5, Width: 10, Height: 10, Code: 'q', Edges: keyboard.EdgeTop | keyboard.EdgeLeft},
			{X: 10, Y: 5, Width: 10, Height: 10, Code: 'w', Edges: keyboard.EdgeTop | keyboard.EdgeRight},
		}, keyboard.LayoutOptions{})
		if r := proximity(false, 0).Resolve(l, 4, 2, false); r.Key != keyboard.SomeKey(0) {
			t.Errorf("resolved %s above top edge key, expected 0", r.Key)
		}
	})

	t.Run("capacity", func(t *testing.T) {
		if proximity(true, 0).MaxNearbyKeys() != 12 {
			t.Error("capacity not 12")
		}
		if proximity(true, 0).AllowsSlidingInput() {
			t.Error("proximity detector always allows sliding")
		}
	})
}

func TestMoreKeysDetector(t *testing.T) {
	l := keyboard.NewLayout([]keyboard.Key{
		{X: 0, Y: 0, Width: 10, Height: 10, Code: 'e'},
		{X: 10, Y: 0, Width: 10, Height: 10, Code: 'é'},
	}, keyboard.LayoutOptions{})
	d := detect.NewMoreKeysDetector(detect.Config{}, 5, zerolog.Nop())

	t.Run("top allowance is doubled", func(t *testing.T) {
		// squared distance 4²+3² = 25, exactly the allowance
		r := d.Resolve(l, 24, -3, true)
		if r.Key != keyboard.SomeKey(1) {
			t.Errorf("resolved %s above the panel, expected 1", r.Key)
		}
		if diff := cmp.Diff([]keyboard.Code{'é'}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}

		r = d.Resolve(l, 24, 13, true)
		if !r.Key.IsNone() {
			t.Errorf("resolved %s below the panel at the allowance", r.Key)
		}
		if diff := cmp.Diff([]keyboard.Code{keyboard.NoCode}, r.Nearby); diff != "" {
			t.Errorf("unexpected nearby codes (-want +got):\n%s", diff)
		}
	})

	t.Run("beyond doubled allowance", func(t *testing.T) {
		// 6²+5² = 61 > 50
		if r := d.Resolve(l, 26, -5, false); !r.Key.IsNone() {
			t.Errorf("resolved %s", r.Key)
		}
	})

	t.Run("nearest wins", func(t *testing.T) {
		if r := d.Resolve(l, 8, 5, false); r.Key != keyboard.SomeKey(0) {
			t.Errorf("resolved %s, expected 0", r.Key)
		}
		if r := d.Resolve(l, 12, 12, false); r.Key != keyboard.SomeKey(1) {
			t.Errorf("resolved %s, expected 1", r.Key)
		}
	})

	t.Run("single candidate", func(t *testing.T) {
		if d.MaxNearbyKeys() != 1 {
			t.Error("capacity not 1")
		}
		if !d.AllowsSlidingInput() {
			t.Error("more keys detector does not allow sliding")
		}
		if r := d.Resolve(l, 5, 5, false); r.Candidates.Len() != 1 {
			t.Errorf("%d candidates", r.Candidates.Len())
		}
	})
}

func TestDetectorInterface(t *testing.T) {
	detectors := []detect.Detector{
		proximity(true, 0),
		detect.NewMoreKeysDetector(detect.Config{HysteresisDistance: 3}, 5, zerolog.Nop()),
	}
	if detectors[1].Config().HysteresisDistanceSquared() != 9 {
		t.Error("hysteresis not squared")
	}
	if detectors[0].Config().HysteresisDistanceSquared() != 0 {
		t.Error("unset hysteresis not zero")
	}
}
