package scene

import (
	"math"
	"testing"

	"floatscene/internal/motion"
	"floatscene/internal/pointer"

	"github.com/go-gl/mathgl/mgl64"
)

var farPointer = mgl64.Vec3{1e4, 1e4, 0}

func testConfig() Config {
	return Config{
		Count:  12,
		Depth:  80,
		Speed:  1,
		Aspect: 16.0 / 9.0,
		Seed:   7,
	}
}

func TestEmptyScene(t *testing.T) {
	for _, count := range []int{0, -3} {
		cfg := testConfig()
		cfg.Count = count
		s := New(cfg, pointer.DefaultCamera(cfg.Depth))
		if s.Len() != 0 {
			t.Fatalf("count %d: len = %d, want 0", count, s.Len())
		}
		s.Step(0.016, 1, farPointer)
		if got := s.Click(mgl64.Vec3{0, 0, 15}, mgl64.Vec3{0, 0, -1}, SphereHitTester{Radius: 1}); got != -1 {
			t.Fatalf("click on empty scene hit %d", got)
		}
	}
}

func TestDepthDistribution(t *testing.T) {
	cfg := testConfig()
	s := New(cfg, pointer.DefaultCamera(cfg.Depth))

	objs := s.Objects()
	if objs[0].Traits.Depth != 0 {
		t.Fatalf("first depth = %v, want 0", objs[0].Traits.Depth)
	}
	if objs[0].Traits.SlotX != 0 {
		t.Fatalf("first slot = %v, want 0", objs[0].Traits.SlotX)
	}

	for i, obj := range objs {
		want := math.Round(QuarterCircle(float64(i)/float64(cfg.Count)) * cfg.Depth)
		if obj.Traits.Depth != want {
			t.Fatalf("object %d depth = %v, want %v", i, obj.Traits.Depth, want)
		}
		if i > 0 && obj.Traits.Depth < objs[i-1].Traits.Depth {
			t.Fatalf("depths not ascending at %d", i)
		}
		if obj.Traits.Spin < minSpin || obj.Traits.Spin > maxSpin {
			t.Fatalf("object %d spin %v out of range", i, obj.Traits.Spin)
		}
		if obj.State.Position.Z() != -obj.Traits.Depth {
			t.Fatalf("object %d z = %v, want %v", i, obj.State.Position.Z(), -obj.Traits.Depth)
		}
	}

	_, h0 := s.Camera.ViewportAt(0, cfg.Aspect)
	if math.Abs(objs[0].Traits.Threshold-h0*leadBandScale) > 1e-9 {
		t.Fatalf("lead threshold = %v, want %v", objs[0].Traits.Threshold, h0*leadBandScale)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	cfg := testConfig()
	a := New(cfg, pointer.DefaultCamera(cfg.Depth))
	b := New(cfg, pointer.DefaultCamera(cfg.Depth))

	for i := range a.Objects() {
		if a.Objects()[i].Traits != b.Objects()[i].Traits {
			t.Fatalf("object %d differs between identical seeds", i)
		}
	}
}

func TestHoverBlipKeepsIdlePhase(t *testing.T) {
	cfg := testConfig()
	cam := pointer.DefaultCamera(cfg.Depth)
	blipped := New(cfg, cam)
	steady := New(cfg, cam)

	blipped.Step(0.016, 0.016, farPointer)
	steady.Step(0.016, 0.016, farPointer)

	if !blipped.Hover.Enter() || !blipped.Hover.Leave() {
		t.Fatal("expected both hover transitions to change state")
	}

	blipped.Step(0.016, 0.032, farPointer)
	steady.Step(0.016, 0.032, farPointer)

	for i := range blipped.Objects() {
		got := blipped.Objects()[i].State
		want := steady.Objects()[i].State
		if got.PhaseY != want.PhaseY || got.AccX != want.AccX || got.AccZ != want.AccZ {
			t.Fatalf("object %d phase drifted: %+v vs %+v", i, got, want)
		}
	}
}

func TestHoverFreezesPhase(t *testing.T) {
	cfg := testConfig()
	s := New(cfg, pointer.DefaultCamera(cfg.Depth))

	s.Hover.Enter()
	before := make([]float64, s.Len())
	for i, obj := range s.Objects() {
		before[i] = obj.State.PhaseY
	}
	for i := 0; i < 10; i++ {
		s.Step(0.016, float64(i)*0.016, farPointer)
	}
	for i, obj := range s.Objects() {
		if obj.State.PhaseY != before[i] {
			t.Fatalf("object %d phase moved while hovered", i)
		}
	}
}

func TestHoverTransitions(t *testing.T) {
	var h Hover
	if h.Leave() {
		t.Fatal("leave while idle should be a no-op")
	}
	if !h.Set(true) || h.Set(true) {
		t.Fatal("only the first enter should change state")
	}
	if !h.Hovered() || h.Entries() != 1 {
		t.Fatalf("hovered=%v entries=%d", h.Hovered(), h.Entries())
	}
	if !h.Set(false) || h.Hovered() {
		t.Fatal("leave should clear the flag")
	}
}

func TestClickBouncesNearestObject(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 1
	s := New(cfg, pointer.DefaultCamera(cfg.Depth))

	obj := &s.Objects()[0]
	obj.State.Position = mgl64.Vec3{0, 0, 0}

	origin := mgl64.Vec3{0, 0.5, 15}
	got := s.Click(origin, mgl64.Vec3{0, 0, -1}, SphereHitTester{Radius: 1})
	if got != 0 {
		t.Fatalf("click hit %d, want 0", got)
	}

	v := obj.State.Velocity
	if math.Abs(v.Len()-motion.BounceForce) > 1e-9 {
		t.Fatalf("impulse magnitude = %v, want %v", v.Len(), motion.BounceForce)
	}
	if v.Z() >= 0 || v.Y() >= 0 {
		t.Fatalf("impulse %v should point away from the struck face", v)
	}
}

func TestClickMissIsNoop(t *testing.T) {
	cfg := testConfig()
	s := New(cfg, pointer.DefaultCamera(cfg.Depth))

	got := s.Click(mgl64.Vec3{500, 500, 15}, mgl64.Vec3{0, 0, -1}, SphereHitTester{Radius: 0.5})
	if got != -1 {
		t.Fatalf("click hit %d, want -1", got)
	}
	for i, obj := range s.Objects() {
		if obj.State.Velocity != (mgl64.Vec3{}) {
			t.Fatalf("object %d gained velocity on a miss", i)
		}
	}
}

func TestSphereHitBehindOrigin(t *testing.T) {
	obj := &Object{}
	obj.State.Position = mgl64.Vec3{0, 0, 20}
	if _, ok := (SphereHitTester{Radius: 1}).Hit(obj, mgl64.Vec3{0, 0, 15}, mgl64.Vec3{0, 0, -1}); ok {
		t.Fatal("sphere behind the ray origin should not be hit")
	}
}

func TestResizeKeepsPhaseInBand(t *testing.T) {
	cfg := testConfig()
	s := New(cfg, pointer.DefaultCamera(cfg.Depth))

	s.Resize(0.5)
	for i, obj := range s.Objects() {
		w, _ := s.Camera.ViewportAt(-obj.Traits.Depth, 0.5)
		if math.Abs(obj.Traits.SlotX-obj.SlotNorm*w) > 1e-9 {
			t.Fatalf("object %d slot not rescaled", i)
		}
		if math.Abs(obj.State.PhaseY) > obj.Traits.Threshold {
			t.Fatalf("object %d phase %v outside band %v", i, obj.State.PhaseY, obj.Traits.Threshold)
		}
	}
}

func TestLODSelect(t *testing.T) {
	cases := []struct {
		dist float64
		want Detail
	}{
		{0, DetailFull},
		{65, DetailFull},
		{199.9, DetailFull},
		{200, DetailLow},
		{299, DetailLow},
		{300, DetailHidden},
		{1e6, DetailHidden},
	}
	for _, c := range cases {
		if got := DefaultLOD.Select(c.dist); got != c.want {
			t.Fatalf("Select(%v) = %v, want %v", c.dist, got, c.want)
		}
	}
}

func TestDefaultFieldDrawsAtFullDetail(t *testing.T) {
	cfg := Config{Count: 80, Depth: 80, Speed: 1, Aspect: 21.0 / 9.0, Seed: 3}
	s := New(cfg, pointer.DefaultCamera(cfg.Depth))
	camPos := s.Camera.Position

	for frame := 0; frame < 600; frame++ {
		s.Step(0.1, float64(frame)*0.1, farPointer)
		for i, obj := range s.Objects() {
			if got := DefaultLOD.Select(obj.State.Position.Sub(camPos).Len()); got != DetailFull {
				t.Fatalf("frame %d object %d at %v drawn %v, want full", frame, i, obj.State.Position, got)
			}
		}
	}
}

func TestProximityBounceIsTransient(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 1
	s := New(cfg, pointer.DefaultCamera(cfg.Depth))
	obj := &s.Objects()[0]

	s.Step(0.016, 0, obj.State.Position.Add(mgl64.Vec3{-0.5, 0, 0}))
	if obj.State.Offset.Len() == 0 {
		t.Fatal("pointer next to the object did not push it")
	}

	for frame := 0; frame < 3000; frame++ {
		s.Step(0.016, float64(frame)*0.016, farPointer)
	}

	w, h := s.Camera.ViewportAt(0, cfg.Aspect)
	if got := obj.State.Offset.Len(); got > 1e-6 {
		t.Fatalf("offset = %v after settling (viewport %vx%v), want ~0", got, w, h)
	}
	if !obj.State.Position.ApproxEqualThreshold(obj.State.Base, 1e-6) {
		t.Fatalf("position = %v, want base %v", obj.State.Position, obj.State.Base)
	}
}

func TestEasingByName(t *testing.T) {
	if _, ok := EasingByName("bogus"); ok {
		t.Fatal("unknown easing should report false")
	}
	e, ok := EasingByName("linear")
	if !ok || e(0.25) != 0.25 {
		t.Fatal("linear easing not resolved")
	}
	if QuarterCircle(0) != 0 || QuarterCircle(1) != 1 {
		t.Fatal("quarter circle endpoints wrong")
	}
	if QuarterCircle(0.5) <= 0.5 {
		t.Fatal("quarter circle should bias toward the far plane")
	}
}
