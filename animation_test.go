package inox2d

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func tweenPuppet(t *testing.T) (*Puppet, *Param) {
	t.Helper()
	puppet, _ := testPuppet(t)
	p := NewParam("p", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	puppet.AddParam(p)
	return puppet, p
}

func TestTweenParamReachesTarget(t *testing.T) {
	puppet, p := tweenPuppet(t)

	g := TweenParamValue(puppet, p, Vec2{X: 1}, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(p.Value().X-1) > 0.01 {
		t.Errorf("X = %f, want ~1", p.Value().X)
	}
}

func TestTweenParamMidpoint(t *testing.T) {
	puppet, p := tweenPuppet(t)

	g := TweenParamValue(puppet, p, Vec2{X: 1}, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Fatal("should not be Done at halfway")
	}
	if math.Abs(p.Value().X-0.5) > 0.05 {
		t.Errorf("X = %f, want ~0.5 at halfway", p.Value().X)
	}
}

func TestTweenParam2D(t *testing.T) {
	puppet, _ := testPuppet(t)
	p := NewParam("gaze", true, Vec2{-1, -1}, Vec2{1, 1}, Vec2{})
	puppet.AddParam(p)

	g := TweenParamValue(puppet, p, Vec2{1, -1}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	v := p.Value()
	if math.Abs(v.X-1) > 0.01 || math.Abs(v.Y+1) > 0.01 {
		t.Errorf("value = %v, want ~(1, -1)", v)
	}
}

func TestTweenParamRemovedParamStops(t *testing.T) {
	puppet, p := tweenPuppet(t)

	g := TweenParamValue(puppet, p, Vec2{X: 1}, 1.0, ease.Linear)
	g.Update(0.1)
	saved := p.Value()

	puppet.RemoveParam(p.UUID)
	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after param removed")
	}
	if p.Value() != saved {
		t.Error("value should not change after param removal")
	}
}

func TestTweenParamUpdateAfterDoneIsNoop(t *testing.T) {
	puppet, p := tweenPuppet(t)

	g := TweenParamValue(puppet, p, Vec2{X: 1}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenParamClampsThroughPuppet(t *testing.T) {
	puppet, p := tweenPuppet(t)
	// Target beyond Max: writes clamp at the puppet boundary.
	g := TweenParamValue(puppet, p, Vec2{X: 5}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if p.Value().X != 1 {
		t.Errorf("X = %f, want clamped 1", p.Value().X)
	}
}
