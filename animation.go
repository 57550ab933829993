package inox2d

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ParamTween animates a parameter's value toward a target over time. Create
// one with TweenParamValue and call Update(dt) each frame. Values are written
// through Puppet.SetParamValue, so the next Apply picks them up. If the
// parameter is removed from the puppet, the tween stops immediately.
//
// There is no global animation manager — users call Update themselves.
type ParamTween struct {
	tweens [2]*gween.Tween
	count  int
	puppet *Puppet
	param  *Param
	Done   bool
}

// TweenParamValue creates a ParamTween that animates param from its current
// value to the given target over the specified duration using the easing
// function. For a 1D parameter only the X component is animated.
func TweenParamValue(puppet *Puppet, param *Param, to Vec2, duration float32, fn ease.TweenFunc) *ParamTween {
	g := &ParamTween{puppet: puppet, param: param, count: 1}
	from := param.Value()
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	if param.IsVec2 {
		g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
		g.count = 2
	}
	return g
}

// Update advances the tween by dt seconds and records the new parameter
// value. If the parameter has been removed from the puppet, Done is set to
// true and no writes occur.
func (g *ParamTween) Update(dt float32) {
	if g.Done {
		return
	}

	if g.puppet.Param(g.param.UUID) != g.param {
		g.Done = true
		return
	}

	v := g.param.Value()
	allDone := true

	x, finished := g.tweens[0].Update(dt)
	v.X = float64(x)
	if !finished {
		allDone = false
	}
	if g.count == 2 {
		y, finished := g.tweens[1].Update(dt)
		v.Y = float64(y)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	g.puppet.SetParamValue(g.param.UUID, v)
}
