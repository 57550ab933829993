package inox2d

// Vec2 is a 2D vector used for positions, deform offsets, and parameter
// values throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Channel identifies one scalar transform channel on a node. Parameter
// bindings write channel offsets; the node composes them with its base
// transform.
type Channel uint8

const (
	ChannelTX Channel = iota // translation X
	ChannelTY                // translation Y
	ChannelSX                // scale X
	ChannelSY                // scale Y
	ChannelRX                // rotation about the X axis (foreshortens Y)
	ChannelRY                // rotation about the Y axis (foreshortens X)
	ChannelRZ                // rotation in the 2D plane (radians)
)

// numChannels is the size of a node's channel offset array.
const numChannels = 7

// BindingTarget identifies the output a binding writes: one of the seven
// transform channels, the node's draw-order key, or a per-vertex deformation.
type BindingTarget uint8

const (
	TargetZSort       BindingTarget = iota // draw-order key
	TargetTransformTX                      // translation X
	TargetTransformTY                      // translation Y
	TargetTransformSX                      // scale X
	TargetTransformSY                      // scale Y
	TargetTransformRX                      // rotation about X
	TargetTransformRY                      // rotation about Y
	TargetTransformRZ                      // rotation about Z
	TargetDeform                           // per-vertex 2D offsets
)

// channel maps a transform target to its node channel. ok is false for
// TargetZSort and TargetDeform.
func (t BindingTarget) channel() (Channel, bool) {
	switch t {
	case TargetTransformTX:
		return ChannelTX, true
	case TargetTransformTY:
		return ChannelTY, true
	case TargetTransformSX:
		return ChannelSX, true
	case TargetTransformSY:
		return ChannelSY, true
	case TargetTransformRX:
		return ChannelRX, true
	case TargetTransformRY:
		return ChannelRY, true
	case TargetTransformRZ:
		return ChannelRZ, true
	}
	return 0, false
}

// InterpolateMode selects how a binding resolves values between keyframes.
type InterpolateMode uint8

const (
	InterpolateLinear  InterpolateMode = iota // piecewise linear (bilinear for 2D params)
	InterpolateNearest                        // snap to the closest keyframe
	InterpolateCubic                          // Akima spline through the axis keyframes
)

// lerp linearly interpolates between a and b. t=0 yields a, t=1 yields b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpVec2 linearly interpolates both components.
func lerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{lerp(a.X, b.X, t), lerp(a.Y, b.Y, t)}
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
