package inox2d

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Authoring-edit errors. Both leave the grid unchanged.
var (
	// ErrDuplicateAxisPoint is returned when inserting an axis point at a
	// position that already exists.
	ErrDuplicateAxisPoint = errors.New("inox2d: duplicate axis point")
	// ErrMinimumAxisPoints is returned when removing an axis point would
	// leave fewer than two points on a used dimension.
	ErrMinimumAxisPoints = errors.New("inox2d: axis needs at least two points")
)

// minAxisPoints is the minimum axis point count per used dimension.
const minAxisPoints = 2

// Param is a named control axis driving one or more bindings. A Param is 1D
// or 2D; the second component of Min, Max, and Defaults is unused when 1D.
//
// Axis points are monotonically increasing sample positions in parameter
// value space; every binding's keyframe grid is shaped
// (len axis 0) x (len axis 1, or 1 when 1D). Axis edits reshape all owned
// bindings together so the invariant never breaks.
type Param struct {
	UUID     uuid.UUID
	Name     string
	IsVec2   bool
	Min      Vec2
	Max      Vec2
	Defaults Vec2

	value      Vec2
	axisPoints [2][]float64
	bindings   []Binding
}

// NewParam creates a parameter with axis points at the range extremes.
// Panics if the range is not increasing on each used dimension.
func NewParam(name string, isVec2 bool, min, max, defaults Vec2) *Param {
	if min.X >= max.X {
		panic(fmt.Sprintf("inox2d: param %q range X [%v, %v] is not increasing", name, min.X, max.X))
	}
	if isVec2 && min.Y >= max.Y {
		panic(fmt.Sprintf("inox2d: param %q range Y [%v, %v] is not increasing", name, min.Y, max.Y))
	}
	p := &Param{
		UUID:     uuid.New(),
		Name:     name,
		IsVec2:   isVec2,
		Min:      min,
		Max:      max,
		Defaults: defaults,
	}
	p.axisPoints[0] = []float64{min.X, max.X}
	if isVec2 {
		p.axisPoints[1] = []float64{min.Y, max.Y}
	}
	p.value = p.clampValue(defaults)
	return p
}

// Value returns the parameter's current value.
func (p *Param) Value() Vec2 {
	return p.value
}

// setValue stores a clamped parameter value. Callers go through
// Puppet.SetParamValue.
func (p *Param) setValue(v Vec2) {
	p.value = p.clampValue(v)
}

// clampValue limits v to [Min, Max]. The Y component is zeroed for 1D params.
func (p *Param) clampValue(v Vec2) Vec2 {
	out := Vec2{X: clamp(v.X, p.Min.X, p.Max.X)}
	if p.IsVec2 {
		out.Y = clamp(v.Y, p.Min.Y, p.Max.Y)
	}
	return out
}

// Rows returns the grid size along dimension 0.
func (p *Param) Rows() int {
	return len(p.axisPoints[0])
}

// Cols returns the grid size along dimension 1 (1 for 1D params).
func (p *Param) Cols() int {
	if !p.IsVec2 {
		return 1
	}
	return len(p.axisPoints[1])
}

// AxisPoints returns the sample positions along a dimension.
// The returned slice MUST NOT be mutated by the caller.
func (p *Param) AxisPoints(dim int) []float64 {
	p.checkDim(dim)
	return p.axisPoints[dim]
}

// checkDim panics on a dimension this param does not use.
func (p *Param) checkDim(dim int) {
	if dim < 0 || dim > 1 {
		panic(fmt.Sprintf("inox2d: axis dimension %d out of range", dim))
	}
	if dim == 1 && !p.IsVec2 {
		panic(fmt.Sprintf("inox2d: param %q is 1D, has no axis 1", p.Name))
	}
}

// InsertAxisPoint inserts a new sample position along dim, reshaping every
// owned binding's grid. The inserted row/column is estimated by linear
// interpolation from the bracketing rows/columns; inserts beyond either end
// copy the nearest edge. New cells are not marked as explicit keyframes.
// Returns ErrDuplicateAxisPoint (grid unchanged) if pos already exists.
func (p *Param) InsertAxisPoint(dim int, pos float64) error {
	p.checkDim(dim)
	ax := p.axisPoints[dim]

	k := 0
	for k < len(ax) && ax[k] < pos {
		k++
	}
	if k < len(ax) && ax[k] == pos {
		return fmt.Errorf("axis %d already has a point at %v: %w", dim, pos, ErrDuplicateAxisPoint)
	}

	// Interpolation fraction between the old bracketing points. Edge inserts
	// (k at either end) copy the nearest edge row/column instead.
	var t float64
	if k > 0 && k < len(ax) {
		t = (pos - ax[k-1]) / (ax[k] - ax[k-1])
	}

	ax = append(ax, 0)
	copy(ax[k+1:], ax[k:])
	ax[k] = pos
	p.axisPoints[dim] = ax

	for _, b := range p.bindings {
		b.insertAxis(dim, k, t)
	}
	if globalDebug {
		debugCheckGridShape(p)
	}
	return nil
}

// RemoveAxisPoint removes the sample position at index along dim, removing
// the corresponding row/column from every owned binding. Returns
// ErrMinimumAxisPoints (grid unchanged) when the axis is at its minimum of
// two points. Inserting a point and then removing it restores every grid
// exactly.
func (p *Param) RemoveAxisPoint(dim, index int) error {
	p.checkDim(dim)
	ax := p.axisPoints[dim]
	if index < 0 || index >= len(ax) {
		panic(fmt.Sprintf("inox2d: axis index %d out of range [0, %d)", index, len(ax)))
	}
	if len(ax) <= minAxisPoints {
		return fmt.Errorf("axis %d has %d points: %w", dim, len(ax), ErrMinimumAxisPoints)
	}

	copy(ax[index:], ax[index+1:])
	p.axisPoints[dim] = ax[:len(ax)-1]

	for _, b := range p.bindings {
		b.removeAxis(dim, index)
	}
	if globalDebug {
		debugCheckGridShape(p)
	}
	return nil
}

// --- Bindings ---

// BindScalar creates a binding from this param's grid to one scalar output
// (a transform channel or the draw-order key) of the given node. The grid is
// shaped to the param's current axis points, zero-valued, with no explicit
// keyframes. Panics if target is TargetDeform; use BindDeform.
func (p *Param) BindScalar(target BindingTarget, node NodeID) *ScalarBinding {
	if target == TargetDeform {
		panic("inox2d: use BindDeform for deform bindings")
	}
	b := newScalarBinding(p, target, node)
	p.bindings = append(p.bindings, b)
	return b
}

// BindDeform creates a binding from this param's grid to the per-vertex
// deformation of the given node. Every grid cell holds vertexCount offsets;
// the count is fixed for the binding's lifetime and must match the target
// node's mesh vertex count when the puppet is evaluated.
func (p *Param) BindDeform(node NodeID, vertexCount int) *DeformBinding {
	if vertexCount <= 0 {
		panic(fmt.Sprintf("inox2d: deform binding needs a positive vertex count, got %d", vertexCount))
	}
	b := newDeformBinding(p, node, vertexCount)
	p.bindings = append(p.bindings, b)
	return b
}

// RemoveBinding detaches a binding from this param. Returns false if the
// binding does not belong to it.
func (p *Param) RemoveBinding(b Binding) bool {
	for i, have := range p.bindings {
		if have == b {
			copy(p.bindings[i:], p.bindings[i+1:])
			p.bindings[len(p.bindings)-1] = nil
			p.bindings = p.bindings[:len(p.bindings)-1]
			return true
		}
	}
	return false
}

// Bindings returns the param's bindings in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (p *Param) Bindings() []Binding {
	return p.bindings
}

// --- Grid sampling ---

// gridSample is a resolved grid position: the low corner cell indices, the
// interpolation fractions, and the clamped input (kept for cubic mode, which
// interpolates over the whole axis rather than one bracket).
type gridSample struct {
	i, j   int
	tx, ty float64
	x, y   float64
}

// sample locates v in the param's keyframe grid. The value is clamped to
// [Min, Max] first; positions outside the axis range clamp to the nearest
// edge cell with a zero fraction (no extrapolation).
func (p *Param) sample(v Vec2) gridSample {
	v = p.clampValue(v)
	s := gridSample{x: v.X, y: v.Y}
	s.i, s.tx = axisBracket(p.axisPoints[0], v.X)
	if p.IsVec2 {
		s.j, s.ty = axisBracket(p.axisPoints[1], v.Y)
	}
	return s
}

// axisBracket locates the bracketing interval [axis[i], axis[i+1]] containing
// v and the interpolation fraction within it. Out-of-range values clamp to
// the edge cell with fraction 0 or 1; a degenerate bracket yields fraction 0.
func axisBracket(axis []float64, v float64) (i int, t float64) {
	n := len(axis)
	if n <= 1 || v <= axis[0] {
		return 0, 0
	}
	if v >= axis[n-1] {
		return n - 2, 1
	}
	for i = 1; i < n; i++ {
		if v < axis[i] {
			break
		}
	}
	i--
	return i, (v - axis[i]) / (axis[i+1] - axis[i])
}

// apply evaluates every binding at the param's current value and writes the
// results into the tree, in binding insertion order.
func (p *Param) apply(tree *NodeTree) error {
	if globalDebug {
		debugCheckGridShape(p)
	}
	s := p.sample(p.value)
	for _, b := range p.bindings {
		if err := b.apply(s, tree); err != nil {
			return fmt.Errorf("param %q: %w", p.Name, err)
		}
	}
	return nil
}
