package inox2d

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Binding maps a Param's keyframe grid onto one output of one node: a scalar
// transform channel, the draw-order key, or a per-vertex deformation. The
// two implementations are [ScalarBinding] and [DeformBinding]; both embed a
// shared base (target node, interpolation mode, grid shape, explicit-key
// flags) and differ only in cell payload.
//
// Grids are owned exclusively by their binding and reshaped only through the
// owning Param's axis-point edits, so grid shape always matches the param's
// axis points.
type Binding interface {
	// Node returns the target node reference.
	Node() NodeID
	// Target returns the output this binding writes.
	Target() BindingTarget
	// Mode returns the interpolation mode.
	Mode() InterpolateMode
	// SetMode sets the interpolation mode.
	SetMode(m InterpolateMode)
	// IsSet reports whether cell (i, j) holds an explicit author-provided
	// keyframe rather than an interpolated default. Evaluation never
	// consults this; it exists for authoring tools.
	IsSet(i, j int) bool
	// ClearValue resets cell (i, j) to an implicit keyframe and recomputes
	// its value from the neighboring cells.
	ClearValue(i, j int)

	shape() (rows, cols int)
	insertAxis(dim, k int, t float64)
	removeAxis(dim, index int)
	apply(s gridSample, tree *NodeTree) error
}

// --- Shared base ---

// bindingBase holds the state common to all binding variants. Grids are
// row-major: row index follows axis 0, column index axis 1.
type bindingBase struct {
	owner      *Param
	node       NodeID
	target     BindingTarget
	mode       InterpolateMode
	rows, cols int
	set        []bool
}

func (b *bindingBase) Node() NodeID              { return b.node }
func (b *bindingBase) Target() BindingTarget     { return b.target }
func (b *bindingBase) Mode() InterpolateMode     { return b.mode }
func (b *bindingBase) SetMode(m InterpolateMode) { b.mode = m }

func (b *bindingBase) shape() (int, int) { return b.rows, b.cols }

// idx converts checked cell coordinates to a flat grid index.
func (b *bindingBase) idx(i, j int) int {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		panic(fmt.Sprintf("inox2d: grid cell (%d, %d) out of range %dx%d", i, j, b.rows, b.cols))
	}
	return i*b.cols + j
}

// IsSet reports whether cell (i, j) holds an explicit keyframe.
func (b *bindingBase) IsSet(i, j int) bool {
	return b.set[b.idx(i, j)]
}

// nearestCell snaps a sample to its closest grid cell.
func (b *bindingBase) nearestCell(s gridSample) int {
	i, j := s.i, s.j
	if s.tx >= 0.5 {
		i++
	}
	if b.cols > 1 && s.ty >= 0.5 {
		j++
	}
	return i*b.cols + j
}

// noKey fills inserted flag cells: estimated cells are implicit keyframes.
func noKey(a, b bool) bool { return false }

// --- Row-major grid splicing ---

// gridInsertRow returns a copy of a row-major grid with a new row at k,
// filled with mix of the clamped neighbor rows.
func gridInsertRow[T any](vals []T, rows, cols, k int, mix func(a, b T) T) []T {
	out := make([]T, (rows+1)*cols)
	lo := max(k-1, 0)
	hi := min(k, rows-1)
	copy(out[:k*cols], vals[:k*cols])
	for j := 0; j < cols; j++ {
		out[k*cols+j] = mix(vals[lo*cols+j], vals[hi*cols+j])
	}
	copy(out[(k+1)*cols:], vals[k*cols:])
	return out
}

// gridInsertCol returns a copy of a row-major grid with a new column at k,
// filled with mix of the clamped neighbor columns.
func gridInsertCol[T any](vals []T, rows, cols, k int, mix func(a, b T) T) []T {
	out := make([]T, rows*(cols+1))
	lo := max(k-1, 0)
	hi := min(k, cols-1)
	for i := 0; i < rows; i++ {
		copy(out[i*(cols+1):i*(cols+1)+k], vals[i*cols:i*cols+k])
		out[i*(cols+1)+k] = mix(vals[i*cols+lo], vals[i*cols+hi])
		copy(out[i*(cols+1)+k+1:(i+1)*(cols+1)], vals[i*cols+k:(i+1)*cols])
	}
	return out
}

// gridRemoveRow returns a copy of a row-major grid without row index.
func gridRemoveRow[T any](vals []T, rows, cols, index int) []T {
	out := make([]T, (rows-1)*cols)
	copy(out[:index*cols], vals[:index*cols])
	copy(out[index*cols:], vals[(index+1)*cols:])
	return out
}

// gridRemoveCol returns a copy of a row-major grid without column index.
func gridRemoveCol[T any](vals []T, rows, cols, index int) []T {
	out := make([]T, rows*(cols-1))
	for i := 0; i < rows; i++ {
		copy(out[i*(cols-1):i*(cols-1)+index], vals[i*cols:i*cols+index])
		copy(out[i*(cols-1)+index:(i+1)*(cols-1)], vals[i*cols+index+1:(i+1)*cols])
	}
	return out
}

// cubicAxis evaluates an Akima spline through (xs, ys) at x, clamped to the
// axis range. A spline needs curvature context: with fewer than three points
// it is the same line linear interpolation gives, so fall back.
func cubicAxis(xs, ys []float64, x float64) float64 {
	x = clamp(x, xs[0], xs[len(xs)-1])
	if len(xs) < 3 {
		i, t := axisBracket(xs, x)
		return lerp(ys[i], ys[i+1], t)
	}
	var spline interp.AkimaSpline
	if err := spline.Fit(xs, ys); err != nil {
		panic(fmt.Sprintf("inox2d: bad axis points: %v", err))
	}
	return spline.Predict(x)
}

// --- ScalarBinding ---

// ScalarBinding drives one scalar output (a transform channel or the
// draw-order key) with one float per grid cell.
type ScalarBinding struct {
	bindingBase
	values []float64
}

func newScalarBinding(p *Param, target BindingTarget, node NodeID) *ScalarBinding {
	rows, cols := p.Rows(), p.Cols()
	return &ScalarBinding{
		bindingBase: bindingBase{
			owner:  p,
			node:   node,
			target: target,
			rows:   rows,
			cols:   cols,
			set:    make([]bool, rows*cols),
		},
		values: make([]float64, rows*cols),
	}
}

// Value returns the value stored at cell (i, j), explicit or not.
func (b *ScalarBinding) Value(i, j int) float64 {
	return b.values[b.idx(i, j)]
}

// SetValue stores an explicit keyframe at cell (i, j).
func (b *ScalarBinding) SetValue(i, j int, v float64) {
	ii := b.idx(i, j)
	b.values[ii] = v
	b.set[ii] = true
}

// ClearValue resets cell (i, j) to an implicit keyframe, recomputing its
// value from the neighboring cells: interior cells interpolate the
// bracketing rows by axis position, edge cells copy their single neighbor.
func (b *ScalarBinding) ClearValue(i, j int) {
	ii := b.idx(i, j)
	b.set[ii] = false
	b.values[ii] = b.defaultCell(i, j)
}

func (b *ScalarBinding) defaultCell(i, j int) float64 {
	ax := b.owner.axisPoints[0]
	switch {
	case i > 0 && i < b.rows-1:
		t := (ax[i] - ax[i-1]) / (ax[i+1] - ax[i-1])
		return lerp(b.cell(i-1, j), b.cell(i+1, j), t)
	case i == 0:
		return b.cell(1, j)
	default:
		return b.cell(b.rows-2, j)
	}
}

// cell is the unchecked fast-path accessor.
func (b *ScalarBinding) cell(i, j int) float64 {
	return b.values[i*b.cols+j]
}

// Evaluate resolves the binding's output at the given parameter value.
// Read-only; values outside the axis range clamp to the nearest edge.
func (b *ScalarBinding) Evaluate(v Vec2) float64 {
	return b.evalAt(b.owner.sample(v))
}

func (b *ScalarBinding) evalAt(s gridSample) float64 {
	switch b.mode {
	case InterpolateNearest:
		return b.values[b.nearestCell(s)]
	case InterpolateCubic:
		return b.cubicAt(s)
	default:
		v0 := lerp(b.cell(s.i, s.j), b.cell(s.i+1, s.j), s.tx)
		if b.cols == 1 {
			return v0
		}
		v1 := lerp(b.cell(s.i, s.j+1), b.cell(s.i+1, s.j+1), s.tx)
		return lerp(v0, v1, s.ty)
	}
}

// cubicAt interpolates along axis 1 within each row, then along axis 0
// through the per-row results. Slower than the linear path; cubic is an
// authoring-quality mode, not a hot path.
func (b *ScalarBinding) cubicAt(s gridSample) float64 {
	ax0 := b.owner.axisPoints[0]
	if b.cols == 1 {
		return cubicAxis(ax0, b.values, s.x)
	}
	ax1 := b.owner.axisPoints[1]
	rowVals := make([]float64, b.rows)
	for i := 0; i < b.rows; i++ {
		rowVals[i] = cubicAxis(ax1, b.values[i*b.cols:(i+1)*b.cols], s.y)
	}
	return cubicAxis(ax0, rowVals, s.x)
}

func (b *ScalarBinding) insertAxis(dim, k int, t float64) {
	mix := func(a, c float64) float64 { return lerp(a, c, t) }
	if dim == 0 {
		b.values = gridInsertRow(b.values, b.rows, b.cols, k, mix)
		b.set = gridInsertRow(b.set, b.rows, b.cols, k, noKey)
		b.rows++
		return
	}
	b.values = gridInsertCol(b.values, b.rows, b.cols, k, mix)
	b.set = gridInsertCol(b.set, b.rows, b.cols, k, noKey)
	b.cols++
}

func (b *ScalarBinding) removeAxis(dim, index int) {
	if dim == 0 {
		b.values = gridRemoveRow(b.values, b.rows, b.cols, index)
		b.set = gridRemoveRow(b.set, b.rows, b.cols, index)
		b.rows--
		return
	}
	b.values = gridRemoveCol(b.values, b.rows, b.cols, index)
	b.set = gridRemoveCol(b.set, b.rows, b.cols, index)
	b.cols--
}

func (b *ScalarBinding) apply(s gridSample, tree *NodeTree) error {
	v := b.evalAt(s)
	if ch, ok := b.target.channel(); ok {
		tree.SetTransformChannel(b.node, ch, v)
	} else {
		tree.SetZSort(b.node, v)
	}
	return nil
}

// --- DeformBinding ---

// DeformBinding drives a node's per-vertex deformation. Every grid cell
// holds one 2D offset per mesh vertex; all cells share the binding's fixed
// vertex count, so corner sequences can never mismatch during evaluation.
type DeformBinding struct {
	bindingBase
	vertexCount int
	values      [][]Vec2
	scratch     []Vec2 // reused evaluation output
}

func newDeformBinding(p *Param, node NodeID, vertexCount int) *DeformBinding {
	rows, cols := p.Rows(), p.Cols()
	b := &DeformBinding{
		bindingBase: bindingBase{
			owner:  p,
			node:   node,
			target: TargetDeform,
			rows:   rows,
			cols:   cols,
			set:    make([]bool, rows*cols),
		},
		vertexCount: vertexCount,
		values:      make([][]Vec2, rows*cols),
		scratch:     make([]Vec2, vertexCount),
	}
	for i := range b.values {
		b.values[i] = make([]Vec2, vertexCount)
	}
	return b
}

// VertexCount returns the per-cell offset count.
func (b *DeformBinding) VertexCount() int {
	return b.vertexCount
}

// Value returns the offsets stored at cell (i, j).
// The returned slice MUST NOT be mutated by the caller.
func (b *DeformBinding) Value(i, j int) []Vec2 {
	return b.values[b.idx(i, j)]
}

// SetValue stores an explicit keyframe at cell (i, j). Panics if the offset
// count differs from VertexCount.
func (b *DeformBinding) SetValue(i, j int, offsets []Vec2) {
	if len(offsets) != b.vertexCount {
		panic(fmt.Sprintf("inox2d: deform keyframe has %d offsets, binding holds %d per cell",
			len(offsets), b.vertexCount))
	}
	ii := b.idx(i, j)
	copy(b.values[ii], offsets)
	b.set[ii] = true
}

// ClearValue resets cell (i, j) to an implicit keyframe, recomputing its
// offsets from the neighboring cells with the same policy ScalarBinding uses.
func (b *DeformBinding) ClearValue(i, j int) {
	ii := b.idx(i, j)
	b.set[ii] = false
	dst := b.values[ii]
	ax := b.owner.axisPoints[0]
	switch {
	case i > 0 && i < b.rows-1:
		t := (ax[i] - ax[i-1]) / (ax[i+1] - ax[i-1])
		lo := b.values[(i-1)*b.cols+j]
		hi := b.values[(i+1)*b.cols+j]
		for k := range dst {
			dst[k] = lerpVec2(lo[k], hi[k], t)
		}
	case i == 0:
		copy(dst, b.values[1*b.cols+j])
	default:
		copy(dst, b.values[(b.rows-2)*b.cols+j])
	}
}

// Evaluate resolves the per-vertex offsets at the given parameter value.
// The returned slice is reused by the next Evaluate or evaluation pass;
// copy it if you need to keep it.
func (b *DeformBinding) Evaluate(v Vec2) []Vec2 {
	return b.evalAt(b.owner.sample(v))
}

func (b *DeformBinding) evalAt(s gridSample) []Vec2 {
	out := b.scratch
	switch b.mode {
	case InterpolateNearest:
		copy(out, b.values[b.nearestCell(s)])
	case InterpolateCubic:
		b.cubicAt(s, out)
	default:
		c00 := b.values[s.i*b.cols+s.j]
		c10 := b.values[(s.i+1)*b.cols+s.j]
		if b.cols == 1 {
			for k := range out {
				out[k] = lerpVec2(c00[k], c10[k], s.tx)
			}
			break
		}
		c01 := b.values[s.i*b.cols+s.j+1]
		c11 := b.values[(s.i+1)*b.cols+s.j+1]
		for k := range out {
			v0 := lerpVec2(c00[k], c10[k], s.tx)
			v1 := lerpVec2(c01[k], c11[k], s.tx)
			out[k] = lerpVec2(v0, v1, s.ty)
		}
	}
	return out
}

// cubicAt runs the spline per vertex per component. Cubic deform is an
// authoring-quality mode; the per-call allocations here are deliberate.
func (b *DeformBinding) cubicAt(s gridSample, out []Vec2) {
	ax0 := b.owner.axisPoints[0]
	if b.cols == 1 {
		ysX := make([]float64, b.rows)
		ysY := make([]float64, b.rows)
		for k := range out {
			for i := 0; i < b.rows; i++ {
				ysX[i] = b.values[i][k].X
				ysY[i] = b.values[i][k].Y
			}
			out[k] = Vec2{cubicAxis(ax0, ysX, s.x), cubicAxis(ax0, ysY, s.x)}
		}
		return
	}
	ax1 := b.owner.axisPoints[1]
	rowX := make([]float64, b.cols)
	rowY := make([]float64, b.cols)
	colX := make([]float64, b.rows)
	colY := make([]float64, b.rows)
	for k := range out {
		for i := 0; i < b.rows; i++ {
			for j := 0; j < b.cols; j++ {
				cell := b.values[i*b.cols+j]
				rowX[j] = cell[k].X
				rowY[j] = cell[k].Y
			}
			colX[i] = cubicAxis(ax1, rowX, s.y)
			colY[i] = cubicAxis(ax1, rowY, s.y)
		}
		out[k] = Vec2{cubicAxis(ax0, colX, s.x), cubicAxis(ax0, colY, s.x)}
	}
}

func (b *DeformBinding) insertAxis(dim, k int, t float64) {
	mix := func(a, c []Vec2) []Vec2 {
		cell := make([]Vec2, b.vertexCount)
		for v := range cell {
			cell[v] = lerpVec2(a[v], c[v], t)
		}
		return cell
	}
	if dim == 0 {
		b.values = gridInsertRow(b.values, b.rows, b.cols, k, mix)
		b.set = gridInsertRow(b.set, b.rows, b.cols, k, noKey)
		b.rows++
		return
	}
	b.values = gridInsertCol(b.values, b.rows, b.cols, k, mix)
	b.set = gridInsertCol(b.set, b.rows, b.cols, k, noKey)
	b.cols++
}

func (b *DeformBinding) removeAxis(dim, index int) {
	if dim == 0 {
		b.values = gridRemoveRow(b.values, b.rows, b.cols, index)
		b.set = gridRemoveRow(b.set, b.rows, b.cols, index)
		b.rows--
		return
	}
	b.values = gridRemoveCol(b.values, b.rows, b.cols, index)
	b.set = gridRemoveCol(b.set, b.rows, b.cols, index)
	b.cols--
}

func (b *DeformBinding) apply(s gridSample, tree *NodeTree) error {
	return tree.SetDeform(b.node, b.evalAt(s))
}
