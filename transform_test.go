package inox2d

import (
	"math"
	"testing"
)

func TestLocalTransformIdentity(t *testing.T) {
	n := NewContainer("n")
	m := computeLocalTransform(n)
	if m != identityTransform {
		t.Errorf("local transform = %v, want identity", m)
	}
}

func TestLocalTransformTranslationIncludesOffsets(t *testing.T) {
	n := NewContainer("n")
	n.X, n.Y = 5, -3
	n.offsets[ChannelTX] = 2
	n.offsets[ChannelTY] = 1

	m := computeLocalTransform(n)
	if m[4] != 7 || m[5] != -2 {
		t.Errorf("translation = (%v, %v), want (7, -2)", m[4], m[5])
	}
}

func TestLocalTransformRotation(t *testing.T) {
	n := NewContainer("n")
	n.RotZ = math.Pi / 2

	m := computeLocalTransform(n)
	x, y := transformPoint(m, 1, 0)
	if math.Abs(x) > 1e-12 || math.Abs(y-1) > 1e-12 {
		t.Errorf("rotated point = (%v, %v), want (0, 1)", x, y)
	}
}

func TestLocalTransformForeshortening(t *testing.T) {
	// An out-of-plane X rotation projects as a cosine squeeze of the Y scale.
	n := NewContainer("n")
	n.offsets[ChannelRX] = math.Pi / 3

	m := computeLocalTransform(n)
	if math.Abs(m[3]-0.5) > 1e-12 {
		t.Errorf("d = %v, want cos(pi/3) = 0.5", m[3])
	}
	if m[0] != 1 {
		t.Errorf("a = %v, want X scale untouched", m[0])
	}
}

func TestMultiplyAffineComposesTranslation(t *testing.T) {
	p := [6]float64{1, 0, 0, 1, 10, 20}
	c := [6]float64{1, 0, 0, 1, 5, -5}
	m := multiplyAffine(p, c)
	if m[4] != 15 || m[5] != 15 {
		t.Errorf("translation = (%v, %v), want (15, 15)", m[4], m[5])
	}
}

func TestUpdateWorldTransformPropagates(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 10
	child.X = 5

	updateWorldTransform(parent, identityTransform, false)

	wx, wy := child.LocalToWorld(0, 0)
	if wx != 15 || wy != 0 {
		t.Errorf("child origin = (%v, %v), want (15, 0)", wx, wy)
	}
}

func TestUpdateWorldTransformSkipsCleanSubtree(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	updateWorldTransform(parent, identityTransform, false)

	// A dirty child under a clean parent still recomputes.
	child.X = 3
	child.transformDirty = true
	updateWorldTransform(parent, identityTransform, false)

	wx, _ := child.LocalToWorld(0, 0)
	if wx != 3 {
		t.Errorf("child origin X = %v, want 3", wx)
	}
}

func TestChannelOffsetMovesWorldTransform(t *testing.T) {
	tree, part := testPart(t)
	tree.SetTransformChannel(part.ID, ChannelTX, 4)
	updateWorldTransform(tree.Root(), identityTransform, false)

	wx, _ := part.LocalToWorld(0, 0)
	if wx != 4 {
		t.Errorf("part origin X = %v, want 4", wx)
	}
}
