package inox2d

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// base transform plus its parameter-driven channel offsets.
// Returns [a, b, c, d, tx, ty].
//
// RZ is the in-plane rotation. RX and RY fold in as cosine foreshortening of
// the Y and X scale respectively — the 2D projection of a small out-of-plane
// rotation.
func computeLocalTransform(n *Node) [6]float64 {
	tx := n.X + n.offsets[ChannelTX]
	ty := n.Y + n.offsets[ChannelTY]
	sx := n.ScaleX + n.offsets[ChannelSX]
	sy := n.ScaleY + n.offsets[ChannelSY]
	rx := n.RotX + n.offsets[ChannelRX]
	ry := n.RotY + n.offsets[ChannelRY]
	rz := n.RotZ + n.offsets[ChannelRZ]

	if rx != 0 {
		sy *= math.Cos(rx)
	}
	if ry != 0 {
		sx *= math.Cos(ry)
	}

	sin, cos := math.Sincos(rz)

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		tx,
		ty,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform. parentRecomputed
// forces recomputation of this node even if it is not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// LocalToWorld converts a local-space point to world space using the node's
// last computed world transform.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
