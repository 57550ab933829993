package inox2d

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawEntry pairs a part node with its accumulated draw-order key for one
// frame's sort.
type drawEntry struct {
	node  *Node
	zSort float64
}

// Draw renders the puppet's visible part nodes to dst, ordered by effective
// draw-order key: a node's base ZSort plus its parameter-driven offset,
// accumulated down the tree. Higher keys draw on top.
//
// Draw reads the node tree only; run Apply first so the tree reflects the
// current parameter values.
func (p *Puppet) Draw(dst *ebiten.Image) {
	t := p.Nodes
	updateWorldTransform(t.root, identityTransform, false)

	t.drawList = t.drawList[:0]
	collectParts(t.root, 0, &t.drawList)
	sort.SliceStable(t.drawList, func(a, b int) bool {
		return t.drawList[a].zSort < t.drawList[b].zSort
	})

	filter := ebiten.FilterLinear
	if p.Meta.PreservePixels {
		filter = ebiten.FilterNearest
	}
	for _, e := range t.drawList {
		drawPart(dst, e.node, filter)
	}
}

// collectParts gathers visible part nodes with their accumulated zsort keys.
// Invisible nodes hide their whole subtree.
func collectParts(n *Node, parentZ float64, out *[]drawEntry) {
	if !n.Visible {
		return
	}
	z := parentZ + n.ZSort + n.zSortOffset
	if n.Type == NodeTypePart && n.Image != nil && len(n.Indices) > 0 {
		*out = append(*out, drawEntry{node: n, zSort: z})
	}
	for _, child := range n.children {
		collectParts(child, z, out)
	}
}

// drawPart transforms the part's deformed mesh through its world transform
// and submits one DrawTriangles call.
func drawPart(dst *ebiten.Image, n *Node, filter ebiten.Filter) {
	verts := ensureTransformedVerts(n)
	m := n.worldTransform
	bounds := n.Image.Bounds()
	sx0 := float64(bounds.Min.X)
	sy0 := float64(bounds.Min.Y)
	sw := float64(bounds.Dx())
	sh := float64(bounds.Dy())

	for i, rest := range n.Vertices {
		x := rest.X + n.deform[i].X
		y := rest.Y + n.deform[i].Y
		verts[i] = ebiten.Vertex{
			DstX:   float32(m[0]*x + m[2]*y + m[4]),
			DstY:   float32(m[1]*x + m[3]*y + m[5]),
			SrcX:   float32(sx0 + n.UVs[i].X*sw),
			SrcY:   float32(sy0 + n.UVs[i].Y*sh),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}

	op := &ebiten.DrawTrianglesOptions{Filter: filter}
	dst.DrawTriangles(verts, n.Indices, n.Image, op)
}

// ensureTransformedVerts grows the node's render buffer to fit its vertex
// count, using a high-water-mark strategy (never shrinks). Returns the
// resliced buffer.
func ensureTransformedVerts(n *Node) []ebiten.Vertex {
	need := len(n.Vertices)
	if cap(n.transformedVerts) < need {
		n.transformedVerts = make([]ebiten.Vertex, need)
	}
	n.transformedVerts = n.transformedVerts[:need]
	return n.transformedVerts
}
