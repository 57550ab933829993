package inox2d

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NodeID is an opaque reference to a node in a NodeTree. IDs are scene-local
// and never reused within a process.
type NodeID uint32

// nodeIDCounter is a plain counter (no atomic — inox2d is single-threaded).
var nodeIDCounter uint32

func nextNodeID() NodeID {
	nodeIDCounter++
	return NodeID(nodeIDCounter)
}

// NodeType distinguishes node behavior in the tree.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypePart                      // textured deformable mesh
)

// Node is a puppet part. A single flat struct is used for all node types to
// avoid interface dispatch on the evaluation and render paths.
//
// A node carries two layers of transform state: the base (rig-time) fields
// set by the author, and parameter-driven channel offsets written by the
// binding evaluation pass. Offsets are additive over the base fields and are
// zeroed at the start of every pass.
type Node struct {
	// Identity
	ID   NodeID
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Base transform (local)
	X, Y           float64
	ScaleX, ScaleY float64
	RotX, RotY     float64
	RotZ           float64
	ZSort          float64

	// Parameter-driven state, reset each evaluation pass.
	offsets     [numChannels]float64
	zSortOffset float64
	deform      []Vec2 // one offset per mesh vertex

	// Mesh data (NodeTypePart). Vertices are rest positions in local space;
	// UVs are normalized [0,1] texture coordinates, parallel to Vertices.
	Vertices []Vec2
	UVs      []Vec2
	Indices  []uint16
	Image    *ebiten.Image

	// Computed (updated during render traversal)
	worldTransform   [6]float64
	transformDirty   bool
	transformedVerts []ebiten.Vertex // preallocated render buffer

	Visible bool

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewPart creates a drawable part backed by a triangle mesh. vertices holds
// rest positions in local space, uvs normalized texture coordinates parallel
// to vertices, indices the triangle list. The part's deform buffer is sized
// to the vertex count and starts at zero.
func NewPart(name string, img *ebiten.Image, vertices, uvs []Vec2, indices []uint16) *Node {
	if len(uvs) != len(vertices) {
		panic(fmt.Sprintf("inox2d: part %q has %d UVs for %d vertices", name, len(uvs), len(vertices)))
	}
	n := &Node{
		Name:     name,
		Type:     NodeTypePart,
		Image:    img,
		Vertices: vertices,
		UVs:      uvs,
		Indices:  indices,
		deform:   make([]Vec2, len(vertices)),
	}
	nodeDefaults(n)
	return n
}

// Deform returns the node's current per-vertex deform offsets.
// The returned slice MUST NOT be mutated by the caller.
func (n *Node) Deform() []Vec2 {
	return n.deform
}

// ChannelOffset returns the current parameter-driven offset for a channel.
func (n *Node) ChannelOffset(ch Channel) float64 {
	return n.offsets[ch]
}

// ZSortOffset returns the current parameter-driven draw-order offset.
func (n *Node) ZSortOffset() float64 {
	return n.zSortOffset
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("inox2d: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("inox2d: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("inox2d: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Disposed nodes must not be reused;
// debug mode panics on any tree operation touching one.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Image = nil
	n.Vertices = nil
	n.UVs = nil
	n.Indices = nil
	n.deform = nil
	n.transformedVerts = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// --- NodeTree ---

// NodeTree owns a puppet's node hierarchy and the ID index the binding
// evaluation pass writes through.
type NodeTree struct {
	root *Node
	byID map[NodeID]*Node

	drawList []drawEntry // reused render-order buffer
}

// NewNodeTree creates a tree with a pre-created root container.
func NewNodeTree() *NodeTree {
	root := NewContainer("root")
	t := &NodeTree{
		root: root,
		byID: map[NodeID]*Node{root.ID: root},
	}
	return t
}

// Root returns the tree's root container node.
func (t *NodeTree) Root() *Node {
	return t.root
}

// Add attaches child under parent and indexes child's whole subtree.
// Parent must already belong to this tree.
func (t *NodeTree) Add(parent, child *Node) {
	if t.byID[parent.ID] != parent {
		panic(fmt.Sprintf("inox2d: parent %q is not in this tree", parent.Name))
	}
	parent.AddChild(child)
	t.register(child)
}

// Remove detaches n from its parent and drops its whole subtree from the
// index. Bindings still referencing removed nodes are a configuration error;
// remove or retarget them first.
func (t *NodeTree) Remove(n *Node) {
	if n == t.root {
		panic("inox2d: cannot remove the root node")
	}
	n.RemoveFromParent()
	t.unregister(n)
}

// Lookup returns the node with the given ID, or nil if it is not in the tree.
func (t *NodeTree) Lookup(id NodeID) *Node {
	return t.byID[id]
}

func (t *NodeTree) register(n *Node) {
	t.byID[n.ID] = n
	for _, c := range n.children {
		t.register(c)
	}
}

func (t *NodeTree) unregister(n *Node) {
	delete(t.byID, n.ID)
	for _, c := range n.children {
		t.unregister(c)
	}
}

// mustLookup resolves an ID the evaluation pass writes to. An unknown ID is
// a configuration error in the caller's bindings, not a recoverable state.
func (t *NodeTree) mustLookup(id NodeID) *Node {
	n := t.byID[id]
	if n == nil {
		panic(fmt.Sprintf("inox2d: unknown node ID %d", id))
	}
	return n
}

// --- Sink operations (written by the binding evaluation pass) ---

// SetTransformChannel sets the parameter-driven offset for one transform
// channel. Offsets compose additively with the node's base transform.
func (t *NodeTree) SetTransformChannel(id NodeID, ch Channel, v float64) {
	n := t.mustLookup(id)
	n.offsets[ch] = v
	n.transformDirty = true
}

// SetZSort sets the parameter-driven draw-order offset.
func (t *NodeTree) SetZSort(id NodeID, v float64) {
	t.mustLookup(id).zSortOffset = v
}

// SetDeform copies per-vertex deform offsets into the node. Returns
// ErrVertexCountMismatch (and leaves the node untouched) when the offset
// count differs from the node's mesh vertex count.
func (t *NodeTree) SetDeform(id NodeID, offsets []Vec2) error {
	n := t.mustLookup(id)
	if len(offsets) != len(n.Vertices) {
		return fmt.Errorf("set deform on %q: %d offsets for %d vertices: %w",
			n.Name, len(offsets), len(n.Vertices), ErrVertexCountMismatch)
	}
	copy(n.deform, offsets)
	n.transformDirty = true
	return nil
}

// VertexCount returns the mesh vertex count of the node.
func (t *NodeTree) VertexCount(id NodeID) int {
	return len(t.mustLookup(id).Vertices)
}

// ResetOffsets zeroes all parameter-driven state tree-wide. The evaluation
// pass calls this first so parameters that no longer touch a channel leave
// it at the node's base value.
func (t *NodeTree) ResetOffsets() {
	resetOffsets(t.root)
}

func resetOffsets(n *Node) {
	n.offsets = [numChannels]float64{}
	n.zSortOffset = 0
	for i := range n.deform {
		n.deform[i] = Vec2{}
	}
	n.transformDirty = true
	for _, c := range n.children {
		resetOffsets(c)
	}
}
