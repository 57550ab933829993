package inox2d

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrVertexCountMismatch is returned when a deform binding's per-cell offset
// count does not match its target node's mesh vertex count. The whole
// evaluation pass aborts before any write, so the node tree keeps the state
// it had before the call.
var ErrVertexCountMismatch = errors.New("inox2d: deform vertex count mismatch")

// Puppet is a complete riggable 2D character model: metadata, physics
// settings, the node tree of drawable parts, and the ordered parameter list
// that drives them.
type Puppet struct {
	Meta    PuppetMeta
	Physics PuppetPhysics
	Nodes   *NodeTree

	params []*Param
	byUUID map[uuid.UUID]*Param
}

// NewPuppet creates a puppet. A nil tree gets a fresh empty one.
func NewPuppet(meta PuppetMeta, physics PuppetPhysics, nodes *NodeTree) *Puppet {
	if nodes == nil {
		nodes = NewNodeTree()
	}
	return &Puppet{
		Meta:    meta,
		Physics: physics,
		Nodes:   nodes,
		byUUID:  make(map[uuid.UUID]*Param),
	}
}

// AddParam appends a parameter. Parameter order is significant: the
// evaluation pass applies parameters in insertion order, and later writes to
// the same node output win. Panics if the param's UUID is already present.
func (p *Puppet) AddParam(param *Param) {
	if _, ok := p.byUUID[param.UUID]; ok {
		panic(fmt.Sprintf("inox2d: parameter %q (%s) already added", param.Name, param.UUID))
	}
	p.params = append(p.params, param)
	p.byUUID[param.UUID] = param
}

// RemoveParam removes and returns the parameter with the given UUID, or nil
// if the puppet does not have it. Parameters are never removed implicitly;
// this is the only way one leaves the puppet.
func (p *Puppet) RemoveParam(id uuid.UUID) *Param {
	param, ok := p.byUUID[id]
	if !ok {
		return nil
	}
	delete(p.byUUID, id)
	for i, have := range p.params {
		if have == param {
			copy(p.params[i:], p.params[i+1:])
			p.params[len(p.params)-1] = nil
			p.params = p.params[:len(p.params)-1]
			break
		}
	}
	return param
}

// Param returns the parameter with the given UUID, or nil.
func (p *Puppet) Param(id uuid.UUID) *Param {
	return p.byUUID[id]
}

// FindParam returns the first parameter with the given display name, or nil.
// Names are labels, not identifiers; prefer UUID lookups.
func (p *Puppet) FindParam(name string) *Param {
	for _, param := range p.params {
		if param.Name == name {
			return param
		}
	}
	return nil
}

// Params returns the parameters in evaluation order.
// The returned slice MUST NOT be mutated by the caller.
func (p *Puppet) Params() []*Param {
	return p.params
}

// SetParamValue records a parameter value, clamped into [Min, Max]. Values
// outside the range are clamped, never rejected. The node tree is untouched
// until the next Apply. Panics on an unknown UUID.
func (p *Puppet) SetParamValue(id uuid.UUID, v Vec2) {
	param, ok := p.byUUID[id]
	if !ok {
		panic(fmt.Sprintf("inox2d: unknown parameter %s", id))
	}
	param.setValue(v)
}

// ResetParam returns a parameter to its default value. Panics on an unknown
// UUID.
func (p *Puppet) ResetParam(id uuid.UUID) {
	param, ok := p.byUUID[id]
	if !ok {
		panic(fmt.Sprintf("inox2d: unknown parameter %s", id))
	}
	param.setValue(param.Defaults)
}

// Apply runs a full evaluation pass: every binding of every parameter is
// resolved at the current parameter values and written into the node tree.
//
// The pass is atomic from the caller's perspective. Deform bindings are
// validated against the tree's vertex counts first; on mismatch Apply
// returns an error wrapping ErrVertexCountMismatch and the tree keeps the
// state it had before the call. Only after validation are all driven offsets
// reset and rewritten, parameters in insertion order, so when several
// parameters target the same node output the last one wins.
//
// Apply is a pure function of the current parameter values: it never mutates
// parameters or bindings.
func (p *Puppet) Apply() error {
	if err := p.validateDeforms(); err != nil {
		return err
	}
	p.Nodes.ResetOffsets()
	for _, param := range p.params {
		if err := param.apply(p.Nodes); err != nil {
			return err
		}
	}
	return nil
}

// validateDeforms checks every deform binding's vertex count against its
// target node before the pass writes anything.
func (p *Puppet) validateDeforms() error {
	for _, param := range p.params {
		for _, b := range param.bindings {
			d, ok := b.(*DeformBinding)
			if !ok {
				continue
			}
			n := p.Nodes.mustLookup(d.Node())
			if d.VertexCount() != len(n.Vertices) {
				return fmt.Errorf("param %q deform binding on %q: %d offsets for %d vertices: %w",
					param.Name, n.Name, d.VertexCount(), len(n.Vertices), ErrVertexCountMismatch)
			}
		}
	}
	return nil
}
