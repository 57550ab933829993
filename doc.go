// Package inox2d models riggable 2D puppets: a tree of drawable parts whose
// transforms and mesh deformations are driven by named parameters.
//
// A [Puppet] owns metadata, physics settings, a [NodeTree] of parts, and an
// ordered list of [Param] controls. Each Param is a 1D or 2D control axis
// with a grid of keyframes along its axis points; each keyframe grid belongs
// to a [Binding] that targets one transform channel, the draw order, or a
// per-vertex deformation of a specific node.
//
// # Quick start
//
//	tree := inox2d.NewNodeTree()
//	part := inox2d.NewPart("head", img, verts, uvs, indices)
//	tree.Add(tree.Root(), part)
//
//	puppet := inox2d.NewPuppet(inox2d.DefaultMeta("1.0-alpha"), inox2d.DefaultPhysics(), tree)
//
//	angle := inox2d.NewParam("head_turn", false,
//		inox2d.Vec2{X: -1}, inox2d.Vec2{X: 1}, inox2d.Vec2{})
//	tx := angle.BindScalar(inox2d.TargetTransformTX, part.ID)
//	tx.SetValue(0, 0, -20)
//	tx.SetValue(1, 0, 20)
//	puppet.AddParam(angle)
//
//	puppet.SetParamValue(angle.UUID, inox2d.Vec2{X: 0.5})
//	if err := puppet.Apply(); err != nil { ... }
//	puppet.Draw(screen)
//
// Setting a parameter only records the value; [Puppet.Apply] runs the full
// evaluation pass, resolving every binding's keyframe grid at the current
// parameter values and writing the results into the node tree. Rendering
// reads the node tree, so a frame is: set values, Apply, Draw.
//
// # Keyframe grids
//
// A Param's axis points are monotonically increasing sample positions in
// parameter value space. Every binding owned by the Param stores one value
// per grid cell plus an explicit-keyframe flag per cell, and resolves values
// between cells by nearest, linear (bilinear for 2D params), or cubic
// interpolation. Values outside the axis range clamp to the nearest edge;
// the grid never extrapolates.
//
// # Threading
//
// inox2d is single-threaded. No exported call is safe for concurrent use,
// no call blocks, and an evaluation pass is a pure function of the current
// parameter values.
package inox2d
