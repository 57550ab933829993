package inox2d

import "testing"

func TestDebugModeDisposedNodePanics(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)

	parent := NewContainer("parent")
	child := NewContainer("child")
	child.Dispose()

	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a disposed child in debug mode")
		}
	}()
	parent.AddChild(child)
}

func TestDebugModeOffAllowsDisposedAdd(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	child.Dispose()

	// Release mode skips the check entirely; the add is undefined behavior
	// but must not panic.
	parent.AddChild(child)
}

func TestDebugGridShapeCheckPassesOnConsistentParam(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)

	p := NewParam("p", true, Vec2{0, 0}, Vec2{1, 1}, Vec2{})
	p.BindScalar(TargetTransformSX, 1)
	p.BindDeform(1, 4)

	// Axis edits verify every binding grid against the axis shape.
	if err := p.InsertAxisPoint(0, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := p.InsertAxisPoint(1, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := p.RemoveAxisPoint(0, 1); err != nil {
		t.Fatal(err)
	}
}
