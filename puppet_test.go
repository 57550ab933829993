package inox2d

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testPart builds a three-vertex part attached to a fresh tree.
func testPart(t *testing.T) (*NodeTree, *Node) {
	t.Helper()
	tree := NewNodeTree()
	part := NewPart("part", nil,
		[]Vec2{{0, 0}, {1, 0}, {0, 1}},
		[]Vec2{{0, 0}, {1, 0}, {0, 1}},
		[]uint16{0, 1, 2})
	tree.Add(tree.Root(), part)
	return tree, part
}

func testPuppet(t *testing.T) (*Puppet, *Node) {
	t.Helper()
	tree, part := testPart(t)
	return NewPuppet(DefaultMeta("1.0-test"), DefaultPhysics(), tree), part
}

func TestApplyWritesTransformChannel(t *testing.T) {
	puppet, part := testPuppet(t)
	p := NewParam("slide", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	b := p.BindScalar(TargetTransformTX, part.ID)
	b.SetValue(0, 0, 0)
	b.SetValue(1, 0, 10)
	puppet.AddParam(p)

	puppet.SetParamValue(p.UUID, Vec2{X: 0.25})
	if err := puppet.Apply(); err != nil {
		t.Fatal(err)
	}

	if got := part.ChannelOffset(ChannelTX); got != 2.5 {
		t.Errorf("ChannelTX offset = %v, want 2.5", got)
	}
}

func TestApplyWritesZSort(t *testing.T) {
	puppet, part := testPuppet(t)
	p := NewParam("depth", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	b := p.BindScalar(TargetZSort, part.ID)
	b.SetValue(0, 0, -1)
	b.SetValue(1, 0, 1)
	puppet.AddParam(p)

	puppet.SetParamValue(p.UUID, Vec2{X: 1})
	if err := puppet.Apply(); err != nil {
		t.Fatal(err)
	}

	if got := part.ZSortOffset(); got != 1 {
		t.Errorf("ZSortOffset = %v, want 1", got)
	}
}

func TestApplyWritesDeform(t *testing.T) {
	puppet, part := testPuppet(t)
	p := NewParam("squish", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	d := p.BindDeform(part.ID, 3)
	d.SetValue(1, 0, []Vec2{{2, 0}, {0, 2}, {1, 1}})
	puppet.AddParam(p)

	puppet.SetParamValue(p.UUID, Vec2{X: 0.5})
	if err := puppet.Apply(); err != nil {
		t.Fatal(err)
	}

	want := []Vec2{{1, 0}, {0, 1}, {0.5, 0.5}}
	if diff := cmp.Diff(want, part.Deform()); diff != "" {
		t.Errorf("deform mismatch (-want +got):\n%s", diff)
	}
}

func TestSetParamValueClamps(t *testing.T) {
	puppet, _ := testPuppet(t)
	p := NewParam("p", false, Vec2{X: -1}, Vec2{X: 1}, Vec2{})
	puppet.AddParam(p)

	puppet.SetParamValue(p.UUID, Vec2{X: 42})
	if got := p.Value(); got != (Vec2{X: 1}) {
		t.Errorf("Value = %v, want clamped (1, 0)", got)
	}
	puppet.SetParamValue(p.UUID, Vec2{X: -42})
	if got := p.Value(); got != (Vec2{X: -1}) {
		t.Errorf("Value = %v, want clamped (-1, 0)", got)
	}
}

func TestLastParamWins(t *testing.T) {
	puppet, part := testPuppet(t)

	first := NewParam("first", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	fb := first.BindScalar(TargetTransformTX, part.ID)
	fb.SetValue(0, 0, 5)
	fb.SetValue(1, 0, 5)
	puppet.AddParam(first)

	second := NewParam("second", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	sb := second.BindScalar(TargetTransformTX, part.ID)
	sb.SetValue(0, 0, 7)
	sb.SetValue(1, 0, 7)
	puppet.AddParam(second)

	if err := puppet.Apply(); err != nil {
		t.Fatal(err)
	}
	if got := part.ChannelOffset(ChannelTX); got != 7 {
		t.Errorf("ChannelTX offset = %v, want 7 (later param wins)", got)
	}
}

func TestApplyResetsStaleOffsets(t *testing.T) {
	puppet, part := testPuppet(t)
	p := NewParam("p", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	b := p.BindScalar(TargetTransformTY, part.ID)
	b.SetValue(0, 0, 4)
	b.SetValue(1, 0, 4)
	puppet.AddParam(p)

	if err := puppet.Apply(); err != nil {
		t.Fatal(err)
	}
	if part.ChannelOffset(ChannelTY) != 4 {
		t.Fatal("setup: offset should be 4")
	}

	// A removed param must stop contributing on the next pass.
	puppet.RemoveParam(p.UUID)
	if err := puppet.Apply(); err != nil {
		t.Fatal(err)
	}
	if got := part.ChannelOffset(ChannelTY); got != 0 {
		t.Errorf("ChannelTY offset = %v, want 0 after param removal", got)
	}
}

func TestApplyVertexMismatchLeavesTreeUnchanged(t *testing.T) {
	puppet, part := testPuppet(t)

	good := NewParam("good", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{X: 1})
	gb := good.BindScalar(TargetTransformTX, part.ID)
	gb.SetValue(0, 0, 3)
	gb.SetValue(1, 0, 3)
	puppet.AddParam(good)

	if err := puppet.Apply(); err != nil {
		t.Fatal(err)
	}
	if part.ChannelOffset(ChannelTX) != 3 {
		t.Fatal("setup: offset should be 3")
	}

	// The part has 3 vertices; a 2-offset deform binding is misconfigured.
	bad := NewParam("bad", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	bad.BindDeform(part.ID, 2)
	puppet.AddParam(bad)

	gb.SetValue(0, 0, 9)
	gb.SetValue(1, 0, 9)

	err := puppet.Apply()
	if !errors.Is(err, ErrVertexCountMismatch) {
		t.Fatalf("err = %v, want ErrVertexCountMismatch", err)
	}
	if got := part.ChannelOffset(ChannelTX); got != 3 {
		t.Errorf("ChannelTX offset = %v, want 3 (failed pass must not write)", got)
	}
}

func TestAddParamDuplicatePanics(t *testing.T) {
	puppet, _ := testPuppet(t)
	p := NewParam("p", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	puppet.AddParam(p)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate AddParam")
		}
	}()
	puppet.AddParam(p)
}

func TestRemoveParamUnknownReturnsNil(t *testing.T) {
	puppet, _ := testPuppet(t)
	p := NewParam("p", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	if puppet.RemoveParam(p.UUID) != nil {
		t.Error("RemoveParam of unknown UUID should return nil")
	}
}

func TestFindParam(t *testing.T) {
	puppet, _ := testPuppet(t)
	a := NewParam("eye_l", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	puppet.AddParam(a)

	if puppet.FindParam("eye_l") != a {
		t.Error("FindParam should return the matching param")
	}
	if puppet.FindParam("nope") != nil {
		t.Error("FindParam of unknown name should return nil")
	}
	if puppet.Param(a.UUID) != a {
		t.Error("Param lookup by UUID failed")
	}
}

func TestResetParam(t *testing.T) {
	puppet, _ := testPuppet(t)
	p := NewParam("p", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{X: 0.5})
	puppet.AddParam(p)
	puppet.SetParamValue(p.UUID, Vec2{X: 1})

	puppet.ResetParam(p.UUID)
	if got := p.Value(); got != (Vec2{X: 0.5}) {
		t.Errorf("Value = %v, want default (0.5, 0)", got)
	}
}

func TestParamsEvaluationOrder(t *testing.T) {
	puppet, _ := testPuppet(t)
	a := NewParam("a", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	b := NewParam("b", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{})
	puppet.AddParam(a)
	puppet.AddParam(b)

	params := puppet.Params()
	if len(params) != 2 || params[0] != a || params[1] != b {
		t.Error("Params should preserve insertion order")
	}
}

func BenchmarkApply(b *testing.B) {
	tree := NewNodeTree()
	verts := make([]Vec2, 64)
	uvs := make([]Vec2, 64)
	inds := make([]uint16, 0, 62*3)
	for i := 2; i < 64; i++ {
		inds = append(inds, 0, uint16(i-1), uint16(i))
	}
	part := NewPart("part", nil, verts, uvs, inds)
	tree.Add(tree.Root(), part)

	puppet := NewPuppet(DefaultMeta("bench"), DefaultPhysics(), tree)
	for i := 0; i < 4; i++ {
		p := NewParam("p", false, Vec2{X: 0}, Vec2{X: 1}, Vec2{X: 0.5})
		sb := p.BindScalar(TargetTransformTX, part.ID)
		sb.SetValue(1, 0, 10)
		p.BindDeform(part.ID, 64)
		puppet.AddParam(p)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := puppet.Apply(); err != nil {
			b.Fatal(err)
		}
	}
}
