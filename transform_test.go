package showcase

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewContainer("test")
	assertMatrix(t, "identity", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 0, 0})
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewContainer("test")
	n.X = 10
	n.Y = 20
	assertMatrix(t, "translation", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := NewContainer("test")
	n.ScaleX = 2
	n.ScaleY = 3
	assertMatrix(t, "scale", computeLocalTransform(n), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewContainer("test")
	n.Rotation = math.Pi / 2
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformPivot(t *testing.T) {
	n := NewContainer("test")
	n.X = 100
	n.Y = 200
	n.PivotX = 16
	n.PivotY = 16
	// T(100,200) * T(-16,-16) = [1,0,0,1, 84, 184]
	assertMatrix(t, "pivot", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 84, 184})
}

// --- Affine helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{1, 0, 0, 1, 5, 7}
	assertMatrix(t, "a*b", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 15, 27})
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, 20}
	assertMatrix(t, "m*inv(m)", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

// --- World transforms ---

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewContainer("parent")
	parent.X = 100
	parent.ScaleX = 2
	parent.ScaleY = 2
	child := NewContainer("child")
	child.X = 10
	child.Y = 5
	parent.AddChild(child)

	updateWorldTransform(parent, identityTransform, 1, false)
	assertMatrix(t, "child world", child.worldTransform, [6]float64{2, 0, 0, 2, 120, 10})
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewContainer("parent")
	parent.Alpha = 0.5
	child := NewContainer("child")
	child.Alpha = 0.4
	parent.AddChild(child)

	updateWorldTransform(parent, identityTransform, 1, false)
	assertNear(t, "worldAlpha", child.worldAlpha, 0.2)
}

func TestDirtyFlagRecomputes(t *testing.T) {
	n := NewContainer("n")
	updateWorldTransform(n, identityTransform, 1, false)
	if n.transformDirty {
		t.Fatal("transformDirty should be cleared")
	}
	n.SetPosition(7, 9)
	if !n.transformDirty {
		t.Fatal("SetPosition should mark dirty")
	}
	updateWorldTransform(n, identityTransform, 1, false)
	assertNear(t, "tx", n.worldTransform[4], 7)
	assertNear(t, "ty", n.worldTransform[5], 9)
}

func TestSettersDirty(t *testing.T) {
	setters := map[string]func(*Node){
		"SetPosition": func(n *Node) { n.SetPosition(1, 2) },
		"SetScale":    func(n *Node) { n.SetScale(2, 2) },
		"SetAlpha":    func(n *Node) { n.SetAlpha(0.5) },
		"MarkDirty":   func(n *Node) { n.MarkDirty() },
	}
	for name, set := range setters {
		n := NewContainer("n")
		updateWorldTransform(n, identityTransform, 1, false)
		set(n)
		if !n.transformDirty {
			t.Errorf("%s should mark the node dirty", name)
		}
	}
}

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewContainer("parent")
	parent.SetPosition(50, 30)
	parent.SetScale(2, 0.5)
	child := NewContainer("child")
	child.SetPosition(10, 10)
	child.Rotation = 0.3
	parent.AddChild(child)
	updateWorldTransform(parent, identityTransform, 1, false)

	wx, wy := child.LocalToWorld(3, 4)
	lx, ly := child.WorldToLocal(wx, wy)
	if math.Abs(lx-3) > 1e-6 || math.Abs(ly-4) > 1e-6 {
		t.Errorf("roundtrip = (%v, %v), want (3, 4)", lx, ly)
	}
}

func TestPositionIn(t *testing.T) {
	layer := NewContainer("layer")
	stack := NewContainer("stack")
	stack.SetPosition(220, 120)
	card := NewContainer("card")
	card.SetPosition(0, 35)
	layer.AddChild(stack)
	stack.AddChild(card)

	x, y := card.PositionIn(layer)
	assertNear(t, "x", x, 220)
	assertNear(t, "y", y, 155)
}

func TestPositionInIgnoresAncestorTransform(t *testing.T) {
	root := NewContainer("root")
	root.SetScale(2, 2)
	layer := NewContainer("layer")
	layer.SetPosition(100, 100)
	n := NewContainer("n")
	n.SetPosition(5, 5)
	root.AddChild(layer)
	layer.AddChild(n)

	x, y := n.PositionIn(root)
	assertNear(t, "x", x, 105)
	assertNear(t, "y", y, 105)
}

func TestPositionInNotAncestorPanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for a non-ancestor")
		}
	}()
	a.PositionIn(b)
}
