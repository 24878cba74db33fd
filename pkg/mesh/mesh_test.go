package mesh

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/brickmesh/pkg/math"
)

func TestMeshAppend(t *testing.T) {
	a := New()
	a.Add(Triangle{V1: math.Vec3{X: 1}})
	a.Add(Triangle{V1: math.Vec3{X: 2}})

	b := New()
	b.Add(Triangle{V1: math.Vec3{X: 3}})

	a.Append(b)

	if a.TriangleCount() != 3 {
		t.Fatalf("TriangleCount() = %d, want 3", a.TriangleCount())
	}
	if a.Triangles[2].V1.X != 3 {
		t.Errorf("merged triangle out of order: %v", a.Triangles[2])
	}
}

func TestMeshTransform(t *testing.T) {
	m := New()
	m.Add(Triangle{
		V1: math.Vec3{X: 1, Y: 0, Z: 0},
		V2: math.Vec3{X: 0, Y: 1, Z: 0},
		V3: math.Vec3{X: 0, Y: 0, Z: 1},
	})

	m.Transform(math.Translate(10, 20, 30))

	got := m.Triangles[0].V1
	want := math.Vec3{X: 11, Y: 20, Z: 30}
	if got != want {
		t.Errorf("transformed V1 = %v, want %v", got, want)
	}
}

func TestMeshBounds(t *testing.T) {
	m := New()
	m.Add(Triangle{
		V1: math.Vec3{X: -1, Y: 2, Z: 0},
		V2: math.Vec3{X: 3, Y: -4, Z: 5},
		V3: math.Vec3{X: 0, Y: 0, Z: -6},
	})

	b := m.Bounds()
	wantMin := math.Vec3{X: -1, Y: -4, Z: -6}
	wantMax := math.Vec3{X: 3, Y: 2, Z: 5}
	if b.Min != wantMin || b.Max != wantMax {
		t.Errorf("Bounds() = %+v, want min %v max %v", b, wantMin, wantMax)
	}
}

func TestMeshBoundsEmpty(t *testing.T) {
	if b := New().Bounds(); b != (Bounds{}) {
		t.Errorf("empty mesh Bounds() = %+v, want zero box", b)
	}
}

func TestMeshSurfaceArea(t *testing.T) {
	m := New()
	// Right triangle with legs of length 2: area 2.
	m.Add(Triangle{
		V1: math.Vec3{},
		V2: math.Vec3{X: 2},
		V3: math.Vec3{Y: 2},
	})

	got := m.SurfaceArea()
	if gomath.Abs(got-2) > 1e-9 {
		t.Errorf("SurfaceArea() = %v, want 2", got)
	}
}
