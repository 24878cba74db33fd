// Package mesh provides triangle mesh accumulation and export.
package mesh

import (
	"github.com/Faultbox/brickmesh/pkg/math"
)

// Triangle is a single face with three vertices in winding order.
// The normal is not stored; it is recomputed from the final vertex
// positions at export time, after all transforms and scaling.
type Triangle struct {
	V1, V2, V3 math.Vec3
}

// Mesh is an ordered, append-only collection of triangles.
type Mesh struct {
	Triangles []Triangle
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// Add appends a triangle.
func (m *Mesh) Add(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// Append merges all triangles of other into m, preserving order.
func (m *Mesh) Append(other *Mesh) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

// Transform applies the matrix to every vertex in place.
func (m *Mesh) Transform(mat math.Mat4) {
	for i := range m.Triangles {
		tri := &m.Triangles[i]
		tri.V1 = mat.TransformPoint(tri.V1)
		tri.V2 = mat.TransformPoint(tri.V2)
		tri.V3 = mat.TransformPoint(tri.V3)
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty mesh returns the zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Triangles) == 0 {
		return Bounds{}
	}

	b := Bounds{
		Min: math.Vec3{X: 1e300, Y: 1e300, Z: 1e300},
		Max: math.Vec3{X: -1e300, Y: -1e300, Z: -1e300},
	}
	for _, tri := range m.Triangles {
		for _, v := range [3]math.Vec3{tri.V1, tri.V2, tri.V3} {
			updateBounds(&b, v)
		}
	}
	return b
}

// SurfaceArea returns the total area of all triangles.
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for _, tri := range m.Triangles {
		e1 := tri.V2.Sub(tri.V1)
		e2 := tri.V3.Sub(tri.V1)
		total += e1.Cross(e2).Length() / 2
	}
	return total
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
