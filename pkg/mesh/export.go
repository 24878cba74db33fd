package mesh

import (
	"bytes"
	"fmt"
	"io"
	gomath "math"

	"github.com/Faultbox/brickmesh/pkg/math"
)

// ExportOptions controls vertex scaling at export time.
type ExportOptions struct {
	// Scale is a uniform output scale factor.
	Scale float64
	// Unit is the output length of one input unit (LDU to millimetres).
	Unit float64
}

// DefaultExportOptions returns the conventional scaling: unscaled output
// with one LDU equal to 0.4 mm.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{Scale: 1.0, Unit: 0.4}
}

// Facet is one exported triangle: a facet normal and three vertices,
// all rounded to 4 decimal places.
type Facet struct {
	Normal   math.Vec3
	Vertices [3]math.Vec3
}

// Facets converts the mesh to facet records. Every vertex is scaled by
// opts.Unit*opts.Scale, the normal is recomputed from the scaled vertices,
// and all values are rounded to 4 decimal places. The other export forms
// derive from this one, so all three describe identical geometry.
// Degenerate triangles carry a zero normal.
func (m *Mesh) Facets(opts ExportOptions) []Facet {
	factor := opts.Unit * opts.Scale

	facets := make([]Facet, 0, len(m.Triangles))
	for _, tri := range m.Triangles {
		v1 := tri.V1.Scale(factor)
		v2 := tri.V2.Scale(factor)
		v3 := tri.V3.Scale(factor)
		normal := math.SurfaceNormal(v1, v2, v3)

		facets = append(facets, Facet{
			Normal:   roundVec(normal),
			Vertices: [3]math.Vec3{roundVec(v1), roundVec(v2), roundVec(v3)},
		})
	}
	return facets
}

// Buffers returns flat vertex and normal arrays, three components per
// vertex, nine per triangle. The facet normal is repeated once per vertex
// so both slices can be walked in lockstep without an index buffer.
func (m *Mesh) Buffers(opts ExportOptions) (vertices, normals []float64) {
	facets := m.Facets(opts)
	vertices = make([]float64, 0, len(facets)*9)
	normals = make([]float64, 0, len(facets)*9)

	for _, f := range facets {
		for _, v := range f.Vertices {
			vertices = append(vertices, v.X, v.Y, v.Z)
			normals = append(normals, f.Normal.X, f.Normal.Y, f.Normal.Z)
		}
	}
	return vertices, normals
}

// WriteSTL writes the mesh as an ASCII STL solid with the given name.
func (m *Mesh) WriteSTL(w io.Writer, name string, opts ExportOptions) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "solid %s\n", name)

	for _, f := range m.Facets(opts) {
		fmt.Fprintf(&buf, "  facet normal %.4f %.4f %.4f\n", f.Normal.X, f.Normal.Y, f.Normal.Z)
		fmt.Fprintf(&buf, "    outer loop\n")
		for _, v := range f.Vertices {
			fmt.Fprintf(&buf, "      vertex %.4f %.4f %.4f\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(&buf, "    endloop\n")
		fmt.Fprintf(&buf, "  endfacet\n")
	}

	fmt.Fprintf(&buf, "endsolid %s\n", name)

	_, err := w.Write(buf.Bytes())
	return err
}

func roundVec(v math.Vec3) math.Vec3 {
	return math.Vec3{X: round4(v.X), Y: round4(v.Y), Z: round4(v.Z)}
}

func round4(v float64) float64 {
	return gomath.Round(v*10000) / 10000
}
