package mesh

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/Faultbox/brickmesh/pkg/math"
)

func unitTriangleMesh() *Mesh {
	m := New()
	m.Add(Triangle{
		V1: math.Vec3{X: 0, Y: 0, Z: 0},
		V2: math.Vec3{X: 1, Y: 0, Z: 0},
		V3: math.Vec3{X: 0, Y: 1, Z: 0},
	})
	return m
}

func TestFacetsNormal(t *testing.T) {
	facets := unitTriangleMesh().Facets(ExportOptions{Scale: 1, Unit: 1})
	if len(facets) != 1 {
		t.Fatalf("got %d facets, want 1", len(facets))
	}

	want := math.Vec3{X: 0, Y: 0, Z: 1}
	if facets[0].Normal != want {
		t.Errorf("Normal = %v, want %v", facets[0].Normal, want)
	}
}

func TestFacetsScaling(t *testing.T) {
	facets := unitTriangleMesh().Facets(ExportOptions{Scale: 2, Unit: 0.4})
	got := facets[0].Vertices[1]
	want := math.Vec3{X: 0.8, Y: 0, Z: 0}
	if got != want {
		t.Errorf("scaled vertex = %v, want %v", got, want)
	}

	// Uniform positive scaling must not disturb the normal.
	if facets[0].Normal != (math.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Errorf("Normal changed under scaling: %v", facets[0].Normal)
	}
}

func TestFacetsRounding(t *testing.T) {
	m := New()
	m.Add(Triangle{
		V1: math.Vec3{X: 1.0 / 3.0},
		V2: math.Vec3{X: 1, Y: 1.0 / 7.0},
		V3: math.Vec3{Y: 1},
	})

	facets := m.Facets(ExportOptions{Scale: 1, Unit: 1})
	if got := facets[0].Vertices[0].X; got != 0.3333 {
		t.Errorf("rounded X = %v, want 0.3333", got)
	}
	if got := facets[0].Vertices[1].Y; got != 0.1429 {
		t.Errorf("rounded Y = %v, want 0.1429", got)
	}
}

func TestFacetsDegenerate(t *testing.T) {
	m := New()
	m.Add(Triangle{
		V1: math.Vec3{},
		V2: math.Vec3{X: 1},
		V3: math.Vec3{X: 2},
	})

	facets := m.Facets(DefaultExportOptions())
	if facets[0].Normal != (math.Vec3{}) {
		t.Errorf("degenerate facet Normal = %v, want zero vector", facets[0].Normal)
	}
}

func TestBuffersLockstep(t *testing.T) {
	m := unitTriangleMesh()
	m.Add(Triangle{
		V1: math.Vec3{Z: 1},
		V2: math.Vec3{X: 1, Z: 1},
		V3: math.Vec3{Y: 1, Z: 1},
	})

	opts := DefaultExportOptions()
	vertices, normals := m.Buffers(opts)

	if len(vertices) != 18 || len(normals) != 18 {
		t.Fatalf("buffer lengths = %d, %d, want 18, 18", len(vertices), len(normals))
	}

	facets := m.Facets(opts)
	for i, f := range facets {
		for j, v := range f.Vertices {
			base := i*9 + j*3
			if vertices[base] != v.X || vertices[base+1] != v.Y || vertices[base+2] != v.Z {
				t.Errorf("facet %d vertex %d mismatch in vertex buffer", i, j)
			}
			if normals[base] != f.Normal.X || normals[base+1] != f.Normal.Y || normals[base+2] != f.Normal.Z {
				t.Errorf("facet %d vertex %d mismatch in normal buffer", i, j)
			}
		}
	}
}

func TestWriteSTL(t *testing.T) {
	var buf bytes.Buffer
	err := unitTriangleMesh().WriteSTL(&buf, "part", ExportOptions{Scale: 1, Unit: 1})
	if err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}

	want := strings.Join([]string{
		"solid part",
		"  facet normal 0.0000 0.0000 1.0000",
		"    outer loop",
		"      vertex 0.0000 0.0000 0.0000",
		"      vertex 1.0000 0.0000 0.0000",
		"      vertex 0.0000 1.0000 0.0000",
		"    endloop",
		"  endfacet",
		"endsolid part",
		"",
	}, "\n")

	if buf.String() != want {
		t.Errorf("WriteSTL output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestExportFormsAgree(t *testing.T) {
	m := New()
	m.Add(Triangle{
		V1: math.Vec3{X: -2.5, Y: 0.125, Z: 3},
		V2: math.Vec3{X: 1, Y: 0.333333, Z: -1},
		V3: math.Vec3{X: 0.7, Y: 4, Z: 2.25},
	})
	m.Add(Triangle{
		V1: math.Vec3{X: 0, Y: 0, Z: 0},
		V2: math.Vec3{X: 0, Y: 0, Z: 1},
		V3: math.Vec3{X: 0, Y: 1, Z: 0},
	})

	opts := ExportOptions{Scale: 0.5, Unit: 0.4}
	facets := m.Facets(opts)
	vertices, normals := m.Buffers(opts)

	var stl bytes.Buffer
	if err := m.WriteSTL(&stl, "agree", opts); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}
	text := stl.String()

	for i, f := range facets {
		// Facet records against flat buffers.
		for j, v := range f.Vertices {
			base := i*9 + j*3
			if [3]float64{vertices[base], vertices[base+1], vertices[base+2]} != [3]float64{v.X, v.Y, v.Z} {
				t.Errorf("facet %d vertex %d disagrees with buffers", i, j)
			}
			if [3]float64{normals[base], normals[base+1], normals[base+2]} != [3]float64{f.Normal.X, f.Normal.Y, f.Normal.Z} {
				t.Errorf("facet %d normal copy %d disagrees with buffers", i, j)
			}
		}

		// Facet records against the textual form.
		normalLine := fmt.Sprintf("facet normal %.4f %.4f %.4f", f.Normal.X, f.Normal.Y, f.Normal.Z)
		if !strings.Contains(text, normalLine) {
			t.Errorf("STL text missing %q", normalLine)
		}
		for _, v := range f.Vertices {
			vertexLine := fmt.Sprintf("vertex %.4f %.4f %.4f", v.X, v.Y, v.Z)
			if !strings.Contains(text, vertexLine) {
				t.Errorf("STL text missing %q", vertexLine)
			}
		}
	}
}
