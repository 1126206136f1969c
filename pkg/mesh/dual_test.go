package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDualAreaTiling(t *testing.T) {
	// On a flat uniform grid the interior dual cells are the Voronoi
	// cells of the square lattice: unit squares tiling the inner region.
	m := gridMesh(t, 4)

	interior := []int{5, 6, 9, 10}
	total := 0.0
	for _, v := range interior {
		if m.Vertex(v).Boundary {
			t.Fatalf("vertex %d expected in the interior", v)
		}
		area, err := m.DualArea(v)
		if err != nil {
			t.Fatalf("DualArea(%d): %v", v, err)
		}
		if math.Abs(area-1.0) > 1e-9 {
			t.Errorf("DualArea(%d) = %g, want 1", v, area)
		}
		total += area
	}
	if math.Abs(total-4.0) > 1e-9 {
		t.Errorf("interior dual cells cover %g, want 4", total)
	}
}

func TestFaceAreaTotal(t *testing.T) {
	m := gridMesh(t, 4)
	total := 0.0
	for f := 0; f < m.NumFaces(); f++ {
		if m.Face(f).IsHole {
			continue
		}
		a := m.FaceArea(f)
		if math.Abs(a-0.5) > eps {
			t.Errorf("FaceArea(%d) = %g, want 0.5", f, a)
		}
		total += a
	}
	if math.Abs(total-9.0) > 1e-9 {
		t.Errorf("total face area = %g, want 9", total)
	}
}

func TestOctahedronDual(t *testing.T) {
	m := octaMesh(t)

	if m.NumEdges() != 24 || m.NumFaces() != 8 {
		t.Fatalf("octahedron has %d half-edges and %d faces, want 24 and 8",
			m.NumEdges(), m.NumFaces())
	}
	for f := 0; f < m.NumFaces(); f++ {
		face := m.Face(f)
		if face.IsHole {
			t.Fatalf("closed mesh recovered hole face %d", f)
		}
		if a := m.FaceArea(f); math.Abs(a-math.Sqrt(3)/2) > eps {
			t.Errorf("FaceArea(%d) = %g, want sqrt(3)/2", f, a)
		}
	}

	// All six vertices are equivalent by symmetry: same cell area and
	// perimeter, positive after orientation correction, factor 1.
	wantArea := 4.0 / 9.0
	wantPerim := 8.0 / 3.0
	for v := 0; v < m.NumVertices(); v++ {
		V := m.Vertex(v)
		if V.Boundary {
			t.Errorf("vertex %d flagged boundary on a closed mesh", v)
		}
		area, err := m.DualArea(v)
		if err != nil {
			t.Fatalf("DualArea(%d): %v", v, err)
		}
		if math.Abs(area-wantArea) > eps {
			t.Errorf("DualArea(%d) = %g, want %g", v, area, wantArea)
		}
		perim, err := m.DualPerimeter(v)
		if err != nil {
			t.Fatalf("DualPerimeter(%d): %v", v, err)
		}
		if math.Abs(perim-wantPerim) > eps {
			t.Errorf("DualPerimeter(%d) = %g, want %g", v, perim, wantPerim)
		}
		if got := m.AngleFactor(v); got != 1.0 {
			t.Errorf("AngleFactor(%d) = %g, want 1", v, got)
		}
	}
}

func TestDualAreaRequiresOrderedStar(t *testing.T) {
	m := New(nil)
	n := r3.Vec{Z: 1}
	m.AddVertex(r3.Vec{}, n)
	m.AddVertex(r3.Vec{X: 1}, n)
	m.AddVertex(r3.Vec{Y: 1}, n)
	addBoth(m, 0, 1)
	addBoth(m, 1, 2)
	addBoth(m, 2, 0)
	if err := m.GenerateFaces(); err != nil {
		t.Fatalf("GenerateFaces: %v", err)
	}
	if err := m.Postprocess(false); err != nil {
		t.Fatalf("Postprocess: %v", err)
	}

	if _, err := m.DualArea(0); err == nil {
		t.Error("DualArea accepted an unordered star")
	}
	if _, err := m.DualPerimeter(0); err == nil {
		t.Error("DualPerimeter accepted an unordered star")
	}
}

func TestAngleFactorBoundary(t *testing.T) {
	m := gridMesh(t, 3)

	// The four edge midpoints sit on a straight boundary; their extreme
	// fan centers subtend a reflex 3pi/2, leaving a factor of 1/4.
	for _, v := range []int{1, 3, 5, 7} {
		if got := m.AngleFactor(v); math.Abs(got-0.25) > eps {
			t.Errorf("AngleFactor(%d) = %g, want 0.25", v, got)
		}
	}
}

func TestRefreshDualsTracksCenters(t *testing.T) {
	m := gridMesh(t, 3)

	// Shift every vertex rigidly; the dual corners stored on the
	// vertices must follow the recomputed face centers.
	shift := r3.Vec{X: 0.5, Y: -0.25}
	for v := 0; v < m.NumVertices(); v++ {
		V := m.Vertex(v)
		V.R = r3.Add(V.R, shift)
	}
	m.GenerateDualMesh()

	for v := 0; v < m.NumVertices(); v++ {
		V := m.Vertex(v)
		for i, f := range V.Faces {
			if m.Face(f).IsHole {
				continue
			}
			if d := r3.Norm(r3.Sub(V.Dual[i], m.Face(f).RC)); d > eps {
				t.Errorf("vertex %d: dual corner %d is %g away from face center", v, i, d)
			}
		}
	}

	// A rigid shift leaves cell areas unchanged.
	area, err := m.DualArea(4)
	if err != nil {
		t.Fatalf("DualArea: %v", err)
	}
	if math.Abs(area-1.0) > 1e-9 {
		t.Errorf("DualArea after rigid shift = %g, want 1", area)
	}
}
