package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func shifted(v r3.Vec, coord int, h float64) r3.Vec {
	switch coord {
	case 0:
		v.X += h
	case 1:
		v.Y += h
	default:
		v.Z += h
	}
	return v
}

func TestFcJacobianFiniteDifference(t *testing.T) {
	m := New(nil)
	n := r3.Vec{Z: 1}
	m.AddVertex(r3.Vec{X: 0.1, Y: 0.05}, n)
	m.AddVertex(r3.Vec{X: 1.2, Y: -0.1}, n)
	m.AddVertex(r3.Vec{X: 0.3, Y: 0.9}, n)
	addBoth(m, 0, 1)
	addBoth(m, 1, 2)
	addBoth(m, 2, 0)
	if err := m.GenerateFaces(); err != nil {
		t.Fatalf("GenerateFaces: %v", err)
	}
	m.computeCircumcentre(0)
	m.FcJacobian(0)

	face := m.Face(0)
	if len(face.DrcDr) != 3 {
		t.Fatalf("FcJacobian stored %d matrices, want 3", len(face.DrcDr))
	}

	const h = 1e-6
	for p, vid := range face.Vertices {
		V := m.Vertex(vid)
		orig := V.R
		for b := 0; b < 3; b++ {
			V.R = shifted(orig, b, h)
			m.computeCircumcentre(0)
			plus := face.RC

			V.R = shifted(orig, b, -h)
			m.computeCircumcentre(0)
			minus := face.RC

			V.R = orig
			m.computeCircumcentre(0)

			fd := r3.Scale(1/(2*h), r3.Sub(plus, minus))
			for a := 0; a < 3; a++ {
				got := face.DrcDr[p].At(a, b)
				want := comp(fd, a)
				if math.Abs(got-want) > 1e-5 {
					t.Errorf("DrcDr[%d](%d,%d) = %g, finite difference gives %g", p, a, b, got, want)
				}
			}
		}
	}
}

func TestAngleFactorDerivFiniteDifference(t *testing.T) {
	m := gridMesh(t, 3)
	if err := m.UpdateDualMesh(); err != nil {
		t.Fatalf("UpdateDualMesh: %v", err)
	}

	const v = 1
	V := m.Vertex(v)
	if !V.Boundary {
		t.Fatalf("vertex %d expected on the boundary", v)
	}
	if len(V.AngleDef) != len(V.Edges)+1 {
		t.Fatalf("AngleDef has %d entries, want %d", len(V.AngleDef), len(V.Edges)+1)
	}
	analytic := append([]r3.Vec(nil), V.AngleDef...)

	// Entry 0 is the gradient with respect to the vertex itself, entry
	// e+1 with respect to the neighbour of star edge e.
	targets := []int{v}
	for _, e := range V.Edges {
		targets = append(targets, m.Edge(e).To)
	}

	const h = 1e-6
	for i, w := range targets {
		W := m.Vertex(w)
		orig := W.R
		for b := 0; b < 3; b++ {
			W.R = shifted(orig, b, h)
			m.GenerateDualMesh()
			plus := m.AngleFactor(v)

			W.R = shifted(orig, b, -h)
			m.GenerateDualMesh()
			minus := m.AngleFactor(v)

			W.R = orig
			m.GenerateDualMesh()

			want := (plus - minus) / (2 * h)
			got := comp(analytic[i], b)
			if math.Abs(got-want) > 1e-4 {
				t.Errorf("AngleDef[%d] (vertex %d) coord %d = %g, finite difference gives %g",
					i, w, b, got, want)
			}
		}
	}
}

func TestAngleFactorDerivInterior(t *testing.T) {
	m := gridMesh(t, 3)
	if err := m.UpdateDualMesh(); err != nil {
		t.Fatalf("UpdateDualMesh: %v", err)
	}
	if got := len(m.Vertex(4).AngleDef); got != 0 {
		t.Errorf("interior vertex carries %d angle-deficit gradients, want 0", got)
	}
}
