package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Face is a mesh face. Vertices and Edges are ordered along the face
// loop; Angles and DrcDr are aligned with Vertices. A hole face stands
// for a boundary loop and takes no part in physical area bookkeeping.
type Face struct {
	ID int

	Vertices []int
	Edges    []int

	IsHole   bool
	Boundary bool
	Obtuse   bool

	// RC is the face center: circumcenter for triangles, geometric
	// centre for larger polygons.
	RC r3.Vec

	// Angles holds the cosine of the interior angle at each vertex.
	Angles []float64

	// DrcDr holds the Jacobian of RC with respect to each of the three
	// vertex positions. Triangular faces only.
	DrcDr []*r3.Mat

	Radius float64
	Area   float64
}

func (f *Face) NSides() int {
	return len(f.Vertices)
}

// angleAt returns the interior angle cosine at vertex v of the face.
func (f *Face) angleAt(v int) (float64, bool) {
	for i, id := range f.Vertices {
		if id == v && i < len(f.Angles) {
			return f.Angles[i], true
		}
	}
	return 0, false
}

// jacobianFor returns the Jacobian of RC with respect to vertex v.
func (f *Face) jacobianFor(v int) (*r3.Mat, bool) {
	for i, id := range f.Vertices {
		if id == v && i < len(f.DrcDr) {
			return f.DrcDr[i], true
		}
	}
	return nil, false
}
