package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Vertex is a mesh vertex together with its star adjacency and the
// geometry of its dual cell. Edges, Neigh, Faces and Dual are kept
// positionally aligned once OrderStar has run; Dual skips hole faces.
type Vertex struct {
	ID int
	R  r3.Vec
	N  r3.Vec

	Edges []int
	Neigh []int
	Faces []int
	Dual  []r3.Vec

	Area  float64
	Perim float64

	Boundary bool
	Ordered  bool
	Attached bool

	// AngleDef is the gradient of the boundary angle-deficit factor:
	// first entry with respect to the vertex itself, then one entry per
	// neighbour in star order. Empty for interior vertices.
	AngleDef []r3.Vec
}

func newVertex(id int, r, n r3.Vec) Vertex {
	return Vertex{ID: id, R: r, N: n, Attached: true}
}

func (v *Vertex) addEdge(e int) {
	v.Edges = append(v.Edges, e)
}

func (v *Vertex) removeEdge(e int) {
	for i, id := range v.Edges {
		if id == e {
			v.Edges = append(v.Edges[:i], v.Edges[i+1:]...)
			return
		}
	}
}

func (v *Vertex) addNeighbour(n int) {
	v.Neigh = append(v.Neigh, n)
}

func (v *Vertex) removeNeighbour(n int) {
	for i, id := range v.Neigh {
		if id == n {
			v.Neigh = append(v.Neigh[:i], v.Neigh[i+1:]...)
			return
		}
	}
}

func (v *Vertex) addFace(f int) {
	v.Faces = append(v.Faces, f)
}

func (v *Vertex) removeFace(f int) {
	for i, id := range v.Faces {
		if id == f {
			v.Faces = append(v.Faces[:i], v.Faces[i+1:]...)
			return
		}
	}
}
