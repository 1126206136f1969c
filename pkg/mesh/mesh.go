// Package mesh implements a dynamic half-edge surface mesh together
// with its geometric dual: per-vertex Voronoi-like cells bounded by
// face centers, their areas, perimeters and analytic derivatives. The
// mesh is built once from raw vertices and directed edges, after which
// the dual geometry can be recomputed per step and the connectivity
// mutated in place by edge flips and boundary-edge removal.
package mesh

import (
	"fmt"
	"math"

	"github.com/0x0FACED/go-dualmesh/pkg/logger"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh owns all vertex, half-edge and face records. Records live in
// flat slices and every id doubles as the index into its slice; a
// structural deletion renumbers ids mesh-wide to keep them dense.
type Mesh struct {
	vertices []Vertex
	edges    []Edge
	faces    []Face

	// edgeMap finds the half-edge running along an ordered vertex pair.
	edgeMap map[edgeKey]int

	boundaryEdges []int

	isTriangulation bool
	circumcentre    bool

	Logger *logger.Logger
}

func New(log *logger.Logger) *Mesh {
	return &Mesh{
		edgeMap:      make(map[edgeKey]int),
		circumcentre: true,
		Logger:       log,
	}
}

// SetCircumcentre selects between circumcenters (default) and
// geometric centres for triangular face centers.
func (m *Mesh) SetCircumcentre(use bool) {
	m.circumcentre = use
}

func (m *Mesh) NumVertices() int { return len(m.vertices) }
func (m *Mesh) NumEdges() int    { return len(m.edges) }
func (m *Mesh) NumFaces() int    { return len(m.faces) }

func (m *Mesh) Vertex(i int) *Vertex { return &m.vertices[i] }
func (m *Mesh) Edge(i int) *Edge     { return &m.edges[i] }
func (m *Mesh) Face(i int) *Face     { return &m.faces[i] }

func (m *Mesh) IsTriangulation() bool { return m.isTriangulation }

// EdgeID returns the id of the half-edge from vertex i to vertex j.
func (m *Mesh) EdgeID(i, j int) (int, bool) {
	id, ok := m.edgeMap[edgeKey{i, j}]
	return id, ok
}

// Reset clears the entire mesh data structure.
func (m *Mesh) Reset() {
	m.vertices = nil
	m.edges = nil
	m.faces = nil
	m.edgeMap = make(map[edgeKey]int)
	m.boundaryEdges = nil
	m.isTriangulation = false
}

// AddVertex appends a vertex with position r and unit normal n and
// returns its id.
func (m *Mesh) AddVertex(r, n r3.Vec) int {
	id := len(m.vertices)
	m.vertices = append(m.vertices, newVertex(id, r, n))
	return id
}

// AddEdge inserts the directed half-edge i->j unless that ordered pair
// is already present. The reverse half-edge is not created; callers add
// both directions to form a closed mesh.
func (m *Mesh) AddEdge(i, j int) {
	if _, ok := m.edgeMap[edgeKey{i, j}]; ok {
		return
	}
	id := len(m.edges)
	m.edges = append(m.edges, Edge{ID: id, From: i, To: j, Pair: -1, Face: -1, Next: -1})
	m.vertices[i].addEdge(id)
	m.vertices[i].addNeighbour(j)
	m.edgeMap[edgeKey{i, j}] = id
}

// GenerateFaces recovers every face loop from the half-edge set. From
// an unvisited half-edge the walk repeatedly takes the most clockwise
// unvisited outgoing half-edge at the current vertex until it returns
// to the seed, wiring Next pointers along the way. A recovered loop
// with more than 3 vertices is a boundary loop and is marked as a hole.
func (m *Mesh) GenerateFaces() error {
	visited := make([]bool, len(m.edges))

	for i := range m.edges {
		if visited[i] {
			continue
		}
		visited[i] = true

		face := Face{ID: len(m.faces)}
		seed := m.edges[i].From
		vn := m.edges[i].To
		face.Vertices = append(face.Vertices, seed, vn)
		face.Edges = append(face.Edges, i)

		vp := seed
		prevEdge := i
		for vn != seed {
			ri := r3.Sub(m.vertices[vn].R, m.vertices[vp].R)

			// Most clockwise turn wins: smallest angle, first in
			// insertion order on a tie.
			next := -1
			bestAngle := 0.0
			for _, eid := range m.vertices[vn].Edges {
				ej := &m.edges[eid]
				if visited[eid] || ej.To == vp {
					continue
				}
				rj := r3.Sub(m.vertices[ej.To].R, m.vertices[vn].R)
				a := math.Pi - signedAngle(ri, rj, m.vertices[vn].N)
				if next < 0 || a < bestAngle {
					next = eid
					bestAngle = a
				}
			}
			if next < 0 {
				return fmt.Errorf("generate faces: no unvisited half-edge out of vertex %d; edge list is not closed under pairing", vn)
			}

			visited[next] = true
			if m.edges[next].To != seed {
				face.Vertices = append(face.Vertices, m.edges[next].To)
			}
			face.Edges = append(face.Edges, next)
			m.edges[prevEdge].Next = next
			prevEdge = next
			vp = vn
			vn = m.edges[next].To
			if vn == seed {
				// The seed edge closes the loop.
				m.edges[prevEdge].Next = i
			}
		}

		// Any loop longer than a triangle is a boundary loop.
		if face.NSides() > 3 {
			face.IsHole = true
		}
		for _, v := range face.Vertices {
			m.vertices[v].addFace(face.ID)
		}
		for _, e := range face.Edges {
			m.edges[e].Face = face.ID
		}
		m.faces = append(m.faces, face)
	}

	holes := 0
	for f := range m.faces {
		if m.faces[f].IsHole {
			holes++
		}
	}
	m.logInfo("[mesh-faces] face loops recovered",
		zap.Int("faces", len(m.faces)), zap.Int("holes", holes))
	return nil
}

// Postprocess wires up state derived from the raw connectivity: the
// triangulation flag, boundary flags taken from the hole faces, pair
// ids for every half-edge, and (optionally) the cyclic order of every
// vertex star.
func (m *Mesh) Postprocess(orderStars bool) error {
	m.isTriangulation = true
	for f := range m.faces {
		if !m.faces[f].IsHole && m.faces[f].NSides() != 3 {
			m.isTriangulation = false
			break
		}
	}

	m.boundaryEdges = m.boundaryEdges[:0]
	for f := range m.faces {
		face := &m.faces[f]
		if !face.IsHole {
			continue
		}
		for _, v := range face.Vertices {
			m.vertices[v].Boundary = true
		}
		for _, e := range face.Edges {
			m.edges[e].Boundary = true
			m.boundaryEdges = append(m.boundaryEdges, e)
		}
	}

	for e := range m.edges {
		E := &m.edges[e]
		pair, ok := m.edgeMap[edgeKey{E.To, E.From}]
		if !ok {
			return fmt.Errorf("postprocess: half-edge %d->%d has no reverse half-edge", E.From, E.To)
		}
		E.Pair = pair
		m.edges[pair].Pair = E.ID
	}

	if orderStars {
		for v := range m.vertices {
			if err := m.OrderStar(v); err != nil {
				return err
			}
		}
	}

	m.logInfo("[mesh-postprocess] done",
		zap.Int("vertices", len(m.vertices)),
		zap.Int("edges", len(m.edges)),
		zap.Int("boundary_edges", len(m.boundaryEdges)))
	return nil
}

// GenerateDualMesh computes interior angles and centers for every
// non-hole face and refreshes the dual corners stored on the vertices.
func (m *Mesh) GenerateDualMesh() {
	for f := range m.faces {
		if m.faces[f].IsHole {
			continue
		}
		m.computeAngles(f)
		m.computeCentre(f)
	}
	m.refreshDuals()
}

// UpdateDualMesh recomputes the dual geometry after vertex positions
// moved: face angles and centers, the center Jacobians, and the
// angle-deficit factor gradients of the boundary vertices.
func (m *Mesh) UpdateDualMesh() error {
	for f := range m.faces {
		if !m.faces[f].IsHole {
			m.computeAngles(f)
			m.computeCentre(f)
		}
		m.FcJacobian(f)
	}
	m.refreshDuals()
	for v := range m.vertices {
		if err := m.AngleFactorDeriv(v); err != nil {
			return err
		}
	}
	return nil
}

// refreshDuals realigns each ordered vertex's dual corners with the
// current face centers.
func (m *Mesh) refreshDuals() {
	for v := range m.vertices {
		V := &m.vertices[v]
		if !V.Attached || !V.Ordered {
			continue
		}
		V.Dual = V.Dual[:0]
		for _, f := range V.Faces {
			if !m.faces[f].IsHole {
				V.Dual = append(V.Dual, m.faces[f].RC)
			}
		}
	}
}

func (m *Mesh) logInfo(msg string, fields ...zap.Field) {
	if m.Logger != nil {
		m.Logger.Info(msg, fields...)
	}
}

func (m *Mesh) logDebug(msg string, fields ...zap.Field) {
	if m.Logger != nil {
		m.Logger.Debug(msg, fields...)
	}
}
