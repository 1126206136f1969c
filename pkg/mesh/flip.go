package mesh

import (
	"fmt"

	"go.uber.org/zap"
)

// OppositeVertex returns the vertex of half-edge e's face that is not
// an endpoint of e. Returns -1 for a boundary half-edge, an error if
// the face is not a triangle or the face loop is inconsistent.
func (m *Mesh) OppositeVertex(e int) (int, error) {
	E := &m.edges[e]
	if E.Boundary {
		return -1, nil
	}
	face := &m.faces[E.Face]
	if face.NSides() > 3 {
		return -1, fmt.Errorf("opposite vertex: only defined for triangular faces, face %d has %d sides", face.ID, face.NSides())
	}
	for _, v := range face.Vertices {
		if v != E.From && v != E.To {
			return v, nil
		}
	}
	return -1, fmt.Errorf("opposite vertex: face %d and edge %d disagree; mesh is not consistent", face.ID, e)
}

// EdgeFlip flips the half-edge pair of e shared by two triangles: the
// pair is rewired to connect the two opposite vertices, the four
// surrounding half-edges are redistributed between the two faces, face
// caches, vertex adjacency, the edge lookup and the four affected
// vertex stars (with their dual area/perimeter) are all brought up to
// date before returning. A no-op on non-triangulations and on boundary
// edges.
func (m *Mesh) EdgeFlip(e int) error {
	if !m.isTriangulation {
		return nil
	}

	E := &m.edges[e]
	Ep := &m.edges[E.Pair]
	if E.Boundary || Ep.Boundary {
		return nil
	}

	F := &m.faces[E.Face]
	Fp := &m.faces[Ep.Face]

	// The four half-edges around the flipped pair.
	E1 := &m.edges[E.Next]
	E2 := &m.edges[E1.Next]
	E3 := &m.edges[Ep.Next]
	E4 := &m.edges[E3.Next]

	ov1, err := m.OppositeVertex(E.ID)
	if err != nil {
		return err
	}
	ov2, err := m.OppositeVertex(Ep.ID)
	if err != nil {
		return err
	}

	V1 := &m.vertices[E.From]
	V2 := &m.vertices[Ep.From]
	V3 := &m.vertices[ov1]
	V4 := &m.vertices[ov2]

	m.logDebug("[mesh-flip] flipping edge",
		zap.Int("edge", E.ID), zap.Int("pair", Ep.ID),
		zap.Int("v1", V1.ID), zap.Int("v2", V2.ID),
		zap.Int("v3", V3.ID), zap.Int("v4", V4.ID))

	// The pair now runs between the two opposite vertices.
	E.From, E.To = V4.ID, V3.ID
	Ep.From, Ep.To = V3.ID, V4.ID

	E.Next = E2.ID
	E2.Next = E3.ID
	E3.Next = E.ID

	Ep.Next = E4.ID
	E4.Next = E1.ID
	E1.Next = Ep.ID

	E3.Face = F.ID
	E1.Face = Fp.ID

	F.Vertices = append(F.Vertices[:0], E.From, E2.From, E3.From)
	F.Edges = append(F.Edges[:0], E.ID, E2.ID, E3.ID)
	m.computeAngles(F.ID)
	m.computeCentre(F.ID)

	Fp.Vertices = append(Fp.Vertices[:0], Ep.From, E4.From, E1.From)
	Fp.Edges = append(Fp.Edges[:0], Ep.ID, E4.ID, E1.ID)
	m.computeAngles(Fp.ID)
	m.computeCentre(Fp.ID)

	V1.removeNeighbour(V2.ID)
	V1.removeEdge(E.ID)
	V1.removeFace(Fp.ID)

	V2.removeNeighbour(V1.ID)
	V2.removeEdge(Ep.ID)
	V2.removeFace(F.ID)

	V3.addNeighbour(V4.ID)
	V4.addNeighbour(V3.ID)

	V4.addEdge(E.ID)
	V3.addEdge(Ep.ID)

	V3.addFace(Fp.ID)
	V4.addFace(F.ID)

	delete(m.edgeMap, edgeKey{V1.ID, V2.ID})
	delete(m.edgeMap, edgeKey{V2.ID, V1.ID})
	m.edgeMap[edgeKey{V3.ID, V4.ID}] = Ep.ID
	m.edgeMap[edgeKey{V4.ID, V3.ID}] = E.ID

	for _, v := range []int{V1.ID, V2.ID, V3.ID, V4.ID} {
		if err := m.OrderStar(v); err != nil {
			return err
		}
		if _, err := m.DualArea(v); err != nil {
			return err
		}
		if _, err := m.DualPerimeter(v); err != nil {
			return err
		}
	}
	return nil
}

// Equiangulate flips every interior edge whose two opposite interior
// angles are jointly obtuse (their cosines sum below zero) and repeats
// full passes until none flips, leaving a locally Delaunay
// triangulation. Each flip strictly improves the local angle criterion,
// so the iteration terminates. Returns the total number of flips.
func (m *Mesh) Equiangulate() (int, error) {
	if !m.isTriangulation {
		return 0, nil
	}

	total := 0
	flips := true
	for flips {
		flips = false
		for e := 0; e < len(m.edges); e++ {
			E := m.edges[e]
			Ep := m.edges[E.Pair]
			if E.Boundary || Ep.Boundary {
				continue
			}
			ov1, err := m.OppositeVertex(E.ID)
			if err != nil {
				return total, err
			}
			ov2, err := m.OppositeVertex(Ep.ID)
			if err != nil {
				return total, err
			}
			angle1, ok := m.faces[E.Face].angleAt(ov1)
			if !ok {
				return total, fmt.Errorf("equiangulate: no angle for vertex %d on face %d", ov1, E.Face)
			}
			angle2, ok := m.faces[Ep.Face].angleAt(ov2)
			if !ok {
				return total, fmt.Errorf("equiangulate: no angle for vertex %d on face %d", ov2, Ep.Face)
			}
			if angle1+angle2 < 0.0 {
				if err := m.EdgeFlip(E.ID); err != nil {
					return total, err
				}
				flips = true
				total++
			}
		}
	}

	m.logInfo("[mesh-equiangulate] converged", zap.Int("flips", total))
	return total, nil
}
