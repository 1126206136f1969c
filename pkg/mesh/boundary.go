package mesh

import (
	"fmt"

	"go.uber.org/zap"
)

// UpdateFaceProperties recomputes, for every non-hole face, whether it
// touches the boundary and whether it is obtuse at the boundary (the
// angle opposite a boundary-paired edge exceeds 90 degrees). It returns
// the work list of obtuse boundary half-edges for the removal pass.
func (m *Mesh) UpdateFaceProperties() ([]int, error) {
	return m.updateFaceProperties(nil)
}

// updateFaceProperties is UpdateFaceProperties with an attempted-
// removal set: half-edges whose vertex pair is in the set stay off the
// work list. The set is keyed by vertex pair because edge ids shift
// when a removal renumbers the mesh.
func (m *Mesh) updateFaceProperties(attempted map[edgeKey]bool) ([]int, error) {
	var obtuse []int
	for f := range m.faces {
		face := &m.faces[f]
		face.Boundary = false
		face.Obtuse = false
		if face.IsHole {
			continue
		}
		for _, e := range face.Edges {
			if m.edges[m.edges[e].Pair].Boundary {
				face.Boundary = true
				break
			}
		}
		for _, e := range face.Edges {
			pair := &m.edges[m.edges[e].Pair]
			if !pair.Boundary {
				continue
			}
			ov, err := m.OppositeVertex(e)
			if err != nil {
				return nil, err
			}
			angle, ok := face.angleAt(ov)
			if !ok {
				return nil, fmt.Errorf("face properties: no interior angle for vertex %d on face %d; generate the dual mesh first", ov, f)
			}
			if angle < 0.0 {
				face.Obtuse = true
				if !attempted[edgeKey{pair.From, pair.To}] {
					obtuse = append(obtuse, pair.ID)
				}
				break
			}
		}
	}
	return obtuse, nil
}

// RemoveObtuseBoundary strips boundary triangles that are obtuse at the
// boundary, one edge pair at a time, recomputing face properties after
// each removal until no removable obtuse boundary edge remains. Each
// edge is attempted at most once.
func (m *Mesh) RemoveObtuseBoundary() error {
	attempted := make(map[edgeKey]bool)
	obtuse, err := m.updateFaceProperties(attempted)
	if err != nil {
		return err
	}

	removed := 0
	for len(obtuse) > 0 {
		e := obtuse[0]
		E := m.edges[e]
		attempted[edgeKey{E.From, E.To}] = true
		attempted[edgeKey{E.To, E.From}] = true

		ok, err := m.RemoveEdgePair(e)
		if err != nil {
			return err
		}
		if ok {
			removed++
		}
		obtuse, err = m.updateFaceProperties(attempted)
		if err != nil {
			return err
		}
	}

	m.logInfo("[mesh-boundary] obtuse boundary pass done", zap.Int("removed", removed))
	return nil
}

// RemoveEdgePair removes the half-edge pair of boundary half-edge e,
// merging the triangle behind it into the hole face: the triangle's
// third vertex becomes a boundary vertex and its remaining edges become
// boundary edges of the hole. Refused (false, nil) when e is not a
// hole-side boundary half-edge, when the face behind it is not a
// triangle, or when all three of that triangle's vertices are already
// on the boundary (removing it would disconnect the boundary). On
// success the two half-edges and one face are erased and every id
// reference mesh-wide is renumbered to stay dense.
func (m *Mesh) RemoveEdgePair(e int) (bool, error) {
	E := m.edges[e]
	Ep := m.edges[E.Pair]

	if !E.Boundary {
		return false, nil
	}

	face := &m.faces[Ep.Face]
	facePair := &m.faces[E.Face]
	if face.IsHole || !facePair.IsHole || face.NSides() != 3 {
		return false, nil
	}

	nonRegular := true
	for _, v := range face.Vertices {
		nonRegular = nonRegular && m.vertices[v].Boundary
	}
	if nonRegular {
		return false, nil
	}

	V1 := &m.vertices[E.From]
	V2 := &m.vertices[Ep.From]

	V1.removeNeighbour(V2.ID)
	V2.removeNeighbour(V1.ID)
	V1.removeEdge(E.ID)
	V2.removeEdge(Ep.ID)
	V1.removeFace(face.ID)
	V2.removeFace(face.ID)

	delete(m.edgeMap, edgeKey{V1.ID, V2.ID})
	delete(m.edgeMap, edgeKey{V2.ID, V1.ID})

	// Re-home the triangle's third vertex and surviving edges onto the
	// growing hole.
	affected := make([]int, 0, 3)
	for _, vv := range face.Vertices {
		if vv != V1.ID && vv != V2.ID {
			V := &m.vertices[vv]
			V.removeFace(face.ID)
			V.addFace(facePair.ID)
			facePair.Vertices = append(facePair.Vertices, vv)
			V.Boundary = true
		}
		affected = append(affected, vv)
	}
	for _, ee := range face.Edges {
		if ee != E.ID && ee != Ep.ID {
			EE := &m.edges[ee]
			EE.Face = facePair.ID
			EE.Boundary = true
			facePair.Edges = append(facePair.Edges, ee)
			m.boundaryEdges = append(m.boundaryEdges, ee)
		}
	}

	e1, e2 := E.ID, Ep.ID
	if e2 < e1 {
		e1, e2 = e2, e1
	}
	f := face.ID

	m.logDebug("[mesh-boundary] removing edge pair",
		zap.Int("e1", e1), zap.Int("e2", e2), zap.Int("face", f))

	// Erase the two half-edges and the face, then renumber: ids double
	// as dense array indices, so every reference mesh-wide is remapped.
	m.edges = append(m.edges[:e2], m.edges[e2+1:]...)
	m.edges = append(m.edges[:e1], m.edges[e1+1:]...)
	m.faces = append(m.faces[:f], m.faces[f+1:]...)

	edgeRemap := make([]int, len(m.edges)+2)
	for old := range edgeRemap {
		switch {
		case old == e1 || old == e2:
			edgeRemap[old] = -1
		case old > e2:
			edgeRemap[old] = old - 2
		case old > e1:
			edgeRemap[old] = old - 1
		default:
			edgeRemap[old] = old
		}
	}
	faceRemap := make([]int, len(m.faces)+1)
	for old := range faceRemap {
		switch {
		case old == f:
			faceRemap[old] = -1
		case old > f:
			faceRemap[old] = old - 1
		default:
			faceRemap[old] = old
		}
	}

	for i := range m.edges {
		EE := &m.edges[i]
		EE.ID = i
		EE.Pair = remapID(EE.Pair, edgeRemap)
		EE.Next = remapID(EE.Next, edgeRemap)
		EE.Face = remapID(EE.Face, faceRemap)
	}
	for i := range m.faces {
		FF := &m.faces[i]
		FF.ID = i
		FF.Edges = remapDropping(FF.Edges, edgeRemap)
	}
	for i := range m.vertices {
		V := &m.vertices[i]
		V.Edges = remapDropping(V.Edges, edgeRemap)
		V.Faces = remapDropping(V.Faces, faceRemap)
	}
	for k, id := range m.edgeMap {
		m.edgeMap[k] = edgeRemap[id]
	}
	m.boundaryEdges = remapDropping(m.boundaryEdges, edgeRemap)

	for _, v := range affected {
		if err := m.OrderStar(v); err != nil {
			return true, err
		}
	}
	return true, nil
}

// remapDropping rewrites every id through the remap table and drops the
// ids mapped to -1 (the erased records).
func remapDropping(ids []int, remap []int) []int {
	out := ids[:0]
	for _, id := range ids {
		if id >= 0 && remap[id] >= 0 {
			out = append(out, remap[id])
		}
	}
	return out
}

// remapID rewrites one id reference; erased and unset (-1) references
// stay unset. A removal cuts the removed pair out of the hole's Next
// chain, so hole-side Next pointers can legitimately be unset here.
func remapID(id int, remap []int) int {
	if id < 0 {
		return -1
	}
	return remap[id]
}
