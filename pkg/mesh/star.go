package mesh

import "fmt"

// OrderStar reorders vertex v's half-edge, neighbour and face lists
// into one cyclic sequence by walking around the vertex through face
// adjacency: the successor of a half-edge is the one whose pair lies on
// the same face. The sign of the resulting dual area decides whether
// the order agrees with the surface orientation; a negative area
// reverses the lists. Boundary stars are additionally rotated so the
// hole face comes last, both before and after the orientation check,
// since a reversal can undo the rotation. The dual corners are rebuilt
// from the settled face order, positionally aligned with Faces.
func (m *Mesh) OrderStar(v int) error {
	V := &m.vertices[v]
	V.Dual = V.Dual[:0]
	V.Neigh = V.Neigh[:0]
	V.Faces = V.Faces[:0]

	if len(V.Edges) == 0 {
		V.Attached = false
		return nil
	}

	ordered := make([]int, 0, len(V.Edges))
	used := make(map[int]bool, len(V.Edges))
	ordered = append(ordered, V.Edges[0])
	used[V.Edges[0]] = true
	for len(ordered) < len(V.Edges) {
		face := m.edges[ordered[len(ordered)-1]].Face
		found := false
		for _, e := range V.Edges {
			if used[e] || m.edges[m.edges[e].Pair].Face != face {
				continue
			}
			ordered = append(ordered, e)
			used[e] = true
			found = true
			break
		}
		if !found {
			return fmt.Errorf("order star: vertex %d star does not close; mesh is not consistent", v)
		}
	}
	copy(V.Edges, ordered)

	for _, e := range V.Edges {
		E := &m.edges[e]
		V.Neigh = append(V.Neigh, E.To)
		V.Faces = append(V.Faces, E.Face)
	}
	V.Ordered = true

	if V.Boundary {
		m.orderBoundaryStar(v)
	}

	a, err := m.DualArea(v)
	if err != nil {
		return err
	}
	if a < 0.0 {
		V.Area = -V.Area
		reverse(V.Edges)
		reverse(V.Neigh)
		reverse(V.Faces)
	}

	// The reversal may have moved the hole face away from the end.
	if V.Boundary {
		m.orderBoundaryStar(v)
	}

	// Dual corners are filled only now, from the final face order: the
	// list skips hole faces, so it is shorter than the other three and
	// cannot share their rotations and reversals.
	for _, f := range V.Faces {
		if !m.faces[f].IsHole {
			V.Dual = append(V.Dual, m.faces[f].RC)
		}
	}
	return nil
}

// orderBoundaryStar rotates the star lists of a boundary vertex so the
// hole face is the last entry.
func (m *Mesh) orderBoundaryStar(v int) {
	V := &m.vertices[v]
	if !V.Boundary {
		return
	}

	pos := 0
	for f, id := range V.Faces {
		if m.faces[id].IsHole {
			if f != len(V.Faces)-1 {
				pos = f + 1
			}
			break
		}
	}
	rotateLeft(V.Edges, pos)
	rotateLeft(V.Neigh, pos)
	rotateLeft(V.Faces, pos)
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func rotateLeft[T any](s []T, k int) {
	if len(s) == 0 {
		return
	}
	k %= len(s)
	if k == 0 {
		return
	}
	tmp := make([]T, k)
	copy(tmp, s[:k])
	copy(s, s[k:])
	copy(s[len(s)-k:], tmp)
}
