package mesh

import (
	"reflect"
	"sort"
	"testing"
)

// neighSets returns a sorted copy of every vertex's neighbour list.
func neighSets(m *Mesh) [][]int {
	sets := make([][]int, m.NumVertices())
	for v := range sets {
		sets[v] = append([]int(nil), m.Vertex(v).Neigh...)
		sort.Ints(sets[v])
	}
	return sets
}

// faceSets returns the face vertex sets, each sorted, the whole list in
// a canonical order.
func faceSets(m *Mesh) [][]int {
	sets := make([][]int, m.NumFaces())
	for f := range sets {
		sets[f] = append([]int(nil), m.Face(f).Vertices...)
		sort.Ints(sets[f])
	}
	sort.Slice(sets, func(i, j int) bool {
		a, b := sets[i], sets[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return sets
}

func TestOppositeVertex(t *testing.T) {
	m := triMesh(t)

	face := m.Face(0)
	for _, e := range face.Edges {
		E := m.Edge(e)
		ov, err := m.OppositeVertex(e)
		if err != nil {
			t.Fatalf("OppositeVertex(%d): %v", e, err)
		}
		if ov == E.From || ov == E.To {
			t.Errorf("edge %d (%d->%d): opposite vertex %d is an endpoint", e, E.From, E.To, ov)
		}
		want := 3 - E.From - E.To
		if ov != want {
			t.Errorf("edge %d: opposite vertex = %d, want %d", e, ov, want)
		}
	}

	for _, e := range m.Face(1).Edges {
		ov, err := m.OppositeVertex(e)
		if err != nil {
			t.Fatalf("OppositeVertex(%d): %v", e, err)
		}
		if ov != -1 {
			t.Errorf("hole-side edge %d: opposite vertex = %d, want -1", e, ov)
		}
	}
}

func TestEdgeFlip(t *testing.T) {
	m := kiteMesh(t)

	e, ok := m.EdgeID(1, 3)
	if !ok {
		t.Fatal("kite has no diagonal 1->3")
	}
	if err := m.EdgeFlip(e); err != nil {
		t.Fatalf("EdgeFlip: %v", err)
	}

	if _, ok := m.EdgeID(1, 3); ok {
		t.Error("old diagonal 1->3 still in the edge lookup")
	}
	if _, ok := m.EdgeID(3, 1); ok {
		t.Error("old diagonal 3->1 still in the edge lookup")
	}
	if _, ok := m.EdgeID(0, 2); !ok {
		t.Error("flipped diagonal 0->2 missing from the edge lookup")
	}
	if _, ok := m.EdgeID(2, 0); !ok {
		t.Error("flipped diagonal 2->0 missing from the edge lookup")
	}

	want := [][]int{{0, 1, 2}, {0, 1, 2, 3}, {0, 2, 3}}
	if got := faceSets(m); !reflect.DeepEqual(got, want) {
		t.Errorf("faces after flip = %v, want %v", got, want)
	}
	checkConsistent(t, m)
}

func TestEdgeFlipInvolution(t *testing.T) {
	m := kiteMesh(t)

	edges, faces := m.NumEdges(), m.NumFaces()
	neigh := neighSets(m)
	sets := faceSets(m)

	e, ok := m.EdgeID(1, 3)
	if !ok {
		t.Fatal("kite has no diagonal 1->3")
	}
	if err := m.EdgeFlip(e); err != nil {
		t.Fatalf("first flip: %v", err)
	}
	e2, ok := m.EdgeID(0, 2)
	if !ok {
		t.Fatal("flipped diagonal 0->2 missing")
	}
	if err := m.EdgeFlip(e2); err != nil {
		t.Fatalf("second flip: %v", err)
	}

	if m.NumEdges() != edges || m.NumFaces() != faces {
		t.Errorf("flip pair changed counts: edges %d->%d, faces %d->%d",
			edges, m.NumEdges(), faces, m.NumFaces())
	}
	if got := neighSets(m); !reflect.DeepEqual(got, neigh) {
		t.Errorf("flip pair changed neighbour sets: %v, want %v", got, neigh)
	}
	if got := faceSets(m); !reflect.DeepEqual(got, sets) {
		t.Errorf("flip pair changed face sets: %v, want %v", got, sets)
	}
	checkConsistent(t, m)
}

func TestEdgeFlipBoundaryNoop(t *testing.T) {
	m := kiteMesh(t)

	e, ok := m.EdgeID(0, 1)
	if !ok {
		t.Fatal("kite has no edge 0->1")
	}
	sets := faceSets(m)
	if err := m.EdgeFlip(e); err != nil {
		t.Fatalf("EdgeFlip on boundary pair: %v", err)
	}
	if got := faceSets(m); !reflect.DeepEqual(got, sets) {
		t.Error("flip of a boundary pair changed the mesh")
	}
}

func TestEquiangulateKite(t *testing.T) {
	m := kiteMesh(t)

	flips, err := m.Equiangulate()
	if err != nil {
		t.Fatalf("Equiangulate: %v", err)
	}
	if flips != 1 {
		t.Errorf("Equiangulate flipped %d edges, want 1", flips)
	}
	if _, ok := m.EdgeID(0, 2); !ok {
		t.Error("equiangulation did not produce diagonal 0-2")
	}

	again, err := m.Equiangulate()
	if err != nil {
		t.Fatalf("second Equiangulate: %v", err)
	}
	if again != 0 {
		t.Errorf("second Equiangulate flipped %d edges, want 0", again)
	}
	checkConsistent(t, m)
}

func TestEquiangulateGridNoop(t *testing.T) {
	// The uniform grid triangulation is already Delaunay: the opposite
	// angles of every diagonal are right angles, the criterion is met
	// with equality and nothing flips.
	m := gridMesh(t, 3)
	flips, err := m.Equiangulate()
	if err != nil {
		t.Fatalf("Equiangulate: %v", err)
	}
	if flips != 0 {
		t.Errorf("Equiangulate flipped %d edges on a Delaunay grid", flips)
	}
}
