package mesh

// Edge is one directed half-edge. Its geometric pair runs the same
// undirected edge in the opposite direction; Next walks the incident
// face. All references are indices into the mesh stores.
type Edge struct {
	ID   int
	From int
	To   int
	Pair int
	Face int
	Next int

	Boundary bool
}

// edgeKey is the ordered vertex pair a half-edge runs along, used for
// existence tests and pair lookup. Unlike half-edge ids, vertex ids are
// stable across structural edits, so the key also serves the
// attempted-removal bookkeeping of the boundary regularization pass.
type edgeKey struct {
	from, to int
}
