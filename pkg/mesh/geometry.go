package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// signedAngle returns the angle from a to b about the normal n,
// positive counterclockwise when seen from the tip of n.
func signedAngle(a, b, n r3.Vec) float64 {
	return math.Atan2(r3.Dot(r3.Cross(a, b), n), r3.Dot(a, b))
}

// computeAngles stores the cosine of the interior angle at each vertex
// of face f, taken between the unit vectors along the two edges meeting
// there. Assumes the face vertices are ordered.
func (m *Mesh) computeAngles(f int) {
	face := &m.faces[f]
	face.Angles = face.Angles[:0]
	n := face.NSides()
	for i := 0; i < n; i++ {
		im := (i + n - 1) % n
		ip := (i + 1) % n
		ri := m.vertices[face.Vertices[i]].R
		dr1 := r3.Unit(r3.Sub(m.vertices[face.Vertices[ip]].R, ri))
		dr2 := r3.Unit(r3.Sub(m.vertices[face.Vertices[im]].R, ri))
		face.Angles = append(face.Angles, r3.Dot(dr1, dr2))
	}
}

// computeCentre computes the face center: the circumcenter for
// triangles (unless the mesh is configured for geometric centres), the
// geometric centre for anything larger.
func (m *Mesh) computeCentre(f int) {
	if m.faces[f].NSides() > 3 || !m.circumcentre {
		m.computeGeometricCentre(f)
		return
	}
	m.computeCircumcentre(f)
}

// computeCircumcentre computes the circumcenter of a triangular face
// from barycentric weights built out of squared edge lengths,
// rc = sum(lambda_k r_k)/sum(lambda_k) with
// lambda_jk = |r_jk|^2 (L^2 - 2 |r_jk|^2). No trigonometry involved.
func (m *Mesh) computeCircumcentre(f int) {
	face := &m.faces[f]
	if face.NSides() > 3 {
		return
	}

	ri := m.vertices[face.Vertices[0]].R
	rj := m.vertices[face.Vertices[1]].R
	rk := m.vertices[face.Vertices[2]].R

	rjk := r3.Sub(rj, rk)
	rki := r3.Sub(rk, ri)
	rij := r3.Sub(ri, rj)

	rjk2, rki2, rij2 := r3.Norm2(rjk), r3.Norm2(rki), r3.Norm2(rij)
	l2 := rjk2 + rki2 + rij2
	lambda1 := rjk2 * (l2 - 2*rjk2)
	lambda2 := rki2 * (l2 - 2*rki2)
	lambda3 := rij2 * (l2 - 2*rij2)
	lambda := lambda1 + lambda2 + lambda3

	face.RC = r3.Add(
		r3.Scale(lambda1/lambda, ri),
		r3.Add(r3.Scale(lambda2/lambda, rj), r3.Scale(lambda3/lambda, rk)))
}

// computeGeometricCentre stores the arithmetic mean of the face vertex
// positions as the face center.
func (m *Mesh) computeGeometricCentre(f int) {
	face := &m.faces[f]
	var c r3.Vec
	for _, v := range face.Vertices {
		c = r3.Add(c, m.vertices[v].R)
	}
	face.RC = r3.Scale(1/float64(face.NSides()), c)
}

// FaceArea computes and stores the area of face f by fanning triangles
// from its first vertex.
func (m *Mesh) FaceArea(f int) float64 {
	face := &m.faces[f]
	r0 := m.vertices[face.Vertices[0]].R

	face.Area = 0.0
	for i := 1; i < face.NSides()-1; i++ {
		r1 := m.vertices[face.Vertices[i]].R
		r2 := m.vertices[face.Vertices[i+1]].R
		face.Area += r3.Norm(r3.Cross(r3.Sub(r1, r0), r3.Sub(r2, r0)))
	}
	face.Area *= 0.5
	return face.Area
}

// CircumRadius computes and stores the circumscribed circle radius of a
// triangular face. Zero for larger polygons.
func (m *Mesh) CircumRadius(f int) float64 {
	face := &m.faces[f]
	if face.NSides() > 3 {
		face.Radius = 0.0
	} else {
		face.Radius = r3.Norm(r3.Sub(m.vertices[face.Vertices[0]].R, face.RC))
	}
	return face.Radius
}
