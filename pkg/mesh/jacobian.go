package mesh

import "gonum.org/v1/gonum/spatial/r3"

// FcJacobian computes the 3x3 Jacobians of the circumcenter of
// triangular face f with respect to each of its three vertex positions,
// through the closed-form derivative of the barycentric weights
// lambda_k/Lambda used by computeCircumcentre. Skipped for larger
// polygons. Assumes the face is oriented counterclockwise.
func (m *Mesh) FcJacobian(f int) {
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

	dl1ri := r3.Scale(2*rjk2, r3.Sub(rij, rki))
	dl2ri := r3.Add(r3.Scale(-2*(rjk2+rij2-2*rki2), rki), r3.Scale(2*rki2, rij))
	dl3ri := r3.Sub(r3.Scale(2*(rjk2+rki2-2*rij2), rij), r3.Scale(2*rij2, rki))

	dl1rj := r3.Sub(r3.Scale(2*(rki2+rij2-2*rjk2), rjk), r3.Scale(2*rjk2, rij))
	dl2rj := r3.Scale(2*rki2, r3.Sub(rjk, rij))
	dl3rj := r3.Add(r3.Scale(-2*(rjk2+rki2-2*rij2), rij), r3.Scale(2*rij2, rjk))

	dl1rk := r3.Add(r3.Scale(-2*(rki2+rij2-2*rjk2), rjk), r3.Scale(2*rjk2, rki))
	dl2rk := r3.Sub(r3.Scale(2*(rjk2+rij2-2*rki2), rki), r3.Scale(2*rki2, rjk))
	dl3rk := r3.Scale(2*rij2, r3.Sub(rki, rjk))

	dLamRi := r3.Add(dl1ri, r3.Add(dl2ri, dl3ri))
	dLamRj := r3.Add(dl1rj, r3.Add(dl2rj, dl3rj))
	dLamRk := r3.Add(dl1rk, r3.Add(dl2rk, dl3rk))

	// Quotient rule for d(lambda_k/Lambda)/dr_p.
	invLam2 := 1.0 / (lambda * lambda)
	norm := func(dl, dLam r3.Vec, lam float64) r3.Vec {
		return r3.Scale(invLam2, r3.Sub(r3.Scale(lambda, dl), r3.Scale(lam, dLam)))
	}

	face.DrcDr = face.DrcDr[:0]
	face.DrcDr = append(face.DrcDr,
		fcJacobianMat(
			norm(dl1ri, dLamRi, lambda1),
			norm(dl2ri, dLamRi, lambda2),
			norm(dl3ri, dLamRi, lambda3),
			lambda1/lambda, ri, rj, rk),
		fcJacobianMat(
			norm(dl1rj, dLamRj, lambda1),
			norm(dl2rj, dLamRj, lambda2),
			norm(dl3rj, dLamRj, lambda3),
			lambda2/lambda, ri, rj, rk),
		fcJacobianMat(
			norm(dl1rk, dLamRk, lambda1),
			norm(dl2rk, dLamRk, lambda2),
			norm(dl3rk, dLamRk, lambda3),
			lambda3/lambda, ri, rj, rk))
}

// fcJacobianMat assembles one Jacobian,
// M[a][b] = dl1[b] ri[a] + dl2[b] rj[a] + dl3[b] rk[a] + diag delta_ab,
// where dl1..dl3 are the normalized weight derivatives with respect to
// the vertex in question and diag its own weight lambda_p/Lambda.
func fcJacobianMat(dl1, dl2, dl3 r3.Vec, diag float64, ri, rj, rk r3.Vec) *r3.Mat {
	mat := r3.NewMat(nil)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			val := comp(dl1, b)*comp(ri, a) + comp(dl2, b)*comp(rj, a) + comp(dl3, b)*comp(rk, a)
			if a == b {
				val += diag
			}
			mat.Set(a, b, val)
		}
	}
	return mat
}

func comp(v r3.Vec, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
