package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DualArea computes the area of vertex v's dual cell,
// A_i = 1/2 sum((rc_f x rc_f+1) . N_i) over consecutive incident face
// centers. For a boundary vertex the fan is open: the vertex's own
// position closes it on both sides and the sum never wraps through the
// hole. The star must be ordered.
func (m *Mesh) DualArea(v int) (float64, error) {
	V := &m.vertices[v]
	if !V.Attached {
		return 0.0, nil
	}
	if !V.Ordered {
		return 0.0, fmt.Errorf("dual area: vertex %d star has to be ordered first", v)
	}

	V.Area = 0.0
	if !V.Boundary {
		n := len(V.Faces)
		for f := 0; f < n; f++ {
			rc := m.faces[V.Faces[f]].RC
			rcn := m.faces[V.Faces[(f+1)%n]].RC
			V.Area += r3.Dot(r3.Cross(rc, rcn), V.N)
		}
	} else {
		n := len(V.Faces)
		if n < 2 {
			return 0.0, nil
		}
		V.Area = r3.Dot(r3.Cross(V.R, m.faces[V.Faces[0]].RC), V.N)
		for f := 0; f < n-2; f++ {
			rc := m.faces[V.Faces[f]].RC
			rcn := m.faces[V.Faces[f+1]].RC
			V.Area += r3.Dot(r3.Cross(rc, rcn), V.N)
		}
		V.Area += r3.Dot(r3.Cross(m.faces[V.Faces[n-2]].RC, V.R), V.N)
	}

	V.Area *= 0.5
	return V.Area, nil
}

// DualPerimeter computes the perimeter of vertex v's dual cell,
// l_i = sum(|rc_f - rc_f+1|), with the same open-fan treatment of
// boundary vertices as DualArea. The star must be ordered.
func (m *Mesh) DualPerimeter(v int) (float64, error) {
	V := &m.vertices[v]
	if !V.Attached {
		return 0.0, nil
	}
	if !V.Ordered {
		return 0.0, fmt.Errorf("dual perimeter: vertex %d star has to be ordered first", v)
	}

	V.Perim = 0.0
	if !V.Boundary {
		n := len(V.Faces)
		for f := 0; f < n; f++ {
			rc := m.faces[V.Faces[f]].RC
			rcn := m.faces[V.Faces[(f+1)%n]].RC
			V.Perim += r3.Norm(r3.Sub(rc, rcn))
		}
	} else {
		n := len(V.Faces)
		if n < 2 {
			return 0.0, nil
		}
		V.Perim = r3.Norm(r3.Sub(V.R, m.faces[V.Faces[0]].RC))
		for f := 0; f < n-2; f++ {
			rc := m.faces[V.Faces[f]].RC
			rcn := m.faces[V.Faces[f+1]].RC
			V.Perim += r3.Norm(r3.Sub(rc, rcn))
		}
		V.Perim += r3.Norm(r3.Sub(m.faces[V.Faces[n-2]].RC, V.R))
	}

	return V.Perim, nil
}

// AngleFactor returns the dimensionless factor (2pi - dtheta)/2pi that
// rescales the open-fan dual area of a boundary vertex, where dtheta is
// the angle subtended at the vertex by the two extreme dual-fan face
// centers. Interior vertices always get 1.
func (m *Mesh) AngleFactor(v int) float64 {
	V := &m.vertices[v]
	if !V.Boundary {
		return 1.0
	}
	if len(V.Faces) < 3 || !V.Attached {
		return 0.0
	}

	f1 := &m.faces[V.Faces[0]]
	fn := &m.faces[V.Faces[len(V.Faces)-2]]

	r1 := r3.Sub(f1.RC, V.R)
	rn := r3.Sub(fn.RC, V.R)

	angle := math.Acos(r3.Dot(r1, rn) / (r3.Norm(r1) * r3.Norm(rn)))
	if r3.Dot(r3.Cross(r1, rn), V.N) > 0.0 {
		// Reflex fan.
		angle = 2*math.Pi - angle
	}

	return (2*math.Pi - angle) / (2 * math.Pi)
}

// AngleFactorDeriv computes the analytic gradient of the angle-deficit
// factor of boundary vertex v with respect to its own position and the
// positions of its two boundary-adjacent neighbours; all other
// neighbours get a zero gradient. The result is stored in V.AngleDef,
// self first, then one entry per neighbour in star order. Requires the
// face center Jacobians of the two extreme fan faces.
func (m *Mesh) AngleFactorDeriv(v int) error {
	V := &m.vertices[v]
	if !V.Boundary || !V.Attached {
		return nil
	}

	V.AngleDef = V.AngleDef[:0]

	if len(V.Faces) < 2 {
		return nil
	}
	f1 := &m.faces[V.Faces[0]]
	fn := &m.faces[V.Faces[len(V.Faces)-2]]
	if f1.NSides() != 3 || fn.NSides() != 3 {
		return nil
	}

	j1, ok := f1.jacobianFor(V.ID)
	if !ok {
		return fmt.Errorf("angle factor deriv: vertex %d has no Jacobian on face %d", v, f1.ID)
	}
	jn, ok := fn.jacobianFor(V.ID)
	if !ok {
		return fmt.Errorf("angle factor deriv: vertex %d has no Jacobian on face %d", v, fn.ID)
	}

	r1 := r3.Sub(f1.RC, V.R)
	rn := r3.Sub(fn.RC, V.R)

	sign := -1.0
	if r3.Dot(r3.Cross(r1, rn), V.N) < 0.0 {
		sign = 1.0
	}

	l1 := r3.Norm(r1)
	ln := r3.Norm(rn)
	l1sq := l1 * l1
	lnsq := ln * ln
	dot1n := r3.Dot(r1, rn)
	u1 := r3.Unit(r1)
	un := r3.Unit(rn)

	// Gradient with respect to the vertex itself; products of the form
	// v*J are row-vector times matrix, i.e. J^T v.
	t1 := r3.Add(
		r3.Sub(j1.MulVecTrans(rn), rn),
		r3.Sub(jn.MulVecTrans(r1), r1))
	t2 := r3.Add(
		r3.Scale(l1, r3.Sub(jn.MulVecTrans(un), un)),
		r3.Scale(ln, r3.Sub(j1.MulVecTrans(u1), u1)))
	dRi := r3.Sub(
		r3.Scale(1.0/(l1*ln), t1),
		r3.Scale(dot1n/(l1sq*lnsq), t2))

	fact := 0.0
	if cos2 := dot1n * dot1n / (l1sq * lnsq); math.Abs(cos2) < 1.0 {
		fact = sign / (2 * math.Pi) / math.Sqrt(1.0-cos2)
	}

	V.AngleDef = append(V.AngleDef, r3.Scale(fact, dRi))
	for range V.Edges {
		V.AngleDef = append(V.AngleDef, r3.Vec{})
	}

	for e := range V.Edges {
		if e <= 1 {
			vj := m.edges[V.Edges[e]].To
			jj, ok := f1.jacobianFor(vj)
			if !ok {
				return fmt.Errorf("angle factor deriv: neighbour %d has no Jacobian on face %d", vj, f1.ID)
			}
			dRj := r3.Sub(
				r3.Scale(1.0/(l1*ln), jj.MulVecTrans(rn)),
				r3.Scale(dot1n/(l1sq*lnsq), r3.Scale(ln, jj.MulVecTrans(u1))))
			V.AngleDef[e+1] = r3.Add(V.AngleDef[e+1], r3.Scale(fact, dRj))
		}
		if e >= len(V.Edges)-2 {
			vk := m.edges[V.Edges[e]].To
			jk, ok := fn.jacobianFor(vk)
			if !ok {
				return fmt.Errorf("angle factor deriv: neighbour %d has no Jacobian on face %d", vk, fn.ID)
			}
			dRk := r3.Sub(
				r3.Scale(1.0/(l1*ln), jk.MulVecTrans(r1)),
				r3.Scale(dot1n/(l1sq*lnsq), r3.Scale(l1, jk.MulVecTrans(un))))
			V.AngleDef[e+1] = r3.Add(V.AngleDef[e+1], r3.Scale(fact, dRk))
		}
	}

	return nil
}
