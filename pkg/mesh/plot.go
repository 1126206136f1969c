package mesh

import "gonum.org/v1/gonum/spatial/r3"

// PlotArea is the flattened view of the dual cells handed to external
// renderers and writers: a shared point list (boundary vertex positions
// first when requested, then the unique face centers), one polygon per
// attached vertex as indices into Points, and parallel area/perimeter
// arrays.
type PlotArea struct {
	Points []r3.Vec
	Sides  [][]int
	Area   []float64
	Perim  []float64
}

// Plot flattens the dual mesh into a renderable polygon list. With
// boundary set, boundary vertices contribute their own position as a
// polygon corner, closing their open dual fans.
func (m *Mesh) Plot(boundary bool) (PlotArea, error) {
	var plot PlotArea

	bndVert := make(map[int]int)
	if boundary {
		for v := range m.vertices {
			V := &m.vertices[v]
			if V.Attached && V.Boundary {
				bndVert[V.ID] = len(plot.Points)
				plot.Points = append(plot.Points, V.R)
			}
		}
	}

	faceIdx := make(map[int]int)
	for v := range m.vertices {
		V := &m.vertices[v]
		if !V.Attached {
			continue
		}
		for _, f := range V.Faces {
			face := &m.faces[f]
			if face.IsHole {
				continue
			}
			if _, ok := faceIdx[face.ID]; !ok {
				faceIdx[face.ID] = len(plot.Points)
				plot.Points = append(plot.Points, face.RC)
			}
		}
	}

	for v := range m.vertices {
		V := &m.vertices[v]
		if !V.Attached {
			continue
		}
		var sides []int
		switch {
		case !V.Boundary:
			for _, f := range V.Faces {
				sides = append(sides, faceIdx[f])
			}
		case boundary:
			sides = append(sides, bndVert[V.ID])
			for _, f := range V.Faces[:len(V.Faces)-1] {
				sides = append(sides, faceIdx[f])
			}
		default:
			continue
		}

		area, err := m.DualArea(V.ID)
		if err != nil {
			return PlotArea{}, err
		}
		perim, err := m.DualPerimeter(V.ID)
		if err != nil {
			return PlotArea{}, err
		}
		plot.Sides = append(plot.Sides, sides)
		plot.Area = append(plot.Area, area)
		plot.Perim = append(plot.Perim, perim)
	}

	return plot, nil
}
