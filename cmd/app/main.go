package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/0x0FACED/go-dualmesh/pkg/logger"
	"github.com/0x0FACED/go-dualmesh/pkg/mesh"
	"github.com/0x0FACED/go-dualmesh/static"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r3"
)

// buildSheet triangulates a cols x rows grid of jittered vertices in
// the z=0 plane and runs the full pipeline: faces, stars, dual
// geometry, equiangulation and obtuse boundary removal.
func buildSheet(cols, rows int, jitter float64, log *logger.Logger) (*mesh.Mesh, error) {
	m := mesh.New(log)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pos := r3.Vec{
				X: float64(x) + jitter*(2*rand.Float64()-1),
				Y: float64(y) + jitter*(2*rand.Float64()-1),
			}
			m.AddVertex(pos, r3.Vec{Z: 1})
		}
	}

	idx := func(x, y int) int { return y*cols + x }
	addBoth := func(i, j int) {
		m.AddEdge(i, j)
		m.AddEdge(j, i)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if x+1 < cols {
				addBoth(idx(x, y), idx(x+1, y))
			}
			if y+1 < rows {
				addBoth(idx(x, y), idx(x, y+1))
			}
			if x+1 < cols && y+1 < rows {
				addBoth(idx(x, y), idx(x+1, y+1))
			}
		}
	}

	if err := m.GenerateFaces(); err != nil {
		return nil, err
	}
	if err := m.Postprocess(false); err != nil {
		return nil, err
	}
	// Centers must exist before the stars are ordered, or the signed
	// orientation check has nothing to work with.
	m.GenerateDualMesh()
	if err := m.Postprocess(true); err != nil {
		return nil, err
	}
	if _, err := m.Equiangulate(); err != nil {
		return nil, err
	}
	if err := m.RemoveObtuseBoundary(); err != nil {
		return nil, err
	}
	if err := m.UpdateDualMesh(); err != nil {
		return nil, err
	}
	return m, nil
}

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Dual cells",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "x",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// meshToEcharts renders the mesh vertices as a scatter series and every
// dual cell as an overlapped closed line loop.
func meshToEcharts(m *mesh.Mesh, plot mesh.PlotArea) *charts.Scatter {
	scatter := charts.NewScatter()

	points := make([]opts.ScatterData, 0, m.NumVertices())
	for v := 0; v < m.NumVertices(); v++ {
		V := m.Vertex(v)
		if !V.Attached {
			continue
		}
		points = append(points, opts.ScatterData{
			Value: []float64{V.R.X, V.R.Y},
		})
	}

	prepareScatter(scatter)

	scatter.AddSeries("Vertices", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, sides := range plot.Sides {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)

		loop := make([]opts.LineData, 0, len(sides)+1)
		for _, s := range sides {
			loop = append(loop, opts.LineData{Value: []float64{plot.Points[s].X, plot.Points[s].Y}})
		}
		if len(sides) > 0 {
			first := plot.Points[sides[0]]
			loop = append(loop, opts.LineData{Value: []float64{first.X, first.Y}})
		}

		line.AddSeries("Cells", loop).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
		)

		scatter.Overlap(line)
	}

	return scatter
}

func meshHandler(w http.ResponseWriter, r *http.Request) {
	cols := 8
	rows := 8
	jitter := 0.25

	if r.Method == http.MethodPost {
		r.ParseForm()
		cols, _ = strconv.Atoi(r.FormValue("cols"))
		rows, _ = strconv.Atoi(r.FormValue("rows"))
		if pct, err := strconv.Atoi(r.FormValue("jitter")); err == nil {
			jitter = float64(pct) / 100.0
		}
	}
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}

	log := logger.New()
	defer log.Clear()

	m, err := buildSheet(cols, rows, jitter, log)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	plot, err := m.Plot(true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	scatter := meshToEcharts(m, plot)

	fmt.Fprintln(w, static.Part1)

	if err := scatter.Render(w); err != nil {
		fmt.Println("Render error:", err)
	}

	fmt.Fprintln(w, static.Part2)
	fmt.Fprintln(w, log.HTMLLogs())
	fmt.Fprintln(w, static.Part3)
}

func main() {
	http.HandleFunc("/", meshHandler)
	fmt.Println("Listening on http://localhost:8080")
	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Println("Err ListenAndServe", err)
	}
}
