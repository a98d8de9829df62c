package render

import (
	"errors"
	"image/color"

	"github.com/soypat/lightprobe"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotXY saves a projection of the mesh onto the XY plane. Inner tetrahedra
// edges are drawn in gray and probes as dots, hull probes in red.
// The image format is chosen from the path extension.
func PlotXY(path string, mesh *lightprobe.Mesh) error {
	if len(mesh.Probes) == 0 {
		return errors.New("empty mesh")
	}
	p := plot.New()
	p.Title.Text = "light probes"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	type edge struct{ a, b int }
	seen := make(map[edge]bool)
	for i := range mesh.Tetrahedra {
		t := &mesh.Tetrahedra[i]
		if !t.IsInner() {
			continue
		}
		for j := 0; j < 4; j++ {
			for k := j + 1; k < 4; k++ {
				e := edge{t.Vertices[j], t.Vertices[k]}
				if e.a > e.b {
					e.a, e.b = e.b, e.a
				}
				if seen[e] {
					continue
				}
				seen[e] = true
				pa, pb := mesh.Probes[e.a].Position, mesh.Probes[e.b].Position
				line, err := plotter.NewLine(plotter.XYs{{X: pa.X, Y: pa.Y}, {X: pb.X, Y: pb.Y}})
				if err != nil {
					return err
				}
				line.LineStyle.Width = vg.Points(0.5)
				line.LineStyle.Color = color.Gray{Y: 160}
				p.Add(line)
			}
		}
	}

	var inner, hull plotter.XYs
	for _, v := range mesh.Probes {
		xy := plotter.XY{X: v.Position.X, Y: v.Position.Y}
		if v.Normal == (r3.Vec{}) {
			inner = append(inner, xy)
		} else {
			hull = append(hull, xy)
		}
	}
	for _, set := range []struct {
		xys   plotter.XYs
		color color.Color
	}{
		{xys: inner, color: color.Black},
		{xys: hull, color: color.RGBA{R: 200, A: 255}},
	} {
		if len(set.xys) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(set.xys)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = set.color
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
