/*
 * curves.go, part of gonb
 *
 * Copyright 2023 Raul Mera <rmera{at}usachDOTcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package nbplot renders potential, force and switching curves to png
//files, mostly to eyeball a kernel stack before spending simulation
//time on it.
package nbplot

import (
	"fmt"
	"image/color"

	nb "github.com/rmera/gonb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicCurvePlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "r (nm)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func sampleLine(f func(r float64) float64, rmin, rmax float64, n int) (*plotter.Line, error) {
	pts := make(plotter.XYs, n)
	step := (rmax - rmin) / float64(n-1)
	for i := 0; i < n; i++ {
		pts[i].X = rmin + float64(i)*step
		pts[i].Y = f(pts[i].X)
	}
	return plotter.NewLine(pts)
}

/*CurvePlot produces a png plot of the energy and force curves of the
  kernel k for the pair p, sampled at n points in [rmin, rmax]. The
  extension must not be included in plotname. Returns an error or nil*/
func CurvePlot(k nb.Kernel, p nb.PairParam, rmin, rmax float64, n int, title, plotname string) error {
	if k == nil {
		panic("Given nil kernel")
	}
	if n < 2 || rmin <= 0 || rmax <= rmin {
		return fmt.Errorf("CurvePlot: bad sampling request [%g, %g] with %d points", rmin, rmax, n)
	}
	pl := basicCurvePlot(title, "V (kJ/mol)")
	energy, err := sampleLine(func(r float64) float64 {
		e, _ := k.Evaluate(r, p)
		return e
	}, rmin, rmax, n)
	if err != nil {
		return err
	}
	energy.Color = color.RGBA{R: 196, A: 255}
	force, err := sampleLine(func(r float64) float64 {
		_, f := k.Evaluate(r, p)
		return f
	}, rmin, rmax, n)
	if err != nil {
		return err
	}
	force.Color = color.RGBA{B: 196, A: 255}
	force.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	pl.Add(energy, force)
	pl.Legend.Add("energy", energy)
	pl.Legend.Add("force", force)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := pl.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return err
	}
	return nil
}

/*SwitchPlot produces a png plot of a switching multiplier and its
  derivative between 0 and a little past the cutoff. The extension must
  not be included in plotname. Returns an error or nil*/
func SwitchPlot(S *nb.SwitchFunc, n int, title, plotname string) error {
	if S == nil {
		panic("Given nil switching function")
	}
	if n < 2 {
		return fmt.Errorf("SwitchPlot: need at least 2 points, got %d", n)
	}
	pl := basicCurvePlot(title, "S")
	rmax := S.Cutoff() * 1.05
	rmin := rmax / float64(10*n) //just away from zero
	mult, err := sampleLine(func(r float64) float64 {
		s, _ := S.Eval(r)
		return s
	}, rmin, rmax, n)
	if err != nil {
		return err
	}
	mult.Color = color.RGBA{R: 196, A: 255}
	deriv, err := sampleLine(func(r float64) float64 {
		_, ds := S.Eval(r)
		return ds
	}, rmin, rmax, n)
	if err != nil {
		return err
	}
	deriv.Color = color.RGBA{B: 196, A: 255}
	deriv.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	pl.Add(mult, deriv)
	pl.Legend.Add("S", mult)
	pl.Legend.Add("dS/dr", deriv)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := pl.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return err
	}
	return nil
}
