/*
 * curves_test.go, part of gonb
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

package nbplot

import (
	"os"
	"path/filepath"
	"testing"

	nb "github.com/rmera/gonb"
)

//TestCurvePlot just checks that a plot file comes out, and that broken
//requests don't.
func TestCurvePlot(Te *testing.T) {
	near, err := nb.NewNear(0.65, 0.7, true)
	if err != nil {
		Te.Fatal(err)
	}
	p := nb.PairParam{Chargeprod: -0.7056, Sigma: 0.3166, Epsilon: 0.650}
	name := filepath.Join(Te.TempDir(), "near")
	if err := CurvePlot(near, p, 0.25, 0.7, 200, "Near nonbonded", name); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name + ".png")
	if err != nil {
		Te.Fatal(err)
	}
	if info.Size() == 0 {
		Te.Error("empty plot file")
	}
	if err := CurvePlot(near, p, 0.7, 0.25, 200, "backwards", name); err == nil {
		Te.Error("expected an error for an inverted range")
	}
	if err := CurvePlot(near, p, 0.25, 0.7, 1, "one point", name); err == nil {
		Te.Error("expected an error for a single-point plot")
	}
}

//TestSwitchPlot does the same for the switching-multiplier plot.
func TestSwitchPlot(Te *testing.T) {
	S, err := nb.NewSwitchFunc(0.9, 1.0, 2)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "switch")
	if err := SwitchPlot(S, 300, "Switching multiplier", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Fatal(err)
	}
}
