/*
 * table_test.go, part of gonb.
 *
 * Copyright 2023 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package table

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	nb "github.com/rmera/gonb"
)

//TestWriteRead writes a small curve by hand and reads it back, for each
//supported compressor.
func TestWriteRead(Te *testing.T) {
	dir := Te.TempDir()
	//the last letter selects the compressor: zstd default, then gzip,
	//flate and lzw
	for _, name := range []string{"curve.nbt", "curve.ntz", "curve.flr", "curve.lzl"} {
		full := filepath.Join(dir, name)
		head := map[string]string{"kernel": "NearNonbonded", "units": "nm,kJ/mol"}
		W, err := NewWriter(full, 3, head)
		if err != nil {
			Te.Fatal(err)
		}
		points := []Point{{0.2, 5.0, -25.0}, {0.3, 1.0, -2.0}, {0.4, 0.1, -0.1}}
		for _, p := range points {
			if err := W.WNext(p); err != nil {
				Te.Error(err)
			}
		}
		//writing past the declared count must fail
		if err := W.WNext(Point{0.5, 0, 0}); err == nil {
			Te.Error("expected an error writing past the declared point count")
		}
		W.Close()
		R, m, err := New(full)
		if err != nil {
			Te.Fatal(err)
		}
		if R.Len() != 3 {
			Te.Errorf("%s: read %d points from the header, want 3", name, R.Len())
		}
		if m["kernel"] != "NearNonbonded" || m["units"] != "nm,kJ/mol" {
			Te.Errorf("%s: wrong metadata %v", name, m)
		}
		var p Point
		for i := 0; ; i++ {
			err := R.Next(&p)
			if err != nil {
				if _, ok := err.(LastPointError); ok {
					break
				}
				Te.Fatal(err)
			}
			if p != points[i] {
				Te.Errorf("%s: point %d read back as %v, want %v", name, i, p, points[i])
			}
		}
		if R.Readable() {
			Te.Error("reader still readable after the last point")
		}
	}
}

//TestTabulate samples a kernel to a file and checks the samples against
//direct evaluation.
func TestTabulate(Te *testing.T) {
	near, err := nb.NewNear(0.65, 0.7, true)
	if err != nil {
		Te.Fatal(err)
	}
	p := nb.PairParam{Chargeprod: -0.7056, Sigma: 0.3166, Epsilon: 0.650}
	name := filepath.Join(Te.TempDir(), "near.nbt")
	err = Tabulate(near, p, 0.1, 0.7, 61, name, map[string]string{"kernel": near.Name()})
	if err != nil {
		Te.Fatal(err)
	}
	points, m, err := ReadAll(name)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("tabulated", len(points), "points for", m["kernel"])
	if len(points) != 61 {
		Te.Fatalf("read %d points, want 61", len(points))
	}
	for _, q := range points {
		v, f := near.Evaluate(q.R, p)
		//%.8e keeps about 8 significant figures
		if math.Abs(q.V-v) > 1e-7*math.Max(1, math.Abs(v)) || math.Abs(q.F-f) > 1e-7*math.Max(1, math.Abs(f)) {
			Te.Errorf("at r = %v: table has %v, %v, kernel gives %v, %v", q.R, q.V, q.F, v, f)
		}
	}
	if points[0].R != 0.1 || math.Abs(points[60].R-0.7) > 1e-12 {
		Te.Errorf("wrong sampling range [%v, %v]", points[0].R, points[60].R)
	}
	//degenerate requests
	if err := Tabulate(near, p, 0.1, 0.7, 1, name, nil); err == nil {
		Te.Error("expected an error for a single-point tabulation")
	}
	if err := Tabulate(near, p, 0.7, 0.1, 10, name, nil); err == nil {
		Te.Error("expected an error for an inverted range")
	}
}
