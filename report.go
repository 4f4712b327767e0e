/*
 * report.go, part of gonb.
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

package nb

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Reporter writes compact, separator-joined energy tables for a system,
//one row per Report call, with short column headers so the output stays
//narrow enough for a terminal. The header row is written on the first
//call; the columns are the step counter, one column per kernel label
//(sorted, "Total" excluded) and a final "PE" column with the total
//potential energy.
type Reporter struct {
	out         io.Writer
	sep         string
	step        int
	initialized bool
	labels      []string
}

//NewReporter returns a reporter writing to out with the given column
//separator. An empty separator defaults to a single space.
func NewReporter(out io.Writer, sep string) *Reporter {
	if sep == "" {
		sep = " "
	}
	R := new(Reporter)
	R.out = out
	R.sep = sep
	return R
}

//Report evaluates the system at the given coordinates and writes one
//row, preceded by the header row on the first call. The step counter
//increases by one per call.
func (R *Reporter) Report(sys *System, coords *mat.Dense) error {
	breakdown, err := sys.Decompose(coords)
	if err != nil {
		return errDecorate(err, "Report")
	}
	if !R.initialized {
		R.labels = make([]string, 0, len(breakdown)-1)
		for label := range breakdown {
			if label != "Total" {
				R.labels = append(R.labels, label)
			}
		}
		sort.Strings(R.labels)
		headers := append([]string{"Step"}, R.labels...)
		headers = append(headers, "PE")
		if _, err := fmt.Fprintln(R.out, strings.Join(headers, R.sep)); err != nil {
			return err
		}
		R.initialized = true
	}
	values := make([]string, 0, len(R.labels)+2)
	values = append(values, fmt.Sprintf("%d", R.step))
	for _, label := range R.labels {
		values = append(values, fmt.Sprintf("%.4f", breakdown[label]))
	}
	values = append(values, fmt.Sprintf("%.4f", breakdown.Total()))
	R.step++
	if _, err := fmt.Fprintln(R.out, strings.Join(values, R.sep)); err != nil {
		return err
	}
	if f, ok := R.out.(interface{ Flush() error }); ok {
		f.Flush()
	}
	return nil
}
