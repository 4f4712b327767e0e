/*
 * decompose.go, part of gonb.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

//Breakdown maps a kernel label to its accumulated energy. When the same
//kernel type appears more than once in an evaluation, repeats are
//disambiguated with an occurrence counter: "Type", "Type(1)", "Type(2)"
//and so on. The "Total" entry is the sum of all the others. A Breakdown
//is created fresh by each evaluation call and never mutated afterwards.
type Breakdown map[string]float64

//Total returns the "Total" entry of the breakdown.
func (B Breakdown) Total() float64 {
	return B["Total"]
}

//dist returns the Euclidean distance between rows i and j of the
//(natoms x 3) coordinate matrix. The caller resolves minimum-image
//conventions before handing in coordinates; this library sees plain
//Cartesian positions.
func dist(coords *mat.Dense, i, j int) float64 {
	dx := coords.At(i, 0) - coords.At(j, 0)
	dy := coords.At(i, 1) - coords.At(j, 1)
	dz := coords.At(i, 2) - coords.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

//checkEval validates and freezes the inputs of an evaluation call.
//Freezing is the one-way transition out of the setup phase: after it,
//AddParticle and Add return IllegalState errors.
func checkEval(table *ParameterTable, excl *ExceptionList, coords *mat.Dense, caller string) error {
	if table == nil {
		panic(ErrNilTable)
	}
	if coords == nil {
		panic(ErrNilCoords)
	}
	if table.Len() == 0 {
		return newIllegalState(ErrNoParticles, caller)
	}
	r, c := coords.Dims()
	if r != table.Len() || c != 3 {
		return newInvalidArgument(fmt.Sprintf("%s: %d x %d coordinates for %d particles", ErrCoordsMismatch, r, c, table.Len()), caller)
	}
	table.Freeze()
	if excl != nil {
		excl.Freeze()
	}
	return nil
}

//kernelEnergy returns the total energy of one kernel over its applicable
//pair set: the explicit exception entries for an ExceptionPair kernel,
//and every unordered particle pair without an exception/exclusion entry
//for any other kernel. The inputs are read-only; combination parameters
//are computed on the fly.
func kernelEnergy(k Kernel, table *ParameterTable, excl *ExceptionList, coords *mat.Dense) float64 {
	var energy float64
	if _, ok := k.(*ExceptionPair); ok {
		for i := 0; i < excl.Len(); i++ {
			e := excl.Exception(i)
			if e.Excluded() {
				continue
			}
			v, _ := k.Evaluate(dist(coords, e.I, e.J), e.Param)
			energy += v
		}
		return energy
	}
	n := table.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if excl.Contains(i, j) {
				continue
			}
			p, _ := table.Combine(i, j) //indexes come from the loop, they can't be out of range
			v, _ := k.Evaluate(dist(coords, i, j), p)
			energy += v
		}
	}
	return energy
}

//Decompose evaluates the total energy of each kernel over all its
//applicable pairs and returns the labeled breakdown, including the
//"Total" entry. It is pure: it does not mutate the table, the exception
//list or the coordinates, other than freezing the first two against
//further setup calls. Kernels are evaluated concurrently, one goroutine
//each; this is safe because all shared inputs are read-only during
//evaluation. The exception list may be nil if the system has no
//exceptions. It fails with an IllegalState if no particle is registered,
//and with an InvalidArgument if the coordinate matrix does not have one
//row per registered particle.
func Decompose(kernels []Kernel, table *ParameterTable, excl *ExceptionList, coords *mat.Dense) (Breakdown, error) {
	if err := checkEval(table, excl, coords, "Decompose"); err != nil {
		return nil, err
	}
	results := make([]chan float64, len(kernels))
	for i, k := range kernels {
		results[i] = make(chan float64)
		go func(k Kernel, pipe chan float64) {
			pipe <- kernelEnergy(k, table, excl, coords)
		}(k, results[i])
	}
	ret := make(Breakdown, len(kernels)+1)
	seen := make(map[string]int, len(kernels))
	var total float64
	for i, k := range kernels {
		energy := <-results[i]
		label := k.Name()
		if times, ok := seen[label]; ok {
			seen[label] = times + 1
			label = fmt.Sprintf("%s(%d)", label, times+1)
		} else {
			seen[label] = 0
		}
		ret[label] = energy
		total += energy
	}
	ret["Total"] = total
	return ret, nil
}

//GroupEnergies sums the energy of the given kernels by force group and
//returns the group-to-energy mapping. Groups with no kernel do not
//appear in the result. The same validation and freezing rules as
//Decompose apply.
func GroupEnergies(kernels []Kernel, table *ParameterTable, excl *ExceptionList, coords *mat.Dense) (map[int]float64, error) {
	if err := checkEval(table, excl, coords, "GroupEnergies"); err != nil {
		return nil, err
	}
	ret := make(map[int]float64)
	for _, k := range kernels {
		ret[k.Group()] += kernelEnergy(k, table, excl, coords)
	}
	return ret, nil
}

//Forces accumulates the per-particle force vectors of all the given
//kernels into a new (natoms x 3) matrix: for each pair, -dV/dr along
//the unit vector joining the particles, applied with opposite signs to
//the two members. The same validation and freezing rules as Decompose
//apply.
func Forces(kernels []Kernel, table *ParameterTable, excl *ExceptionList, coords *mat.Dense) (*mat.Dense, error) {
	if err := checkEval(table, excl, coords, "Forces"); err != nil {
		return nil, err
	}
	n := table.Len()
	forces := mat.NewDense(n, 3, nil)
	addpair := func(k Kernel, i, j int, p PairParam) {
		r := dist(coords, i, j)
		_, f := k.Evaluate(r, p)
		if f == 0 {
			return
		}
		for d := 0; d < 3; d++ {
			e := (coords.At(i, d) - coords.At(j, d)) / r
			forces.Set(i, d, forces.At(i, d)+f*e)
			forces.Set(j, d, forces.At(j, d)-f*e)
		}
	}
	for _, k := range kernels {
		if _, ok := k.(*ExceptionPair); ok {
			for i := 0; i < excl.Len(); i++ {
				e := excl.Exception(i)
				if e.Excluded() {
					continue
				}
				addpair(k, e.I, e.J, e.Param)
			}
			continue
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if excl.Contains(i, j) {
					continue
				}
				p, _ := table.Combine(i, j)
				addpair(k, i, j, p)
			}
		}
	}
	return forces, nil
}
