/*
 * system.go, part of gonb.
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

import "gonum.org/v1/gonum/mat"

//System bundles a parameter table, an exception list and a set of
//kernels, so a whole force setup can be imported, serialized and
//evaluated as a unit. The table and the exception list are exported
//because the evaluation functions take them separately; mutating them
//directly follows the same freeze rules as always.
type System struct {
	Table      *ParameterTable
	Exceptions *ExceptionList
	kernels    []Kernel
}

//NewSystem returns an empty system with a fresh table and exception
//list.
func NewSystem() *System {
	S := new(System)
	S.Table = NewParameterTable()
	S.Exceptions = NewExceptionList(S.Table)
	return S
}

//AddKernel appends a kernel to the system. The modified system is
//returned for chaining.
func (S *System) AddKernel(k Kernel) *System {
	S.kernels = append(S.kernels, k)
	return S
}

//Kernels returns the kernels of the system, in the order they were
//added. The returned slice is the system's own; treat it as read-only.
func (S *System) Kernels() []Kernel {
	return S.kernels
}

//IncludeExceptions appends an ExceptionPair kernel so the non-exclusion
//entries of the exception list contribute to the energy. The new kernel
//takes the force group of the last kernel already in the system, if
//any. The modified system is returned for chaining.
func (S *System) IncludeExceptions() *System {
	k := NewExceptionPair()
	if len(S.kernels) > 0 {
		k.SetGroup(S.kernels[len(S.kernels)-1].Group()) //the group comes from a kernel, it can't be out of range
	}
	return S.AddKernel(k)
}

//ImportFrom copies every particle and every exception entry of ref into
//S. Exception entries are imported with their parameters, so they stay
//out of the general kernels and are picked up by an ExceptionPair
//kernel if one is present (see IncludeExceptions); to import them as
//plain exclusions instead, removing them from the energy altogether,
//use ImportAsExclusions. It fails with an IllegalState if S is already
//frozen.
func (S *System) ImportFrom(ref *System) error {
	return S.importParams(ref, false)
}

//ImportAsExclusions is like ImportFrom, but zeroes the charge product
//and epsilon of every imported exception, turning them all into
//exclusions.
func (S *System) ImportAsExclusions(ref *System) error {
	return S.importParams(ref, true)
}

func (S *System) importParams(ref *System, asExclusions bool) error {
	for i := 0; i < ref.Table.Len(); i++ {
		p := ref.Table.Particle(i)
		if _, err := S.Table.AddParticle(p.Charge, p.Sigma, p.Epsilon); err != nil {
			return errDecorate(err, "ImportFrom")
		}
	}
	for i := 0; i < ref.Exceptions.Len(); i++ {
		e := ref.Exceptions.Exception(i)
		chargeprod, epsilon := e.Param.Chargeprod, e.Param.Epsilon
		if asExclusions {
			chargeprod, epsilon = 0, 0
		}
		if err := S.Exceptions.Add(e.I, e.J, chargeprod, e.Param.Sigma, epsilon); err != nil {
			return errDecorate(err, "ImportFrom")
		}
	}
	return nil
}

//Decompose evaluates the system at the given coordinates. See the
//package-level Decompose.
func (S *System) Decompose(coords *mat.Dense) (Breakdown, error) {
	return Decompose(S.kernels, S.Table, S.Exceptions, coords)
}

//GroupEnergies evaluates the system's energy by force group. See the
//package-level GroupEnergies.
func (S *System) GroupEnergies(coords *mat.Dense) (map[int]float64, error) {
	return GroupEnergies(S.kernels, S.Table, S.Exceptions, coords)
}

//Forces accumulates the system's per-particle forces. See the
//package-level Forces.
func (S *System) Forces(coords *mat.Dense) (*mat.Dense, error) {
	return Forces(S.kernels, S.Table, S.Exceptions, coords)
}
