/*
 * exceptions.go, part of gonb.
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

//Exception overrides the combination rule for one unordered pair of
//particles. If both Chargeprod and Epsilon are zero the pair is an
//exclusion: it contributes nothing at all, not even through the
//exception kernel. Otherwise the pair is skipped by the general cutoff
//kernels and evaluated only by an ExceptionPair kernel, with the
//override parameters verbatim.
type Exception struct {
	I, J  int
	Param PairParam
}

//Excluded returns whether the entry removes the pair from the system
//altogether.
func (e Exception) Excluded() bool {
	return e.Param.Chargeprod == 0 && e.Param.Epsilon == 0
}

//ExceptionList holds the per-pair overrides of a system. A pair appears
//in at most one entry, and (i,j) is the same pair as (j,i). The list is
//bound to the ParameterTable it was created with, so indexes can be
//validated at registration time.
type ExceptionList struct {
	table   *ParameterTable
	entries []Exception
	index   map[[2]int]int
	frozen  bool
}

//NewExceptionList returns an empty list bound to table. Panics on a nil
//table.
func NewExceptionList(table *ParameterTable) *ExceptionList {
	if table == nil {
		panic(ErrNilTable)
	}
	E := new(ExceptionList)
	E.table = table
	E.index = make(map[[2]int]int)
	return E
}

//pairkey builds the canonical (smaller index first) map key for a pair.
func pairkey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

//Add registers an override for the pair (i,j). It fails with an
//IndexError if either particle is not registered in the bound table,
//with an InvalidArgument if i equals j, with a DuplicatePair if the
//unordered pair already has an entry, and with an IllegalState after the
//first evaluation.
func (E *ExceptionList) Add(i, j int, chargeprod, sigma, epsilon float64) error {
	if E.frozen {
		return newIllegalState(ErrFrozen, "Add")
	}
	if i == j {
		return newInvalidArgument(ErrSelfPair, "Add")
	}
	n := E.table.Len()
	if i < 0 || i >= n {
		return newIndexError(i, "Add")
	}
	if j < 0 || j >= n {
		return newIndexError(j, "Add")
	}
	k := pairkey(i, j)
	if _, ok := E.index[k]; ok {
		return newDuplicatePair(i, j, "Add")
	}
	E.index[k] = len(E.entries)
	E.entries = append(E.entries, Exception{i, j, PairParam{chargeprod, sigma, epsilon}})
	return nil
}

//Contains returns whether the unordered pair (i,j) has an entry, be it
//an exception or an exclusion.
func (E *ExceptionList) Contains(i, j int) bool {
	if E == nil {
		return false
	}
	_, ok := E.index[pairkey(i, j)]
	return ok
}

//Exception returns the entry with index i, in registration order.
//Panics if out of range.
func (E *ExceptionList) Exception(i int) Exception {
	if i < 0 || i >= len(E.entries) {
		panic(ErrExceptionRange)
	}
	return E.entries[i]
}

//Len returns the number of entries, exclusions included.
func (E *ExceptionList) Len() int {
	if E == nil {
		return 0
	}
	return len(E.entries)
}

//Frozen returns whether the list still accepts registrations.
func (E *ExceptionList) Frozen() bool {
	return E.frozen
}

//Freeze ends the setup phase, like ParameterTable.Freeze.
func (E *ExceptionList) Freeze() {
	E.frozen = true
}
