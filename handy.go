/*
 * handy.go, part of gonb.
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

import "log"

//DOF counts the degrees of freedom of a system:
//
//	DOF = 3*N_moving - 3 - N_constraints
//
//where N_moving is the number of particles with positive mass. The
//result can be zero or negative for degenerate inputs (very few
//unconstrained particles); such results are logged as a warning and
//returned as they are, not clamped, so the caller decides what a
//sensible floor is.
func DOF(masses []float64, nconstraints int) int {
	moving := 0
	for _, m := range masses {
		if m > 0 {
			moving++
		}
	}
	dof := 3*moving - 3 - nconstraints
	if dof <= 0 {
		log.Printf("goNB: %d degrees of freedom for %d moving particles and %d constraints", dof, moving, nconstraints)
	}
	return dof
}
