/*
 * doc.go, part of gonb.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package nb implements pairwise nonbonded potentials for molecular mechanics:
damped and smoothed Lennard-Jones plus Coulomb interactions, with cutoff
switching and per-group energy decomposition.



	**goNB Capabilities**


    Registers per-particle nonbonded parameters (charge, sigma, epsilon)
	and combines them with the Lorentz-Berthelot rule.

    Evaluates damped-smoothed LJ/Coulomb potentials, with a polynomial
	switching function of arbitrary degree in r^n.

    Splits the nonbonded potential into complementary near and far ranges,
	so an external multiple-timestep integrator can evaluate them at
	different frequencies.

    Handles per-pair exceptions and exclusions, evaluated outside the
	general cutoff kernels.

    Decomposes the total potential energy by kernel and by force group,
	and accumulates per-particle forces.

    Counts degrees of freedom of a system of particles with constraints.

The package evaluates energies only; it contains no integrator, no
neighbor search and no periodicity handling. The caller resolves
minimum-image conventions and hands in plain coordinates, one row per
particle, as a gonum Dense matrix.

Subpackages cover the periphery: nbconf reads kernel sets from
configuration files, nbjson serializes systems for inter-program
communication, table writes and reads compressed tabulated potential
curves, and nbplot renders potential and switching curves.

All distances are in nm, energies in kJ/mol and charges in elementary
charge units, following the conventions of the force field files this
library is meant to work with.
*/
package nb
