/*
 * nb.go, part of gonb.
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

package nb

import "math"

/**Note: some functions here panic instead of returning errors. This is because they are "fundamental"
 * functions: if something goes wrong in them, the program is way-most likely wrong and should crash.
 * The panics are related to calling an accessor on a nil object or with an out-of-bounds index.
 * Setup functions, which take data from the caller, return errors.**/

//Particle holds the nonbonded parameters of one particle. Charge is in
//elementary charge units, Sigma in nm and Epsilon in kJ/mol. Particles
//are immutable once registered in a ParameterTable.
type Particle struct {
	Charge  float64
	Sigma   float64
	Epsilon float64
}

//PairParam holds the parameters of one interacting pair, either combined
//from two particles with the Lorentz-Berthelot rule or taken verbatim
//from an exception entry.
type PairParam struct {
	Chargeprod float64
	Sigma      float64
	Epsilon    float64
}

//ParameterTable is an ordered collection of per-particle nonbonded
//parameters. Particles are identified by the dense, zero-based index
//assigned at registration. The table transitions one way from "building"
//to "frozen": the first evaluation freezes it, after which registration
//calls fail.
type ParameterTable struct {
	particles []Particle
	frozen    bool
}

//NewParameterTable returns an empty table, ready for registration.
func NewParameterTable() *ParameterTable {
	T := new(ParameterTable)
	T.particles = make([]Particle, 0, 10)
	return T
}

//AddParticle registers a particle and returns its index. Indexes are
//sequential in registration order, starting at zero. It fails if the
//table is already frozen.
func (T *ParameterTable) AddParticle(charge, sigma, epsilon float64) (int, error) {
	if T.frozen {
		return -1, newIllegalState(ErrFrozen, "AddParticle")
	}
	T.particles = append(T.particles, Particle{charge, sigma, epsilon})
	return len(T.particles) - 1, nil
}

//Particle returns the particle with index i. Panics if out of range.
func (T *ParameterTable) Particle(i int) Particle {
	if T == nil {
		panic(ErrNilTable)
	}
	if i < 0 || i >= len(T.particles) {
		panic(ErrParticleRange)
	}
	return T.particles[i]
}

//Len returns the number of registered particles.
func (T *ParameterTable) Len() int {
	return len(T.particles)
}

//Frozen returns whether the table still accepts registrations.
func (T *ParameterTable) Frozen() bool {
	return T.frozen
}

//Freeze ends the setup phase. It is called by the evaluation functions,
//but a caller may also call it directly to lock a table early. Freezing
//is not reversible.
func (T *ParameterTable) Freeze() {
	T.frozen = true
}

//Combine applies the Lorentz-Berthelot rule to particles i and j:
//the arithmetic mean of the sigmas, the geometric mean of the epsilons
//and the product of the charges. It returns an IndexError if either
//index is out of range.
func (T *ParameterTable) Combine(i, j int) (PairParam, error) {
	n := len(T.particles)
	if i < 0 || i >= n {
		return PairParam{}, newIndexError(i, "Combine")
	}
	if j < 0 || j >= n {
		return PairParam{}, newIndexError(j, "Combine")
	}
	pi := T.particles[i]
	pj := T.particles[j]
	ret := PairParam{
		Chargeprod: pi.Charge * pj.Charge,
		Sigma:      0.5 * (pi.Sigma + pj.Sigma),
		Epsilon:    math.Sqrt(pi.Epsilon * pj.Epsilon),
	}
	return ret, nil
}
