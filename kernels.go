/*
 * kernels.go, part of gonb.
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

//Kc is the Coulomb constant 1/(4*pi*eps0), in kJ/mol nm e^-2.
const Kc = 138.935456

//Kernel is a pairwise energy/force function. Evaluate takes the scalar
//distance between two particles and the parameters of the pair, and
//returns the interaction energy and the force magnitude -dV/dr. A
//positive force is repulsive. Every kernel carries a force group tag in
//[0,31], used only for energy-decomposition bookkeeping.
type Kernel interface {
	Evaluate(r float64, p PairParam) (energy, force float64)
	Name() string
	Group() int
	SetGroup(g int) error
}

//forceGroup implements the group tag shared by all kernels.
type forceGroup struct {
	group int
}

//Group returns the force group of the kernel.
func (f *forceGroup) Group() int { return f.group }

//SetGroup sets the force group of the kernel. Legal values are between
//0 and 31, inclusive.
func (f *forceGroup) SetGroup(g int) error {
	if g < 0 || g > 31 {
		return newInvalidArgument(ErrGroupRange, "SetGroup")
	}
	f.group = g
	return nil
}

//lennardJones returns 4*eps*((sigma/r)^12-(sigma/r)^6) and its
//derivative with respect to r.
func lennardJones(r, sigma, epsilon float64) (v, dvdr float64) {
	sr := sigma / r
	sr2 := sr * sr
	sr6 := sr2 * sr2 * sr2
	sr12 := sr6 * sr6
	v = 4 * epsilon * (sr12 - sr6)
	dvdr = -24 * epsilon * (2*sr12 - sr6) / r
	return v, dvdr
}

//coulomb returns Kc*chargeprod/r and its derivative with respect to r.
func coulomb(r, chargeprod float64) (v, dvdr float64) {
	v = Kc * chargeprod / r
	return v, -v / r
}

//pairPotential is the full, unmodified LJ+Coulomb pair potential U(r)
//and its derivative. All the kernels are built from it.
func pairPotential(r float64, p PairParam) (u, dudr float64) {
	lj, dlj := lennardJones(r, p.Sigma, p.Epsilon)
	c, dc := coulomb(r, p.Chargeprod)
	return lj + c, dlj + dc
}

//twoOverSqrtPi is 2/sqrt(pi), for the erfc derivative.
const twoOverSqrtPi = 1.1283791670955126

/*DampedSmoothed is a damped and smoothed version of the LJ/Coulomb
potential:

	V(r) = [4*eps*((sigma/r)^12-(sigma/r)^6) + Kc*qq*erfc(alpha*r)/r]*S(r)

for r <= rcutoff, and zero beyond. S is the polynomial switching
multiplier of SwitchFunc, acting from rswitch on. The erfc damping
reproduces the real-space part of an Ewald sum; the reciprocal-space
part needs a mesh solver and is not computed by this library.*/
type DampedSmoothed struct {
	forceGroup
	alpha float64
	sw    *SwitchFunc
}

//NewDampedSmoothed builds a damped-smoothed kernel with the Coulomb
//damping parameter alpha (in inverse distance units) and the given
//switching setup. It fails with an InvalidArgument unless
//0 <= rswitch < rcutoff and degree >= 1.
func NewDampedSmoothed(alpha, rswitch, rcutoff float64, degree int) (*DampedSmoothed, error) {
	sw, err := NewSwitchFunc(rswitch, rcutoff, degree)
	if err != nil {
		return nil, errDecorate(err, "NewDampedSmoothed")
	}
	D := new(DampedSmoothed)
	D.alpha = alpha
	D.sw = sw
	return D, nil
}

//Alpha returns the Coulomb damping parameter.
func (D *DampedSmoothed) Alpha() float64 { return D.alpha }

//Cutoff returns the cutoff distance.
func (D *DampedSmoothed) Cutoff() float64 { return D.sw.Cutoff() }

//Switch returns the switching distance.
func (D *DampedSmoothed) Switch() float64 { return D.sw.Switch() }

//Degree returns the degree of the switching variable.
func (D *DampedSmoothed) Degree() int { return D.sw.Degree() }

//Name returns the label used for this kernel in energy breakdowns.
func (D *DampedSmoothed) Name() string { return "DampedSmoothed" }

//Evaluate returns the energy and force of the pair p at distance r.
func (D *DampedSmoothed) Evaluate(r float64, p PairParam) (energy, force float64) {
	if r > D.sw.Cutoff() {
		return 0, 0
	}
	lj, dlj := lennardJones(r, p.Sigma, p.Epsilon)
	ar := D.alpha * r
	erfc := math.Erfc(ar)
	c := Kc * p.Chargeprod * erfc / r
	dc := -c/r - Kc*p.Chargeprod*D.alpha*twoOverSqrtPi*math.Exp(-ar*ar)/r
	w := lj + c
	dw := dlj + dc
	s, ds := D.sw.Eval(r)
	return w * s, -(dw*s + w*ds)
}

/*Near is the inner range of a near/far splitting of the LJ/Coulomb
potential:

	V(r) = [U(r) - shift*U(rcutoff)]*S(r)

for r <= rcutoff and zero beyond, with U the plain LJ+Coulomb pair
potential and shift either 0 or 1. The switching variable is linear in r
(degree 1). Except for the shifting, this is the "near" part of the
RESPA2 splitting of Zhou (2001) and Morrone (2010), with the switch
applied to the potential rather than to the force.*/
type Near struct {
	forceGroup
	sw      *SwitchFunc
	shifted bool
}

//NewNear builds a near kernel. If shifted is true, the potential is
//offset so it vanishes continuously at the cutoff before smoothing.
//It fails with an InvalidArgument unless 0 <= rswitch < rcutoff.
func NewNear(rswitch, rcutoff float64, shifted bool) (*Near, error) {
	sw, err := NewSwitchFunc(rswitch, rcutoff, 1)
	if err != nil {
		return nil, errDecorate(err, "NewNear")
	}
	N := new(Near)
	N.sw = sw
	N.shifted = shifted
	return N, nil
}

//Cutoff returns the inner cutoff distance.
func (N *Near) Cutoff() float64 { return N.sw.Cutoff() }

//Switch returns the inner switching distance.
func (N *Near) Switch() float64 { return N.sw.Switch() }

//Shifted returns whether the potential is offset to vanish at the
//cutoff.
func (N *Near) Shifted() bool { return N.shifted }

//Name returns the label used for this kernel in energy breakdowns.
func (N *Near) Name() string { return "NearNonbonded" }

//shiftTerm returns shift*U(rcutoff) for the pair p.
func (N *Near) shiftTerm(p PairParam) float64 {
	if !N.shifted {
		return 0
	}
	u, _ := pairPotential(N.sw.Cutoff(), p)
	return u
}

//Evaluate returns the energy and force of the pair p at distance r.
func (N *Near) Evaluate(r float64, p PairParam) (energy, force float64) {
	if r > N.sw.Cutoff() {
		return 0, 0
	}
	u, du := pairPotential(r, p)
	w := u - N.shiftTerm(p)
	s, ds := N.sw.Eval(r)
	return w * s, -(du*s + w*ds)
}

/*Far is the complement of a Near kernel: a far kernel paired with the
near kernel it was built from adds up to the full, unmodified pair
potential U(r) everywhere up to the outer cutoff. Inside the inner
cutoff it subtracts exactly what the near kernel counts there,

	step(rcin-r)*Sin(r)*[-U(r) + shift*U(rcin)]

and over the whole range it adds U(r), hard-cut at the outer cutoff or
taken smoothly to zero by an optional outer switch. Except for the
shifting, this is the "far" part of the RESPA2 splitting of Zhou (2001)
and Morrone (2010).*/
type Far struct {
	forceGroup
	inner   *Near
	rcutoff float64
	//nil means a hard cutoff with no outer smoothing
	outer *SwitchFunc
}

//NewFar builds the complement of the near kernel preceding, with the
//outer cutoff rcutoff and, optionally, an outer switching distance. It
//fails with an InvalidArgument if preceding is not a Near kernel, or if
//the optional switching distance does not satisfy 0 <= rswitch <
//rcutoff.
func NewFar(preceding Kernel, rcutoff float64, rswitch ...float64) (*Far, error) {
	inner, ok := preceding.(*Near)
	if !ok {
		return nil, newInvalidArgument(ErrNotNear, "NewFar")
	}
	F := new(Far)
	F.inner = inner
	F.rcutoff = rcutoff
	if len(rswitch) > 0 {
		var err error
		F.outer, err = NewSwitchFunc(rswitch[0], rcutoff, 1)
		if err != nil {
			return nil, errDecorate(err, "NewFar")
		}
	}
	return F, nil
}

//Inner returns the near kernel this kernel complements.
func (F *Far) Inner() *Near { return F.inner }

//Cutoff returns the outer cutoff distance.
func (F *Far) Cutoff() float64 { return F.rcutoff }

//Switch returns the outer switching distance and whether outer
//switching is enabled at all.
func (F *Far) Switch() (float64, bool) {
	if F.outer == nil {
		return 0, false
	}
	return F.outer.Switch(), true
}

//Name returns the label used for this kernel in energy breakdowns.
func (F *Far) Name() string { return "FarNonbonded" }

//Evaluate returns the energy and force of the pair p at distance r.
func (F *Far) Evaluate(r float64, p PairParam) (energy, force float64) {
	if r > F.rcutoff {
		return 0, 0
	}
	u, du := pairPotential(r, p)
	sout, dsout := 1.0, 0.0
	if F.outer != nil {
		sout, dsout = F.outer.Eval(r)
	}
	energy = u * sout
	force = -(du*sout + u*dsout)
	if r <= F.inner.Cutoff() {
		w := -u + F.inner.shiftTerm(p)
		sin, dsin := F.inner.sw.Eval(r)
		energy += w * sin
		force -= -du*sin + w*dsin
	}
	return energy, force
}

/*ExceptionPair is the per-pair kernel for the non-exclusion entries of
an ExceptionList:

	V(r) = 4*eps*((sigma/r)^12-(sigma/r)^6) + Kc*chargeprod/r

with the override parameters verbatim, no combination rule, no cutoff
and no switching. The decomposition functions evaluate it only over the
listed exception pairs, never over the general pair set.*/
type ExceptionPair struct {
	forceGroup
}

//NewExceptionPair returns an exception kernel.
func NewExceptionPair() *ExceptionPair {
	return new(ExceptionPair)
}

//Name returns the label used for this kernel in energy breakdowns.
func (E *ExceptionPair) Name() string { return "NonbondedExceptions" }

//Evaluate returns the energy and force of the pair p at distance r.
func (E *ExceptionPair) Evaluate(r float64, p PairParam) (energy, force float64) {
	u, du := pairPotential(r, p)
	return u, -du
}
