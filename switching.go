/*
 * switching.go, part of gonb.
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

import "math"

//SwitchFunc is the smooth multiplier that takes a potential to exactly
//zero at the cutoff. With u = (r^n - rswitch^n)/(rcutoff^n - rswitch^n),
//
//	S(r) = 1                              for r <= rswitch
//	S(r) = 1 + u^3*(15u - 6u^2 - 10)      for rswitch < r <= rcutoff
//
//S(rswitch) = 1 and S(rcutoff) = 0 exactly, with zero derivative in r^n
//at both ends, so the switched potential is C1 wherever the unswitched
//one is. Note that for n > 1 this is a slightly different curve from the
//usual u-linear-in-r switch: u here is a degree-n polynomial in r. With
//n == 1 both definitions coincide, and this multiplier is applied
//explicitly for every degree, with no special case.
//
//Beyond the cutoff S is meaningless: callers gate evaluation by the
//cutoff distance before applying the multiplier.
type SwitchFunc struct {
	rswitch float64
	rcutoff float64
	degree  int
	//denominator rcutoff^n - rswitch^n, fixed at construction
	denom float64
}

//NewSwitchFunc builds a switching function. It fails with an
//InvalidArgument unless 0 <= rswitch < rcutoff and degree >= 1.
func NewSwitchFunc(rswitch, rcutoff float64, degree int) (*SwitchFunc, error) {
	if rswitch < 0 || rswitch >= rcutoff {
		return nil, newInvalidArgument(ErrSwitchOrder, "NewSwitchFunc")
	}
	if degree < 1 {
		return nil, newInvalidArgument(ErrDegree, "NewSwitchFunc")
	}
	S := new(SwitchFunc)
	S.rswitch = rswitch
	S.rcutoff = rcutoff
	S.degree = degree
	S.denom = math.Pow(rcutoff, float64(degree)) - math.Pow(rswitch, float64(degree))
	return S, nil
}

//Switch returns the distance at which the multiplier starts to act.
func (S *SwitchFunc) Switch() float64 { return S.rswitch }

//Cutoff returns the distance at which the multiplier reaches zero.
func (S *SwitchFunc) Cutoff() float64 { return S.rcutoff }

//Degree returns the exponent n of the switching variable u.
func (S *SwitchFunc) Degree() int { return S.degree }

//Eval returns the multiplier S(r) and its derivative dS/dr. It must only
//be called with r <= rcutoff; the kernels gate that before calling.
func (S *SwitchFunc) Eval(r float64) (s, dsdr float64) {
	if S == nil {
		panic(ErrNilSwitch)
	}
	if r <= S.rswitch {
		return 1, 0
	}
	n := float64(S.degree)
	u := (math.Pow(r, n) - math.Pow(S.rswitch, n)) / S.denom
	//S = 1 - 10u^3 + 15u^4 - 6u^5, the expanded form of
	//1 + u^3*(15u - 6u^2 - 10)
	u2 := u * u
	u3 := u2 * u
	s = 1 + u3*(15*u-6*u2-10)
	//dS/du = -30u^2(1-u)^2, zero at both ends
	dsdu := -30 * u2 * (1 - u) * (1 - u)
	dudr := n * math.Pow(r, n-1) / S.denom
	return s, dsdu * dudr
}
