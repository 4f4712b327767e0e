/*
 * nb_test.go, part of gonb.
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
	"testing"
)

//TestCombine checks the Lorentz-Berthelot rule, including the self-pair
//consistency law: Combine(i,i) must give back sigma_i, epsilon_i and
//charge_i squared.
func TestCombine(Te *testing.T) {
	T := NewParameterTable()
	T.AddParticle(-0.84, 0.3166, 0.650)
	T.AddParticle(0.42, 0.0, 0.0)
	T.AddParticle(0.1, 0.25, 0.4)
	for i := 0; i < T.Len(); i++ {
		at := T.Particle(i)
		p, err := T.Combine(i, i)
		if err != nil {
			Te.Error(err)
		}
		if p.Sigma != at.Sigma || math.Abs(p.Epsilon-at.Epsilon) > 1e-12 || math.Abs(p.Chargeprod-at.Charge*at.Charge) > 1e-15 {
			Te.Errorf("self-pair %d: got %v for particle %v", i, p, at)
		}
	}
	p, err := T.Combine(0, 2)
	if err != nil {
		Te.Error(err)
	}
	fmt.Println("combined pair", p)
	if math.Abs(p.Sigma-0.5*(0.3166+0.25)) > 1e-15 {
		Te.Errorf("wrong combined sigma %v", p.Sigma)
	}
	if math.Abs(p.Epsilon-math.Sqrt(0.650*0.4)) > 1e-15 {
		Te.Errorf("wrong combined epsilon %v", p.Epsilon)
	}
}

//TestCombineRange checks that out-of-range indexes give IndexError.
func TestCombineRange(Te *testing.T) {
	T := NewParameterTable()
	T.AddParticle(0, 0.3, 0.5)
	if _, err := T.Combine(0, 1); err == nil {
		Te.Error("expected IndexError for out-of-range j")
	} else if _, ok := err.(IndexError); !ok {
		Te.Errorf("expected IndexError, got %T: %v", err, err)
	}
	if _, err := T.Combine(-1, 0); err == nil {
		Te.Error("expected IndexError for negative i")
	}
}

//TestFreeze checks the one-way building-to-frozen transition of the
//table and the exception list.
func TestFreeze(Te *testing.T) {
	T := NewParameterTable()
	T.AddParticle(0.1, 0.3, 0.5)
	T.AddParticle(-0.1, 0.3, 0.5)
	E := NewExceptionList(T)
	T.Freeze()
	E.Freeze()
	if _, err := T.AddParticle(0, 0, 0); err == nil {
		Te.Error("expected IllegalState after freeze")
	} else if _, ok := err.(IllegalState); !ok {
		Te.Errorf("expected IllegalState, got %T: %v", err, err)
	}
	if err := E.Add(0, 1, 0, 0, 0); err == nil {
		Te.Error("expected IllegalState after freeze")
	}
	if T.Len() != 2 {
		Te.Errorf("freeze changed the particle count: %d", T.Len())
	}
}

//TestExceptions checks pair identity, duplicates and the exclusion
//classification.
func TestExceptions(Te *testing.T) {
	T := NewParameterTable()
	for i := 0; i < 4; i++ {
		T.AddParticle(0.1, 0.3, 0.5)
	}
	E := NewExceptionList(T)
	if err := E.Add(1, 0, 0.0, 0.3, 0.0); err != nil { //an exclusion
		Te.Error(err)
	}
	if err := E.Add(2, 3, 0.05, 0.3, 0.2); err != nil { //an exception
		Te.Error(err)
	}
	//(0,1) is the same pair as (1,0)
	if err := E.Add(0, 1, 0.1, 0.3, 0.1); err == nil {
		Te.Error("expected DuplicatePair for the reversed pair")
	} else if _, ok := err.(DuplicatePair); !ok {
		Te.Errorf("expected DuplicatePair, got %T: %v", err, err)
	}
	if err := E.Add(2, 2, 0, 0, 0); err == nil {
		Te.Error("expected InvalidArgument for a self pair")
	}
	if err := E.Add(0, 7, 0, 0, 0); err == nil {
		Te.Error("expected IndexError for an unregistered particle")
	}
	if !E.Contains(0, 1) || !E.Contains(1, 0) || !E.Contains(3, 2) {
		Te.Error("Contains does not respect unordered pair identity")
	}
	if E.Contains(0, 2) {
		Te.Error("Contains reports a pair that was never added")
	}
	if !E.Exception(0).Excluded() {
		Te.Error("all-zero override not classified as exclusion")
	}
	if E.Exception(1).Excluded() {
		Te.Error("non-zero override classified as exclusion")
	}
}

//TestDOF checks the degrees-of-freedom count, including that degenerate
//inputs are returned unclamped.
func TestDOF(Te *testing.T) {
	masses := []float64{15.999, 1.008, 1.008, 0.0} //a virtual site has no mass
	dof := DOF(masses, 3)
	fmt.Println("DOF", dof)
	if dof != 3*3-3-3 {
		Te.Errorf("wrong DOF %d", dof)
	}
	if DOF([]float64{1.0}, 2) != -2 {
		Te.Error("degenerate DOF should be returned unclamped")
	}
}

//TestErrorDecorate checks that errors accumulate decorations.
func TestErrorDecorate(Te *testing.T) {
	T := NewParameterTable()
	T.AddParticle(0, 0.3, 0.5)
	_, err := T.Combine(0, 5)
	cerr, ok := err.(Error)
	if !ok {
		Te.Fatalf("library error does not implement Error: %T", err)
	}
	deco := cerr.Decorate("TestErrorDecorate")
	fmt.Println("decorations", deco)
	if len(deco) != 2 || deco[1] != "TestErrorDecorate" {
		Te.Errorf("wrong decoration slice %v", deco)
	}
}
