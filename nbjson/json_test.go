/*
 * json_test.go, part of gonb.
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

package nbjson

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"testing"

	nb "github.com/rmera/gonb"
	"gonum.org/v1/gonum/mat"
)

func testSystem(Te *testing.T) *nb.System {
	sys := nb.NewSystem()
	charges := []float64{-0.84, 0.42, 0.42, -0.2}
	for _, q := range charges {
		if _, err := sys.Table.AddParticle(q, 0.3, 0.6); err != nil {
			Te.Fatal(err)
		}
	}
	if err := sys.Exceptions.Add(0, 1, 0, 0, 0); err != nil { //an exclusion
		Te.Fatal(err)
	}
	if err := sys.Exceptions.Add(0, 2, -0.18, 0.25, 0.05); err != nil {
		Te.Fatal(err)
	}
	near, err := nb.NewNear(0.65, 0.7, true)
	if err != nil {
		Te.Fatal(err)
	}
	far, err := nb.NewFar(near, 1.0, 0.95)
	if err != nil {
		Te.Fatal(err)
	}
	far.SetGroup(2)
	sys.AddKernel(near).AddKernel(far).IncludeExceptions()
	return sys
}

//TestRoundTrip encodes a system, decodes it back and checks that both
//give the same energy breakdown, which exercises the particles, the
//exceptions and the whole kernel stack at once.
func TestRoundTrip(Te *testing.T) {
	sys := testSystem(Te)
	buf := new(bytes.Buffer)
	if jerr := Encode(sys, buf); jerr != nil {
		Te.Fatal(jerr)
	}
	fmt.Println("encoded stream:\n", buf.String())
	back, jerr := Decode(bufio.NewReader(buf))
	if jerr != nil {
		Te.Fatal(jerr)
	}
	if back.Table.Len() != 4 || back.Exceptions.Len() != 2 {
		Te.Fatalf("decoded %d particles and %d exceptions, want 4 and 2", back.Table.Len(), back.Exceptions.Len())
	}
	if len(back.Kernels()) != 3 {
		Te.Fatalf("decoded %d kernels, want 3", len(back.Kernels()))
	}
	if g := back.Kernels()[1].Group(); g != 2 {
		Te.Errorf("force group lost in the roundtrip: %d, want 2", g)
	}
	coords := mat.NewDense(4, 3, []float64{
		0, 0, 0,
		0.31, 0, 0,
		0.033, 0.094, 0,
		0.45, 0.3, 0.2,
	})
	want, err := sys.Decompose(coords)
	if err != nil {
		Te.Fatal(err)
	}
	got, err := back.Decompose(coords)
	if err != nil {
		Te.Fatal(err)
	}
	for label, v := range want {
		g, ok := got[label]
		if !ok {
			Te.Errorf("breakdown entry %s missing after the roundtrip", label)
			continue
		}
		if math.Abs(g-v) > 1e-12*math.Max(1, math.Abs(v)) {
			Te.Errorf("%s: %v before, %v after the roundtrip", label, v, g)
		}
	}
}

//TestFarBinding checks that a Far spec binds to the most recent Near
//spec, and that an unbound Far spec is rejected.
func TestFarBinding(Te *testing.T) {
	sys := testSystem(Te)
	buf := new(bytes.Buffer)
	if jerr := Encode(sys, buf); jerr != nil {
		Te.Fatal(jerr)
	}
	back, jerr := Decode(bufio.NewReader(buf))
	if jerr != nil {
		Te.Fatal(jerr)
	}
	far, ok := back.Kernels()[1].(*nb.Far)
	if !ok {
		Te.Fatalf("second kernel decoded as %T, want *nb.Far", back.Kernels()[1])
	}
	near, ok := back.Kernels()[0].(*nb.Near)
	if !ok {
		Te.Fatalf("first kernel decoded as %T, want *nb.Near", back.Kernels()[0])
	}
	if far.Inner() != near {
		Te.Error("decoded Far kernel not bound to the decoded Near kernel")
	}
	//a stream whose only kernel is a Far must be rejected
	orphan := `{"Particles":0,"Exceptions":0,"Kernels":[{"Type":"Far","Rcutoff":1.0}]}` + "\n"
	_, jerr = Decode(bufio.NewReader(bytes.NewBufferString(orphan)))
	if jerr == nil {
		Te.Fatal("expected an error decoding a Far spec with no Near")
	}
	if !jerr.InKernels {
		Te.Errorf("error not flagged as a kernel-section error: %v", jerr)
	}
	fmt.Println("orphan Far error, as the caller would see it:", string(jerr.Marshal()))
}

//TestBadStream checks the error classification for malformed streams.
func TestBadStream(Te *testing.T) {
	if _, jerr := Decode(bufio.NewReader(bytes.NewBufferString("not json\n"))); jerr == nil || !jerr.InHeader {
		Te.Errorf("malformed header not reported as a header error: %v", jerr)
	}
	//header promises a particle that never comes
	short := `{"Particles":1,"Exceptions":0}` + "\n"
	if _, jerr := Decode(bufio.NewReader(bytes.NewBufferString(short))); jerr == nil || !jerr.InParticles {
		Te.Errorf("truncated stream not reported as a particle error: %v", jerr)
	}
	//a self-pair exception must propagate the library's rejection
	self := `{"Particles":2,"Exceptions":1}` + "\n" +
		`{"Charge":0,"Sigma":0.3,"Epsilon":0.5}` + "\n" +
		`{"Charge":0,"Sigma":0.3,"Epsilon":0.5}` + "\n" +
		`{"I":1,"J":1}` + "\n"
	if _, jerr := Decode(bufio.NewReader(bytes.NewBufferString(self))); jerr == nil || !jerr.InExceptions {
		Te.Errorf("self-pair exception not reported as an exception error: %v", jerr)
	}
}
