/*
 * json.go, part of gonb.
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

//Package nbjson serializes nonbonded force setups as a stream of
//JSON lines, one object per line, so other programs (in Go or not) can
//send a system to, or receive one from, this library through a pipe.
//The stream starts with a header giving the particle and exception
//counts and the kernel stack, followed by one line per particle and one
//line per exception.
package nbjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	nb "github.com/rmera/gonb"
)

//A ready-to-serialize container for one particle of a parameter table.
type Particle struct {
	Charge  float64
	Sigma   float64
	Epsilon float64
}

//A ready-to-serialize container for one exception entry. I and J are
//particle indexes; the remaining fields override the combination rule
//for that pair.
type Exception struct {
	I, J       int
	Chargeprod float64
	Sigma      float64
	Epsilon    float64
}

//KernelSpec describes one kernel of the stack. Type is one of
//"DampedSmoothed", "Near", "Far" and "Exceptions"; the other fields are
//read or ignored depending on the type. A "Far" spec binds to the most
//recent "Near" spec in the stack.
type KernelSpec struct {
	Type    string
	Alpha   float64 `json:",omitempty"`
	Rswitch float64 `json:",omitempty"`
	Rcutoff float64 `json:",omitempty"`
	Degree  int     `json:",omitempty"`
	Shifted bool    `json:",omitempty"`
	//Switched distinguishes an outer switch at Rswitch from no outer
	//smoothing at all, where Rswitch is meaningless.
	Switched bool `json:",omitempty"`
	Group    int  `json:",omitempty"`
}

//Header opens a serialized system: the element counts let the receiver
//allocate before reading the rest of the stream.
type Header struct {
	Particles  int
	Exceptions int
	Kernels    []KernelSpec
}

//An easily JSON-serializable error type,
type Error struct {
	deco         []string
	IsError      bool //If this is false (no error) all the other fields will be at their zero-values.
	InHeader     bool //If error, was it in the header line?
	InParticles  bool
	InExceptions bool
	InKernels    bool   //was it in rebuilding the kernel stack?
	Line         int    //Which line of its section?
	Function     string //which go function gave the error
	Message      string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, line int, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "header":
		jerr.InHeader = true
	case "particles":
		jerr.InParticles = true
	case "exceptions":
		jerr.InExceptions = true
	default:
		jerr.InKernels = true
	}
	jerr.Line = line
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

//Spec builds the serializable description of a kernel. Kernels outside
//the four stock types get an error, as the receiver could not rebuild
//them.
func Spec(k nb.Kernel) (*KernelSpec, *Error) {
	s := new(KernelSpec)
	s.Group = k.Group()
	switch K := k.(type) {
	case *nb.DampedSmoothed:
		s.Type = "DampedSmoothed"
		s.Alpha = K.Alpha()
		s.Rswitch = K.Switch()
		s.Rcutoff = K.Cutoff()
		s.Degree = K.Degree()
	case *nb.Near:
		s.Type = "Near"
		s.Rswitch = K.Switch()
		s.Rcutoff = K.Cutoff()
		s.Shifted = K.Shifted()
	case *nb.Far:
		s.Type = "Far"
		s.Rcutoff = K.Cutoff()
		s.Rswitch, s.Switched = K.Switch()
	case *nb.ExceptionPair:
		s.Type = "Exceptions"
	default:
		return nil, NewError("kernels", "Spec", 0, fmt.Errorf("can't serialize a %s kernel", k.Name()))
	}
	return s, nil
}

//build turns a spec back into a kernel. A "Far" spec needs the most
//recent "Near" kernel already built, passed in lastNear.
func build(s *KernelSpec, lastNear *nb.Near) (nb.Kernel, *Error) {
	const funcname = "nbjson.build"
	var k nb.Kernel
	var err error
	switch s.Type {
	case "DampedSmoothed":
		k, err = nb.NewDampedSmoothed(s.Alpha, s.Rswitch, s.Rcutoff, s.Degree)
	case "Near":
		k, err = nb.NewNear(s.Rswitch, s.Rcutoff, s.Shifted)
	case "Far":
		if lastNear == nil {
			return nil, NewError("kernels", funcname, 0, fmt.Errorf("a Far spec with no preceding Near spec"))
		}
		if s.Switched {
			k, err = nb.NewFar(lastNear, s.Rcutoff, s.Rswitch)
		} else {
			k, err = nb.NewFar(lastNear, s.Rcutoff)
		}
	case "Exceptions":
		k = nb.NewExceptionPair()
	default:
		return nil, NewError("kernels", funcname, 0, fmt.Errorf("unknown kernel type '%s'", s.Type))
	}
	if err != nil {
		return nil, NewError("kernels", funcname, 0, err)
	}
	if err := k.SetGroup(s.Group); err != nil {
		return nil, NewError("kernels", funcname, 0, err)
	}
	return k, nil
}

//Encode writes the whole system to out as JSON lines: the header, then
//the particles, then the exceptions.
func Encode(sys *nb.System, out io.Writer) *Error {
	const funcname = "nbjson.Encode"
	enc := json.NewEncoder(out)
	h := new(Header)
	h.Particles = sys.Table.Len()
	h.Exceptions = sys.Exceptions.Len()
	for _, k := range sys.Kernels() {
		s, jerr := Spec(k)
		if jerr != nil {
			return jerr
		}
		h.Kernels = append(h.Kernels, *s)
	}
	if err := enc.Encode(h); err != nil {
		return NewError("header", funcname, 0, err)
	}
	for i := 0; i < sys.Table.Len(); i++ {
		at := sys.Table.Particle(i)
		if err := enc.Encode(Particle{at.Charge, at.Sigma, at.Epsilon}); err != nil {
			return NewError("particles", funcname, i, err)
		}
	}
	for i := 0; i < sys.Exceptions.Len(); i++ {
		e := sys.Exceptions.Exception(i)
		jex := Exception{e.I, e.J, e.Param.Chargeprod, e.Param.Sigma, e.Param.Epsilon}
		if err := enc.Encode(jex); err != nil {
			return NewError("exceptions", funcname, i, err)
		}
	}
	return nil
}

//Decode reads a system serialized by Encode from stream and rebuilds
//it, kernels included. The returned system is still unfrozen.
func Decode(stream *bufio.Reader) (*nb.System, *Error) {
	const funcname = "nbjson.Decode"
	line, err := stream.ReadBytes('\n')
	if err != nil {
		return nil, NewError("header", funcname, 0, err)
	}
	h := new(Header)
	if err := json.Unmarshal(line, h); err != nil {
		return nil, NewError("header", funcname, 0, err)
	}
	sys := nb.NewSystem()
	var lastNear *nb.Near
	for i := range h.Kernels {
		k, jerr := build(&h.Kernels[i], lastNear)
		if jerr != nil {
			jerr.Line = i
			return nil, jerr
		}
		if n, ok := k.(*nb.Near); ok {
			lastNear = n
		}
		sys.AddKernel(k)
	}
	for i := 0; i < h.Particles; i++ {
		line, err := stream.ReadBytes('\n')
		if err != nil {
			return nil, NewError("particles", funcname, i, err)
		}
		at := new(Particle)
		if err := json.Unmarshal(line, at); err != nil {
			return nil, NewError("particles", funcname, i, err)
		}
		if _, err := sys.Table.AddParticle(at.Charge, at.Sigma, at.Epsilon); err != nil {
			return nil, NewError("particles", funcname, i, err)
		}
	}
	for i := 0; i < h.Exceptions; i++ {
		line, err := stream.ReadBytes('\n')
		if err != nil {
			return nil, NewError("exceptions", funcname, i, err)
		}
		jex := new(Exception)
		if err := json.Unmarshal(line, jex); err != nil {
			return nil, NewError("exceptions", funcname, i, err)
		}
		if err := sys.Exceptions.Add(jex.I, jex.J, jex.Chargeprod, jex.Sigma, jex.Epsilon); err != nil {
			return nil, NewError("exceptions", funcname, i, err)
		}
	}
	return sys, nil
}
