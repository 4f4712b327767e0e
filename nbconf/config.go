/*
 * config.go, part of gonb.
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

//Package nbconf builds kernel stacks from gcfg (INI-style)
//configuration files, so a simulation setup can be changed without
//recompiling. A configuration is a set of named sections, one per
//kernel:
//
//	[damped "real-space"]
//	alpha = 2.9
//	rswitch = 0.9
//	rcutoff = 1.0
//	degree = 2
//
//	[near "inner"]
//	rswitch = 0.65
//	rcutoff = 0.7
//	shifted = true
//
//	[far "outer"]
//	near = inner
//	rcutoff = 1.0
//	rswitch = 0.95
//	order = 1
//
//	[exceptions "one-four"]
//	order = 2
//
//Every section takes an optional group (force group tag, 0-31) and an
//optional order; the kernels come out sorted by order, then by name, so
//a far section always finds its near section no matter where in the
//file each one sits. A far section names its near counterpart with the
//near key; rswitch in a far section is the outer switching distance,
//and leaving it out means a hard outer cutoff.
package nbconf

import (
	"fmt"
	"sort"

	nb "github.com/rmera/gonb"
	gcfg "gopkg.in/gcfg.v1"
)

//DampedConfig is the [damped "name"] section.
type DampedConfig struct {
	// Required
	Alpha   float64
	Rcutoff float64

	// Optional
	Rswitch float64
	Degree  int
	Group   int
	Order   int
	Name    string
}

func (d *DampedConfig) CheckInit(name string) error {
	if d.Rcutoff <= 0 {
		return fmt.Errorf(
			"Need to specify a positive rcutoff for damped kernel '%s'.", name,
		)
	}
	if d.Alpha < 0 {
		return fmt.Errorf(
			"Damped kernel '%s' given a negative alpha, %g.", name, d.Alpha,
		)
	}
	if d.Degree == 0 {
		d.Degree = 1
	}
	d.Name = name
	return nil
}

//NearConfig is the [near "name"] section.
type NearConfig struct {
	// Required
	Rcutoff float64

	// Optional
	Rswitch float64
	Shifted bool
	Group   int
	Order   int
	Name    string
}

func (n *NearConfig) CheckInit(name string) error {
	if n.Rcutoff <= 0 {
		return fmt.Errorf(
			"Need to specify a positive rcutoff for near kernel '%s'.", name,
		)
	}
	n.Name = name
	return nil
}

//FarConfig is the [far "name"] section. Near names the near section
//this kernel complements.
type FarConfig struct {
	// Required
	Near    string
	Rcutoff float64

	// Optional
	Rswitch float64
	Group   int
	Order   int
	Name    string
}

func (f *FarConfig) CheckInit(name string) error {
	if f.Near == "" {
		return fmt.Errorf(
			"Need to name the near section for far kernel '%s'.", name,
		)
	}
	if f.Rcutoff <= 0 {
		return fmt.Errorf(
			"Need to specify a positive rcutoff for far kernel '%s'.", name,
		)
	}
	f.Name = name
	return nil
}

//ExceptionsConfig is the [exceptions "name"] section. It has no
//parameters of its own.
type ExceptionsConfig struct {
	// Optional
	Group int
	Order int
	Name  string
}

func (e *ExceptionsConfig) CheckInit(name string) error {
	e.Name = name
	return nil
}

//KernelsConfig is the whole configuration file.
type KernelsConfig struct {
	Damped     map[string]*DampedConfig
	Near       map[string]*NearConfig
	Far        map[string]*FarConfig
	Exceptions map[string]*ExceptionsConfig
}

//one section of any type, ready to sort and build
type section struct {
	order int
	name  string
	far   bool //far sections build last, once every near is known
	build func(nears map[string]*nb.Near) (nb.Kernel, error)
}

//Kernels reads a configuration file and returns the kernel stack it
//describes, sorted by order and then by section name.
func Kernels(fname string) ([]nb.Kernel, error) {
	kc := KernelsConfig{}
	if err := gcfg.ReadFileInto(&kc, fname); err != nil {
		return nil, err
	}
	return kc.Build()
}

//KernelsFromString is Kernels for an in-memory configuration.
func KernelsFromString(conf string) ([]nb.Kernel, error) {
	kc := KernelsConfig{}
	if err := gcfg.ReadStringInto(&kc, conf); err != nil {
		return nil, err
	}
	return kc.Build()
}

//Build validates every section and assembles the kernel stack.
func (kc *KernelsConfig) Build() ([]nb.Kernel, error) {
	sections := []section{}
	nears := map[string]*nb.Near{}
	for name, d := range kc.Damped {
		if err := d.CheckInit(name); err != nil {
			return nil, err
		}
		d := d
		sections = append(sections, section{d.Order, name, false, func(map[string]*nb.Near) (nb.Kernel, error) {
			k, err := nb.NewDampedSmoothed(d.Alpha, d.Rswitch, d.Rcutoff, d.Degree)
			if err != nil {
				return nil, err
			}
			return k, k.SetGroup(d.Group)
		}})
	}
	for name, n := range kc.Near {
		if err := n.CheckInit(name); err != nil {
			return nil, err
		}
		n := n
		sections = append(sections, section{n.Order, name, false, func(nears map[string]*nb.Near) (nb.Kernel, error) {
			k, err := nb.NewNear(n.Rswitch, n.Rcutoff, n.Shifted)
			if err != nil {
				return nil, err
			}
			nears[n.Name] = k
			return k, k.SetGroup(n.Group)
		}})
	}
	for name, f := range kc.Far {
		if err := f.CheckInit(name); err != nil {
			return nil, err
		}
		f := f
		sections = append(sections, section{f.Order, name, true, func(nears map[string]*nb.Near) (nb.Kernel, error) {
			inner, ok := nears[f.Near]
			if !ok {
				return nil, fmt.Errorf(
					"Far kernel '%s' names near section '%s', which does not exist.",
					f.Name, f.Near,
				)
			}
			var k *nb.Far
			var err error
			if f.Rswitch > 0 {
				k, err = nb.NewFar(inner, f.Rcutoff, f.Rswitch)
			} else {
				k, err = nb.NewFar(inner, f.Rcutoff)
			}
			if err != nil {
				return nil, err
			}
			return k, k.SetGroup(f.Group)
		}})
	}
	for name, e := range kc.Exceptions {
		if err := e.CheckInit(name); err != nil {
			return nil, err
		}
		e := e
		sections = append(sections, section{e.Order, name, false, func(map[string]*nb.Near) (nb.Kernel, error) {
			k := nb.NewExceptionPair()
			return k, k.SetGroup(e.Group)
		}})
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("The configuration describes no kernels.")
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].order != sections[j].order {
			return sections[i].order < sections[j].order
		}
		return sections[i].name < sections[j].name
	})
	//two passes: far sections can only build once every near is known,
	//wherever the orders put them.
	kernels := make([]nb.Kernel, len(sections))
	var fars []int
	for i, s := range sections {
		if s.far {
			fars = append(fars, i)
			continue
		}
		k, err := s.build(nears)
		if err != nil {
			return nil, err
		}
		kernels[i] = k
	}
	for _, i := range fars {
		k, err := sections[i].build(nears)
		if err != nil {
			return nil, err
		}
		kernels[i] = k
	}
	return kernels, nil
}
