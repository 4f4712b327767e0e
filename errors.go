/*
 * errors.go, part of gonb.
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

import "fmt"

//This error system predates the "wrapping" errors of the standard library
//(the "%w" directive). It is shared with the rest of the goChem-family
//libraries, so it stays.

// Error is the interface implemented by every error returned from this
// library. The Decorate method adds and retrieves information from the
// error without changing its type or wrapping it in something else.
// Each element of the decoration slice should name a function in the
// calling stack, plus, optionally, extra information in the format
// "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete type backing most errors in the library.
type CError struct {
	message string
	deco    []string
}

func (err CError) Error() string { return err.message }

// Decorate adds the dec string to the decoration slice of the error, and
// returns the resulting slice. An empty string only retrieves the slice.
func (err CError) Decorate(dec string) []string {
	//The receiver is not a pointer but err.deco is a slice, hence itself
	//a pointer, so the update is visible to the caller.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//The following types distinguish the failure categories a caller may want
//to branch on. They all carry a CError, so they all satisfy the Error
//interface above.

// InvalidArgument signals a constructor or setter given values it cannot
// accept, such as a switching distance at or beyond the cutoff, a force
// group outside [0,31], or a far kernel paired with something that is not
// a near kernel.
type InvalidArgument struct {
	CError
}

// IndexError signals a particle index outside the registered range.
type IndexError struct {
	CError
	Index int
}

// IllegalState signals a setup call on a frozen system, or an evaluation
// request on a system with no particles registered.
type IllegalState struct {
	CError
}

// DuplicatePair signals an exception registered twice for the same
// unordered pair.
type DuplicatePair struct {
	CError
	I, J int
}

func newInvalidArgument(message, caller string) InvalidArgument {
	return InvalidArgument{CError{message, []string{caller}}}
}

func newIndexError(index int, caller string) IndexError {
	return IndexError{CError{fmt.Sprintf("particle index %d out of range", index), []string{caller}}, index}
}

func newIllegalState(message, caller string) IllegalState {
	return IllegalState{CError{message, []string{caller}}}
}

func newDuplicatePair(i, j int, caller string) DuplicatePair {
	return DuplicatePair{CError{fmt.Sprintf("pair (%d,%d) already has an exception", i, j), []string{caller}}, i, j}
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. Using it on any other error panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// PanicMsg is a message used for panics. It does satisfy the error
// interface, but for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilTable       = PanicMsg("goNB: nil ParameterTable")
	ErrNilCoords      = PanicMsg("goNB: nil coordinates")
	ErrParticleRange  = PanicMsg("goNB: requested Particle out of bounds")
	ErrExceptionRange = PanicMsg("goNB: requested Exception out of bounds")
	ErrNilSwitch      = PanicMsg("goNB: nil switching function")
	ErrSwitchOrder    = "switching distance must satisfy 0 <= rswitch < rcutoff"
	ErrDegree         = "switching degree must be a positive integer"
	ErrGroupRange     = "force group must be between 0 and 31"
	ErrNotNear        = "preceding kernel must be a NearNonbonded kernel"
	ErrFrozen         = "system already frozen: no setup calls allowed after the first evaluation"
	ErrNoParticles    = "no particles registered"
	ErrSelfPair       = "exception pair needs two distinct particles"
	ErrCoordsMismatch = "coordinate rows do not match the number of registered particles"
)
