/*
 * table.go, part of gonb.
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

//Package table writes and reads tabulated potential curves: plain-text
//"r V F" lines behind a compression layer, so an external simulation
//engine (or a later goNB run) can interpolate a kernel it cannot
//evaluate analytically. The compressor is picked from the last letter of
//the file name: 'z' for gzip, 'r' for flate, 'l' for lzw and anything
//else for zstd, which is the recommended default.
package table

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	nb "github.com/rmera/gonb"
)

const (
	lzwLitwidth int = 8
)

//Point is one sample of a tabulated curve: the pair distance, the
//energy and the force magnitude -dV/dr at that distance.
type Point struct {
	R, V, F float64
}

//Write!
type TabW struct {
	f         *os.File
	h         io.WriteCloser
	npoints   int
	written   int
	filename  string
	writeable bool
}

//NewWriter creates a tabulated-curve file holding npoints samples,
//with the given metadata written as key=value header lines. Only the
//first map is read. The compression level applies to the stdlib
//compressors; zstd always uses its best-compression mode.
func NewWriter(name string, npoints int, header map[string]string, compressionLevel ...int) (*TabW, error) {
	var level int = 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	T := new(TabW)
	var err error
	T.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	zwriter := func(a io.Writer) (io.WriteCloser, error) {
		r, err := flate.NewWriter(a, level)
		return r, err
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = gzipwriter
	case 'r':
		AnyNewWriter = zwriter
	default:
		AnyNewWriter = zstdwriter
	}
	T.h, err = AnyNewWriter(T.f)
	if err != nil {
		return nil, Error{"can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	T.npoints = npoints
	T.filename = name
	T.writeable = true
	if header != nil {
		headerstr := ""
		for k, v := range header {
			headerstr += fmt.Sprintf("%s=%v\n", k, v)
		}
		T.h.Write([]byte(headerstr))
	}
	T.h.Write([]byte(fmt.Sprintf("** %d\n", T.npoints)))
	return T, nil
}

//WNext appends one sample to the table. Samples must come in strictly
//increasing r order; the writer only checks the count, not the order.
func (T *TabW) WNext(p Point) error {
	if !T.writeable {
		return Error{TableUnIniWrite, T.filename, []string{"WNext"}, true}
	}
	if T.written >= T.npoints {
		return Error{fmt.Sprintf("table full: %d points declared", T.npoints), T.filename, []string{"WNext"}, true}
	}
	_, err := T.h.Write([]byte(fmt.Sprintf("%.8e %.8e %.8e\n", p.R, p.V, p.F)))
	if err != nil {
		return Error{err.Error(), T.filename, []string{"WNext"}, true}
	}
	T.written++
	return nil
}

//Close flushes and closes the file. The writer cannot be used after
//this call. Closing before npoints samples were written leaves a short
//table behind, which readers will reject.
func (T *TabW) Close() {
	if T == nil || !T.writeable {
		return
	}
	T.h.Write([]byte("*\n"))
	T.h.Close()
	T.f.Close()
	T.writeable = false
}

//Len returns the declared number of points.
func (T *TabW) Len() int {
	return T.npoints
}

//Tabulate samples the kernel k for the pair parameters p at n evenly
//spaced distances in [rmin, rmax] and writes the curve to name, with
//the metadata in header. It is a convenience wrapper over NewWriter and
//WNext.
func Tabulate(k nb.Kernel, p nb.PairParam, rmin, rmax float64, n int, name string, header map[string]string) error {
	if n < 2 {
		return Error{"need at least two points to tabulate", name, []string{"Tabulate"}, true}
	}
	if rmin <= 0 || rmax <= rmin {
		return Error{fmt.Sprintf("bad tabulation range [%v, %v]", rmin, rmax), name, []string{"Tabulate"}, true}
	}
	T, err := NewWriter(name, n, header)
	if err != nil {
		return errDecorate(err, "Tabulate")
	}
	defer T.Close()
	step := (rmax - rmin) / float64(n-1)
	for i := 0; i < n; i++ {
		r := rmin + float64(i)*step
		v, f := k.Evaluate(r, p)
		if err := T.WNext(Point{r, v, f}); err != nil {
			return errDecorate(err, "Tabulate")
		}
	}
	return nil
}

//Read!
type TabR struct {
	f            *os.File
	z            io.ReadCloser
	h            *bufio.Reader
	intermediate *bufio.Reader
	npoints      int
	read         int
	filename     string
	readable     bool
}

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type stdql struct {
	closeql func()
	*zstd.Decoder
}

//Close closes the object. It can not be used after this call.
func (s stdql) Close() error {
	s.closeql()
	return nil
}

//New opens a tabulated-curve file for reading and returns a handle, a
//map with the metadata (or nil if there is none) and error or nil.
func New(name string) (*TabR, map[string]string, error) {
	T := new(TabR)
	T.npoints = -1 //just so we know if things don't work
	var m map[string]string
	var err error
	T.filename = name
	T.f, err = os.Open(T.filename)
	if err != nil {
		return nil, nil, err
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	zreader := func(a io.Reader) (io.ReadCloser, error) {
		r := flate.NewReader(a)
		return r, nil
	}
	zstdreader := func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		var ql *stdql
		ql = &stdql{r.Close, r}
		return ql, err
	}
	gzreader := func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewReader = gzreader
	case 'r':
		AnyNewReader = zreader
	default:
		AnyNewReader = zstdreader
	}
	T.intermediate = bufio.NewReader(T.f)
	T.z, err = AnyNewReader(T.intermediate)
	if err != nil {
		return nil, nil, Error{"can't read header: " + err.Error(), T.filename, []string{"New"}, true}
	}
	T.h = bufio.NewReader(T.z)
	for {
		str, err := T.h.ReadString('\n')
		if err != nil {
			return nil, nil, Error{"can't read header: " + err.Error(), T.filename, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.Contains(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				return nil, nil, Error{fmt.Sprintf("can't read point count from '%s'", str), T.filename, []string{"New"}, true}
			}
			T.npoints, err = strconv.Atoi(nat[1])
			if err != nil {
				return nil, nil, Error{fmt.Sprintf("can't read point count from '%s': %s", nat[1], err.Error()), T.filename, []string{"New"}, true}
			}
			break
		}
		kv := strings.Split(str, "=")
		if len(kv) != 2 {
			return nil, nil, Error{fmt.Sprintf("malformed header line '%s'", str), T.filename, []string{"New"}, true}
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[kv[0]] = kv[1]
	}
	T.readable = true
	return T, m, nil
}

//Readable returns true if the handle is readable, i.e. if it is
//possible to call Next on it.
func (T *TabR) Readable() bool {
	return T.readable
}

//Next puts the next sample of the table in p. When the table is
//exhausted it returns a non-critical error implementing LastPointError,
//and closes the handle.
func (T *TabR) Next(p *Point) error {
	if !T.readable {
		return Error{TableUnIniRead, T.filename, []string{"Next"}, true}
	}
	str, err := T.h.ReadString('\n')
	if err != nil {
		return Error{err.Error(), T.filename, []string{"Next"}, true}
	}
	if str[0] == '*' {
		if T.read != T.npoints {
			return Error{fmt.Sprintf("table ended after %d of %d points", T.read, T.npoints), T.filename, []string{"Next"}, true}
		}
		T.Close()
		return newlastPointError(T.filename, "Next")
	}
	fields := strings.Fields(str)
	if len(fields) != 3 {
		return Error{fmt.Sprintf("malformed table line '%s'", strings.TrimSpace(str)), T.filename, []string{"Next"}, true}
	}
	var vals [3]float64
	for i, v := range fields {
		vals[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return Error{fmt.Sprintf("can't parse field %d ('%s'): %s", i, v, err.Error()), T.filename, []string{"Next"}, true}
		}
	}
	if p != nil {
		p.R, p.V, p.F = vals[0], vals[1], vals[2]
	}
	T.read++
	return nil
}

//ReadAll reads a whole tabulated-curve file and returns the samples and
//the metadata.
func ReadAll(name string) ([]Point, map[string]string, error) {
	T, m, err := New(name)
	if err != nil {
		return nil, nil, err
	}
	ret := make([]Point, 0, T.Len())
	var p Point
	for {
		err := T.Next(&p)
		if err != nil {
			if _, ok := err.(LastPointError); ok {
				break
			}
			return nil, nil, errDecorate(err, "ReadAll")
		}
		ret = append(ret, p)
	}
	return ret, m, nil
}

//Close closes the object and marks it as unreadable.
func (T *TabR) Close() {
	if !T.readable {
		return
	}
	T.z.Close()
	T.f.Close()
	T.readable = false
}

//Len returns the number of points declared in the table header.
func (T *TabR) Len() int {
	return T.npoints
}

//Errors

//errDecorate is a helper function that asserts that the error
//implements nb.Error and decorates it with the caller's name before
//returning it. Using it on any other error causes a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(nb.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for tabulated-curve errors. It
//fulfills nb.Error.
type Error struct {
	message  string
	filename string //the file with problems, or the empty string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("table file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//The receiver is not a pointer, but E.deco is a slice, hence itself
	//a pointer, so the update is visible to the caller.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TableUnIniRead  = "table object uninitialized to read"
	TableUnIniWrite = "table object uninitialized to write"
)

//LastPointError is the harmless error marking the end of a table, so it
//can be filtered in a type switch.
type LastPointError interface {
	nb.Error
	NormalLastPointTermination() //does nothing, just to tell this interface apart
}

//lastPointError implements LastPointError
type lastPointError struct {
	deco     []string
	fileName string
}

//NormalLastPointTermination does nothing.
func (E lastPointError) NormalLastPointTermination() {}

func (E lastPointError) FileName() string { return E.fileName }

func (E lastPointError) Error() string { return "EOF" }

func (E lastPointError) Critical() bool { return false }

func (E lastPointError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastPointError(filename string, caller string) *lastPointError {
	e := new(lastPointError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
