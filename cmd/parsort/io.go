// Copyright 2025 go-forkjoin Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/ajroetker/go-forkjoin/fj"
	"github.com/ajroetker/go-forkjoin/fj/contrib/lcg"
)

// wordReader yields whitespace-separated tokens from an input stream.
type wordReader struct {
	sc *bufio.Scanner
}

func newWordReader(r io.Reader) *wordReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &wordReader{sc: sc}
}

func (w *wordReader) next() (string, error) {
	if !w.sc.Scan() {
		if err := w.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return w.sc.Text(), nil
}

// Uint64 reads the next token as an unsigned decimal integer.
func (w *wordReader) Uint64() (uint64, error) {
	tok, err := w.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", fj.ErrInvalidInput, err)
	}
	return v, nil
}

// Int reads the next token as a signed decimal integer.
func (w *wordReader) Int() (int, error) {
	tok, err := w.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", fj.ErrInvalidInput, err)
	}
	return int(v), nil
}

// readParams reads "N a b p".
func readParams(w *wordReader) (lcg.Params, error) {
	var vals [4]uint64
	names := [4]string{"length N", "multiplier a", "increment b", "modulus p"}
	for i := range vals {
		v, err := w.Uint64()
		if err != nil {
			return lcg.Params{}, fmt.Errorf("reading %s: %w", names[i], err)
		}
		vals[i] = v
	}
	if vals[0] > math.MaxInt {
		return lcg.Params{}, fmt.Errorf("length %d too large: %w", vals[0], fj.ErrInvalidInput)
	}

	p := lcg.Params{
		Length:     int(vals[0]),
		Multiplier: vals[1],
		Increment:  vals[2],
		Modulus:    vals[3],
	}
	return p, p.Validate()
}

// writeValues prints vals separated by single spaces and ends the line.
func writeValues(w io.Writer, vals []uint64) error {
	bw := bufio.NewWriterSize(w, 1<<16)
	var buf []byte
	for i, v := range vals {
		buf = buf[:0]
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendUint(buf, v, 10)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}
