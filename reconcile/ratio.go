// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reconcile

import (
	"fmt"
	"math"
)

// A Ratio is the quotient of two measurements. A Ratio whose
// denominator was zero is Undefined; it carries no value.
type Ratio struct {
	v  float64
	ok bool
}

// Undefined is the Ratio of anything to zero.
var Undefined = Ratio{}

// Div returns num/den, or Undefined if den is zero or the quotient is
// not finite.
func Div(num, den float64) Ratio {
	if den == 0 {
		return Undefined
	}
	q := num / den
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return Undefined
	}
	return Ratio{q, true}
}

// Defined reports whether r has a value.
func (r Ratio) Defined() bool { return r.ok }

// Value returns the value of r and whether it is defined.
func (r Ratio) Value() (float64, bool) { return r.v, r.ok }

// Float returns the value of r, or NaN if r is Undefined. It is meant
// for plotting and summary statistics that already skip NaNs.
func (r Ratio) Float() float64 {
	if !r.ok {
		return math.NaN()
	}
	return r.v
}

// Format formats r with prec digits after the decimal point, or as
// "undefined".
func (r Ratio) Format(prec int) string {
	if !r.ok {
		return "undefined"
	}
	return fmt.Sprintf("%.*f", prec, r.v)
}

func (r Ratio) String() string {
	if !r.ok {
		return "undefined"
	}
	return fmt.Sprint(r.v)
}
