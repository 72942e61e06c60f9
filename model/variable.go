package model

import (
	"fmt"
	"math"
)

// Bounds holds the lower and upper limit of a variable.
type Bounds struct {
	Lower, Upper float64
}

// A Variable is one scalar unknown of an equation block. It carries a value,
// a fixed flag, and bounds. A fixed variable is treated as a known boundary
// condition and is never moved by a solver.
type Variable struct {
	name  string
	owner *Block

	value float64
	set   bool

	fixed  bool
	bounds Bounds
}

// NewVariable creates an unset, unfixed variable with infinite bounds.
func NewVariable(name string) *Variable {
	nameMustBeValid(name)

	v := new(Variable)
	v.name = name
	v.bounds = Bounds{Lower: math.Inf(-1), Upper: math.Inf(1)}

	return v
}

// Name returns the name of the variable.
func (v *Variable) Name() string {
	return v.name
}

// Value returns the current value of the variable. It panics if no value has
// been assigned yet.
func (v *Variable) Value() float64 {
	if !v.set {
		panic("reading value of unset variable " + v.name)
	}

	return v.value
}

// IsSet reports whether the variable holds a value.
func (v *Variable) IsSet() bool {
	return v.set
}

// SetValue assigns a value to the variable.
func (v *Variable) SetValue(x float64) {
	v.value = x
	v.set = true
}

// Fix marks the variable as a known boundary condition at its current value.
// A variable must hold a value before it can be fixed.
func (v *Variable) Fix() {
	if !v.set {
		panic("fixing unset variable " + v.name)
	}

	v.fixed = true
}

// FixAt assigns a value and fixes the variable in one step.
func (v *Variable) FixAt(x float64) {
	v.SetValue(x)
	v.Fix()
}

// Unfix releases the variable so that a solver may move it.
func (v *Variable) Unfix() {
	v.fixed = false
}

// IsFixed reports whether the variable is fixed.
func (v *Variable) IsFixed() bool {
	return v.fixed
}

// SetBounds sets the lower and upper limit of the variable.
func (v *Variable) SetBounds(lower, upper float64) {
	if lower > upper {
		panic(fmt.Sprintf(
			"variable %s: lower bound %g above upper bound %g",
			v.name, lower, upper))
	}

	v.bounds = Bounds{Lower: lower, Upper: upper}
}

// Bounds returns the bounds of the variable.
func (v *Variable) Bounds() Bounds {
	return v.bounds
}

// Clamp returns x projected into the bounds of the variable.
func (v *Variable) Clamp(x float64) float64 {
	if x < v.bounds.Lower {
		return v.bounds.Lower
	}

	if x > v.bounds.Upper {
		return v.bounds.Upper
	}

	return x
}
