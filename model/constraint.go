package model

// A Constraint is one equality of an equation block, written in residual form
// residual() == 0. The referenced variables are listed explicitly so that a
// solver can exploit the sparsity of the system.
type Constraint struct {
	name  string
	owner *Block

	active bool
	scale  float64

	vars     []*Variable
	residual func() float64
}

// NewConstraint creates an active constraint with unit scale. The vars slice
// must list every variable the residual closure reads.
func NewConstraint(
	name string,
	vars []*Variable,
	residual func() float64,
) *Constraint {
	nameMustBeValid(name)

	if residual == nil {
		panic("constraint " + name + " has no residual")
	}

	c := new(Constraint)
	c.name = name
	c.active = true
	c.scale = 1.0
	c.vars = vars
	c.residual = residual

	return c
}

// Name returns the name of the constraint.
func (c *Constraint) Name() string {
	return c.name
}

// Activate includes the constraint in subsequent solves.
func (c *Constraint) Activate() {
	c.active = true
}

// Deactivate excludes the constraint from subsequent solves.
func (c *Constraint) Deactivate() {
	c.active = false
}

// IsActive reports whether the constraint participates in solves.
func (c *Constraint) IsActive() bool {
	return c.active
}

// SetScale sets the magnitude used to scale the residual. A constraint whose
// residual is naturally of order 1e6 should carry a scale of 1e6 so that all
// scaled residuals are comparable.
func (c *Constraint) SetScale(scale float64) *Constraint {
	if scale <= 0 {
		panic("constraint " + c.name + ": scale must be positive")
	}

	c.scale = scale

	return c
}

// Scale returns the residual scale of the constraint.
func (c *Constraint) Scale() float64 {
	return c.scale
}

// Residual evaluates the unscaled residual.
func (c *Constraint) Residual() float64 {
	return c.residual()
}

// ScaledResidual evaluates the residual divided by the constraint scale.
func (c *Constraint) ScaledResidual() float64 {
	return c.residual() / c.scale
}

// Variables returns the variables the residual reads.
func (c *Constraint) Variables() []*Variable {
	return c.vars
}
