package model

// An Arc is a directed link from an upstream port to a downstream port.
// Directionality is fixed at assembly time. During initialization an arc
// copies values forward; at model-build completion ExpandArc turns it into
// explicit equality constraints for the coupled solve.
type Arc struct {
	name string
	src  *Port
	dst  *Port
}

// NewArc creates an arc between two ports. Every member of the source port
// must have a correspondingly-named member on the destination port.
func NewArc(name string, src, dst *Port) *Arc {
	nameMustBeValid(name)

	for _, member := range src.Members() {
		// panics on a missing member
		dst.Variable(member)
	}

	a := new(Arc)
	a.name = name
	a.src = src
	a.dst = dst

	return a
}

// Name returns the name of the arc.
func (a *Arc) Name() string {
	return a.name
}

// Source returns the upstream port.
func (a *Arc) Source() *Port {
	return a.src
}

// Destination returns the downstream port.
func (a *Arc) Destination() *Port {
	return a.dst
}

// Propagate copies the current source port values into the destination port.
// It does not touch fixed flags and it is idempotent. The initialization
// scheduler decides when propagation happens; it is never triggered
// automatically.
func (a *Arc) Propagate() {
	CopyPortValues(a.dst, a.src)
}

// ExpandArc adds one equality constraint per arc member to the parent block,
// equating the destination member to the source member. The scales map
// assigns a residual scale per member name; members without an entry get
// unit scale.
func ExpandArc(parent *Block, a *Arc, scales map[string]float64) {
	for _, member := range a.src.Members() {
		sv := a.src.Variable(member)
		dv := a.dst.Variable(member)

		c := parent.NewConstraint(
			a.name+"_"+member+"_equality",
			[]*Variable{sv, dv},
			func() float64 { return dv.Value() - sv.Value() },
		)

		if scale, ok := scales[member]; ok {
			c.SetScale(scale)
		}
	}
}
