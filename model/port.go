package model

// A Port is a named, ordered group of variables that a sub-unit exposes as a
// flow interface. Ports are owned by the sub-unit that declares them; arcs
// read and write them but never own them.
type Port struct {
	name    string
	members []string
	vars    map[string]*Variable
}

// NewPort creates an empty port.
func NewPort(name string) *Port {
	nameMustBeValid(name)

	p := new(Port)
	p.name = name
	p.vars = make(map[string]*Variable)

	return p
}

// Name returns the name of the port.
func (p *Port) Name() string {
	return p.name
}

// Add registers a member variable under the given name. Member order is the
// order of addition.
func (p *Port) Add(name string, v *Variable) *Port {
	if _, ok := p.vars[name]; ok {
		panic("port " + p.name + " already has a member named " + name)
	}

	p.members = append(p.members, name)
	p.vars[name] = v

	return p
}

// Members returns the member names in declaration order.
func (p *Port) Members() []string {
	return p.members
}

// Variable returns the member variable with the given name. It panics on an
// unknown member, since that is a wiring bug.
func (p *Port) Variable(name string) *Variable {
	v, ok := p.vars[name]
	if !ok {
		panic("port " + p.name + " has no member named " + name)
	}

	return v
}

// Fix fixes every member variable at its current value.
func (p *Port) Fix() {
	for _, name := range p.members {
		p.vars[name].Fix()
	}
}

// Unfix releases every member variable.
func (p *Port) Unfix() {
	for _, name := range p.members {
		p.vars[name].Unfix()
	}
}

// CopyPortValues copies the value of every member of src into the member of
// dst with the same name. Fixed flags are not copied. Unset source members
// are skipped. The copy is idempotent.
func CopyPortValues(dst, src *Port) {
	for _, name := range src.members {
		sv := src.vars[name]
		if !sv.IsSet() {
			continue
		}

		dst.Variable(name).SetValue(sv.Value())
	}
}
