package model

import "strings"

// A Block is a named node of an equation-model tree. It owns variables and
// constraints exclusively and may contain child blocks. Paths into the tree
// are dotted names, such as "condense.hot_inlet.enth_mol", relative to the
// block they are resolved on.
type Block struct {
	name   string
	parent *Block

	children   []*Block
	childIndex map[string]*Block

	vars     []*Variable
	varIndex map[string]*Variable

	cons     []*Constraint
	conIndex map[string]*Constraint
}

// NewBlock creates an empty block.
func NewBlock(name string) *Block {
	nameMustBeValid(name)

	b := new(Block)
	b.name = name
	b.childIndex = make(map[string]*Block)
	b.varIndex = make(map[string]*Variable)
	b.conIndex = make(map[string]*Constraint)

	return b
}

// Name returns the name of the block.
func (b *Block) Name() string {
	return b.name
}

// Parent returns the enclosing block, or nil for a root block.
func (b *Block) Parent() *Block {
	return b.parent
}

// AddChild attaches a block as a child. A block can only be attached once.
func (b *Block) AddChild(child *Block) *Block {
	if child.parent != nil {
		panic("block " + child.name + " already has a parent")
	}

	if _, ok := b.childIndex[child.name]; ok {
		panic("block " + b.name + " already has a child named " + child.name)
	}

	child.parent = b
	b.children = append(b.children, child)
	b.childIndex[child.name] = child

	return child
}

// NewChild creates a block and attaches it as a child.
func (b *Block) NewChild(name string) *Block {
	return b.AddChild(NewBlock(name))
}

// Child returns the child block with the given name, or nil.
func (b *Block) Child(name string) *Block {
	return b.childIndex[name]
}

// Children returns the child blocks in declaration order.
func (b *Block) Children() []*Block {
	return b.children
}

// AddVariable attaches a variable to the block.
func (b *Block) AddVariable(v *Variable) *Variable {
	if v.owner != nil {
		panic("variable " + v.name + " already has an owner")
	}

	if _, ok := b.varIndex[v.name]; ok {
		panic("block " + b.name + " already has a variable named " + v.name)
	}

	v.owner = b
	b.vars = append(b.vars, v)
	b.varIndex[v.name] = v

	return v
}

// NewVariable creates a variable and attaches it to the block.
func (b *Block) NewVariable(name string) *Variable {
	return b.AddVariable(NewVariable(name))
}

// Variable returns the variable with the given name, or nil.
func (b *Block) Variable(name string) *Variable {
	return b.varIndex[name]
}

// Variables returns the variables of this block in declaration order.
func (b *Block) Variables() []*Variable {
	return b.vars
}

// AddConstraint attaches a constraint to the block.
func (b *Block) AddConstraint(c *Constraint) *Constraint {
	if c.owner != nil {
		panic("constraint " + c.name + " already has an owner")
	}

	if _, ok := b.conIndex[c.name]; ok {
		panic("block " + b.name + " already has a constraint named " + c.name)
	}

	c.owner = b
	b.cons = append(b.cons, c)
	b.conIndex[c.name] = c

	return c
}

// NewConstraint creates a constraint and attaches it to the block.
func (b *Block) NewConstraint(
	name string,
	vars []*Variable,
	residual func() float64,
) *Constraint {
	return b.AddConstraint(NewConstraint(name, vars, residual))
}

// Constraint returns the constraint with the given name, or nil.
func (b *Block) Constraint(name string) *Constraint {
	return b.conIndex[name]
}

// Constraints returns the constraints of this block in declaration order.
func (b *Block) Constraints() []*Constraint {
	return b.cons
}

// Walk visits the block and every descendant block depth first, in
// declaration order. The order is deterministic, which keeps variable and
// constraint enumeration stable across runs.
func (b *Block) Walk(visit func(blk *Block)) {
	visit(b)
	for _, child := range b.children {
		child.Walk(visit)
	}
}

// FreeVariables returns every unfixed variable of the subtree in
// deterministic order.
func (b *Block) FreeVariables() []*Variable {
	var free []*Variable

	b.Walk(func(blk *Block) {
		for _, v := range blk.vars {
			if !v.fixed {
				free = append(free, v)
			}
		}
	})

	return free
}

// ActiveConstraints returns every active constraint of the subtree in
// deterministic order.
func (b *Block) ActiveConstraints() []*Constraint {
	var active []*Constraint

	b.Walk(func(blk *Block) {
		for _, c := range blk.cons {
			if c.active {
				active = append(active, c)
			}
		}
	})

	return active
}

// DegreesOfFreedom returns the free-variable count minus the
// active-constraint count of the subtree. A well-posed square solve requires
// zero degrees of freedom.
func (b *Block) DegreesOfFreedom() int {
	return len(b.FreeVariables()) - len(b.ActiveConstraints())
}

// VariableByPath resolves a dotted path to a variable, or nil.
func (b *Block) VariableByPath(path string) *Variable {
	blk, leaf := b.resolve(path)
	if blk == nil {
		return nil
	}

	return blk.varIndex[leaf]
}

// ConstraintByPath resolves a dotted path to a constraint, or nil.
func (b *Block) ConstraintByPath(path string) *Constraint {
	blk, leaf := b.resolve(path)
	if blk == nil {
		return nil
	}

	return blk.conIndex[leaf]
}

// PathOfVariable returns the dotted path of a variable relative to this
// block. The second return value is false if the variable does not live in
// the subtree.
func (b *Block) PathOfVariable(v *Variable) (string, bool) {
	if v.owner == nil {
		return "", false
	}

	prefix, ok := b.pathOfBlock(v.owner)
	if !ok {
		return "", false
	}

	return joinPath(prefix, v.name), true
}

// PathOfConstraint returns the dotted path of a constraint relative to this
// block.
func (b *Block) PathOfConstraint(c *Constraint) (string, bool) {
	if c.owner == nil {
		return "", false
	}

	prefix, ok := b.pathOfBlock(c.owner)
	if !ok {
		return "", false
	}

	return joinPath(prefix, c.name), true
}

func (b *Block) pathOfBlock(blk *Block) (string, bool) {
	var names []string

	for at := blk; at != nil; at = at.parent {
		if at == b {
			reverse(names)
			return strings.Join(names, "."), true
		}

		names = append(names, at.name)
	}

	return "", false
}

func (b *Block) resolve(path string) (blk *Block, leaf string) {
	parts := strings.Split(path, ".")
	blk = b

	for _, part := range parts[:len(parts)-1] {
		blk = blk.childIndex[part]
		if blk == nil {
			return nil, ""
		}
	}

	return blk, parts[len(parts)-1]
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// nameMustBeValid panics if a name is empty or contains a path separator.
// Names form dotted paths, so individual names must not contain dots.
func nameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	if strings.Contains(name, ".") {
		panic("name " + name + " must not contain dots")
	}
}
