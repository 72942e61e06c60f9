package model

// A Guard brackets a sequence of fixed/active mutations with a snapshot of
// the block they apply to. It also tracks the variables it fixed itself, so
// a caller can release those early, before the guard is finally restored.
//
// The intended shape is
//
//	guard := model.NewGuard(block)
//	defer guard.MustRestore()
//
// so restoration is guaranteed on every exit path, including panics.
type Guard struct {
	block *Block
	snap  *Snapshot
	fixed []*Variable
}

// NewGuard captures the fixed/active state of the subtree rooted at b.
func NewGuard(b *Block) *Guard {
	g := new(Guard)
	g.block = b
	g.snap = Capture(b, FixedVarsAndActiveConstraints())

	return g
}

// Snapshot returns the snapshot the guard captured.
func (g *Guard) Snapshot() *Snapshot {
	return g.snap
}

// Fix fixes a variable at its current value if it is not fixed already, and
// remembers it for ReleaseFixes.
func (g *Guard) Fix(v *Variable) {
	if v.IsFixed() {
		return
	}

	v.Fix()
	g.fixed = append(g.fixed, v)
}

// FixPort fixes every member of a port that is not fixed already.
func (g *Guard) FixPort(p *Port) {
	for _, member := range p.Members() {
		g.Fix(p.Variable(member))
	}
}

// ReleaseFixes unfixes every variable this guard fixed that was not fixed
// when the guard was created. Variables the snapshot recorded as fixed are
// left alone.
func (g *Guard) ReleaseFixes() {
	for _, v := range g.fixed {
		path, ok := g.block.PathOfVariable(v)
		if ok && g.snap.WasFixed(path) {
			continue
		}

		v.Unfix()
	}

	g.fixed = nil
}

// Restore releases the guard's own fixes and writes the captured state back.
func (g *Guard) Restore() error {
	g.ReleaseFixes()
	return g.snap.Restore(g.block)
}

// MustRestore restores and panics on failure. A restore failure means the
// model topology changed under the snapshot, which is a fatal
// internal-consistency error.
func (g *Guard) MustRestore() {
	if err := g.Restore(); err != nil {
		panic(err)
	}
}
