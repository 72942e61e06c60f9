package model

import "github.com/rs/xid"

// A StoreSpec selects what Capture records.
type StoreSpec struct {
	// SaveValues records the value of each captured variable.
	SaveValues bool

	// SaveFixed records the fixed flag of each captured variable.
	SaveFixed bool

	// OnlyFixed restricts variable entries to variables that are fixed at
	// capture time.
	OnlyFixed bool

	// SaveActive records the active flag of every constraint.
	SaveActive bool
}

// FixedVarsAndActiveConstraints is the spec the initialization scheduler
// uses: value and fixed flag of every currently-fixed variable, plus the
// active flag of every constraint.
func FixedVarsAndActiveConstraints() StoreSpec {
	return StoreSpec{
		SaveValues: true,
		SaveFixed:  true,
		OnlyFixed:  true,
		SaveActive: true,
	}
}

// A VarEntry is one captured variable record.
type VarEntry struct {
	Path     string
	Value    float64
	HasValue bool
	Fixed    bool
}

// A ConstraintEntry is one captured constraint record.
type ConstraintEntry struct {
	Path   string
	Active bool
}

// A Snapshot is the captured fixed/active state of a block subtree at one
// instant. It is immutable once captured. Restoring writes every captured
// path back exactly once and leaves paths outside the snapshot untouched.
type Snapshot struct {
	id   string
	spec StoreSpec

	vars []VarEntry
	cons []ConstraintEntry

	fixedPaths map[string]bool
}

// Capture records the state of the subtree rooted at b according to spec.
// Paths are relative to b.
func Capture(b *Block, spec StoreSpec) *Snapshot {
	s := new(Snapshot)
	s.id = xid.New().String()
	s.spec = spec
	s.fixedPaths = make(map[string]bool)

	capture(b, "", spec, s)

	return s
}

func capture(b *Block, prefix string, spec StoreSpec, s *Snapshot) {
	for _, v := range b.vars {
		if spec.OnlyFixed && !v.fixed {
			continue
		}

		entry := VarEntry{Path: joinPath(prefix, v.name)}
		if spec.SaveValues && v.set {
			entry.Value = v.value
			entry.HasValue = true
		}

		if spec.SaveFixed {
			entry.Fixed = v.fixed
		}

		s.vars = append(s.vars, entry)
		if v.fixed {
			s.fixedPaths[entry.Path] = true
		}
	}

	if spec.SaveActive {
		for _, c := range b.cons {
			s.cons = append(s.cons, ConstraintEntry{
				Path:   joinPath(prefix, c.name),
				Active: c.active,
			})
		}
	}

	for _, child := range b.children {
		capture(child, joinPath(prefix, child.name), spec, s)
	}
}

// ID returns the identifier of the snapshot, used for log correlation.
func (s *Snapshot) ID() string {
	return s.id
}

// Spec returns the spec the snapshot was captured with.
func (s *Snapshot) Spec() StoreSpec {
	return s.spec
}

// VarEntries returns the captured variable records in capture order.
func (s *Snapshot) VarEntries() []VarEntry {
	return s.vars
}

// ConstraintEntries returns the captured constraint records in capture
// order.
func (s *Snapshot) ConstraintEntries() []ConstraintEntry {
	return s.cons
}

// WasFixed reports whether the variable at the given path was fixed at
// capture time.
func (s *Snapshot) WasFixed(path string) bool {
	return s.fixedPaths[path]
}

// Restore writes the captured state back into the subtree rooted at b.
// Restoring is idempotent. A captured path that no longer resolves is an
// internal-consistency failure and aborts the restore with a RestoreError.
func (s *Snapshot) Restore(b *Block) error {
	for _, entry := range s.vars {
		v := b.VariableByPath(entry.Path)
		if v == nil {
			return &RestoreError{Path: entry.Path}
		}

		if s.spec.SaveValues && entry.HasValue {
			v.SetValue(entry.Value)
		}

		if s.spec.SaveFixed {
			v.fixed = entry.Fixed
		}
	}

	for _, entry := range s.cons {
		c := b.ConstraintByPath(entry.Path)
		if c == nil {
			return &RestoreError{Path: entry.Path}
		}

		c.active = entry.Active
	}

	return nil
}
