package model

import "fmt"

// An AssemblyInvariantError reports a nonzero degrees-of-freedom count where
// a square system is required. It signals a structural bug in how optional
// sections and arcs were wired, not a numerical failure, and is never
// retried.
type AssemblyInvariantError struct {
	Block             string
	FreeVariables     int
	ActiveConstraints int
}

func (e *AssemblyInvariantError) Error() string {
	return fmt.Sprintf(
		"block %s is not square: %d free variables, %d active constraints",
		e.Block, e.FreeVariables, e.ActiveConstraints)
}

// MustBeSquare returns an AssemblyInvariantError if the subtree rooted at b
// does not have zero degrees of freedom.
func MustBeSquare(b *Block) error {
	free := len(b.FreeVariables())
	active := len(b.ActiveConstraints())

	if free != active {
		return &AssemblyInvariantError{
			Block:             b.name,
			FreeVariables:     free,
			ActiveConstraints: active,
		}
	}

	return nil
}

// A RestoreError reports a snapshot path that no longer resolves in the
// model it is being restored into. Snapshots target the topology they were
// captured from, so this is a fatal internal-consistency error.
type RestoreError struct {
	Path string
}

func (e *RestoreError) Error() string {
	return "snapshot restore: path " + e.Path + " not present in model"
}
