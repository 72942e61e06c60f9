// Package model provides the equation-model core that steady-state unit
// operations are built from: variables with fixed flags and bounds,
// constraints in residual form, hierarchical blocks, flow ports, directed
// arcs, and snapshot capture/restore of fixed/active state.
package model
