// Package effectchain composes effects.Effect values into an ordered
// processing chain and builds chains from named effect specifications.
//
// A [Chain] passes every sample through its effects in insertion order.
// Removing an effect shifts later effects down by one index; callers that
// address effects by index must re-resolve indices after a removal.
//
// A [Registry] maps effect type names to factories so that hosts can
// assemble chains from configuration with [Build].
package effectchain
