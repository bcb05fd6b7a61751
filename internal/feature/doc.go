// Package feature defines the static registries of selectable features and
// package.json scripts, and resolves a user selection into its closed set.
//
// Implied features are modelled as a declarative edge list ([Edge]); [Resolve]
// applies the edges until a fixed point is reached, so running it twice on the
// same answers never appends anything the second time.
package feature
