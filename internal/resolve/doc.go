// Package resolve computes values that depend on a condition, making sure
// every branch of the condition produces a concrete number before it is used.
//
// Two variants are provided. The discount variant subtracts an intermediate
// value from a baseline, where the intermediate is either the policy's
// discount or a caller-supplied default. The score variant classifies a
// possibly-unassigned Score against a threshold, reading unassigned scores
// as an explicit sentinel.
package resolve
