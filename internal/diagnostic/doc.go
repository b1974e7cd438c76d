// Package diagnostic provides the one-line warnings shown in place of a
// widget when a decoration cannot be bound.
//
// Key capabilities:
//   - Stable codes for every failure of the resolution taxonomy
//   - "did you mean" suggestions for missing names
//   - Collection of warnings and errors across a whole object graph
package diagnostic
