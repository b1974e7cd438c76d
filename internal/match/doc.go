// Package match ranks known member names against a requested one for
// "did you mean" suggestions, and splits identifiers into display words.
//
// Names are compared after folding case and separators away, once as they
// are and once without an accessor prefix such as "Get" or "m_".
package match
