// Package engine computes the canned border-crossing reports from a loaded table.
//
// Every function is pure: it reads an immutable domain.Table and returns a
// fresh value. Arithmetic preconditions (a non-positive window, a zero divisor)
// come back as domain errors with the INVALID_WINDOW and DIVISION_UNDEFINED
// codes instead of panicking or substituting a value.
//
// Basic usage:
//
//	stats, err := engine.WindowStats(table, idx, domain.DefaultWindowSize)
//	if domain.HasCode(err, domain.ErrCodeInvalidWindow) {
//	    // window size rejected
//	}
package engine
