// Package matchers contains the built-in inline construct matchers.
//
// Matchers are registered with scanner.DefaultRegistry during init, in
// priority order:
//
//	GM001 emphasis      *x*, **x**, ***x***
//	GM002 heading       # Title
//	GM003 bullet-list   - item, * item
//	GM004 ordered-list  1. item
//	GM005 inline-math   $x^2$
package matchers
