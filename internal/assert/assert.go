//go:build griddebug

// Package assert holds contract checks that only exist in builds tagged
// griddebug. Default builds compile every check away.
package assert

import "fmt"

// Enabled reports whether contract checks are compiled in.
const Enabled = true

// True panics with a formatted message when cond is false.
func True(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("contract violation: "+format, args...))
	}
}
