// Package testcase maps testcase identifiers to the canned behaviors a
// debugger test suite observes: stdio output, a panic, a spawned child, a
// sleep, an endless counter, or the value-shape exercises.
package testcase

// Identifiers of the named testcases. Any other identifier runs the
// value-shape exercises.
const (
	Stdio   = "stdio"
	Panic   = "panic"
	Spawn   = "spawn"
	Sleep   = "sleep"
	InfLoop = "inf_loop"
	Values  = "values"
)

// PanicMessage is the value the panic testcase panics with.
const PanicMessage = "Oops!!!"

// NoTestcaseMessage is printed when no identifier is given.
const NoTestcaseMessage = "No testcase was specified."

// Testcase describes one named behavior.
type Testcase struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Terminates  bool   `json:"terminates" yaml:"terminates"`
}

var catalog = []Testcase{
	{Stdio, "write one line to stdout and one line to stderr", true},
	{Panic, "panic with " + PanicMessage, false},
	{Spawn, "re-execute this binary with 'sleep', print the child pid and wait for it", true},
	{Sleep, "block for the configured sleep duration", true},
	{InfLoop, "print an incrementing counter on one line forever", false},
	{Values, "build primitive, enum, struct, slice, pointer, string, map and misc values; any unknown identifier does the same", true},
}

// Catalog returns the named testcases in a fixed order.
func Catalog() []Testcase {
	out := make([]Testcase, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the testcase registered under name. Unknown names resolve
// to the values testcase with ok set to false.
func Lookup(name string) (Testcase, bool) {
	for _, tc := range catalog {
		if tc.Name == name {
			return tc, true
		}
	}
	for _, tc := range catalog {
		if tc.Name == Values {
			return tc, false
		}
	}
	return Testcase{}, false
}
