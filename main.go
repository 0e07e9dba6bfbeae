// Package main provides the entry point for the debuggee fixture.
// It delegates to the cmd package, which selects and runs one testcase.
package main

import (
	"debuggee/cmd"
)

func main() {
	cmd.Execute()
}
