// Package testutil builds the debuggee binary for black-box tests.
// Binaries are compiled without optimizations or inlining, the way a
// debugger test suite builds its fixtures.
package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

var tmpDir string

// Root returns the module root directory.
func Root() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		fmt.Fprintln(os.Stderr, "cannot find source file")
		os.Exit(1)
	}
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// Build compiles the package at pkg, relative to the module root, into the
// temporary directory created by Run and returns the binary path.
func Build(name, pkg string) string {
	binary := filepath.Join(tmpDir, name)
	if runtime.GOOS == "windows" {
		binary += ".exe"
	}

	flags := []string{"build", "-gcflags=all=-N -l", "-o", binary, "./" + filepath.ToSlash(pkg)}

	cmd := exec.Command("go", flags...)
	cmd.Dir = Root()
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to build test binary: ", err)
		fmt.Fprintln(os.Stderr, string(out))
		os.Exit(1)
	}
	return binary
}

// Run creates the temporary build directory, calls setup, runs the tests
// and removes the directory again.
func Run(m *testing.M, setup func()) int {
	var err error
	tmpDir, err = os.MkdirTemp("", "debuggee-")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmpDir)

	if setup != nil {
		setup()
	}
	return m.Run()
}
