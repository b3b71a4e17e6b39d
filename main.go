// The main package for the stockroom executable.
package main

import (
	"github.com/tmarbury/stockroom/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
