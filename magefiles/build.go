//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

var commands = []string{"rrm2obj", "obj2rrm", "uvdump", "inspectrrm"}

// Builds every command binary into bin/.
func (Build) All() error {
	for _, cmd := range commands {
		if err := sh.Run("go", "build", "-o", "bin/"+cmd, "./cmd/"+cmd); err != nil {
			return err
		}
	}
	return nil
}

// Runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Removes built binaries.
func Clean() error {
	return sh.Rm("bin")
}
