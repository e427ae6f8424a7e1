//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets (all, unit, cli, cover).
type Test mg.Namespace

// All runs every test, including the ones that build the binary.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs the package tests and skips the ones that build the binary.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// CLI builds first, then runs the end-to-end tests against the binary.
func (Test) CLI() error {
	mg.Deps(Build)
	return sh.RunV(binGo, "test", "-v", "-count=1", cmdDir)
}

// Race runs the package tests with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-short", "-race", "./...")
}

// Cover writes coverage.out and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-short", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func=coverage.out")
}
