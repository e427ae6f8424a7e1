//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "loantrack"
	binaryDir  = "bin"
	cmdDir     = "./cmd/loantrack"

	// demoDir holds the config and data written by the Demo target.
	demoDir = "demo"
)

// Build compiles the loantrack binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts and the demo directory.
func Clean() error {
	for _, dir := range []string{binaryDir, demoDir} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Demo initializes demo/ with the seeded dataset and prints the loans table.
func Demo() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)
	args := []string{
		"--config-dir", filepath.Join(demoDir, "config"),
		"--data-dir", filepath.Join(demoDir, "data"),
	}
	if err := sh.RunV(bin, append(args, "init", "--seed")...); err != nil {
		return err
	}
	return sh.RunV(bin, append(args, "view", "loans", "--sort", "amount", "--desc")...)
}
