//go:build mage

// Package main provides build targets for the huntbook project using Mage.
//
// Usage:
//
//	mage build          Compile huntbook binary to bin/
//	mage test           Run all tests
//	mage testUnit       Run tests without the CLI package
//	mage bench          Run list-view benchmarks
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install huntbook to GOPATH/bin
//	mage stats          Print Go line counts per package
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "huntbook"
	binaryDir  = "bin"
	cmdDir     = "./cmd/huntbook"
	versionVar = "github.com/mesh-intelligence/huntbook/internal/cli.Version"
	binLint    = "golangci-lint"
)

// ldflags stamps the binary with the current git description, if any.
func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		return ""
	}
	return fmt.Sprintf("-X %s=%s", versionVar, version)
}

// Build compiles the huntbook binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if flags := ldflags(); flags != "" {
		args = append(args, "-ldflags", flags)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestUnit runs the library tests, skipping the CLI package whose tests
// open a database per command.
func TestUnit() error {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for _, pkg := range strings.Split(pkgs, "\n") {
		if pkg != "" && !strings.HasSuffix(pkg, "/internal/cli") && !strings.HasSuffix(pkg, "/cmd/huntbook") {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	return sh.RunV(binGo, append([]string{"test"}, unitPkgs...)...)
}

// Bench runs the list-view benchmarks.
func Bench() error {
	return sh.RunV(binGo, "test", "-run", "^$", "-bench", ".", "-benchmem", "./internal/lists/")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
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
