//go:build mage

// Package main provides build targets for tweetbox using Mage.
//
// Usage:
//
//	mage build       Compile the tweetbox binary to bin/
//	mage test:unit   Run all package tests
//	mage test:race   Run all package tests with the race detector
//	mage test:cover  Run tests and write coverage.out
//	mage lint        Run go vet and golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install tweetbox to GOPATH/bin
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
	binGo        = "go"
	binaryName   = "tweetbox"
	binaryDir    = "bin"
	cmdDir       = "./cmd/tweetbox"
	coverProfile = "coverage.out"
)

// Test groups the test targets.
type Test mg.Namespace

// Build compiles the tweetbox binary to bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X main.version=" + gitVersion()
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Unit runs every package test.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs the tests and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}

// Lint runs go vet and golangci-lint.
func Lint() error {
	if err := sh.RunV(binGo, "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	for _, p := range []string{binaryDir, coverProfile} {
		if err := os.RemoveAll(p); err != nil {
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
	fmt.Println("installing", dst)
	return sh.Copy(dst, src)
}

// gitVersion describes HEAD, or returns "dev" outside a git checkout.
func gitVersion() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(out) == "" {
		return "dev"
	}
	return strings.TrimSpace(out)
}
