//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

// Default target to run when none is specified
var Default = Build

// Build builds the saathi binary
func Build() error {
	fmt.Println("Building saathi...")
	return sh.RunV("go", "build", "-o", filepath.Join(binDir, "saathi"), "./cmd/saathi")
}

// Lambda builds the bootstrap binary for the provided.al2023 arm64 runtime
func Lambda() error {
	fmt.Println("Building lambda bootstrap...")
	env := map[string]string{
		"GOOS":        "linux",
		"GOARCH":      "arm64",
		"CGO_ENABLED": "0",
	}
	return sh.RunWithV(env, "go", "build", "-tags", "lambda.norpc", "-o", filepath.Join(binDir, "lambda", "bootstrap"), "./cmd/lambda")
}

// Install installs saathi into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/saathi")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint after vet
func Lint() error {
	mg.Deps(Vet)
	return sh.RunV("golangci-lint", "run", "./...")
}

// All runs vet, tests and both builds
func All() {
	mg.SerialDeps(Vet, Test, Build, Lambda)
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	return os.RemoveAll(binDir)
}
