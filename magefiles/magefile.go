// Package main contains Mage build targets for palette-dots developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "palette-dots"
	cmdPkg  = "./cmd/palette-dots"
)

// Default target when mage is run without arguments.
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet over every package.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs Lint and Test.
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Init creates the .secrets/ directory and an empty key file for the image
// search API.
func Init() error {
	if err := os.MkdirAll(".secrets", 0o700); err != nil {
		return fmt.Errorf("creating .secrets: %w", err)
	}
	keyPath := filepath.Join(".secrets", "bing-api-key")
	if _, err := os.Stat(keyPath); err == nil {
		fmt.Println("  ", keyPath, "(exists)")
		return nil
	}
	if err := os.WriteFile(keyPath, nil, 0o600); err != nil {
		return fmt.Errorf("creating %s: %w", keyPath, err)
	}
	fmt.Println("  ", keyPath)
	fmt.Println("Paste your image search subscription key into", keyPath)
	return nil
}

// Clean removes build output and rendered canvases.
func Clean() error {
	for _, p := range []string{binDir, "palette.png", "palette.svg"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}
