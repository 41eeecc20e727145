//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the server, migration and wizard binaries into ./bin.
func Build() error {
	mg.Deps(Tidy)
	for _, name := range []string{"server", "migrate", "wizard"} {
		fmt.Println(">> go build ./cmd/" + name)
		if err := sh.Run("go", "build", "-o", "bin/bsc-"+name, "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Run starts the API server with the local config.
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./bin/bsc-server", "-config", configFile())
}

// Tidy runs go mod tidy.
func Tidy() error {
	return sh.Run("go", "mod", "tidy")
}

// Test runs the unit tests with the race detector.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Integration runs the postgres tests. Docker must be available.
func Integration() error {
	fmt.Println(">> Running integration tests...")
	return sh.RunV("go", "test", "-tags", "integration", "-count=1", "./internal/infrastructure/persistence/...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Migrate applies pending migrations to the configured postgres database.
func Migrate() error {
	return sh.RunV("go", "run", "./cmd/migrate", "-config", configFile(), "up")
}

// Enroll runs the sample wizard scenario against a running server.
func Enroll() error {
	return sh.RunV("go", "run", "./cmd/wizard", "-config", configFile(),
		"-scenario", "cmd/wizard/scenario.example.toml", "-fresh", "enroll")
}

// Clean removes build artifacts and the local SQLite database.
func Clean() error {
	fmt.Println(">> Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	if err := os.Remove("bsc.db"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func configFile() string {
	if path := os.Getenv("BSC_CONFIG"); path != "" {
		return path
	}
	return "config.toml"
}

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Println(">> error loading .env file:", err)
	}
}
