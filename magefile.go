//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles both executables into ./bin
func Build() error {
	mg.Deps(BuildSimulator)
	mg.Deps(BuildTrajectory)
	fmt.Println("Compilation finished")
	return nil
}

// The simulator links against libhdf5 through cgo
func BuildSimulator() error {
	fmt.Println("Building simulator executable...")
	return goCommand(true, "build", "-o", "./bin/simulator", "./simulator")
}

func BuildTrajectory() error {
	fmt.Println("Building trajectory executable...")
	return goCommand(false, "build", "-o", "./bin/trajectory", "./trajectory")
}

// Test runs the unit tests of every package
func Test() error {
	fmt.Println("Running tests...")
	return goCommand(true, "test", "./...")
}

func goCommand(cgo bool, args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Env = os.Environ()
	if cgo {
		ldflags := os.Getenv("CGO_LDFLAGS")
		cflags := os.Getenv("CGO_CFLAGS")
		cmd.Env = append(cmd.Env,
			"CGO_ENABLED=1",
			fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
			fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
