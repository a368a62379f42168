//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds the native probe and runs `nvngx capabilities`.
func (Run) Probe() error {
	mg.Deps(Build.Native)
	fmt.Println("Run probe...")
	if _, err := executeCmd(binary, withArgs("capabilities"), withStream()); err != nil {
		return err
	}
	return nil
}
