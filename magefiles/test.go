//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests; they use fake platforms and need no GPU.
func (Test) Unit() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the unit tests with the native layer compiled in.
func (Test) Native() error {
	if err := checkSDK(); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("test", "-tags", "ngx", "./..."), withEnv("CGO_ENABLED=1"), withStream()); err != nil {
		return err
	}
	return nil
}
