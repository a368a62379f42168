//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	binary     = "bin/nvngx"
	sdkInclude = "third_party/DLSS/include"
)

type Build mg.Namespace

// Builds the probe without the NGX SDK; every native call reports ErrNotInstalled.
func (Build) Probe() error {
	if _, err := executeCmd("go", withArgs("build", "-o", binary, "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds the probe against the NGX SDK found in third_party/DLSS.
func (Build) Native() error {
	if err := checkSDK(); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-tags", "ngx", "-o", binary, "."), withEnv("CGO_ENABLED=1"), withStream()); err != nil {
		return err
	}
	return nil
}

func checkSDK() error {
	header := filepath.Join(sdkInclude, "nvsdk_ngx.h")
	if _, err := os.Stat(header); err != nil {
		return fmt.Errorf("NGX SDK headers not found at %s, clone the DLSS SDK into third_party/DLSS: %w", header, err)
	}
	return nil
}
