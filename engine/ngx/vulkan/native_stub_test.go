//go:build !ngx || !cgo || !(linux || windows)

package vulkan

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx"
)

func TestStubBuild(t *testing.T) {
	if _, err := GetRequiredExtensions(); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("extensions: have %v, want ErrNotInstalled", err)
	}
	if _, err := NewSystem(SystemConfig{EngineVersion: "0.1.0", ApplicationDataPath: "/tmp"}); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("system: have %v, want ErrNotInstalled", err)
	}
	if _, err := ngx.GetCapabilityParameters(Platform{}); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("capabilities: have %v, want ErrNotInstalled", err)
	}

	s := &System{}
	create := ngx.NewSuperSamplingCreateParameters(960, 540, 1920, 1080)
	if _, err := s.CreateSuperSamplingFeature(nil, nil, create); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("super sampling without params: have %v, want ErrNotInstalled", err)
	}
	rr := ngx.NewRayReconstructionCreateParameters(960, 540, 1920, 1080)
	if _, err := s.CreateRayReconstructionFeature(nil, nil, rr); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("ray reconstruction without params: have %v, want ErrNotInstalled", err)
	}
}
