//go:build !windows || !cgo || !ngx

package directx

import (
	"errors"
	"testing"

	"github.com/go-ole/go-ole"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx"
)

func TestStubBuild(t *testing.T) {
	if _, err := NewSystem(SystemConfig{EngineVersion: "0.1.0"}); err == nil {
		t.Errorf("system without device: have nil error")
	}
	if _, err := NewSystem(SystemConfig{EngineVersion: "0.1.0", Device: new(ole.IUnknown)}); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("system: have %v, want ErrNotInstalled", err)
	}
	if _, err := ngx.GetCapabilityParameters(Platform{}); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("capabilities: have %v, want ErrNotInstalled", err)
	}

	s := &System{}
	if err := s.SupportsRayReconstruction(); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("ray reconstruction support: have %v, want ErrNotInstalled", err)
	}
	create := ngx.NewSuperSamplingCreateParameters(960, 540, 1920, 1080)
	if _, err := s.CreateSuperSamplingFeature(nil, nil, create); !errors.Is(err, core.ErrNotInstalled) {
		t.Errorf("super sampling without params: have %v, want ErrNotInstalled", err)
	}
}
