package ngx

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

func TestSupportsSuperSampling(t *testing.T) {
	tests := []struct {
		name       string
		capability map[string]any
		want       error
		wantReads  []string
	}{
		{
			name: "driver too old",
			capability: map[string]any{
				sys.ParamSuperSamplingNeedsUpdatedDriver:    int32(1),
				sys.ParamSuperSamplingMinDriverVersionMajor: uint32(470),
				sys.ParamSuperSamplingMinDriverVersionMinor: uint32(5),
				sys.ParamSuperSamplingAvailable:             int32(1),
			},
			want: sys.ErrDriverUpdateRequired,
			wantReads: []string{
				sys.ParamSuperSamplingNeedsUpdatedDriver,
				sys.ParamSuperSamplingMinDriverVersionMajor,
				sys.ParamSuperSamplingMinDriverVersionMinor,
			},
		},
		{
			name: "not available",
			capability: map[string]any{
				sys.ParamSuperSamplingNeedsUpdatedDriver: int32(0),
				sys.ParamSuperSamplingAvailable:          int32(0),
			},
			want:      sys.ErrNotSupported,
			wantReads: []string{sys.ParamSuperSamplingNeedsUpdatedDriver, sys.ParamSuperSamplingAvailable},
		},
		{
			name: "supported",
			capability: map[string]any{
				sys.ParamSuperSamplingNeedsUpdatedDriver: int32(0),
				sys.ParamSuperSamplingAvailable:          int32(1),
			},
			wantReads: []string{sys.ParamSuperSamplingNeedsUpdatedDriver, sys.ParamSuperSamplingAvailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakePlatform()
			f.capability = tt.capability
			params, err := GetCapabilityParameters(f)
			if err != nil {
				t.Fatal(err)
			}
			defer params.Release()

			err = params.SupportsSuperSampling()
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("have %v, want %v", err, tt.want)
			}
			if strings.Join(f.reads, ",") != strings.Join(tt.wantReads, ",") {
				t.Errorf("reads: have %v, want %v", f.reads, tt.wantReads)
			}
		})
	}
}

func TestDriverUpdateMessage(t *testing.T) {
	f := newFakePlatform()
	f.capability = map[string]any{
		sys.ParamSuperSamplingDenoisingNeedsUpdatedDriver:    int32(1),
		sys.ParamSuperSamplingDenoisingMinDriverVersionMajor: uint32(535),
		sys.ParamSuperSamplingDenoisingMinDriverVersionMinor: uint32(98),
	}
	params, _ := GetCapabilityParameters(f)
	defer params.Release()

	var logged bytes.Buffer
	core.SetLogOutput(&logged)
	defer core.SetLogOutput(os.Stderr)

	err := params.SupportsRayReconstruction()
	want := "the Ray Reconstruction feature requires a driver update, the driver version required should be higher or equal to 535.98"
	if err == nil || err.Error() != want {
		t.Errorf("have %v, want %q", err, want)
	}
	if !strings.Contains(logged.String(), want) {
		t.Errorf("log output: have %q, want it to contain %q", logged.String(), want)
	}
}

func TestSupportsPropagatesReadErrors(t *testing.T) {
	f := newFakePlatform()
	params, _ := GetCapabilityParameters(f)
	defer params.Release()

	err := params.SupportsSuperSampling()
	if code, ok := sys.ResultCode(err); !ok || code != sys.ResultFailUnsupportedParameter {
		t.Errorf("have %v, want %s", err, sys.ResultFailUnsupportedParameter)
	}
}

func TestIsInitialised(t *testing.T) {
	f := newFakePlatform()
	params, _ := NewFeatureParameters(f)
	defer params.Release()

	if params.IsSuperSamplingInitialised() {
		t.Error("missing key should read as not initialised")
	}
	if err := params.SetBool(sys.ParamSuperSamplingFeatureInitResult, true); err != nil {
		t.Fatal(err)
	}
	if !params.IsSuperSamplingInitialised() {
		t.Error("should be initialised")
	}
	if params.IsRayReconstructionInitialised() {
		t.Error("ray reconstruction flag was never set")
	}
}

func TestParametersUseAfterRelease(t *testing.T) {
	f := newFakePlatform()
	params, _ := NewFeatureParameters(f)
	if err := params.SetU32(sys.ParamWidth, 1920); err != nil {
		t.Fatal(err)
	}
	if err := params.Release(); err != nil {
		t.Fatal(err)
	}
	if err := params.Release(); err != nil {
		t.Errorf("second release: %s", err)
	}
	if have, want := f.paramReleases, 1; have != want {
		t.Errorf("parameter releases: have %d, want %d", have, want)
	}
	if params.Ptr() != nil {
		t.Error("released parameters should expose a nil pointer")
	}
	if _, err := params.GetU32(sys.ParamWidth); !errors.Is(err, sys.ErrReleased) {
		t.Errorf("have %v, want ErrReleased", err)
	}
	if params.IsSuperSamplingInitialised() {
		t.Error("released parameters are never initialised")
	}
}

func TestParametersReleaseFailureStillReleases(t *testing.T) {
	f := newFakePlatform()
	f.releaseParamsErr = sys.ResultFail.Err("NVSDK_NGX_VULKAN_DestroyParameters")
	params, _ := NewFeatureParameters(f)

	if err := params.Release(); err == nil {
		t.Fatal("expected the native error")
	}
	if !params.IsReleased() {
		t.Error("parameters should count as released")
	}
}

func TestTypedAccessors(t *testing.T) {
	f := newFakePlatform()
	params, _ := NewFeatureParameters(f)
	defer params.Release()

	params.SetI32("i32", -7)
	params.SetU64("u64", 1<<40)
	params.SetF32("f32", 0.5)
	params.SetF64("f64", 0.25)

	if v, err := params.GetI32("i32"); err != nil || v != -7 {
		t.Errorf("i32: have %d (%v)", v, err)
	}
	if v, err := params.GetU64("u64"); err != nil || v != 1<<40 {
		t.Errorf("u64: have %d (%v)", v, err)
	}
	if v, err := params.GetF32("f32"); err != nil || v != 0.5 {
		t.Errorf("f32: have %g (%v)", v, err)
	}
	if v, err := params.GetF64("f64"); err != nil || v != 0.25 {
		t.Errorf("f64: have %g (%v)", v, err)
	}
	params.SetI32("two", 2)
	if v, _ := params.GetBool("two"); v {
		t.Error("only 1 reads as true")
	}
}

func TestOptimalSettings(t *testing.T) {
	f := newFakePlatform()
	params, _ := GetCapabilityParameters(f)
	defer params.Release()

	f.optimal = SuperSamplingOptimalSettings{RenderWidth: 1280, RenderHeight: 720}
	settings, err := params.SuperSamplingOptimalSettings(1920, 1080, sys.PerfQualityMaxQuality)
	if err != nil {
		t.Fatal(err)
	}
	want := SuperSamplingOptimalSettings{
		RenderWidth:  1280,
		RenderHeight: 720,
		TargetWidth:  1920,
		TargetHeight: 1080,
		Quality:      sys.PerfQualityMaxQuality,
	}
	if settings != want {
		t.Errorf("have %+v, want %+v", settings, want)
	}

	f.optimal = SuperSamplingOptimalSettings{}
	if _, err := params.SuperSamplingOptimalSettings(1920, 1080, sys.PerfQualityDLAA); !errors.Is(err, sys.ErrQualityUnsupported) {
		t.Errorf("have %v, want ErrQualityUnsupported", err)
	}
}

func TestSnapshot(t *testing.T) {
	f := newFakePlatform()
	f.capability = map[string]any{
		sys.ParamSuperSamplingAvailable:   int32(1),
		sys.ParamSuperSamplingScaleFactor: float32(0.5),
		sys.ParamNumFrames:                uint32(2),
	}
	params, _ := GetCapabilityParameters(f)
	defer params.Release()

	snap := params.Snapshot()
	want := map[string]string{
		sys.ParamSuperSamplingAvailable:   "true",
		sys.ParamSuperSamplingScaleFactor: "0.5",
		sys.ParamNumFrames:                "2",
	}
	if len(snap) != len(want) {
		t.Fatalf("have %v, want %v", snap, want)
	}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("%s: have %q, want %q", k, snap[k], v)
		}
	}
	if have, want := params.String(), "FeatureParameters{capability, NumFrames=2, SuperSampling.Available=true, SuperSampling.ScaleFactor=0.5}"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
}
