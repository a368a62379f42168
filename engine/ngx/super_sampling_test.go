package ngx

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

func TestCreateParametersFromSettings(t *testing.T) {
	settings := SuperSamplingOptimalSettings{
		RenderWidth:  1280,
		RenderHeight: 720,
		TargetWidth:  2560,
		TargetHeight: 1440,
		Quality:      sys.PerfQualityBalanced,
	}
	p := SuperSamplingCreateParametersFromSettings(settings)
	native := p.Native()

	if have, want := native.InFeatureCreateFlags, sys.DLSSFeatureFlagsAutoExposure|sys.DLSSFeatureFlagsMVLowRes; have != want {
		t.Errorf("flags: have %s, want %s", have, want)
	}
	if have, want := native.Feature.InPerfQualityValue, sys.PerfQualityBalanced; have != want {
		t.Errorf("quality: have %s, want %s", have, want)
	}
	if have, want := p.RenderingResolution(), [2]uint32{1280, 720}; have != want {
		t.Errorf("render: have %v, want %v", have, want)
	}
	if have, want := p.TargetResolution(), [2]uint32{2560, 1440}; have != want {
		t.Errorf("target: have %v, want %v", have, want)
	}
	if native.InEnableOutputSubrects {
		t.Error("output subrects should be off by default")
	}

	p = SuperSamplingCreateParametersFromSettings(settings, WithOutputSubrects(), WithFeatureFlags(sys.DLSSFeatureFlagsIsHDR))
	if !p.Native().InEnableOutputSubrects || p.Native().InFeatureCreateFlags != sys.DLSSFeatureFlagsIsHDR {
		t.Errorf("options should override the defaults: %+v", p.Native())
	}
}

func newTestSuperSampling(t *testing.T, f *fakePlatform) (*SuperSamplingFeature[fakeDevice, *fakeCmd, *fakeResource], *fakeEvaluator) {
	t.Helper()
	params, err := NewFeatureParameters(f)
	if err != nil {
		t.Fatal(err)
	}
	eval := &fakeEvaluator{platform: f}
	create := NewSuperSamplingCreateParameters(960, 540, 1920, 1080, WithQuality(sys.PerfQualityMaxPerf))
	ss, err := NewSuperSamplingFeature[fakeDevice, *fakeCmd, *fakeResource](f, fakeDevice{}, &fakeCmd{}, params, create, eval)
	if err != nil {
		t.Fatal(err)
	}
	return ss, eval
}

func TestSuperSamplingFeature(t *testing.T) {
	f := newFakePlatform()
	ss, eval := newTestSuperSampling(t, f)

	if have, want := f.lastDLSS.Feature.InTargetWidth, uint32(1920); have != want {
		t.Errorf("create target width: have %d, want %d", have, want)
	}
	if !ss.Inner().IsSuperSampling() {
		t.Error("inner feature should be super sampling")
	}
	if ss.IsInitialised() {
		t.Error("init flag was never set")
	}
	ss.Inner().Parameters().SetBool(sys.ParamSuperSamplingFeatureInitResult, true)
	if !ss.IsInitialised() {
		t.Error("init flag was set")
	}

	cmd := &fakeCmd{}
	err := ss.Evaluate(cmd)
	if !errors.Is(err, sys.ErrMissingInput) {
		t.Fatalf("have %v, want ErrMissingInput", err)
	}
	if have, want := err.Error(), "cannot evaluate super sampling, missing color input, color output, depth buffer, motion vectors"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}

	p := ss.EvaluationParameters()
	p.SetColorInput(&fakeResource{"color"})
	p.SetColorOutput(&fakeResource{"output"})
	p.SetDepthBuffer(&fakeResource{"depth"})
	p.SetMotionVectors(&fakeResource{"mv"}, nil)
	p.SetRenderingDimensions([2]uint32{0, 0}, ss.RenderingResolution())
	if err := ss.Evaluate(cmd); err != nil {
		t.Fatal(err)
	}
	if have, want := cmd.recorded, 1; have != want {
		t.Errorf("recorded: have %d, want %d", have, want)
	}
	if have, want := eval.eval.InRenderSubrectDimensions, (sys.Dimensions{Width: 960, Height: 540}); have != want {
		t.Errorf("subrect: have %+v, want %+v", have, want)
	}

	ss.Release()
	ss.Release()
	if have, want := eval.released, 1; have != want {
		t.Errorf("evaluator releases: have %d, want %d", have, want)
	}
	if have, want := f.handleReleases, 1; have != want {
		t.Errorf("handle releases: have %d, want %d", have, want)
	}
	if err := ss.Evaluate(cmd); !errors.Is(err, sys.ErrReleased) {
		t.Errorf("have %v, want ErrReleased", err)
	}
}

func TestWrapSuperSamplingRejectsOtherFeatures(t *testing.T) {
	f := newFakePlatform()
	feat := newTestFeature(t, f, sys.FeatureFrameGeneration)
	defer feat.Release()

	ss, err := WrapSuperSampling[fakeDevice, *fakeCmd, *fakeResource](feat, &fakeEvaluator{platform: f}, [2]uint32{}, [2]uint32{})
	if ss != nil || !errors.Is(err, sys.ErrFeatureMismatch) {
		t.Fatalf("have %v, want ErrFeatureMismatch", err)
	}
	if feat.State() != FeatureStateCreated {
		t.Error("a rejected feature must stay usable")
	}
}

func TestSuperSamplingCreateFailure(t *testing.T) {
	f := newFakePlatform()
	f.createErr = sys.ResultFailOutOfGPUMemory.Err("NGX_VULKAN_CREATE_DLSS_EXT1")
	params, _ := NewFeatureParameters(f)

	_, err := NewSuperSamplingFeature[fakeDevice, *fakeCmd, *fakeResource](f, fakeDevice{}, &fakeCmd{}, params,
		NewSuperSamplingCreateParameters(1, 1, 2, 2), &fakeEvaluator{platform: f})
	if !errors.Is(err, &sys.ResultError{Code: sys.ResultFailOutOfGPUMemory}) {
		t.Errorf("have %v, want %s", err, sys.ResultFailOutOfGPUMemory)
	}
	if !params.IsReleased() {
		t.Error("parameters should be released")
	}
}

func TestSuperSamplingCreateMissingArguments(t *testing.T) {
	f := newFakePlatform()
	params, _ := NewFeatureParameters(f)

	ss, err := NewSuperSamplingFeature[fakeDevice, *fakeCmd, *fakeResource](f, fakeDevice{}, &fakeCmd{}, params, nil, &fakeEvaluator{platform: f})
	if ss != nil || !errors.Is(err, sys.ErrMissingParameters) {
		t.Errorf("nil create: have %v, %v, want ErrMissingParameters", ss, err)
	}
	if !params.IsReleased() {
		t.Error("nil create: parameters should be released")
	}

	ss, err = NewSuperSamplingFeature[fakeDevice, *fakeCmd, *fakeResource](f, fakeDevice{}, &fakeCmd{}, nil,
		NewSuperSamplingCreateParameters(1, 1, 2, 2), &fakeEvaluator{platform: f})
	if ss != nil || !errors.Is(err, sys.ErrMissingParameters) {
		t.Errorf("nil params: have %v, %v, want ErrMissingParameters", ss, err)
	}
	if f.creates != 0 {
		t.Errorf("creates: have %d, want 0", f.creates)
	}
}

func TestEvaluationInputsString(t *testing.T) {
	if have, want := EvaluationInputs(0).String(), "none"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	if have, want := (InputNormals | InputColor).String(), "color input, normals"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
}
