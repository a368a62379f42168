package ngx

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

func TestRayReconstructionDefaults(t *testing.T) {
	p := NewRayReconstructionCreateParameters(960, 540, 1920, 1080)
	native := p.Native()
	if native.InDenoiseMode != sys.DLSSDenoiseModeDLUnified ||
		native.InRoughnessMode != sys.DLSSRoughnessModeUnpacked ||
		native.InUseHWDepth != sys.DLSSDepthTypeLinear {
		t.Errorf("unexpected defaults: %+v", native)
	}
	if p.RequiredInputs()&InputRoughness == 0 {
		t.Error("unpacked roughness needs a roughness input")
	}

	packed := NewRayReconstructionCreateParameters(960, 540, 1920, 1080, WithRoughnessMode(sys.DLSSRoughnessModePacked), WithDepthType(sys.DLSSDepthTypeHW))
	if packed.RequiredInputs()&InputRoughness != 0 {
		t.Error("packed roughness travels in the normals")
	}
	if packed.Native().InUseHWDepth != sys.DLSSDepthTypeHW {
		t.Error("depth type option ignored")
	}
}

func TestRayReconstructionFeature(t *testing.T) {
	f := newFakePlatform()
	params, _ := NewFeatureParameters(f)
	eval := &fakeEvaluator{platform: f}
	settings := SuperSamplingOptimalSettings{RenderWidth: 960, RenderHeight: 540, TargetWidth: 1920, TargetHeight: 1080, Quality: sys.PerfQualityMaxQuality}

	rr, err := NewRayReconstructionFeature[fakeDevice, *fakeCmd, *fakeResource](f, fakeDevice{}, &fakeCmd{}, params,
		RayReconstructionCreateParametersFromSettings(settings), eval)
	if err != nil {
		t.Fatal(err)
	}
	defer rr.Release()

	if have, want := f.lastDLSSD.InPerfQualityValue, sys.PerfQualityMaxQuality; have != want {
		t.Errorf("quality: have %s, want %s", have, want)
	}
	if have, want := rr.TargetResolution(), [2]uint32{1920, 1080}; have != want {
		t.Errorf("target: have %v, want %v", have, want)
	}

	p := rr.EvaluationParameters()
	p.SetColorInput(&fakeResource{"color"})
	p.SetColorOutput(&fakeResource{"output"})
	p.SetDepthBuffer(&fakeResource{"depth"})
	p.SetMotionVectors(&fakeResource{"mv"}, &[2]float32{-960, -540})
	p.SetDiffuseAlbedo(&fakeResource{"diffuse"})
	p.SetSpecularAlbedo(&fakeResource{"specular"})
	p.SetNormals(&fakeResource{"normals"})

	err = rr.Evaluate(&fakeCmd{})
	if !errors.Is(err, sys.ErrMissingInput) {
		t.Fatalf("have %v, want ErrMissingInput", err)
	}

	p.SetRoughness(&fakeResource{"roughness"})
	if err := rr.Evaluate(&fakeCmd{}); err != nil {
		t.Fatal(err)
	}
	if eval.eval.InMVScaleX != -960 || eval.eval.InMVScaleY != -540 {
		t.Errorf("mv scale: have %g,%g", eval.eval.InMVScaleX, eval.eval.InMVScaleY)
	}
}

func TestWrapRayReconstructionRejectsSuperSampling(t *testing.T) {
	f := newFakePlatform()
	feat := newTestFeature(t, f, sys.FeatureSuperSampling)
	defer feat.Release()

	_, err := WrapRayReconstruction[fakeDevice, *fakeCmd, *fakeResource](feat, &fakeEvaluator{platform: f}, NewRayReconstructionCreateParameters(1, 1, 1, 1))
	if !errors.Is(err, sys.ErrFeatureMismatch) {
		t.Errorf("have %v, want ErrFeatureMismatch", err)
	}
}
