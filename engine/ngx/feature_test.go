package ngx

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

func newTestFeature(t *testing.T, f *fakePlatform, feature sys.Feature) *Feature[fakeDevice, *fakeCmd] {
	t.Helper()
	params, err := NewFeatureParameters(f)
	if err != nil {
		t.Fatal(err)
	}
	feat, err := NewFeature[fakeDevice, *fakeCmd](f, fakeDevice{}, &fakeCmd{}, feature, params)
	if err != nil {
		t.Fatal(err)
	}
	return feat
}

func TestFeatureHandleReleasedOnce(t *testing.T) {
	f := newFakePlatform()
	feat := newTestFeature(t, f, sys.FeatureFrameGeneration)

	if have, want := feat.State(), FeatureStateCreated; have != want {
		t.Fatalf("state: have %s, want %s", have, want)
	}
	feat.Release()
	feat.Release()

	if have, want := f.handleReleases, 1; have != want {
		t.Errorf("handle releases: have %d, want %d", have, want)
	}
	if have, want := f.paramReleases, 1; have != want {
		t.Errorf("parameter releases: have %d, want %d", have, want)
	}
	if !feat.Handle().IsNull() {
		t.Error("handle should be null after release")
	}
	if have, want := feat.State(), FeatureStateReleased; have != want {
		t.Errorf("state: have %s, want %s", have, want)
	}
}

func TestNullHandleReleaseIsNoop(t *testing.T) {
	f := newFakePlatform()
	h := newFeatureHandle(f, nil)
	if err := h.Release(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if f.handleReleases != 0 {
		t.Errorf("null handle reached the platform %d times", f.handleReleases)
	}
}

func TestHandleKeptWhenReleaseFails(t *testing.T) {
	f := newFakePlatform()
	f.releaseHandleErr = sys.ResultFailFeatureNotFound.Err("NVSDK_NGX_VULKAN_ReleaseFeature")
	feat := newTestFeature(t, f, sys.FeatureFrameGeneration)

	feat.Release()
	if feat.Handle().IsNull() {
		t.Error("a failed native release must not clear the handle")
	}
	if !feat.Parameters().IsReleased() {
		t.Error("parameters should be released even when the handle release fails")
	}

	f.releaseHandleErr = nil
	if err := feat.Handle().Release(); err != nil {
		t.Fatalf("retry: unexpected error: %s", err)
	}
	if have, want := f.handleReleases, 2; have != want {
		t.Errorf("handle releases: have %d, want %d", have, want)
	}
	if !feat.Handle().IsNull() {
		t.Error("handle should be null after a successful retry")
	}
	if err := feat.Handle().Release(); err != nil || f.handleReleases != 2 {
		t.Errorf("release past zero: err=%v, handle releases=%d", err, f.handleReleases)
	}
}

func TestSharedFeatureReleasedByLastOwner(t *testing.T) {
	f := newFakePlatform()
	feat := newTestFeature(t, f, sys.FeatureFrameGeneration)
	shared := feat.Share()

	feat.Release()
	if f.handleReleases != 0 || f.paramReleases != 0 {
		t.Fatalf("released while still shared: handles=%d params=%d", f.handleReleases, f.paramReleases)
	}
	if err := shared.Evaluate(&fakeCmd{}); err != nil {
		t.Fatalf("shared owner should still evaluate: %s", err)
	}
	if err := feat.Evaluate(&fakeCmd{}); !errors.Is(err, sys.ErrReleased) {
		t.Errorf("released owner: have %v, want ErrReleased", err)
	}

	shared.Release()
	if have, want := f.handleReleases, 1; have != want {
		t.Errorf("handle releases: have %d, want %d", have, want)
	}
	if have, want := f.paramReleases, 1; have != want {
		t.Errorf("parameter releases: have %d, want %d", have, want)
	}
}

func TestFailedCreateReleasesParameters(t *testing.T) {
	f := newFakePlatform()
	f.createErr = sys.ResultFailFeatureNotSupported.Err("NVSDK_NGX_VULKAN_CreateFeature")
	params, err := NewFeatureParameters(f)
	if err != nil {
		t.Fatal(err)
	}

	feat, err := NewFeature[fakeDevice, *fakeCmd](f, fakeDevice{}, &fakeCmd{}, sys.FeatureFrameGeneration, params)
	if feat != nil {
		t.Error("feature should be nil on failure")
	}
	if code, ok := sys.ResultCode(err); !ok || code != sys.ResultFailFeatureNotSupported {
		t.Errorf("code: have %s (%t), want %s", code, ok, sys.ResultFailFeatureNotSupported)
	}
	if !params.IsReleased() {
		t.Error("parameters should be released when creation fails")
	}
	if have, want := f.paramReleases, 1; have != want {
		t.Errorf("parameter releases: have %d, want %d", have, want)
	}
}

func TestCreateWithReleasedParameters(t *testing.T) {
	f := newFakePlatform()
	params, _ := NewFeatureParameters(f)
	params.Release()

	_, err := NewFeature[fakeDevice, *fakeCmd](f, fakeDevice{}, &fakeCmd{}, sys.FeatureSuperSampling, params)
	if !errors.Is(err, sys.ErrReleased) {
		t.Errorf("have %v, want ErrReleased", err)
	}
	if f.creates != 0 {
		t.Errorf("platform was asked to create %d features", f.creates)
	}
}

func TestFeatureScratchBufferAndEvaluate(t *testing.T) {
	f := newFakePlatform()
	feat := newTestFeature(t, f, sys.FeatureFrameGeneration)
	defer feat.Release()

	size, err := feat.ScratchBufferSize()
	if err != nil {
		t.Fatal(err)
	}
	if have, want := size, uint64(4096); have != want {
		t.Errorf("scratch size: have %d, want %d", have, want)
	}

	cmd := &fakeCmd{}
	if err := feat.Evaluate(cmd); err != nil {
		t.Fatal(err)
	}
	if have, want := cmd.recorded, 1; have != want {
		t.Errorf("recorded: have %d, want %d", have, want)
	}
	if !feat.IsFrameGeneration() || feat.IsSuperSampling() || feat.IsRayReconstruction() {
		t.Errorf("wrong type predicates for %s", feat)
	}
}

func TestReportProgressNeverCancels(t *testing.T) {
	cancel := false
	ReportProgress(0.5, &cancel)
	if cancel {
		t.Error("progress callback requested cancellation")
	}
}
