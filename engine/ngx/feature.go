package ngx

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

type FeatureState int

const (
	FeatureStateUninitialized FeatureState = iota
	FeatureStateCreated
	FeatureStateReleased
)

func (s FeatureState) String() string {
	switch s {
	case FeatureStateCreated:
		return "created"
	case FeatureStateReleased:
		return "released"
	default:
		return "uninitialized"
	}
}

// Feature is one created NGX feature. Handle and parameter map are
// shared by every Share of it and released after the last one goes.
type Feature[D, C any] struct {
	platform    Platform[D, C]
	handle      *FeatureHandle
	featureType sys.Feature
	parameters  *FeatureParameters
	released    atomic.Bool
}

// NewFeature creates a feature of any type. The parameter map is owned by
// the feature from here on, and released if creation fails.
func NewFeature[D, C any](platform Platform[D, C], device D, cmd C, featureType sys.Feature, params *FeatureParameters) (*Feature[D, C], error) {
	if err := checkCreate("CreateFeature", params, true); err != nil {
		return nil, err
	}
	ptr, err := platform.CreateFeature(device, cmd, featureType, params.Ptr())
	if err != nil {
		err = fmt.Errorf("failed to create the %s feature: %w", featureType, err)
		core.LogError(err.Error())
		params.Release()
		return nil, err
	}
	return newFeature(platform, ptr, featureType, params), nil
}

// checkCreate fails when params is missing or released, or when the
// create parameters are missing. A live params is released on failure.
func checkCreate(op string, params *FeatureParameters, hasCreate bool) error {
	if params == nil {
		err := sys.NewOtherError(sys.ErrMissingParameters, "%s called without a parameter map", op)
		core.LogError(err.Error())
		return err
	}
	if err := params.check(op); err != nil {
		return err
	}
	if !hasCreate {
		params.Release()
		err := sys.NewOtherError(sys.ErrMissingParameters, "%s called without create parameters", op)
		core.LogError(err.Error())
		return err
	}
	return nil
}

func NewFrameGenerationFeature[D, C any](platform Platform[D, C], device D, cmd C, params *FeatureParameters) (*Feature[D, C], error) {
	return NewFeature(platform, device, cmd, sys.FeatureFrameGeneration, params)
}

func newFeature[D, C any](platform Platform[D, C], ptr sys.Handle, featureType sys.Feature, params *FeatureParameters) *Feature[D, C] {
	return &Feature[D, C]{
		platform:    platform,
		handle:      newFeatureHandle(platform, ptr),
		featureType: featureType,
		parameters:  params,
	}
}

// Share returns another owner of the same handle and parameter map.
func (f *Feature[D, C]) Share() *Feature[D, C] {
	return &Feature[D, C]{
		platform:    f.platform,
		handle:      f.handle.retain(),
		featureType: f.featureType,
		parameters:  f.parameters.retain(),
	}
}

// Release gives up this owner's share. The last owner releases the native
// handle, then the parameter map. Native failures are logged.
func (f *Feature[D, C]) Release() {
	if f.handle == nil || f.released.Swap(true) {
		return
	}
	if err := f.handle.Release(); err != nil {
		core.LogError("couldn't release the %s feature handle: %s", f.featureType, err)
	}
	if err := f.parameters.Release(); err != nil {
		core.LogError("couldn't release the %s feature parameters: %s", f.featureType, err)
	}
}

func (f *Feature[D, C]) State() FeatureState {
	switch {
	case f.handle == nil:
		return FeatureStateUninitialized
	case f.released.Load():
		return FeatureStateReleased
	default:
		return FeatureStateCreated
	}
}

func (f *Feature[D, C]) Handle() *FeatureHandle {
	return f.handle
}

func (f *Feature[D, C]) FeatureType() sys.Feature {
	return f.featureType
}

func (f *Feature[D, C]) Parameters() *FeatureParameters {
	return f.parameters
}

func (f *Feature[D, C]) IsSuperSampling() bool {
	return f.featureType == sys.FeatureSuperSampling
}

func (f *Feature[D, C]) IsFrameGeneration() bool {
	return f.featureType == sys.FeatureFrameGeneration
}

func (f *Feature[D, C]) IsRayReconstruction() bool {
	return f.featureType == sys.FeatureRayReconstruction
}

func (f *Feature[D, C]) checkUsable() error {
	if f.State() != FeatureStateCreated {
		return sys.NewOtherError(sys.ErrReleased, "the %s feature is %s", f.featureType, f.State())
	}
	return nil
}

// ScratchBufferSize returns how many bytes of scratch memory the feature
// needs. Zero is a valid answer.
func (f *Feature[D, C]) ScratchBufferSize() (uint64, error) {
	if err := f.checkUsable(); err != nil {
		return 0, err
	}
	return f.platform.GetScratchBufferSize(f.featureType, f.parameters.Ptr())
}

// Evaluate records the generic evaluation into cmd.
func (f *Feature[D, C]) Evaluate(cmd C) error {
	if err := f.checkUsable(); err != nil {
		return err
	}
	return f.platform.EvaluateFeature(cmd, f.handle.Ptr(), f.parameters.Ptr())
}

func (f *Feature[D, C]) String() string {
	return fmt.Sprintf("Feature{%s, %s}", f.featureType, f.State())
}
