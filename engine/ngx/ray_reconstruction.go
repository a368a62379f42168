package ngx

import (
	"fmt"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

type RayReconstructionOption func(*sys.DLSSDCreateParams)

func WithRayReconstructionQuality(quality sys.PerfQuality) RayReconstructionOption {
	return func(p *sys.DLSSDCreateParams) {
		p.InPerfQualityValue = quality
	}
}

func WithRayReconstructionFlags(flags sys.DLSSFeatureFlags) RayReconstructionOption {
	return func(p *sys.DLSSDCreateParams) {
		p.InFeatureCreateFlags = flags
	}
}

func WithDenoiseMode(mode sys.DLSSDenoiseMode) RayReconstructionOption {
	return func(p *sys.DLSSDCreateParams) {
		p.InDenoiseMode = mode
	}
}

func WithRoughnessMode(mode sys.DLSSRoughnessMode) RayReconstructionOption {
	return func(p *sys.DLSSDCreateParams) {
		p.InRoughnessMode = mode
	}
}

func WithDepthType(depth sys.DLSSDepthType) RayReconstructionOption {
	return func(p *sys.DLSSDCreateParams) {
		p.InUseHWDepth = depth
	}
}

func WithRayReconstructionOutputSubrects() RayReconstructionOption {
	return func(p *sys.DLSSDCreateParams) {
		p.InEnableOutputSubrects = true
	}
}

// RayReconstructionCreateParameters wraps the DLSS-D create struct.
type RayReconstructionCreateParameters struct {
	params sys.DLSSDCreateParams
}

// NewRayReconstructionCreateParameters defaults to the unified denoiser
// with unpacked roughness and linear depth.
func NewRayReconstructionCreateParameters(renderWidth, renderHeight, targetWidth, targetHeight uint32, opts ...RayReconstructionOption) *RayReconstructionCreateParameters {
	p := &RayReconstructionCreateParameters{
		params: sys.DLSSDCreateParams{
			InDenoiseMode:   sys.DLSSDenoiseModeDLUnified,
			InRoughnessMode: sys.DLSSRoughnessModeUnpacked,
			InUseHWDepth:    sys.DLSSDepthTypeLinear,
			InWidth:         renderWidth,
			InHeight:        renderHeight,
			InTargetWidth:   targetWidth,
			InTargetHeight:  targetHeight,
		},
	}
	for _, o := range opts {
		o(&p.params)
	}
	return p
}

func RayReconstructionCreateParametersFromSettings(settings SuperSamplingOptimalSettings, opts ...RayReconstructionOption) *RayReconstructionCreateParameters {
	base := []RayReconstructionOption{
		WithRayReconstructionQuality(settings.Quality),
		WithRayReconstructionFlags(sys.DLSSFeatureFlagsAutoExposure | sys.DLSSFeatureFlagsMVLowRes),
	}
	return NewRayReconstructionCreateParameters(
		settings.RenderWidth,
		settings.RenderHeight,
		settings.TargetWidth,
		settings.TargetHeight,
		append(base, opts...)...,
	)
}

func (p *RayReconstructionCreateParameters) Native() *sys.DLSSDCreateParams {
	return &p.params
}

func (p *RayReconstructionCreateParameters) RenderingResolution() [2]uint32 {
	return [2]uint32{p.params.InWidth, p.params.InHeight}
}

func (p *RayReconstructionCreateParameters) TargetResolution() [2]uint32 {
	return [2]uint32{p.params.InTargetWidth, p.params.InTargetHeight}
}

// RequiredInputs depends on the roughness mode: packed roughness travels
// in the normals' alpha channel.
func (p *RayReconstructionCreateParameters) RequiredInputs() EvaluationInputs {
	required := SuperSamplingRequiredInputs | InputDiffuseAlbedo | InputSpecularAlbedo | InputNormals
	if p.params.InRoughnessMode == sys.DLSSRoughnessModeUnpacked {
		required |= InputRoughness
	}
	return required
}

// RayReconstructionEvaluator assembles the DLSS-D evaluation struct.
type RayReconstructionEvaluator[C, R any] interface {
	SuperSamplingEvaluator[C, R]

	SetDiffuseAlbedo(resource R)
	SetSpecularAlbedo(resource R)
	SetNormals(resource R)
	SetRoughness(resource R)
	SetSpecularMotionVectors(resource R)
	SetTransparencyOverlay(resource R)
}

type RayReconstructionFeature[D, C, R any] struct {
	feature             *Feature[D, C]
	evaluator           RayReconstructionEvaluator[C, R]
	required            EvaluationInputs
	renderingResolution [2]uint32
	targetResolution    [2]uint32
}

// NewRayReconstructionFeature creates the DLSS-D feature. params is owned
// by the feature from here on, and released if creation fails.
func NewRayReconstructionFeature[D, C, R any](
	platform Platform[D, C],
	device D,
	cmd C,
	params *FeatureParameters,
	create *RayReconstructionCreateParameters,
	evaluator RayReconstructionEvaluator[C, R],
) (*RayReconstructionFeature[D, C, R], error) {
	if err := checkCreate("CreateRayReconstructionFeature", params, create != nil); err != nil {
		return nil, err
	}
	ptr, err := platform.CreateRayReconstructionFeature(device, cmd, params.Ptr(), create.Native())
	if err != nil {
		err = fmt.Errorf("failed to create the ray reconstruction feature: %w", err)
		core.LogError(err.Error())
		params.Release()
		return nil, err
	}
	feature := newFeature(platform, ptr, sys.FeatureRayReconstruction, params)
	return WrapRayReconstruction(feature, evaluator, create)
}

// WrapRayReconstruction takes over the caller's share of feature. It fails,
// without touching the feature, if the feature is of another type.
func WrapRayReconstruction[D, C, R any](feature *Feature[D, C], evaluator RayReconstructionEvaluator[C, R], create *RayReconstructionCreateParameters) (*RayReconstructionFeature[D, C, R], error) {
	if !feature.IsRayReconstruction() {
		err := sys.NewOtherError(sys.ErrFeatureMismatch,
			"attempt to create a ray reconstruction feature with another feature (%s)", feature.FeatureType())
		core.LogError(err.Error())
		return nil, err
	}
	return &RayReconstructionFeature[D, C, R]{
		feature:             feature,
		evaluator:           evaluator,
		required:            create.RequiredInputs(),
		renderingResolution: create.RenderingResolution(),
		targetResolution:    create.TargetResolution(),
	}, nil
}

func (r *RayReconstructionFeature[D, C, R]) Inner() *Feature[D, C] {
	return r.feature
}

func (r *RayReconstructionFeature[D, C, R]) RenderingResolution() [2]uint32 {
	return r.renderingResolution
}

func (r *RayReconstructionFeature[D, C, R]) TargetResolution() [2]uint32 {
	return r.targetResolution
}

func (r *RayReconstructionFeature[D, C, R]) IsInitialised() bool {
	return r.feature.Parameters().IsRayReconstructionInitialised()
}

func (r *RayReconstructionFeature[D, C, R]) EvaluationParameters() RayReconstructionEvaluator[C, R] {
	return r.evaluator
}

func (r *RayReconstructionFeature[D, C, R]) Evaluate(cmd C) error {
	if err := r.feature.checkUsable(); err != nil {
		return err
	}
	if missing := r.required &^ r.evaluator.SetInputs(); missing != 0 {
		return sys.NewOtherError(sys.ErrMissingInput, "cannot evaluate ray reconstruction, missing %s", missing)
	}
	return r.evaluator.Evaluate(cmd, r.feature.Handle().Ptr(), r.feature.Parameters().Ptr())
}

func (r *RayReconstructionFeature[D, C, R]) Release() {
	if r.feature.State() == FeatureStateReleased {
		return
	}
	r.evaluator.Release()
	r.feature.Release()
}
