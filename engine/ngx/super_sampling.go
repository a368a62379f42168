package ngx

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

// SuperSamplingOptimalSettings is the render size NGX recommends for a
// target size and quality preset.
type SuperSamplingOptimalSettings struct {
	RenderWidth  uint32
	RenderHeight uint32
	TargetWidth  uint32
	TargetHeight uint32
	Quality      sys.PerfQuality

	DynamicMinRenderWidth  uint32
	DynamicMaxRenderWidth  uint32
	DynamicMinRenderHeight uint32
	DynamicMaxRenderHeight uint32
}

type SuperSamplingOption func(*sys.DLSSCreateParams)

func WithQuality(quality sys.PerfQuality) SuperSamplingOption {
	return func(p *sys.DLSSCreateParams) {
		p.Feature.InPerfQualityValue = quality
	}
}

func WithFeatureFlags(flags sys.DLSSFeatureFlags) SuperSamplingOption {
	return func(p *sys.DLSSCreateParams) {
		p.InFeatureCreateFlags = flags
	}
}

func WithOutputSubrects() SuperSamplingOption {
	return func(p *sys.DLSSCreateParams) {
		p.InEnableOutputSubrects = true
	}
}

// SuperSamplingCreateParameters wraps the DLSS create struct.
type SuperSamplingCreateParameters struct {
	params sys.DLSSCreateParams
}

// NewSuperSamplingCreateParameters defaults to the MaxPerf preset and no flags.
func NewSuperSamplingCreateParameters(renderWidth, renderHeight, targetWidth, targetHeight uint32, opts ...SuperSamplingOption) *SuperSamplingCreateParameters {
	p := &SuperSamplingCreateParameters{}
	p.params.Feature = sys.FeatureCreateParams{
		InWidth:        renderWidth,
		InHeight:       renderHeight,
		InTargetWidth:  targetWidth,
		InTargetHeight: targetHeight,
	}
	for _, o := range opts {
		o(&p.params)
	}
	return p
}

// SuperSamplingCreateParametersFromSettings uses the recommended render
// size with auto exposure and low resolution motion vectors.
func SuperSamplingCreateParametersFromSettings(settings SuperSamplingOptimalSettings, opts ...SuperSamplingOption) *SuperSamplingCreateParameters {
	base := []SuperSamplingOption{
		WithQuality(settings.Quality),
		WithFeatureFlags(sys.DLSSFeatureFlagsAutoExposure | sys.DLSSFeatureFlagsMVLowRes),
	}
	return NewSuperSamplingCreateParameters(
		settings.RenderWidth,
		settings.RenderHeight,
		settings.TargetWidth,
		settings.TargetHeight,
		append(base, opts...)...,
	)
}

func (p *SuperSamplingCreateParameters) Native() *sys.DLSSCreateParams {
	return &p.params
}

func (p *SuperSamplingCreateParameters) RenderingResolution() [2]uint32 {
	return [2]uint32{p.params.Feature.InWidth, p.params.Feature.InHeight}
}

func (p *SuperSamplingCreateParameters) TargetResolution() [2]uint32 {
	return [2]uint32{p.params.Feature.InTargetWidth, p.params.Feature.InTargetHeight}
}

// EvaluationInputs is a set of evaluation resources.
type EvaluationInputs uint16

const (
	InputColor EvaluationInputs = 1 << iota
	InputOutput
	InputDepth
	InputMotionVectors
	InputDiffuseAlbedo
	InputSpecularAlbedo
	InputNormals
	InputRoughness
)

// SuperSamplingRequiredInputs must all be set before a DLSS evaluation.
const SuperSamplingRequiredInputs = InputColor | InputOutput | InputDepth | InputMotionVectors

var inputNames = []struct {
	input EvaluationInputs
	name  string
}{
	{InputColor, "color input"},
	{InputOutput, "color output"},
	{InputDepth, "depth buffer"},
	{InputMotionVectors, "motion vectors"},
	{InputDiffuseAlbedo, "diffuse albedo"},
	{InputSpecularAlbedo, "specular albedo"},
	{InputNormals, "normals"},
	{InputRoughness, "roughness"},
}

func (e EvaluationInputs) String() string {
	names := []string{}
	for _, n := range inputNames {
		if e&n.input != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// SuperSamplingEvaluator assembles the per-frame DLSS evaluation struct of
// one backend. C is the command recording type and R the resource type.
type SuperSamplingEvaluator[C, R any] interface {
	SetColorInput(resource R)
	SetColorOutput(resource R)
	SetDepthBuffer(resource R)
	// SetMotionVectors uses a [1, 1] scale when scale is nil.
	SetMotionVectors(resource R, scale *[2]float32)
	SetJitterOffsets(x, y float32)
	SetReset(reset bool)
	// SetRenderingDimensions sets the input sub-rectangle shared by color,
	// depth, translucency and motion vectors.
	SetRenderingDimensions(offset, size [2]uint32)

	// SetInputs reports which resources have been set.
	SetInputs() EvaluationInputs
	Evaluate(cmd C, handle sys.Handle, params sys.Parameter) error
	// Release drops whatever the evaluator retains.
	Release()
}

// SuperSamplingFeature is a DLSS feature with its evaluation assembler and
// the resolutions it was created for.
type SuperSamplingFeature[D, C, R any] struct {
	feature             *Feature[D, C]
	evaluator           SuperSamplingEvaluator[C, R]
	renderingResolution [2]uint32
	targetResolution    [2]uint32
}

// NewSuperSamplingFeature creates the DLSS feature. params is owned by
// the feature from here on, and released if creation fails.
func NewSuperSamplingFeature[D, C, R any](
	platform Platform[D, C],
	device D,
	cmd C,
	params *FeatureParameters,
	create *SuperSamplingCreateParameters,
	evaluator SuperSamplingEvaluator[C, R],
) (*SuperSamplingFeature[D, C, R], error) {
	if err := checkCreate("CreateSuperSamplingFeature", params, create != nil); err != nil {
		return nil, err
	}
	ptr, err := platform.CreateSuperSamplingFeature(device, cmd, params.Ptr(), create.Native())
	if err != nil {
		err = fmt.Errorf("failed to create the super sampling feature: %w", err)
		core.LogError(err.Error())
		params.Release()
		return nil, err
	}
	feature := newFeature(platform, ptr, sys.FeatureSuperSampling, params)
	return WrapSuperSampling(feature, evaluator, create.RenderingResolution(), create.TargetResolution())
}

// WrapSuperSampling builds the DLSS wrapper over an existing feature,
// taking over the caller's share of it. It fails, without touching the
// feature, if the feature is of another type.
func WrapSuperSampling[D, C, R any](feature *Feature[D, C], evaluator SuperSamplingEvaluator[C, R], renderingResolution, targetResolution [2]uint32) (*SuperSamplingFeature[D, C, R], error) {
	if !feature.IsSuperSampling() {
		err := sys.NewOtherError(sys.ErrFeatureMismatch,
			"attempt to create a super sampling feature with another feature (%s)", feature.FeatureType())
		core.LogError(err.Error())
		return nil, err
	}
	return &SuperSamplingFeature[D, C, R]{
		feature:             feature,
		evaluator:           evaluator,
		renderingResolution: renderingResolution,
		targetResolution:    targetResolution,
	}, nil
}

func (s *SuperSamplingFeature[D, C, R]) Inner() *Feature[D, C] {
	return s.feature
}

// RenderingResolution is the input size that gets upscaled.
func (s *SuperSamplingFeature[D, C, R]) RenderingResolution() [2]uint32 {
	return s.renderingResolution
}

func (s *SuperSamplingFeature[D, C, R]) TargetResolution() [2]uint32 {
	return s.targetResolution
}

func (s *SuperSamplingFeature[D, C, R]) IsInitialised() bool {
	return s.feature.Parameters().IsSuperSamplingInitialised()
}

func (s *SuperSamplingFeature[D, C, R]) EvaluationParameters() SuperSamplingEvaluator[C, R] {
	return s.evaluator
}

// Evaluate records the upscale into cmd. The command buffer is neither
// submitted nor waited on.
func (s *SuperSamplingFeature[D, C, R]) Evaluate(cmd C) error {
	if err := s.feature.checkUsable(); err != nil {
		return err
	}
	if missing := SuperSamplingRequiredInputs &^ s.evaluator.SetInputs(); missing != 0 {
		return sys.NewOtherError(sys.ErrMissingInput, "cannot evaluate super sampling, missing %s", missing)
	}
	return s.evaluator.Evaluate(cmd, s.feature.Handle().Ptr(), s.feature.Parameters().Ptr())
}

func (s *SuperSamplingFeature[D, C, R]) Release() {
	if s.feature.State() == FeatureStateReleased {
		return
	}
	s.evaluator.Release()
	s.feature.Release()
}
