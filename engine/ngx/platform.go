package ngx

import (
	"unsafe"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

// HandleOps releases feature handles on one backend.
type HandleOps interface {
	ReleaseHandle(handle sys.Handle) error
}

// ParameterAccess reads and writes typed values in a native parameter map.
// Getters fail with the native result when the key is absent.
type ParameterAccess interface {
	SetI32(params sys.Parameter, name string, value int32) error
	GetI32(params sys.Parameter, name string) (int32, error)
	SetU32(params sys.Parameter, name string, value uint32) error
	GetU32(params sys.Parameter, name string) (uint32, error)
	SetU64(params sys.Parameter, name string, value uint64) error
	GetU64(params sys.Parameter, name string) (uint64, error)
	SetF32(params sys.Parameter, name string, value float32) error
	GetF32(params sys.Parameter, name string) (float32, error)
	SetF64(params sys.Parameter, name string, value float64) error
	GetF64(params sys.Parameter, name string) (float64, error)
	SetPointer(params sys.Parameter, name string, value unsafe.Pointer) error
	GetPointer(params sys.Parameter, name string) (unsafe.Pointer, error)
}

// ParameterOps allocates and destroys parameter maps on one backend.
type ParameterOps interface {
	ParameterAccess

	// CreateParameters allocates an empty map.
	CreateParameters() (sys.Parameter, error)
	// GetCapabilityParameters allocates a map pre-populated with the
	// capabilities of the running driver and GPU.
	GetCapabilityParameters() (sys.Parameter, error)
	ReleaseParameters(params sys.Parameter) error

	// GetDLSSOptimalSettings is NGX_DLSS_GET_OPTIMAL_SETTINGS. It does not
	// validate the returned sizes.
	GetDLSSOptimalSettings(params sys.Parameter, targetWidth, targetHeight uint32, quality sys.PerfQuality) (SuperSamplingOptimalSettings, error)
}

// FeatureOps creates and drives features. D is the backend device type and
// C the command recording type.
type FeatureOps[D, C any] interface {
	// Create* return a nil handle whenever they return an error.
	CreateFeature(device D, cmd C, feature sys.Feature, params sys.Parameter) (sys.Handle, error)
	CreateSuperSamplingFeature(device D, cmd C, params sys.Parameter, create *sys.DLSSCreateParams) (sys.Handle, error)
	CreateRayReconstructionFeature(device D, cmd C, params sys.Parameter, create *sys.DLSSDCreateParams) (sys.Handle, error)

	GetScratchBufferSize(feature sys.Feature, params sys.Parameter) (uint64, error)

	// EvaluateFeature records the generic evaluation into cmd. The native
	// call reports progress through ReportProgress.
	EvaluateFeature(cmd C, handle sys.Handle, params sys.Parameter) error
}

// Platform is everything a backend has to provide.
type Platform[D, C any] interface {
	HandleOps
	ParameterOps
	FeatureOps[D, C]
}

// ReportProgress is the evaluation progress callback handed to NGX. It
// only logs and never requests cancellation.
func ReportProgress(progress float32, shouldCancel *bool) {
	core.LogDebug("feature evaluation progress=%.3f", progress)
}

// NativeParameters is the parameter access shared by the native backends.
// Backends embed it and add allocation and release.
type NativeParameters struct {
	sys.ParameterStore
}

func (n NativeParameters) GetDLSSOptimalSettings(params sys.Parameter, targetWidth, targetHeight uint32, quality sys.PerfQuality) (SuperSamplingOptimalSettings, error) {
	sizes, err := n.DLSSOptimalSizes(params, targetWidth, targetHeight, quality)
	if err != nil {
		return SuperSamplingOptimalSettings{}, err
	}
	return SuperSamplingOptimalSettings{
		RenderWidth:            sizes.Width,
		RenderHeight:           sizes.Height,
		TargetWidth:            targetWidth,
		TargetHeight:           targetHeight,
		Quality:                quality,
		DynamicMinRenderWidth:  sizes.MinWidth,
		DynamicMaxRenderWidth:  sizes.MaxWidth,
		DynamicMinRenderHeight: sizes.MinHeight,
		DynamicMaxRenderHeight: sizes.MaxHeight,
	}, nil
}
