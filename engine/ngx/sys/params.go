package sys

import "unsafe"

// Handle is an opaque NVSDK_NGX_Handle pointer owned by the SDK.
type Handle unsafe.Pointer

// Parameter is an opaque NVSDK_NGX_Parameter pointer owned by the SDK.
type Parameter unsafe.Pointer

// Parameter map keys, as defined by nvsdk_ngx_defs.h.
const (
	ParamSuperSamplingAvailable             = "SuperSampling.Available"
	ParamSuperSamplingNeedsUpdatedDriver    = "SuperSampling.NeedsUpdatedDriver"
	ParamSuperSamplingMinDriverVersionMajor = "SuperSampling.MinDriverVersionMajor"
	ParamSuperSamplingMinDriverVersionMinor = "SuperSampling.MinDriverVersionMinor"
	ParamSuperSamplingFeatureInitResult     = "SuperSampling.FeatureInitResult"
	ParamSuperSamplingScaleFactor           = "SuperSampling.ScaleFactor"

	ParamSuperSamplingDenoisingAvailable             = "SuperSamplingDenoising.Available"
	ParamSuperSamplingDenoisingNeedsUpdatedDriver    = "SuperSamplingDenoising.NeedsUpdatedDriver"
	ParamSuperSamplingDenoisingMinDriverVersionMajor = "SuperSamplingDenoising.MinDriverVersionMajor"
	ParamSuperSamplingDenoisingMinDriverVersionMinor = "SuperSamplingDenoising.MinDriverVersionMinor"
	ParamSuperSamplingDenoisingFeatureInitResult     = "SuperSamplingDenoising.FeatureInitResult"

	ParamInPaintingAvailable            = "InPainting.Available"
	ParamImageSuperResolutionAvailable  = "ImageSuperResolution.Available"
	ParamSlowMotionAvailable            = "SlowMo.Available"
	ParamVideoSuperResolutionAvailable  = "VideoSuperResolution.Available"
	ParamImageSignalProcessingAvailable = "ImageSignalProcessing.Available"
	ParamDeepResolveAvailable           = "DeepResolve.Available"
	ParamFrameGenerationAvailable       = "FrameInterpolation.Available"

	ParamInPaintingNeedsUpdatedDriver            = "InPainting.NeedsUpdatedDriver"
	ParamImageSuperResolutionNeedsUpdatedDriver  = "ImageSuperResolution.NeedsUpdatedDriver"
	ParamSlowMotionNeedsUpdatedDriver            = "SlowMo.NeedsUpdatedDriver"
	ParamVideoSuperResolutionNeedsUpdatedDriver  = "VideoSuperResolution.NeedsUpdatedDriver"
	ParamImageSignalProcessingNeedsUpdatedDriver = "ImageSignalProcessing.NeedsUpdatedDriver"
	ParamDeepResolveNeedsUpdatedDriver           = "DeepResolve.NeedsUpdatedDriver"
	ParamFrameGenerationNeedsUpdatedDriver       = "FrameInterpolation.NeedsUpdatedDriver"

	ParamNumFrames          = "NumFrames"
	ParamScale              = "Scale"
	ParamOptLevel           = "Snippet.OptLevel"
	ParamIsDevSnippetBranch = "Snippet.IsDevBranch"
	ParamCreationNodeMask   = "CreationNodeMask"
	ParamVisibilityNodeMask = "VisibilityNodeMask"
	ParamWidth              = "Width"
	ParamHeight             = "Height"
	ParamOutWidth           = "OutWidth"
	ParamOutHeight          = "OutHeight"
	ParamPerfQualityValue   = "PerfQualityValue"

	ParamDLSSFeatureCreateFlags   = "DLSS.Feature.Create.Flags"
	ParamDLSSEnableOutputSubrects = "DLSS.Enable.Output.Subrects"
)

// FeatureCreateParams mirrors NVSDK_NGX_Feature_Create_Params.
type FeatureCreateParams struct {
	InWidth            uint32
	InHeight           uint32
	InTargetWidth      uint32
	InTargetHeight     uint32
	InPerfQualityValue PerfQuality
}

// DLSSCreateParams mirrors NVSDK_NGX_DLSS_Create_Params.
type DLSSCreateParams struct {
	Feature                FeatureCreateParams
	InFeatureCreateFlags   DLSSFeatureFlags
	InEnableOutputSubrects bool
}

// DLSSDCreateParams mirrors NVSDK_NGX_DLSSD_Create_Params.
type DLSSDCreateParams struct {
	InDenoiseMode          DLSSDenoiseMode
	InRoughnessMode        DLSSRoughnessMode
	InUseHWDepth           DLSSDepthType
	InWidth                uint32
	InHeight               uint32
	InTargetWidth          uint32
	InTargetHeight         uint32
	InPerfQualityValue     PerfQuality
	InFeatureCreateFlags   DLSSFeatureFlags
	InEnableOutputSubrects bool
}

// Coordinates mirrors NVSDK_NGX_Coordinates.
type Coordinates struct {
	X uint32
	Y uint32
}

// Dimensions mirrors NVSDK_NGX_Dimensions.
type Dimensions struct {
	Width  uint32
	Height uint32
}
