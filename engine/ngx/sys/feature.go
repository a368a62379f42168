package sys

import (
	"fmt"
	"strings"
)

// Feature mirrors NVSDK_NGX_Feature.
type Feature int32

const (
	FeatureReservedSDK           Feature = 0
	FeatureSuperSampling         Feature = 1
	FeatureInPainting            Feature = 2
	FeatureImageSuperResolution  Feature = 3
	FeatureSlowMotion            Feature = 4
	FeatureVideoSuperResolution  Feature = 5
	FeatureImageSignalProcessing Feature = 9
	FeatureDeepResolve           Feature = 10
	FeatureFrameGeneration       Feature = 11
	FeatureDeepDVC               Feature = 12
	FeatureRayReconstruction     Feature = 13
)

func (f Feature) String() string {
	switch f {
	case FeatureReservedSDK:
		return "ReservedSDK"
	case FeatureSuperSampling:
		return "SuperSampling"
	case FeatureInPainting:
		return "InPainting"
	case FeatureImageSuperResolution:
		return "ImageSuperResolution"
	case FeatureSlowMotion:
		return "SlowMotion"
	case FeatureVideoSuperResolution:
		return "VideoSuperResolution"
	case FeatureImageSignalProcessing:
		return "ImageSignalProcessing"
	case FeatureDeepResolve:
		return "DeepResolve"
	case FeatureFrameGeneration:
		return "FrameGeneration"
	case FeatureDeepDVC:
		return "DeepDVC"
	case FeatureRayReconstruction:
		return "RayReconstruction"
	default:
		return fmt.Sprintf("Feature(%d)", int32(f))
	}
}

// PerfQuality mirrors NVSDK_NGX_PerfQuality_Value.
type PerfQuality int32

const (
	PerfQualityMaxPerf          PerfQuality = 0
	PerfQualityBalanced         PerfQuality = 1
	PerfQualityMaxQuality       PerfQuality = 2
	PerfQualityUltraPerformance PerfQuality = 3
	PerfQualityUltraQuality     PerfQuality = 4
	PerfQualityDLAA             PerfQuality = 5
)

var perfQualityNames = map[PerfQuality]string{
	PerfQualityMaxPerf:          "performance",
	PerfQualityBalanced:         "balanced",
	PerfQualityMaxQuality:       "quality",
	PerfQualityUltraPerformance: "ultra_performance",
	PerfQualityUltraQuality:     "ultra_quality",
	PerfQualityDLAA:             "dlaa",
}

func (q PerfQuality) String() string {
	if name, ok := perfQualityNames[q]; ok {
		return name
	}
	return fmt.Sprintf("PerfQuality(%d)", int32(q))
}

// ParsePerfQuality accepts the lower-case preset names used in config files.
func ParsePerfQuality(name string) (PerfQuality, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for q, s := range perfQualityNames {
		if s == n {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown quality preset %q", name)
}

// DLSSFeatureFlags mirrors NVSDK_NGX_DLSS_Feature_Flags.
type DLSSFeatureFlags int32

const (
	DLSSFeatureFlagsNone           DLSSFeatureFlags = 0
	DLSSFeatureFlagsIsHDR          DLSSFeatureFlags = 1 << 0
	DLSSFeatureFlagsMVLowRes       DLSSFeatureFlags = 1 << 1
	DLSSFeatureFlagsMVJittered     DLSSFeatureFlags = 1 << 2
	DLSSFeatureFlagsDepthInverted  DLSSFeatureFlags = 1 << 3
	DLSSFeatureFlagsDoSharpening   DLSSFeatureFlags = 1 << 5
	DLSSFeatureFlagsAutoExposure   DLSSFeatureFlags = 1 << 6
	DLSSFeatureFlagsAlphaUpscaling DLSSFeatureFlags = 1 << 7
	DLSSFeatureFlagsIsInvalid      DLSSFeatureFlags = -1 << 31
)

var dlssFlagNames = []struct {
	flag DLSSFeatureFlags
	name string
}{
	{DLSSFeatureFlagsIsHDR, "hdr"},
	{DLSSFeatureFlagsMVLowRes, "mv_low_res"},
	{DLSSFeatureFlagsMVJittered, "mv_jittered"},
	{DLSSFeatureFlagsDepthInverted, "depth_inverted"},
	{DLSSFeatureFlagsDoSharpening, "sharpening"},
	{DLSSFeatureFlagsAutoExposure, "auto_exposure"},
	{DLSSFeatureFlagsAlphaUpscaling, "alpha_upscaling"},
}

func (f DLSSFeatureFlags) Has(flag DLSSFeatureFlags) bool {
	return f&flag == flag
}

func (f DLSSFeatureFlags) String() string {
	if f == DLSSFeatureFlagsNone {
		return "none"
	}
	names := []string{}
	for _, n := range dlssFlagNames {
		if f.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	if f.Has(DLSSFeatureFlagsIsInvalid) {
		names = append(names, "invalid")
	}
	return strings.Join(names, "|")
}

// ParseDLSSFeatureFlags ORs together the named flags.
func ParseDLSSFeatureFlags(names []string) (DLSSFeatureFlags, error) {
	flags := DLSSFeatureFlagsNone
	for _, name := range names {
		n := strings.ToLower(strings.TrimSpace(name))
		found := false
		for _, f := range dlssFlagNames {
			if f.name == n {
				flags |= f.flag
				found = true
				break
			}
		}
		if !found {
			return DLSSFeatureFlagsNone, fmt.Errorf("unknown DLSS feature flag %q", name)
		}
	}
	return flags, nil
}

type DLSSDenoiseMode int32

const (
	DLSSDenoiseModeOff       DLSSDenoiseMode = 0
	DLSSDenoiseModeDLUnified DLSSDenoiseMode = 1
)

type DLSSRoughnessMode int32

const (
	DLSSRoughnessModeUnpacked DLSSRoughnessMode = 0
	DLSSRoughnessModePacked   DLSSRoughnessMode = 1
)

type DLSSDepthType int32

const (
	DLSSDepthTypeLinear DLSSDepthType = 0
	DLSSDepthTypeHW     DLSSDepthType = 1
)

// EngineType mirrors NVSDK_NGX_EngineType.
type EngineType int32

const (
	EngineTypeCustom    EngineType = 0
	EngineTypeUnreal    EngineType = 1
	EngineTypeUnity     EngineType = 2
	EngineTypeOmniverse EngineType = 3
)

// LoggingLevel mirrors NVSDK_NGX_Logging_Level.
type LoggingLevel int32

const (
	LoggingLevelOff     LoggingLevel = 0
	LoggingLevelOn      LoggingLevel = 1
	LoggingLevelVerbose LoggingLevel = 2
)

func ParseLoggingLevel(name string) (LoggingLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "off":
		return LoggingLevelOff, nil
	case "on":
		return LoggingLevelOn, nil
	case "verbose":
		return LoggingLevelVerbose, nil
	default:
		return LoggingLevelOff, fmt.Errorf("unknown NGX logging level %q", name)
	}
}
