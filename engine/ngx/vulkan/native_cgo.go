//go:build ngx && cgo && (linux || windows)

package vulkan

/*
#cgo CFLAGS: -I${SRCDIR}/../../../third_party/DLSS/include
#cgo linux LDFLAGS: -L${SRCDIR}/../../../third_party/DLSS/lib/Linux_x86_64/release -lnvsdk_ngx -lstdc++ -ldl -lvulkan
#cgo windows LDFLAGS: -L${SRCDIR}/../../../third_party/DLSS/lib/Windows_x86_64/x86_64 -lnvsdk_ngx_s -lvulkan-1

#include <stdlib.h>
#include <string.h>
#include <stdbool.h>
#include <wchar.h>
#include <vulkan/vulkan.h>
#include "nvsdk_ngx_vk.h"
#include "nvsdk_ngx_helpers_vk.h"
#include "nvsdk_ngx_helpers_dlssd_vk.h"

extern void nvngxVulkanProgress(float progress, bool *shouldCancel);
extern void nvngxVulkanLog(char *message, NVSDK_NGX_Logging_Level level, NVSDK_NGX_Feature source);

static inline void nvngx_vk_log(const char *message, NVSDK_NGX_Logging_Level level, NVSDK_NGX_Feature source)
{
	nvngxVulkanLog((char *)message, level, source);
}

static inline NVSDK_NGX_Result nvngx_vk_init(
	const char *projectID,
	NVSDK_NGX_EngineType engineType,
	const char *engineVersion,
	const wchar_t *dataPath,
	VkInstance instance,
	VkPhysicalDevice physicalDevice,
	VkDevice device,
	void *gipa,
	void *gdpa,
	NVSDK_NGX_Logging_Level level)
{
	NVSDK_NGX_FeatureCommonInfo info;
	memset(&info, 0, sizeof(info));
	info.LoggingInfo.LoggingCallback = nvngx_vk_log;
	info.LoggingInfo.MinimumLoggingLevel = level;
	info.LoggingInfo.DisableOtherLoggingSinks = true;
	return NVSDK_NGX_VULKAN_Init_with_ProjectID(
		projectID, engineType, engineVersion, dataPath,
		instance, physicalDevice, device,
		(PFN_vkGetInstanceProcAddr)gipa, (PFN_vkGetDeviceProcAddr)gdpa,
		&info, NVSDK_NGX_Version_API);
}

static inline NVSDK_NGX_Result nvngx_vk_evaluate_feature(VkCommandBuffer cmd, const NVSDK_NGX_Handle *handle, const NVSDK_NGX_Parameter *params)
{
	return NVSDK_NGX_VULKAN_EvaluateFeature_C(cmd, handle, params, nvngxVulkanProgress);
}

static inline NVSDK_NGX_Result nvngx_vk_create_dlss(
	VkDevice device,
	VkCommandBuffer cmd,
	NVSDK_NGX_Handle **handle,
	NVSDK_NGX_Parameter *params,
	NVSDK_NGX_DLSS_Create_Params *create)
{
	return NGX_VULKAN_CREATE_DLSS_EXT1(device, cmd, 1, 1, handle, params, create);
}

static inline NVSDK_NGX_Result nvngx_vk_evaluate_dlss(
	VkCommandBuffer cmd,
	NVSDK_NGX_Handle *handle,
	NVSDK_NGX_Parameter *params,
	NVSDK_NGX_VK_DLSS_Eval_Params *eval)
{
	return NGX_VULKAN_EVALUATE_DLSS_EXT(cmd, handle, params, eval);
}

static inline NVSDK_NGX_Result nvngx_vk_create_dlssd(
	VkDevice device,
	VkCommandBuffer cmd,
	NVSDK_NGX_Handle **handle,
	NVSDK_NGX_Parameter *params,
	NVSDK_NGX_DLSSD_Create_Params *create)
{
	return NGX_VULKAN_CREATE_DLSSD_EXT1(device, cmd, 1, 1, handle, params, create);
}

static inline NVSDK_NGX_Result nvngx_vk_evaluate_dlssd(
	VkCommandBuffer cmd,
	NVSDK_NGX_Handle *handle,
	NVSDK_NGX_Parameter *params,
	NVSDK_NGX_VK_DLSSD_Eval_Params *eval)
{
	return NGX_VULKAN_EVALUATE_DLSSD_EXT(cmd, handle, params, eval);
}
*/
import "C"

import (
	"unicode/utf16"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/nvngx/engine/ngx"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

//export nvngxVulkanProgress
func nvngxVulkanProgress(progress C.float, shouldCancel *C.bool) {
	ngx.ReportProgress(float32(progress), (*bool)(unsafe.Pointer(shouldCancel)))
}

//export nvngxVulkanLog
func nvngxVulkanLog(message *C.char, level C.NVSDK_NGX_Logging_Level, source C.NVSDK_NGX_Feature) {
	sys.ForwardLog(C.GoString(message), sys.LoggingLevel(level), sys.Feature(source))
}

func result(r C.NVSDK_NGX_Result, op string) error {
	if res := sys.Result(r); res.Failed() {
		return res.Err(op)
	}
	return nil
}

func cDevice(d vk.Device) C.VkDevice {
	return C.VkDevice(unsafe.Pointer(d))
}

func cCommandBuffer(cmd vk.CommandBuffer) C.VkCommandBuffer {
	return C.VkCommandBuffer(unsafe.Pointer(cmd))
}

func cParams(params sys.Parameter) *C.NVSDK_NGX_Parameter {
	return (*C.NVSDK_NGX_Parameter)(unsafe.Pointer(params))
}

func cHandle(handle sys.Handle) *C.NVSDK_NGX_Handle {
	return (*C.NVSDK_NGX_Handle)(unsafe.Pointer(handle))
}

// arena tracks C allocations for the duration of one native call.
type arena struct {
	ptrs []unsafe.Pointer
}

func (a *arena) alloc(size C.size_t) unsafe.Pointer {
	p := C.calloc(1, size)
	a.ptrs = append(a.ptrs, p)
	return p
}

func (a *arena) free() {
	for _, p := range a.ptrs {
		C.free(p)
	}
	a.ptrs = nil
}

func (a *arena) cString(s string) *C.char {
	p := C.CString(s)
	a.ptrs = append(a.ptrs, unsafe.Pointer(p))
	return p
}

// wideString encodes s for a wchar_t parameter, 2 bytes on Windows and
// 4 elsewhere.
func (a *arena) wideString(s string) *C.wchar_t {
	runes := []rune(s)
	if C.sizeof_wchar_t == 2 {
		units := append(utf16.Encode(runes), 0)
		p := a.alloc(C.size_t(len(units) * 2))
		copy(unsafe.Slice((*uint16)(p), len(units)), units)
		return (*C.wchar_t)(p)
	}
	p := a.alloc(C.size_t((len(runes) + 1) * 4))
	out := unsafe.Slice((*int32)(p), len(runes)+1)
	copy(out, runes)
	return (*C.wchar_t)(p)
}

func (a *arena) resource(r *Resource) *C.NVSDK_NGX_Resource_VK {
	if r == nil {
		return nil
	}
	res := (*C.NVSDK_NGX_Resource_VK)(a.alloc(C.sizeof_NVSDK_NGX_Resource_VK))
	res.Type = C.NVSDK_NGX_Resource_VK_Type(r.Type)
	res.ReadWrite = C.bool(r.ReadWrite)

	switch r.Type {
	case ResourceTypeBuffer:
		info := (*C.NVSDK_NGX_BufferInfo_VK)(unsafe.Pointer(&res.Resource))
		info.Buffer = C.VkBuffer(unsafe.Pointer(r.BufferInfo.Buffer))
		info.SizeInBytes = C.uint(r.BufferInfo.SizeInBytes)
	default:
		v := r.ImageViewInfo
		info := (*C.NVSDK_NGX_ImageViewInfo_VK)(unsafe.Pointer(&res.Resource))
		info.ImageView = C.VkImageView(unsafe.Pointer(v.ImageView))
		info.Image = C.VkImage(unsafe.Pointer(v.Image))
		info.SubresourceRange = C.VkImageSubresourceRange{
			aspectMask:     C.VkImageAspectFlags(v.SubresourceRange.AspectMask),
			baseMipLevel:   C.uint32_t(v.SubresourceRange.BaseMipLevel),
			levelCount:     C.uint32_t(v.SubresourceRange.LevelCount),
			baseArrayLayer: C.uint32_t(v.SubresourceRange.BaseArrayLayer),
			layerCount:     C.uint32_t(v.SubresourceRange.LayerCount),
		}
		info.Format = C.VkFormat(v.Format)
		info.Width = C.uint(v.Width)
		info.Height = C.uint(v.Height)
	}
	return res
}

func coordinates(c sys.Coordinates) C.NVSDK_NGX_Coordinates {
	return C.NVSDK_NGX_Coordinates{X: C.uint(c.X), Y: C.uint(c.Y)}
}

func dimensions(d sys.Dimensions) C.NVSDK_NGX_Dimensions {
	return C.NVSDK_NGX_Dimensions{Width: C.uint(d.Width), Height: C.uint(d.Height)}
}

func requiredExtensions() ([]string, []string, error) {
	var (
		instanceCount, deviceCount C.uint
		instanceExts, deviceExts   **C.char
	)
	r := C.NVSDK_NGX_VULKAN_RequiredExtensions(&instanceCount, &instanceExts, &deviceCount, &deviceExts)
	if err := result(r, "NVSDK_NGX_VULKAN_RequiredExtensions"); err != nil {
		return nil, nil, err
	}

	instance := make([]string, 0, int(instanceCount))
	if instanceCount > 0 {
		for _, s := range unsafe.Slice(instanceExts, int(instanceCount)) {
			instance = append(instance, C.GoString(s))
		}
	}
	device := make([]string, 0, int(deviceCount))
	if deviceCount > 0 {
		for _, s := range unsafe.Slice(deviceExts, int(deviceCount)) {
			device = append(device, C.GoString(s))
		}
	}
	return instance, device, nil
}

func initNGX(cfg *SystemConfig) error {
	var a arena
	defer a.free()

	r := C.nvngx_vk_init(
		a.cString(cfg.ProjectID.String()),
		C.NVSDK_NGX_EngineType(cfg.EngineType),
		a.cString(cfg.EngineVersion),
		a.wideString(cfg.ApplicationDataPath),
		C.VkInstance(unsafe.Pointer(cfg.Instance)),
		C.VkPhysicalDevice(unsafe.Pointer(cfg.PhysicalDevice)),
		cDevice(cfg.Device),
		cfg.GetInstanceProcAddr,
		cfg.GetDeviceProcAddr,
		C.NVSDK_NGX_Logging_Level(cfg.LoggingLevel),
	)
	return result(r, "NVSDK_NGX_VULKAN_Init_with_ProjectID")
}

func shutdownNGX(device vk.Device) error {
	return result(C.NVSDK_NGX_VULKAN_Shutdown1(cDevice(device)), "NVSDK_NGX_VULKAN_Shutdown1")
}

func allocateParameters() (sys.Parameter, error) {
	var p *C.NVSDK_NGX_Parameter
	if err := result(C.NVSDK_NGX_VULKAN_AllocateParameters(&p), "NVSDK_NGX_VULKAN_AllocateParameters"); err != nil {
		return nil, err
	}
	return sys.Parameter(unsafe.Pointer(p)), nil
}

func capabilityParameters() (sys.Parameter, error) {
	var p *C.NVSDK_NGX_Parameter
	if err := result(C.NVSDK_NGX_VULKAN_GetCapabilityParameters(&p), "NVSDK_NGX_VULKAN_GetCapabilityParameters"); err != nil {
		return nil, err
	}
	return sys.Parameter(unsafe.Pointer(p)), nil
}

func destroyParameters(params sys.Parameter) error {
	return result(C.NVSDK_NGX_VULKAN_DestroyParameters(cParams(params)), "NVSDK_NGX_VULKAN_DestroyParameters")
}

func releaseFeature(handle sys.Handle) error {
	return result(C.NVSDK_NGX_VULKAN_ReleaseFeature(cHandle(handle)), "NVSDK_NGX_VULKAN_ReleaseFeature")
}

func createFeature(device vk.Device, cmd vk.CommandBuffer, feature sys.Feature, params sys.Parameter) (sys.Handle, error) {
	var h *C.NVSDK_NGX_Handle
	r := C.NVSDK_NGX_VULKAN_CreateFeature1(cDevice(device), cCommandBuffer(cmd), C.NVSDK_NGX_Feature(feature), cParams(params), &h)
	if err := result(r, "NVSDK_NGX_VULKAN_CreateFeature1"); err != nil {
		return nil, err
	}
	return sys.Handle(unsafe.Pointer(h)), nil
}

func createDLSS(device vk.Device, cmd vk.CommandBuffer, params sys.Parameter, create *sys.DLSSCreateParams) (sys.Handle, error) {
	var c C.NVSDK_NGX_DLSS_Create_Params
	c.Feature.InWidth = C.uint(create.Feature.InWidth)
	c.Feature.InHeight = C.uint(create.Feature.InHeight)
	c.Feature.InTargetWidth = C.uint(create.Feature.InTargetWidth)
	c.Feature.InTargetHeight = C.uint(create.Feature.InTargetHeight)
	c.Feature.InPerfQualityValue = C.NVSDK_NGX_PerfQuality_Value(create.Feature.InPerfQualityValue)
	c.InFeatureCreateFlags = C.int(create.InFeatureCreateFlags)
	c.InEnableOutputSubrects = C.bool(create.InEnableOutputSubrects)

	var h *C.NVSDK_NGX_Handle
	r := C.nvngx_vk_create_dlss(cDevice(device), cCommandBuffer(cmd), &h, cParams(params), &c)
	if err := result(r, "NGX_VULKAN_CREATE_DLSS_EXT1"); err != nil {
		return nil, err
	}
	return sys.Handle(unsafe.Pointer(h)), nil
}

func createDLSSD(device vk.Device, cmd vk.CommandBuffer, params sys.Parameter, create *sys.DLSSDCreateParams) (sys.Handle, error) {
	var c C.NVSDK_NGX_DLSSD_Create_Params
	c.InDenoiseMode = C.NVSDK_NGX_DLSS_Denoise_Mode(create.InDenoiseMode)
	c.InRoughnessMode = C.NVSDK_NGX_DLSS_Roughness_Mode(create.InRoughnessMode)
	c.InUseHWDepth = C.NVSDK_NGX_DLSS_Depth_Type(create.InUseHWDepth)
	c.InWidth = C.uint(create.InWidth)
	c.InHeight = C.uint(create.InHeight)
	c.InTargetWidth = C.uint(create.InTargetWidth)
	c.InTargetHeight = C.uint(create.InTargetHeight)
	c.InPerfQualityValue = C.NVSDK_NGX_PerfQuality_Value(create.InPerfQualityValue)
	c.InFeatureCreateFlags = C.int(create.InFeatureCreateFlags)
	c.InEnableOutputSubrects = C.bool(create.InEnableOutputSubrects)

	var h *C.NVSDK_NGX_Handle
	r := C.nvngx_vk_create_dlssd(cDevice(device), cCommandBuffer(cmd), &h, cParams(params), &c)
	if err := result(r, "NGX_VULKAN_CREATE_DLSSD_EXT1"); err != nil {
		return nil, err
	}
	return sys.Handle(unsafe.Pointer(h)), nil
}

func scratchBufferSize(feature sys.Feature, params sys.Parameter) (uint64, error) {
	var size C.size_t
	r := C.NVSDK_NGX_VULKAN_GetScratchBufferSize(C.NVSDK_NGX_Feature(feature), cParams(params), &size)
	if err := result(r, "NVSDK_NGX_VULKAN_GetScratchBufferSize"); err != nil {
		return 0, err
	}
	return uint64(size), nil
}

func evaluateFeature(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter) error {
	r := C.nvngx_vk_evaluate_feature(cCommandBuffer(cmd), cHandle(handle), cParams(params))
	return result(r, "NVSDK_NGX_VULKAN_EvaluateFeature_C")
}

func evaluateDLSS(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter, eval *sys.DLSSEvalParams[*Resource]) error {
	var a arena
	defer a.free()

	p := (*C.NVSDK_NGX_VK_DLSS_Eval_Params)(a.alloc(C.sizeof_NVSDK_NGX_VK_DLSS_Eval_Params))
	p.Feature.pInColor = a.resource(eval.InColor)
	p.Feature.pInOutput = a.resource(eval.InOutput)
	p.Feature.InSharpness = C.float(eval.InSharpness)
	p.pInDepth = a.resource(eval.InDepth)
	p.pInMotionVectors = a.resource(eval.InMotionVectors)
	p.InJitterOffsetX = C.float(eval.InJitterOffsetX)
	p.InJitterOffsetY = C.float(eval.InJitterOffsetY)
	p.InRenderSubrectDimensions = dimensions(eval.InRenderSubrectDimensions)
	p.InReset = C.int(eval.InReset)
	p.InMVScaleX = C.float(eval.InMVScaleX)
	p.InMVScaleY = C.float(eval.InMVScaleY)
	p.pInTransparencyMask = a.resource(eval.InTransparencyMask)
	p.pInExposureTexture = a.resource(eval.InExposureTexture)
	p.pInBiasCurrentColorMask = a.resource(eval.InBiasCurrentColorMask)
	p.InColorSubrectBase = coordinates(eval.InColorSubrectBase)
	p.InDepthSubrectBase = coordinates(eval.InDepthSubrectBase)
	p.InMVSubrectBase = coordinates(eval.InMVSubrectBase)
	p.InTranslucencySubrectBase = coordinates(eval.InTranslucencySubrectBase)
	p.InBiasCurrentColorSubrectBase = coordinates(eval.InBiasCurrentColorSubrectBase)
	p.InOutputSubrectBase = coordinates(eval.InOutputSubrectBase)
	p.InPreExposure = C.float(eval.InPreExposure)
	p.InExposureScale = C.float(eval.InExposureScale)
	p.InIndicatorInvertXAxis = C.int(eval.InIndicatorInvertXAxis)
	p.InIndicatorInvertYAxis = C.int(eval.InIndicatorInvertYAxis)

	r := C.nvngx_vk_evaluate_dlss(cCommandBuffer(cmd), cHandle(handle), cParams(params), p)
	return result(r, "NGX_VULKAN_EVALUATE_DLSS_EXT")
}

func evaluateDLSSD(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter, eval *sys.DLSSDEvalParams[*Resource]) error {
	var a arena
	defer a.free()

	p := (*C.NVSDK_NGX_VK_DLSSD_Eval_Params)(a.alloc(C.sizeof_NVSDK_NGX_VK_DLSSD_Eval_Params))
	p.pInColor = a.resource(eval.InColor)
	p.pInOutput = a.resource(eval.InOutput)
	p.pInDepth = a.resource(eval.InDepth)
	p.pInMotionVectors = a.resource(eval.InMotionVectors)
	p.pInDiffuseAlbedo = a.resource(eval.InDiffuseAlbedo)
	p.pInSpecularAlbedo = a.resource(eval.InSpecularAlbedo)
	p.pInNormals = a.resource(eval.InNormals)
	p.pInRoughness = a.resource(eval.InRoughness)
	p.pInTransparencyLayer = a.resource(eval.InTransparencyMask)
	p.pInMotionVectorsReflections = a.resource(eval.InSpecularMotionVectors)
	p.InJitterOffsetX = C.float(eval.InJitterOffsetX)
	p.InJitterOffsetY = C.float(eval.InJitterOffsetY)
	p.InRenderSubrectDimensions = dimensions(eval.InRenderSubrectDimensions)
	p.InReset = C.int(eval.InReset)
	p.InMVScaleX = C.float(eval.InMVScaleX)
	p.InMVScaleY = C.float(eval.InMVScaleY)
	p.InColorSubrectBase = coordinates(eval.InColorSubrectBase)
	p.InDepthSubrectBase = coordinates(eval.InDepthSubrectBase)
	p.InMVSubrectBase = coordinates(eval.InMVSubrectBase)
	p.InTranslucencySubrectBase = coordinates(eval.InTranslucencySubrectBase)
	p.InOutputSubrectBase = coordinates(eval.InOutputSubrectBase)
	p.InPreExposure = C.float(eval.InPreExposure)
	p.InExposureScale = C.float(eval.InExposureScale)

	r := C.nvngx_vk_evaluate_dlssd(cCommandBuffer(cmd), cHandle(handle), cParams(params), p)
	return result(r, "NGX_VULKAN_EVALUATE_DLSSD_EXT")
}
