//go:build windows && cgo && ngx

package directx

/*
#cgo CFLAGS: -I${SRCDIR}/../../../third_party/DLSS/include
#cgo LDFLAGS: -L${SRCDIR}/../../../third_party/DLSS/lib/Windows_x86_64/x86_64 -lnvsdk_ngx_s -ld3d12 -lstdc++

#include <stdlib.h>
#include <string.h>
#include <stdbool.h>
#include <wchar.h>
#include <d3d12.h>
#include "nvsdk_ngx.h"
#include "nvsdk_ngx_helpers.h"

extern void nvngxD3D12Progress(float progress, bool *shouldCancel);
extern void nvngxD3D12Log(char *message, NVSDK_NGX_Logging_Level level, NVSDK_NGX_Feature source);

static inline void nvngx_d3d12_log(const char *message, NVSDK_NGX_Logging_Level level, NVSDK_NGX_Feature source)
{
	nvngxD3D12Log((char *)message, level, source);
}

static inline NVSDK_NGX_Result nvngx_d3d12_init(
	const char *projectID,
	NVSDK_NGX_EngineType engineType,
	const char *engineVersion,
	const wchar_t *dataPath,
	void *device,
	NVSDK_NGX_Logging_Level level)
{
	NVSDK_NGX_FeatureCommonInfo info;
	memset(&info, 0, sizeof(info));
	info.LoggingInfo.LoggingCallback = nvngx_d3d12_log;
	info.LoggingInfo.MinimumLoggingLevel = level;
	info.LoggingInfo.DisableOtherLoggingSinks = true;
	return NVSDK_NGX_D3D12_Init_with_ProjectID(
		projectID, engineType, engineVersion, dataPath,
		(ID3D12Device *)device, &info, NVSDK_NGX_Version_API);
}

static inline NVSDK_NGX_Result nvngx_d3d12_shutdown(void *device)
{
	return NVSDK_NGX_D3D12_Shutdown1((ID3D12Device *)device);
}

static inline NVSDK_NGX_Result nvngx_d3d12_create_feature(
	void *cmd,
	NVSDK_NGX_Feature feature,
	NVSDK_NGX_Parameter *params,
	NVSDK_NGX_Handle **handle)
{
	return NVSDK_NGX_D3D12_CreateFeature((ID3D12GraphicsCommandList *)cmd, feature, params, handle);
}

static inline NVSDK_NGX_Result nvngx_d3d12_evaluate_feature(void *cmd, const NVSDK_NGX_Handle *handle, const NVSDK_NGX_Parameter *params)
{
	return NVSDK_NGX_D3D12_EvaluateFeature_C((ID3D12GraphicsCommandList *)cmd, handle, params, nvngxD3D12Progress);
}

static inline NVSDK_NGX_Result nvngx_d3d12_create_dlss(
	void *cmd,
	NVSDK_NGX_Handle **handle,
	NVSDK_NGX_Parameter *params,
	NVSDK_NGX_DLSS_Create_Params *create)
{
	return NGX_D3D12_CREATE_DLSS_EXT((ID3D12GraphicsCommandList *)cmd, 1, 1, handle, params, create);
}

static inline NVSDK_NGX_Result nvngx_d3d12_evaluate_dlss(
	void *cmd,
	NVSDK_NGX_Handle *handle,
	NVSDK_NGX_Parameter *params,
	NVSDK_NGX_D3D12_DLSS_Eval_Params *eval)
{
	return NGX_D3D12_EVALUATE_DLSS_EXT((ID3D12GraphicsCommandList *)cmd, handle, params, eval);
}
*/
import "C"

import (
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/spaghettifunk/nvngx/engine/ngx"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

//export nvngxD3D12Progress
func nvngxD3D12Progress(progress C.float, shouldCancel *C.bool) {
	ngx.ReportProgress(float32(progress), (*bool)(unsafe.Pointer(shouldCancel)))
}

//export nvngxD3D12Log
func nvngxD3D12Log(message *C.char, level C.NVSDK_NGX_Logging_Level, source C.NVSDK_NGX_Feature) {
	sys.ForwardLog(C.GoString(message), sys.LoggingLevel(level), sys.Feature(source))
}

func result(r C.NVSDK_NGX_Result, op string) error {
	if res := sys.Result(r); res.Failed() {
		return res.Err(op)
	}
	return nil
}

func cParams(params sys.Parameter) *C.NVSDK_NGX_Parameter {
	return (*C.NVSDK_NGX_Parameter)(unsafe.Pointer(params))
}

func cHandle(handle sys.Handle) *C.NVSDK_NGX_Handle {
	return (*C.NVSDK_NGX_Handle)(unsafe.Pointer(handle))
}

func cResource(r Resource) *C.ID3D12Resource {
	return (*C.ID3D12Resource)(rawPointer(r))
}

func coordinates(c sys.Coordinates) C.NVSDK_NGX_Coordinates {
	return C.NVSDK_NGX_Coordinates{X: C.uint(c.X), Y: C.uint(c.Y)}
}

func dimensions(d sys.Dimensions) C.NVSDK_NGX_Dimensions {
	return C.NVSDK_NGX_Dimensions{Width: C.uint(d.Width), Height: C.uint(d.Height)}
}

func initNGX(cfg *SystemConfig) error {
	path, err := windows.UTF16PtrFromString(cfg.ApplicationDataPath)
	if err != nil {
		return sys.NewOtherError(sys.ErrInvalidString, "couldn't convert %q to a wide string", cfg.ApplicationDataPath)
	}
	projectID := C.CString(cfg.ProjectID.String())
	defer C.free(unsafe.Pointer(projectID))
	engineVersion := C.CString(cfg.EngineVersion)
	defer C.free(unsafe.Pointer(engineVersion))

	r := C.nvngx_d3d12_init(
		projectID,
		C.NVSDK_NGX_EngineType(cfg.EngineType),
		engineVersion,
		(*C.wchar_t)(unsafe.Pointer(path)),
		unsafe.Pointer(cfg.Device),
		C.NVSDK_NGX_Logging_Level(cfg.LoggingLevel),
	)
	return result(r, "NVSDK_NGX_D3D12_Init_with_ProjectID")
}

func shutdownNGX(device *ole.IUnknown) error {
	return result(C.nvngx_d3d12_shutdown(unsafe.Pointer(device)), "NVSDK_NGX_D3D12_Shutdown1")
}

func allocateParameters() (sys.Parameter, error) {
	var p *C.NVSDK_NGX_Parameter
	if err := result(C.NVSDK_NGX_D3D12_AllocateParameters(&p), "NVSDK_NGX_D3D12_AllocateParameters"); err != nil {
		return nil, err
	}
	return sys.Parameter(unsafe.Pointer(p)), nil
}

func capabilityParameters() (sys.Parameter, error) {
	var p *C.NVSDK_NGX_Parameter
	if err := result(C.NVSDK_NGX_D3D12_GetCapabilityParameters(&p), "NVSDK_NGX_D3D12_GetCapabilityParameters"); err != nil {
		return nil, err
	}
	return sys.Parameter(unsafe.Pointer(p)), nil
}

func destroyParameters(params sys.Parameter) error {
	return result(C.NVSDK_NGX_D3D12_DestroyParameters(cParams(params)), "NVSDK_NGX_D3D12_DestroyParameters")
}

func releaseFeature(handle sys.Handle) error {
	return result(C.NVSDK_NGX_D3D12_ReleaseFeature(cHandle(handle)), "NVSDK_NGX_D3D12_ReleaseFeature")
}

func createFeature(cmd *ole.IUnknown, feature sys.Feature, params sys.Parameter) (sys.Handle, error) {
	var h *C.NVSDK_NGX_Handle
	r := C.nvngx_d3d12_create_feature(unsafe.Pointer(cmd), C.NVSDK_NGX_Feature(feature), cParams(params), &h)
	if err := result(r, "NVSDK_NGX_D3D12_CreateFeature"); err != nil {
		return nil, err
	}
	return sys.Handle(unsafe.Pointer(h)), nil
}

func createDLSS(cmd *ole.IUnknown, params sys.Parameter, create *sys.DLSSCreateParams) (sys.Handle, error) {
	var c C.NVSDK_NGX_DLSS_Create_Params
	c.Feature.InWidth = C.uint(create.Feature.InWidth)
	c.Feature.InHeight = C.uint(create.Feature.InHeight)
	c.Feature.InTargetWidth = C.uint(create.Feature.InTargetWidth)
	c.Feature.InTargetHeight = C.uint(create.Feature.InTargetHeight)
	c.Feature.InPerfQualityValue = C.NVSDK_NGX_PerfQuality_Value(create.Feature.InPerfQualityValue)
	c.InFeatureCreateFlags = C.int(create.InFeatureCreateFlags)
	c.InEnableOutputSubrects = C.bool(create.InEnableOutputSubrects)

	var h *C.NVSDK_NGX_Handle
	r := C.nvngx_d3d12_create_dlss(unsafe.Pointer(cmd), &h, cParams(params), &c)
	if err := result(r, "NGX_D3D12_CREATE_DLSS_EXT"); err != nil {
		return nil, err
	}
	return sys.Handle(unsafe.Pointer(h)), nil
}

func scratchBufferSize(feature sys.Feature, params sys.Parameter) (uint64, error) {
	var size C.size_t
	r := C.NVSDK_NGX_D3D12_GetScratchBufferSize(C.NVSDK_NGX_Feature(feature), cParams(params), &size)
	if err := result(r, "NVSDK_NGX_D3D12_GetScratchBufferSize"); err != nil {
		return 0, err
	}
	return uint64(size), nil
}

func evaluateFeature(cmd *ole.IUnknown, handle sys.Handle, params sys.Parameter) error {
	r := C.nvngx_d3d12_evaluate_feature(unsafe.Pointer(cmd), cHandle(handle), cParams(params))
	return result(r, "NVSDK_NGX_D3D12_EvaluateFeature_C")
}

func evaluateDLSS(cmd *ole.IUnknown, handle sys.Handle, params sys.Parameter, eval *sys.DLSSEvalParams[Resource]) error {
	p := (*C.NVSDK_NGX_D3D12_DLSS_Eval_Params)(C.calloc(1, C.sizeof_NVSDK_NGX_D3D12_DLSS_Eval_Params))
	defer C.free(unsafe.Pointer(p))

	p.Feature.pInColor = cResource(eval.InColor)
	p.Feature.pInOutput = cResource(eval.InOutput)
	p.Feature.InSharpness = C.float(eval.InSharpness)
	p.pInDepth = cResource(eval.InDepth)
	p.pInMotionVectors = cResource(eval.InMotionVectors)
	p.InJitterOffsetX = C.float(eval.InJitterOffsetX)
	p.InJitterOffsetY = C.float(eval.InJitterOffsetY)
	p.InRenderSubrectDimensions = dimensions(eval.InRenderSubrectDimensions)
	p.InReset = C.int(eval.InReset)
	p.InMVScaleX = C.float(eval.InMVScaleX)
	p.InMVScaleY = C.float(eval.InMVScaleY)
	p.pInTransparencyMask = cResource(eval.InTransparencyMask)
	p.pInExposureTexture = cResource(eval.InExposureTexture)
	p.pInBiasCurrentColorMask = cResource(eval.InBiasCurrentColorMask)
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

	r := C.nvngx_d3d12_evaluate_dlss(unsafe.Pointer(cmd), cHandle(handle), cParams(params), p)
	return result(r, "NGX_D3D12_EVALUATE_DLSS_EXT")
}
