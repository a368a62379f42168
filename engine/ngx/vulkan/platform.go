package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/nvngx/engine/ngx"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

// Platform implements the NGX contract with NVSDK_NGX_VULKAN_* calls.
type Platform struct {
	ngx.NativeParameters
}

var _ ngx.Platform[vk.Device, vk.CommandBuffer] = Platform{}

type (
	Feature                  = ngx.Feature[vk.Device, vk.CommandBuffer]
	SuperSamplingFeature     = ngx.SuperSamplingFeature[vk.Device, vk.CommandBuffer, ImageResourceDescription]
	RayReconstructionFeature = ngx.RayReconstructionFeature[vk.Device, vk.CommandBuffer, ImageResourceDescription]
)

func (Platform) ReleaseHandle(handle sys.Handle) error {
	return releaseFeature(handle)
}

func (Platform) CreateParameters() (sys.Parameter, error) {
	return allocateParameters()
}

func (Platform) GetCapabilityParameters() (sys.Parameter, error) {
	return capabilityParameters()
}

func (Platform) ReleaseParameters(params sys.Parameter) error {
	return destroyParameters(params)
}

func (Platform) CreateFeature(device vk.Device, cmd vk.CommandBuffer, feature sys.Feature, params sys.Parameter) (sys.Handle, error) {
	return createFeature(device, cmd, feature, params)
}

func (Platform) CreateSuperSamplingFeature(device vk.Device, cmd vk.CommandBuffer, params sys.Parameter, create *sys.DLSSCreateParams) (sys.Handle, error) {
	return createDLSS(device, cmd, params, create)
}

func (Platform) CreateRayReconstructionFeature(device vk.Device, cmd vk.CommandBuffer, params sys.Parameter, create *sys.DLSSDCreateParams) (sys.Handle, error) {
	return createDLSSD(device, cmd, params, create)
}

func (Platform) GetScratchBufferSize(feature sys.Feature, params sys.Parameter) (uint64, error) {
	return scratchBufferSize(feature, params)
}

func (Platform) EvaluateFeature(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter) error {
	return evaluateFeature(cmd, handle, params)
}
