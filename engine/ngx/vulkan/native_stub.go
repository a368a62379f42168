//go:build !ngx || !cgo || !(linux || windows)

package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

func requiredExtensions() ([]string, []string, error) {
	return nil, nil, core.ErrNotInstalled
}

func initNGX(cfg *SystemConfig) error {
	return core.ErrNotInstalled
}

func shutdownNGX(device vk.Device) error {
	return core.ErrNotInstalled
}

func allocateParameters() (sys.Parameter, error) {
	return nil, core.ErrNotInstalled
}

func capabilityParameters() (sys.Parameter, error) {
	return nil, core.ErrNotInstalled
}

func destroyParameters(params sys.Parameter) error {
	return core.ErrNotInstalled
}

func releaseFeature(handle sys.Handle) error {
	return core.ErrNotInstalled
}

func createFeature(device vk.Device, cmd vk.CommandBuffer, feature sys.Feature, params sys.Parameter) (sys.Handle, error) {
	return nil, core.ErrNotInstalled
}

func createDLSS(device vk.Device, cmd vk.CommandBuffer, params sys.Parameter, create *sys.DLSSCreateParams) (sys.Handle, error) {
	return nil, core.ErrNotInstalled
}

func createDLSSD(device vk.Device, cmd vk.CommandBuffer, params sys.Parameter, create *sys.DLSSDCreateParams) (sys.Handle, error) {
	return nil, core.ErrNotInstalled
}

func scratchBufferSize(feature sys.Feature, params sys.Parameter) (uint64, error) {
	return 0, core.ErrNotInstalled
}

func evaluateFeature(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter) error {
	return core.ErrNotInstalled
}

func evaluateDLSS(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter, eval *sys.DLSSEvalParams[*Resource]) error {
	return core.ErrNotInstalled
}

func evaluateDLSSD(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter, eval *sys.DLSSDEvalParams[*Resource]) error {
	return core.ErrNotInstalled
}
