package directx

import (
	"fmt"

	"github.com/go-ole/go-ole"

	"github.com/spaghettifunk/nvngx/engine/ngx"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

// Platform implements the NGX contract with NVSDK_NGX_D3D12_* calls. The
// device is unused by feature creation; D3D12 takes the command list only.
type Platform struct {
	ngx.NativeParameters
}

var _ ngx.Platform[*ole.IUnknown, *ole.IUnknown] = Platform{}

type (
	Feature              = ngx.Feature[*ole.IUnknown, *ole.IUnknown]
	SuperSamplingFeature = ngx.SuperSamplingFeature[*ole.IUnknown, *ole.IUnknown, Resource]
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

func (Platform) CreateFeature(device *ole.IUnknown, cmd *ole.IUnknown, feature sys.Feature, params sys.Parameter) (sys.Handle, error) {
	return createFeature(cmd, feature, params)
}

func (Platform) CreateSuperSamplingFeature(device *ole.IUnknown, cmd *ole.IUnknown, params sys.Parameter, create *sys.DLSSCreateParams) (sys.Handle, error) {
	return createDLSS(cmd, params, create)
}

// CreateRayReconstructionFeature always fails with FAIL_NotImplemented.
func (Platform) CreateRayReconstructionFeature(device *ole.IUnknown, cmd *ole.IUnknown, params sys.Parameter, create *sys.DLSSDCreateParams) (sys.Handle, error) {
	return nil, errRayReconstructionNotImplemented()
}

func errRayReconstructionNotImplemented() error {
	return fmt.Errorf("ray reconstruction on Direct3D 12: %w (%w)",
		sys.ErrNotImplemented, sys.ResultFailNotImplemented.Err("NGX_D3D12_CREATE_DLSSD_EXT"))
}

func (Platform) GetScratchBufferSize(feature sys.Feature, params sys.Parameter) (uint64, error) {
	return scratchBufferSize(feature, params)
}

func (Platform) EvaluateFeature(cmd *ole.IUnknown, handle sys.Handle, params sys.Parameter) error {
	return evaluateFeature(cmd, handle, params)
}
