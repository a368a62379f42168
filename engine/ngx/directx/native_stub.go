//go:build !windows || !cgo || !ngx

package directx

import (
	"github.com/go-ole/go-ole"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

func initNGX(cfg *SystemConfig) error {
	return core.ErrNotInstalled
}

func shutdownNGX(device *ole.IUnknown) error {
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

func createFeature(cmd *ole.IUnknown, feature sys.Feature, params sys.Parameter) (sys.Handle, error) {
	return nil, core.ErrNotInstalled
}

func createDLSS(cmd *ole.IUnknown, params sys.Parameter, create *sys.DLSSCreateParams) (sys.Handle, error) {
	return nil, core.ErrNotInstalled
}

func scratchBufferSize(feature sys.Feature, params sys.Parameter) (uint64, error) {
	return 0, core.ErrNotInstalled
}

func evaluateFeature(cmd *ole.IUnknown, handle sys.Handle, params sys.Parameter) error {
	return core.ErrNotInstalled
}

func evaluateDLSS(cmd *ole.IUnknown, handle sys.Handle, params sys.Parameter, eval *sys.DLSSEvalParams[Resource]) error {
	return core.ErrNotInstalled
}
