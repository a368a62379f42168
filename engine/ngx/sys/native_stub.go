//go:build !ngx || !cgo

package sys

import (
	"unsafe"

	"github.com/spaghettifunk/nvngx/engine/core"
)

func (ParameterStore) SetI32(params Parameter, name string, value int32) error {
	return core.ErrNotInstalled
}

func (ParameterStore) GetI32(params Parameter, name string) (int32, error) {
	return 0, core.ErrNotInstalled
}

func (ParameterStore) SetU32(params Parameter, name string, value uint32) error {
	return core.ErrNotInstalled
}

func (ParameterStore) GetU32(params Parameter, name string) (uint32, error) {
	return 0, core.ErrNotInstalled
}

func (ParameterStore) SetU64(params Parameter, name string, value uint64) error {
	return core.ErrNotInstalled
}

func (ParameterStore) GetU64(params Parameter, name string) (uint64, error) {
	return 0, core.ErrNotInstalled
}

func (ParameterStore) SetF32(params Parameter, name string, value float32) error {
	return core.ErrNotInstalled
}

func (ParameterStore) GetF32(params Parameter, name string) (float32, error) {
	return 0, core.ErrNotInstalled
}

func (ParameterStore) SetF64(params Parameter, name string, value float64) error {
	return core.ErrNotInstalled
}

func (ParameterStore) GetF64(params Parameter, name string) (float64, error) {
	return 0, core.ErrNotInstalled
}

func (ParameterStore) SetPointer(params Parameter, name string, value unsafe.Pointer) error {
	return core.ErrNotInstalled
}

func (ParameterStore) GetPointer(params Parameter, name string) (unsafe.Pointer, error) {
	return nil, core.ErrNotInstalled
}

func (ParameterStore) DLSSOptimalSizes(params Parameter, targetWidth, targetHeight uint32, quality PerfQuality) (DLSSOptimalSizes, error) {
	return DLSSOptimalSizes{}, core.ErrNotInstalled
}
