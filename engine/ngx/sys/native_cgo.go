//go:build ngx && cgo

package sys

/*
#cgo CFLAGS: -I${SRCDIR}/../../../third_party/DLSS/include
#cgo linux LDFLAGS: -L${SRCDIR}/../../../third_party/DLSS/lib/Linux_x86_64/release -lnvsdk_ngx -lstdc++ -ldl
#cgo windows LDFLAGS: -L${SRCDIR}/../../../third_party/DLSS/lib/Windows_x86_64/x86_64 -lnvsdk_ngx_s

#include <stdlib.h>
#include <stdbool.h>
#include <stddef.h>
#include <wchar.h>
#include "nvsdk_ngx_defs.h"
#include "nvsdk_ngx_params.h"
#include "nvsdk_ngx_helpers.h"

static NVSDK_NGX_Result nvngx_dlss_optimal_settings(
	NVSDK_NGX_Parameter *params,
	unsigned int width,
	unsigned int height,
	int quality,
	unsigned int *out)
{
	float sharpness = 0.0f;
	return NGX_DLSS_GET_OPTIMAL_SETTINGS(
		params, width, height, (NVSDK_NGX_PerfQuality_Value)quality,
		&out[0], &out[1], &out[2], &out[3], &out[4], &out[5], &sharpness);
}
*/
import "C"

import (
	"unsafe"
)

func cName(name string) (*C.char, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return C.CString(name), nil
}

func cParams(params Parameter) *C.NVSDK_NGX_Parameter {
	return (*C.NVSDK_NGX_Parameter)(unsafe.Pointer(params))
}

func (ParameterStore) SetI32(params Parameter, name string, value int32) error {
	cname, err := cName(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	C.NVSDK_NGX_Parameter_SetI(cParams(params), cname, C.int(value))
	return nil
}

func (ParameterStore) GetI32(params Parameter, name string) (int32, error) {
	cname, err := cName(name)
	if err != nil {
		return 0, err
	}
	defer C.free(unsafe.Pointer(cname))
	var v C.int
	if r := Result(C.NVSDK_NGX_Parameter_GetI(cParams(params), cname, &v)); r.Failed() {
		return 0, r.Err("NVSDK_NGX_Parameter_GetI(" + name + ")")
	}
	return int32(v), nil
}

func (ParameterStore) SetU32(params Parameter, name string, value uint32) error {
	cname, err := cName(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	C.NVSDK_NGX_Parameter_SetUI(cParams(params), cname, C.uint(value))
	return nil
}

func (ParameterStore) GetU32(params Parameter, name string) (uint32, error) {
	cname, err := cName(name)
	if err != nil {
		return 0, err
	}
	defer C.free(unsafe.Pointer(cname))
	var v C.uint
	if r := Result(C.NVSDK_NGX_Parameter_GetUI(cParams(params), cname, &v)); r.Failed() {
		return 0, r.Err("NVSDK_NGX_Parameter_GetUI(" + name + ")")
	}
	return uint32(v), nil
}

func (ParameterStore) SetU64(params Parameter, name string, value uint64) error {
	cname, err := cName(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	C.NVSDK_NGX_Parameter_SetULL(cParams(params), cname, C.ulonglong(value))
	return nil
}

func (ParameterStore) GetU64(params Parameter, name string) (uint64, error) {
	cname, err := cName(name)
	if err != nil {
		return 0, err
	}
	defer C.free(unsafe.Pointer(cname))
	var v C.ulonglong
	if r := Result(C.NVSDK_NGX_Parameter_GetULL(cParams(params), cname, &v)); r.Failed() {
		return 0, r.Err("NVSDK_NGX_Parameter_GetULL(" + name + ")")
	}
	return uint64(v), nil
}

func (ParameterStore) SetF32(params Parameter, name string, value float32) error {
	cname, err := cName(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	C.NVSDK_NGX_Parameter_SetF(cParams(params), cname, C.float(value))
	return nil
}

func (ParameterStore) GetF32(params Parameter, name string) (float32, error) {
	cname, err := cName(name)
	if err != nil {
		return 0, err
	}
	defer C.free(unsafe.Pointer(cname))
	var v C.float
	if r := Result(C.NVSDK_NGX_Parameter_GetF(cParams(params), cname, &v)); r.Failed() {
		return 0, r.Err("NVSDK_NGX_Parameter_GetF(" + name + ")")
	}
	return float32(v), nil
}

func (ParameterStore) SetF64(params Parameter, name string, value float64) error {
	cname, err := cName(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	C.NVSDK_NGX_Parameter_SetD(cParams(params), cname, C.double(value))
	return nil
}

func (ParameterStore) GetF64(params Parameter, name string) (float64, error) {
	cname, err := cName(name)
	if err != nil {
		return 0, err
	}
	defer C.free(unsafe.Pointer(cname))
	var v C.double
	if r := Result(C.NVSDK_NGX_Parameter_GetD(cParams(params), cname, &v)); r.Failed() {
		return 0, r.Err("NVSDK_NGX_Parameter_GetD(" + name + ")")
	}
	return float64(v), nil
}

func (ParameterStore) SetPointer(params Parameter, name string, value unsafe.Pointer) error {
	cname, err := cName(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	C.NVSDK_NGX_Parameter_SetVoidPointer(cParams(params), cname, value)
	return nil
}

func (ParameterStore) GetPointer(params Parameter, name string) (unsafe.Pointer, error) {
	cname, err := cName(name)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cname))
	var v unsafe.Pointer
	if r := Result(C.NVSDK_NGX_Parameter_GetVoidPointer(cParams(params), cname, &v)); r.Failed() {
		return nil, r.Err("NVSDK_NGX_Parameter_GetVoidPointer(" + name + ")")
	}
	return v, nil
}

func (ParameterStore) DLSSOptimalSizes(params Parameter, targetWidth, targetHeight uint32, quality PerfQuality) (DLSSOptimalSizes, error) {
	var out [6]C.uint
	r := Result(C.nvngx_dlss_optimal_settings(cParams(params), C.uint(targetWidth), C.uint(targetHeight), C.int(quality), &out[0]))
	if r.Failed() {
		return DLSSOptimalSizes{}, r.Err("NGX_DLSS_GET_OPTIMAL_SETTINGS")
	}
	return DLSSOptimalSizes{
		Width:     uint32(out[0]),
		Height:    uint32(out[1]),
		MaxWidth:  uint32(out[2]),
		MaxHeight: uint32(out[3]),
		MinWidth:  uint32(out[4]),
		MinHeight: uint32(out[5]),
	}, nil
}
