package ngx

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

type ParametersOrigin int

const (
	// ParametersAllocated maps start empty.
	ParametersAllocated ParametersOrigin = iota
	// ParametersCapability maps come pre-populated by the driver.
	ParametersCapability
)

func (o ParametersOrigin) String() string {
	if o == ParametersCapability {
		return "capability"
	}
	return "allocated"
}

// FeatureParameters owns a native parameter map. Callers must serialize
// access; the map itself is not locked.
type FeatureParameters struct {
	ops      ParameterOps
	ptr      sys.Parameter
	origin   ParametersOrigin
	refs     atomic.Int32
	released atomic.Bool
}

func newFeatureParameters(ops ParameterOps, ptr sys.Parameter, origin ParametersOrigin) *FeatureParameters {
	p := &FeatureParameters{ops: ops, ptr: ptr, origin: origin}
	p.refs.Store(1)
	return p
}

// NewFeatureParameters allocates an empty parameter map.
func NewFeatureParameters(ops ParameterOps) (*FeatureParameters, error) {
	ptr, err := ops.CreateParameters()
	if err != nil {
		core.LogError("failed to allocate NGX parameters: %s", err)
		return nil, err
	}
	return newFeatureParameters(ops, ptr, ParametersAllocated), nil
}

// GetCapabilityParameters returns a map pre-populated with the NGX and
// feature capabilities of the current system.
func GetCapabilityParameters(ops ParameterOps) (*FeatureParameters, error) {
	ptr, err := ops.GetCapabilityParameters()
	if err != nil {
		core.LogError("failed to get NGX capability parameters: %s", err)
		return nil, err
	}
	return newFeatureParameters(ops, ptr, ParametersCapability), nil
}

func (p *FeatureParameters) Ptr() sys.Parameter {
	if p.released.Load() {
		return nil
	}
	return p.ptr
}

func (p *FeatureParameters) Origin() ParametersOrigin {
	return p.origin
}

func (p *FeatureParameters) IsReleased() bool {
	return p.released.Load()
}

func (p *FeatureParameters) retain() *FeatureParameters {
	p.refs.Add(1)
	return p
}

// Release drops one reference; the last one destroys the native map.
// The map is considered gone even when the native call fails.
func (p *FeatureParameters) Release() error {
	if !dropRef(&p.refs) {
		return nil
	}
	if p.released.Swap(true) {
		return nil
	}
	if err := p.ops.ReleaseParameters(p.ptr); err != nil {
		core.LogError("couldn't release the %s parameter map: %s", p.origin, err)
		return err
	}
	return nil
}

func (p *FeatureParameters) check(name string) error {
	if p.released.Load() {
		return sys.NewOtherError(sys.ErrReleased, "parameter %q accessed after the parameter map was released", name)
	}
	return nil
}

func (p *FeatureParameters) SetBool(name string, value bool) error {
	return p.SetI32(name, sys.BoolToInt[int32](value))
}

// GetBool reads an int32; only 1 is true.
func (p *FeatureParameters) GetBool(name string) (bool, error) {
	v, err := p.GetI32(name)
	if err != nil {
		return false, err
	}
	return sys.IntToBool(v), nil
}

func (p *FeatureParameters) SetI32(name string, value int32) error {
	if err := p.check(name); err != nil {
		return err
	}
	return p.ops.SetI32(p.ptr, name, value)
}

func (p *FeatureParameters) GetI32(name string) (int32, error) {
	if err := p.check(name); err != nil {
		return 0, err
	}
	return p.ops.GetI32(p.ptr, name)
}

func (p *FeatureParameters) SetU32(name string, value uint32) error {
	if err := p.check(name); err != nil {
		return err
	}
	return p.ops.SetU32(p.ptr, name, value)
}

func (p *FeatureParameters) GetU32(name string) (uint32, error) {
	if err := p.check(name); err != nil {
		return 0, err
	}
	return p.ops.GetU32(p.ptr, name)
}

func (p *FeatureParameters) SetU64(name string, value uint64) error {
	if err := p.check(name); err != nil {
		return err
	}
	return p.ops.SetU64(p.ptr, name, value)
}

func (p *FeatureParameters) GetU64(name string) (uint64, error) {
	if err := p.check(name); err != nil {
		return 0, err
	}
	return p.ops.GetU64(p.ptr, name)
}

func (p *FeatureParameters) SetF32(name string, value float32) error {
	if err := p.check(name); err != nil {
		return err
	}
	return p.ops.SetF32(p.ptr, name, value)
}

func (p *FeatureParameters) GetF32(name string) (float32, error) {
	if err := p.check(name); err != nil {
		return 0, err
	}
	return p.ops.GetF32(p.ptr, name)
}

func (p *FeatureParameters) SetF64(name string, value float64) error {
	if err := p.check(name); err != nil {
		return err
	}
	return p.ops.SetF64(p.ptr, name, value)
}

func (p *FeatureParameters) GetF64(name string) (float64, error) {
	if err := p.check(name); err != nil {
		return 0, err
	}
	return p.ops.GetF64(p.ptr, name)
}

func (p *FeatureParameters) SetPointer(name string, value unsafe.Pointer) error {
	if err := p.check(name); err != nil {
		return err
	}
	return p.ops.SetPointer(p.ptr, name, value)
}

func (p *FeatureParameters) GetPointer(name string) (unsafe.Pointer, error) {
	if err := p.check(name); err != nil {
		return nil, err
	}
	return p.ops.GetPointer(p.ptr, name)
}

type capabilityKeys struct {
	feature            string
	available          string
	needsUpdatedDriver string
	minDriverMajor     string
	minDriverMinor     string
	initResult         string
}

var (
	superSamplingKeys = capabilityKeys{
		feature:            "SuperSampling",
		available:          sys.ParamSuperSamplingAvailable,
		needsUpdatedDriver: sys.ParamSuperSamplingNeedsUpdatedDriver,
		minDriverMajor:     sys.ParamSuperSamplingMinDriverVersionMajor,
		minDriverMinor:     sys.ParamSuperSamplingMinDriverVersionMinor,
		initResult:         sys.ParamSuperSamplingFeatureInitResult,
	}
	rayReconstructionKeys = capabilityKeys{
		feature:            "Ray Reconstruction",
		available:          sys.ParamSuperSamplingDenoisingAvailable,
		needsUpdatedDriver: sys.ParamSuperSamplingDenoisingNeedsUpdatedDriver,
		minDriverMajor:     sys.ParamSuperSamplingDenoisingMinDriverVersionMajor,
		minDriverMinor:     sys.ParamSuperSamplingDenoisingMinDriverVersionMinor,
		initResult:         sys.ParamSuperSamplingDenoisingFeatureInitResult,
	}
)

// Driver gate first; "available" is only consulted on an up-to-date driver.
func (p *FeatureParameters) supports(keys capabilityKeys) error {
	needsUpdate, err := p.GetBool(keys.needsUpdatedDriver)
	if err != nil {
		return err
	}
	if needsUpdate {
		major, err := p.GetU32(keys.minDriverMajor)
		if err != nil {
			return err
		}
		minor, err := p.GetU32(keys.minDriverMinor)
		if err != nil {
			return err
		}
		err = sys.NewOtherError(sys.ErrDriverUpdateRequired,
			"the %s feature requires a driver update, the driver version required should be higher or equal to %d.%d",
			keys.feature, major, minor)
		core.LogWarn(err.Error())
		return err
	}

	available, err := p.GetBool(keys.available)
	if err != nil {
		return err
	}
	if !available {
		return sys.NewOtherError(sys.ErrNotSupported, "the %s feature isn't supported on this platform", keys.feature)
	}
	return nil
}

// SupportsSuperSampling returns nil when DLSS can be created with the
// current driver and GPU.
func (p *FeatureParameters) SupportsSuperSampling() error {
	return p.supports(superSamplingKeys)
}

func (p *FeatureParameters) SupportsRayReconstruction() error {
	return p.supports(rayReconstructionKeys)
}

// IsSuperSamplingInitialised reads the FeatureInitResult key. Read
// failures count as not initialised.
func (p *FeatureParameters) IsSuperSamplingInitialised() bool {
	ok, err := p.GetBool(superSamplingKeys.initResult)
	return err == nil && ok
}

func (p *FeatureParameters) IsRayReconstructionInitialised() bool {
	ok, err := p.GetBool(rayReconstructionKeys.initResult)
	return err == nil && ok
}

// SuperSamplingOptimalSettings asks NGX for the render size to use for a
// target size and quality preset.
func (p *FeatureParameters) SuperSamplingOptimalSettings(targetWidth, targetHeight uint32, quality sys.PerfQuality) (SuperSamplingOptimalSettings, error) {
	if err := p.check("DLSSOptimalSettingsCallback"); err != nil {
		return SuperSamplingOptimalSettings{}, err
	}
	settings, err := p.ops.GetDLSSOptimalSettings(p.ptr, targetWidth, targetHeight, quality)
	if err != nil {
		return SuperSamplingOptimalSettings{}, err
	}
	settings.TargetWidth = targetWidth
	settings.TargetHeight = targetHeight
	settings.Quality = quality
	if settings.RenderWidth == 0 || settings.RenderHeight == 0 {
		return SuperSamplingOptimalSettings{}, sys.NewOtherError(sys.ErrQualityUnsupported,
			"the requested quality level isn't supported: %s", quality)
	}
	return settings, nil
}

type parameterKind int

const (
	kindBool parameterKind = iota
	kindU32
	kindF32
)

var snapshotKeys = []struct {
	name string
	kind parameterKind
}{
	{sys.ParamSuperSamplingAvailable, kindBool},
	{sys.ParamSuperSamplingDenoisingAvailable, kindBool},
	{sys.ParamInPaintingAvailable, kindBool},
	{sys.ParamImageSuperResolutionAvailable, kindBool},
	{sys.ParamSlowMotionAvailable, kindBool},
	{sys.ParamVideoSuperResolutionAvailable, kindBool},
	{sys.ParamImageSignalProcessingAvailable, kindBool},
	{sys.ParamDeepResolveAvailable, kindBool},
	{sys.ParamFrameGenerationAvailable, kindBool},
	{sys.ParamSuperSamplingNeedsUpdatedDriver, kindBool},
	{sys.ParamSuperSamplingDenoisingNeedsUpdatedDriver, kindBool},
	{sys.ParamInPaintingNeedsUpdatedDriver, kindBool},
	{sys.ParamImageSuperResolutionNeedsUpdatedDriver, kindBool},
	{sys.ParamSlowMotionNeedsUpdatedDriver, kindBool},
	{sys.ParamVideoSuperResolutionNeedsUpdatedDriver, kindBool},
	{sys.ParamImageSignalProcessingNeedsUpdatedDriver, kindBool},
	{sys.ParamDeepResolveNeedsUpdatedDriver, kindBool},
	{sys.ParamFrameGenerationNeedsUpdatedDriver, kindBool},
	{sys.ParamSuperSamplingMinDriverVersionMajor, kindU32},
	{sys.ParamSuperSamplingMinDriverVersionMinor, kindU32},
	{sys.ParamNumFrames, kindU32},
	{sys.ParamScale, kindU32},
	{sys.ParamOptLevel, kindU32},
	{sys.ParamIsDevSnippetBranch, kindBool},
	{sys.ParamSuperSamplingScaleFactor, kindF32},
}

// Snapshot reads the well-known capability keys. Keys the map does not
// hold are left out.
func (p *FeatureParameters) Snapshot() map[string]string {
	out := make(map[string]string, len(snapshotKeys))
	for _, k := range snapshotKeys {
		var (
			value string
			err   error
		)
		switch k.kind {
		case kindBool:
			var b bool
			b, err = p.GetBool(k.name)
			value = fmt.Sprintf("%t", b)
		case kindU32:
			var u uint32
			u, err = p.GetU32(k.name)
			value = fmt.Sprintf("%d", u)
		case kindF32:
			var f float32
			f, err = p.GetF32(k.name)
			value = fmt.Sprintf("%g", f)
		}
		if err != nil {
			continue
		}
		out[k.name] = value
	}
	return out
}

func (p *FeatureParameters) String() string {
	if p.IsReleased() {
		return fmt.Sprintf("FeatureParameters{%s, released}", p.origin)
	}
	snap := p.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	fmt.Fprintf(&sb, "FeatureParameters{%s", p.origin)
	for _, k := range keys {
		fmt.Fprintf(&sb, ", %s=%s", k, snap[k])
	}
	sb.WriteString("}")
	return sb.String()
}
