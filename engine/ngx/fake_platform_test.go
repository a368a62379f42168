package ngx

import (
	"unsafe"

	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

type fakeDevice struct{}

type fakeCmd struct {
	recorded int
}

type fakeResource struct {
	name string
}

// fakePlatform keeps every parameter map in memory and counts native calls.
type fakePlatform struct {
	maps       map[sys.Parameter]map[string]any
	capability map[string]any

	createErr        error
	releaseHandleErr error
	releaseParamsErr error
	optimal          SuperSamplingOptimalSettings

	handles        map[sys.Handle]bool
	handleReleases int
	paramReleases  int
	creates        int
	evaluates      int
	reads          []string

	lastDLSS  *sys.DLSSCreateParams
	lastDLSSD *sys.DLSSDCreateParams
}

var _ Platform[fakeDevice, *fakeCmd] = (*fakePlatform)(nil)

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		maps:       map[sys.Parameter]map[string]any{},
		capability: map[string]any{},
		handles:    map[sys.Handle]bool{},
	}
}

func (f *fakePlatform) ReleaseHandle(handle sys.Handle) error {
	f.handleReleases++
	if f.releaseHandleErr != nil {
		return f.releaseHandleErr
	}
	delete(f.handles, handle)
	return nil
}

func (f *fakePlatform) set(params sys.Parameter, name string, value any) error {
	m, ok := f.maps[params]
	if !ok {
		return sys.ResultFailInvalidParameter.Err("NVSDK_NGX_Parameter_Set")
	}
	m[name] = value
	return nil
}

func get[T any](f *fakePlatform, params sys.Parameter, name string) (T, error) {
	var zero T
	f.reads = append(f.reads, name)
	m, ok := f.maps[params]
	if !ok {
		return zero, sys.ResultFailInvalidParameter.Err("NVSDK_NGX_Parameter_Get")
	}
	v, ok := m[name].(T)
	if !ok {
		return zero, sys.ResultFailUnsupportedParameter.Err("NVSDK_NGX_Parameter_Get")
	}
	return v, nil
}

func (f *fakePlatform) SetI32(p sys.Parameter, n string, v int32) error { return f.set(p, n, v) }
func (f *fakePlatform) GetI32(p sys.Parameter, n string) (int32, error) {
	return get[int32](f, p, n)
}
func (f *fakePlatform) SetU32(p sys.Parameter, n string, v uint32) error { return f.set(p, n, v) }
func (f *fakePlatform) GetU32(p sys.Parameter, n string) (uint32, error) {
	return get[uint32](f, p, n)
}
func (f *fakePlatform) SetU64(p sys.Parameter, n string, v uint64) error { return f.set(p, n, v) }
func (f *fakePlatform) GetU64(p sys.Parameter, n string) (uint64, error) {
	return get[uint64](f, p, n)
}
func (f *fakePlatform) SetF32(p sys.Parameter, n string, v float32) error { return f.set(p, n, v) }
func (f *fakePlatform) GetF32(p sys.Parameter, n string) (float32, error) {
	return get[float32](f, p, n)
}
func (f *fakePlatform) SetF64(p sys.Parameter, n string, v float64) error { return f.set(p, n, v) }
func (f *fakePlatform) GetF64(p sys.Parameter, n string) (float64, error) {
	return get[float64](f, p, n)
}
func (f *fakePlatform) SetPointer(p sys.Parameter, n string, v unsafe.Pointer) error {
	return f.set(p, n, v)
}
func (f *fakePlatform) GetPointer(p sys.Parameter, n string) (unsafe.Pointer, error) {
	return get[unsafe.Pointer](f, p, n)
}

func (f *fakePlatform) CreateParameters() (sys.Parameter, error) {
	p := sys.Parameter(unsafe.Pointer(new(int)))
	f.maps[p] = map[string]any{}
	return p, nil
}

func (f *fakePlatform) GetCapabilityParameters() (sys.Parameter, error) {
	p, _ := f.CreateParameters()
	for k, v := range f.capability {
		f.maps[p][k] = v
	}
	return p, nil
}

func (f *fakePlatform) ReleaseParameters(params sys.Parameter) error {
	f.paramReleases++
	if f.releaseParamsErr != nil {
		return f.releaseParamsErr
	}
	delete(f.maps, params)
	return nil
}

func (f *fakePlatform) GetDLSSOptimalSettings(params sys.Parameter, targetWidth, targetHeight uint32, quality sys.PerfQuality) (SuperSamplingOptimalSettings, error) {
	if _, ok := f.maps[params]; !ok {
		return SuperSamplingOptimalSettings{}, sys.ResultFailInvalidParameter.Err("NGX_DLSS_GET_OPTIMAL_SETTINGS")
	}
	return f.optimal, nil
}

func (f *fakePlatform) newHandle() (sys.Handle, error) {
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	h := sys.Handle(unsafe.Pointer(new(int)))
	f.handles[h] = true
	return h, nil
}

func (f *fakePlatform) CreateFeature(device fakeDevice, cmd *fakeCmd, feature sys.Feature, params sys.Parameter) (sys.Handle, error) {
	return f.newHandle()
}

func (f *fakePlatform) CreateSuperSamplingFeature(device fakeDevice, cmd *fakeCmd, params sys.Parameter, create *sys.DLSSCreateParams) (sys.Handle, error) {
	f.lastDLSS = create
	return f.newHandle()
}

func (f *fakePlatform) CreateRayReconstructionFeature(device fakeDevice, cmd *fakeCmd, params sys.Parameter, create *sys.DLSSDCreateParams) (sys.Handle, error) {
	f.lastDLSSD = create
	return f.newHandle()
}

func (f *fakePlatform) GetScratchBufferSize(feature sys.Feature, params sys.Parameter) (uint64, error) {
	return 4096, nil
}

func (f *fakePlatform) EvaluateFeature(cmd *fakeCmd, handle sys.Handle, params sys.Parameter) error {
	f.evaluates++
	cmd.recorded++
	return nil
}

// fakeEvaluator records what was set, the way the backend evaluators do.
type fakeEvaluator struct {
	platform *fakePlatform
	eval     sys.DLSSDEvalParams[*fakeResource]
	inputs   EvaluationInputs
	released int
}

func (e *fakeEvaluator) set(input EvaluationInputs, slot **fakeResource, r *fakeResource) {
	*slot = r
	if r == nil {
		e.inputs &^= input
		return
	}
	e.inputs |= input
}

func (e *fakeEvaluator) SetColorInput(r *fakeResource)  { e.set(InputColor, &e.eval.InColor, r) }
func (e *fakeEvaluator) SetColorOutput(r *fakeResource) { e.set(InputOutput, &e.eval.InOutput, r) }
func (e *fakeEvaluator) SetDepthBuffer(r *fakeResource) { e.set(InputDepth, &e.eval.InDepth, r) }
func (e *fakeEvaluator) SetMotionVectors(r *fakeResource, scale *[2]float32) {
	e.set(InputMotionVectors, &e.eval.InMotionVectors, r)
	e.eval.SetMotionVectorScale(scale)
}
func (e *fakeEvaluator) SetJitterOffsets(x, y float32) { e.eval.SetJitterOffsets(x, y) }
func (e *fakeEvaluator) SetReset(reset bool)           { e.eval.SetReset(reset) }
func (e *fakeEvaluator) SetRenderingDimensions(offset, size [2]uint32) {
	e.eval.SetRenderSubrect(offset, size)
}
func (e *fakeEvaluator) SetDiffuseAlbedo(r *fakeResource) {
	e.set(InputDiffuseAlbedo, &e.eval.InDiffuseAlbedo, r)
}
func (e *fakeEvaluator) SetSpecularAlbedo(r *fakeResource) {
	e.set(InputSpecularAlbedo, &e.eval.InSpecularAlbedo, r)
}
func (e *fakeEvaluator) SetNormals(r *fakeResource)   { e.set(InputNormals, &e.eval.InNormals, r) }
func (e *fakeEvaluator) SetRoughness(r *fakeResource) { e.set(InputRoughness, &e.eval.InRoughness, r) }
func (e *fakeEvaluator) SetSpecularMotionVectors(r *fakeResource) {
	e.eval.InSpecularMotionVectors = r
}
func (e *fakeEvaluator) SetTransparencyOverlay(r *fakeResource) {
	e.eval.InTransparencyMask = r
}
func (e *fakeEvaluator) SetInputs() EvaluationInputs { return e.inputs }

func (e *fakeEvaluator) Evaluate(cmd *fakeCmd, handle sys.Handle, params sys.Parameter) error {
	return e.platform.EvaluateFeature(cmd, handle, params)
}

func (e *fakeEvaluator) Release() { e.released++ }
