package directx

import (
	"github.com/go-ole/go-ole"

	"github.com/spaghettifunk/nvngx/engine/ngx"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

// SuperSamplingEvaluationParameters assembles
// NVSDK_NGX_D3D12_DLSS_Eval_Params. It holds a COM reference on every
// resource it is given until the resource is replaced or Release is called.
type SuperSamplingEvaluationParameters struct {
	params sys.DLSSEvalParams[Resource]
	inputs ngx.EvaluationInputs
}

var _ ngx.SuperSamplingEvaluator[*ole.IUnknown, Resource] = (*SuperSamplingEvaluationParameters)(nil)

func NewSuperSamplingEvaluationParameters() *SuperSamplingEvaluationParameters {
	return &SuperSamplingEvaluationParameters{}
}

func (e *SuperSamplingEvaluationParameters) set(slot *Resource, r Resource, input ngx.EvaluationInputs) {
	if retain(slot, r) {
		e.inputs |= input
		return
	}
	e.inputs &^= input
}

func (e *SuperSamplingEvaluationParameters) SetColorInput(r Resource) {
	e.set(&e.params.InColor, r, ngx.InputColor)
}

func (e *SuperSamplingEvaluationParameters) SetColorOutput(r Resource) {
	e.set(&e.params.InOutput, r, ngx.InputOutput)
}

func (e *SuperSamplingEvaluationParameters) SetDepthBuffer(r Resource) {
	e.set(&e.params.InDepth, r, ngx.InputDepth)
}

func (e *SuperSamplingEvaluationParameters) SetMotionVectors(r Resource, scale *[2]float32) {
	e.set(&e.params.InMotionVectors, r, ngx.InputMotionVectors)
	e.params.SetMotionVectorScale(scale)
}

func (e *SuperSamplingEvaluationParameters) SetJitterOffsets(x, y float32) {
	e.params.SetJitterOffsets(x, y)
}

func (e *SuperSamplingEvaluationParameters) SetReset(reset bool) {
	e.params.SetReset(reset)
}

func (e *SuperSamplingEvaluationParameters) SetRenderingDimensions(offset, size [2]uint32) {
	e.params.SetRenderSubrect(offset, size)
}

func (e *SuperSamplingEvaluationParameters) SetInputs() ngx.EvaluationInputs {
	return e.inputs
}

func (e *SuperSamplingEvaluationParameters) Native() *sys.DLSSEvalParams[Resource] {
	return &e.params
}

func (e *SuperSamplingEvaluationParameters) Evaluate(cmd *ole.IUnknown, handle sys.Handle, params sys.Parameter) error {
	return evaluateDLSS(cmd, handle, params, &e.params)
}

// Release drops every COM reference held.
func (e *SuperSamplingEvaluationParameters) Release() {
	for _, slot := range []*Resource{
		&e.params.InColor,
		&e.params.InOutput,
		&e.params.InDepth,
		&e.params.InMotionVectors,
		&e.params.InTransparencyMask,
		&e.params.InExposureTexture,
		&e.params.InBiasCurrentColorMask,
	} {
		retain(slot, nil)
	}
	e.inputs = 0
}
