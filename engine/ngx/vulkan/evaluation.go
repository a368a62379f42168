package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/nvngx/engine/ngx"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

// SuperSamplingEvaluationParameters assembles NVSDK_NGX_VK_DLSS_Eval_Params.
// The resources live here and the struct points at them.
type SuperSamplingEvaluationParameters struct {
	inputColor    Resource
	outputColor   Resource
	depth         Resource
	motionVectors Resource
	inputs        ngx.EvaluationInputs

	params sys.DLSSEvalParams[*Resource]
}

var _ ngx.SuperSamplingEvaluator[vk.CommandBuffer, ImageResourceDescription] = (*SuperSamplingEvaluationParameters)(nil)

func NewSuperSamplingEvaluationParameters() *SuperSamplingEvaluationParameters {
	return &SuperSamplingEvaluationParameters{}
}

// SetColorInput sets the image to upscale.
func (e *SuperSamplingEvaluationParameters) SetColorInput(d ImageResourceDescription) {
	e.inputColor = d.Native()
	e.params.InColor = &e.inputColor
	e.inputs |= ngx.InputColor
}

// SetColorOutput sets the upscaled image. It has to be writable.
func (e *SuperSamplingEvaluationParameters) SetColorOutput(d ImageResourceDescription) {
	e.outputColor = d.Native()
	e.params.InOutput = &e.outputColor
	e.inputs |= ngx.InputOutput
}

func (e *SuperSamplingEvaluationParameters) SetDepthBuffer(d ImageResourceDescription) {
	e.depth = d.Native()
	e.params.InDepth = &e.depth
	e.inputs |= ngx.InputDepth
}

func (e *SuperSamplingEvaluationParameters) SetMotionVectors(d ImageResourceDescription, scale *[2]float32) {
	e.motionVectors = d.Native()
	e.params.InMotionVectors = &e.motionVectors
	e.params.SetMotionVectorScale(scale)
	e.inputs |= ngx.InputMotionVectors
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

// Native exposes the assembled struct.
func (e *SuperSamplingEvaluationParameters) Native() *sys.DLSSEvalParams[*Resource] {
	return &e.params
}

func (e *SuperSamplingEvaluationParameters) Evaluate(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter) error {
	return evaluateDLSS(cmd, handle, params, &e.params)
}

// Release is a no-op: Vulkan resources stay owned by the caller.
func (e *SuperSamplingEvaluationParameters) Release() {}

// RayReconstructionEvaluationParameters assembles
// NVSDK_NGX_VK_DLSSD_Eval_Params.
type RayReconstructionEvaluationParameters struct {
	inputColor            Resource
	outputColor           Resource
	depth                 Resource
	motionVectors         Resource
	diffuseAlbedo         Resource
	specularAlbedo        Resource
	normals               Resource
	roughness             Resource
	specularMotionVectors Resource
	transparencyOverlay   Resource
	inputs                ngx.EvaluationInputs

	params sys.DLSSDEvalParams[*Resource]
}

var _ ngx.RayReconstructionEvaluator[vk.CommandBuffer, ImageResourceDescription] = (*RayReconstructionEvaluationParameters)(nil)

func NewRayReconstructionEvaluationParameters() *RayReconstructionEvaluationParameters {
	return &RayReconstructionEvaluationParameters{}
}

func (e *RayReconstructionEvaluationParameters) SetColorInput(d ImageResourceDescription) {
	e.inputColor = d.Native()
	e.params.InColor = &e.inputColor
	e.inputs |= ngx.InputColor
}

func (e *RayReconstructionEvaluationParameters) SetColorOutput(d ImageResourceDescription) {
	e.outputColor = d.Native()
	e.params.InOutput = &e.outputColor
	e.inputs |= ngx.InputOutput
}

func (e *RayReconstructionEvaluationParameters) SetDepthBuffer(d ImageResourceDescription) {
	e.depth = d.Native()
	e.params.InDepth = &e.depth
	e.inputs |= ngx.InputDepth
}

func (e *RayReconstructionEvaluationParameters) SetMotionVectors(d ImageResourceDescription, scale *[2]float32) {
	e.motionVectors = d.Native()
	e.params.InMotionVectors = &e.motionVectors
	e.params.SetMotionVectorScale(scale)
	e.inputs |= ngx.InputMotionVectors
}

// SetDiffuseAlbedo sets the diffuse component of the reflectance material,
// any 3-channel format at input resolution.
func (e *RayReconstructionEvaluationParameters) SetDiffuseAlbedo(d ImageResourceDescription) {
	e.diffuseAlbedo = d.Native()
	e.params.InDiffuseAlbedo = &e.diffuseAlbedo
	e.inputs |= ngx.InputDiffuseAlbedo
}

func (e *RayReconstructionEvaluationParameters) SetSpecularAlbedo(d ImageResourceDescription) {
	e.specularAlbedo = d.Native()
	e.params.InSpecularAlbedo = &e.specularAlbedo
	e.inputs |= ngx.InputSpecularAlbedo
}

// SetNormals expects world space normals. With packed roughness the
// alpha channel carries the roughness.
func (e *RayReconstructionEvaluationParameters) SetNormals(d ImageResourceDescription) {
	e.normals = d.Native()
	e.params.InNormals = &e.normals
	e.inputs |= ngx.InputNormals
}

func (e *RayReconstructionEvaluationParameters) SetRoughness(d ImageResourceDescription) {
	e.roughness = d.Native()
	e.params.InRoughness = &e.roughness
	e.inputs |= ngx.InputRoughness
}

func (e *RayReconstructionEvaluationParameters) SetSpecularMotionVectors(d ImageResourceDescription) {
	e.specularMotionVectors = d.Native()
	e.params.InSpecularMotionVectors = &e.specularMotionVectors
}

func (e *RayReconstructionEvaluationParameters) SetTransparencyOverlay(d ImageResourceDescription) {
	e.transparencyOverlay = d.Native()
	e.params.InTransparencyMask = &e.transparencyOverlay
}

func (e *RayReconstructionEvaluationParameters) SetJitterOffsets(x, y float32) {
	e.params.SetJitterOffsets(x, y)
}

func (e *RayReconstructionEvaluationParameters) SetReset(reset bool) {
	e.params.SetReset(reset)
}

func (e *RayReconstructionEvaluationParameters) SetRenderingDimensions(offset, size [2]uint32) {
	e.params.SetRenderSubrect(offset, size)
}

func (e *RayReconstructionEvaluationParameters) SetInputs() ngx.EvaluationInputs {
	return e.inputs
}

func (e *RayReconstructionEvaluationParameters) Native() *sys.DLSSDEvalParams[*Resource] {
	return &e.params
}

func (e *RayReconstructionEvaluationParameters) Evaluate(cmd vk.CommandBuffer, handle sys.Handle, params sys.Parameter) error {
	return evaluateDLSSD(cmd, handle, params, &e.params)
}

func (e *RayReconstructionEvaluationParameters) Release() {}
