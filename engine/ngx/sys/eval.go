package sys

// DLSSEvalParams mirrors the DLSS evaluation structs of both backends
// (NVSDK_NGX_VK_DLSS_Eval_Params, NVSDK_NGX_D3D12_DLSS_Eval_Params).
// R is the backend's resource reference; its zero value means "not set".
type DLSSEvalParams[R comparable] struct {
	InColor     R
	InOutput    R
	InSharpness float32

	InDepth                   R
	InMotionVectors           R
	InJitterOffsetX           float32
	InJitterOffsetY           float32
	InRenderSubrectDimensions Dimensions
	InReset                   int32
	InMVScaleX                float32
	InMVScaleY                float32
	InTransparencyMask        R
	InExposureTexture         R
	InBiasCurrentColorMask    R

	InColorSubrectBase            Coordinates
	InDepthSubrectBase            Coordinates
	InMVSubrectBase               Coordinates
	InTranslucencySubrectBase     Coordinates
	InBiasCurrentColorSubrectBase Coordinates
	InOutputSubrectBase           Coordinates
	InPreExposure                 float32
	InExposureScale               float32
	InIndicatorInvertXAxis        int32
	InIndicatorInvertYAxis        int32
}

// SetMotionVectorScale writes scale, or [1, 1] (pixel space) when nil.
func (p *DLSSEvalParams[R]) SetMotionVectorScale(scale *[2]float32) {
	x, y := motionVectorScale(scale)
	p.InMVScaleX = x
	p.InMVScaleY = y
}

func (p *DLSSEvalParams[R]) SetJitterOffsets(x, y float32) {
	p.InJitterOffsetX = x
	p.InJitterOffsetY = y
}

func (p *DLSSEvalParams[R]) SetReset(reset bool) {
	p.InReset = BoolToInt[int32](reset)
}

// SetRenderSubrect writes the same offset into the color, depth,
// translucency and motion-vector bases and the size into the render
// sub-rectangle. The output base is untouched.
func (p *DLSSEvalParams[R]) SetRenderSubrect(offset, size [2]uint32) {
	base := Coordinates{X: offset[0], Y: offset[1]}
	p.InColorSubrectBase = base
	p.InDepthSubrectBase = base
	p.InTranslucencySubrectBase = base
	p.InMVSubrectBase = base
	p.InRenderSubrectDimensions = Dimensions{Width: size[0], Height: size[1]}
}

// DLSSDEvalParams mirrors NVSDK_NGX_VK_DLSSD_Eval_Params (ray reconstruction).
type DLSSDEvalParams[R comparable] struct {
	InColor                 R
	InOutput                R
	InDepth                 R
	InMotionVectors         R
	InDiffuseAlbedo         R
	InSpecularAlbedo        R
	InNormals               R
	InRoughness             R
	InTransparencyMask      R
	InSpecularMotionVectors R

	InJitterOffsetX           float32
	InJitterOffsetY           float32
	InRenderSubrectDimensions Dimensions
	InReset                   int32
	InMVScaleX                float32
	InMVScaleY                float32

	InColorSubrectBase        Coordinates
	InDepthSubrectBase        Coordinates
	InMVSubrectBase           Coordinates
	InTranslucencySubrectBase Coordinates
	InOutputSubrectBase       Coordinates
	InPreExposure             float32
	InExposureScale           float32
}

func (p *DLSSDEvalParams[R]) SetMotionVectorScale(scale *[2]float32) {
	x, y := motionVectorScale(scale)
	p.InMVScaleX = x
	p.InMVScaleY = y
}

func (p *DLSSDEvalParams[R]) SetJitterOffsets(x, y float32) {
	p.InJitterOffsetX = x
	p.InJitterOffsetY = y
}

func (p *DLSSDEvalParams[R]) SetReset(reset bool) {
	p.InReset = BoolToInt[int32](reset)
}

func (p *DLSSDEvalParams[R]) SetRenderSubrect(offset, size [2]uint32) {
	base := Coordinates{X: offset[0], Y: offset[1]}
	p.InColorSubrectBase = base
	p.InDepthSubrectBase = base
	p.InTranslucencySubrectBase = base
	p.InMVSubrectBase = base
	p.InRenderSubrectDimensions = Dimensions{Width: size[0], Height: size[1]}
}

func motionVectorScale(scale *[2]float32) (float32, float32) {
	if scale == nil {
		return 1, 1
	}
	return scale[0], scale[1]
}
