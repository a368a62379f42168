package directx

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/go-ole/go-ole"
	"github.com/google/uuid"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

type SystemConfig struct {
	// ProjectID is generated when nil.
	ProjectID           uuid.UUID
	EngineType          sys.EngineType
	EngineVersion       string
	ApplicationDataPath string
	LoggingLevel        sys.LoggingLevel

	// Device is the ID3D12Device.
	Device *ole.IUnknown
}

// System is an initialised NGX instance bound to one D3D12 device. It
// holds a reference on the device until Shutdown.
type System struct {
	platform  Platform
	device    *ole.IUnknown
	projectID uuid.UUID
	shutdown  atomic.Bool
}

func NewSystem(cfg SystemConfig) (*System, error) {
	if cfg.Device == nil {
		err := fmt.Errorf("a D3D12 device is required to initialise NGX")
		core.LogError(err.Error())
		return nil, err
	}
	if cfg.ProjectID == uuid.Nil {
		cfg.ProjectID = uuid.New()
	}
	for _, s := range []string{cfg.EngineVersion, cfg.ApplicationDataPath} {
		if strings.IndexByte(s, 0) >= 0 {
			err := sys.NewOtherError(sys.ErrInvalidString, "couldn't convert %q to a C string", s)
			core.LogError(err.Error())
			return nil, err
		}
	}

	if err := initNGX(&cfg); err != nil {
		err = fmt.Errorf("failed to initialise NGX for Direct3D 12: %w", err)
		core.LogError(err.Error())
		return nil, err
	}
	cfg.Device.AddRef()
	core.LogInfo("NGX initialised (project %s, engine version %s)", cfg.ProjectID, cfg.EngineVersion)

	return &System{
		device:    cfg.Device,
		projectID: cfg.ProjectID,
	}, nil
}

func (s *System) Platform() Platform {
	return s.platform
}

func (s *System) ProjectID() uuid.UUID {
	return s.projectID
}

// Shutdown tears NGX down and drops the device reference. Only the first
// call does anything.
func (s *System) Shutdown() {
	if s.shutdown.Swap(true) {
		return
	}
	if err := shutdownNGX(s.device); err != nil {
		core.LogError("couldn't shutdown the NGX system: %s", err)
	}
	s.device.Release()
}

func (s *System) NewParameters() (*ngx.FeatureParameters, error) {
	return ngx.NewFeatureParameters(s.platform)
}

func (s *System) GetCapabilityParameters() (*ngx.FeatureParameters, error) {
	return ngx.GetCapabilityParameters(s.platform)
}

func (s *System) SupportsSuperSampling() error {
	params, err := s.GetCapabilityParameters()
	if err != nil {
		return err
	}
	defer params.Release()
	return params.SupportsSuperSampling()
}

// SupportsRayReconstruction checks the capability map first, then reports
// FAIL_NotImplemented since the feature cannot be created on Direct3D 12.
func (s *System) SupportsRayReconstruction() error {
	params, err := s.GetCapabilityParameters()
	if err != nil {
		return err
	}
	defer params.Release()
	if err := params.SupportsRayReconstruction(); err != nil {
		return err
	}
	return errRayReconstructionNotImplemented()
}

// CreateFeature creates a feature recorded into the command list cmd. A
// nil params creates it from a capability map, as every Create* does.
func (s *System) CreateFeature(cmd *ole.IUnknown, featureType sys.Feature, params *ngx.FeatureParameters) (*Feature, error) {
	params, err := s.parameters(params)
	if err != nil {
		return nil, err
	}
	return ngx.NewFeature[*ole.IUnknown, *ole.IUnknown](s.platform, s.device, cmd, featureType, params)
}

func (s *System) parameters(params *ngx.FeatureParameters) (*ngx.FeatureParameters, error) {
	if params != nil {
		return params, nil
	}
	return s.GetCapabilityParameters()
}

func (s *System) CreateSuperSamplingFeature(cmd *ole.IUnknown, params *ngx.FeatureParameters, create *ngx.SuperSamplingCreateParameters) (*SuperSamplingFeature, error) {
	params, err := s.parameters(params)
	if err != nil {
		return nil, err
	}
	return ngx.NewSuperSamplingFeature[*ole.IUnknown, *ole.IUnknown, Resource](
		s.platform, s.device, cmd, params, create, NewSuperSamplingEvaluationParameters())
}

func (s *System) CreateFrameGenerationFeature(cmd *ole.IUnknown, params *ngx.FeatureParameters) (*Feature, error) {
	params, err := s.parameters(params)
	if err != nil {
		return nil, err
	}
	return ngx.NewFrameGenerationFeature[*ole.IUnknown, *ole.IUnknown](s.platform, s.device, cmd, params)
}

// CreateRayReconstructionFeature is not available on Direct3D 12. It
// releases params, if any, and reports FAIL_NotImplemented.
func (s *System) CreateRayReconstructionFeature(cmd *ole.IUnknown, params *ngx.FeatureParameters, create *ngx.RayReconstructionCreateParameters) error {
	var ptr sys.Parameter
	if params != nil {
		ptr = params.Ptr()
		defer params.Release()
	}
	var native *sys.DLSSDCreateParams
	if create != nil {
		native = create.Native()
	}
	_, err := s.platform.CreateRayReconstructionFeature(s.device, cmd, ptr, native)
	core.LogError(err.Error())
	return err
}
