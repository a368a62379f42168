package vulkan

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	vk "github.com/goki/vulkan"
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

	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	Device         vk.Device

	// Loader entry points; NGX resolves them itself when nil.
	GetInstanceProcAddr unsafe.Pointer
	GetDeviceProcAddr   unsafe.Pointer
}

// System is an initialised NGX instance bound to one logical device.
type System struct {
	platform  Platform
	device    vk.Device
	projectID uuid.UUID
	shutdown  atomic.Bool
}

// NewSystem initialises NGX for the device in cfg.
func NewSystem(cfg SystemConfig) (*System, error) {
	if cfg.ProjectID == uuid.Nil {
		cfg.ProjectID = uuid.New()
	}
	for _, s := range []string{cfg.EngineVersion, cfg.ApplicationDataPath} {
		if _, err := safeString(s); err != nil {
			core.LogError(err.Error())
			return nil, err
		}
	}

	if err := initNGX(&cfg); err != nil {
		err = fmt.Errorf("failed to initialise NGX for Vulkan: %w", err)
		core.LogError(err.Error())
		return nil, err
	}
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

// Shutdown tears NGX down for the device. Features and parameter maps must
// be released first. Only the first call does anything.
func (s *System) Shutdown() {
	if s.shutdown.Swap(true) {
		return
	}
	if err := shutdownNGX(s.device); err != nil {
		core.LogError("couldn't shutdown the NGX system: %s", err)
	}
}

func (s *System) NewParameters() (*ngx.FeatureParameters, error) {
	return ngx.NewFeatureParameters(s.platform)
}

func (s *System) GetCapabilityParameters() (*ngx.FeatureParameters, error) {
	return ngx.GetCapabilityParameters(s.platform)
}

// SupportsSuperSampling checks a fresh capability map.
func (s *System) SupportsSuperSampling() error {
	params, err := s.GetCapabilityParameters()
	if err != nil {
		return err
	}
	defer params.Release()
	return params.SupportsSuperSampling()
}

func (s *System) SupportsRayReconstruction() error {
	params, err := s.GetCapabilityParameters()
	if err != nil {
		return err
	}
	defer params.Release()
	return params.SupportsRayReconstruction()
}

// CreateFeature creates a feature on the system's device. A
// nil params creates it from a capability map, as every Create* does.
func (s *System) CreateFeature(cmd vk.CommandBuffer, featureType sys.Feature, params *ngx.FeatureParameters) (*Feature, error) {
	params, err := s.parameters(params)
	if err != nil {
		return nil, err
	}
	return ngx.NewFeature[vk.Device, vk.CommandBuffer](s.platform, s.device, cmd, featureType, params)
}

func (s *System) parameters(params *ngx.FeatureParameters) (*ngx.FeatureParameters, error) {
	if params != nil {
		return params, nil
	}
	return s.GetCapabilityParameters()
}

func (s *System) CreateSuperSamplingFeature(cmd vk.CommandBuffer, params *ngx.FeatureParameters, create *ngx.SuperSamplingCreateParameters) (*SuperSamplingFeature, error) {
	params, err := s.parameters(params)
	if err != nil {
		return nil, err
	}
	return ngx.NewSuperSamplingFeature[vk.Device, vk.CommandBuffer, ImageResourceDescription](
		s.platform, s.device, cmd, params, create, NewSuperSamplingEvaluationParameters())
}

func (s *System) CreateFrameGenerationFeature(cmd vk.CommandBuffer, params *ngx.FeatureParameters) (*Feature, error) {
	params, err := s.parameters(params)
	if err != nil {
		return nil, err
	}
	return ngx.NewFrameGenerationFeature[vk.Device, vk.CommandBuffer](s.platform, s.device, cmd, params)
}

func (s *System) CreateRayReconstructionFeature(cmd vk.CommandBuffer, params *ngx.FeatureParameters, create *ngx.RayReconstructionCreateParameters) (*RayReconstructionFeature, error) {
	params, err := s.parameters(params)
	if err != nil {
		return nil, err
	}
	return ngx.NewRayReconstructionFeature[vk.Device, vk.CommandBuffer, ImageResourceDescription](
		s.platform, s.device, cmd, params, create, NewRayReconstructionEvaluationParameters())
}
