package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
	ngxvk "github.com/spaghettifunk/nvngx/engine/ngx/vulkan"
	host "github.com/spaghettifunk/nvngx/engine/platform/vulkan"
)

var (
	overrideWidth   uint32
	overrideHeight  uint32
	overrideQuality string

	enableValidation bool
	requireDiscrete  bool
)

type session struct {
	host   *host.Host
	system *ngxvk.System
}

func openSession(cfg *core.Config) (*session, error) {
	if cfg.Backend != core.BackendVulkan {
		return nil, fmt.Errorf("the probe drives the %s backend only, config asks for %s", core.BackendVulkan, cfg.Backend)
	}
	ngxLogging, err := sys.ParseLoggingLevel(cfg.NGXLogging)
	if err != nil {
		return nil, err
	}

	extensions, err := ngxvk.GetRequiredExtensions()
	if err != nil {
		return nil, err
	}
	h, err := host.NewHost(host.HostConfig{
		ApplicationName:    "nvngx-probe",
		InstanceExtensions: extensions.Instance,
		DeviceExtensions:   extensions.Device,
		DiscreteGPU:        requireDiscrete,
		Validation:         enableValidation,
		FenceTimeout:       10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.ApplicationDataPath, 0o755); err != nil {
		h.Shutdown()
		return nil, fmt.Errorf("failed to create application data path: %w", err)
	}
	system, err := ngxvk.NewSystem(ngxvk.SystemConfig{
		ProjectID:           cfg.ProjectUUID(),
		EngineType:          sys.EngineTypeCustom,
		EngineVersion:       cfg.EngineVersion,
		ApplicationDataPath: cfg.ApplicationDataPath,
		LoggingLevel:        ngxLogging,
		Instance:            h.Instance(),
		PhysicalDevice:      h.PhysicalDevice(),
		Device:              h.Device(),
	})
	if err != nil {
		h.Shutdown()
		return nil, err
	}
	core.LogInfo("probing '%s'", h.DeviceName())
	return &session{host: h, system: system}, nil
}

func (s *session) Close() {
	s.system.Shutdown()
	s.host.Shutdown()
}

func withSession(fn func(*session) error) error {
	s, err := openSession(config)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// supportLine renders the outcome of a Supports* check.
func supportLine(name string, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("%-20s available", name)
	case errors.Is(err, sys.ErrDriverUpdateRequired), errors.Is(err, sys.ErrNotSupported):
		return fmt.Sprintf("%-20s unavailable: %s", name, err)
	default:
		return fmt.Sprintf("%-20s unknown: %s", name, err)
	}
}

func printCapabilities(s *session) error {
	fmt.Println(supportLine("super sampling", s.system.SupportsSuperSampling()))
	fmt.Println(supportLine("ray reconstruction", s.system.SupportsRayReconstruction()))
	return nil
}

// formatSnapshot prints one key per line, sorted.
func formatSnapshot(snapshot map[string]string) string {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %s\n", k, snapshot[k])
	}
	return b.String()
}

func printParameters(s *session) error {
	params, err := s.system.GetCapabilityParameters()
	if err != nil {
		return err
	}
	defer params.Release()
	fmt.Print(formatSnapshot(params.Snapshot()))
	return nil
}

type superSamplingTarget struct {
	width, height uint32
	quality       sys.PerfQuality
	flags         sys.DLSSFeatureFlags
}

func resolveTarget(cfg core.SuperSamplingConfig, width, height uint32, quality string) (superSamplingTarget, error) {
	if width != 0 {
		cfg.TargetWidth = width
	}
	if height != 0 {
		cfg.TargetHeight = height
	}
	if quality != "" {
		cfg.Quality = quality
	}
	if cfg.TargetWidth == 0 || cfg.TargetHeight == 0 {
		return superSamplingTarget{}, fmt.Errorf("target size must be non-zero, got %dx%d", cfg.TargetWidth, cfg.TargetHeight)
	}
	q, err := sys.ParsePerfQuality(cfg.Quality)
	if err != nil {
		return superSamplingTarget{}, err
	}
	flags, err := sys.ParseDLSSFeatureFlags(cfg.Flags)
	if err != nil {
		return superSamplingTarget{}, err
	}
	return superSamplingTarget{width: cfg.TargetWidth, height: cfg.TargetHeight, quality: q, flags: flags}, nil
}

func optimalSettings(params *ngx.FeatureParameters, target superSamplingTarget) (ngx.SuperSamplingOptimalSettings, error) {
	if err := params.SupportsSuperSampling(); err != nil {
		return ngx.SuperSamplingOptimalSettings{}, err
	}
	return params.SuperSamplingOptimalSettings(target.width, target.height, target.quality)
}

func formatOptimalSettings(s ngx.SuperSamplingOptimalSettings) string {
	return fmt.Sprintf("target %dx%d (%s): render %dx%d, dynamic %dx%d .. %dx%d",
		s.TargetWidth, s.TargetHeight, s.Quality,
		s.RenderWidth, s.RenderHeight,
		s.DynamicMinRenderWidth, s.DynamicMinRenderHeight,
		s.DynamicMaxRenderWidth, s.DynamicMaxRenderHeight)
}

func printOptimalSettings(s *session) error {
	target, err := resolveTarget(config.SuperSampling, overrideWidth, overrideHeight, overrideQuality)
	if err != nil {
		return err
	}
	params, err := s.system.GetCapabilityParameters()
	if err != nil {
		return err
	}
	defer params.Release()

	settings, err := optimalSettings(params, target)
	if err != nil {
		return err
	}
	fmt.Println(formatOptimalSettings(settings))
	return nil
}

type submitFunc func(record func(cmd vk.CommandBuffer) error) error

// createInSubmission runs create inside one submission. create owns params
// once it runs; if the submission fails before that, params is released
// here. A feature whose submission failed afterwards is released too.
func createInSubmission[F interface{ Release() }](submit submitFunc, params *ngx.FeatureParameters, create func(cmd vk.CommandBuffer) (F, error)) (F, error) {
	var (
		feature F
		owned   bool
		created bool
	)
	err := submit(func(cmd vk.CommandBuffer) error {
		owned = true
		f, err := create(cmd)
		if err != nil {
			return err
		}
		feature, created = f, true
		return nil
	})
	if err != nil {
		if !owned {
			params.Release()
		}
		if created {
			feature.Release()
		}
		var zero F
		return zero, err
	}
	return feature, nil
}

func createSuperSampling(s *session, hold bool) error {
	target, err := resolveTarget(config.SuperSampling, 0, 0, "")
	if err != nil {
		return err
	}
	capabilities, err := s.system.GetCapabilityParameters()
	if err != nil {
		return err
	}
	settings, err := optimalSettings(capabilities, target)
	capabilities.Release()
	if err != nil {
		return err
	}

	params, err := s.system.NewParameters()
	if err != nil {
		return err
	}
	create := ngx.SuperSamplingCreateParametersFromSettings(settings, ngx.WithFeatureFlags(target.flags))

	clock := core.NewClock()
	clock.Start()
	feature, err := createInSubmission(s.host.Submit, params, func(cmd vk.CommandBuffer) (*ngxvk.SuperSamplingFeature, error) {
		return s.system.CreateSuperSamplingFeature(cmd, params, create)
	})
	clock.Update()
	clock.Stop()
	if err != nil {
		return err
	}
	defer feature.Release()

	scratch, err := feature.Inner().ScratchBufferSize()
	if err != nil {
		core.LogWarn("couldn't read the scratch buffer size: %s", err)
	}
	fmt.Printf("created %s in %s: render %v, target %v, scratch %d bytes, initialised %t\n",
		feature.Inner(), clock.Elapsed().Round(time.Microsecond), feature.RenderingResolution(), feature.TargetResolution(), scratch, feature.IsInitialised())

	if scratch > 0 {
		buffer, err := s.host.NewScratchBuffer(scratch)
		if err != nil {
			return err
		}
		defer s.host.DestroyBuffer(buffer)
		fmt.Printf("scratch buffer allocated from memory type %d\n", buffer.MemoryTypeIndex)
	}

	if hold {
		return holdUntilInterrupted()
	}
	return nil
}

// holdUntilInterrupted blocks until SIGINT/SIGTERM, re-applying the log
// level whenever the config file changes.
func holdUntilInterrupted() error {
	if cfgFile != "" {
		watcher, err := core.WatchConfig(cfgFile, func(cfg *core.Config) {
			if err := core.SetLogLevel(cfg.LogLevel); err != nil {
				core.LogWarn("ignoring log level %q: %s", cfg.LogLevel, err)
				return
			}
			core.LogInfo("log level set to %s", core.GetLogLevel())
		})
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)
	core.LogInfo("holding the feature, interrupt to release it")
	<-sigCh
	return nil
}
