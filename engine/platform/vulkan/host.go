package vulkan

import (
	"fmt"
	"strings"
	"sync"
	"time"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/nvngx/engine/core"
)

const validationLayer = "VK_LAYER_KHRONOS_validation"

var (
	loaderOnce sync.Once
	loaderErr  error
)

func initLoader() error {
	loaderOnce.Do(func() {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			loaderErr = fmt.Errorf("failed to load Vulkan library: %w", err)
			return
		}
		if err := vk.Init(); err != nil {
			loaderErr = fmt.Errorf("failed to initialize Vulkan loader: %w", err)
		}
	})
	return loaderErr
}

type HostConfig struct {
	ApplicationName string
	// Extensions to enable on top of what the host needs itself.
	InstanceExtensions []string
	DeviceExtensions   []string
	DiscreteGPU        bool
	Validation         bool
	// FenceTimeout bounds Submit; zero waits forever.
	FenceTimeout time.Duration
}

// Host is a windowless Vulkan instance and logical device with a single
// graphics queue. Submissions reuse one command buffer and one fence.
type Host struct {
	context *VulkanContext
	timeout uint64
	mutex   sync.Mutex
	closed  bool

	cmd   *VulkanCommandBuffer
	fence *VulkanFence
	// Fences whose wait timed out. The GPU may still signal them, so they
	// are destroyed after the device is idle.
	abandoned []*VulkanFence
}

func NewHost(cfg HostConfig) (*Host, error) {
	if err := initLoader(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	context := &VulkanContext{}
	if err := createInstance(context, &cfg); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	requirements := &VulkanPhysicalDeviceRequirements{
		DiscreteGPU:          cfg.DiscreteGPU,
		DeviceExtensionNames: cfg.DeviceExtensions,
	}
	if err := SelectPhysicalDevice(context, requirements); err != nil {
		core.LogError(err.Error())
		destroyInstance(context)
		return nil, err
	}
	if err := DeviceCreate(context, cfg.DeviceExtensions); err != nil {
		DeviceDestroy(context)
		destroyInstance(context)
		return nil, err
	}

	h := &Host{
		context: context,
		timeout: ^uint64(0),
	}
	if cfg.FenceTimeout > 0 {
		h.timeout = uint64(cfg.FenceTimeout.Nanoseconds())
	}
	return h, nil
}

func createInstance(context *VulkanContext, cfg *HostConfig) error {
	appName := cfg.ApplicationName
	if appName == "" {
		appName = "nvngx"
	}
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 2, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("nvngx"),
	}

	extensions := mergeExtensions(nil, cfg.InstanceExtensions...)
	core.LogDebug("Required instance extensions: %s", strings.Join(extensions, ", "))

	var layers []string
	if cfg.Validation {
		available, err := instanceLayerNames()
		if err != nil {
			return err
		}
		if missing := MissingExtensions([]string{validationLayer}, available); len(missing) > 0 {
			return fmt.Errorf("required validation layer is missing: %s", validationLayer)
		}
		layers = []string{validationLayer}
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: VulkanSafeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     VulkanSafeStrings(layers),
	}

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, context.Allocator, &instance); res != vk.Success {
		return fmt.Errorf("failed in creating the Vulkan Instance with error `%s`", VulkanResultString(res, true))
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, context.Allocator)
		return err
	}
	context.Instance = instance
	context.InstanceExtensions = extensions
	core.LogInfo("Vulkan Instance created.")
	return nil
}

func instanceLayerNames() ([]string, error) {
	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
		return nil, fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res, true))
	}
	layers := make([]vk.LayerProperties, count)
	if res := vk.EnumerateInstanceLayerProperties(&count, layers); res != vk.Success {
		return nil, fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res, true))
	}
	names := make([]string, 0, count)
	for i := range layers[:count] {
		layers[i].Deref()
		names = append(names, vk.ToString(layers[i].LayerName[:]))
	}
	return names, nil
}

func destroyInstance(context *VulkanContext) {
	if context.Instance != nil {
		vk.DestroyInstance(context.Instance, context.Allocator)
		context.Instance = nil
	}
}

func (h *Host) Context() *VulkanContext {
	return h.context
}

func (h *Host) Instance() vk.Instance {
	return h.context.Instance
}

func (h *Host) PhysicalDevice() vk.PhysicalDevice {
	return h.context.Device.PhysicalDevice
}

func (h *Host) Device() vk.Device {
	return h.context.Device.LogicalDevice
}

func (h *Host) DeviceName() string {
	return h.context.Device.Name()
}

// Submit records into the host command buffer, submits it and waits for
// the GPU to finish. Submissions are serialised. When the wait times out
// the buffer and fence are left to the GPU and replaced on the next call.
func (h *Host) Submit(record func(cmd vk.CommandBuffer) error) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		return fmt.Errorf("vulkan host is shut down")
	}

	device := h.context.Device
	if h.cmd == nil {
		cb, err := NewVulkanCommandBuffer(h.context, device.CommandPool)
		if err != nil {
			return err
		}
		h.cmd = cb
	}
	if h.fence == nil {
		fence, err := NewFence(h.context, false)
		if err != nil {
			return err
		}
		h.fence = fence
	}

	if err := h.fence.FenceReset(h.context); err != nil {
		return err
	}
	if err := h.cmd.Reset(h.context); err != nil {
		return err
	}
	if err := h.cmd.Begin(true, false); err != nil {
		return err
	}
	if err := record(h.cmd.Handle); err != nil {
		return err
	}
	if err := h.cmd.End(); err != nil {
		return err
	}
	if err := h.cmd.Submit(device.Queue, h.fence); err != nil {
		return err
	}
	if err := h.fence.FenceWait(h.context, h.timeout); err != nil {
		h.abandon()
		return err
	}
	return nil
}

// abandon gives up the in-flight command buffer and fence. The buffer goes
// back with the pool when the device is destroyed.
func (h *Host) abandon() {
	h.abandoned = append(h.abandoned, h.fence)
	h.fence = nil
	h.cmd = nil
}

// NewScratchBuffer allocates device local storage of size bytes.
func (h *Host) NewScratchBuffer(size uint64) (*VulkanBuffer, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		return nil, fmt.Errorf("vulkan host is shut down")
	}
	return NewBuffer(h.context, size, vk.BufferUsageStorageBufferBit, vk.MemoryPropertyDeviceLocalBit)
}

func (h *Host) DestroyBuffer(buffer *VulkanBuffer) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		return
	}
	buffer.Destroy(h.context)
}

// Shutdown destroys the device and the instance. Anything created on the
// device must be released first.
func (h *Host) Shutdown() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	if h.context.Device != nil && h.context.Device.LogicalDevice != nil {
		vk.DeviceWaitIdle(h.context.Device.LogicalDevice)
		if h.cmd != nil {
			h.cmd.Free(h.context, h.context.Device.CommandPool)
			h.cmd = nil
		}
		if h.fence != nil {
			h.fence.FenceDestroy(h.context)
			h.fence = nil
		}
		for _, fence := range h.abandoned {
			fence.FenceDestroy(h.context)
		}
		h.abandoned = nil
	}
	DeviceDestroy(h.context)
	destroyInstance(h.context)
	core.LogInfo("Vulkan host shut down.")
}
