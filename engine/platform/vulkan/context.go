package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/nvngx/engine/core"
)

type VulkanContext struct {
	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks

	Device *VulkanDevice

	// Extensions enabled on the instance and on the logical device.
	InstanceExtensions []string
	DeviceExtensions   []string
}

func (vc *VulkanContext) FindMemoryIndex(typeFilter, propertyFlags uint32) int32 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vc.Device.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()
	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		memoryProperties.MemoryTypes[i].Deref()
	}

	index := memoryTypeIndex(&memoryProperties, typeFilter, propertyFlags)
	if index < 0 {
		core.LogWarn("Unable to find suitable memory type!")
	}
	return index
}

// memoryTypeIndex expects memoryProperties to be dereferenced already.
func memoryTypeIndex(memoryProperties *vk.PhysicalDeviceMemoryProperties, typeFilter, propertyFlags uint32) int32 {
	for i := uint32(0); i < memoryProperties.MemoryTypeCount && int(i) < len(memoryProperties.MemoryTypes); i++ {
		// Check each memory type to see if its bit is set to 1.
		if (typeFilter&(1<<i)) != 0 && (uint32(memoryProperties.MemoryTypes[i].PropertyFlags)&propertyFlags) == propertyFlags {
			return int32(i)
		}
	}
	return -1
}
