package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestMemoryTypeIndex(t *testing.T) {
	var props vk.PhysicalDeviceMemoryProperties
	props.MemoryTypeCount = 3
	props.MemoryTypes[0].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	props.MemoryTypes[1].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	props.MemoryTypes[2].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit)

	deviceLocal := uint32(vk.MemoryPropertyDeviceLocalBit)
	hostVisible := uint32(vk.MemoryPropertyHostVisibleBit)
	tests := []struct {
		name       string
		typeFilter uint32
		flags      uint32
		want       int32
	}{
		{"first device local", 0b111, deviceLocal, 1},
		{"filter skips type 1", 0b101, deviceLocal, 2},
		{"all bits required", 0b111, deviceLocal | hostVisible, 2},
		{"host visible", 0b111, hostVisible, 0},
		{"no allowed type", 0b000, deviceLocal, -1},
		{"beyond type count", 0b1000, 0, -1},
	}
	for _, tt := range tests {
		if have := memoryTypeIndex(&props, tt.typeFilter, tt.flags); have != tt.want {
			t.Errorf("%s: have %d, want %d", tt.name, have, tt.want)
		}
	}
}
