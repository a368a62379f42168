package vulkan

import (
	vk "github.com/goki/vulkan"
)

type ResourceMode int

const (
	ResourceReadable ResourceMode = iota
	ResourceWritable
)

func (m ResourceMode) String() string {
	if m == ResourceWritable {
		return "writable"
	}
	return "readable"
}

// ResourceType mirrors NVSDK_NGX_Resource_VK_Type.
type ResourceType int32

const (
	ResourceTypeImageView ResourceType = 0
	ResourceTypeBuffer    ResourceType = 1
)

// ImageViewInfo mirrors NVSDK_NGX_ImageViewInfo_VK.
type ImageViewInfo struct {
	ImageView        vk.ImageView
	Image            vk.Image
	SubresourceRange vk.ImageSubresourceRange
	Format           vk.Format
	Width            uint32
	Height           uint32
}

// BufferInfo mirrors NVSDK_NGX_BufferInfo_VK.
type BufferInfo struct {
	Buffer      vk.Buffer
	SizeInBytes uint32
}

// Resource mirrors NVSDK_NGX_Resource_VK. Only the member selected by Type
// is copied into the native union.
type Resource struct {
	ImageViewInfo ImageViewInfo
	BufferInfo    BufferInfo
	Type          ResourceType
	ReadWrite     bool
}

// ImageResourceDescription is an image handed to an evaluation.
type ImageResourceDescription struct {
	ImageView        vk.ImageView
	Image            vk.Image
	SubresourceRange vk.ImageSubresourceRange
	Format           vk.Format
	Width            uint32
	Height           uint32
	Mode             ResourceMode
}

func (d *ImageResourceDescription) SetWritable() {
	d.Mode = ResourceWritable
}

// Native converts the description into the SDK resource.
func (d ImageResourceDescription) Native() Resource {
	return Resource{
		ImageViewInfo: ImageViewInfo{
			ImageView: d.ImageView,
			Image:     d.Image,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     d.SubresourceRange.AspectMask,
				BaseMipLevel:   d.SubresourceRange.BaseMipLevel,
				LevelCount:     d.SubresourceRange.LevelCount,
				BaseArrayLayer: d.SubresourceRange.BaseArrayLayer,
				LayerCount:     d.SubresourceRange.LayerCount,
			},
			Format: d.Format,
			Width:  d.Width,
			Height: d.Height,
		},
		Type:      ResourceTypeImageView,
		ReadWrite: d.Mode == ResourceWritable,
	}
}

// BufferResourceDescription is a buffer handed to an evaluation.
type BufferResourceDescription struct {
	Buffer      vk.Buffer
	SizeInBytes uint32
	Mode        ResourceMode
}

func (d *BufferResourceDescription) SetWritable() {
	d.Mode = ResourceWritable
}

func (d BufferResourceDescription) Native() Resource {
	return Resource{
		BufferInfo: BufferInfo{
			Buffer:      d.Buffer,
			SizeInBytes: d.SizeInBytes,
		},
		Type:      ResourceTypeBuffer,
		ReadWrite: d.Mode == ResourceWritable,
	}
}
