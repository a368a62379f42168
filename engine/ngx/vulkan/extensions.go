package vulkan

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

// RequiredExtensions are the Vulkan extensions NGX needs enabled.
type RequiredExtensions struct {
	Instance []string
	Device   []string
}

// GetRequiredExtensions asks the SDK which extensions it needs. It can be
// called before NGX is initialised.
func GetRequiredExtensions() (*RequiredExtensions, error) {
	instance, device, err := requiredExtensions()
	if err != nil {
		err = fmt.Errorf("failed to get the NGX required extensions: %w", err)
		core.LogError(err.Error())
		return nil, err
	}
	return &RequiredExtensions{Instance: instance, Device: device}, nil
}

// InstanceExtensionNames returns NUL terminated names, ready for
// vk.InstanceCreateInfo.
func (r *RequiredExtensions) InstanceExtensionNames() ([]string, error) {
	return safeStrings(r.Instance)
}

// DeviceExtensionNames returns NUL terminated names, ready for
// vk.DeviceCreateInfo.
func (r *RequiredExtensions) DeviceExtensionNames() ([]string, error) {
	return safeStrings(r.Device)
}

func safeString(s string) (string, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return "", sys.NewOtherError(sys.ErrInvalidString, "couldn't convert %q to a C string", s)
	}
	return s + "\x00", nil
}

func safeStrings(list []string) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, s := range list {
		cs, err := safeString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, nil
}
