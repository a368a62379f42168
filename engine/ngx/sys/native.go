package sys

import (
	"strings"

	"github.com/spaghettifunk/nvngx/engine/core"
)

// DLSSOptimalSizes is the output of NGX_DLSS_GET_OPTIMAL_SETTINGS. The
// sharpness output is deprecated and dropped.
type DLSSOptimalSizes struct {
	Width     uint32
	Height    uint32
	MaxWidth  uint32
	MaxHeight uint32
	MinWidth  uint32
	MinHeight uint32
}

// ParameterStore reads and writes native parameter maps. It is shared by
// both backends; the implementation is picked by the ngx build tag.
type ParameterStore struct{}

// checkName rejects names that cannot become C strings.
func checkName(name string) error {
	if strings.IndexByte(name, 0) >= 0 {
		return NewOtherError(ErrInvalidString, "parameter name %q contains a NUL byte", name)
	}
	return nil
}

// ForwardLog routes a message emitted by the SDK into the process logger.
func ForwardLog(message string, level LoggingLevel, source Feature) {
	message = strings.TrimRight(message, "\r\n")
	if level == LoggingLevelVerbose {
		core.LogDebug("[%s] %s", source, message)
		return
	}
	core.LogInfo("[%s] %s", source, message)
}
