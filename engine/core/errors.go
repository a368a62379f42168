package core

import (
	"errors"
)

var (
	ErrNotInstalled   = errors.New("built without the NGX SDK, rebuild with -tags ngx")
	ErrUnknownBackend = errors.New("unknown backend")
)
