package ngx

import (
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/nvngx/engine/core"
	"github.com/spaghettifunk/nvngx/engine/ngx/sys"
)

// FeatureHandle owns a native feature handle. It is shared between a
// Feature and every wrapper built on it; the native handle is released
// when the last owner lets go.
type FeatureHandle struct {
	ops  HandleOps
	refs atomic.Int32

	mutex sync.Mutex
	ptr   sys.Handle
}

func newFeatureHandle(ops HandleOps, ptr sys.Handle) *FeatureHandle {
	h := &FeatureHandle{ops: ops, ptr: ptr}
	h.refs.Store(1)
	return h
}

func (h *FeatureHandle) Ptr() sys.Handle {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.ptr
}

func (h *FeatureHandle) IsNull() bool {
	return h.Ptr() == nil
}

func (h *FeatureHandle) retain() *FeatureHandle {
	h.refs.Add(1)
	return h
}

// Release drops one reference. The last one releases the native handle;
// the pointer is cleared only if that succeeds, otherwise the reference
// is restored so a later Release retries. Releasing a null handle or
// releasing past zero is a no-op.
func (h *FeatureHandle) Release() error {
	if !dropRef(&h.refs) {
		return nil
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.ptr == nil {
		return nil
	}
	if err := h.ops.ReleaseHandle(h.ptr); err != nil {
		core.LogError("couldn't release the feature handle %p: %s", h.ptr, err)
		h.refs.Add(1)
		return err
	}
	h.ptr = nil
	return nil
}

// dropRef decrements refs and reports whether this was the last reference.
func dropRef(refs *atomic.Int32) bool {
	for {
		n := refs.Load()
		if n <= 0 {
			return false
		}
		if refs.CompareAndSwap(n, n-1) {
			return n == 1
		}
	}
}
