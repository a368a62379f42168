package directx

import (
	"unsafe"

	"github.com/go-ole/go-ole"
)

// Resource is a reference counted D3D12 object, normally an
// ID3D12Resource obtained as *ole.IUnknown.
type Resource interface {
	AddRef() int32
	Release() int32
}

// rawResource is implemented by wrappers that are not *ole.IUnknown.
type rawResource interface {
	Raw() unsafe.Pointer
}

// rawPointer returns the COM pointer behind r, nil if there is none.
func rawPointer(r Resource) unsafe.Pointer {
	switch v := r.(type) {
	case nil:
		return nil
	case *ole.IUnknown:
		return unsafe.Pointer(v)
	case *ole.IDispatch:
		return unsafe.Pointer(v)
	case rawResource:
		return v.Raw()
	}
	return nil
}

// retain stores r in slot, holding a reference on it and dropping the one
// held on the previous value. It reports whether slot is now set.
func retain(slot *Resource, r Resource) bool {
	if rawPointer(r) == nil {
		r = nil
	}
	if r != nil {
		r.AddRef()
	}
	if *slot != nil {
		(*slot).Release()
	}
	*slot = r
	return r != nil
}
