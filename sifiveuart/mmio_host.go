//go:build !tinygo

package sifiveuart

import (
	"sync/atomic"
	"unsafe"
)

// Host shim: the gc toolchain has no volatile access, but 32-bit atomic loads
// and stores are never elided or reordered. The base must be 4-byte aligned
// memory outside the Go heap, e.g. a /dev/mem or anonymous mmap region.

func (m mmio) Read32(off uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Add(m.base, off)))
}

func (m mmio) Write32(off uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Add(m.base, off)), v)
}
