//go:build tinygo

package sifiveuart

import (
	"runtime/volatile"
	"unsafe"
)

func (m mmio) Read32(off uintptr) uint32 {
	return (*volatile.Register32)(unsafe.Add(m.base, off)).Get()
}

func (m mmio) Write32(off uintptr, v uint32) {
	(*volatile.Register32)(unsafe.Add(m.base, off)).Set(v)
}
