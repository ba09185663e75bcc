//go:build tinygo

package main

import (
	"runtime/volatile"
	"unsafe"
)

// Every PIC32 SFR is shadowed by CLR/SET/INV registers at +0x4/+0x8/+0xC.
// Writing a mask to a shadow performs the read-modify-write inside the
// peripheral, so SetBits and ClearBits stay single bus transactions.
type sfr struct {
	REG volatile.Register32
	CLR volatile.Register32
	SET volatile.Register32
	INV volatile.Register32
}

func (r *sfr) Get() uint32 {
	return r.REG.Get()
}

func (r *sfr) Set(v uint32) {
	r.REG.Set(v)
}

func (r *sfr) SetBits(mask uint32) {
	r.SET.Set(mask)
}

func (r *sfr) ClearBits(mask uint32) {
	r.CLR.Set(mask)
}

func sfrAt(addr uintptr) *sfr {
	return (*sfr)(unsafe.Pointer(addr))
}

// physAddr translates a KSEG0/KSEG1 virtual address to the physical address
// the DMA engine expects.
func physAddr(virt uintptr) uintptr {
	return virt & 0x1FFFFFFF
}
