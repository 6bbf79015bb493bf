// Package regsim simulates SiFive UART register blocks on the host.
//
// Block is the raw 28-byte span: registers are plain memory, which is what
// the driver sees on a freshly reset part with no line activity. Device
// models the FIFOs and the watermark logic behind the registers.
package regsim

import (
	"encoding/binary"
	"fmt"

	"github.com/jangala-dev/tinygo-sifiveuart/internal/reg"
)

// Block is a little-endian 28-byte register span that counts accesses.
// Pinned bits read back as set whatever was written. The zero value is an
// all-zero block.
type Block struct {
	mem    [reg.Span]byte
	pinned [reg.Count]uint32
	reads  [reg.Count]int
	writes [reg.Count]int
}

func index(off uintptr) int {
	i := reg.Index(off)
	if i < 0 {
		panic(fmt.Sprintf("regsim: bad register offset %#x", off))
	}
	return i
}

// Read32 returns the word at off with pinned bits set.
func (b *Block) Read32(off uintptr) uint32 {
	i := index(off)
	b.reads[i]++
	return binary.LittleEndian.Uint32(b.mem[off:]) | b.pinned[i]
}

// Write32 stores v at off.
func (b *Block) Write32(off uintptr, v uint32) {
	i := index(off)
	b.writes[i]++
	binary.LittleEndian.PutUint32(b.mem[off:], v)
}

// Peek returns the stored word at off without counting a read or applying
// pinned bits.
func (b *Block) Peek(off uintptr) uint32 {
	index(off)
	return binary.LittleEndian.Uint32(b.mem[off:])
}

// Poke stores v at off without counting a write.
func (b *Block) Poke(off uintptr, v uint32) {
	index(off)
	binary.LittleEndian.PutUint32(b.mem[off:], v)
}

// Pin forces mask to read back as set at off.
func (b *Block) Pin(off uintptr, mask uint32) {
	b.pinned[index(off)] |= mask
}

// Reads returns the number of Read32 calls at off.
func (b *Block) Reads(off uintptr) int { return b.reads[index(off)] }

// Writes returns the number of Write32 calls at off.
func (b *Block) Writes(off uintptr) int { return b.writes[index(off)] }

// Bytes returns a copy of the span.
func (b *Block) Bytes() []byte {
	out := make([]byte, len(b.mem))
	copy(out, b.mem[:])
	return out
}
