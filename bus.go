package mos6502

// MemoryDevice is the collaborator attached to a Bus. Size is in
// bytes; Read/Write take an offset relative to the device's own base, not
// an absolute 6502 address. RawBlock optionally exposes the device's
// contents as a contiguous slice for code-region enumeration — devices
// that are pure I/O stubs (controllers, PPU registers) return ok=false.
type MemoryDevice interface {
	Size() uint32
	Read(offset uint16) byte
	Write(offset uint16, value byte)
	RawBlock() (data []byte, ok bool)
}

// RAM is a simple flat-memory MemoryDevice, usable at any base address and
// size.
type RAM struct {
	bytes []byte
}

// NewRAM allocates a RAM device of the given size.
func NewRAM(size uint32) *RAM {
	return &RAM{bytes: make([]byte, size)}
}

func (r *RAM) Size() uint32 { return uint32(len(r.bytes)) }
func (r *RAM) Read(offset uint16) byte {
	if int(offset) >= len(r.bytes) {
		return 0
	}
	return r.bytes[offset]
}
func (r *RAM) Write(offset uint16, value byte) {
	if int(offset) >= len(r.bytes) {
		return
	}
	r.bytes[offset] = value
}
func (r *RAM) RawBlock() ([]byte, bool) { return r.bytes, true }

// ROM is a read-only MemoryDevice; writes are silently ignored.
type ROM struct {
	bytes []byte
}

// NewROM wraps an existing byte slice (e.g. a loaded program image) as a
// read-only device.
func NewROM(data []byte) *ROM {
	return &ROM{bytes: data}
}

func (r *ROM) Size() uint32 { return uint32(len(r.bytes)) }
func (r *ROM) Read(offset uint16) byte {
	if int(offset) >= len(r.bytes) {
		return 0
	}
	return r.bytes[offset]
}
func (r *ROM) Write(uint16, byte)       {}
func (r *ROM) RawBlock() ([]byte, bool) { return r.bytes, true }

type attachment struct {
	base             uint16
	size             uint32
	device           MemoryDevice
	allowsOverriding bool
}

func (a attachment) contains(addr uint16) bool {
	lo := uint32(a.base)
	hi := lo + a.size
	v := uint32(addr)
	return v >= lo && v < hi
}

// Bus maps the 64 KiB 6502 address space to an ordered sequence of attached
// devices, each covering its own contiguous address range.
type Bus struct {
	attachments []attachment
}

// NewBus constructs an empty bus. Devices are wired in with Attach.
func NewBus() *Bus {
	return &Bus{}
}

// Attach records a device at base, covering [base, base+device.Size()).
// allowsOverriding marks this attachment as permitted to shadow addresses
// an earlier attachment already claimed. Attachments that do not allow
// overriding only ever claim addresses nothing earlier claimed.
func (b *Bus) Attach(base uint16, device MemoryDevice, allowsOverriding bool) {
	b.attachments = append(b.attachments, attachment{
		base:             base,
		size:             device.Size(),
		device:           device,
		allowsOverriding: allowsOverriding,
	})
}

// resolve returns the index into b.attachments of the attachment that is
// visible at addr, or -1 if nothing is mapped there. The first attachment
// to cover an address claims it; later attachments only take over an
// already-claimed address when allowsOverriding is set.
func (b *Bus) resolve(addr uint16) int {
	winner := -1
	for i, a := range b.attachments {
		if !a.contains(addr) {
			continue
		}
		if winner == -1 || a.allowsOverriding {
			winner = i
		}
	}
	return winner
}

// Read returns the byte visible at addr, or 0 if nothing is mapped there.
func (b *Bus) Read(addr uint16) byte {
	idx := b.resolve(addr)
	if idx == -1 {
		return 0
	}
	a := b.attachments[idx]
	return a.device.Read(addr - a.base)
}

// Write forwards to the device visible at addr. A write to an unmapped
// address is dropped.
func (b *Bus) Write(addr uint16, value byte) {
	idx := b.resolve(addr)
	if idx == -1 {
		return
	}
	a := b.attachments[idx]
	a.device.Write(addr-a.base, value)
}

// CodeRegion is a contiguous span of bytes visible for disassembly, along
// with the base 6502 address it starts at.
type CodeRegion struct {
	Base  uint16
	Bytes []byte
}

// End returns the exclusive end address of the region.
func (r CodeRegion) End() uint32 { return uint32(r.Base) + uint32(len(r.Bytes)) }

// GetAllCodeRegions returns an ordered list of (base, bytes) spans for
// disassembly. It flattens overlays so only the visible device
// contributes bytes at each address, fragments a region that is only
// partially shadowed into multiple pieces, emits mirrored attachments of
// the same device as separate regions, and omits devices with no raw
// block.
func (b *Bus) GetAllCodeRegions() []CodeRegion {
	var regions []CodeRegion

	runStart := -1
	runIdx := -1
	flush := func(end int) {
		if runStart == -1 {
			return
		}
		a := b.attachments[runIdx]
		raw, ok := a.device.RawBlock()
		if ok {
			offLo := uint32(runStart) - uint32(a.base)
			offHi := uint32(end) - uint32(a.base)
			if offHi <= uint32(len(raw)) {
				buf := make([]byte, offHi-offLo)
				copy(buf, raw[offLo:offHi])
				regions = append(regions, CodeRegion{Base: uint16(runStart), Bytes: buf})
			}
		}
		runStart = -1
		runIdx = -1
	}

	for addr := 0; addr <= 0xFFFF; addr++ {
		idx := b.resolve(uint16(addr))
		switch {
		case idx == -1:
			flush(addr)
		case idx != runIdx:
			flush(addr)
			runStart = addr
			runIdx = idx
		}
		if addr == 0xFFFF {
			flush(addr + 1)
		}
	}

	return regions
}
