package mos6502

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAMReadWrite(t *testing.T) {
	r := NewRAM(16)
	r.Write(4, 0x42)
	assert.Equal(t, byte(0x42), r.Read(4))
	assert.Equal(t, byte(0), r.Read(100), "out-of-range Read should return 0")
}

func TestROMWritesAreIgnored(t *testing.T) {
	rom := NewROM([]byte{0xAA, 0xBB})
	rom.Write(0, 0xFF)
	assert.Equal(t, byte(0xAA), rom.Read(0), "ROM.Read(0) should be unchanged after a write")
}

func TestBusResolvesFirstMatchingAttachment(t *testing.T) {
	bus := NewBus()
	bus.Attach(0x0000, NewRAM(0x2000), false)
	ram2 := NewRAM(0x2000)
	ram2.Write(0, 0x77)
	bus.Attach(0x0000, ram2, false) // non-overriding: first attachment still wins

	assert.Equal(t, byte(0x00), bus.Read(0x0000), "Read should see the first attachment")
}

func TestBusOverridingAttachmentShadowsEarlierOne(t *testing.T) {
	bus := NewBus()
	bus.Attach(0x0000, NewRAM(0x2000), false)
	shadow := NewRAM(0x2000)
	shadow.Write(0, 0x77)
	bus.Attach(0x0000, shadow, true) // overriding: this one wins

	assert.Equal(t, byte(0x77), bus.Read(0x0000), "Read should see the overriding attachment")
}

func TestBusWriteToUnmappedAddressIsDropped(t *testing.T) {
	bus := NewBus()
	bus.Attach(0x0000, NewRAM(0x10), false)
	bus.Write(0x8000, 0x42) // nothing mapped there

	assert.Equal(t, byte(0), bus.Read(0x8000))
}

func TestGetAllCodeRegionsSingleDevice(t *testing.T) {
	bus := NewBus()
	rom := NewROM([]byte{0x01, 0x02, 0x03, 0x04})
	bus.Attach(0x8000, rom, false)

	regions := bus.GetAllCodeRegions()
	require.Len(t, regions, 1)
	assert.Equal(t, uint16(0x8000), regions[0].Base)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, regions[0].Bytes)
}

func TestGetAllCodeRegionsOmitsDeviceWithNoRawBlock(t *testing.T) {
	bus := NewBus()
	bus.Attach(0x2000, &stubDevice{size: 8}, false)

	regions := bus.GetAllCodeRegions()
	assert.Empty(t, regions)
}

func TestGetAllCodeRegionsSplitsPartiallyShadowedRegion(t *testing.T) {
	bus := NewBus()
	base := NewROM([]byte{0x11, 0x22, 0x33, 0x44})
	bus.Attach(0x8000, base, false)
	overlay := NewROM([]byte{0xAA, 0xBB})
	bus.Attach(0x8001, overlay, true) // shadows only [0x8001, 0x8003)

	regions := bus.GetAllCodeRegions()
	require.Len(t, regions, 3, "expected before/overlay/after regions")

	assert.Equal(t, uint16(0x8000), regions[0].Base)
	assert.Equal(t, []byte{0x11}, regions[0].Bytes)

	assert.Equal(t, uint16(0x8001), regions[1].Base)
	assert.Equal(t, []byte{0xAA, 0xBB}, regions[1].Bytes)

	assert.Equal(t, uint16(0x8003), regions[2].Base)
	assert.Equal(t, []byte{0x44}, regions[2].Bytes)
}

type stubDevice struct {
	size uint32
}

func (s *stubDevice) Size() uint32             { return s.size }
func (s *stubDevice) Read(uint16) byte         { return 0 }
func (s *stubDevice) Write(uint16, byte)       {}
func (s *stubDevice) RawBlock() ([]byte, bool) { return nil, false }
