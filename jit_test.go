package mos6502

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDriver wires a Driver over a ROM holding program at base plus a RAM
// stack page at 0x0100, with nothing else mapped — so any address the test
// does not intend the program to touch is simply unbacked, and a trace that
// runs past the program stops at the first unbacked address instead of
// decoding whatever lies beyond it.
func newTestDriver(cfg Config, base uint16, program []byte) (*Driver, *Bus) {
	bus := NewBus()
	bus.Attach(base, NewROM(program), false)
	bus.Attach(0x0100, NewRAM(0x0100), false)
	table := NewOpcodeTable()
	d := NewDriver(bus, table, nil, cfg)
	return d, bus
}

func TestDriverRunFallsOffEndAndCachesEntry(t *testing.T) {
	d, _ := newTestDriver(Config{}, 0x8000, []byte{0xA9, 0x05}) // LDA #$05

	require.NoError(t, d.Run(0x8000))
	assert.Contains(t, d.CachedEntries(), uint16(0x8000))
}

func TestDriverCacheInvalidationOnWrite(t *testing.T) {
	d, _ := newTestDriver(Config{}, 0x8000, []byte{0xA9, 0x05})

	require.NoError(t, d.Run(0x8000))
	require.Len(t, d.CachedEntries(), 1)

	d.hal.WriteMemory(0x8000, 0xEA) // patch the cached function's own bytes

	assert.Empty(t, d.CachedEntries(), "an in-range write should invalidate the cached entry")
}

func TestDriverWriteOutsideRangeDoesNotInvalidate(t *testing.T) {
	d, _ := newTestDriver(Config{}, 0x8000, []byte{0xA9, 0x05})

	require.NoError(t, d.Run(0x8000))

	d.hal.WriteMemory(0x0150, 0x42) // unrelated RAM address

	assert.Len(t, d.CachedEntries(), 1, "an unrelated write should not invalidate the cache")
}

func TestDriverSelfModifyingFunctionUsesInterpreter(t *testing.T) {
	// LDA #$99 ; STA $8001 -- the store target falls inside the function's
	// own byte range (it overwrites the LDA's immediate operand).
	program := []byte{0xA9, 0x99, 0x8D, 0x01, 0x80}
	d, _ := newTestDriver(Config{}, 0x8000, program)

	cm, err := d.compile(0x8000)
	require.NoError(t, err)
	assert.IsType(t, &Interpreter{}, cm.method, "self-modifying functions must route to the interpreter")
}

func TestDriverNonModifyingFunctionUsesCodegen(t *testing.T) {
	program := []byte{0xA9, 0x05} // LDA #$05, no stores at all
	d, _ := newTestDriver(Config{}, 0x8000, program)

	cm, err := d.compile(0x8000)
	require.NoError(t, err)
	assert.IsType(t, &CompiledMethod{}, cm.method, "a non-modifying function should use the code generator")
}

func TestDriverForceInterpreterOverridesCodegenChoice(t *testing.T) {
	program := []byte{0xA9, 0x05}
	d, _ := newTestDriver(Config{ForceInterpreter: true}, 0x8000, program)

	cm, err := d.compile(0x8000)
	require.NoError(t, err)
	assert.IsType(t, &Interpreter{}, cm.method)
}

func TestDriverCacheCapacityEvictsOldestEntry(t *testing.T) {
	bus := NewBus()
	bus.Attach(0x8000, NewROM([]byte{0xA9, 0x05}), false) // entry A: LDA #$05
	bus.Attach(0x9000, NewROM([]byte{0xA9, 0x06}), false) // entry B: LDA #$06
	bus.Attach(0x0100, NewRAM(0x0100), false)
	table := NewOpcodeTable()
	d := NewDriver(bus, table, nil, Config{CacheCapacity: 1})

	require.NoError(t, d.Run(0x8000))
	require.NoError(t, d.Run(0x9000))

	entries := d.CachedEntries()
	require.Len(t, entries, 1, "CacheCapacity=1 should keep exactly one entry")
	assert.Equal(t, uint16(0x9000), entries[0], "the most recently compiled entry should survive")
}

func TestDriverInvalidateAllClearsCache(t *testing.T) {
	d, _ := newTestDriver(Config{}, 0x8000, []byte{0xA9, 0x05})

	require.NoError(t, d.Run(0x8000))
	d.InvalidateAll()

	assert.Empty(t, d.CachedEntries())
}

func TestDriverRecentEntriesTracksTrail(t *testing.T) {
	bus := NewBus()
	bus.Attach(0x8000, NewROM([]byte{0xA9, 0x05}), false)
	bus.Attach(0x0100, NewRAM(0x0100), false)
	table := NewOpcodeTable()
	d := NewDriver(bus, table, nil, Config{TraceDepth: 4})

	require.NoError(t, d.Run(0x8000))

	assert.Equal(t, []uint16{0x8000}, d.RecentEntries())
}

func TestDriverADCEndToEnd(t *testing.T) {
	// LDA #$FF ; ADC #$01 -- exercises the full decompile/lower/execute
	// pipeline through the driver, not just the interpreter directly.
	program := []byte{0xA9, 0xFF, 0x69, 0x01}
	d, _ := newTestDriver(Config{}, 0x8000, program)

	require.NoError(t, d.Run(0x8000))
	assert.Equal(t, byte(0x00), d.hal.A())
	assert.True(t, d.hal.GetFlag(FlagCarry))
}
