package mos6502

import "log"

// ExecutableMethod is the shared interface between the interpreter and the
// compiled code generator: both take a HAL and hand back a successor
// address or the terminal sentinel -1.
type ExecutableMethod interface {
	Execute(hal HAL) (int32, error)
}

// cachedMethod pairs an ExecutableMethod with the byte range of the
// DecompiledFunction it was built from, for invalidation.
type cachedMethod struct {
	method ExecutableMethod
	rang   ByteRange
}

// Driver is the JIT driver and method cache: it runs compiled or
// interpreted functions by entry address until one yields a terminal
// sentinel, recompiling and caching methods on demand.
type Driver struct {
	bus   *Bus
	table *OpcodeTable
	hal   *ReferenceHAL
	cfg   Config

	cache              map[uint16]cachedMethod
	cacheOrder         []uint16 // insertion order, for CacheCapacity eviction
	currentlyExecuting uint16
	trail              []uint16

	dumper *debugDumper
	logger *log.Logger
}

// NewDriver wires a Driver over bus. interrupts may be nil for a host with
// no peripheral clock.
func NewDriver(bus *Bus, table *OpcodeTable, interrupts InterruptSource, cfg Config) *Driver {
	d := &Driver{
		bus:    bus,
		table:  table,
		cfg:    cfg,
		cache:  make(map[uint16]cachedMethod),
		logger: cfg.logger(),
	}
	d.dumper = newDebugDumper(cfg.DebugWriter, d.logger)
	d.hal = NewReferenceHAL(bus, d, interrupts, cfg)
	return d
}

// HAL returns the driver's HAL, for a host wiring peripherals that also
// need register/memory access.
func (d *Driver) HAL() *ReferenceHAL { return d.hal }

// OnMemoryWritten implements MemoryWriteObserver: it evicts every cached
// method whose byte range contains addr, and reports whether the write
// landed inside the method currently executing. ReferenceHAL.WriteMemory
// discards that result, so a write into the running method does not stop
// it: the method runs on with the IR it was built from, and the patched
// bytes take effect only when the evicted entry is rebuilt on its next
// dispatch.
func (d *Driver) OnMemoryWritten(addr uint16) bool {
	hitsCurrent := false
	for entry, cm := range d.cache {
		if cm.rang.Contains(addr) {
			if entry == d.currentlyExecuting {
				hitsCurrent = true
			}
			delete(d.cache, entry)
		}
	}
	d.pruneOrder()
	return hitsCurrent
}

// pruneOrder drops cacheOrder entries for addresses no longer in the cache,
// keeping it from growing unboundedly across many invalidation cycles.
func (d *Driver) pruneOrder() {
	live := d.cacheOrder[:0]
	for _, addr := range d.cacheOrder {
		if _, ok := d.cache[addr]; ok {
			live = append(live, addr)
		}
	}
	d.cacheOrder = live
}

// Run executes 6502 code starting at entry until a terminal sentinel is
// reached, an error occurs, or the HAL cancels execution.
func (d *Driver) Run(entry uint16) error {
	next := int32(entry)

	for next >= 0 {
		addr := uint16(next)

		cm, ok := d.cache[addr]
		if !ok {
			var err error
			cm, err = d.compile(addr)
			if err != nil {
				return err
			}
			d.store(addr, cm)
		}

		d.currentlyExecuting = addr
		d.trail = append(d.trail, addr)
		if depth := d.cfg.traceDepth(); len(d.trail) > depth {
			d.trail = d.trail[len(d.trail)-depth:]
		}

		result, err := cm.method.Execute(d.hal)
		if err != nil {
			if IsCancellation(err) {
				d.emitSummary()
				return err
			}
			return err
		}
		next = result
	}

	d.emitSummary()
	return nil
}

// store inserts cm into the cache, evicting the oldest entry first if doing
// so would exceed cfg.CacheCapacity. Zero capacity means unbounded.
func (d *Driver) store(addr uint16, cm cachedMethod) {
	if cap := d.cfg.CacheCapacity; cap > 0 {
		for len(d.cache) >= cap && len(d.cacheOrder) > 0 {
			oldest := d.cacheOrder[0]
			d.cacheOrder = d.cacheOrder[1:]
			delete(d.cache, oldest)
		}
	}
	d.cache[addr] = cm
	d.cacheOrder = append(d.cacheOrder, addr)
}

// compile decompiles, lowers, and builds an ExecutableMethod for addr,
// choosing the interpreter over native codegen when the function is
// self-modifying or the driver is configured to force interpretation.
func (d *Driver) compile(addr uint16) (cachedMethod, error) {
	regions := d.bus.GetAllCodeRegions()

	fn, err := Decompile(addr, regions, d.table)
	if err != nil {
		return cachedMethod{}, err
	}

	lf, err := Lower(fn)
	if err != nil {
		return cachedMethod{}, err
	}

	var method ExecutableMethod
	if d.cfg.ForceInterpreter || isSelfModifying(fn) {
		method = NewInterpreter(lf)
	} else {
		method, err = Compile(lf)
		if err != nil {
			return cachedMethod{}, err
		}
	}

	return cachedMethod{method: method, rang: fn.Range}, nil
}

// isSelfModifying reports whether fn contains a store instruction whose
// statically-determinable destination overlaps fn's own byte range.
// Indexed stores have no statically-known destination and are
// conservatively treated as non-modifying; the cache invalidator catches
// them at runtime instead.
func isSelfModifying(fn *DecompiledFunction) bool {
	for _, inst := range fn.Instructions {
		if !isStore(inst.Info.Mnemonic) {
			continue
		}
		switch inst.Info.Mode {
		case ZeroPage, Absolute:
			addr := inst.OperandWord()
			if inst.Info.Mode == ZeroPage {
				addr = uint16(inst.OperandByte())
			}
			if fn.Range.Contains(addr) {
				return true
			}
		}
	}
	return false
}

func (d *Driver) emitSummary() {
	d.dumper.dumpMachineState("run summary", snapshotMachineState(d.hal))
	d.logger.Printf("trail: %v", d.trail)
}

// InvalidateAll drops every cached method, forcing full redecompilation on
// next entry. Hosts call this after bank-switching a cartridge mapper or
// otherwise replacing a code region's backing bytes wholesale, since that
// is not expressed as a bus write the observer callback would see.
func (d *Driver) InvalidateAll() {
	d.cache = make(map[uint16]cachedMethod)
	d.cacheOrder = nil
}

// CachedEntries returns the entry addresses currently resident in the
// method cache, for diagnostics and tests.
func (d *Driver) CachedEntries() []uint16 {
	entries := make([]uint16, 0, len(d.cache))
	for addr := range d.cache {
		entries = append(entries, addr)
	}
	return entries
}

// RecentEntries returns a copy of the diagnostic ring buffer of recently
// entered function addresses, oldest first, bounded by Config.TraceDepth.
func (d *Driver) RecentEntries() []uint16 {
	out := make([]uint16, len(d.trail))
	copy(out, d.trail)
	return out
}
