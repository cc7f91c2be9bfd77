package component

import (
	"fmt"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// TypeMemory is the component_type discriminator for the RAM.
const TypeMemory = "memory"

// MemoryOp records which operation Memory last performed, for
// visualization (spec §4.7.9).
type MemoryOp int

const (
	OpNone MemoryOp = iota
	OpRead
	OpWrite
)

func (o MemoryOp) String() string {
	switch o {
	case OpRead:
		return "READ"
	case OpWrite:
		return "WRITE"
	default:
		return "NONE"
	}
}

// control pin indices, fixed order: Enable, Read, Write, then
// AddressBits address pins, then DataBits data pins.
const (
	pinEnable = 0
	pinRead   = 1
	pinWrite  = 2
)

// Memory is a sparse-addressed RAM tied to named address/data buses via
// link mappings, clamped to its configured widths (spec §4.7.9).
type Memory struct {
	base

	AddressBits     int
	DataBits        int
	AddressBusName  string
	DataBusName     string
	IsVolatile      bool
	DefaultFileName string

	cells map[uint32]uint32

	LastOperation MemoryOp
	LastAddress   uint32
	LastData      uint32

	addrPins []*circuit.Pin
	dataPins []*circuit.Pin
}

// NewMemory builds a Memory component. pinIDs/tabIDs must be ordered
// Enable, Read, Write, addressBits address pins, dataBits data pins
// (3+addressBits+dataBits entries total).
func NewMemory(id ident.ID, pinIDs, tabIDs []ident.ID, addressBits, dataBits int, addrBus, dataBus string, volatile bool, defaultFile string) *Memory {
	total := 3 + addressBits + dataBits
	pins := make([]*circuit.Pin, total)
	for i := 0; i < total; i++ {
		pins[i] = circuit.NewPin(pinIDs[i], id, tabIDs[i])
	}

	m := &Memory{
		base:            newBase(id, TypeMemory, pins, ""),
		AddressBits:     addressBits,
		DataBits:        dataBits,
		AddressBusName:  addrBus,
		DataBusName:     dataBus,
		IsVolatile:      volatile,
		DefaultFileName: defaultFile,
		cells:           make(map[uint32]uint32),
		addrPins:        pins[3 : 3+addressBits],
		dataPins:        pins[3+addressBits : total],
	}
	return m
}

// LinkMappings implements circuit.LinkMapper: address pin i maps to
// "{AddressBusName}_{i}", data pin i maps to "{DataBusName}_{i}",
// LSB-first, matching Bus's naming convention (spec §9).
func (m *Memory) LinkMappings() map[string][]ident.ID {
	out := make(map[string][]ident.ID, m.AddressBits+m.DataBits)
	for i, p := range m.addrPins {
		name := fmt.Sprintf("%s_%d", m.AddressBusName, i)
		out[name] = append(out[name], p.TabIDs...)
	}
	for i, p := range m.dataPins {
		name := fmt.Sprintf("%s_%d", m.DataBusName, i)
		out[name] = append(out[name], p.TabIDs...)
	}
	return out
}

// SeedDefaults stores the given cells, masked to the address and data
// widths. persist passes it the cells saved in the document; nothing in
// relaysim reads the contents of DefaultFileName. Memory only stores
// what it's handed.
func (m *Memory) SeedDefaults(cells map[uint32]uint32) {
	for addr, val := range cells {
		m.cells[m.maskAddress(addr)] = m.maskData(val)
	}
}

func (m *Memory) maskAddress(addr uint32) uint32 {
	if m.AddressBits >= 32 {
		return addr
	}
	return addr & ((1 << uint(m.AddressBits)) - 1)
}

func (m *Memory) maskData(val uint32) uint32 {
	if m.DataBits >= 32 {
		return val
	}
	return val & ((1 << uint(m.DataBits)) - 1)
}

func (m *Memory) SimStart(v circuit.VnetView, b circuit.BridgeView) {
	if m.IsVolatile {
		m.cells = make(map[uint32]uint32)
	}
	m.LastOperation = OpNone
	m.LastAddress = 0
	m.LastData = 0
	m.floatDataPins()
}

func (m *Memory) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {
	enable := m.readPin(v, pinEnable)
	read := m.readPin(v, pinRead)
	write := m.readPin(v, pinWrite)

	if enable != signal.High {
		m.floatDataPins()
		m.LastOperation = OpNone
		return
	}

	addr := m.assembleAddress(v)

	switch {
	case read == signal.High && write != signal.High:
		val := m.cells[addr]
		m.driveDataBus(val)
		m.LastOperation = OpRead
		m.LastAddress = addr
		m.LastData = val
	case write == signal.High && read != signal.High:
		m.floatDataPins()
		val := m.assembleDataFromBus(v)
		m.cells[addr] = m.maskData(val)
		m.LastOperation = OpWrite
		m.LastAddress = addr
		m.LastData = m.maskData(val)
	default:
		m.floatDataPins()
		m.LastOperation = OpNone
	}
}

func (m *Memory) readPin(v circuit.VnetView, idx int) signal.Signal {
	state, ok := v.StateForTab(m.pin(idx).TabIDs[0])
	if !ok {
		return signal.Float
	}
	return state
}

func (m *Memory) assembleAddress(v circuit.VnetView) uint32 {
	var addr uint32
	for i, p := range m.addrPins {
		state, ok := v.StateForTab(p.TabIDs[0])
		if ok && state == signal.High {
			addr |= 1 << uint(i)
		}
	}
	return m.maskAddress(addr)
}

func (m *Memory) assembleDataFromBus(v circuit.VnetView) uint32 {
	var val uint32
	for i, p := range m.dataPins {
		state, ok := v.StateForTab(p.TabIDs[0])
		if ok && state == signal.High {
			val |= 1 << uint(i)
		}
	}
	return val
}

func (m *Memory) driveDataBus(val uint32) {
	for i, p := range m.dataPins {
		bit := (val >> uint(i)) & 1
		p.Drive(p.TabIDs[0], signal.FromBit(int(bit)))
	}
}

func (m *Memory) floatDataPins() {
	for _, p := range m.dataPins {
		p.FloatAll()
	}
}

func (m *Memory) SimStop() {
	m.floatDataPins()
}

// Cells returns the non-zero memory cells, for persistence of
// non-volatile memory (spec §4.7.9's "non-volatile memory serializes
// its non-zero cells").
func (m *Memory) Cells() map[uint32]uint32 {
	out := make(map[uint32]uint32)
	for addr, val := range m.cells {
		if val != 0 {
			out[addr] = val
		}
	}
	return out
}

// Interact implements circuit.Interactor for the memory_write external
// action (spec §6.4): it writes directly into a memory cell, bypassing
// the control-pin protocol, the way a debugger or test harness would.
func (m *Memory) Interact(a circuit.Action) bool {
	if a.Kind != "memory_write" {
		return false
	}
	addr := m.maskAddress(a.Addr)
	val := m.maskData(a.Value)
	if existing, ok := m.cells[addr]; ok && existing == val {
		return false
	}
	m.cells[addr] = val
	return true
}
