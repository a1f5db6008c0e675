package ua

import (
	"github.com/google/uuid"
)

// Guid is a 16-byte OPC UA identifier. It is carried as a uuid.UUID so
// that formatting and parsing reuse the well-tested canonical
// lower-case-hyphenated representation (spec.md §8 scenario 2),
// instead of hand-rolling the Data1/Data2/Data3/Data4 field layout.
type Guid = uuid.UUID

// Guid reads a Guid: Data1/Data2/Data3 little-endian, Data4
// big-endian, per spec.md §3.
func (d *Decoder) Guid(field string) (Guid, error) {
	var g Guid
	data1, err := d.Uint32(field + ".Data1")
	if err != nil {
		return g, err
	}
	data2, err := d.Uint16(field + ".Data2")
	if err != nil {
		return g, err
	}
	data3, err := d.Uint16(field + ".Data3")
	if err != nil {
		return g, err
	}
	data4, err := d.take(field+".Data4", 8)
	if err != nil {
		return g, err
	}
	g[0] = byte(data1 >> 24)
	g[1] = byte(data1 >> 16)
	g[2] = byte(data1 >> 8)
	g[3] = byte(data1)
	g[4] = byte(data2 >> 8)
	g[5] = byte(data2)
	g[6] = byte(data3 >> 8)
	g[7] = byte(data3)
	copy(g[8:], data4)
	return g, nil
}

// Guid writes a Guid using the Data1/Data2/Data3 little-endian,
// Data4 big-endian layout spec.md §3 defines.
func (e *Encoder) Guid(g Guid) {
	data1 := uint32(g[0])<<24 | uint32(g[1])<<16 | uint32(g[2])<<8 | uint32(g[3])
	data2 := uint16(g[4])<<8 | uint16(g[5])
	data3 := uint16(g[6])<<8 | uint16(g[7])
	e.Uint32(data1)
	e.Uint16(data2)
	e.Uint16(data3)
	e.Raw(g[8:16])
}
