package ua

// DataValue pairs a value with quality and timestamp metadata. A
// presence bitmask says which of the six fields were actually
// transmitted; fields not present read back as their zero value
// (spec.md §3).
type DataValue struct {
	Value             Variant
	HasValue          bool
	Status            StatusCode
	HasStatus         bool
	SourceTimestamp   DateTime
	HasSourceTime     bool
	SourcePicoseconds uint16
	HasSourcePicos    bool
	ServerTimestamp   DateTime
	HasServerTime     bool
	ServerPicoseconds uint16
	HasServerPicos    bool
}

const (
	dataValueValueFlag             = 0x01
	dataValueStatusFlag            = 0x02
	dataValueSourceTimestampFlag   = 0x04
	dataValueServerTimestampFlag   = 0x08
	dataValueSourcePicosecondsFlag = 0x10
	dataValueServerPicosecondsFlag = 0x20
)

func (d *Decoder) DataValue(field string) (DataValue, error) {
	var dv DataValue
	mask, err := d.Byte(field + ".Encoding")
	if err != nil {
		return dv, err
	}

	if mask&dataValueValueFlag != 0 {
		v, err := d.Variant(field + ".Value")
		if err != nil {
			return dv, err
		}
		dv.Value, dv.HasValue = v, true
	}
	if mask&dataValueStatusFlag != 0 {
		s, err := d.StatusCode(field + ".Status")
		if err != nil {
			return dv, err
		}
		dv.Status, dv.HasStatus = s, true
	}
	if mask&dataValueSourceTimestampFlag != 0 {
		t, err := d.DateTime(field + ".SourceTimestamp")
		if err != nil {
			return dv, err
		}
		dv.SourceTimestamp, dv.HasSourceTime = t, true
	}
	if mask&dataValueSourcePicosecondsFlag != 0 {
		p, err := d.Uint16(field + ".SourcePicoseconds")
		if err != nil {
			return dv, err
		}
		dv.SourcePicoseconds, dv.HasSourcePicos = p, true
	}
	if mask&dataValueServerTimestampFlag != 0 {
		t, err := d.DateTime(field + ".ServerTimestamp")
		if err != nil {
			return dv, err
		}
		dv.ServerTimestamp, dv.HasServerTime = t, true
	}
	if mask&dataValueServerPicosecondsFlag != 0 {
		p, err := d.Uint16(field + ".ServerPicoseconds")
		if err != nil {
			return dv, err
		}
		dv.ServerPicoseconds, dv.HasServerPicos = p, true
	}
	return dv, nil
}

func (e *Encoder) DataValue(dv DataValue) {
	var mask byte
	if dv.HasValue {
		mask |= dataValueValueFlag
	}
	if dv.HasStatus {
		mask |= dataValueStatusFlag
	}
	if dv.HasSourceTime {
		mask |= dataValueSourceTimestampFlag
	}
	if dv.HasSourcePicos {
		mask |= dataValueSourcePicosecondsFlag
	}
	if dv.HasServerTime {
		mask |= dataValueServerTimestampFlag
	}
	if dv.HasServerPicos {
		mask |= dataValueServerPicosecondsFlag
	}
	e.Byte(mask)

	if dv.HasValue {
		e.Variant(dv.Value)
	}
	if dv.HasStatus {
		e.StatusCode(dv.Status)
	}
	if dv.HasSourceTime {
		e.DateTime(dv.SourceTimestamp)
	}
	if dv.HasSourcePicos {
		e.Uint16(dv.SourcePicoseconds)
	}
	if dv.HasServerTime {
		e.DateTime(dv.ServerTimestamp)
	}
	if dv.HasServerPicos {
		e.Uint16(dv.ServerPicoseconds)
	}
}
