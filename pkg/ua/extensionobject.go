package ua

// ExtensionObject wraps an opaque encoded structure: a type NodeId
// plus zero or more bytes in one of three body encodings. It is the
// generic carrier for any dynamically typed structure the client does
// not have a concrete Go type for (spec.md §3, §4.7).
type ExtensionObject struct {
	TypeID   NodeId
	Encoding ExtensionObjectEncoding
	Body     []byte
}

// ExtensionObjectEncoding selects how Body is carried.
type ExtensionObjectEncoding byte

const (
	ExtensionObjectNoBody ExtensionObjectEncoding = 0
	ExtensionObjectBinary ExtensionObjectEncoding = 1
	ExtensionObjectXML    ExtensionObjectEncoding = 2
)

func (d *Decoder) ExtensionObject(field string) (ExtensionObject, error) {
	var eo ExtensionObject
	typeID, err := d.NodeId(field + ".TypeId")
	if err != nil {
		return eo, err
	}
	eo.TypeID = typeID

	enc, err := d.Byte(field + ".Encoding")
	if err != nil {
		return eo, err
	}
	eo.Encoding = ExtensionObjectEncoding(enc)

	switch eo.Encoding {
	case ExtensionObjectNoBody:
		return eo, nil
	case ExtensionObjectBinary, ExtensionObjectXML:
		body, err := d.ByteString(field + ".Body")
		if err != nil {
			return eo, err
		}
		eo.Body = body
		return eo, nil
	default:
		return eo, decodeErr(field+".Encoding", d.pos-1, ErrInvalidEncoding)
	}
}

func (e *Encoder) ExtensionObject(eo ExtensionObject) {
	e.NodeId(eo.TypeID)
	if eo.Body == nil {
		e.Byte(byte(ExtensionObjectNoBody))
		return
	}
	e.Byte(byte(eo.Encoding))
	e.ByteString(eo.Body)
}
