package ua

// TypeID identifies one of the 25 OPC UA built-in types a Variant may
// carry (spec.md §3).
type TypeID byte

const (
	TypeIDBoolean         TypeID = 1
	TypeIDSByte           TypeID = 2
	TypeIDByte            TypeID = 3
	TypeIDInt16           TypeID = 4
	TypeIDUInt16          TypeID = 5
	TypeIDInt32           TypeID = 6
	TypeIDUInt32          TypeID = 7
	TypeIDInt64           TypeID = 8
	TypeIDUInt64          TypeID = 9
	TypeIDFloat           TypeID = 10
	TypeIDDouble          TypeID = 11
	TypeIDString          TypeID = 12
	TypeIDDateTime        TypeID = 13
	TypeIDGuid            TypeID = 14
	TypeIDByteString      TypeID = 15
	TypeIDXmlElement      TypeID = 16
	TypeIDNodeId          TypeID = 17
	TypeIDExpandedNodeId  TypeID = 18
	TypeIDStatusCode      TypeID = 19
	TypeIDQualifiedName   TypeID = 20
	TypeIDLocalizedText   TypeID = 21
	TypeIDExtensionObject TypeID = 22
	TypeIDDataValue       TypeID = 23
	TypeIDVariant         TypeID = 24
	TypeIDDiagnosticInfo  TypeID = 25
)

const (
	variantTypeMask      = 0x3F
	variantArrayFlag     = 0x80
	variantDimensionFlag = 0x40
)

// Variant is a tagged union over any of the 25 built-in types, scalar
// or array, with optional array dimensions for matrix values
// (spec.md §3). Scalar values live in Value; array values live in
// Array, one entry per element, all sharing TypeID.
type Variant struct {
	TypeID     TypeID
	Value      interface{}
	IsArray    bool
	Array      []interface{}
	Dimensions []int32
}

// NewVariant builds a scalar Variant for one of the built-in Go types
// listed in decodeVariantValue/encodeVariantValue.
func NewVariant(id TypeID, v interface{}) Variant {
	return Variant{TypeID: id, Value: v}
}

// NewVariantArray builds an array Variant. A nil elems with dims set
// describes a matrix of a different shape than a flat null array;
// most callers only need the 1-D case and can pass nil dims.
func NewVariantArray(id TypeID, elems []interface{}, dims []int32) Variant {
	return Variant{TypeID: id, IsArray: true, Array: elems, Dimensions: dims}
}

func (d *Decoder) Variant(field string) (Variant, error) {
	var v Variant
	enc, err := d.Byte(field + ".Encoding")
	if err != nil {
		return v, err
	}

	id := TypeID(enc & variantTypeMask)
	isArray := enc&variantArrayFlag != 0
	hasDims := enc&variantDimensionFlag != 0
	v.TypeID = id
	v.IsArray = isArray

	if !isArray {
		val, err := d.decodeVariantValue(field, id)
		if err != nil {
			return v, err
		}
		v.Value = val
		return v, nil
	}

	n, present, err := d.arrayLen(field + ".Array")
	if err != nil {
		return v, err
	}
	if present {
		elems := make([]interface{}, n)
		for i := 0; i < n; i++ {
			val, err := d.decodeVariantValue(field, id)
			if err != nil {
				return v, err
			}
			elems[i] = val
		}
		v.Array = elems
	}

	if hasDims {
		dn, present, err := d.arrayLen(field + ".ArrayDimensions")
		if err != nil {
			return v, err
		}
		if present {
			dims := make([]int32, dn)
			for i := 0; i < dn; i++ {
				dims[i], err = d.Int32(field + ".ArrayDimensions")
				if err != nil {
					return v, err
				}
			}
			v.Dimensions = dims
		}
	}
	return v, nil
}

func (e *Encoder) Variant(v Variant) {
	enc := byte(v.TypeID) & variantTypeMask
	if v.IsArray {
		enc |= variantArrayFlag
	}
	if len(v.Dimensions) > 0 {
		enc |= variantDimensionFlag
	}
	e.Byte(enc)

	if !v.IsArray {
		e.encodeVariantValue(v.TypeID, v.Value)
		return
	}

	if v.Array == nil {
		e.Int32(-1)
	} else {
		e.Int32(int32(len(v.Array)))
		for _, el := range v.Array {
			e.encodeVariantValue(v.TypeID, el)
		}
	}

	if len(v.Dimensions) > 0 {
		e.Int32(int32(len(v.Dimensions)))
		for _, d := range v.Dimensions {
			e.Int32(d)
		}
	}
}

func (d *Decoder) decodeVariantValue(field string, id TypeID) (interface{}, error) {
	switch id {
	case TypeIDBoolean:
		return d.Bool(field)
	case TypeIDSByte:
		return d.SByte(field)
	case TypeIDByte:
		return d.Byte(field)
	case TypeIDInt16:
		return d.Int16(field)
	case TypeIDUInt16:
		return d.Uint16(field)
	case TypeIDInt32:
		return d.Int32(field)
	case TypeIDUInt32:
		return d.Uint32(field)
	case TypeIDInt64:
		return d.Int64(field)
	case TypeIDUInt64:
		return d.Uint64(field)
	case TypeIDFloat:
		return d.Float32(field)
	case TypeIDDouble:
		return d.Float64(field)
	case TypeIDString:
		return d.String(field)
	case TypeIDDateTime:
		return d.DateTime(field)
	case TypeIDGuid:
		return d.Guid(field)
	case TypeIDByteString, TypeIDXmlElement:
		return d.ByteString(field)
	case TypeIDNodeId:
		return d.NodeId(field)
	case TypeIDExpandedNodeId:
		return d.ExpandedNodeId(field)
	case TypeIDStatusCode:
		return d.StatusCode(field)
	case TypeIDQualifiedName:
		return d.QualifiedName(field)
	case TypeIDLocalizedText:
		return d.LocalizedText(field)
	case TypeIDExtensionObject:
		return d.ExtensionObject(field)
	case TypeIDDataValue:
		return d.DataValue(field)
	case TypeIDVariant:
		return d.Variant(field)
	case TypeIDDiagnosticInfo:
		return d.DiagnosticInfo(field)
	default:
		return nil, decodeErr(field, d.pos, ErrUnknownType)
	}
}

func (e *Encoder) encodeVariantValue(id TypeID, v interface{}) {
	switch id {
	case TypeIDBoolean:
		e.Bool(v.(bool))
	case TypeIDSByte:
		e.SByte(v.(int8))
	case TypeIDByte:
		e.Byte(v.(uint8))
	case TypeIDInt16:
		e.Int16(v.(int16))
	case TypeIDUInt16:
		e.Uint16(v.(uint16))
	case TypeIDInt32:
		e.Int32(v.(int32))
	case TypeIDUInt32:
		e.Uint32(v.(uint32))
	case TypeIDInt64:
		e.Int64(v.(int64))
	case TypeIDUInt64:
		e.Uint64(v.(uint64))
	case TypeIDFloat:
		e.Float32(v.(float32))
	case TypeIDDouble:
		e.Float64(v.(float64))
	case TypeIDString:
		e.String(v.(string))
	case TypeIDDateTime:
		e.DateTime(v.(DateTime))
	case TypeIDGuid:
		e.Guid(v.(Guid))
	case TypeIDByteString, TypeIDXmlElement:
		e.ByteString(v.([]byte))
	case TypeIDNodeId:
		e.NodeId(v.(NodeId))
	case TypeIDExpandedNodeId:
		e.ExpandedNodeId(v.(ExpandedNodeId))
	case TypeIDStatusCode:
		e.StatusCode(v.(StatusCode))
	case TypeIDQualifiedName:
		e.QualifiedName(v.(QualifiedName))
	case TypeIDLocalizedText:
		e.LocalizedText(v.(LocalizedText))
	case TypeIDExtensionObject:
		e.ExtensionObject(v.(ExtensionObject))
	case TypeIDDataValue:
		e.DataValue(v.(DataValue))
	case TypeIDVariant:
		e.Variant(v.(Variant))
	case TypeIDDiagnosticInfo:
		e.DiagnosticInfo(v.(DiagnosticInfo))
	}
}
