package ua

// StructureType selects how a dynamically typed structure's fields
// are laid out on the wire (spec.md §4.7).
type StructureType int32

const (
	StructureTypePlain                 StructureType = 0
	StructureTypeWithOptionalFields     StructureType = 1
	StructureTypeUnion                  StructureType = 2
	StructureTypeWithSubtypedValues     StructureType = 3
	StructureTypeWithSubtypedOptionalFields StructureType = 4
)

// StructureField describes one field of a StructureDefinition: its
// declared DataType, whether it is scalar or array (ValueRank per
// OPC UA Part 3: -1 scalar, 1 array), and whether it is optional
// (meaningful only under StructureWithOptionalFields).
type StructureField struct {
	Name           string
	Description    LocalizedText
	DataType       NodeId
	ValueRank      int32
	ArrayDimensions []uint32
	MaxStringLength uint32
	IsOptional     bool
}

// StructureDefinition is the self-describing metadata fetched from a
// server's DataTypeDefinition attribute, enabling late-bound decode of
// a structure whose concrete Go type the client does not have
// (spec.md §4.7).
type StructureDefinition struct {
	DefaultEncodingID NodeId
	BaseDataType      NodeId
	StructureType     StructureType
	Fields            []StructureField
}

func (d *Decoder) StructureField(field string) (StructureField, error) {
	var f StructureField
	var err error
	if f.Name, err = d.String(field + ".Name"); err != nil {
		return f, err
	}
	if f.Description, err = d.LocalizedText(field + ".Description"); err != nil {
		return f, err
	}
	if f.DataType, err = d.NodeId(field + ".DataType"); err != nil {
		return f, err
	}
	rank, err := d.Int32(field + ".ValueRank")
	if err != nil {
		return f, err
	}
	f.ValueRank = rank

	n, present, err := d.arrayLen(field + ".ArrayDimensions")
	if err != nil {
		return f, err
	}
	if present {
		f.ArrayDimensions = make([]uint32, n)
		for i := range f.ArrayDimensions {
			if f.ArrayDimensions[i], err = d.Uint32(field + ".ArrayDimensions"); err != nil {
				return f, err
			}
		}
	}
	if f.MaxStringLength, err = d.Uint32(field + ".MaxStringLength"); err != nil {
		return f, err
	}
	if f.IsOptional, err = d.Bool(field + ".IsOptional"); err != nil {
		return f, err
	}
	return f, nil
}

func (e *Encoder) StructureField(f StructureField) {
	e.String(f.Name)
	e.LocalizedText(f.Description)
	e.NodeId(f.DataType)
	e.Int32(f.ValueRank)
	if f.ArrayDimensions == nil {
		e.Int32(-1)
	} else {
		e.Int32(int32(len(f.ArrayDimensions)))
		for _, dim := range f.ArrayDimensions {
			e.Uint32(dim)
		}
	}
	e.Uint32(f.MaxStringLength)
	e.Bool(f.IsOptional)
}

func (d *Decoder) StructureDefinition(field string) (StructureDefinition, error) {
	var def StructureDefinition
	var err error
	if def.DefaultEncodingID, err = d.NodeId(field + ".DefaultEncodingId"); err != nil {
		return def, err
	}
	if def.BaseDataType, err = d.NodeId(field + ".BaseDataType"); err != nil {
		return def, err
	}
	st, err := d.Int32(field + ".StructureType")
	if err != nil {
		return def, err
	}
	def.StructureType = StructureType(st)

	n, present, err := d.arrayLen(field + ".Fields")
	if err != nil {
		return def, err
	}
	if present {
		def.Fields = make([]StructureField, n)
		for i := range def.Fields {
			if def.Fields[i], err = d.StructureField(field + ".Fields"); err != nil {
				return def, err
			}
		}
	}
	return def, nil
}

func (e *Encoder) StructureDefinition(def StructureDefinition) {
	e.NodeId(def.DefaultEncodingID)
	e.NodeId(def.BaseDataType)
	e.Int32(int32(def.StructureType))
	if def.Fields == nil {
		e.Int32(-1)
	} else {
		e.Int32(int32(len(def.Fields)))
		for _, f := range def.Fields {
			e.StructureField(f)
		}
	}
}

// DynamicValue is the decoded form of a structure whose Go type was
// not known statically, keyed by field name. Array fields decode to
// []interface{}; scalar fields decode to whatever decodeVariantValue
// returns for that DataType's built-in TypeID (or a nested
// DynamicValue for structures without a built-in TypeID mapping).
type DynamicValue struct {
	Definition StructureDefinition
	Fields     map[string]interface{}
	UnionField string
}

// StructureCache maps a DataType NodeId to its StructureDefinition,
// populated from GetEndpoints/Read(DataTypeDefinition) round-trips and
// held for the session's lifetime (spec.md §4.7).
type StructureCache struct {
	defs map[NodeId]StructureDefinition
}

// NewStructureCache creates an empty cache.
func NewStructureCache() *StructureCache {
	return &StructureCache{defs: make(map[NodeId]StructureDefinition)}
}

// Put records def under id, overwriting any previous entry.
func (c *StructureCache) Put(id NodeId, def StructureDefinition) {
	c.defs[id] = def
}

// Get returns the cached definition for id, if any.
func (c *StructureCache) Get(id NodeId) (StructureDefinition, bool) {
	def, ok := c.defs[id]
	return def, ok
}

// DecodeDynamic decodes buf as an instance of def, dispatching on its
// StructureType per spec.md §4.7. builtin maps a field's DataType
// NodeId to the built-in TypeID used to decode a scalar/array element
// when the field is not itself a nested dynamic structure; fields
// whose DataType is not found in builtin are decoded as nested
// ExtensionObjects and, if their own definition is cached, recursively
// expanded.
func (c *StructureCache) DecodeDynamic(d *Decoder, field string, def StructureDefinition, builtin func(NodeId) (TypeID, bool)) (DynamicValue, error) {
	dv := DynamicValue{Definition: def, Fields: make(map[string]interface{})}

	switch def.StructureType {
	case StructureTypeWithOptionalFields, StructureTypeWithSubtypedOptionalFields:
		var optionalCount int
		for _, f := range def.Fields {
			if f.IsOptional {
				optionalCount++
			}
		}
		mask, err := d.Uint32(field + ".EncodingMask")
		if err != nil {
			return dv, err
		}
		bit := 0
		for _, f := range def.Fields {
			if f.IsOptional {
				present := mask&(1<<uint(bit)) != 0
				bit++
				if !present {
					continue
				}
			}
			val, err := c.decodeField(d, field+"."+f.Name, f, builtin)
			if err != nil {
				return dv, err
			}
			dv.Fields[f.Name] = val
		}
		return dv, nil

	case StructureTypeUnion:
		sw, err := d.Uint32(field + ".SwitchValue")
		if err != nil {
			return dv, err
		}
		if sw == 0 {
			return dv, nil
		}
		idx := int(sw) - 1
		if idx < 0 || idx >= len(def.Fields) {
			return dv, decodeErr(field+".SwitchValue", d.pos-4, ErrEnumRange)
		}
		f := def.Fields[idx]
		val, err := c.decodeField(d, field+"."+f.Name, f, builtin)
		if err != nil {
			return dv, err
		}
		dv.UnionField = f.Name
		dv.Fields[f.Name] = val
		return dv, nil

	default: // StructureTypePlain, StructureTypeWithSubtypedValues
		for _, f := range def.Fields {
			val, err := c.decodeField(d, field+"."+f.Name, f, builtin)
			if err != nil {
				return dv, err
			}
			dv.Fields[f.Name] = val
		}
		return dv, nil
	}
}

func (c *StructureCache) decodeField(d *Decoder, field string, f StructureField, builtin func(NodeId) (TypeID, bool)) (interface{}, error) {
	if f.ValueRank >= 1 {
		n, present, err := d.arrayLen(field)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		elems := make([]interface{}, n)
		for i := range elems {
			v, err := c.decodeScalarField(d, field, f, builtin)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return elems, nil
	}
	return c.decodeScalarField(d, field, f, builtin)
}

func (c *StructureCache) decodeScalarField(d *Decoder, field string, f StructureField, builtin func(NodeId) (TypeID, bool)) (interface{}, error) {
	if id, ok := builtin(f.DataType); ok {
		return d.decodeVariantValue(field, id)
	}

	eo, err := d.ExtensionObject(field)
	if err != nil {
		return nil, err
	}
	if eo.Encoding != ExtensionObjectBinary || eo.Body == nil {
		return eo, nil
	}
	if nested, ok := c.Get(eo.TypeID); ok {
		nd := NewDecoder(eo.Body)
		return c.DecodeDynamic(nd, field, nested, builtin)
	}
	return eo, nil
}
