package ua

import "fmt"

// NodeIDType discriminates the identifier variant carried by a NodeId.
type NodeIDType int

const (
	NodeIDTypeNumeric NodeIDType = iota
	NodeIDTypeString
	NodeIDTypeGuid
	NodeIDTypeOpaque
)

// Encoding bytes from spec.md §3: the six wire forms a
// NodeId may take, chosen by value range on encode and all accepted
// on decode.
const (
	nodeIDEncodingTwoByte   = 0x00
	nodeIDEncodingFourByte  = 0x01
	nodeIDEncodingNumeric   = 0x02
	nodeIDEncodingString    = 0x03
	nodeIDEncodingGUID      = 0x04
	nodeIDEncodingOpaque    = 0x05

	// Overloaded on ExpandedNodeId only.
	expandedNamespaceURIFlag = 0x80
	expandedServerIndexFlag  = 0x40
	nodeIDEncodingMask       = 0x3F
)

// NodeId is a tagged identifier: a namespace index plus one of
// {numeric uint32, string, Guid, opaque []byte}.
type NodeId struct {
	Namespace uint16
	Type      NodeIDType
	Numeric   uint32
	Str       string
	GUID      Guid
	Opaque    []byte
}

// NewNumericNodeID builds a numeric NodeId.
func NewNumericNodeID(ns uint16, id uint32) NodeId {
	return NodeId{Namespace: ns, Type: NodeIDTypeNumeric, Numeric: id}
}

// NewStringNodeID builds a string NodeId.
func NewStringNodeID(ns uint16, id string) NodeId {
	return NodeId{Namespace: ns, Type: NodeIDTypeString, Str: id}
}

// NewGUIDNodeID builds a Guid NodeId.
func NewGUIDNodeID(ns uint16, id Guid) NodeId {
	return NodeId{Namespace: ns, Type: NodeIDTypeGuid, GUID: id}
}

// NewOpaqueNodeID builds an opaque (ByteString) NodeId.
func NewOpaqueNodeID(ns uint16, id []byte) NodeId {
	return NodeId{Namespace: ns, Type: NodeIDTypeOpaque, Opaque: id}
}

// Equal reports whether two NodeIds have the same namespace and
// identifier variant/value, per spec.md §3.
func (n NodeId) Equal(o NodeId) bool {
	if n.Namespace != o.Namespace || n.Type != o.Type {
		return false
	}
	switch n.Type {
	case NodeIDTypeNumeric:
		return n.Numeric == o.Numeric
	case NodeIDTypeString:
		return n.Str == o.Str
	case NodeIDTypeGuid:
		return n.GUID == o.GUID
	case NodeIDTypeOpaque:
		return string(n.Opaque) == string(o.Opaque)
	}
	return false
}

func (n NodeId) String() string {
	switch n.Type {
	case NodeIDTypeNumeric:
		return fmt.Sprintf("ns=%d;i=%d", n.Namespace, n.Numeric)
	case NodeIDTypeString:
		return fmt.Sprintf("ns=%d;s=%s", n.Namespace, n.Str)
	case NodeIDTypeGuid:
		return fmt.Sprintf("ns=%d;g=%s", n.Namespace, n.GUID.String())
	case NodeIDTypeOpaque:
		return fmt.Sprintf("ns=%d;b=%x", n.Namespace, n.Opaque)
	}
	return "ns=0;i=0"
}

// NodeId decodes a NodeId, accepting every one of the six
// wire forms spec.md §3 defines.
func (d *Decoder) NodeId(field string) (NodeId, error) {
	n, _, _, err := d.nodeIDImpl(field, false)
	return n, err
}

func (d *Decoder) nodeIDImpl(field string, expanded bool) (NodeId, string, uint32, error) {
	var n NodeId
	var namespaceURI string
	var serverIndex uint32

	enc, err := d.Byte(field + ".Encoding")
	if err != nil {
		return n, "", 0, err
	}

	hasNamespaceURI := expanded && enc&expandedNamespaceURIFlag != 0
	hasServerIndex := expanded && enc&expandedServerIndexFlag != 0
	form := enc & nodeIDEncodingMask

	switch form {
	case nodeIDEncodingTwoByte:
		id, err := d.Byte(field + ".Identifier")
		if err != nil {
			return n, "", 0, err
		}
		n = NewNumericNodeID(0, uint32(id))

	case nodeIDEncodingFourByte:
		ns, err := d.Byte(field + ".Namespace")
		if err != nil {
			return n, "", 0, err
		}
		id, err := d.Uint16(field + ".Identifier")
		if err != nil {
			return n, "", 0, err
		}
		n = NewNumericNodeID(uint16(ns), uint32(id))

	case nodeIDEncodingNumeric:
		ns, err := d.Uint16(field + ".Namespace")
		if err != nil {
			return n, "", 0, err
		}
		id, err := d.Uint32(field + ".Identifier")
		if err != nil {
			return n, "", 0, err
		}
		n = NewNumericNodeID(ns, id)

	case nodeIDEncodingString:
		ns, err := d.Uint16(field + ".Namespace")
		if err != nil {
			return n, "", 0, err
		}
		id, err := d.String(field + ".Identifier")
		if err != nil {
			return n, "", 0, err
		}
		n = NewStringNodeID(ns, id)

	case nodeIDEncodingGUID:
		ns, err := d.Uint16(field + ".Namespace")
		if err != nil {
			return n, "", 0, err
		}
		id, err := d.Guid(field + ".Identifier")
		if err != nil {
			return n, "", 0, err
		}
		n = NewGUIDNodeID(ns, id)

	case nodeIDEncodingOpaque:
		ns, err := d.Uint16(field + ".Namespace")
		if err != nil {
			return n, "", 0, err
		}
		id, err := d.ByteString(field + ".Identifier")
		if err != nil {
			return n, "", 0, err
		}
		n = NewOpaqueNodeID(ns, id)

	default:
		return n, "", 0, decodeErr(field+".Encoding", d.pos-1, ErrInvalidEncoding)
	}

	if hasNamespaceURI {
		uri, err := d.String(field + ".NamespaceURI")
		if err != nil {
			return n, "", 0, err
		}
		namespaceURI = uri
	}
	if hasServerIndex {
		idx, err := d.Uint32(field + ".ServerIndex")
		if err != nil {
			return n, "", 0, err
		}
		serverIndex = idx
	}
	return n, namespaceURI, serverIndex, nil
}

// NodeId encodes a NodeId in the shortest legal form for its value
// range, per spec.md §3's canonicality invariant.
func (e *Encoder) NodeId(n NodeId) {
	e.expandedNodeID(n, "", 0, false)
}

func (e *Encoder) expandedNodeID(n NodeId, namespaceURI string, serverIndex uint32, expanded bool) {
	var flags byte
	if expanded && namespaceURI != "" {
		flags |= expandedNamespaceURIFlag
	}
	if expanded && serverIndex != 0 {
		flags |= expandedServerIndexFlag
	}

	switch n.Type {
	case NodeIDTypeNumeric:
		switch {
		case n.Namespace == 0 && n.Numeric <= 0xFF:
			e.Byte(flags | nodeIDEncodingTwoByte)
			e.Byte(uint8(n.Numeric))
		case n.Namespace <= 0xFF && n.Numeric <= 0xFFFF:
			e.Byte(flags | nodeIDEncodingFourByte)
			e.Byte(uint8(n.Namespace))
			e.Uint16(uint16(n.Numeric))
		default:
			e.Byte(flags | nodeIDEncodingNumeric)
			e.Uint16(n.Namespace)
			e.Uint32(n.Numeric)
		}
	case NodeIDTypeString:
		e.Byte(flags | nodeIDEncodingString)
		e.Uint16(n.Namespace)
		e.String(n.Str)
	case NodeIDTypeGuid:
		e.Byte(flags | nodeIDEncodingGUID)
		e.Uint16(n.Namespace)
		e.Guid(n.GUID)
	case NodeIDTypeOpaque:
		e.Byte(flags | nodeIDEncodingOpaque)
		e.Uint16(n.Namespace)
		e.ByteString(n.Opaque)
	}

	if expanded && namespaceURI != "" {
		e.String(namespaceURI)
	}
	if expanded && serverIndex != 0 {
		e.Uint32(serverIndex)
	}
}

// ExpandedNodeId is a NodeId plus an optional namespace URI and
// server index, per spec.md §3.
type ExpandedNodeId struct {
	NodeId       NodeId
	NamespaceURI string
	ServerIndex  uint32
}

func (d *Decoder) ExpandedNodeId(field string) (ExpandedNodeId, error) {
	n, uri, idx, err := d.nodeIDImpl(field, true)
	if err != nil {
		return ExpandedNodeId{}, err
	}
	return ExpandedNodeId{NodeId: n, NamespaceURI: uri, ServerIndex: idx}, nil
}

func (e *Encoder) ExpandedNodeId(x ExpandedNodeId) {
	e.expandedNodeID(x.NodeId, x.NamespaceURI, x.ServerIndex, true)
}
