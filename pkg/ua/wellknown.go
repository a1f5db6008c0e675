package ua

// Well-known DataType NodeIds (namespace 0, Part 6 Opc.Ua.NodeIds)
// whose layout this client knows statically, so an ExtensionObject
// carrying one of them decodes without a DataTypeDefinition round-trip
// (spec.md §4.7: "a small built-in table handles well-known types...
// without a server round-trip").
const (
	DataTypeIDBuildInfo            uint32 = 338
	DataTypeIDServerStatusDataType uint32 = 862
)

// BuildInfo describes a server's build provenance, normally read as
// part of ServerStatusDataType or the Server_ServerStatus_BuildInfo
// variable directly.
type BuildInfo struct {
	ProductURI       string
	ManufacturerName string
	ProductName      string
	SoftwareVersion  string
	BuildNumber      string
	BuildDate        DateTime
}

func (d *Decoder) BuildInfo(field string) (BuildInfo, error) {
	var b BuildInfo
	var err error
	if b.ProductURI, err = d.String(field + ".ProductUri"); err != nil {
		return b, err
	}
	if b.ManufacturerName, err = d.String(field + ".ManufacturerName"); err != nil {
		return b, err
	}
	if b.ProductName, err = d.String(field + ".ProductName"); err != nil {
		return b, err
	}
	if b.SoftwareVersion, err = d.String(field + ".SoftwareVersion"); err != nil {
		return b, err
	}
	if b.BuildNumber, err = d.String(field + ".BuildNumber"); err != nil {
		return b, err
	}
	if b.BuildDate, err = d.DateTime(field + ".BuildDate"); err != nil {
		return b, err
	}
	return b, nil
}

func (e *Encoder) BuildInfo(b BuildInfo) {
	e.String(b.ProductURI)
	e.String(b.ManufacturerName)
	e.String(b.ProductName)
	e.String(b.SoftwareVersion)
	e.String(b.BuildNumber)
	e.DateTime(b.BuildDate)
}

// ServerState mirrors the OPC UA ServerState enumeration (Part 5 §C.5.7).
type ServerState int32

const (
	ServerStateRunning             ServerState = 0
	ServerStateFailed              ServerState = 1
	ServerStateNoConfiguration     ServerState = 2
	ServerStateSuspended           ServerState = 3
	ServerStateShutdown            ServerState = 4
	ServerStateTest                ServerState = 5
	ServerStateCommunicationFault  ServerState = 6
	ServerStateUnknown             ServerState = 7
)

// ServerStatusDataType is the value of the Server_ServerStatus
// variable: liveness and build identity a client can poll or read out
// of a DataChangeNotification without ever asking the server what its
// wire layout is.
type ServerStatusDataType struct {
	StartTime           DateTime
	CurrentTime         DateTime
	State               ServerState
	BuildInfo           BuildInfo
	SecondsTillShutdown uint32
	ShutdownReason      LocalizedText
}

func (d *Decoder) ServerStatusDataType(field string) (ServerStatusDataType, error) {
	var s ServerStatusDataType
	var err error
	if s.StartTime, err = d.DateTime(field + ".StartTime"); err != nil {
		return s, err
	}
	if s.CurrentTime, err = d.DateTime(field + ".CurrentTime"); err != nil {
		return s, err
	}
	state, err := d.Int32(field + ".State")
	if err != nil {
		return s, err
	}
	s.State = ServerState(state)
	if s.BuildInfo, err = d.BuildInfo(field + ".BuildInfo"); err != nil {
		return s, err
	}
	if s.SecondsTillShutdown, err = d.Uint32(field + ".SecondsTillShutdown"); err != nil {
		return s, err
	}
	if s.ShutdownReason, err = d.LocalizedText(field + ".ShutdownReason"); err != nil {
		return s, err
	}
	return s, nil
}

func (e *Encoder) ServerStatusDataType(s ServerStatusDataType) {
	e.DateTime(s.StartTime)
	e.DateTime(s.CurrentTime)
	e.Int32(int32(s.State))
	e.BuildInfo(s.BuildInfo)
	e.Uint32(s.SecondsTillShutdown)
	e.LocalizedText(s.ShutdownReason)
}

// DecodeWellKnown decodes eo's body directly when its TypeId names one
// of the structures this file knows how to read natively, sparing the
// caller a DataTypeDefinition fetch through StructureCache. ok is false
// for any other TypeId, in which case the caller should fall back to
// dynamic decode.
func DecodeWellKnown(eo ExtensionObject) (value interface{}, ok bool, err error) {
	if eo.TypeID.Namespace != 0 || eo.TypeID.Type != NodeIDTypeNumeric || eo.Encoding != ExtensionObjectBinary {
		return nil, false, nil
	}
	d := NewDecoder(eo.Body)
	switch eo.TypeID.Numeric {
	case DataTypeIDBuildInfo:
		v, err := d.BuildInfo("BuildInfo")
		return v, true, err
	case DataTypeIDServerStatusDataType:
		v, err := d.ServerStatusDataType("ServerStatusDataType")
		return v, true, err
	default:
		return nil, false, nil
	}
}
