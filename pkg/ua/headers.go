package ua

// RequestHeader is prepended to every service request (spec.md §5).
type RequestHeader struct {
	AuthenticationToken NodeId
	Timestamp           DateTime
	RequestHandle       uint32
	ReturnDiagnostics   uint32
	AuditEntryID        string
	TimeoutHint         uint32
	AdditionalHeader    ExtensionObject
}

func (d *Decoder) RequestHeader(field string) (RequestHeader, error) {
	var h RequestHeader
	var err error
	if h.AuthenticationToken, err = d.NodeId(field + ".AuthenticationToken"); err != nil {
		return h, err
	}
	if h.Timestamp, err = d.DateTime(field + ".Timestamp"); err != nil {
		return h, err
	}
	if h.RequestHandle, err = d.Uint32(field + ".RequestHandle"); err != nil {
		return h, err
	}
	if h.ReturnDiagnostics, err = d.Uint32(field + ".ReturnDiagnostics"); err != nil {
		return h, err
	}
	if h.AuditEntryID, err = d.String(field + ".AuditEntryId"); err != nil {
		return h, err
	}
	if h.TimeoutHint, err = d.Uint32(field + ".TimeoutHint"); err != nil {
		return h, err
	}
	if h.AdditionalHeader, err = d.ExtensionObject(field + ".AdditionalHeader"); err != nil {
		return h, err
	}
	return h, nil
}

func (e *Encoder) RequestHeader(h RequestHeader) {
	e.NodeId(h.AuthenticationToken)
	e.DateTime(h.Timestamp)
	e.Uint32(h.RequestHandle)
	e.Uint32(h.ReturnDiagnostics)
	e.String(h.AuditEntryID)
	e.Uint32(h.TimeoutHint)
	e.ExtensionObject(h.AdditionalHeader)
}

// ResponseHeader is prepended to every service response (spec.md §5).
type ResponseHeader struct {
	Timestamp          DateTime
	RequestHandle      uint32
	ServiceResult      StatusCode
	ServiceDiagnostics DiagnosticInfo
	StringTable        []string
	AdditionalHeader   ExtensionObject
}

func (d *Decoder) ResponseHeader(field string) (ResponseHeader, error) {
	var h ResponseHeader
	var err error
	if h.Timestamp, err = d.DateTime(field + ".Timestamp"); err != nil {
		return h, err
	}
	if h.RequestHandle, err = d.Uint32(field + ".RequestHandle"); err != nil {
		return h, err
	}
	if h.ServiceResult, err = d.StatusCode(field + ".ServiceResult"); err != nil {
		return h, err
	}
	if h.ServiceDiagnostics, err = d.DiagnosticInfo(field + ".ServiceDiagnostics"); err != nil {
		return h, err
	}
	n, present, err := d.arrayLen(field + ".StringTable")
	if err != nil {
		return h, err
	}
	if present {
		h.StringTable = make([]string, n)
		for i := range h.StringTable {
			if h.StringTable[i], err = d.String(field + ".StringTable"); err != nil {
				return h, err
			}
		}
	}
	if h.AdditionalHeader, err = d.ExtensionObject(field + ".AdditionalHeader"); err != nil {
		return h, err
	}
	return h, nil
}

func (e *Encoder) ResponseHeader(h ResponseHeader) {
	e.DateTime(h.Timestamp)
	e.Uint32(h.RequestHandle)
	e.StatusCode(h.ServiceResult)
	e.DiagnosticInfo(h.ServiceDiagnostics)
	if h.StringTable == nil {
		e.Int32(-1)
	} else {
		e.Int32(int32(len(h.StringTable)))
		for _, s := range h.StringTable {
			e.String(s)
		}
	}
	e.ExtensionObject(h.AdditionalHeader)
}
