package ua

// maxDiagnosticInfoDepth bounds InnerDiagnosticInfo nesting. Servers
// are not supposed to nest more than a handful of levels deep; this
// guards against a malicious or buggy peer driving the decoder into
// unbounded recursion.
const maxDiagnosticInfoDepth = 16

// DiagnosticInfo carries extended error information alongside a
// StatusCode. Most fields are indices into the response's string
// table rather than inline strings (spec.md §3).
type DiagnosticInfo struct {
	SymbolicID          int32
	HasSymbolicID       bool
	NamespaceURI        int32
	HasNamespaceURI     bool
	Locale              int32
	HasLocale           bool
	LocalizedText       int32
	HasLocalizedText    bool
	AdditionalInfo      string
	HasAdditionalInfo   bool
	InnerStatusCode     StatusCode
	HasInnerStatusCode  bool
	InnerDiagnosticInfo *DiagnosticInfo
}

const (
	diagSymbolicIDFlag    = 0x01
	diagNamespaceFlag     = 0x02
	diagLocalizedTextFlag = 0x04
	diagLocaleFlag        = 0x08
	diagAdditionalInfo    = 0x10
	diagInnerStatusCode   = 0x20
	diagInnerDiagnostic   = 0x40
)

func (d *Decoder) DiagnosticInfo(field string) (DiagnosticInfo, error) {
	return d.diagnosticInfoDepth(field, 0)
}

func (d *Decoder) diagnosticInfoDepth(field string, depth int) (DiagnosticInfo, error) {
	var di DiagnosticInfo
	if depth > maxDiagnosticInfoDepth {
		return di, decodeErr(field, d.pos, ErrInvalidEncoding)
	}

	mask, err := d.Byte(field + ".Encoding")
	if err != nil {
		return di, err
	}

	if mask&diagSymbolicIDFlag != 0 {
		di.SymbolicID, err = d.Int32(field + ".SymbolicId")
		if err != nil {
			return di, err
		}
		di.HasSymbolicID = true
	}
	if mask&diagNamespaceFlag != 0 {
		di.NamespaceURI, err = d.Int32(field + ".NamespaceUri")
		if err != nil {
			return di, err
		}
		di.HasNamespaceURI = true
	}
	if mask&diagLocalizedTextFlag != 0 {
		di.LocalizedText, err = d.Int32(field + ".LocalizedText")
		if err != nil {
			return di, err
		}
		di.HasLocalizedText = true
	}
	if mask&diagLocaleFlag != 0 {
		di.Locale, err = d.Int32(field + ".Locale")
		if err != nil {
			return di, err
		}
		di.HasLocale = true
	}
	if mask&diagAdditionalInfo != 0 {
		di.AdditionalInfo, err = d.String(field + ".AdditionalInfo")
		if err != nil {
			return di, err
		}
		di.HasAdditionalInfo = true
	}
	if mask&diagInnerStatusCode != 0 {
		di.InnerStatusCode, err = d.StatusCode(field + ".InnerStatusCode")
		if err != nil {
			return di, err
		}
		di.HasInnerStatusCode = true
	}
	if mask&diagInnerDiagnostic != 0 {
		inner, err := d.diagnosticInfoDepth(field+".InnerDiagnosticInfo", depth+1)
		if err != nil {
			return di, err
		}
		di.InnerDiagnosticInfo = &inner
	}
	return di, nil
}

func (e *Encoder) DiagnosticInfo(di DiagnosticInfo) {
	var mask byte
	if di.HasSymbolicID {
		mask |= diagSymbolicIDFlag
	}
	if di.HasNamespaceURI {
		mask |= diagNamespaceFlag
	}
	if di.HasLocalizedText {
		mask |= diagLocalizedTextFlag
	}
	if di.HasLocale {
		mask |= diagLocaleFlag
	}
	if di.HasAdditionalInfo {
		mask |= diagAdditionalInfo
	}
	if di.HasInnerStatusCode {
		mask |= diagInnerStatusCode
	}
	if di.InnerDiagnosticInfo != nil {
		mask |= diagInnerDiagnostic
	}
	e.Byte(mask)

	if di.HasSymbolicID {
		e.Int32(di.SymbolicID)
	}
	if di.HasNamespaceURI {
		e.Int32(di.NamespaceURI)
	}
	if di.HasLocalizedText {
		e.Int32(di.LocalizedText)
	}
	if di.HasLocale {
		e.Int32(di.Locale)
	}
	if di.HasAdditionalInfo {
		e.String(di.AdditionalInfo)
	}
	if di.HasInnerStatusCode {
		e.StatusCode(di.InnerStatusCode)
	}
	if di.InnerDiagnosticInfo != nil {
		e.DiagnosticInfo(*di.InnerDiagnosticInfo)
	}
}
