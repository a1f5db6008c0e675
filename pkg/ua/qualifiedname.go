package ua

// QualifiedName is a name qualified by a namespace index, used for
// browse names throughout the address space (spec.md §3).
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

func (d *Decoder) QualifiedName(field string) (QualifiedName, error) {
	ns, err := d.Uint16(field + ".NamespaceIndex")
	if err != nil {
		return QualifiedName{}, err
	}
	name, err := d.String(field + ".Name")
	if err != nil {
		return QualifiedName{}, err
	}
	return QualifiedName{NamespaceIndex: ns, Name: name}, nil
}

func (e *Encoder) QualifiedName(q QualifiedName) {
	e.Uint16(q.NamespaceIndex)
	e.String(q.Name)
}

// LocalizedText is a human-readable string with an optional IETF
// locale tag. The encoding byte's low two bits signal which of Locale
// and Text are present (spec.md §3).
type LocalizedText struct {
	Locale string
	Text   string
}

const (
	localizedTextLocaleFlag = 0x01
	localizedTextTextFlag   = 0x02
)

func (d *Decoder) LocalizedText(field string) (LocalizedText, error) {
	var lt LocalizedText
	enc, err := d.Byte(field + ".Encoding")
	if err != nil {
		return lt, err
	}
	if enc&localizedTextLocaleFlag != 0 {
		lt.Locale, err = d.String(field + ".Locale")
		if err != nil {
			return lt, err
		}
	}
	if enc&localizedTextTextFlag != 0 {
		lt.Text, err = d.String(field + ".Text")
		if err != nil {
			return lt, err
		}
	}
	return lt, nil
}

func (e *Encoder) LocalizedText(lt LocalizedText) {
	var enc byte
	if lt.Locale != "" {
		enc |= localizedTextLocaleFlag
	}
	if lt.Text != "" {
		enc |= localizedTextTextFlag
	}
	e.Byte(enc)
	if lt.Locale != "" {
		e.String(lt.Locale)
	}
	if lt.Text != "" {
		e.String(lt.Text)
	}
}
