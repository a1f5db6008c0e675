package ua

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestArrayLengthSentinel(t *testing.T) {
	// -1 decodes to an absent (nil) array, never to a panic or a huge
	// allocation from reinterpreting it as unsigned.
	e := NewEncoder()
	e.Int32(-1)
	d := NewDecoder(e.Bytes())
	b, err := d.ByteString("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != nil {
		t.Fatalf("want nil, got %v", b)
	}

	e2 := NewEncoder()
	e2.Int32(-2)
	d2 := NewDecoder(e2.Bytes())
	if _, err := d2.ByteString("x"); err == nil {
		t.Fatal("want error for length < -1")
	}
}

func TestStringRoundtrip(t *testing.T) {
	for _, s := range []string{"", "hello", "日本語"} {
		e := NewEncoder()
		e.String(s)
		d := NewDecoder(e.Bytes())
		got, err := d.String("s")
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got != s {
			t.Fatalf("want %q got %q", s, got)
		}
	}
}

func TestGuidRoundtrip(t *testing.T) {
	// Test vector: 72962B91-FA75-4AE6-8D28-B404DC7DAF63 encodes as
	// 91 2B 96 72 75 FA E6 4A 8D 28 B4 04 DC 7D AF 63.
	want := uuid.MustParse("72962B91-FA75-4AE6-8D28-B404DC7DAF63")
	wire := []byte{0x91, 0x2B, 0x96, 0x72, 0x75, 0xFA, 0xE6, 0x4A, 0x8D, 0x28, 0xB4, 0x04, 0xDC, 0x7D, 0xAF, 0x63}

	e := NewEncoder()
	e.Guid(want)
	if !bytes.Equal(e.Bytes(), wire) {
		t.Fatalf("encode mismatch: got % X want % X", e.Bytes(), wire)
	}

	d := NewDecoder(wire)
	got, err := d.Guid("g")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("decode mismatch: got %s want %s", got, want)
	}
}

func TestNodeIdShortestForm(t *testing.T) {
	cases := []struct {
		name string
		n    NodeId
		want byte // expected first byte (encoding form)
	}{
		{"two-byte", NewNumericNodeID(0, 5), nodeIDEncodingTwoByte},
		{"four-byte", NewNumericNodeID(2, 300), nodeIDEncodingFourByte},
		{"numeric", NewNumericNodeID(5000, 70000), nodeIDEncodingNumeric},
		{"string", NewStringNodeID(1, "Tag"), nodeIDEncodingString},
	}
	for _, c := range cases {
		e := NewEncoder()
		e.NodeId(c.n)
		if e.Bytes()[0] != c.want {
			t.Errorf("%s: encoding byte = 0x%02X, want 0x%02X", c.name, e.Bytes()[0], c.want)
		}
		d := NewDecoder(e.Bytes())
		got, err := d.NodeId("n")
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !got.Equal(c.n) {
			t.Errorf("%s: roundtrip mismatch: got %s want %s", c.name, got, c.n)
		}
	}
}

func TestVariantScalarRoundtrip(t *testing.T) {
	v := NewVariant(TypeIDInt32, int32(-42))
	e := NewEncoder()
	e.Variant(v)
	d := NewDecoder(e.Bytes())
	got, err := d.Variant("v")
	if err != nil {
		t.Fatal(err)
	}
	if got.Value.(int32) != -42 {
		t.Fatalf("got %v", got.Value)
	}
}

func TestVariantArrayRoundtrip(t *testing.T) {
	v := NewVariantArray(TypeIDString, []interface{}{"a", "b", "c"}, nil)
	e := NewEncoder()
	e.Variant(v)
	d := NewDecoder(e.Bytes())
	got, err := d.Variant("v")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Array) != 3 || got.Array[1].(string) != "b" {
		t.Fatalf("got %v", got.Array)
	}
}

func TestVariantNullArray(t *testing.T) {
	v := NewVariantArray(TypeIDInt32, nil, nil)
	e := NewEncoder()
	e.Variant(v)
	d := NewDecoder(e.Bytes())
	got, err := d.Variant("v")
	if err != nil {
		t.Fatal(err)
	}
	if got.Array != nil {
		t.Fatalf("want nil array, got %v", got.Array)
	}
}

func TestDataValuePresenceMask(t *testing.T) {
	dv := DataValue{
		Value:    NewVariant(TypeIDBoolean, true),
		HasValue: true,
		Status:   StatusBadTimeout,
		HasStatus: true,
	}
	e := NewEncoder()
	e.DataValue(dv)
	d := NewDecoder(e.Bytes())
	got, err := d.DataValue("dv")
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasValue || got.Value.Value.(bool) != true {
		t.Fatalf("value mismatch: %+v", got)
	}
	if !got.HasStatus || got.Status != StatusBadTimeout {
		t.Fatalf("status mismatch: %+v", got)
	}
	if got.HasSourceTime || got.HasServerTime {
		t.Fatalf("unexpected timestamp presence: %+v", got)
	}
}

func TestCreateSessionResponseAnonymousSeed(t *testing.T) {
	// Minimal CreateSessionResponse with every optional array encoded
	// as the -1 null sentinel, as an anonymous-logon server might send.
	e := NewEncoder()
	resp := CreateSessionResponse{
		ResponseHeader: ResponseHeader{ServiceResult: StatusGood},
		SessionID:      NewNumericNodeID(0, 1),
		AuthenticationToken: NewNumericNodeID(0, 2),
		RevisedSessionTimeout: 60000,
		ServerNonce: nil,
		ServerCertificate: nil,
		ServerEndpoints: nil,
		ServerSignature: SignatureData{},
		MaxRequestMessageSize: 0,
	}
	e.CreateSessionResponse(resp)

	d := NewDecoder(e.Bytes())
	got, err := d.CreateSessionResponse("r")
	if err != nil {
		t.Fatal(err)
	}
	if got.ServerEndpoints != nil {
		t.Fatalf("want nil endpoints, got %v", got.ServerEndpoints)
	}
	if !got.SessionID.Equal(resp.SessionID) {
		t.Fatalf("session id mismatch")
	}
	if d.Remaining() != 0 {
		t.Fatalf("%d unread bytes remain", d.Remaining())
	}
}

func TestStructureDefinitionWithOptionalFields(t *testing.T) {
	def := StructureDefinition{
		StructureType: StructureTypeWithOptionalFields,
		Fields: []StructureField{
			{Name: "A", DataType: NewNumericNodeID(0, uint32(TypeIDInt32)), ValueRank: -1},
			{Name: "B", DataType: NewNumericNodeID(0, uint32(TypeIDString)), ValueRank: -1, IsOptional: true},
		},
	}
	builtin := func(n NodeId) (TypeID, bool) {
		if n.Namespace == 0 && n.Type == NodeIDTypeNumeric {
			return TypeID(n.Numeric), true
		}
		return 0, false
	}

	// Encode manually: mask=0 (optional field B absent), then field A only.
	e := NewEncoder()
	e.Uint32(0)
	e.Int32(7)

	cache := NewStructureCache()
	d := NewDecoder(e.Bytes())
	dv, err := cache.DecodeDynamic(d, "s", def, builtin)
	if err != nil {
		t.Fatal(err)
	}
	if dv.Fields["A"].(int32) != 7 {
		t.Fatalf("got %v", dv.Fields["A"])
	}
	if _, ok := dv.Fields["B"]; ok {
		t.Fatalf("optional field B should be absent, got %v", dv.Fields["B"])
	}
}

func TestStructureDefinitionUnion(t *testing.T) {
	def := StructureDefinition{
		StructureType: StructureTypeUnion,
		Fields: []StructureField{
			{Name: "AsInt", DataType: NewNumericNodeID(0, uint32(TypeIDInt32)), ValueRank: -1},
			{Name: "AsString", DataType: NewNumericNodeID(0, uint32(TypeIDString)), ValueRank: -1},
		},
	}
	builtin := func(n NodeId) (TypeID, bool) { return TypeID(n.Numeric), true }

	e := NewEncoder()
	e.Uint32(2) // selects field index 1: AsString
	e.String("hi")

	cache := NewStructureCache()
	d := NewDecoder(e.Bytes())
	dv, err := cache.DecodeDynamic(d, "u", def, builtin)
	if err != nil {
		t.Fatal(err)
	}
	if dv.UnionField != "AsString" || dv.Fields["AsString"].(string) != "hi" {
		t.Fatalf("got %+v", dv)
	}
}

func TestStatusCodeSeverity(t *testing.T) {
	if !StatusGood.IsGood() {
		t.Fatal("StatusGood should be good")
	}
	if !StatusBadTimeout.IsBad() {
		t.Fatal("StatusBadTimeout should be bad")
	}
	if StatusGood.String() != "0x00000000" {
		t.Fatalf("got %s", StatusGood.String())
	}
}
