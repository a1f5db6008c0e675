package ua

import (
	"testing"
	"time"
)

var testRefTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestBuildInfoRoundtrip(t *testing.T) {
	want := BuildInfo{
		ProductURI:       "urn:example:server",
		ManufacturerName: "Example Corp",
		ProductName:      "Example Server",
		SoftwareVersion:  "1.2.3",
		BuildNumber:      "456",
		BuildDate:        NewDateTime(testRefTime),
	}
	e := NewEncoder()
	e.BuildInfo(want)
	got, err := NewDecoder(e.Bytes()).BuildInfo("BuildInfo")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("BuildInfo roundtrip: got %+v, want %+v", got, want)
	}
}

func TestServerStatusDataTypeRoundtrip(t *testing.T) {
	want := ServerStatusDataType{
		StartTime:   NewDateTime(testRefTime),
		CurrentTime: NewDateTime(testRefTime),
		State:       ServerStateRunning,
		BuildInfo: BuildInfo{
			ProductURI: "urn:example:server",
		},
		SecondsTillShutdown: 0,
		ShutdownReason:      LocalizedText{Locale: "en", Text: ""},
	}
	e := NewEncoder()
	e.ServerStatusDataType(want)
	got, err := NewDecoder(e.Bytes()).ServerStatusDataType("ServerStatusDataType")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("ServerStatusDataType roundtrip: got %+v, want %+v", got, want)
	}
}

func TestDecodeWellKnownBuildInfo(t *testing.T) {
	info := BuildInfo{ProductURI: "urn:example:server", SoftwareVersion: "1.0"}
	e := NewEncoder()
	e.BuildInfo(info)
	eo := ExtensionObject{
		TypeID:   NewNumericNodeID(0, DataTypeIDBuildInfo),
		Encoding: ExtensionObjectBinary,
		Body:     e.Bytes(),
	}
	v, ok, err := DecodeWellKnown(eo)
	if err != nil {
		t.Fatalf("DecodeWellKnown: %v", err)
	}
	if !ok {
		t.Fatal("DecodeWellKnown: want ok=true for BuildInfo TypeId")
	}
	got, ok := v.(BuildInfo)
	if !ok {
		t.Fatalf("DecodeWellKnown: want BuildInfo, got %T", v)
	}
	if got != info {
		t.Fatalf("DecodeWellKnown: got %+v, want %+v", got, info)
	}
}

func TestDecodeWellKnownUnknownTypeIDNotOK(t *testing.T) {
	eo := ExtensionObject{
		TypeID:   NewNumericNodeID(0, 99999),
		Encoding: ExtensionObjectBinary,
		Body:     []byte{1, 2, 3},
	}
	_, ok, err := DecodeWellKnown(eo)
	if err != nil {
		t.Fatalf("DecodeWellKnown: %v", err)
	}
	if ok {
		t.Fatal("DecodeWellKnown: want ok=false for unrecognized TypeId")
	}
}
