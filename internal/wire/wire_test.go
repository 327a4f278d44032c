package wire

import (
	"bytes"
	"testing"
)

func TestAppendVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40}
	for _, v := range cases {
		buf := AppendVarint(nil, v)
		r := NewReader(buf)
		got, err := r.Varint()
		if err != nil {
			t.Fatalf("Varint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("got %d, want %d", got, v)
		}
		if !r.Done() {
			t.Errorf("reader not exhausted after decoding %d", v)
		}
	}
}

func TestAppendTagSplitsFieldNumberAndWireType(t *testing.T) {
	buf := AppendTag(nil, 5, WireBytes)
	r := NewReader(buf)
	fn, wt, err := r.Tag()
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if fn != 5 || wt != WireBytes {
		t.Fatalf("got (%d, %d), want (5, %d)", fn, wt, WireBytes)
	}
}

func TestZeroValueFieldsAreOmitted(t *testing.T) {
	var buf []byte
	buf = AppendUint32Field(buf, 1, 0)
	buf = AppendBoolField(buf, 2, false)
	buf = AppendStringField(buf, 3, "")
	buf = AppendBytesField(buf, 4, nil)
	if len(buf) != 0 {
		t.Fatalf("expected no bytes written for zero-value fields, got %x", buf)
	}
}

func TestStringFieldRoundTrip(t *testing.T) {
	buf := AppendStringField(nil, 1, "esphome-native-api")
	r := NewReader(buf)
	fn, wt, err := r.Tag()
	if err != nil || fn != 1 || wt != WireBytes {
		t.Fatalf("Tag: fn=%d wt=%d err=%v", fn, wt, err)
	}
	s, err := r.String()
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if s != "esphome-native-api" {
		t.Errorf("got %q, want %q", s, "esphome-native-api")
	}
}

func TestSkipValueConsumesUnknownFields(t *testing.T) {
	var buf []byte
	buf = AppendStringField(buf, 1, "skip-me")
	buf = AppendUint32Field(buf, 2, 42)

	r := NewReader(buf)
	fn, wt, err := r.Tag()
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if fn != 1 {
		t.Fatalf("got field %d, want 1", fn)
	}
	if err := r.SkipValue(wt); err != nil {
		t.Fatalf("SkipValue: %v", err)
	}

	fn, wt, err = r.Tag()
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if fn != 2 {
		t.Fatalf("got field %d, want 2", fn)
	}
	v, err := r.Varint()
	if err != nil || v != 42 {
		t.Fatalf("Varint: got %d, err %v", v, err)
	}
}

func TestReaderReturnsErrTruncated(t *testing.T) {
	r := NewReader([]byte{0x05}) // length-delimited field claiming 5 bytes, none present
	if _, err := r.Bytes(); err != ErrTruncated {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
}

func TestFixed32FieldRoundTrip(t *testing.T) {
	buf := AppendFixed32Field(nil, 3, 0x3f800000) // 1.0f as IEEE-754 bits
	r := NewReader(buf)
	fn, wt, err := r.Tag()
	if err != nil || fn != 3 || wt != WireFixed32 {
		t.Fatalf("Tag: fn=%d wt=%d err=%v", fn, wt, err)
	}
	v, err := r.Fixed32()
	if err != nil {
		t.Fatalf("Fixed32: %v", err)
	}
	if v != 0x3f800000 {
		t.Errorf("got %#x, want %#x", v, 0x3f800000)
	}
}

func TestFixed32FieldOmitsZeroValue(t *testing.T) {
	if buf := AppendFixed32Field(nil, 1, 0); len(buf) != 0 {
		t.Fatalf("expected no bytes written for a zero fixed32 field, got %x", buf)
	}
}

func TestBytesFieldPreservesContent(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0xff}
	buf := AppendBytesField(nil, 7, payload)
	r := NewReader(buf)
	if _, _, err := r.Tag(); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	got, err := r.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %x, want %x", got, payload)
	}
}
