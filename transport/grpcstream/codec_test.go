package grpcstream

import "testing"

func TestRawCodecRoundTrip(t *testing.T) {
	c := rawCodec{}
	src := Msg("some opaque bytes")
	data, err := c.Marshal(&src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var dst Msg
	if err := c.Unmarshal(data, &dst); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(dst) != string(src) {
		t.Fatalf("round trip mismatch: got %q want %q", dst, src)
	}
}

func TestRawCodecRejectsWrongType(t *testing.T) {
	c := rawCodec{}
	if _, err := c.Marshal("not a Msg"); err == nil {
		t.Fatal("expected error marshaling non-Msg value")
	}
	var dst string
	if err := c.Unmarshal([]byte("x"), &dst); err == nil {
		t.Fatal("expected error unmarshaling into non-*Msg value")
	}
}

func TestFrameMarshalRoundTrip(t *testing.T) {
	f := Frame{Seq: 7, Encoding: "snappy", Payload: []byte{1, 2, 3}}
	msg, err := marshalMsg(f)
	if err != nil {
		t.Fatalf("marshalMsg: %v", err)
	}
	got, err := unmarshalMsg(msg)
	if err != nil {
		t.Fatalf("unmarshalMsg: %v", err)
	}
	if got.Seq != f.Seq || got.Encoding != f.Encoding || string(got.Payload) != string(f.Payload) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, f)
	}
}
