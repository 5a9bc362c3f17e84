package bgp

import (
	"encoding/hex"
	"strings"
	"testing"
)

// mustHex decodes a space-separated hex string, the same form spec
// scenarios are written in, failing the test on malformed input since
// these are only ever used on constant test fixtures.
func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("mustHex: %v", err)
	}
	return b
}

// frame wraps a message body in the 19-byte fixed header: an all-ones
// marker, the total length, and the given type code.
func frame(typ uint8, body []byte) []byte {
	buf := make([]byte, HeaderLen+len(body))
	for i := 0; i < MarkerLen; i++ {
		buf[i] = 0xff
	}
	total := uint16(len(buf))
	buf[16] = byte(total >> 8)
	buf[17] = byte(total)
	buf[18] = typ
	copy(buf[HeaderLen:], body)
	return buf
}

func TestDecodeRejectsBadMarker(t *testing.T) {
	buf := frame(TypeKeepAlive, nil)
	buf[3] = 0x00
	_, err := Decode(buf, Session{})
	if !IsInvalid(err) {
		t.Fatalf("want Invalid, got %v", err)
	}
}

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	buf := frame(TypeKeepAlive, nil)
	buf[17]++ // declared length no longer matches len(buf)
	_, err := Decode(buf, Session{})
	if !IsBadLength(err) {
		t.Fatalf("want BadLength, got %v", err)
	}
}

func TestDecodeRejectsTruncatedMessage(t *testing.T) {
	buf := frame(TypeKeepAlive, nil)
	buf = buf[:len(buf)-1]
	_, err := Decode(buf, Session{})
	if !IsBadLength(err) {
		t.Fatalf("want BadLength, got %v", err)
	}
}

func TestDecodeKeepAlive(t *testing.T) {
	buf := frame(TypeKeepAlive, nil)
	m, err := Decode(buf, Session{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Type() != TypeKeepAlive {
		t.Fatalf("Type() = %d, want %d", m.Type(), TypeKeepAlive)
	}
	if int(m.Length()) != len(buf) {
		t.Fatalf("Length() = %d, want %d", m.Length(), len(buf))
	}
}

// TestDecodeMinimalOpen exercises the Minimal OPEN scenario: an OPEN
// carrying six Optional Parameters, all Capabilities, in a fixed order.
func TestDecodeMinimalOpen(t *testing.T) {
	body := mustHex(t, "04 fc00 00b4 0a000006 24 "+
		"02 06 01 04 00 01 00 01 "+
		"02 02 80 00 "+
		"02 02 02 00 "+
		"02 02 46 00 "+
		"02 06 45 04 00 01 01 03 "+
		"02 06 41 04 00 00 fc 00")
	buf := frame(TypeOpen, body)

	msg, err := Decode(buf, Session{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	open, ok := msg.(*OpenMessage)
	if !ok {
		t.Fatalf("Decode returned %T, want *OpenMessage", msg)
	}
	if open.Version() != 4 {
		t.Errorf("Version() = %d, want 4", open.Version())
	}
	if open.ASN() != 64512 {
		t.Errorf("ASN() = %d, want 64512", open.ASN())
	}
	if open.HoldTime() != 180 {
		t.Errorf("HoldTime() = %d, want 180", open.HoldTime())
	}
	if open.Identifier() != 0x0A000006 {
		t.Errorf("Identifier() = 0x%X, want 0x0A000006", open.Identifier())
	}

	want := []string{
		"MultiProtocol(IPv4,Unicast)",
		"Private(128)",
		"RouteRefresh",
		"EnhancedRouteRefresh",
		"AddPath(IPv4,Unicast,3)",
		"FourByteASN(64512)",
	}
	it := open.OptionalParameters()
	var got []string
	for it.Next() {
		p := it.Param()
		if !p.IsCapability() {
			t.Fatalf("parameter type %d is not a capability", p.Code())
		}
		cap, err := p.Capability()
		if err != nil {
			t.Fatalf("Capability(): %v", err)
		}
		got = append(got, cap.String())
	}
	if it.Err() != nil {
		t.Fatalf("iteration error: %v", it.Err())
	}
	if len(got) != len(want) {
		t.Fatalf("got %d capabilities, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("capability %d = %q, want %q", i, got[i], want[i])
		}
	}

	// Re-iterating yields identical elements in identical order.
	it2 := open.OptionalParameters()
	var got2 []string
	for it2.Next() {
		cap, _ := it2.Param().Capability()
		got2 = append(got2, cap.String())
	}
	if len(got2) != len(got) {
		t.Fatalf("second iteration length mismatch")
	}
	for i := range got {
		if got[i] != got2[i] {
			t.Errorf("second iteration element %d = %q, want %q", i, got2[i], got[i])
		}
	}
}
