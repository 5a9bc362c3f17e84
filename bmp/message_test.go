package bmp

import (
	"encoding/binary"
	"testing"

	"github.com/CSUNetSec/bgpview/bgp"
)

func frameBGP(typ uint8, body []byte) []byte {
	buf := make([]byte, bgp.HeaderLen+len(body))
	for i := 0; i < bgp.MarkerLen; i++ {
		buf[i] = 0xff
	}
	total := uint16(len(buf))
	binary.BigEndian.PutUint16(buf[16:18], total)
	buf[18] = typ
	copy(buf[bgp.HeaderLen:], body)
	return buf
}

func minimalOpen(asn uint16) []byte {
	body := make([]byte, 10) // version(1) + asn(2) + holdtime(2) + ident(4) + optparamlen(1)
	body[0] = 4
	binary.BigEndian.PutUint16(body[1:3], asn)
	binary.BigEndian.PutUint16(body[3:5], 180)
	binary.BigEndian.PutUint32(body[5:9], 0x0A000006)
	body[9] = 0
	return frameBGP(bgp.TypeOpen, body)
}

func frameBMP(typ uint8, body []byte) []byte {
	buf := make([]byte, CommonHeaderLen+len(body))
	buf[0] = Version
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(buf)))
	buf[5] = typ
	copy(buf[CommonHeaderLen:], body)
	return buf
}

func perPeerBytes(asn uint32) []byte {
	var rd [8]byte
	var addr [16]byte
	copy(addr[12:16], []byte{10, 10, 10, 1})
	return buildPerPeer(PeerTypeGlobalInstance, 0, rd, addr, asn, 0x0A0A0A01, 0x54A20E0B, 0x000E0C20)
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	buf := frameBMP(TypeInitiation, nil)
	buf[0] = 2
	_, err := Decode(buf)
	if !IsInvalid(err) {
		t.Fatalf("want Invalid, got %v", err)
	}
}

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	buf := frameBMP(TypeInitiation, nil)
	buf[4]++
	_, err := Decode(buf)
	if !IsBadLength(err) {
		t.Fatalf("want BadLength, got %v", err)
	}
}

func TestDecodeRouteMonitoringEmbedsKeepAlive(t *testing.T) {
	embedded := frameBGP(bgp.TypeKeepAlive, nil)
	body := append(perPeerBytes(100), embedded...)
	buf := frameBMP(TypeRouteMonitoring, body)

	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rm, ok := msg.(*RouteMonitoring)
	if !ok {
		t.Fatalf("Decode returned %T, want *RouteMonitoring", msg)
	}
	embeddedMsg, err := rm.Message(bgp.Session{})
	if err != nil {
		t.Fatalf("Message(): %v", err)
	}
	if embeddedMsg.Type() != bgp.TypeKeepAlive {
		t.Errorf("embedded Type() = %d, want %d", embeddedMsg.Type(), bgp.TypeKeepAlive)
	}
}

// TestDecodePeerUpNotification mirrors scenario 4: a PeerUpNotification
// carrying two embedded OPENs, read with SentOpen (ASN 100) and
// ReceivedOpen (ASN 32934).
func TestDecodePeerUpNotification(t *testing.T) {
	sentOpen := minimalOpen(100)
	receivedOpen := minimalOpen(32934)

	body := perPeerBytes(32934)
	body = append(body, make([]byte, 16)...) // local address
	body = append(body, 0, 179)               // local port
	body = append(body, 0xC3, 0x50)           // remote port
	body = append(body, sentOpen...)
	body = append(body, receivedOpen...)

	buf := frameBMP(TypePeerUpNotification, body)
	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pu, ok := msg.(*PeerUpNotification)
	if !ok {
		t.Fatalf("Decode returned %T, want *PeerUpNotification", msg)
	}
	if pu.IsIPv6() {
		t.Errorf("IsIPv6() = true, want false")
	}
	if pu.ASN() != 32934 {
		t.Errorf("PerPeerHeader ASN() = %d, want 32934", pu.ASN())
	}
	sec, micro := pu.Timestamp()
	if sec != 0x54A20E0B || micro != 0x000E0C20 {
		t.Errorf("Timestamp() = (0x%X,0x%X)", sec, micro)
	}

	sent, err := pu.SentOpen()
	if err != nil {
		t.Fatalf("SentOpen(): %v", err)
	}
	if got := sent.(*bgp.OpenMessage).ASN(); got != 100 {
		t.Errorf("SentOpen ASN = %d, want 100", got)
	}
	recv, err := pu.ReceivedOpen()
	if err != nil {
		t.Fatalf("ReceivedOpen(): %v", err)
	}
	if got := recv.(*bgp.OpenMessage).ASN(); got != 32934 {
		t.Errorf("ReceivedOpen ASN = %d, want 32934", got)
	}
}

func TestDecodeInitiationInformation(t *testing.T) {
	sysDescr := []byte("FRRouting 8.4")
	tlv := make([]byte, 4+len(sysDescr))
	binary.BigEndian.PutUint16(tlv[0:2], InfoSysDescr)
	binary.BigEndian.PutUint16(tlv[2:4], uint16(len(sysDescr)))
	copy(tlv[4:], sysDescr)

	buf := frameBMP(TypeInitiation, tlv)
	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	init, ok := msg.(*Initiation)
	if !ok {
		t.Fatalf("Decode returned %T, want *Initiation", msg)
	}
	it := init.Information()
	if !it.Next() {
		t.Fatalf("expected one TLV")
	}
	s, err := it.TLV().String()
	if err != nil {
		t.Fatalf("String(): %v", err)
	}
	if s != string(sysDescr) {
		t.Errorf("String() = %q, want %q", s, sysDescr)
	}
	if it.Next() {
		t.Fatalf("expected exactly one TLV")
	}
}

func TestDecodeInitiationRejectsInvalidUTF8(t *testing.T) {
	tlv := []byte{0, byte(InfoSysDescr), 0, 2, 0xff, 0xfe}
	buf := frameBMP(TypeInitiation, tlv)
	msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	init := msg.(*Initiation)
	it := init.Information()
	if it.Next() {
		t.Fatalf("expected no TLVs to yield successfully")
	}
	if !IsInvalid(it.Err()) {
		t.Fatalf("want Invalid, got %v", it.Err())
	}
}
