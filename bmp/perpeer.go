package bmp

import (
	"encoding/binary"
	"net"
)

// PerPeerHeaderLen is the fixed size of the Per-Peer Header (RFC 7854
// section 4.2) that precedes RouteMonitoring, StatisticsReport,
// PeerDownNotification, PeerUpNotification and RouteMirroring bodies.
const PerPeerHeaderLen = 42

// Peer type codes (RFC 7854 section 4.2).
const (
	PeerTypeGlobalInstance uint8 = 0
	PeerTypeRDInstance     uint8 = 1
	PeerTypeLocalInstance  uint8 = 2
)

// Per-peer flag bits.
const (
	peerFlagV uint8 = 1 << 7 // peer address is IPv6
	peerFlagL uint8 = 1 << 6 // post-policy Adj-RIB-In
	peerFlagA uint8 = 1 << 5 // legacy 2-byte ASN
)

// PerPeerHeader is the zero-copy view of a BMP Per-Peer Header.
type PerPeerHeader struct {
	raw []byte // 42 bytes
}

// PeerType is the peer type code (PeerTypeGlobalInstance, ...).
func (p PerPeerHeader) PeerType() uint8 { return p.raw[0] }

// IsIPv6 reports whether the peer address field holds an IPv6 address.
func (p PerPeerHeader) IsIPv6() bool { return p.raw[1]&peerFlagV != 0 }

// PostPolicy reports whether this is a post-policy Adj-RIB-In message.
func (p PerPeerHeader) PostPolicy() bool { return p.raw[1]&peerFlagL != 0 }

// LegacyASN reports whether the peer ASN field is a 2-byte legacy ASN
// (the trailing two bytes of the 4-byte field) rather than a 4-byte one.
func (p PerPeerHeader) LegacyASN() bool { return p.raw[1]&peerFlagA != 0 }

// Distinguisher is the 8-byte Route Distinguisher, meaningful only when
// PeerType is PeerTypeRDInstance.
func (p PerPeerHeader) Distinguisher() []byte { return p.raw[2:10] }

// Address is the peer's IP address, rendered according to IsIPv6: the
// field is always 16 bytes on the wire, zero-padded on the left for
// IPv4.
func (p PerPeerHeader) Address() net.IP {
	addr := p.raw[10:26]
	if p.IsIPv6() {
		return net.IP(addr).To16()
	}
	return net.IP(addr[12:16]).To4()
}

// ASN is the peer's Autonomous System number, widened from a 2-byte
// legacy field when LegacyASN is true.
func (p PerPeerHeader) ASN() uint32 {
	if p.LegacyASN() {
		return uint32(binary.BigEndian.Uint16(p.raw[28:30]))
	}
	return binary.BigEndian.Uint32(p.raw[26:30])
}

// BGPIdentifier is the peer's BGP Identifier.
func (p PerPeerHeader) BGPIdentifier() uint32 { return binary.BigEndian.Uint32(p.raw[30:34]) }

// Timestamp returns the seconds and microseconds fields of the BMP
// timestamp, as recorded by the monitored router (0, 0 if not set).
func (p PerPeerHeader) Timestamp() (seconds, micros uint32) {
	return binary.BigEndian.Uint32(p.raw[34:38]), binary.BigEndian.Uint32(p.raw[38:42])
}

func decodePerPeer(buf []byte) (PerPeerHeader, []byte, error) {
	if len(buf) < PerPeerHeaderLen {
		return PerPeerHeader{}, nil, badLengthf("bmp: message is %d bytes, need at least %d for the Per-Peer Header", len(buf), PerPeerHeaderLen)
	}
	return PerPeerHeader{raw: buf[:PerPeerHeaderLen]}, buf[PerPeerHeaderLen:], nil
}
