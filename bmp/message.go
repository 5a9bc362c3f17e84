// Package bmp decodes BGP Monitoring Protocol version 3 (RFC 7854)
// wire messages into zero-copy, lazily-evaluated views, the same way
// package bgp decodes the BGP-4 messages it carries.
package bmp

import (
	"encoding/binary"

	"github.com/CSUNetSec/bgpview/bgp"
)

// CommonHeaderLen is the size of the fixed portion common to every BMP
// message (RFC 7854 section 4.1): version(1) + length(4) + type(1).
const CommonHeaderLen = 6

// Version is the only BMP version this package decodes.
const Version = 3

// Message type codes (RFC 7854 section 4.1).
const (
	TypeRouteMonitoring      uint8 = 0
	TypeStatisticsReport     uint8 = 1
	TypePeerDownNotification uint8 = 2
	TypePeerUpNotification   uint8 = 3
	TypeInitiation           uint8 = 4
	TypeTermination          uint8 = 5
	TypeRouteMirroring       uint8 = 6
)

// Message is the tagged view produced by Decode.
type Message interface {
	// Type is the wire message type code.
	Type() uint8
	// Length is the common header's declared total message length,
	// equal to the length of the buffer Decode was called with.
	Length() uint32
}

type commonHeader struct {
	typ    uint8
	length uint32
}

func (h commonHeader) Type() uint8    { return h.typ }
func (h commonHeader) Length() uint32 { return h.length }

// Decode parses exactly one framed BMP message out of buf, which must
// contain nothing else: version must be 3, the declared length must
// equal len(buf), and the type byte must dispatch to a known message.
func Decode(buf []byte) (Message, error) {
	if len(buf) < CommonHeaderLen {
		return nil, badLengthf("bmp: message is %d bytes, need at least %d", len(buf), CommonHeaderLen)
	}
	if buf[0] != Version {
		return nil, invalidf("bmp: unsupported version %d, only version %d is decoded", buf[0], Version)
	}
	declared := binary.BigEndian.Uint32(buf[1:5])
	if int(declared) != len(buf) {
		return nil, badLengthf("bmp: declared length %d does not match buffer length %d", declared, len(buf))
	}
	h := commonHeader{typ: buf[5], length: declared}
	body := buf[CommonHeaderLen:]

	switch h.typ {
	case TypeRouteMonitoring:
		pp, rest, err := decodePerPeer(body)
		if err != nil {
			return nil, err
		}
		return &RouteMonitoring{commonHeader: h, PerPeerHeader: pp, messageBytes: rest}, nil
	case TypeStatisticsReport:
		pp, rest, err := decodePerPeer(body)
		if err != nil {
			return nil, err
		}
		return &StatisticsReport{commonHeader: h, PerPeerHeader: pp, body: rest}, nil
	case TypePeerDownNotification:
		pp, rest, err := decodePerPeer(body)
		if err != nil {
			return nil, err
		}
		return &PeerDownNotification{commonHeader: h, PerPeerHeader: pp, body: rest}, nil
	case TypePeerUpNotification:
		pp, rest, err := decodePerPeer(body)
		if err != nil {
			return nil, err
		}
		if len(rest) < 20 {
			return nil, badLengthf("bmp: PeerUpNotification body is %d bytes, need at least 20", len(rest))
		}
		return &PeerUpNotification{commonHeader: h, PerPeerHeader: pp, localAddr: rest[0:16], localPort: rest[16:18], remotePort: rest[18:20], messageBytes: rest[20:]}, nil
	case TypeInitiation:
		return &Initiation{commonHeader: h, body: body}, nil
	case TypeTermination:
		return &Termination{commonHeader: h, body: body}, nil
	case TypeRouteMirroring:
		pp, rest, err := decodePerPeer(body)
		if err != nil {
			return nil, err
		}
		return &RouteMirroring{commonHeader: h, PerPeerHeader: pp, messageBytes: rest}, nil
	default:
		return nil, invalidf("bmp: unknown message type %d", h.typ)
	}
}

// decodeEmbeddedBGP decodes one embedded BGP-4 message from the front of
// buf, using its own declared length to find the end, and returns the
// decoded message and the bytes after it.
func decodeEmbeddedBGP(buf []byte, session bgp.Session) (bgp.Message, []byte, error) {
	if len(buf) < bgp.HeaderLen {
		return nil, nil, badLengthf("bmp: embedded BGP message is %d bytes, need at least %d", len(buf), bgp.HeaderLen)
	}
	declared := int(binary.BigEndian.Uint16(buf[16:18]))
	if declared < bgp.MinLen || declared > len(buf) {
		return nil, nil, badLengthf("bmp: embedded BGP message declares length %d out of range", declared)
	}
	m, err := bgp.Decode(buf[:declared], session)
	if err != nil {
		return nil, nil, err
	}
	return m, buf[declared:], nil
}
