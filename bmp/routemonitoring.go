package bmp

import (
	"encoding/binary"
	"net"

	"github.com/CSUNetSec/bgpview/bgp"
)

// RouteMonitoring carries one BGP UPDATE message as received from, or
// about to be sent to, a monitored peer (RFC 7854 section 4.6).
type RouteMonitoring struct {
	commonHeader
	PerPeerHeader
	messageBytes []byte
}

// Message decodes the embedded BGP-4 message. session carries the
// four-byte-ASN / ADD-PATH flags negotiated with this peer, which the
// monitoring station must track itself; BMP framing carries no such
// flags.
func (r *RouteMonitoring) Message(session bgp.Session) (bgp.Message, error) {
	m, _, err := decodeEmbeddedBGP(r.messageBytes, session)
	return m, err
}

// RouteMirroring carries a verbatim copy of a message received from a
// monitored peer, including malformed ones a BGP speaker would have
// rejected (RFC 7854 section 4.7).
type RouteMirroring struct {
	commonHeader
	PerPeerHeader
	messageBytes []byte
}

// Message decodes the embedded BGP-4 message. It returns an error for
// a deliberately mirrored malformed message, same as RouteMonitoring's
// Message does for any other structurally broken embedded message.
func (r *RouteMirroring) Message(session bgp.Session) (bgp.Message, error) {
	m, _, err := decodeEmbeddedBGP(r.messageBytes, session)
	return m, err
}

// PeerUpNotification reports a peer transitioning to the Established
// state, carrying the two OPEN messages that were exchanged (RFC 7854
// section 4.10).
type PeerUpNotification struct {
	commonHeader
	PerPeerHeader
	localAddr    []byte // 16 bytes, rendered per IsIPv6
	localPort    []byte // 2 bytes
	remotePort   []byte // 2 bytes
	messageBytes []byte // sent OPEN, then received OPEN, then Information TLVs
}

// LocalAddress is the monitored router's local address for this session.
func (p *PeerUpNotification) LocalAddress() net.IP {
	if p.IsIPv6() {
		return net.IP(p.localAddr).To16()
	}
	return net.IP(p.localAddr[12:16]).To4()
}

// LocalPort is the local TCP port of this session.
func (p *PeerUpNotification) LocalPort() uint16 { return binary.BigEndian.Uint16(p.localPort) }

// RemotePort is the remote TCP port of this session.
func (p *PeerUpNotification) RemotePort() uint16 { return binary.BigEndian.Uint16(p.remotePort) }

// SentOpen decodes the OPEN message the monitored router sent.
func (p *PeerUpNotification) SentOpen() (bgp.Message, error) {
	m, _, err := decodeEmbeddedBGP(p.messageBytes, bgp.Session{})
	return m, err
}

// ReceivedOpen decodes the OPEN message the monitored router received.
func (p *PeerUpNotification) ReceivedOpen() (bgp.Message, error) {
	_, rest, err := decodeEmbeddedBGP(p.messageBytes, bgp.Session{})
	if err != nil {
		return nil, err
	}
	m, _, err := decodeEmbeddedBGP(rest, bgp.Session{})
	return m, err
}

// Information returns a fresh iterator over the Information TLVs that
// follow the two OPEN messages, the same shape Initiation and
// Termination use.
func (p *PeerUpNotification) Information() (*InfoIter, error) {
	_, rest, err := decodeEmbeddedBGP(p.messageBytes, bgp.Session{})
	if err != nil {
		return nil, err
	}
	_, rest, err = decodeEmbeddedBGP(rest, bgp.Session{})
	if err != nil {
		return nil, err
	}
	return &InfoIter{buf: rest}, nil
}

// PeerDownNotification reports a peering session going down (RFC 7854
// section 4.9).
const (
	PeerDownLocalNotify   uint8 = 1 // local system closed the session, NOTIFICATION follows
	PeerDownLocalNoNotify uint8 = 2 // local system closed the session, a 2-byte FSM event code follows
	PeerDownRemoteNoData  uint8 = 3 // remote system closed the session, no data
	PeerDownRemoteNotify  uint8 = 4 // remote system closed the session, NOTIFICATION follows
	PeerDownNoRelevant    uint8 = 5 // peer de-configured, no relevant data
)

type PeerDownNotification struct {
	commonHeader
	PerPeerHeader
	body []byte
}

// Reason is the PeerDown reason code.
func (p *PeerDownNotification) Reason() uint8 {
	if len(p.body) == 0 {
		return 0
	}
	return p.body[0]
}

// Notification decodes the trailing NOTIFICATION message, valid for
// PeerDownLocalNotify and PeerDownRemoteNotify.
func (p *PeerDownNotification) Notification() (bgp.Message, error) {
	if len(p.body) < 1 {
		return nil, badLength("bmp: PeerDownNotification body is empty")
	}
	m, _, err := decodeEmbeddedBGP(p.body[1:], bgp.Session{})
	return m, err
}

// FSMEvent decodes the trailing 2-byte FSM event code, valid for
// PeerDownLocalNoNotify.
func (p *PeerDownNotification) FSMEvent() (uint16, error) {
	if len(p.body) < 3 {
		return 0, badLengthf("bmp: PeerDownNotification body is %d bytes, need at least 3 for an FSM event", len(p.body))
	}
	return binary.BigEndian.Uint16(p.body[1:3]), nil
}
