package bgp

import "encoding/binary"

// OpenMessage is a decoded OPEN message (RFC 4271 section 4.2).
type OpenMessage struct {
	header
	body []byte // everything after the 19-byte header
}

// Version is the BGP protocol version; RFC 4271 speakers send 4.
func (o *OpenMessage) Version() uint8 { return o.body[0] }

// ASN is the sender's two-byte Autonomous System number. A speaker using
// four-byte ASNs that doesn't fit here sends AS_TRANS (23456) and
// carries its real ASN in the FourByteASN capability instead.
func (o *OpenMessage) ASN() uint16 { return binary.BigEndian.Uint16(o.body[1:3]) }

// HoldTime is the proposed hold time in seconds.
func (o *OpenMessage) HoldTime() uint16 { return binary.BigEndian.Uint16(o.body[3:5]) }

// Identifier is the sender's BGP Identifier, a 32-bit unsigned value
// conventionally rendered as an IPv4 address.
func (o *OpenMessage) Identifier() uint32 { return binary.BigEndian.Uint32(o.body[5:9]) }

// OptionalParameters returns a fresh, restartable iterator over the
// OPEN's Optional Parameters. Calling it more than once yields
// independent iterators over the same underlying bytes.
func (o *OpenMessage) OptionalParameters() *ParamIter {
	declared := int(o.body[9])
	rest := o.body[10:]
	if declared > len(rest) {
		return &ParamIter{overflow: true}
	}
	return &ParamIter{buf: rest[:declared]}
}

// OptParam is one Optional Parameter TLV: a type byte and its value.
// Type 2 is a Capability; any other type is an opaque, unrecognized
// parameter.
type OptParam struct {
	typ   uint8
	value []byte
}

// Code is the parameter type byte.
func (p OptParam) Code() uint8 { return p.typ }

// IsCapability reports whether this parameter is type 2 (Capability).
func (p OptParam) IsCapability() bool { return p.typ == 2 }

// Value is the parameter's raw value bytes.
func (p OptParam) Value() []byte { return p.value }

// Capability decodes this parameter's value as a Capability. Callers
// should check IsCapability first; calling it on a non-capability
// parameter simply decodes whatever bytes are there.
func (p OptParam) Capability() (Capability, error) {
	return DecodeCapability(p.value)
}

// ParamIter iterates an OPEN message's Optional Parameters in wire
// order. A first structural error is the iterator's final yield; every
// subsequent call to Next reports no more elements.
type ParamIter struct {
	buf      []byte
	cur      OptParam
	err      error
	done     bool
	overflow bool
}

// Next advances the iterator and reports whether a parameter is
// available via Param.
func (it *ParamIter) Next() bool {
	if it.done {
		return false
	}
	if it.overflow {
		it.err = badLength("bgp: optional parameters length exceeds OPEN body")
		it.done = true
		return false
	}
	if len(it.buf) == 0 {
		it.done = true
		return false
	}
	if len(it.buf) < 2 {
		it.err = badLength("bgp: truncated optional parameter header")
		it.done = true
		return false
	}
	typ := it.buf[0]
	l := int(it.buf[1])
	if len(it.buf) < 2+l {
		it.err = badLengthf("bgp: optional parameter declares %d bytes but only %d available", l, len(it.buf)-2)
		it.done = true
		return false
	}
	it.cur = OptParam{typ: typ, value: it.buf[2 : 2+l]}
	it.buf = it.buf[2+l:]
	return true
}

// Param returns the parameter decoded by the most recent call to Next.
func (it *ParamIter) Param() OptParam { return it.cur }

// Err returns the first structural error encountered, if any.
func (it *ParamIter) Err() error { return it.err }
