package bmp

import (
	"encoding/binary"
	"unicode/utf8"
)

// Information TLV types carried by Initiation and PeerUpNotification
// (RFC 7854 sections 4.3 and 4.10).
const (
	InfoString   uint16 = 0
	InfoSysDescr uint16 = 1
	InfoSysName  uint16 = 2
)

// Termination TLV types (RFC 7854 section 4.5).
const (
	TermString uint16 = 0
	TermReason uint16 = 1
)

// Initiation is sent once, at the start of a BMP session, to convey the
// monitored router's identity before any per-peer message (RFC 7854
// section 4.3).
type Initiation struct {
	commonHeader
	body []byte
}

// Information returns a fresh iterator over the Initiation's
// Information TLVs.
func (i *Initiation) Information() *InfoIter { return &InfoIter{buf: i.body} }

// Termination is sent once, just before a monitoring station closes a
// BMP session (RFC 7854 section 4.5).
type Termination struct {
	commonHeader
	body []byte
}

// Information returns a fresh iterator over the Termination's
// Information TLVs.
func (t *Termination) Information() *InfoIter { return &InfoIter{buf: t.body} }

// InfoTLV is one Information TLV: a type and its value.
type InfoTLV struct {
	typ   uint16
	value []byte
}

// Type is the TLV's type code (InfoString, InfoSysDescr, InfoSysName,
// TermString, TermReason or an unrecognized vendor type).
func (t InfoTLV) Type() uint16 { return t.typ }

// Value is the TLV's raw value bytes.
func (t InfoTLV) Value() []byte { return t.value }

// String decodes Value as UTF-8, returning ErrInvalid if it is not
// well-formed. Meaningful for InfoString, InfoSysDescr, InfoSysName and
// TermString.
func (t InfoTLV) String() (string, error) {
	if !utf8.Valid(t.value) {
		return "", invalid("bmp: information TLV value is not valid UTF-8")
	}
	return string(t.value), nil
}

// Reason decodes Value as a 2-byte Termination reason code. Meaningful
// for TermReason.
func (t InfoTLV) Reason() (uint16, error) {
	if len(t.value) != 2 {
		return 0, badLengthf("bmp: termination reason value is %d bytes, need 2", len(t.value))
	}
	return binary.BigEndian.Uint16(t.value), nil
}

// InfoIter iterates a sequence of Information TLVs. A well-formed but
// non-UTF-8 value for a recognized string type is reported immediately
// as the iterator's terminal error, since every consumer of these
// types needs a valid string; unrecognized types are handed back raw
// and never fail decoding on their own.
type InfoIter struct {
	buf  []byte
	cur  InfoTLV
	err  error
	done bool
}

func (it *InfoIter) Next() bool {
	if it.done {
		return false
	}
	if len(it.buf) == 0 {
		it.done = true
		return false
	}
	if len(it.buf) < 4 {
		it.err = badLength("bmp: truncated information TLV header")
		it.done = true
		return false
	}
	typ := binary.BigEndian.Uint16(it.buf[0:2])
	l := int(binary.BigEndian.Uint16(it.buf[2:4]))
	if len(it.buf) < 4+l {
		it.err = badLengthf("bmp: information TLV declares %d bytes but only %d available", l, len(it.buf)-4)
		it.done = true
		return false
	}
	value := it.buf[4 : 4+l]
	switch typ {
	case InfoString, InfoSysDescr, InfoSysName:
		if !utf8.Valid(value) {
			it.err = invalid("bmp: information TLV value is not valid UTF-8")
			it.done = true
			return false
		}
	}
	it.cur = InfoTLV{typ: typ, value: value}
	it.buf = it.buf[4+l:]
	return true
}

func (it *InfoIter) TLV() InfoTLV { return it.cur }
func (it *InfoIter) Err() error   { return it.err }
