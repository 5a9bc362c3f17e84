package bgp

import "encoding/binary"

// Path attribute flag bits (RFC 4271 section 4.3).
const (
	FlagOptional       uint8 = 0x80
	FlagTransitive     uint8 = 0x40
	FlagPartial        uint8 = 0x20
	FlagExtendedLength uint8 = 0x10
)

// Path attribute type codes.
const (
	AttrOrigin               uint8 = 1
	AttrASPath               uint8 = 2
	AttrNextHop              uint8 = 3
	AttrMultiExitDisc        uint8 = 4
	AttrLocalPreference      uint8 = 5
	AttrAtomicAggregate      uint8 = 6
	AttrAggregator           uint8 = 7
	AttrCommunities          uint8 = 8
	AttrOriginatorID         uint8 = 9
	AttrClusterList          uint8 = 10
	AttrMPReachNLRI          uint8 = 14
	AttrMPUnreachNLRI        uint8 = 15
	AttrExtendedCommunities  uint8 = 16
	AttrAS4Path              uint8 = 17
	AttrAS4Aggregator        uint8 = 18
	AttrPMSITunnel           uint8 = 22
	AttrTunnelEncap          uint8 = 23
	AttrTrafficEngineering   uint8 = 24
	AttrIPv6AddrSpecExtComm  uint8 = 25
	AttrAIGP                 uint8 = 26
	AttrPEDistinguisherLabel uint8 = 27
	AttrBGPLS                uint8 = 29
	AttrAttrSet              uint8 = 128
)

// AttrKind tags which path-attribute variant was decoded.
type AttrKind int

const (
	KindOrigin AttrKind = iota + 1
	KindASPath
	KindAS4Path
	KindNextHop
	KindMultiExitDisc
	KindLocalPreference
	KindAtomicAggregate
	KindAggregator
	KindAS4Aggregator
	KindCommunities
	KindOriginatorID
	KindClusterList
	KindMPReachNLRI
	KindMPUnreachNLRI
	KindExtendedCommunities
	KindOpaque // PMSI, TunnelEncap, TE, IPv6-ExtComm, AIGP, PEDistinguisherLabels, BGP-LS, AttrSet
	KindOtherAttr
)

// Origin attribute values.
const (
	OriginIGP        uint8 = 0
	OriginEGP        uint8 = 1
	OriginIncomplete uint8 = 2
)

// PathAttr is a decoded path attribute. Kind discriminates which
// sub-structure Value should be interpreted as; the accessor methods
// below (Origin, ASPathSegments, NextHop, U32, Aggregator, ...) decode
// that sub-structure on demand (they are not evaluated eagerly).
type PathAttr struct {
	kind    AttrKind
	code    uint8
	flags   uint8
	value   []byte
	session Session
}

func (a PathAttr) Kind() AttrKind       { return a.kind }
func (a PathAttr) Code() uint8          { return a.code }
func (a PathAttr) Flags() uint8         { return a.flags }
func (a PathAttr) Optional() bool       { return a.flags&FlagOptional != 0 }
func (a PathAttr) Transitive() bool     { return a.flags&FlagTransitive != 0 }
func (a PathAttr) Partial() bool        { return a.flags&FlagPartial != 0 }
func (a PathAttr) ExtendedLength() bool { return a.flags&FlagExtendedLength != 0 }

// Value is the attribute's raw value bytes.
func (a PathAttr) Value() []byte { return a.value }

// Origin is valid for KindOrigin; returns OriginIGP/OriginEGP/OriginIncomplete.
func (a PathAttr) Origin() uint8 { return a.value[0] }

// ASPathSegments iterates an AS_PATH or AS4_PATH's segments (KindASPath
// / KindAS4Path).
func (a PathAttr) ASPathSegments() *ASPathIter {
	asnSize := 2
	if a.kind == KindAS4Path {
		asnSize = 4
	}
	return &ASPathIter{buf: a.value, asnSize: asnSize}
}

// NextHop is valid for KindNextHop; for the classic IPv4 form (4 bytes)
// it returns those bytes as-is.
func (a PathAttr) NextHop() []byte { return a.value }

// U32 reads the value as a big-endian 32-bit integer; valid for
// KindMultiExitDisc, KindLocalPreference and KindOriginatorID.
func (a PathAttr) U32() uint32 { return binary.BigEndian.Uint32(a.value) }

// Aggregator is valid for KindAggregator / KindAS4Aggregator: returns the
// aggregating ASN and its 4-byte IPv4 address.
func (a PathAttr) Aggregator() (asn uint32, ip []byte) {
	if len(a.value) == 6 {
		return uint32(binary.BigEndian.Uint16(a.value[0:2])), a.value[2:6]
	}
	return binary.BigEndian.Uint32(a.value[0:4]), a.value[4:8]
}

// Communities returns a COMMUNITIES attribute's 4-byte community values
// (KindCommunities), copied into a newly allocated slice.
func (a PathAttr) Communities() [][4]byte {
	n := len(a.value) / 4
	out := make([][4]byte, n)
	for i := 0; i < n; i++ {
		copy(out[i][:], a.value[i*4:i*4+4])
	}
	return out
}

// ExtendedCommunities returns an EXTENDED_COMMUNITIES attribute's 8-byte
// community values (KindExtendedCommunities), copied into a newly
// allocated slice.
func (a PathAttr) ExtendedCommunities() [][8]byte {
	n := len(a.value) / 8
	out := make([][8]byte, n)
	for i := 0; i < n; i++ {
		copy(out[i][:], a.value[i*8:i*8+8])
	}
	return out
}

// ClusterList returns a CLUSTER_LIST attribute's 4-byte cluster IDs
// (KindClusterList), decoded into a newly allocated slice.
func (a PathAttr) ClusterList() []uint32 {
	n := len(a.value) / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = binary.BigEndian.Uint32(a.value[i*4 : i*4+4])
	}
	return out
}

// MPReach decodes the attribute's value as MP_REACH_NLRI (KindMPReachNLRI).
func (a PathAttr) MPReach() (MPReach, error) { return decodeMPReach(a.value) }

// MPUnreach decodes the attribute's value as MP_UNREACH_NLRI (KindMPUnreachNLRI).
func (a PathAttr) MPUnreach() (MPUnreach, error) { return decodeMPUnreach(a.value) }

// PathAttrIter iterates a path-attribute byte range in wire order.
type PathAttrIter struct {
	buf     []byte
	session Session
	cur     PathAttr
	err     error
	done    bool
}

func (it *PathAttrIter) Next() bool {
	if it.done {
		return false
	}
	if len(it.buf) == 0 {
		it.done = true
		return false
	}
	attr, n, err := decodePathAttr(it.buf, it.session)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	it.cur = attr
	it.buf = it.buf[n:]
	return true
}

func (it *PathAttrIter) Attr() PathAttr { return it.cur }
func (it *PathAttrIter) Err() error     { return it.err }

// decodePathAttr reads one flags(1)+code(1)+length(1 or 2)+value
// attribute from the front of buf and returns it plus the number of
// bytes consumed.
func decodePathAttr(buf []byte, session Session) (PathAttr, int, error) {
	if len(buf) < 3 {
		return PathAttr{}, 0, badLength("bgp: truncated path attribute header")
	}
	flags := buf[0]
	code := buf[1]
	var (
		length   int
		consumed int
	)
	if flags&FlagExtendedLength != 0 {
		if len(buf) < 4 {
			return PathAttr{}, 0, badLength("bgp: truncated extended-length path attribute header")
		}
		length = int(binary.BigEndian.Uint16(buf[2:4]))
		consumed = 4
	} else {
		length = int(buf[2])
		consumed = 3
	}
	if consumed+length > len(buf) {
		return PathAttr{}, 0, badLengthf("bgp: path attribute type %d declares length %d but only %d bytes available", code, length, len(buf)-consumed)
	}
	value := buf[consumed : consumed+length]
	total := consumed + length

	kind, err := classifyAttr(code, length, session)
	if err != nil {
		return PathAttr{}, 0, err
	}

	return PathAttr{kind: kind, code: code, flags: flags, value: value, session: session}, total, nil
}

func classifyAttr(code uint8, length int, session Session) (AttrKind, error) {
	switch code {
	case AttrOrigin:
		if length != 1 {
			return 0, invalidf("bgp: ORIGIN attribute must be 1 byte, got %d", length)
		}
		return KindOrigin, nil
	case AttrASPath:
		if session.FourByteASN {
			return KindAS4Path, nil
		}
		return KindASPath, nil
	case AttrAS4Path:
		return KindAS4Path, nil
	case AttrNextHop:
		return KindNextHop, nil
	case AttrMultiExitDisc:
		if length != 4 {
			return 0, invalidf("bgp: MULTI_EXIT_DISC attribute must be 4 bytes, got %d", length)
		}
		return KindMultiExitDisc, nil
	case AttrLocalPreference:
		if length != 4 {
			return 0, invalidf("bgp: LOCAL_PREF attribute must be 4 bytes, got %d", length)
		}
		return KindLocalPreference, nil
	case AttrAtomicAggregate:
		if length != 0 {
			return 0, invalidf("bgp: ATOMIC_AGGREGATE attribute must be 0 bytes, got %d", length)
		}
		return KindAtomicAggregate, nil
	case AttrAggregator:
		if length != 6 && length != 8 {
			return 0, invalidf("bgp: AGGREGATOR attribute must be 6 or 8 bytes, got %d", length)
		}
		if session.FourByteASN {
			return KindAS4Aggregator, nil
		}
		return KindAggregator, nil
	case AttrAS4Aggregator:
		if length != 8 {
			return 0, invalidf("bgp: AS4_AGGREGATOR attribute must be 8 bytes, got %d", length)
		}
		return KindAS4Aggregator, nil
	case AttrCommunities:
		if length%4 != 0 {
			return 0, invalidf("bgp: COMMUNITIES attribute length %d is not a multiple of 4", length)
		}
		return KindCommunities, nil
	case AttrOriginatorID:
		if length != 4 {
			return 0, invalidf("bgp: ORIGINATOR_ID attribute must be 4 bytes, got %d", length)
		}
		return KindOriginatorID, nil
	case AttrClusterList:
		if length%4 != 0 {
			return 0, invalidf("bgp: CLUSTER_LIST attribute length %d is not a multiple of 4", length)
		}
		return KindClusterList, nil
	case AttrMPReachNLRI:
		return KindMPReachNLRI, nil
	case AttrMPUnreachNLRI:
		return KindMPUnreachNLRI, nil
	case AttrExtendedCommunities:
		if length%8 != 0 {
			return 0, invalidf("bgp: EXTENDED_COMMUNITIES attribute length %d is not a multiple of 8", length)
		}
		return KindExtendedCommunities, nil
	case AttrPMSITunnel, AttrTunnelEncap, AttrTrafficEngineering, AttrIPv6AddrSpecExtComm,
		AttrAIGP, AttrPEDistinguisherLabel, AttrBGPLS, AttrAttrSet:
		return KindOpaque, nil
	case 0:
		return 0, invalid("bgp: path attribute type 0 is reserved")
	default:
		return KindOtherAttr, nil
	}
}

// ASPathSegmentKind discriminates an AS_PATH segment.
type ASPathSegmentKind int

const (
	SegmentASSet ASPathSegmentKind = iota + 1
	SegmentASSequence
)

// ASPathSegment is one AS_SET or AS_SEQUENCE segment within an AS_PATH /
// AS4_PATH attribute.
type ASPathSegment struct {
	kind    ASPathSegmentKind
	asnSize int
	buf     []byte // count * asnSize bytes
}

func (s ASPathSegment) Kind() ASPathSegmentKind { return s.kind }

// Len is the number of ASNs in this segment.
func (s ASPathSegment) Len() int { return len(s.buf) / s.asnSize }

// ASNs returns a fresh iterator over this segment's ASNs, each widened
// to 32 bits (the upper 16 bits are zero in the two-byte case).
func (s ASPathSegment) ASNs() *ASNIter {
	return &ASNIter{buf: s.buf, asnSize: s.asnSize}
}

// ASPathIter iterates the segments of an AS_PATH / AS4_PATH attribute.
type ASPathIter struct {
	buf     []byte
	asnSize int
	cur     ASPathSegment
	err     error
	done    bool
}

func (it *ASPathIter) Next() bool {
	if it.done {
		return false
	}
	if len(it.buf) == 0 {
		it.done = true
		return false
	}
	if len(it.buf) < 2 {
		it.err = badLength("bgp: truncated AS_PATH segment header")
		it.done = true
		return false
	}
	typ := it.buf[0]
	count := int(it.buf[1])
	var kind ASPathSegmentKind
	switch typ {
	case 1:
		kind = SegmentASSet
	case 2:
		kind = SegmentASSequence
	default:
		it.err = invalidf("bgp: unknown AS_PATH segment type %d", typ)
		it.done = true
		return false
	}
	need := count * it.asnSize
	if len(it.buf) < 2+need {
		it.err = badLengthf("bgp: AS_PATH segment declares %d ASNs but only %d bytes remain", count, len(it.buf)-2)
		it.done = true
		return false
	}
	it.cur = ASPathSegment{kind: kind, asnSize: it.asnSize, buf: it.buf[2 : 2+need]}
	it.buf = it.buf[2+need:]
	return true
}

func (it *ASPathIter) Segment() ASPathSegment { return it.cur }
func (it *ASPathIter) Err() error             { return it.err }

// ASNIter iterates the ASNs within a single AS_PATH segment.
type ASNIter struct {
	buf     []byte
	asnSize int
	cur     uint32
}

func (it *ASNIter) Next() bool {
	if len(it.buf) == 0 {
		return false
	}
	if it.asnSize == 4 {
		it.cur = binary.BigEndian.Uint32(it.buf[0:4])
	} else {
		it.cur = uint32(binary.BigEndian.Uint16(it.buf[0:2]))
	}
	it.buf = it.buf[it.asnSize:]
	return true
}

func (it *ASNIter) ASN() uint32 { return it.cur }
