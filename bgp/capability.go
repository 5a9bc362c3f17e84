package bgp

import (
	"encoding/binary"
	"fmt"
)

// Capability codes recognized inside an OPEN's type-2 Optional
// Parameter (RFC 5492 and its extensions).
const (
	CapMultiProtocol        uint8 = 1
	CapRouteRefresh         uint8 = 2
	CapORF                  uint8 = 3
	CapMultipleRoutes       uint8 = 4
	CapExtendedNextHop      uint8 = 5
	CapGracefulRestart      uint8 = 64
	CapFourByteASN          uint8 = 65
	CapDynamicCapability    uint8 = 67
	CapMultiSession         uint8 = 68
	CapAddPath              uint8 = 69
	CapEnhancedRouteRefresh uint8 = 70
)

// AddPath direction values (RFC 7911).
const (
	AddPathReceive uint8 = 1
	AddPathSend    uint8 = 2
	AddPathBoth    uint8 = 3
)

// CapabilityKind tags which Capability variant was decoded.
type CapabilityKind int

const (
	KindMultiProtocol CapabilityKind = iota + 1
	KindRouteRefresh
	KindORF
	KindMultipleRoutes
	KindExtendedNextHop
	KindGracefulRestart
	KindFourByteASN
	KindDynamicCapability
	KindMultiSession
	KindAddPath
	KindEnhancedRouteRefresh
	KindPrivate
	KindOther
)

// Capability is a decoded Capability TLV. Use Kind to discriminate, then
// the matching typed accessor; numeric-valued capabilities (MultiProtocol,
// FourByteASN, AddPath) expose their fields directly, all others expose
// only their raw value via Raw.
type Capability struct {
	kind  CapabilityKind
	code  uint8
	value []byte
}

// Kind reports which tagged variant this capability decoded as.
func (c Capability) Kind() CapabilityKind { return c.kind }

// Code is the raw capability code byte.
func (c Capability) Code() uint8 { return c.code }

// Raw is the capability's value bytes, exactly as they appeared on the
// wire (i.e. excluding the code and length bytes).
func (c Capability) Raw() []byte { return c.value }

// AFI is valid for KindMultiProtocol and KindAddPath.
func (c Capability) AFI() AFI { return AFI(binary.BigEndian.Uint16(c.value[0:2])) }

// SAFI is valid for KindMultiProtocol (wire layout AFI, reserved, SAFI)
// and KindAddPath (wire layout AFI, SAFI, direction); the SAFI octet
// sits at a different offset in each.
func (c Capability) SAFI() SAFI {
	if c.kind == KindAddPath {
		return SAFI(c.value[2])
	}
	return SAFI(c.value[3])
}

// ASN is the 32-bit ASN carried by a FourByteASN capability.
func (c Capability) ASN() uint32 { return binary.BigEndian.Uint32(c.value[0:4]) }

// Direction is the ADD-PATH send/receive/both byte carried by an AddPath
// capability (AddPathReceive, AddPathSend or AddPathBoth).
func (c Capability) Direction() uint8 { return c.value[3] }

func (c Capability) String() string {
	switch c.kind {
	case KindMultiProtocol:
		return fmt.Sprintf("MultiProtocol(%s,%s)", c.AFI(), c.SAFI())
	case KindFourByteASN:
		return fmt.Sprintf("FourByteASN(%d)", c.ASN())
	case KindAddPath:
		return fmt.Sprintf("AddPath(%s,%s,%d)", c.AFI(), c.SAFI(), c.Direction())
	case KindPrivate:
		return fmt.Sprintf("Private(%d)", c.code)
	case KindRouteRefresh:
		return "RouteRefresh"
	case KindEnhancedRouteRefresh:
		return "EnhancedRouteRefresh"
	case KindORF:
		return "ORF"
	case KindMultipleRoutes:
		return "MultipleRoutes"
	case KindExtendedNextHop:
		return "ExtendedNextHopEncoding"
	case KindGracefulRestart:
		return "GracefulRestart"
	case KindDynamicCapability:
		return "DynamicCapability"
	case KindMultiSession:
		return "MultiSession"
	default:
		return fmt.Sprintf("Other(%d)", c.code)
	}
}

// DecodeCapability decodes one Capability TLV (code, length, value).
// buf must be exactly code(1) + length(1) + length bytes.
func DecodeCapability(buf []byte) (Capability, error) {
	if len(buf) < 2 {
		return Capability{}, badLengthf("bgp: capability TLV is %d bytes, need at least 2", len(buf))
	}
	code := buf[0]
	l := int(buf[1])
	if len(buf) != l+2 {
		return Capability{}, badLengthf("bgp: capability declares length %d but TLV is %d bytes", l, len(buf))
	}
	value := buf[2:]

	if code == 0 {
		return Capability{}, invalid("bgp: capability code 0 is reserved")
	}

	fixed := map[uint8]int{
		CapMultiProtocol: 4,
		CapFourByteASN:   4,
		CapAddPath:       4,
	}
	if want, ok := fixed[code]; ok && l != want {
		return Capability{}, invalidf("bgp: capability code %d must be %d bytes, got %d", code, want, l)
	}

	kind := KindOther
	switch {
	case code == CapMultiProtocol:
		kind = KindMultiProtocol
	case code == CapRouteRefresh:
		kind = KindRouteRefresh
	case code == CapORF:
		kind = KindORF
	case code == CapMultipleRoutes:
		kind = KindMultipleRoutes
	case code == CapExtendedNextHop:
		kind = KindExtendedNextHop
	case code == CapGracefulRestart:
		kind = KindGracefulRestart
	case code == CapFourByteASN:
		kind = KindFourByteASN
	case code == CapDynamicCapability:
		kind = KindDynamicCapability
	case code == CapMultiSession:
		kind = KindMultiSession
	case code == CapAddPath:
		kind = KindAddPath
	case code == CapEnhancedRouteRefresh:
		kind = KindEnhancedRouteRefresh
	case code >= 128:
		kind = KindPrivate
	}

	return Capability{kind: kind, code: code, value: value}, nil
}
