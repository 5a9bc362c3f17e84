package bgp

import "github.com/CSUNetSec/bgpview/util"

// Prefix is a zero-copy view over a wire-format NLRI or withdrawn-route
// entry: a mask length in bits and the ceil(maskLen/8) high-order bytes
// that cover it. It borrows directly from the decoded message's buffer
// and is valid only as long as that buffer is live.
type Prefix struct {
	afi     AFI
	maskLen uint8
	raw     []byte
}

// AFI reports which address family raw's bytes belong to. Classic (non
// multiprotocol) UPDATE withdrawn routes and NLRIs are always IPv4.
func (p Prefix) AFI() AFI { return p.afi }

// MaskLen is the prefix length in bits.
func (p Prefix) MaskLen() uint8 { return p.maskLen }

// Bytes returns the ceil(MaskLen/8) high-order address bytes as they
// appeared on the wire. The slice is not zero-padded to a full address
// width.
func (p Prefix) Bytes() []byte { return p.raw }

func (p Prefix) String() string {
	return util.FormatPrefix(p.maskLen, p.raw, p.afi == AFIIPv6)
}

// maxMaskBits returns the mask-length ceiling for afi, or -1 if afi has
// no natural address width (the "other" AFI/SAFI passthrough case, whose
// Prefixes iterator then applies no mask-length cap).
func maxMaskBits(afi AFI) int {
	switch afi {
	case AFIIPv4:
		return 32
	case AFIIPv6:
		return 128
	default:
		return -1
	}
}

// decodePrefix reads one mask-length-prefixed prefix from buf for the
// given address family, returning the prefix and the number of bytes
// consumed.
func decodePrefix(buf []byte, afi AFI) (Prefix, int, error) {
	if len(buf) < 1 {
		return Prefix{}, 0, badLength("bgp: truncated prefix mask length")
	}
	maskLen := buf[0]
	if max := maxMaskBits(afi); max >= 0 && int(maskLen) > max {
		return Prefix{}, 0, invalidf("bgp: prefix mask length %d exceeds %d bits for %s", maskLen, max, afi)
	}
	byteLen := (int(maskLen) + 7) / 8
	if 1+byteLen > len(buf) {
		return Prefix{}, 0, badLengthf("bgp: prefix declares %d bytes but only %d available", byteLen, len(buf)-1)
	}
	return Prefix{afi: afi, maskLen: maskLen, raw: buf[1 : 1+byteLen]}, 1 + byteLen, nil
}
