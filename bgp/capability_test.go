package bgp

import "testing"

func TestDecodeCapabilityReservedCodeIsInvalid(t *testing.T) {
	_, err := DecodeCapability([]byte{0, 0})
	if !IsInvalid(err) {
		t.Fatalf("want Invalid, got %v", err)
	}
}

func TestDecodeCapabilityFixedLengthMismatchIsInvalid(t *testing.T) {
	_, err := DecodeCapability([]byte{CapFourByteASN, 3, 0, 0, 0})
	if !IsInvalid(err) {
		t.Fatalf("want Invalid, got %v", err)
	}
}

func TestDecodeCapabilityDeclaredLengthMismatchIsBadLength(t *testing.T) {
	_, err := DecodeCapability([]byte{CapRouteRefresh, 5})
	if !IsBadLength(err) {
		t.Fatalf("want BadLength, got %v", err)
	}
}

func TestDecodeCapabilityAddPath(t *testing.T) {
	c, err := DecodeCapability([]byte{CapAddPath, 4, 0, 1, 1, AddPathBoth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind() != KindAddPath {
		t.Fatalf("Kind() = %v, want KindAddPath", c.Kind())
	}
	if c.AFI() != AFIIPv4 {
		t.Errorf("AFI() = %v, want IPv4", c.AFI())
	}
	if c.SAFI() != SAFIUnicast {
		t.Errorf("SAFI() = %v, want Unicast", c.SAFI())
	}
	if c.Direction() != AddPathBoth {
		t.Errorf("Direction() = %d, want %d", c.Direction(), AddPathBoth)
	}
}

func TestDecodeCapabilityMultiProtocolSAFIOffset(t *testing.T) {
	// AFI=IPv6(2), reserved=0, SAFI=Multicast(2): the reserved byte sits
	// between AFI and SAFI, unlike AddPath's layout.
	c, err := DecodeCapability([]byte{CapMultiProtocol, 4, 0, 2, 0, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.AFI() != AFIIPv6 {
		t.Errorf("AFI() = %v, want IPv6", c.AFI())
	}
	if c.SAFI() != SAFIMulticast {
		t.Errorf("SAFI() = %v, want Multicast", c.SAFI())
	}
}
