package bgp

import "testing"

func TestDecodePrefixByteCountFollowsMaskLen(t *testing.T) {
	cases := []struct {
		maskLen uint8
		wantLen int
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 2},
		{24, 3},
		{32, 4},
	}
	for _, c := range cases {
		buf := append([]byte{c.maskLen}, make([]byte, c.wantLen)...)
		p, n, err := decodePrefix(buf, AFIIPv4)
		if err != nil {
			t.Fatalf("maskLen=%d: unexpected error: %v", c.maskLen, err)
		}
		if len(p.Bytes()) != c.wantLen {
			t.Errorf("maskLen=%d: Bytes() length = %d, want %d", c.maskLen, len(p.Bytes()), c.wantLen)
		}
		if n != 1+c.wantLen {
			t.Errorf("maskLen=%d: consumed %d, want %d", c.maskLen, n, 1+c.wantLen)
		}
	}
}

func TestDecodePrefixMaskLenExceedsAFIWidthIsInvalid(t *testing.T) {
	buf := []byte{33, 0, 0, 0, 0, 0}
	_, _, err := decodePrefix(buf, AFIIPv4)
	if !IsInvalid(err) {
		t.Fatalf("want Invalid, got %v", err)
	}
}

func TestDecodePrefixTruncatedIsBadLength(t *testing.T) {
	buf := []byte{32, 1, 2} // declares 4 bytes, only 2 available
	_, _, err := decodePrefix(buf, AFIIPv4)
	if !IsBadLength(err) {
		t.Fatalf("want BadLength, got %v", err)
	}
}

func TestDecodePrefixIPv6AllowsUpTo128(t *testing.T) {
	buf := append([]byte{128}, make([]byte, 16)...)
	p, _, err := decodePrefix(buf, AFIIPv6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MaskLen() != 128 {
		t.Errorf("MaskLen() = %d, want 128", p.MaskLen())
	}
}
