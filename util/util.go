// Package util renders zero-copy byte ranges decoded by the bgp and bmp
// packages into their textual forms. It owns no wire-parsing logic of its
// own: callers hand it already-validated mask lengths and address bytes.
package util

import (
	"fmt"
	"net"
)

// FormatPrefix renders a mask length and its covering high-order address
// bytes as a CIDR string, e.g. "10.0.0.0/8" or "2001:db8::/32". raw may be
// shorter than a full address (only the bytes covering maskLen bits are
// stored by a Prefix); the remainder is treated as zero.
func FormatPrefix(maskLen uint8, raw []byte, v6 bool) string {
	return fmt.Sprintf("%s/%d", FormatAddress(raw, v6), maskLen)
}

// FormatAddress zero-extends raw to a full IPv4 or IPv6 address and
// returns it as a net.IP, whose String renders it. raw longer than the
// target width is truncated to it.
func FormatAddress(raw []byte, v6 bool) net.IP {
	if v6 {
		buf := make([]byte, 16)
		n := len(raw)
		if n > 16 {
			n = 16
		}
		copy(buf, raw[:n])
		return net.IP(buf)
	}
	buf := make([]byte, 4)
	n := len(raw)
	if n > 4 {
		n = 4
	}
	copy(buf, raw[:n])
	return net.IP(buf)
}
