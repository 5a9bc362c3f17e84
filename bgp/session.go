package bgp

// Session carries the two session-negotiated flags that change the
// shape of UPDATE substructures: whether AS numbers are four bytes wide
// (RFC 6793) and whether NLRIs carry an ADD-PATH path identifier
// (RFC 7911). It is input to decoding, not part of any message, and is
// passed explicitly into every constructor that needs it rather than
// held in package-level state, since two concurrently decoded sessions
// may disagree on either flag.
type Session struct {
	FourByteASN bool
	AddPath     bool
}
