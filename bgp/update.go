package bgp

import "encoding/binary"

// UpdateMessage is a decoded UPDATE message (RFC 4271 section 4.3). Its
// three sequences (withdrawn routes, path attributes, NLRIs) are lazy:
// constructing an UpdateMessage does not walk any of them.
type UpdateMessage struct {
	header
	body    []byte
	session Session
}

// Withdrawn returns a fresh iterator over the withdrawn-routes sequence.
func (u *UpdateMessage) Withdrawn() (*PrefixIter, error) {
	wlen, _, _, err := u.split()
	if err != nil {
		return nil, err
	}
	return &PrefixIter{buf: u.body[2 : 2+wlen], afi: AFIIPv4}, nil
}

// PathAttrs returns a fresh iterator over the path-attribute sequence.
func (u *UpdateMessage) PathAttrs() (*PathAttrIter, error) {
	wlen, alen, _, err := u.split()
	if err != nil {
		return nil, err
	}
	start := 2 + wlen + 2
	return &PathAttrIter{buf: u.body[start : start+alen], session: u.session}, nil
}

// NLRIs returns a fresh iterator over the Network Layer Reachability
// Information sequence. When the session has ADD-PATH active, each
// element is preceded by a 4-byte path identifier.
func (u *UpdateMessage) NLRIs() (*NLRIIter, error) {
	_, _, nlriStart, err := u.split()
	if err != nil {
		return nil, err
	}
	return &NLRIIter{buf: u.body[nlriStart:], addPath: u.session.AddPath}, nil
}

// split validates and returns the withdrawn-routes length, the
// total-path-attribute length, and the byte offset (within u.body) where
// the NLRI sequence begins.
func (u *UpdateMessage) split() (wlen, alen, nlriStart int, err error) {
	if len(u.body) < 2 {
		return 0, 0, 0, badLength("bgp: UPDATE body too short for withdrawn-routes length")
	}
	wlen = int(binary.BigEndian.Uint16(u.body[0:2]))
	if 2+wlen+2 > len(u.body) {
		return 0, 0, 0, badLengthf("bgp: withdrawn-routes length %d exceeds UPDATE body", wlen)
	}
	alen = int(binary.BigEndian.Uint16(u.body[2+wlen : 2+wlen+2]))
	nlriStart = 2 + wlen + 2 + alen
	if nlriStart > len(u.body) {
		return 0, 0, 0, badLengthf("bgp: path-attribute length %d exceeds UPDATE body", alen)
	}
	return wlen, alen, nlriStart, nil
}

// PrefixIter iterates a withdrawn-routes (or MP_UNREACH withdrawn) byte
// range as a sequence of Prefix.
type PrefixIter struct {
	buf  []byte
	afi  AFI
	cur  Prefix
	err  error
	done bool
}

func (it *PrefixIter) Next() bool {
	if it.done {
		return false
	}
	if len(it.buf) == 0 {
		it.done = true
		return false
	}
	p, n, err := decodePrefix(it.buf, it.afi)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	it.cur = p
	it.buf = it.buf[n:]
	return true
}

func (it *PrefixIter) Prefix() Prefix { return it.cur }
func (it *PrefixIter) Err() error     { return it.err }

// NLRIEntry is one element of an NLRIIter: a Prefix plus, when ADD-PATH
// is active, the 4-byte path identifier that preceded it.
type NLRIEntry struct {
	pathID  uint32
	hasPath bool
	prefix  Prefix
}

// PathID returns the ADD-PATH path identifier and true, or (0, false) if
// the session did not have ADD-PATH active.
func (e NLRIEntry) PathID() (uint32, bool) { return e.pathID, e.hasPath }

// Prefix is the advertised prefix.
func (e NLRIEntry) Prefix() Prefix { return e.prefix }

// NLRIIter iterates an UPDATE's NLRI byte range. MP_REACH_NLRI prefixes
// are iterated by PrefixIter instead (see MPReach.Prefixes).
type NLRIIter struct {
	buf     []byte
	afi     AFI
	addPath bool
	cur     NLRIEntry
	err     error
	done    bool
}

func (it *NLRIIter) Next() bool {
	if it.done {
		return false
	}
	if len(it.buf) == 0 {
		it.done = true
		return false
	}
	var entry NLRIEntry
	buf := it.buf
	if it.addPath {
		if len(buf) < 4 {
			it.err = badLength("bgp: truncated ADD-PATH path identifier")
			it.done = true
			return false
		}
		entry.pathID = binary.BigEndian.Uint32(buf[0:4])
		entry.hasPath = true
		buf = buf[4:]
	}
	afi := it.afi
	if afi == 0 {
		afi = AFIIPv4
	}
	p, n, err := decodePrefix(buf, afi)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	entry.prefix = p
	it.cur = entry
	consumed := len(it.buf) - len(buf) + n
	it.buf = it.buf[consumed:]
	return true
}

func (it *NLRIIter) Entry() NLRIEntry { return it.cur }
func (it *NLRIIter) Err() error       { return it.err }
