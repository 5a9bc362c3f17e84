package bmp

import (
	"encoding/binary"

	"github.com/CSUNetSec/bgpview/bgp"
)

// Statistics Report TLV type codes (RFC 7854 section 4.8).
const (
	StatRejectedPrefixes              uint16 = 0
	StatDuplicatePrefixAdvertisements uint16 = 1
	StatDuplicateWithdraws            uint16 = 2
	StatInvalidatedByClusterListLoop  uint16 = 3
	StatInvalidatedByASPathLoop       uint16 = 4
	StatInvalidatedByOriginatorID     uint16 = 5
	StatInvalidatedByASConfedLoop     uint16 = 6
	StatAdjRIBInRoutes                uint16 = 7
	StatLocRIBRoutes                  uint16 = 8
	StatPerAfiSafiAdjRibInRoutes      uint16 = 9
	StatPerAfiSafiLocRibRoutes        uint16 = 10
	StatUpdatesTreatAsWithdraw        uint16 = 11
	StatPrefixesTreatAsWithdraw       uint16 = 12
	StatDuplicateUpdates              uint16 = 13
)

// StatKind tags how a Statistic TLV's (type, length) pair was
// classified. KindUnknown covers any type this decoder does not
// recognize, or a recognized type whose length disagrees with its
// expected shape; iteration continues past it rather than failing,
// since an unrecognized statistic is not a structural defect.
type StatKind int

const (
	KindRejectedPrefixes StatKind = iota + 1
	KindDuplicatePrefixAdvertisements
	KindDuplicateWithdraws
	KindInvalidatedByClusterListLoop
	KindInvalidatedByASPathLoop
	KindInvalidatedByOriginatorID
	KindInvalidatedByASConfedLoop
	KindAdjRIBInRoutes
	KindLocRIBRoutes
	KindPerAfiSafiAdjRibInRoutes
	KindPerAfiSafiLocRibRoutes
	KindUpdatesTreatAsWithdraw
	KindPrefixesTreatAsWithdraw
	KindDuplicateUpdates
	KindUnknown
)

var counter32Kinds = map[uint16]StatKind{
	StatRejectedPrefixes:              KindRejectedPrefixes,
	StatDuplicatePrefixAdvertisements: KindDuplicatePrefixAdvertisements,
	StatDuplicateWithdraws:            KindDuplicateWithdraws,
	StatInvalidatedByClusterListLoop:  KindInvalidatedByClusterListLoop,
	StatInvalidatedByASPathLoop:       KindInvalidatedByASPathLoop,
	StatInvalidatedByOriginatorID:     KindInvalidatedByOriginatorID,
	StatInvalidatedByASConfedLoop:     KindInvalidatedByASConfedLoop,
	StatUpdatesTreatAsWithdraw:        KindUpdatesTreatAsWithdraw,
	StatPrefixesTreatAsWithdraw:       KindPrefixesTreatAsWithdraw,
	StatDuplicateUpdates:              KindDuplicateUpdates,
}

var gauge64Kinds = map[uint16]StatKind{
	StatAdjRIBInRoutes: KindAdjRIBInRoutes,
	StatLocRIBRoutes:   KindLocRIBRoutes,
}

var perAfiSafiKinds = map[uint16]StatKind{
	StatPerAfiSafiAdjRibInRoutes: KindPerAfiSafiAdjRibInRoutes,
	StatPerAfiSafiLocRibRoutes:   KindPerAfiSafiLocRibRoutes,
}

// Statistic is one decoded Statistics Report TLV.
type Statistic struct {
	kind StatKind
	typ  uint16
	raw  []byte
}

// Kind reports which tagged variant this statistic decoded as.
func (s Statistic) Kind() StatKind { return s.kind }

// Type is the raw TLV type code.
func (s Statistic) Type() uint16 { return s.typ }

// Raw is the value bytes exactly as they appeared on the wire.
func (s Statistic) Raw() []byte { return s.raw }

// Counter32 decodes a 32-bit counter value. Valid for the Kind*
// counter variants.
func (s Statistic) Counter32() uint32 { return binary.BigEndian.Uint32(s.raw) }

// Gauge64 decodes a 64-bit gauge value. Valid for KindAdjRIBInRoutes,
// KindLocRIBRoutes, and the trailing field of the per-AFI/SAFI gauges.
func (s Statistic) Gauge64() uint64 { return binary.BigEndian.Uint64(s.raw[len(s.raw)-8:]) }

// AFI is valid for KindPerAfiSafiAdjRibInRoutes / KindPerAfiSafiLocRibRoutes.
func (s Statistic) AFI() bgp.AFI { return bgp.AFI(binary.BigEndian.Uint16(s.raw[0:2])) }

// SAFI is valid for KindPerAfiSafiAdjRibInRoutes / KindPerAfiSafiLocRibRoutes.
func (s Statistic) SAFI() bgp.SAFI { return bgp.SAFI(s.raw[2]) }

func classifyStat(typ uint16, length int) StatKind {
	if k, ok := counter32Kinds[typ]; ok && length == 4 {
		return k
	}
	if k, ok := gauge64Kinds[typ]; ok && length == 8 {
		return k
	}
	if k, ok := perAfiSafiKinds[typ]; ok && length == 11 {
		return k
	}
	return KindUnknown
}

// StatisticsReport carries a snapshot of per-peer counters and gauges
// (RFC 7854 section 4.8).
type StatisticsReport struct {
	commonHeader
	PerPeerHeader
	body []byte
}

// Statistics returns a fresh iterator over the report's Statistic TLVs.
func (r *StatisticsReport) Statistics() (*StatIter, error) {
	if len(r.body) < 4 {
		return nil, badLengthf("bmp: StatisticsReport body is %d bytes, need at least 4", len(r.body))
	}
	count := binary.BigEndian.Uint32(r.body[0:4])
	return &StatIter{buf: r.body[4:], remaining: count}, nil
}

// StatIter iterates a StatisticsReport's Statistic TLVs in wire order.
type StatIter struct {
	buf       []byte
	remaining uint32
	cur       Statistic
	err       error
	done      bool
}

func (it *StatIter) Next() bool {
	if it.done {
		return false
	}
	if it.remaining == 0 {
		it.done = true
		return false
	}
	if len(it.buf) < 4 {
		it.err = badLength("bmp: truncated statistic TLV header")
		it.done = true
		return false
	}
	typ := binary.BigEndian.Uint16(it.buf[0:2])
	l := int(binary.BigEndian.Uint16(it.buf[2:4]))
	if len(it.buf) < 4+l {
		it.err = badLengthf("bmp: statistic TLV declares %d bytes but only %d available", l, len(it.buf)-4)
		it.done = true
		return false
	}
	it.cur = Statistic{kind: classifyStat(typ, l), typ: typ, raw: it.buf[4 : 4+l]}
	it.buf = it.buf[4+l:]
	it.remaining--
	return true
}

func (it *StatIter) Statistic() Statistic { return it.cur }
func (it *StatIter) Err() error           { return it.err }
