package bgp

// NOTIFICATION error codes (RFC 4271 section 6.1).
const (
	NotifMessageHeaderError      uint8 = 1
	NotifOpenMessageError        uint8 = 2
	NotifUpdateMessageError      uint8 = 3
	NotifHoldTimerExpired        uint8 = 4
	NotifFiniteStateMachineError uint8 = 5
	NotifCease                   uint8 = 6
)

// NotificationMessage is a decoded NOTIFICATION message (RFC 4271
// section 4.5): an error code, an error subcode, and optional data
// whose shape depends on the (code, subcode) pair.
type NotificationMessage struct {
	header
	body []byte
}

// Code is the NOTIFICATION error code.
func (n *NotificationMessage) Code() uint8 { return n.body[0] }

// Subcode is the NOTIFICATION error subcode. It is a discriminant for
// MessageHeaderError, OpenMessageError and UpdateMessageError, each of
// which has its own fixed subcode table; HoldTimerExpired,
// FiniteStateMachineError and Cease carry no subcode table of their
// own and accept any subcode byte.
func (n *NotificationMessage) Subcode() uint8 { return n.body[1] }

// Data is the trailing diagnostic data, which may be empty.
func (n *NotificationMessage) Data() []byte { return n.body[2:] }

// MessageHeaderError subcodes.
const (
	SubcodeConnectionNotSynchronized uint8 = 1
	SubcodeBadMessageLength          uint8 = 2
	SubcodeBadMessageType            uint8 = 3
)

// OpenMessageError subcodes.
const (
	SubcodeUnsupportedVersionNumber     uint8 = 1
	SubcodeBadPeerAS                    uint8 = 2
	SubcodeBadBGPIdentifier             uint8 = 3
	SubcodeUnsupportedOptionalParameter uint8 = 4
	SubcodeAuthenticationFailure        uint8 = 5
	SubcodeUnacceptableHoldTime         uint8 = 6
)

// UpdateMessageError subcodes.
const (
	SubcodeMalformedAttributeList        uint8 = 1
	SubcodeUnrecognizedWellKnownAttr     uint8 = 2
	SubcodeMissingWellKnownAttr          uint8 = 3
	SubcodeAttributeFlagsError           uint8 = 4
	SubcodeAttributeLengthError          uint8 = 5
	SubcodeInvalidOriginAttribute        uint8 = 6
	SubcodeASRoutingLoop                 uint8 = 7
	SubcodeInvalidNextHopAttribute       uint8 = 8
	SubcodeOptionalAttributeError        uint8 = 9
	SubcodeInvalidNetworkField           uint8 = 10
	SubcodeMalformedASPath               uint8 = 11
)

var messageHeaderSubcodes = map[uint8]bool{
	SubcodeConnectionNotSynchronized: true,
	SubcodeBadMessageLength:          true,
	SubcodeBadMessageType:            true,
}

var openMessageSubcodes = map[uint8]bool{
	SubcodeUnsupportedVersionNumber:     true,
	SubcodeBadPeerAS:                    true,
	SubcodeBadBGPIdentifier:             true,
	SubcodeUnsupportedOptionalParameter: true,
	SubcodeAuthenticationFailure:        true,
	SubcodeUnacceptableHoldTime:         true,
}

var updateMessageSubcodes = map[uint8]bool{
	SubcodeMalformedAttributeList:    true,
	SubcodeUnrecognizedWellKnownAttr: true,
	SubcodeMissingWellKnownAttr:      true,
	SubcodeAttributeFlagsError:       true,
	SubcodeAttributeLengthError:      true,
	SubcodeInvalidOriginAttribute:    true,
	SubcodeASRoutingLoop:             true,
	SubcodeInvalidNextHopAttribute:   true,
	SubcodeOptionalAttributeError:    true,
	SubcodeInvalidNetworkField:       true,
	SubcodeMalformedASPath:           true,
}

func decodeNotification(body []byte) (*NotificationMessage, error) {
	if len(body) < 2 {
		return nil, badLengthf("bgp: NOTIFICATION body is %d bytes, need at least 2", len(body))
	}
	code := body[0]
	subcode := body[1]
	switch code {
	case NotifMessageHeaderError:
		if !messageHeaderSubcodes[subcode] {
			return nil, invalidf("bgp: unrecognized MessageHeaderError subcode %d", subcode)
		}
	case NotifOpenMessageError:
		if !openMessageSubcodes[subcode] {
			return nil, invalidf("bgp: unrecognized OpenMessageError subcode %d", subcode)
		}
	case NotifUpdateMessageError:
		if !updateMessageSubcodes[subcode] {
			return nil, invalidf("bgp: unrecognized UpdateMessageError subcode %d", subcode)
		}
	case NotifHoldTimerExpired, NotifFiniteStateMachineError, NotifCease:
		// No subcode table; any subcode is a discriminant-free wildcard.
	default:
		return nil, invalidf("bgp: unrecognized NOTIFICATION error code %d", code)
	}
	return &NotificationMessage{body: body}, nil
}
