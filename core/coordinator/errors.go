package coordinator

import "errors"

// Kind classifies a failed command. Every kind is recoverable and reported
// to the user as text.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	AmbiguousOrMissingSlots Kind = "ambiguous_or_missing_slots"
	InvalidStatus           Kind = "invalid_status"
	PilotNotFound           Kind = "pilot_not_found"
	NoMatchingMission       Kind = "no_matching_mission"
	NoMissionAvailable      Kind = "no_mission_available"
	NoPilotAvailable        Kind = "no_pilot_available"
	DataStoreUnavailable    Kind = "data_store_unavailable"
)

// User facing messages.
const (
	MsgAmbiguousSlots     = "Could not understand pilot name or status. Try: 'Mark Sneha as Available'."
	MsgInvalidStatus      = "Invalid status. Use Available, Assigned, On Leave, or Unavailable."
	MsgPilotNotFound      = "Pilot '%s' not found in Pilot Roster."
	MsgNoMatchingMission  = "No matching mission found. Please specify project ID, location, or priority."
	MsgNoMissionAvailable = "No mission available for urgent reassignment."
	MsgNoPilotAvailable   = "No pilots available for urgent reassignment."
	MsgStoreUnavailable   = "Fleet data is unavailable right now. Please try again later."
)

// Error carries a Kind, the message shown to the user and an optional cause.
// errors.Is matches both the kind and the cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// NewAmbiguousSlots is returned when a status command cannot be parsed.
func NewAmbiguousSlots() *Error { return newError(AmbiguousOrMissingSlots, MsgAmbiguousSlots) }

func storeError(err error) *Error {
	return &Error{Kind: DataStoreUnavailable, Msg: MsgStoreUnavailable, Err: err}
}

// KindOf returns the Kind carried by err, or "" when err is not a
// coordinator error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message returns the user facing text of err. Causes are left out.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}
