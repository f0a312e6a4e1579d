package enum

import "encoding/json"

// CheckoutState is the position of a session in the checkout state machine.
// Committed and Failed are transient outcomes of Submitting and are never
// stored: a commit returns the session to Idle, a failure to
// AwaitingConfirmation.
type CheckoutState int

const (
	CheckoutIdle                 CheckoutState = 0
	CheckoutAwaitingConfirmation CheckoutState = 1
	CheckoutSubmitting           CheckoutState = 2
)

func (s CheckoutState) String() string {
	names := [...]string{"idle", "awaiting_confirmation", "submitting"}
	if int(s) < 0 || int(s) >= len(names) {
		return "idle"
	}
	return names[s]
}

func (s CheckoutState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
