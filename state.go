package promise

// State identifies where a deferred is in its lifecycle. A deferred starts out
// Pending and moves to exactly one of Resolved or Rejected, never back.
type State int32

const (
	// Pending means neither Resolve nor Reject has taken effect yet.
	Pending State = iota

	// Resolved means the deferred settled successfully and carries a result.
	Resolved

	// Rejected means the deferred settled with a failure and carries a cause.
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}
