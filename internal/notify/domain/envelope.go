package domain

// MessageEnvelope is the composed title/body/data payload built from a domain
// event, prior to transport. Data always carries enough identifiers for the
// client to route a tap-through without another fetch.
type MessageEnvelope struct {
	Title string
	Body  string
	Data  map[string]string
}

// TargetOutcome is the delivery result for one token, in the order the
// sender reported them.
type TargetOutcome struct {
	Token  string `json:"token"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// DeliveryReport summarizes one dispatch. The counts come verbatim from the
// sender's response; the sender is the source of truth for partial failures
// such as stale tokens.
type DeliveryReport struct {
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Outcomes     []TargetOutcome `json:"outcomes,omitempty"`
}
