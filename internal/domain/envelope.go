package domain

// ResponseKind discriminates the payload of a chat response envelope.
type ResponseKind string

const (
	KindText           ResponseKind = "text"
	KindStructuredBill ResponseKind = "bill_details"
)

// Envelope is the single response shape the chat pipeline produces. When OK
// is true exactly one of BotReply/Bill is populated based on Kind; AudioRef
// is an optional side channel that is only ever attached after the primary
// result is finalized.
type Envelope struct {
	OK       bool
	Kind     ResponseKind
	BotReply string
	Bill     *BillView
	AudioRef string
	Error    string
}

// TextEnvelope builds a successful text reply.
func TextEnvelope(reply string) Envelope {
	return Envelope{OK: true, Kind: KindText, BotReply: reply}
}

// BillEnvelope builds a successful structured bill reply.
func BillEnvelope(bill *BillView) Envelope {
	return Envelope{OK: true, Kind: KindStructuredBill, Bill: bill}
}

// FailedEnvelope builds a well-formed failure envelope with a user-safe
// message; raw upstream errors never reach the client.
func FailedEnvelope(message string) Envelope {
	return Envelope{OK: false, Error: message}
}
