package domain

import "time"

// TicketType classifies a filed request.
type TicketType string

const (
	TicketTypeCertificate TicketType = "certificate"
	TicketTypeScheme      TicketType = "scheme"
	TicketTypeComplaint   TicketType = "complaint"
	TicketTypeOther       TicketType = "other"
)

// ParseTicketType validates an incoming type string.
func ParseTicketType(s string) (TicketType, error) {
	switch TicketType(s) {
	case TicketTypeCertificate, TicketTypeScheme, TicketTypeComplaint, TicketTypeOther:
		return TicketType(s), nil
	}
	return "", ErrInvalidTicketType
}

// IDPrefix returns the public-id prefix used for tickets of this type.
func (t TicketType) IDPrefix() string {
	switch t {
	case TicketTypeCertificate:
		return "CERT"
	case TicketTypeComplaint:
		return "COMP"
	default:
		return "APP"
	}
}

// TicketStatus is the closed status vocabulary. Every status carries its
// lifecycle bucket and badge style; nothing is stored redundantly.
type TicketStatus string

const (
	StatusInReview       TicketStatus = "In Review"
	StatusPaymentPending TicketStatus = "Payment Pending"
	StatusApproved       TicketStatus = "Approved"
	StatusCompleted      TicketStatus = "Completed"
	StatusRejected       TicketStatus = "Rejected"
)

// ParseTicketStatus rejects anything outside the closed vocabulary.
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case StatusInReview, StatusPaymentPending, StatusApproved, StatusCompleted, StatusRejected:
		return TicketStatus(s), nil
	}
	return "", ErrInvalidTicketStatus
}

// LifecycleBucket groups statuses for the "My Applications" filter.
type LifecycleBucket string

const (
	BucketActive    LifecycleBucket = "active"
	BucketCompleted LifecycleBucket = "completed"
	BucketRejected  LifecycleBucket = "rejected"
)

// ParseLifecycleBucket validates a filter value.
func ParseLifecycleBucket(s string) (LifecycleBucket, error) {
	switch LifecycleBucket(s) {
	case BucketActive, BucketCompleted, BucketRejected:
		return LifecycleBucket(s), nil
	}
	return "", ErrInvalidBucket
}

// ParseDisplayBucket validates a list filter value. Alongside the lifecycle
// buckets it accepts "complaint", the pseudo-bucket complaints are filed
// under regardless of status.
func ParseDisplayBucket(s string) (string, error) {
	if TicketType(s) == TicketTypeComplaint {
		return s, nil
	}
	bucket, err := ParseLifecycleBucket(s)
	if err != nil {
		return "", err
	}
	return string(bucket), nil
}

// Bucket derives the lifecycle bucket. Completed and Rejected are
// soft-terminal; everything else is still in flight.
func (s TicketStatus) Bucket() LifecycleBucket {
	switch s {
	case StatusCompleted:
		return BucketCompleted
	case StatusRejected:
		return BucketRejected
	default:
		return BucketActive
	}
}

// DisplayText returns the user-facing status label.
func (s TicketStatus) DisplayText() string { return string(s) }

// BadgeStyle returns the UI badge class bound to this status.
func (s TicketStatus) BadgeStyle() string {
	switch s {
	case StatusInReview:
		return "badge-review"
	case StatusPaymentPending:
		return "badge-payment"
	case StatusApproved:
		return "badge-approved"
	case StatusCompleted:
		return "badge-completed"
	case StatusRejected:
		return "badge-rejected"
	default:
		return "badge-review"
	}
}

// Ticket is an application or complaint record. Owned exclusively by the
// ticket store; the chat pipeline only ever reads it.
type Ticket struct {
	ID         int64
	PublicID   string
	Type       TicketType
	Title      string
	Details    string
	Status     TicketStatus
	Department string
	Phone      string
	PhotoKey   string
	Latitude   *float64
	Longitude  *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayBucket returns the bucket the UI files this ticket under.
// Complaints form their own pseudo-bucket regardless of status.
func (t *Ticket) DisplayBucket() string {
	if t.Type == TicketTypeComplaint {
		return string(TicketTypeComplaint)
	}
	return string(t.Status.Bucket())
}
